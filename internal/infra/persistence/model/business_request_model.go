package model

import (
	"time"

	"github.com/google/uuid"
)

// BusinessRequestModel mirrors the 'business_requests' table.
type BusinessRequestModel struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	FrancheasyID uuid.UUID        `gorm:"type:uuid;not null;index"`
	StoreID      *uuid.UUID       `gorm:"type:uuid"`
	PovilionID   *uuid.UUID       `gorm:"type:uuid"`
	Status       string           `gorm:"type:varchar(16);not null;default:'pending'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Francheasy *FrancheasyModel `gorm:"foreignKey:FrancheasyID"`
}

// TableName explicitly sets the table name for GORM.
func (BusinessRequestModel) TableName() string {
	return "business_requests"
}
