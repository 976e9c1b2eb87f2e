package model

import (
	"time"

	"github.com/google/uuid"
)

// PovilionModel mirrors the 'povilions' table.
type PovilionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	StoreID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Price     float64   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PovilionModel) TableName() string {
	return "povilions"
}
