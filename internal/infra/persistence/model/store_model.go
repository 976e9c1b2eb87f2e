package model

import (
	"time"

	"github.com/google/uuid"
)

// StoreModel mirrors the 'stores' table.
type StoreModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID              uuid.UUID `gorm:"type:uuid;not null;index"`
	Title               string    `gorm:"type:varchar(255);not null"`
	CrossCountryAbility float64
	Latitude            float64 `gorm:"not null"`
	Longitude           float64 `gorm:"not null"`
	Address             string  `gorm:"type:varchar(512)"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Povilions []PovilionModel `gorm:"foreignKey:StoreID"`
}

// TableName explicitly sets the table name for GORM.
func (StoreModel) TableName() string {
	return "stores"
}
