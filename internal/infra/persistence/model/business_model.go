package model

import (
	"time"

	"github.com/google/uuid"
)

// BusinessModel mirrors the 'businesses' table. The transaction ledger is
// stored as a JSONB array of entries.
type BusinessModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	FrancheasyID uuid.UUID  `gorm:"type:uuid;not null;index"`
	StoreID      *uuid.UUID `gorm:"type:uuid"`
	PovilionID   *uuid.UUID `gorm:"type:uuid"`
	Transactions []byte     `gorm:"type:jsonb"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (BusinessModel) TableName() string {
	return "businesses"
}
