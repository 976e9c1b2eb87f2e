package model

import (
	"time"

	"github.com/google/uuid"
)

// FrancheasyModel mirrors the 'francheasies' table. Photo keys are stored as
// a JSONB array of object-storage keys.
type FrancheasyModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Title        string    `gorm:"type:varchar(255);not null"`
	EBITDA       float64   `gorm:"column:ebitda;not null"`
	StartCapital float64   `gorm:"not null"`
	OpenStore    float64   `gorm:"not null"`
	PhoneNumber  string    `gorm:"type:varchar(32)"`
	PhotoKeys    []byte    `gorm:"type:jsonb"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (FrancheasyModel) TableName() string {
	return "francheasies"
}
