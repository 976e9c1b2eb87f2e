package entity

import (
	"time"

	"github.com/google/uuid"
)

// Store is a physical retail location that can host povilions and businesses.
type Store struct {
	ID                  uuid.UUID
	UserID              uuid.UUID // The store owner.
	Title               string
	CrossCountryAbility float64 // Accessibility rating for the surrounding terrain.
	Latitude            float64
	Longitude           float64
	Address             string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
