package entity

import (
	"time"

	"github.com/google/uuid"
)

// Francheasy is a franchise listing offered on the marketplace.
type Francheasy struct {
	ID           uuid.UUID
	UserID       uuid.UUID // The listing owner.
	Title        string
	EBITDA       float64 // Reported yearly EBITDA of a running franchise unit.
	StartCapital float64 // Capital required to buy in.
	OpenStore    float64 // Cost of opening a physical store under this franchise.
	PhoneNumber  string
	PhotoKeys    []string // Object-storage keys of the listing photos.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
