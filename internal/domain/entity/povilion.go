package entity

import (
	"time"

	"github.com/google/uuid"
)

// Povilion is a rentable kiosk inside a store.
type Povilion struct {
	ID        uuid.UUID
	UserID    uuid.UUID // The kiosk owner.
	StoreID   uuid.UUID // The store this kiosk sits in.
	Title     string
	Price     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
