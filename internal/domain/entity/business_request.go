package entity

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus is the lifecycle state of a purchase request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected:
		return true
	}

	return false
}

// BusinessRequest is a buyer's request to purchase a francheasy listing,
// optionally bound to a store and a povilion. Approval by the listing owner
// turns it into a Business.
type BusinessRequest struct {
	ID           uuid.UUID
	UserID       uuid.UUID // The requesting buyer.
	FrancheasyID uuid.UUID
	StoreID      *uuid.UUID
	PovilionID   *uuid.UUID
	Status       RequestStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
