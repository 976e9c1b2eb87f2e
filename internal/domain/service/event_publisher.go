package service

import (
	"context"
)

// Marketplace event types.
const (
	EventBusinessCreated  = "business.created"
	EventRequestSubmitted = "business_request.submitted"
	EventRequestResolved  = "business_request.resolved"
)

// MarketplaceEvent represents a marketplace lifecycle event published for
// async consumers.
type MarketplaceEvent struct {
	RequestID    string `json:"request_id,omitempty"` // For distributed tracing
	Type         string `json:"type"`
	UserID       string `json:"user_id"`
	FrancheasyID string `json:"francheasy_id,omitempty"`
	BusinessID   string `json:"business_id,omitempty"`
	Status       string `json:"status,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishMarketplaceEvent publishes a marketplace event for async processing
	PublishMarketplaceEvent(ctx context.Context, event *MarketplaceEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
