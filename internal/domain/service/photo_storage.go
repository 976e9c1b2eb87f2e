package service

import (
	"context"
	"io"
	"time"
)

// PhotoStorage defines the interface for blob storage of listing photos.
type PhotoStorage interface {
	// Upload stores a photo under the given key, replacing any previous object.
	Upload(ctx context.Context, key, contentType string, body io.Reader) error

	// SignedURL returns a time-limited URL for downloading the object.
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// Delete removes the object under the given key.
	Delete(ctx context.Context, key string) error
}
