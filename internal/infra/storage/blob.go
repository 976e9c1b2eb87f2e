// Package storage provides the blob-backed photo storage service.
package storage

import (
	"context"
	"io"
	"log/slog"
	"time"

	"francheasy/config"
	"francheasy/internal/domain/lifecycle"
	"francheasy/internal/domain/service"
	"francheasy/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket URL schemes supported out of the box.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/s3blob"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// photoStorage implements the PhotoStorage interface on top of a Go CDK bucket.
type photoStorage struct {
	bucket        *blob.Bucket
	defaultExpiry time.Duration
}

// New opens the configured bucket and registers its lifecycle hooks.
func New(params Params) (service.PhotoStorage, error) {
	if params.Config.Storage == nil || params.Config.Storage.BucketURL == "" {
		return nil, errors.New("storage bucket url must be provided")
	}

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(ctx, params.Config.Storage.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open storage bucket")
	}

	expiry := 15 * time.Minute
	if params.Config.Storage.SignedURLExpiry > 0 {
		expiry = params.Config.Storage.SignedURLExpiry
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &photoStorage{bucket: bucket, defaultExpiry: expiry}, nil
}

// Upload stores a photo under the given key, replacing any previous object.
func (s *photoStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	w, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrap(err, "failed to open bucket writer")
	}

	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return errors.Wrap(err, "failed to write photo")
	}

	if err := w.Close(); err != nil {
		return errors.Wrap(err, "failed to finalize photo upload")
	}

	return nil
}

// SignedURL returns a time-limited URL for downloading the object.
func (s *photoStorage) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = s.defaultExpiry
	}

	url, err := s.bucket.SignedURL(ctx, key, &blob.SignedURLOptions{Expiry: expiry})
	if err != nil {
		return "", errors.Wrap(err, "failed to sign photo url")
	}

	return url, nil
}

// Delete removes the object under the given key.
func (s *photoStorage) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		return errors.Wrap(err, "failed to delete photo")
	}

	return nil
}
