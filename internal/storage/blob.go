// Package storage uploads media to an S3-compatible bucket and derives
// public or time-limited URLs for it.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrObjectExists is returned by Upload when overwrite is false and the
// path is already taken.
var ErrObjectExists = errors.New("object already exists")

type BlobStore interface {
	Upload(ctx context.Context, path, contentType string, body io.Reader, size int64, overwrite bool) error
	PublicURL(path string) string
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, path string) error
}
