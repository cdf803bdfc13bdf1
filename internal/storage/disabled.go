package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrStorageDisabled = errors.New("media storage is not configured")

// DisabledStore stands in when no bucket is configured: text-only prompts
// keep working and every upload is refused.
type DisabledStore struct{}

func (DisabledStore) Upload(context.Context, string, string, io.Reader, int64, bool) error {
	return ErrStorageDisabled
}

func (DisabledStore) PublicURL(string) string { return "" }

func (DisabledStore) SignedURL(context.Context, string, time.Duration) (string, error) {
	return "", ErrStorageDisabled
}

func (DisabledStore) Delete(context.Context, string) error { return nil }
