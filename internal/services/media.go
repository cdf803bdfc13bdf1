package services

import (
	"context"
	"io"
	"time"

	"aoa/internal/storage"
	"aoa/internal/utils"

	"go.uber.org/zap"
)

// Upload is a file received from a form.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// MediaURLs turns stored object paths into URLs a browser can load. Signed
// URLs are cached until shortly before they lapse.
type MediaURLs struct {
	blobs  storage.BlobStore
	cache  *utils.TTLCache[string]
	ttl    time.Duration
	public bool
	log    *zap.SugaredLogger
}

// NewMediaURLs signs URLs valid for ttl. With public set every object is
// addressed through BlobStore.PublicURL instead.
func NewMediaURLs(blobs storage.BlobStore, ttl time.Duration, public bool, log *zap.SugaredLogger) (*MediaURLs, error) {
	cache, err := utils.NewTTLCache[string](2048)
	if err != nil {
		return nil, err
	}
	return &MediaURLs{blobs: blobs, cache: cache, ttl: ttl, public: public, log: log}, nil
}

// URL returns "" for an empty path or when signing fails.
func (m *MediaURLs) URL(ctx context.Context, path string) string {
	if path == "" || m.blobs == nil {
		return ""
	}
	if m.public {
		return m.blobs.PublicURL(path)
	}
	if u, ok := m.cache.Get(path); ok {
		return u
	}

	u, err := m.blobs.SignedURL(ctx, path, m.ttl)
	if err != nil {
		m.log.Warnw("sign media url", "path", path, "error", err)
		return ""
	}
	m.cache.Set(path, u, m.ttl-m.ttl/10)
	return u
}

func (m *MediaURLs) URLFor(ctx context.Context, path *string) string {
	if path == nil {
		return ""
	}
	return m.URL(ctx, *path)
}
