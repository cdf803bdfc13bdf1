package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaURLsCachesSignedURLs(t *testing.T) {
	blobs := newMemBlobs()
	m, err := NewMediaURLs(blobs, time.Hour, false, testLog)
	require.NoError(t, err)
	ctx := context.Background()

	first := m.URL(ctx, "owner/1-a.png")
	second := m.URL(ctx, "owner/1-a.png")

	assert.Equal(t, "https://signed.test/owner/1-a.png?sig=1", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, blobs.signs)

	m.URL(ctx, "owner/2-b.png")
	assert.Equal(t, 2, blobs.signs)
}

func TestMediaURLsPublic(t *testing.T) {
	blobs := newMemBlobs()
	m, err := NewMediaURLs(blobs, time.Hour, true, testLog)
	require.NoError(t, err)

	path := "owner/1-a.png"
	assert.Equal(t, "https://cdn.test/owner/1-a.png", m.URLFor(context.Background(), &path))
	assert.Zero(t, blobs.signs)
}

func TestMediaURLsEmpty(t *testing.T) {
	m, err := NewMediaURLs(nil, time.Hour, false, testLog)
	require.NoError(t, err)

	path := "owner/1-a.png"
	assert.Empty(t, m.URLFor(context.Background(), nil))
	assert.Empty(t, m.URL(context.Background(), ""))
	assert.Empty(t, m.URLFor(context.Background(), &path), "no bucket configured")
}
