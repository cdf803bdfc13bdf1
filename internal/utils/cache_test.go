package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCache(t *testing.T) {
	c, err := NewTTLCache[string](2)
	require.NoError(t, err)

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Set("a", "1", time.Minute)
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", got)

	now = now.Add(time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok, "entry should expire at its deadline")
	assert.Equal(t, 0, c.Len())

	c.Set("a", "1", time.Hour)
	c.Set("b", "2", time.Hour)
	c.Set("c", "3", time.Hour)
	_, ok = c.Get("a")
	assert.False(t, ok, "oldest entry should be evicted")

	c.Delete("b")
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestNewTTLCacheRejectsBadSize(t *testing.T) {
	_, err := NewTTLCache[int](0)
	assert.Error(t, err)
}
