package photostore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := store.GetURL(ctx, "blue denim jacket")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.SaveURL(ctx, "blue denim jacket", "https://img.example/a.jpg", 0))

	url, ok, err := store.GetURL(ctx, "blue denim jacket")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "https://img.example/a.jpg", url)
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SaveURL(ctx, "straw hat", "https://img.example/h.jpg", time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	_, ok, err := store.GetURL(ctx, "straw hat")
	require.NoError(t, err)
	require.False(t, ok)
}
