package photos

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	url   string
	err   error
	calls int
}

func (s *stubProvider) Search(_ context.Context, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

type stubStore struct {
	entries map[string]string
	saved   map[string]string
}

func newStubStore() *stubStore {
	return &stubStore{entries: map[string]string{}, saved: map[string]string{}}
}

func (s *stubStore) GetURL(_ context.Context, query string) (string, bool, error) {
	url, ok := s.entries[query]
	return url, ok, nil
}

func (s *stubStore) SaveURL(_ context.Context, query, url string, _ time.Duration) error {
	s.saved[query] = url
	return nil
}

func newTestService(provider Provider, store Store) Service {
	return NewService(Config{CacheTTL: time.Hour}, provider, store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFindImageLiveProvider(t *testing.T) {
	provider := &stubProvider{url: "https://img.example/live.jpg"}
	store := newStubStore()
	svc := newTestService(provider, store)

	got := svc.FindImage(context.Background(), "blue denim jacket")
	require.Equal(t, "https://img.example/live.jpg", got)
	require.Equal(t, 1, provider.calls)
	require.Equal(t, "https://img.example/live.jpg", store.saved["blue denim jacket"])
}

func TestFindImageStoreHitSkipsProvider(t *testing.T) {
	provider := &stubProvider{url: "https://img.example/live.jpg"}
	store := newStubStore()
	store.entries["blue denim jacket"] = "https://img.example/cached.jpg"
	svc := newTestService(provider, store)

	got := svc.FindImage(context.Background(), "blue denim jacket")
	require.Equal(t, "https://img.example/cached.jpg", got)
	require.Zero(t, provider.calls)
}

func TestFindImageExactCache(t *testing.T) {
	svc := newTestService(&stubProvider{err: errors.New("down")}, nil)

	got := svc.FindImage(context.Background(), "blue denim jacket classic")
	require.Equal(t, staticCache["blue denim jacket classic"], got)
}

func TestFindImageFuzzyCache(t *testing.T) {
	// "blue denim jacket" scores 3 cross-matching tokens against the
	// "blue denim jacket classic" entry and must resolve to it rather than
	// falling through to the generic URL.
	svc := newTestService(nil, nil)

	got := svc.FindImage(context.Background(), "blue denim jacket")
	require.Equal(t, staticCache["blue denim jacket classic"], got)
	require.NotEqual(t, GenericFallbackURL, got)
}

func TestLookupFuzzyTieIsStable(t *testing.T) {
	// "white shirt sneakers" scores 2 against both "white leather sneakers"
	// and "white linen shirt"; the tie must resolve to the same entry on
	// every call, the first of the top scorers in key order.
	first, ok := lookupFuzzy("white shirt sneakers")
	require.True(t, ok)
	require.Equal(t, staticCache["white leather sneakers"], first)

	for i := 0; i < 50; i++ {
		got, ok := lookupFuzzy("white shirt sneakers")
		require.True(t, ok)
		require.Equal(t, first, got)
	}
}

func TestFindImageGenericFallback(t *testing.T) {
	svc := newTestService(&stubProvider{err: errors.New("down")}, nil)

	got := svc.FindImage(context.Background(), "zzkw qqrv")
	require.Equal(t, GenericFallbackURL, got)
}

func TestFindImageEmptyQuery(t *testing.T) {
	svc := newTestService(nil, nil)
	require.Equal(t, GenericFallbackURL, svc.FindImage(context.Background(), "  "))
}

func TestLookupFuzzyRequiresTwoTokens(t *testing.T) {
	_, ok := lookupFuzzy("denim")
	require.False(t, ok)
}
