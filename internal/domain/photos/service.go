package photos

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// Service resolves a descriptive query to an image URL. It cannot fail from
// the caller's perspective: every layer degrades to the next, ending at the
// generic fallback.
type Service interface {
	FindImage(ctx context.Context, query string) string
}

// Provider is the live stock-photo search client.
type Provider interface {
	Search(ctx context.Context, query string) (string, error)
}

// Store memoizes live search results so repeated item queries skip the
// provider. Misses and errors are both treated as misses.
type Store interface {
	GetURL(ctx context.Context, query string) (string, bool, error)
	SaveURL(ctx context.Context, query, url string, ttl time.Duration) error
}

// Config wires runtime dependencies for the photo domain.
type Config struct {
	CacheTTL time.Duration
}

type service struct {
	cfg      Config
	provider Provider
	store    Store
	logger   *slog.Logger
}

// NewService wires up the photo lookup domain. provider may be nil when no
// credential is configured; resolution then starts at the static cache.
func NewService(cfg Config, provider Provider, store Store, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		provider: provider,
		store:    store,
		logger:   logger.With("component", "photos.service"),
	}
}

func (s *service) FindImage(ctx context.Context, query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return GenericFallbackURL
	}

	if s.store != nil {
		if url, ok, err := s.store.GetURL(ctx, query); err != nil {
			s.logger.Warn("photo store lookup failed", "query", query, "error", err)
		} else if ok {
			return url
		}
	}

	if s.provider != nil {
		url, err := s.provider.Search(ctx, query)
		if err != nil {
			s.logger.Warn("photo provider search failed, degrading to cache", "query", query, "error", err)
		} else {
			s.remember(ctx, query, url)
			return url
		}
	}

	if url, ok := lookupExact(query); ok {
		return url
	}
	if url, ok := lookupFuzzy(query); ok {
		return url
	}
	return GenericFallbackURL
}

func (s *service) remember(ctx context.Context, query, url string) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveURL(ctx, query, url, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("photo store save failed", "query", query, "error", err)
	}
}
