package weather

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"strings"

	apperrors "github.com/yanqian/weather-stylist/pkg/errors"
)

// Sentinel errors a Provider uses to signal recoverable upstream conditions.
// Both degrade to demo mode instead of failing the call.
var (
	ErrUnauthorized = errors.New("weather provider rejected the credential")
	ErrUnavailable  = errors.New("weather provider unreachable")
)

// Service resolves a location string into a weather snapshot, live or demo.
type Service interface {
	GetWeather(ctx context.Context, location string) (Result, error)
}

// Provider is the upstream weather API client.
type Provider interface {
	Fetch(ctx context.Context, location string) (Snapshot, error)
}

type service struct {
	cfg      Config
	provider Provider
	logger   *slog.Logger
	jitter   func() float64
}

// NewService wires up the weather domain.
func NewService(cfg Config, provider Provider, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		provider: provider,
		logger:   logger.With("component", "weather.service"),
		jitter:   rand.Float64,
	}
}

func (s *service) GetWeather(ctx context.Context, location string) (Result, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return Result{}, apperrors.Wrap("invalid_input", "location cannot be empty", nil)
	}

	if s.cfg.APIKey == "" {
		s.logger.Info("weather demo mode", "location", location, "reason", "missing credential")
		return s.demo(location, "No weather API key configured - showing demo data"), nil
	}

	snap, err := s.provider.Fetch(ctx, location)
	switch {
	case err == nil:
		return Result{Snapshot: snap}, nil
	case errors.Is(err, ErrUnauthorized):
		s.logger.Warn("weather credential rejected, degrading to demo data", "location", location)
		return s.demo(location, "Weather API key not yet active - showing demo data"), nil
	case errors.Is(err, ErrUnavailable):
		s.logger.Warn("weather provider unreachable, degrading to demo data", "location", location, "error", err)
		return s.demo(location, "Weather service unreachable - showing demo data"), nil
	default:
		return Result{}, apperrors.Wrap("weather_error", "failed to fetch weather", err)
	}
}

func (s *service) demo(location, reason string) Result {
	return Result{
		Snapshot:   Synthesize(location, s.jitter),
		DemoMode:   true,
		DemoReason: reason,
	}
}
