package weather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	snap  Snapshot
	err   error
	calls int
}

func (s *stubProvider) Fetch(_ context.Context, _ string) (Snapshot, error) {
	s.calls++
	if s.err != nil {
		return Snapshot{}, s.err
	}
	return s.snap, nil
}

func newTestService(cfg Config, provider Provider) *service {
	return &service{
		cfg:      cfg,
		provider: provider,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		jitter:   func() float64 { return 0.5 },
	}
}

func TestGetWeatherEmptyLocation(t *testing.T) {
	svc := newTestService(Config{APIKey: "key"}, &stubProvider{})
	_, err := svc.GetWeather(context.Background(), "   ")
	require.Error(t, err)
}

func TestGetWeatherLive(t *testing.T) {
	provider := &stubProvider{snap: Snapshot{Location: "Seattle", Temperature: 11, Description: "light rain"}}
	svc := newTestService(Config{APIKey: "key"}, provider)

	res, err := svc.GetWeather(context.Background(), "Seattle")
	require.NoError(t, err)
	require.False(t, res.DemoMode)
	require.Equal(t, "Seattle", res.Snapshot.Location)
	require.Equal(t, 1, provider.calls)
}

func TestGetWeatherMissingKeyDegradesToDemo(t *testing.T) {
	provider := &stubProvider{}
	svc := newTestService(Config{}, provider)

	res, err := svc.GetWeather(context.Background(), "Tokyo")
	require.NoError(t, err)
	require.True(t, res.DemoMode)
	require.NotEmpty(t, res.DemoReason)
	require.Equal(t, "Tokyo", res.Snapshot.Location)
	require.Zero(t, provider.calls)
}

func TestGetWeatherUnauthorizedDegradesToDemo(t *testing.T) {
	svc := newTestService(Config{APIKey: "pending"}, &stubProvider{err: ErrUnauthorized})

	res, err := svc.GetWeather(context.Background(), "London")
	require.NoError(t, err)
	require.True(t, res.DemoMode)
	require.Equal(t, "London", res.Snapshot.Location)
}

func TestGetWeatherUnreachableDegradesToDemo(t *testing.T) {
	svc := newTestService(Config{APIKey: "key"}, &stubProvider{err: ErrUnavailable})

	res, err := svc.GetWeather(context.Background(), "Paris")
	require.NoError(t, err)
	require.True(t, res.DemoMode)
}

func TestGetWeatherHardUpstreamError(t *testing.T) {
	svc := newTestService(Config{APIKey: "key"}, &stubProvider{err: errors.New("status=500")})

	_, err := svc.GetWeather(context.Background(), "Paris")
	require.Error(t, err)
}

func TestSynthesizeProfileMatch(t *testing.T) {
	jitter := func() float64 { return 0.5 }
	snap := Synthesize("what about singapore right now", jitter)
	require.Equal(t, "Singapore", snap.Location)
	require.Equal(t, "SG", snap.Country)
	require.Equal(t, "Rain", snap.Condition)
}

func TestSynthesizeProfileFirstMatchWins(t *testing.T) {
	jitter := func() float64 { return 0.5 }
	// "new york city" matches the "new york" entry before anything else.
	snap := Synthesize("new york city", jitter)
	require.Equal(t, "New York", snap.Location)
	require.Equal(t, "US", snap.Country)
}

func TestSynthesizeHashIsDeterministic(t *testing.T) {
	jitter := func() float64 { return 0.5 }
	first := Synthesize("Xanadu", jitter)
	second := Synthesize("Xanadu", jitter)
	require.Equal(t, first, second)
	require.Equal(t, "Xanadu", first.Location)
	require.GreaterOrEqual(t, first.Temperature, 13.0)
	require.Less(t, first.Temperature, 37.0)
	require.Contains(t, []string{"Clear", "Clouds", "Rain"}, first.Condition)
}

func TestSynthesizeWhitespaceOnlyLocation(t *testing.T) {
	snap := Synthesize("   ", func() float64 { return 0.5 })
	require.Empty(t, snap.Location)
	require.Contains(t, []string{"Clear", "Clouds", "Rain"}, snap.Condition)
}

func TestSynthesizeJitterVaries(t *testing.T) {
	low := Synthesize("Xanadu", func() float64 { return 0 })
	high := Synthesize("Xanadu", func() float64 { return 1 })
	require.NotEqual(t, low.Temperature, high.Temperature)
	require.Equal(t, low.Condition, high.Condition)
}
