package conversation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-stylist/internal/domain/genjob"
	"github.com/yanqian/weather-stylist/internal/domain/weather"
)

type memoryRepo struct {
	mu   sync.Mutex
	msgs []Message
}

func (r *memoryRepo) Append(_ context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *memoryRepo) UpdateGeneration(_ context.Context, messageID uuid.UUID, card GenerationCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.msgs {
		if r.msgs[i].ID == messageID {
			copied := card
			r.msgs[i].Generation = &copied
			return nil
		}
	}
	return errors.New("message not found")
}

func (r *memoryRepo) List(_ context.Context, sessionID string) ([]Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, 0, len(r.msgs))
	for _, m := range r.msgs {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	return out, nil
}

type stubWeather struct {
	failFor map[string]bool
}

func (s *stubWeather) GetWeather(_ context.Context, location string) (weather.Result, error) {
	if s.failFor[location] {
		return weather.Result{}, errors.New("upstream exploded")
	}
	return weather.Result{
		Snapshot: weather.Snapshot{
			Location:    location,
			Temperature: 5,
			FeelsLike:   3,
			Condition:   "Rain",
			Description: "light rain",
			Humidity:    50,
			WindSpeed:   3,
		},
	}, nil
}

type stubPhotos struct{}

func (stubPhotos) FindImage(_ context.Context, query string) string {
	return "https://img.example/" + query
}

type stubJobs struct {
	taskID   string
	startErr error
	poll     genjob.Snapshot
	pollErr  error
}

func (s *stubJobs) Start(_ context.Context, _ genjob.Request) (string, error) {
	if s.startErr != nil {
		return "", s.startErr
	}
	return s.taskID, nil
}

func (s *stubJobs) Status(_ context.Context, _ string) (genjob.Snapshot, error) {
	return s.poll, s.pollErr
}

func (s *stubJobs) Poll(_ context.Context, _ string) (genjob.Snapshot, error) {
	return s.poll, s.pollErr
}

func newTestService(repo Repository, weatherSvc weather.Service, jobs genjob.Service) *service {
	return &service{
		repo:    repo,
		weather: weatherSvc,
		photos:  stubPhotos{},
		jobs:    jobs,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func TestAskSingleCity(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(repo, &stubWeather{}, &stubJobs{})

	reply, err := svc.Ask(context.Background(), "s1", "weather in Seattle")
	require.NoError(t, err)
	require.Equal(t, KindWeather, reply.Kind)
	require.NotNil(t, reply.Card)
	require.Equal(t, "Seattle", reply.Card.Weather.Snapshot.Location)
	require.Contains(t, reply.Card.Outfit.Note, "☔ Rain expected!")

	// Every item got an image attached; photo lookup cannot fail.
	for _, v := range reply.Card.Outfit.Variations {
		for _, item := range v.Items {
			require.Equal(t, "https://img.example/"+item.Query, item.ImageURL)
		}
	}

	// One user turn plus exactly one result entry.
	msgs, err := svc.History(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, RoleUser, msgs[0].Role)
	require.Equal(t, RoleAssistant, msgs[1].Role)
}

func TestAskComparison(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(repo, &stubWeather{}, &stubJobs{})

	reply, err := svc.Ask(context.Background(), "s1", "compare Tokyo and New York")
	require.NoError(t, err)
	require.Equal(t, KindComparison, reply.Kind)
	require.NotNil(t, reply.Comparison)
	require.Equal(t, "Tokyo", reply.Comparison.Left.Weather.Snapshot.Location)
	require.Equal(t, "New York", reply.Comparison.Right.Weather.Snapshot.Location)
}

func TestAskComparisonFailsWhole(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(repo, &stubWeather{failFor: map[string]bool{"New York": true}}, &stubJobs{})

	reply, err := svc.Ask(context.Background(), "s1", "compare Tokyo and New York")
	require.NoError(t, err)
	require.Equal(t, KindText, reply.Kind)
	require.Contains(t, reply.Text, "New York")
	require.Nil(t, reply.Comparison)

	// Still exactly one error entry appended after the user turn.
	msgs, _ := svc.History(context.Background(), "s1")
	require.Len(t, msgs, 2)
}

func TestAskWeatherFailureProducesErrorEntry(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(repo, &stubWeather{failFor: map[string]bool{"Seattle": true}}, &stubJobs{})

	reply, err := svc.Ask(context.Background(), "s1", "weather in Seattle")
	require.NoError(t, err)
	require.Equal(t, KindText, reply.Kind)
	require.Contains(t, reply.Text, "Seattle")
}

func TestAskEmptyMessage(t *testing.T) {
	svc := newTestService(&memoryRepo{}, &stubWeather{}, &stubJobs{})
	_, err := svc.Ask(context.Background(), "s1", "  ")
	require.Error(t, err)
}

func TestGenerateOutfitPhotoUpdatesByMessageID(t *testing.T) {
	repo := &memoryRepo{}
	jobs := &stubJobs{
		taskID: "task-9",
		poll:   genjob.Snapshot{Status: genjob.StatusSuccess, ImageURL: "https://img.example/result.png"},
	}
	svc := newTestService(repo, &stubWeather{}, jobs)
	// Run tracking inline so the test observes the terminal update.
	svc.trackAsync = false

	msg, err := svc.GenerateOutfitPhoto(context.Background(), "s1", genjob.Request{
		Style: "Casual Cool",
		Items: []genjob.ItemBrief{{Name: "Denim Jacket"}},
	})
	require.NoError(t, err)
	require.Equal(t, "task-9", msg.Generation.TaskID)

	msgs, _ := svc.History(context.Background(), "s1")
	require.Len(t, msgs, 1)
	require.Equal(t, msg.ID, msgs[0].ID)
	require.Equal(t, genjob.StatusSuccess, msgs[0].Generation.Status)
	require.Equal(t, "https://img.example/result.png", msgs[0].Generation.ImageURL)
}

func TestGenerateOutfitPhotoStartFailureAppendsNothing(t *testing.T) {
	repo := &memoryRepo{}
	jobs := &stubJobs{startErr: errors.New("provider rejected")}
	svc := newTestService(repo, &stubWeather{}, jobs)

	_, err := svc.GenerateOutfitPhoto(context.Background(), "s1", genjob.Request{Style: "Casual Cool"})
	require.Error(t, err)

	msgs, _ := svc.History(context.Background(), "s1")
	require.Empty(t, msgs)
}

func TestGenerateOutfitPhotoTerminalFailureRecorded(t *testing.T) {
	repo := &memoryRepo{}
	jobs := &stubJobs{
		taskID: "task-9",
		poll:   genjob.Snapshot{Status: genjob.StatusTimedOut, Error: "image generation did not finish within 120 polls"},
	}
	svc := newTestService(repo, &stubWeather{}, jobs)
	svc.trackAsync = false

	_, err := svc.GenerateOutfitPhoto(context.Background(), "s1", genjob.Request{Style: "Casual Cool"})
	require.NoError(t, err)

	msgs, _ := svc.History(context.Background(), "s1")
	require.Len(t, msgs, 1)
	require.Equal(t, genjob.StatusTimedOut, msgs[0].Generation.Status)
	require.NotEmpty(t, msgs[0].Generation.Error)
}
