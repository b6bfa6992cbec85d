package genjob

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type scriptedProvider struct {
	taskID    string
	createErr error
	snapshots []Snapshot
	queryErr  error
	queries   int
}

func (p *scriptedProvider) CreateTask(_ context.Context, _ string) (string, error) {
	if p.createErr != nil {
		return "", p.createErr
	}
	return p.taskID, nil
}

func (p *scriptedProvider) QueryTask(_ context.Context, _ string) (Snapshot, error) {
	idx := p.queries
	p.queries++
	if p.queryErr != nil {
		return Snapshot{}, p.queryErr
	}
	if idx >= len(p.snapshots) {
		return p.snapshots[len(p.snapshots)-1], nil
	}
	return p.snapshots[idx], nil
}

type recordingArchiver struct {
	taskID   string
	imageURL string
	calls    int
	err      error
}

func (a *recordingArchiver) Archive(_ context.Context, taskID, imageURL string) error {
	a.calls++
	a.taskID = taskID
	a.imageURL = imageURL
	return a.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRequest() Request {
	return Request{
		Weather: WeatherBrief{Temperature: 5, Condition: "Rain", Description: "light rain"},
		Style:   "Casual Cool",
		Items:   []ItemBrief{{Name: "Denim Jacket", Query: "blue denim jacket classic"}},
	}
}

func generating() Snapshot {
	return Snapshot{Status: StatusGenerating, SuccessFlag: 0}
}

func TestStartReturnsTaskID(t *testing.T) {
	svc := NewService(Config{}, &scriptedProvider{taskID: "task-123"}, nil, testLogger())

	taskID, err := svc.Start(context.Background(), testRequest())
	require.NoError(t, err)
	require.Equal(t, "task-123", taskID)
}

func TestStartProviderFailureDoesNotPoll(t *testing.T) {
	provider := &scriptedProvider{createErr: errors.New("quota exceeded")}
	svc := NewService(Config{}, provider, nil, testLogger())

	_, err := svc.Start(context.Background(), testRequest())
	require.Error(t, err)
	require.Zero(t, provider.queries)
}

func TestStartMissingTaskID(t *testing.T) {
	svc := NewService(Config{}, &scriptedProvider{taskID: "  "}, nil, testLogger())
	_, err := svc.Start(context.Background(), testRequest())
	require.Error(t, err)
}

func TestStartValidation(t *testing.T) {
	svc := NewService(Config{}, &scriptedProvider{taskID: "task-123"}, nil, testLogger())

	req := testRequest()
	req.Style = ""
	_, err := svc.Start(context.Background(), req)
	require.Error(t, err)

	req = testRequest()
	req.Items = nil
	_, err = svc.Start(context.Background(), req)
	require.Error(t, err)
}

func TestPollReachesSuccessAfterExactlyFourPolls(t *testing.T) {
	provider := &scriptedProvider{snapshots: []Snapshot{
		generating(), generating(), generating(),
		{Status: StatusSuccess, SuccessFlag: 1, ImageURL: "https://img.example/outfit.png"},
	}}
	archiver := &recordingArchiver{}
	svc := NewService(Config{PollInterval: time.Millisecond, MaxAttempts: 120}, provider, archiver, testLogger())

	snap, err := svc.Poll(context.Background(), "task-123")
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, snap.Status)
	require.Equal(t, "https://img.example/outfit.png", snap.ImageURL)
	require.Equal(t, 4, provider.queries)
	require.Equal(t, 1, archiver.calls)
	require.Equal(t, "task-123", archiver.taskID)
}

func TestPollTimesOutAtAttemptCeiling(t *testing.T) {
	provider := &scriptedProvider{snapshots: []Snapshot{generating()}}
	svc := NewService(Config{PollInterval: time.Microsecond, MaxAttempts: 120}, provider, nil, testLogger())

	snap, err := svc.Poll(context.Background(), "task-123")
	require.NoError(t, err)
	require.Equal(t, StatusTimedOut, snap.Status)
	require.Equal(t, 120, provider.queries)
}

func TestPollGenerationFailed(t *testing.T) {
	provider := &scriptedProvider{snapshots: []Snapshot{
		generating(),
		{Status: StatusGenerationFailed, SuccessFlag: 3, Error: "content policy"},
	}}
	svc := NewService(Config{PollInterval: time.Millisecond, MaxAttempts: 10}, provider, nil, testLogger())

	snap, err := svc.Poll(context.Background(), "task-123")
	require.NoError(t, err)
	require.Equal(t, StatusGenerationFailed, snap.Status)
	require.Equal(t, "content policy", snap.Error)
}

func TestPollContinuesThroughQueryErrors(t *testing.T) {
	provider := &scriptedProvider{queryErr: errors.New("temporarily unreachable")}
	svc := NewService(Config{PollInterval: time.Microsecond, MaxAttempts: 5}, provider, nil, testLogger())

	snap, err := svc.Poll(context.Background(), "task-123")
	require.NoError(t, err)
	require.Equal(t, StatusTimedOut, snap.Status)
	require.Equal(t, 5, provider.queries)
}

func TestPollCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := NewService(Config{PollInterval: time.Hour, MaxAttempts: 120}, &scriptedProvider{}, nil, testLogger())

	_, err := svc.Poll(ctx, "task-123")
	require.ErrorIs(t, err, context.Canceled)
}

func TestPollArchiveFailureIsNotSurfaced(t *testing.T) {
	provider := &scriptedProvider{snapshots: []Snapshot{
		{Status: StatusSuccess, SuccessFlag: 1, ImageURL: "https://img.example/outfit.png"},
	}}
	archiver := &recordingArchiver{err: errors.New("bucket unavailable")}
	svc := NewService(Config{PollInterval: time.Millisecond, MaxAttempts: 10}, provider, archiver, testLogger())

	snap, err := svc.Poll(context.Background(), "task-123")
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, snap.Status)
}

func TestStatusForFlag(t *testing.T) {
	require.Equal(t, StatusGenerating, StatusForFlag(0))
	require.Equal(t, StatusSuccess, StatusForFlag(1))
	require.Equal(t, StatusCreateFailed, StatusForFlag(2))
	require.Equal(t, StatusGenerationFailed, StatusForFlag(3))
	require.Equal(t, StatusUnknown, StatusForFlag(7))
}

func TestTerminal(t *testing.T) {
	require.False(t, StatusGenerating.Terminal())
	require.False(t, StatusUnknown.Terminal())
	require.True(t, StatusSuccess.Terminal())
	require.True(t, StatusCreateFailed.Terminal())
	require.True(t, StatusGenerationFailed.Terminal())
	require.True(t, StatusTimedOut.Terminal())
}
