package genjob

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	apperrors "github.com/yanqian/weather-stylist/pkg/errors"
)

// Service starts image-generation jobs and drives them to a terminal state.
type Service interface {
	Start(ctx context.Context, req Request) (string, error)
	Status(ctx context.Context, taskID string) (Snapshot, error)
	Poll(ctx context.Context, taskID string) (Snapshot, error)
}

// Provider is the upstream image-generation API client.
type Provider interface {
	CreateTask(ctx context.Context, prompt string) (string, error)
	QueryTask(ctx context.Context, taskID string) (Snapshot, error)
}

// Archiver copies a finished image into durable storage. Failures are logged,
// never surfaced: archival is best effort.
type Archiver interface {
	Archive(ctx context.Context, taskID, imageURL string) error
}

// NopArchiver is used when no object storage is configured.
type NopArchiver struct{}

func (NopArchiver) Archive(context.Context, string, string) error { return nil }

type service struct {
	cfg      Config
	provider Provider
	archiver Archiver
	logger   *slog.Logger
}

// NewService wires up the generation domain.
func NewService(cfg Config, provider Provider, archiver Archiver, logger *slog.Logger) Service {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 120
	}
	if archiver == nil {
		archiver = NopArchiver{}
	}
	return &service{
		cfg:      cfg,
		provider: provider,
		archiver: archiver,
		logger:   logger.With("component", "genjob.service"),
	}
}

func (s *service) Start(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Style) == "" {
		return "", apperrors.Wrap("invalid_input", "style cannot be empty", nil)
	}
	if len(req.Items) == 0 {
		return "", apperrors.Wrap("invalid_input", "items cannot be empty", nil)
	}

	taskID, err := s.provider.CreateTask(ctx, buildPrompt(req))
	if err != nil {
		return "", apperrors.Wrap("generation_error", "failed to start image generation", err)
	}
	if strings.TrimSpace(taskID) == "" {
		return "", apperrors.Wrap("generation_error", "provider returned no task id", nil)
	}
	s.logger.Info("generation job started", "taskId", taskID, "style", req.Style)
	return taskID, nil
}

func (s *service) Status(ctx context.Context, taskID string) (Snapshot, error) {
	if strings.TrimSpace(taskID) == "" {
		return Snapshot{}, apperrors.Wrap("invalid_input", "taskId cannot be empty", nil)
	}
	snap, err := s.provider.QueryTask(ctx, taskID)
	if err != nil {
		return Snapshot{}, apperrors.Wrap("generation_error", "failed to query generation status", err)
	}
	return snap, nil
}

// Poll drives the job to a terminal state: one status query per fixed
// interval, no backoff, bounded by MaxAttempts. Query errors count as
// attempts and polling continues; the only way out is a terminal status,
// attempt exhaustion, or context cancellation.
func (s *service) Poll(ctx context.Context, taskID string) (Snapshot, error) {
	if strings.TrimSpace(taskID) == "" {
		return Snapshot{}, apperrors.Wrap("invalid_input", "taskId cannot be empty", nil)
	}

	timer := time.NewTimer(s.cfg.PollInterval)
	defer timer.Stop()

	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return Snapshot{}, ctx.Err()
		case <-timer.C:
		}

		snap, err := s.provider.QueryTask(ctx, taskID)
		if err != nil {
			s.logger.Warn("generation status query failed", "taskId", taskID, "attempt", attempt, "error", err)
		} else if snap.Status.Terminal() {
			s.logger.Info("generation job finished", "taskId", taskID, "status", snap.Status, "attempts", attempt)
			if snap.Status == StatusSuccess && snap.ImageURL != "" {
				if archiveErr := s.archiver.Archive(ctx, taskID, snap.ImageURL); archiveErr != nil {
					s.logger.Warn("generation archive failed", "taskId", taskID, "error", archiveErr)
				}
			}
			return snap, nil
		}

		timer.Reset(s.cfg.PollInterval)
	}

	s.logger.Warn("generation job timed out", "taskId", taskID, "attempts", s.cfg.MaxAttempts)
	return Snapshot{
		Status: StatusTimedOut,
		Error:  fmt.Sprintf("image generation did not finish within %d polls", s.cfg.MaxAttempts),
	}, nil
}

func buildPrompt(req Request) string {
	names := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		names = append(names, item.Name)
	}
	return fmt.Sprintf(
		"A photorealistic full-body outfit photo in the %q style for %d°C %s weather, featuring: %s. Studio lighting, neutral background, no text.",
		req.Style, int(math.Round(req.Weather.Temperature)), strings.TrimSpace(req.Weather.Description+" "+req.Weather.Condition), strings.Join(names, ", "),
	)
}
