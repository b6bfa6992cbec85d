package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/weather-stylist/internal/domain/genjob"
	"github.com/yanqian/weather-stylist/internal/domain/intent"
	"github.com/yanqian/weather-stylist/internal/domain/outfit"
	"github.com/yanqian/weather-stylist/internal/domain/photos"
	"github.com/yanqian/weather-stylist/internal/domain/weather"
	apperrors "github.com/yanqian/weather-stylist/pkg/errors"
)

// Service orchestrates a chat turn: parse intent, fetch weather, derive an
// outfit, resolve item images, append one result entry to the transcript.
type Service interface {
	Ask(ctx context.Context, sessionID, message string) (Message, error)
	GenerateOutfitPhoto(ctx context.Context, sessionID string, req genjob.Request) (Message, error)
	History(ctx context.Context, sessionID string) ([]Message, error)
}

type service struct {
	repo    Repository
	weather weather.Service
	photos  photos.Service
	jobs    genjob.Service
	logger  *slog.Logger
	now     func() time.Time
	// trackAsync is swapped out in tests to run generation tracking inline.
	trackAsync bool
}

// NewService wires up the conversation domain.
func NewService(repo Repository, weatherSvc weather.Service, photoSvc photos.Service, jobSvc genjob.Service, logger *slog.Logger) Service {
	return &service{
		repo:       repo,
		weather:    weatherSvc,
		photos:     photoSvc,
		jobs:       jobSvc,
		logger:     logger.With("component", "conversation.service"),
		now:        time.Now,
		trackAsync: true,
	}
}

func (s *service) Ask(ctx context.Context, sessionID, message string) (Message, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Message{}, apperrors.Wrap("invalid_input", "message cannot be empty", nil)
	}
	sessionID = normalizeSession(sessionID)

	if err := s.repo.Append(ctx, Message{
		ID:        uuid.New(),
		SessionID: sessionID,
		Role:      RoleUser,
		Kind:      KindText,
		Text:      message,
		CreatedAt: s.now(),
	}); err != nil {
		return Message{}, apperrors.Wrap("transcript_error", "failed to append user turn", err)
	}

	parsed := intent.Extract(message)
	var reply Message
	switch parsed.Kind {
	case intent.KindCompare:
		reply = s.compareReply(ctx, sessionID, parsed.CityA, parsed.CityB)
	default:
		reply = s.singleReply(ctx, sessionID, parsed.City)
	}

	if err := s.repo.Append(ctx, reply); err != nil {
		return Message{}, apperrors.Wrap("transcript_error", "failed to append reply", err)
	}
	return reply, nil
}

// compareReply runs two fully independent pipelines concurrently. Either
// side's weather failure fails the whole comparison.
func (s *service) compareReply(ctx context.Context, sessionID, cityA, cityB string) Message {
	type side struct {
		card WeatherCard
		err  error
	}
	var left, right side
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		left.card, left.err = s.resolvePipeline(ctx, cityA)
	}()
	go func() {
		defer wg.Done()
		right.card, right.err = s.resolvePipeline(ctx, cityB)
	}()
	wg.Wait()

	if left.err != nil || right.err != nil {
		failed := cityA
		err := left.err
		if left.err == nil {
			failed = cityB
			err = right.err
		}
		s.logger.Warn("comparison pipeline failed", "city", failed, "error", err)
		return s.errorReply(sessionID, fmt.Sprintf("Sorry, I couldn't fetch the weather for %s. Please try again.", failed))
	}

	return Message{
		ID:         uuid.New(),
		SessionID:  sessionID,
		Role:       RoleAssistant,
		Kind:       KindComparison,
		Comparison: &Comparison{Left: left.card, Right: right.card},
		CreatedAt:  s.now(),
	}
}

func (s *service) singleReply(ctx context.Context, sessionID, city string) Message {
	card, err := s.resolvePipeline(ctx, city)
	if err != nil {
		s.logger.Warn("pipeline failed", "city", city, "error", err)
		return s.errorReply(sessionID, fmt.Sprintf("Sorry, I couldn't fetch the weather for %s. Please try again.", city))
	}
	return Message{
		ID:        uuid.New(),
		SessionID: sessionID,
		Role:      RoleAssistant,
		Kind:      KindWeather,
		Card:      &card,
		CreatedAt: s.now(),
	}
}

// resolvePipeline is sequential (weather, then rules) except for the
// per-item image lookups, which run concurrently across all variations.
// Image lookups cannot fail, so the join never aborts the pipeline.
func (s *service) resolvePipeline(ctx context.Context, city string) (WeatherCard, error) {
	res, err := s.weather.GetWeather(ctx, city)
	if err != nil {
		return WeatherCard{}, err
	}

	rec := outfit.Recommend(res.Snapshot)
	s.attachImages(ctx, &rec)

	return WeatherCard{Weather: res, Outfit: rec}, nil
}

func (s *service) attachImages(ctx context.Context, rec *outfit.Recommendation) {
	var wg sync.WaitGroup
	for vi := range rec.Variations {
		for ii := range rec.Variations[vi].Items {
			wg.Add(1)
			go func(item *outfit.Item) {
				defer wg.Done()
				item.ImageURL = s.photos.FindImage(ctx, item.Query)
			}(&rec.Variations[vi].Items[ii])
		}
	}
	wg.Wait()
}

// GenerateOutfitPhoto starts an image-generation job, appends a generating
// entry, and tracks the job to a terminal state in the background, updating
// the entry in place by message id.
func (s *service) GenerateOutfitPhoto(ctx context.Context, sessionID string, req genjob.Request) (Message, error) {
	sessionID = normalizeSession(sessionID)

	taskID, err := s.jobs.Start(ctx, req)
	if err != nil {
		return Message{}, err
	}

	msg := Message{
		ID:        uuid.New(),
		SessionID: sessionID,
		Role:      RoleAssistant,
		Kind:      KindGeneration,
		Generation: &GenerationCard{
			TaskID: taskID,
			Style:  req.Style,
			Status: genjob.StatusGenerating,
		},
		CreatedAt: s.now(),
	}
	if err := s.repo.Append(ctx, msg); err != nil {
		return Message{}, apperrors.Wrap("transcript_error", "failed to append generation entry", err)
	}

	if s.trackAsync {
		go s.trackGeneration(context.WithoutCancel(ctx), msg.ID, taskID, req.Style)
	} else {
		s.trackGeneration(ctx, msg.ID, taskID, req.Style)
	}
	return msg, nil
}

func (s *service) trackGeneration(ctx context.Context, messageID uuid.UUID, taskID, style string) {
	snap, err := s.jobs.Poll(ctx, taskID)
	card := GenerationCard{TaskID: taskID, Style: style}
	if err != nil {
		card.Status = genjob.StatusGenerationFailed
		card.Error = err.Error()
	} else {
		card.Status = snap.Status
		card.ImageURL = snap.ImageURL
		card.Error = snap.Error
	}
	if err := s.repo.UpdateGeneration(ctx, messageID, card); err != nil {
		s.logger.Error("failed to attach generation progress", "messageId", messageID, "error", err)
	}
}

func (s *service) History(ctx context.Context, sessionID string) ([]Message, error) {
	msgs, err := s.repo.List(ctx, normalizeSession(sessionID))
	if err != nil {
		return nil, apperrors.Wrap("transcript_error", "failed to load transcript", err)
	}
	return msgs, nil
}

func (s *service) errorReply(sessionID, text string) Message {
	return Message{
		ID:        uuid.New(),
		SessionID: sessionID,
		Role:      RoleAssistant,
		Kind:      KindText,
		Text:      text,
		CreatedAt: s.now(),
	}
}

func normalizeSession(sessionID string) string {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return "default"
	}
	return sessionID
}
