package transcript

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/yanqian/weather-stylist/internal/domain/conversation"
)

// MemoryRepository is an in-memory transcript used for tests/dev and the
// default when no Postgres DSN is configured.
type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string][]conversation.Message
	byID     map[uuid.UUID]location
}

type location struct {
	session string
	index   int
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		sessions: make(map[string][]conversation.Message),
		byID:     make(map[uuid.UUID]location),
	}
}

// Append implements conversation.Repository.
func (r *MemoryRepository) Append(_ context.Context, msg conversation.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[msg.ID] = location{session: msg.SessionID, index: len(r.sessions[msg.SessionID])}
	r.sessions[msg.SessionID] = append(r.sessions[msg.SessionID], msg)
	return nil
}

// UpdateGeneration attaches job progress in place, keyed by message id.
func (r *MemoryRepository) UpdateGeneration(_ context.Context, messageID uuid.UUID, card conversation.GenerationCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	loc, ok := r.byID[messageID]
	if !ok {
		return errors.New("transcript: message not found")
	}
	copied := card
	r.sessions[loc.session][loc.index].Generation = &copied
	return nil
}

// List returns the ordered transcript for a session.
func (r *MemoryRepository) List(_ context.Context, sessionID string) ([]conversation.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	src := r.sessions[sessionID]
	out := make([]conversation.Message, len(src))
	copy(out, src)
	return out, nil
}

var _ conversation.Repository = (*MemoryRepository)(nil)
