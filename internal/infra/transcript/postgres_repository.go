package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/weather-stylist/internal/domain/conversation"
)

// PostgresRepository implements conversation.Repository using pgx.
//
// Schema:
//
//	CREATE TABLE IF NOT EXISTS messages (
//	    id         UUID PRIMARY KEY,
//	    session_id TEXT NOT NULL,
//	    role       TEXT NOT NULL,
//	    kind       TEXT NOT NULL,
//	    payload    JSONB NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX IF NOT EXISTS messages_session_idx ON messages (session_id, created_at);
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// payload holds the message body that varies by kind.
type payload struct {
	Text       string                       `json:"text,omitempty"`
	Card       *conversation.WeatherCard    `json:"card,omitempty"`
	Comparison *conversation.Comparison     `json:"comparison,omitempty"`
	Generation *conversation.GenerationCard `json:"generation,omitempty"`
}

// Append inserts a transcript turn.
func (r *PostgresRepository) Append(ctx context.Context, msg conversation.Message) error {
	body, err := json.Marshal(payload{
		Text:       msg.Text,
		Card:       msg.Card,
		Comparison: msg.Comparison,
		Generation: msg.Generation,
	})
	if err != nil {
		return fmt.Errorf("encode message payload: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO messages (id, session_id, role, kind, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, msg.ID, msg.SessionID, string(msg.Role), string(msg.Kind), body, msg.CreatedAt)
	return err
}

// UpdateGeneration replaces the generation card on an existing turn.
func (r *PostgresRepository) UpdateGeneration(ctx context.Context, messageID uuid.UUID, card conversation.GenerationCard) error {
	body, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("encode generation card: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE messages
		SET payload = jsonb_set(payload, '{generation}', $2::jsonb)
		WHERE id = $1
	`, messageID, body)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("transcript: message not found")
	}
	return nil
}

// List returns a session transcript ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context, sessionID string) ([]conversation.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, session_id, role, kind, payload, created_at
		FROM messages
		WHERE session_id = $1
		ORDER BY created_at, id
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []conversation.Message
	for rows.Next() {
		var (
			msg  conversation.Message
			role string
			kind string
			body []byte
		)
		if err := rows.Scan(&msg.ID, &msg.SessionID, &role, &kind, &body, &msg.CreatedAt); err != nil {
			return nil, err
		}
		msg.Role = conversation.Role(role)
		msg.Kind = conversation.MessageKind(kind)
		var p payload
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("decode message payload: %w", err)
		}
		msg.Text = p.Text
		msg.Card = p.Card
		msg.Comparison = p.Comparison
		msg.Generation = p.Generation
		out = append(out, msg)
	}
	return out, rows.Err()
}

var _ conversation.Repository = (*PostgresRepository)(nil)
