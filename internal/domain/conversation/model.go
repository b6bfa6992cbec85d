package conversation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/weather-stylist/internal/domain/genjob"
	"github.com/yanqian/weather-stylist/internal/domain/outfit"
	"github.com/yanqian/weather-stylist/internal/domain/weather"
)

// Role marks who produced a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MessageKind discriminates the payload a transcript entry carries.
type MessageKind string

const (
	KindText       MessageKind = "text"
	KindWeather    MessageKind = "weather"
	KindComparison MessageKind = "comparison"
	KindGeneration MessageKind = "generation"
)

// WeatherCard bundles one resolved pipeline: a snapshot plus the derived
// outfit recommendation with item images attached.
type WeatherCard struct {
	Weather weather.Result        `json:"weather"`
	Outfit  outfit.Recommendation `json:"outfit"`
}

// Comparison carries two independently resolved city pipelines.
type Comparison struct {
	Left  WeatherCard `json:"left"`
	Right WeatherCard `json:"right"`
}

// GenerationCard tracks an outfit-photo job inside the transcript. It is the
// only message payload that mutates after append, always keyed by message id.
type GenerationCard struct {
	TaskID   string        `json:"taskId"`
	Style    string        `json:"style"`
	Status   genjob.Status `json:"status"`
	ImageURL string        `json:"imageUrl,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// Message is one transcript entry. The transcript is append-only; the single
// exception is attaching generation progress in place by matching ID.
type Message struct {
	ID         uuid.UUID       `json:"id"`
	SessionID  string          `json:"sessionId"`
	Role       Role            `json:"role"`
	Kind       MessageKind     `json:"kind"`
	Text       string          `json:"text,omitempty"`
	Card       *WeatherCard    `json:"card,omitempty"`
	Comparison *Comparison     `json:"comparison,omitempty"`
	Generation *GenerationCard `json:"generation,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Repository persists the transcript.
type Repository interface {
	Append(ctx context.Context, msg Message) error
	UpdateGeneration(ctx context.Context, messageID uuid.UUID, card GenerationCard) error
	List(ctx context.Context, sessionID string) ([]Message, error)
}
