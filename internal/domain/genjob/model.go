package genjob

import (
	"encoding/json"
	"time"
)

// Status is the lifecycle state of one image-generation job. A job is
// terminal once it reaches anything other than generating/unknown.
type Status string

const (
	StatusGenerating       Status = "generating"
	StatusSuccess          Status = "success"
	StatusCreateFailed     Status = "create_failed"
	StatusGenerationFailed Status = "generation_failed"
	StatusTimedOut         Status = "timed_out"
	StatusUnknown          Status = "unknown"
)

// Terminal reports whether polling should stop at this status.
func (s Status) Terminal() bool {
	switch s {
	case StatusSuccess, StatusCreateFailed, StatusGenerationFailed, StatusTimedOut:
		return true
	default:
		return false
	}
}

// StatusForFlag maps the provider's numeric successFlag to a status.
func StatusForFlag(flag int) Status {
	switch flag {
	case 0:
		return StatusGenerating
	case 1:
		return StatusSuccess
	case 2:
		return StatusCreateFailed
	case 3:
		return StatusGenerationFailed
	default:
		return StatusUnknown
	}
}

// WeatherBrief is the weather context sent with a generation request.
type WeatherBrief struct {
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
}

// ItemBrief names one outfit piece included in the generated photo.
type ItemBrief struct {
	Name  string `json:"name"`
	Query string `json:"query"`
}

// Request starts a generation job for a chosen style variation.
type Request struct {
	Weather WeatherBrief `json:"weather"`
	Style   string       `json:"style"`
	Items   []ItemBrief  `json:"items"`
}

// Snapshot is one observation of a job's state, raw provider payload
// included so the front end can surface provider detail.
type Snapshot struct {
	Status      Status          `json:"status"`
	SuccessFlag int             `json:"successFlag"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Error       string          `json:"error,omitempty"`
	Raw         json.RawMessage `json:"rawData"`
}

// Config wires runtime dependencies for the generation domain.
type Config struct {
	PollInterval time.Duration
	MaxAttempts  int
}
