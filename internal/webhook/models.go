package webhook

import (
	"time"

	"github.com/google/uuid"
)

// Payload is an inbound webhook delivery from an external system.
type Payload struct {
	Source  string   `json:"source"`
	Message string   `json:"message"`
	Tags    []string `json:"tags"`
}

// LogEntry is an audit record of one accepted delivery.
type LogEntry struct {
	ID         uuid.UUID `json:"id"`
	Source     string    `json:"source"`
	Message    string    `json:"message"`
	Tags       []string  `json:"tags"`
	ReceivedAt time.Time `json:"datetime"`
}
