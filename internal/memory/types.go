package memory

import (
	"context"
	"time"
)

// Message is one transcript entry: who said it and what was said.
type Message struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionData is the full transcript of one operator session.
type SessionData struct {
	SessionID string    `json:"session_id"`
	Messages  []Message `json:"messages"`
	Metadata  Metadata  `json:"metadata"`
}

type Metadata struct {
	StartedAt    time.Time `json:"started_at"`
	LastActivity time.Time `json:"last_activity"`
	MessageCount int       `json:"message_count"`
}

// Store persists transcripts. The running service uses Redis; anything
// implementing this can back the Manager.
type Store interface {
	LoadSession(ctx context.Context, sessionID string) (*SessionData, error)
	SaveMessage(ctx context.Context, sessionID string, msg Message) error
	ClearSession(ctx context.Context, sessionID string) error
}
