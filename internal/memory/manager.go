package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/memory"
)

// Manager is the transcript layer used by the dispatcher: every message is
// written through to the Store and mirrored into a per-session langchaingo
// ConversationBuffer, which renders the history block of the next prompt.
// Chat turns and admin resets arrive on separate delivery goroutines, so
// all session access is serialized behind mu.
type Manager struct {
	mu       sync.Mutex
	store    Store
	sessions map[string]*memory.ConversationBuffer
	logger   zerolog.Logger
}

func NewManager(store Store, logger zerolog.Logger) *Manager {
	return &Manager{
		store:    store,
		sessions: make(map[string]*memory.ConversationBuffer),
		logger:   logger,
	}
}

// getOrCreateSession requires mu to be held.
func (m *Manager) getOrCreateSession(ctx context.Context, sessionID string) (*memory.ConversationBuffer, error) {
	if mem, exists := m.sessions[sessionID]; exists {
		return mem, nil
	}

	mem := memory.NewConversationBuffer()

	session, err := m.store.LoadSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	for _, msg := range session.Messages {
		var chatMsg llms.ChatMessage
		switch msg.Role {
		case "user":
			chatMsg = llms.HumanChatMessage{Content: msg.Content}
		case "assistant":
			chatMsg = llms.AIChatMessage{Content: msg.Content}
		default:
			m.logger.Warn().Str("role", msg.Role).Msg("skipping message with unknown role")
			continue
		}
		if err := mem.ChatHistory.AddMessage(ctx, chatMsg); err != nil {
			return nil, fmt.Errorf("replay message: %w", err)
		}
	}

	m.sessions[sessionID] = mem
	m.logger.Debug().Str("session", sessionID).Int("messages", len(session.Messages)).Msg("session loaded")
	return mem, nil
}

// SaveUser appends an operator message to the transcript.
func (m *Manager) SaveUser(ctx context.Context, sessionID, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mem, err := m.getOrCreateSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := mem.ChatHistory.AddUserMessage(ctx, content); err != nil {
		return fmt.Errorf("buffer user message: %w", err)
	}
	return m.store.SaveMessage(ctx, sessionID, Message{
		Role: "user", Content: content, Timestamp: time.Now(),
	})
}

// SaveAssistant appends an assistant entry (conversational reply,
// confirmation or warning) to the transcript.
func (m *Manager) SaveAssistant(ctx context.Context, sessionID, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mem, err := m.getOrCreateSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := mem.ChatHistory.AddAIMessage(ctx, content); err != nil {
		return fmt.Errorf("buffer assistant message: %w", err)
	}
	return m.store.SaveMessage(ctx, sessionID, Message{
		Role: "assistant", Content: content, Timestamp: time.Now(),
	})
}

// History renders the prior conversation for the prompt. The current turn's
// user input must not be saved before calling this.
func (m *Manager) History(ctx context.Context, sessionID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mem, err := m.getOrCreateSession(ctx, sessionID)
	if err != nil {
		return "", err
	}
	messages, err := mem.ChatHistory.Messages(ctx)
	if err != nil {
		return "", fmt.Errorf("read history: %w", err)
	}

	var b strings.Builder
	for _, msg := range messages {
		switch msg := msg.(type) {
		case llms.HumanChatMessage:
			fmt.Fprintf(&b, "User: %s\n", msg.Content)
		case llms.AIChatMessage:
			fmt.Fprintf(&b, "Assistant: %s\n", msg.Content)
		}
	}
	return b.String(), nil
}

// ClearSession drops a session from both the cache and the store.
func (m *Manager) ClearSession(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	if err := m.store.ClearSession(ctx, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	m.logger.Info().Str("session", sessionID).Msg("session cleared")
	return nil
}

// ActiveSessions returns the number of cached sessions.
func (m *Manager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close closes the underlying store when it supports it.
func (m *Manager) Close() error {
	if closer, ok := m.store.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
