// Conversation state for multi-turn dialogues. A bounded window of prior
// turns lets the agent resolve follow-ups like "and the Pakistan game?"
// without the user restating the full question.
package agent

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hrygo/cricketsense/plugin/ai"
)

// MaxHistoryTurns bounds the conversation window. Older entries are dropped
// oldest-first inside the same lock that appends.
const MaxHistoryTurns = 10

// Turn is one history entry: a user question or an agent answer.
type Turn struct {
	Role    string // user, assistant
	Content string
}

// ConversationContext maintains state across conversation turns.
// Safe for concurrent use.
type ConversationContext struct {
	mu sync.RWMutex

	SessionID string
	Turns     []Turn

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewConversationContext creates a new conversation context.
func NewConversationContext(sessionID string) *ConversationContext {
	now := time.Now()
	return &ConversationContext{
		SessionID: sessionID,
		Turns:     make([]Turn, 0, MaxHistoryTurns),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Append records a turn and truncates to the newest MaxHistoryTurns entries.
func (c *ConversationContext) Append(role, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Turns = append(c.Turns, Turn{Role: role, Content: content})
	if len(c.Turns) > MaxHistoryTurns {
		c.Turns = c.Turns[len(c.Turns)-MaxHistoryTurns:]
	}
	c.UpdatedAt = time.Now()
}

// History returns the window as chat messages, oldest first. Empty turns
// are skipped to avoid provider API errors.
func (c *ConversationContext) History() []ai.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	messages := make([]ai.Message, 0, len(c.Turns))
	for _, turn := range c.Turns {
		if turn.Content == "" {
			continue
		}
		messages = append(messages, ai.Message{Role: turn.Role, Content: turn.Content})
	}
	return messages
}

// Len returns the number of retained turns.
func (c *ConversationContext) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.Turns)
}

// Clear resets the conversation history.
func (c *ConversationContext) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Turns = c.Turns[:0]
	c.UpdatedAt = time.Now()
}

// ContextStore manages conversation contexts for multiple sessions.
type ContextStore struct {
	mu       sync.RWMutex
	contexts map[string]*ConversationContext
}

// NewContextStore creates a new context store.
func NewContextStore() *ContextStore {
	return &ContextStore{
		contexts: make(map[string]*ConversationContext),
	}
}

// NewSessionID returns an opaque session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

// GetOrCreate retrieves or creates a conversation context.
func (s *ContextStore) GetOrCreate(sessionID string) *ConversationContext {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx, exists := s.contexts[sessionID]; exists {
		return ctx
	}

	ctx := NewConversationContext(sessionID)
	s.contexts[sessionID] = ctx
	return ctx
}

// Get retrieves a conversation context if it exists.
func (s *ContextStore) Get(sessionID string) *ConversationContext {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.contexts[sessionID]
}

// Delete removes a conversation context.
func (s *ContextStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.contexts, sessionID)
}

// CleanupOld removes contexts idle longer than maxAge and reports how many
// were dropped.
func (s *ContextStore) CleanupOld(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	deleted := 0

	for sessionID, ctx := range s.contexts {
		if ctx.UpdatedAt.Before(cutoff) {
			delete(s.contexts, sessionID)
			deleted++
		}
	}

	return deleted
}
