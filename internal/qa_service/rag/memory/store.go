package memory

import (
	"context"
	"time"

	"AdmissionOfficer/internal/models"
	"AdmissionOfficer/pkg/util"
)

// DefaultWindowSize is the number of past interactions kept per session when
// no window is configured.
const DefaultWindowSize = 10

// SessionStats describes one active session for the sessions listing endpoint.
type SessionStats struct {
	SessionID    string `json:"session_id"`
	Interactions int    `json:"interactions"`
	MaxSize      int    `json:"max_size"`
}

// Store owns the per-session conversation memories. It is the only shared
// mutable state of the pipeline, injected as a collaborator so the transport
// layer never touches a process-wide table directly.
type Store interface {
	// Append records a question/answer pair for the session, creating the
	// session on first reference.
	Append(ctx context.Context, sessionID string, interaction models.Interaction) error
	// History returns the session's interactions, oldest first. An unknown
	// session yields an empty history.
	History(ctx context.Context, sessionID string) ([]models.Interaction, error)
	// Size returns the number of stored interactions for the session.
	Size(ctx context.Context, sessionID string) (int, error)
	// Clear empties the session's memory but keeps the session.
	Clear(ctx context.Context, sessionID string) error
	// Delete removes the session completely.
	Delete(ctx context.Context, sessionID string) error
	// Sessions lists the currently active sessions.
	Sessions(ctx context.Context) ([]SessionStats, error)
}

// InMemoryStore keeps conversation memories in process memory, bounded by an
// LRU cache with idle expiry so abandoned sessions cannot grow the table
// forever. Concurrent requests for the same session are serialized by the
// per-memory lock.
type InMemoryStore struct {
	window   int
	memories *util.LRUCache[string, *ConversationMemory]
}

// NewInMemoryStore creates a store evicting the least recently used session
// beyond maxSessions and expiring sessions idle for longer than ttl (ttl <= 0
// disables expiry).
func NewInMemoryStore(window, maxSessions int, ttl time.Duration) (*InMemoryStore, error) {
	if window <= 0 {
		window = DefaultWindowSize
	}
	cache, err := util.NewWithConfig[string, *ConversationMemory](util.CacheConfig{
		Capacity: maxSessions,
		TTL:      ttl,
	})
	if err != nil {
		return nil, err
	}
	return &InMemoryStore{window: window, memories: cache}, nil
}

// memory returns the session's ConversationMemory, creating it on first use.
func (s *InMemoryStore) memory(sessionID string) *ConversationMemory {
	if mem, ok := s.memories.Get(sessionID); ok {
		return mem
	}
	mem := NewConversationMemory(s.window)
	s.memories.Put(sessionID, mem)
	return mem
}

func (s *InMemoryStore) Append(_ context.Context, sessionID string, interaction models.Interaction) error {
	s.memory(sessionID).Add(interaction.Question, interaction.Answer)
	return nil
}

func (s *InMemoryStore) History(_ context.Context, sessionID string) ([]models.Interaction, error) {
	return s.memory(sessionID).History(), nil
}

func (s *InMemoryStore) Size(_ context.Context, sessionID string) (int, error) {
	if mem, ok := s.memories.Get(sessionID); ok {
		return mem.Len(), nil
	}
	return 0, nil
}

func (s *InMemoryStore) Clear(_ context.Context, sessionID string) error {
	if mem, ok := s.memories.Get(sessionID); ok {
		mem.Clear()
	}
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, sessionID string) error {
	s.memories.Remove(sessionID)
	return nil
}

func (s *InMemoryStore) Sessions(_ context.Context) ([]SessionStats, error) {
	keys := s.memories.Keys()
	stats := make([]SessionStats, 0, len(keys))
	for _, key := range keys {
		mem, ok := s.memories.Get(key)
		if !ok {
			continue
		}
		stats = append(stats, SessionStats{
			SessionID:    key,
			Interactions: mem.Len(),
			MaxSize:      mem.Window(),
		})
	}
	return stats, nil
}
