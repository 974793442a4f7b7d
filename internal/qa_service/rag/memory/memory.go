package memory

import (
	"sync"

	"AdmissionOfficer/internal/models"
)

// ConversationMemory is a fixed-capacity FIFO buffer of question/answer pairs.
// Once the window is full, adding a new interaction evicts the oldest one.
// All methods are safe for concurrent use; mutations for one session are
// serialized by the memory's own lock.
type ConversationMemory struct {
	mu     sync.Mutex
	window int
	head   int
	count  int
	ring   []models.Interaction
}

// NewConversationMemory creates a memory holding the last window interactions.
// A non-positive window falls back to DefaultWindowSize.
func NewConversationMemory(window int) *ConversationMemory {
	if window <= 0 {
		window = DefaultWindowSize
	}
	return &ConversationMemory{
		window: window,
		ring:   make([]models.Interaction, window),
	}
}

// Add appends a question/answer pair, evicting the oldest pair when the
// window is full. O(1).
func (m *ConversationMemory) Add(question, answer string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.count < m.window {
		m.ring[(m.head+m.count)%m.window] = models.Interaction{Question: question, Answer: answer}
		m.count++
		return
	}
	// Full: overwrite the oldest slot and advance the head.
	m.ring[m.head] = models.Interaction{Question: question, Answer: answer}
	m.head = (m.head + 1) % m.window
}

// History returns the stored interactions, oldest first.
func (m *ConversationMemory) History() []models.Interaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Interaction, m.count)
	for i := 0; i < m.count; i++ {
		out[i] = m.ring[(m.head+i)%m.window]
	}
	return out
}

// Clear removes all stored interactions.
func (m *ConversationMemory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.head = 0
	m.count = 0
}

// Len returns the number of stored interactions, always <= the window size.
func (m *ConversationMemory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

// Window returns the configured window size.
func (m *ConversationMemory) Window() int {
	return m.window
}
