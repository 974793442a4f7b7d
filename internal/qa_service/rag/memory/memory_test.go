package memory

import (
	"fmt"
	"sync"
	"testing"
)

func TestConversationMemoryWindow(t *testing.T) {
	m := NewConversationMemory(2)

	m.Add("q1", "a1")
	m.Add("q2", "a2")
	if got := m.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}

	// The third add evicts the oldest pair.
	m.Add("q3", "a3")
	if got := m.Len(); got != 2 {
		t.Fatalf("Len() after overflow = %d, want 2", got)
	}

	history := m.History()
	if history[0].Question != "q2" || history[1].Question != "q3" {
		t.Errorf("History() = [%s, %s], want [q2, q3]", history[0].Question, history[1].Question)
	}
}

func TestConversationMemoryOrder(t *testing.T) {
	const window = 5
	m := NewConversationMemory(window)

	// Add more interactions than the window holds.
	for i := 1; i <= window+3; i++ {
		m.Add(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	history := m.History()
	if len(history) != window {
		t.Fatalf("len(History()) = %d, want %d", len(history), window)
	}
	for i, interaction := range history {
		want := fmt.Sprintf("q%d", i+4)
		if interaction.Question != want {
			t.Errorf("history[%d].Question = %s, want %s", i, interaction.Question, want)
		}
	}
}

func TestConversationMemoryClear(t *testing.T) {
	m := NewConversationMemory(3)
	m.Add("q1", "a1")
	m.Add("q2", "a2")

	m.Clear()
	if got := m.Len(); got != 0 {
		t.Fatalf("Len() after Clear() = %d, want 0", got)
	}
	if got := len(m.History()); got != 0 {
		t.Fatalf("len(History()) after Clear() = %d, want 0", got)
	}

	// The memory is reusable after a clear.
	m.Add("q3", "a3")
	history := m.History()
	if len(history) != 1 || history[0].Question != "q3" {
		t.Errorf("History() after reuse = %v, want [q3]", history)
	}
}

func TestConversationMemoryDefaultWindow(t *testing.T) {
	m := NewConversationMemory(0)
	if got := m.Window(); got != DefaultWindowSize {
		t.Errorf("Window() = %d, want %d", got, DefaultWindowSize)
	}
}

func TestConversationMemoryConcurrentAdds(t *testing.T) {
	const window = 10
	m := NewConversationMemory(window)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Add(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
		}(i)
	}
	wg.Wait()

	if got := m.Len(); got != window {
		t.Errorf("Len() = %d, want %d", got, window)
	}
	if got := len(m.History()); got != window {
		t.Errorf("len(History()) = %d, want %d", got, window)
	}
}
