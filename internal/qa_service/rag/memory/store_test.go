package memory

import (
	"context"
	"testing"

	"AdmissionOfficer/internal/models"
)

func newTestStore(t *testing.T, window, maxSessions int) *InMemoryStore {
	t.Helper()
	store, err := NewInMemoryStore(window, maxSessions, 0)
	if err != nil {
		t.Fatalf("NewInMemoryStore() error = %v", err)
	}
	return store
}

func TestInMemoryStoreAppendAndHistory(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 3, 10)

	for i, q := range []string{"q1", "q2"} {
		err := store.Append(ctx, "s1", models.Interaction{Question: q, Answer: "a"})
		if err != nil {
			t.Fatalf("Append %d error = %v", i, err)
		}
	}

	history, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 2 || history[0].Question != "q1" {
		t.Errorf("History() = %v, want [q1 q2]", history)
	}

	size, err := store.Size(ctx, "s1")
	if err != nil {
		t.Fatalf("Size() error = %v", err)
	}
	if size != 2 {
		t.Errorf("Size() = %d, want 2", size)
	}
}

func TestInMemoryStoreUnknownSession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 3, 10)

	history, err := store.History(ctx, "missing")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 0 {
		t.Errorf("History() = %v, want empty", history)
	}

	size, err := store.Size(ctx, "missing-too")
	if err != nil {
		t.Fatalf("Size() error = %v", err)
	}
	if size != 0 {
		t.Errorf("Size() = %d, want 0", size)
	}
}

func TestInMemoryStoreSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 3, 10)

	store.Append(ctx, "s1", models.Interaction{Question: "q1", Answer: "a1"})
	store.Append(ctx, "s2", models.Interaction{Question: "q2", Answer: "a2"})

	h1, _ := store.History(ctx, "s1")
	h2, _ := store.History(ctx, "s2")
	if len(h1) != 1 || h1[0].Question != "q1" {
		t.Errorf("s1 history = %v", h1)
	}
	if len(h2) != 1 || h2[0].Question != "q2" {
		t.Errorf("s2 history = %v", h2)
	}
}

func TestInMemoryStoreClearKeepsSession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 3, 10)

	store.Append(ctx, "s1", models.Interaction{Question: "q1", Answer: "a1"})
	if err := store.Clear(ctx, "s1"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	size, _ := store.Size(ctx, "s1")
	if size != 0 {
		t.Errorf("Size() after Clear() = %d, want 0", size)
	}

	sessions, err := store.Sessions(ctx)
	if err != nil {
		t.Fatalf("Sessions() error = %v", err)
	}
	if len(sessions) != 1 {
		t.Errorf("Sessions() = %v, want the cleared session to remain", sessions)
	}
}

func TestInMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 3, 10)

	store.Append(ctx, "s1", models.Interaction{Question: "q1", Answer: "a1"})
	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	sessions, _ := store.Sessions(ctx)
	if len(sessions) != 0 {
		t.Errorf("Sessions() after Delete() = %v, want empty", sessions)
	}
}

func TestInMemoryStoreEvictsOldestSession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 3, 2)

	store.Append(ctx, "s1", models.Interaction{Question: "q1", Answer: "a1"})
	store.Append(ctx, "s2", models.Interaction{Question: "q2", Answer: "a2"})
	// s3 pushes the least recently used session (s1) out.
	store.Append(ctx, "s3", models.Interaction{Question: "q3", Answer: "a3"})

	sessions, err := store.Sessions(ctx)
	if err != nil {
		t.Fatalf("Sessions() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("Sessions() = %d sessions, want 2", len(sessions))
	}
	for _, s := range sessions {
		if s.SessionID == "s1" {
			t.Errorf("expected s1 to be evicted, got sessions %v", sessions)
		}
	}
}

func TestInMemoryStoreStats(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, 4, 10)

	store.Append(ctx, "s1", models.Interaction{Question: "q1", Answer: "a1"})
	store.Append(ctx, "s1", models.Interaction{Question: "q2", Answer: "a2"})

	sessions, err := store.Sessions(ctx)
	if err != nil {
		t.Fatalf("Sessions() error = %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("Sessions() = %d sessions, want 1", len(sessions))
	}
	if sessions[0].Interactions != 2 || sessions[0].MaxSize != 4 {
		t.Errorf("stats = %+v, want 2 interactions with max size 4", sessions[0])
	}
}
