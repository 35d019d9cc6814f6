package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/simanis/notary-system/internal/core/domain"
)

// recordingStore collects appended entries and signals once the expected
// number has arrived.
type recordingStore struct {
	mu      sync.Mutex
	entries []*domain.TimelineEntry
	done    chan struct{}
	want    int
}

func newRecordingStore(want int) *recordingStore {
	return &recordingStore{done: make(chan struct{}), want: want}
}

func (s *recordingStore) Append(_ context.Context, entry *domain.TimelineEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	if len(s.entries) == s.want {
		close(s.done)
	}
	return nil
}

func (s *recordingStore) ListByCase(_ context.Context, caseID string) ([]*domain.TimelineEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.TimelineEntry
	for _, e := range s.entries {
		if e.CaseID == caseID {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestTimelineDispatcherPreservesPerCaseOrder(t *testing.T) {
	const perCase = 50
	refs := []string{"SRV-1-AAAAA", "SRV-2-BBBBB"}

	store := newRecordingStore(perCase * len(refs))
	d := NewTimelineDispatcher(4, store, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < perCase; i++ {
		for _, ref := range refs {
			if err := d.Append(ctx, &domain.TimelineEntry{
				CaseID:      ref,
				ActionType:  domain.ActionNoteAdded,
				Description: fmt.Sprintf("catatan %d", i),
			}); err != nil {
				t.Fatalf("Append: %v", err)
			}
		}
	}

	select {
	case <-store.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for workers to drain")
	}

	for _, ref := range refs {
		entries, err := store.ListByCase(context.Background(), ref)
		if err != nil {
			t.Fatalf("ListByCase: %v", err)
		}
		if len(entries) != perCase {
			t.Fatalf("case %s has %d entries, want %d", ref, len(entries), perCase)
		}
		for i, e := range entries {
			if want := fmt.Sprintf("catatan %d", i); e.Description != want {
				t.Fatalf("case %s entry %d = %q, want %q", ref, i, e.Description, want)
			}
		}
	}
}

func TestTimelineDispatcherReadsThrough(t *testing.T) {
	store := newRecordingStore(1)
	store.entries = append(store.entries, &domain.TimelineEntry{CaseID: "SRV-1-AAAAA"})

	// No Start: reads must not depend on running workers.
	d := NewTimelineDispatcher(2, store, zerolog.Nop())

	entries, err := d.ListByCase(context.Background(), "SRV-1-AAAAA")
	if err != nil {
		t.Fatalf("ListByCase: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("entries = %d, want 1", len(entries))
	}
}
