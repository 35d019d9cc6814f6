package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/simanis/notary-system/internal/core/domain"
	"github.com/simanis/notary-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// TimelineDispatcher takes timeline writes off the request path. Entries
// are fanned out to a fixed set of workers by hashing the case reference,
// so the audit trail of any single case is written in the order it was
// produced.
//
// It satisfies ports.TimelineRepository: Append enqueues, reads go
// straight through to the underlying store.
type TimelineDispatcher struct {
	workers []chan *domain.TimelineEntry
	store   ports.TimelineRepository
	log     zerolog.Logger
}

// NewTimelineDispatcher creates a dispatcher with numWorkers sharded
// workers, or defaultWorkers when numWorkers <= 0.
func NewTimelineDispatcher(numWorkers int, store ports.TimelineRepository, log zerolog.Logger) *TimelineDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &TimelineDispatcher{
		workers: make([]chan *domain.TimelineEntry, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan *domain.TimelineEntry, channelBuffer)
	}
	return d
}

// Start launches the worker goroutines. Workers stop when ctx is cancelled.
func (d *TimelineDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Append hands the entry to the worker owning its case. The call blocks
// only when that worker's buffer is full.
func (d *TimelineDispatcher) Append(_ context.Context, entry *domain.TimelineEntry) error {
	d.workers[d.shardIndex(entry.CaseID)] <- entry
	return nil
}

// ListByCase reads through to the store.
func (d *TimelineDispatcher) ListByCase(ctx context.Context, caseID string) ([]*domain.TimelineEntry, error) {
	return d.store.ListByCase(ctx, caseID)
}

// shardIndex maps a case reference deterministically to a worker index.
func (d *TimelineDispatcher) shardIndex(caseID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(caseID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *TimelineDispatcher) runWorker(ctx context.Context, id int, ch <-chan *domain.TimelineEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			if err := d.store.Append(ctx, entry); err != nil {
				d.log.Error().Err(err).
					Str("reference", entry.CaseID).
					Str("action", string(entry.ActionType)).
					Int("worker_id", id).
					Msg("timeline append failed")
			}
		}
	}
}
