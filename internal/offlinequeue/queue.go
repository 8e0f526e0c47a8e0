// Package offlinequeue buffers completed workouts that could not reach the
// server. Entries are kept in commit order under one storage key and each
// carries a LocalID that makes its replay idempotent.
package offlinequeue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/ironlog/internal/domain"
)

// Key is the fixed storage key of the queue blob.
const Key = "queue:offline"

type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Update(ctx context.Context, key string, fn func(current []byte, found bool) ([]byte, error)) error
	Delete(ctx context.Context, key string) error
}

// PendingWorkout is a validated workout about to be queued.
type PendingWorkout struct {
	Exercises []domain.WorkoutExercise
	Unit      domain.WeightUnit
	Notes     string
	// Date defaults to the current local date when empty.
	Date string
}

// Queue is the persistent FIFO of workouts awaiting sync.
type Queue struct {
	kv    kvStore
	clock clockwork.Clock
	log   *slog.Logger

	mu sync.Mutex
}

// New creates a Queue over kv.
func New(log *slog.Logger, kv kvStore, clock clockwork.Clock) *Queue {
	return &Queue{
		kv:    kv,
		clock: clock,
		log:   log.With("component", "offlinequeue"),
	}
}

// Enqueue appends p with a fresh LocalID and returns the stored entry.
func (q *Queue) Enqueue(ctx context.Context, p PendingWorkout) (domain.QueuedWorkout, error) {
	now := q.clock.Now()

	item := domain.QueuedWorkout{
		LocalID:   uuid.New(),
		Exercises: p.Exercises,
		Unit:      p.Unit,
		Notes:     p.Notes,
		Date:      p.Date,
		QueuedAt:  now.UTC(),
	}
	if item.Unit == "" {
		item.Unit = domain.WeightUnitKG
	}
	if item.Date == "" {
		item.Date = now.Format(domain.DateLayout)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	err := q.kv.Update(ctx, Key, func(current []byte, found bool) ([]byte, error) {
		items := q.decode(ctx, current, found)
		return json.Marshal(append(items, item))
	})
	if err != nil {
		return domain.QueuedWorkout{}, fmt.Errorf("enqueue workout: %w", err)
	}

	q.log.InfoContext(ctx, "workout queued", slog.String("local_id", item.LocalID.String()))
	return item, nil
}

// Dequeue removes the entry with localID. Removing an absent entry is a no-op.
func (q *Queue) Dequeue(ctx context.Context, localID uuid.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	err := q.kv.Update(ctx, Key, func(current []byte, found bool) ([]byte, error) {
		if !found {
			return nil, nil
		}
		items := q.decode(ctx, current, found)
		kept := items[:0]
		for _, it := range items {
			if it.LocalID != localID {
				kept = append(kept, it)
			}
		}
		if len(kept) == 0 {
			return nil, nil
		}
		return json.Marshal(kept)
	})
	if err != nil {
		return fmt.Errorf("dequeue workout %s: %w", localID, err)
	}
	return nil
}

// List returns the queued workouts in commit order. Unreadable data is
// reported as an empty queue.
func (q *Queue) List(ctx context.Context) []domain.QueuedWorkout {
	q.mu.Lock()
	defer q.mu.Unlock()

	data, err := q.kv.Get(ctx, Key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		q.log.WarnContext(ctx, "read queue failed, treating as empty", slog.String("error", err.Error()))
		return nil
	}
	return q.decode(ctx, data, true)
}

// Count returns the number of queued workouts.
func (q *Queue) Count(ctx context.Context) int {
	return len(q.List(ctx))
}

// Clear removes every queued workout.
func (q *Queue) Clear(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("clear queue: %w", err)
	}
	return nil
}

func (q *Queue) decode(ctx context.Context, data []byte, found bool) []domain.QueuedWorkout {
	if !found || len(data) == 0 {
		return nil
	}
	var items []domain.QueuedWorkout
	if err := json.Unmarshal(data, &items); err != nil {
		q.log.WarnContext(ctx, "queue data malformed, treating as empty", slog.String("error", err.Error()))
		return nil
	}
	return items
}
