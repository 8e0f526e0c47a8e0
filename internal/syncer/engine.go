// Package syncer drains the offline queue into the server.
package syncer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/ironlog/internal/connectivity"
	"github.com/heartmarshall/ironlog/internal/domain"
)

type workoutQueue interface {
	List(ctx context.Context) []domain.QueuedWorkout
	Count(ctx context.Context) int
	Dequeue(ctx context.Context, localID uuid.UUID) error
}

type remote interface {
	SyncWorkout(ctx context.Context, w domain.QueuedWorkout) error
}

type monitor interface {
	Online() bool
	Subscribe(fn func(connectivity.Event)) (unsubscribe func())
}

// Options tunes the engine. The zero value is valid.
type Options struct {
	// RetryInterval enables periodic drains while online with a non-empty
	// queue, backing off exponentially from this interval. Zero disables them.
	RetryInterval time.Duration
	Clock         clockwork.Clock
}

// Engine replays queued workouts in commit order.
type Engine struct {
	queue   workoutQueue
	remote  remote
	monitor monitor
	log     *slog.Logger
	clock   clockwork.Clock
	retry   time.Duration

	drainMu sync.Mutex

	mu          sync.Mutex
	unsubscribe func()
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

// New creates an Engine.
func New(log *slog.Logger, q workoutQueue, r remote, m monitor, opts Options) *Engine {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{
		queue:   q,
		remote:  r,
		monitor: m,
		log:     log.With("component", "syncer"),
		clock:   clock,
		retry:   opts.RetryInterval,
	}
}

// SyncPending sends every queued workout oldest first and returns how many
// were delivered. It stops at the first failure and leaves that entry and
// everything after it queued. Only one drain runs at a time; a drain is not
// interrupted by cancellation of ctx once it has started.
func (e *Engine) SyncPending(ctx context.Context) int {
	e.drainMu.Lock()
	defer e.drainMu.Unlock()

	ctx = context.WithoutCancel(ctx)

	items := e.queue.List(ctx)
	if len(items) == 0 {
		return 0
	}

	synced := 0
	for _, it := range items {
		if err := e.remote.SyncWorkout(ctx, it); err != nil {
			e.log.WarnContext(ctx, "sync stopped",
				slog.String("local_id", it.LocalID.String()),
				slog.Int("synced", synced),
				slog.Int("remaining", len(items)-synced),
				slog.String("error", err.Error()))
			break
		}
		// The server already has it; a failed dequeue only means a harmless replay later.
		if err := e.queue.Dequeue(ctx, it.LocalID); err != nil {
			e.log.ErrorContext(ctx, "dequeue after sync failed",
				slog.String("local_id", it.LocalID.String()),
				slog.String("error", err.Error()))
			break
		}
		synced++
	}

	if synced > 0 {
		e.log.InfoContext(ctx, "queued workouts synced", slog.Int("count", synced))
	}
	return synced
}

// Start drains once if online with pending work, then drains on every
// transition to online. Drains triggered here run in the background.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	if e.unsubscribe != nil {
		e.mu.Unlock()
		return
	}
	ctx, e.cancel = context.WithCancel(ctx)
	e.unsubscribe = e.monitor.Subscribe(func(ev connectivity.Event) {
		if ev == connectivity.WentOnline {
			e.trigger(ctx)
		}
	})
	if e.retry > 0 {
		e.wg.Add(1)
		go e.retryLoop(ctx)
	}
	e.mu.Unlock()

	e.trigger(ctx)
}

// Stop unsubscribes from connectivity events and waits for background
// drains to finish. A stopped Engine cannot be started again.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.cancel()
	}
	e.mu.Unlock()

	e.wg.Wait()
}

func (e *Engine) trigger(ctx context.Context) {
	if !e.monitor.Online() || e.queue.Count(ctx) == 0 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if ctx.Err() != nil {
		return
	}
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.SyncPending(ctx)
	}()
}

func (e *Engine) retryLoop(ctx context.Context) {
	defer e.wg.Done()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = e.retry
	b.MaxInterval = 16 * e.retry
	b.MaxElapsedTime = 0
	b.Reset()

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.clock.After(b.NextBackOff()):
		}

		if !e.monitor.Online() || e.queue.Count(ctx) == 0 {
			b.Reset()
			continue
		}

		e.SyncPending(ctx)
		if e.queue.Count(ctx) == 0 {
			b.Reset()
		}
	}
}
