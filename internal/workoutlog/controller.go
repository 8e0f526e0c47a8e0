// Package workoutlog drives one workout logging session: it recovers a
// crashed draft, autosaves edits, and routes the final save either to the
// server or to the offline queue.
package workoutlog

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/ironlog/internal/adapter/api"
	"github.com/heartmarshall/ironlog/internal/domain"
	"github.com/heartmarshall/ironlog/internal/offlinequeue"
)

// State is the controller's position in the session lifecycle.
type State int

const (
	StateInitializing State = iota
	StateEmpty
	StateDraftAvailable
	StateEditing
	StateSaving
	StateSaved
	StateQueuedOffline
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateEmpty:
		return "empty"
	case StateDraftAvailable:
		return "draft_available"
	case StateEditing:
		return "editing"
	case StateSaving:
		return "saving"
	case StateSaved:
		return "saved"
	case StateQueuedOffline:
		return "queued_offline"
	}
	return "unknown"
}

var (
	// ErrNothingToSave is returned by Save when no exercise has a complete set.
	ErrNothingToSave = errors.New("add at least one exercise with weight and reps")
	// ErrNotEditable is returned for an operation the current state does not allow.
	ErrNotEditable = errors.New("workout is not editable in this state")
	// ErrOutOfRange is returned for an exercise or set index that does not exist.
	ErrOutOfRange = errors.New("index out of range")
)

type draftStore interface {
	SaveDraft(ctx context.Context, rec domain.DraftRecord) error
	LoadDraft(ctx context.Context) (domain.DraftRecord, bool)
	ClearDraft(ctx context.Context) error
}

type workoutQueue interface {
	Enqueue(ctx context.Context, p offlinequeue.PendingWorkout) (domain.QueuedWorkout, error)
}

type remote interface {
	SaveWorkout(ctx context.Context, in api.SaveWorkoutInput) error
	FetchRoutine(ctx context.Context, id uuid.UUID) (*domain.Routine, error)
}

type monitor interface {
	Online() bool
}

const (
	DefaultAutosaveDebounce = 1500 * time.Millisecond
	DefaultOfflineNoticeTTL = 3 * time.Second
)

// Options tunes a Controller. Zero values fall back to defaults.
type Options struct {
	Unit             domain.WeightUnit
	AutosaveDebounce time.Duration
	OfflineNoticeTTL time.Duration
	Clock            clockwork.Clock
}

// Deps are the collaborators a Controller works with.
type Deps struct {
	Drafts  draftStore
	Queue   workoutQueue
	Remote  remote
	Monitor monitor
}

// Snapshot is a copy of the session's visible state.
type Snapshot struct {
	State         State
	Exercises     []domain.DraftExercise
	Notes         string
	RoutineID     *uuid.UUID
	RoutineName   string
	OfflineNotice bool
}

// Controller is safe for concurrent use.
type Controller struct {
	drafts  draftStore
	queue   workoutQueue
	remote  remote
	monitor monitor
	log     *slog.Logger
	clock   clockwork.Clock

	unit      domain.WeightUnit
	debounce  time.Duration
	noticeTTL time.Duration

	// bg outlives individual calls; autosave timers run on it.
	bg     context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	state       State
	loaded      bool
	closed      bool
	exercises   []domain.DraftExercise
	notes       string
	routineID   *uuid.UUID
	routineName string
	pending     *domain.DraftRecord
	noticeUntil time.Time

	// persistMu orders draft writes against draft clears.
	persistMu     sync.Mutex
	autosaveTimer clockwork.Timer
	autosaveGen   uint64
	autosaveWG    sync.WaitGroup
}

// New creates a Controller in StateInitializing. Call Init before editing.
func New(log *slog.Logger, deps Deps, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Unit == "" {
		opts.Unit = domain.WeightUnitKG
	}
	if opts.AutosaveDebounce <= 0 {
		opts.AutosaveDebounce = DefaultAutosaveDebounce
	}
	if opts.OfflineNoticeTTL <= 0 {
		opts.OfflineNoticeTTL = DefaultOfflineNoticeTTL
	}

	bg, cancel := context.WithCancel(context.Background())
	return &Controller{
		drafts:    deps.Drafts,
		queue:     deps.Queue,
		remote:    deps.Remote,
		monitor:   deps.Monitor,
		log:       log.With("component", "workoutlog"),
		clock:     opts.Clock,
		unit:      opts.Unit,
		debounce:  opts.AutosaveDebounce,
		noticeTTL: opts.OfflineNoticeTTL,
		bg:        bg,
		cancel:    cancel,
		state:     StateInitializing,
	}
}

// Init loads the routine template (when routineID is set) and any stored
// draft concurrently. A routine that cannot be fetched leaves the workout
// empty; an unreadable draft is treated as absent.
func (c *Controller) Init(ctx context.Context, routineID *uuid.UUID) error {
	c.mu.Lock()
	if c.state != StateInitializing || c.closed {
		c.mu.Unlock()
		return ErrNotEditable
	}
	c.mu.Unlock()

	var (
		routine  *domain.Routine
		draft    domain.DraftRecord
		hasDraft bool
	)

	g, gctx := errgroup.WithContext(ctx)
	if routineID != nil {
		g.Go(func() error {
			r, err := c.remote.FetchRoutine(gctx, *routineID)
			if err != nil {
				c.log.WarnContext(gctx, "routine unavailable, starting empty",
					slog.String("routine_id", routineID.String()),
					slog.String("error", err.Error()))
				return nil
			}
			routine = r
			return nil
		})
	}
	g.Go(func() error {
		draft, hasDraft = c.drafts.LoadDraft(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.loaded = true
	if routine != nil {
		id := routine.ID
		c.routineID = &id
		c.routineName = routine.Name
		c.exercises = routine.DraftExercises()
	}

	switch {
	case hasDraft:
		c.pending = &draft
		c.state = StateDraftAvailable
	case len(c.exercises) > 0:
		c.state = StateEditing
	default:
		c.state = StateEmpty
	}
	return nil
}

// PendingDraft returns the recovered draft while the recovery prompt is up.
func (c *Controller) PendingDraft() (domain.DraftRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDraftAvailable || c.pending == nil {
		return domain.DraftRecord{}, false
	}
	rec := *c.pending
	rec.Exercises = domain.CloneDraftExercises(rec.Exercises)
	return rec, true
}

// Resume replaces the current workout with the recovered draft. The draft
// carries no routine, so any routine prefill is dropped with it.
func (c *Controller) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDraftAvailable {
		return ErrNotEditable
	}
	c.exercises = domain.CloneDraftExercises(c.pending.Exercises)
	c.notes = c.pending.Notes
	c.routineID = nil
	c.routineName = ""
	c.pending = nil
	c.state = StateEditing
	return nil
}

// Discard drops the recovered draft and starts an empty workout.
func (c *Controller) Discard(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateDraftAvailable {
		c.mu.Unlock()
		return ErrNotEditable
	}
	c.pending = nil
	c.exercises = nil
	c.notes = ""
	c.routineID = nil
	c.routineName = ""
	c.state = StateEditing
	c.mu.Unlock()

	c.clearDraft(ctx)
	return nil
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns a copy of the visible session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		State:         c.state,
		Exercises:     domain.CloneDraftExercises(c.exercises),
		Notes:         c.notes,
		RoutineName:   c.routineName,
		OfflineNotice: c.noticeVisibleLocked(),
	}
	if c.routineID != nil {
		id := *c.routineID
		s.RoutineID = &id
	}
	return s
}

// HasUnsavedContent reports whether leaving now would abandon typed data.
// It is advisory; autosave keeps running regardless.
func (c *Controller) HasUnsavedContent() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateSaved, StateInitializing:
		return false
	}
	return domain.HasContent(c.exercises)
}

// Close stops pending autosaves without running them and waits for one
// already in flight.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.stopAutosaveLocked()
	c.mu.Unlock()

	c.autosaveWG.Wait()
	c.cancel()
}

// clearDraft removes the stored draft. Failure leaves a stale draft the user
// can discard later, so it is logged and not returned.
func (c *Controller) clearDraft(ctx context.Context) {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	if err := c.drafts.ClearDraft(ctx); err != nil {
		c.log.WarnContext(ctx, "clear draft failed", slog.String("error", err.Error()))
	}
}
