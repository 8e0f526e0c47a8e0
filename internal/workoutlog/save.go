package workoutlog

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/ironlog/internal/adapter/api"
	"github.com/heartmarshall/ironlog/internal/domain"
	"github.com/heartmarshall/ironlog/internal/offlinequeue"
)

// SaveResult describes where a saved workout went.
type SaveResult struct {
	// Queued is true when the workout was stored locally for a later sync.
	Queued bool
	// LocalID identifies the queue entry when Queued is true.
	LocalID uuid.UUID
}

// Save submits the workout. Offline, or when the direct write fails, the
// workout goes to the offline queue instead. Only ErrNothingToSave, a
// *domain.ValidationError and a failure to queue are returned; in each case
// the workout and its draft stay in place.
func (c *Controller) Save(ctx context.Context) (SaveResult, error) {
	c.mu.Lock()
	switch c.state {
	case StateEmpty, StateEditing, StateQueuedOffline:
	default:
		c.mu.Unlock()
		return SaveResult{}, ErrNotEditable
	}
	if c.closed {
		c.mu.Unlock()
		return SaveResult{}, ErrNotEditable
	}

	exercises, err := CompletedExercises(c.exercises)
	if err != nil {
		c.mu.Unlock()
		return SaveResult{}, err
	}
	if len(exercises) == 0 {
		c.mu.Unlock()
		return SaveResult{}, ErrNothingToSave
	}

	notes := strings.TrimSpace(c.notes)
	if errs := append(domain.ValidateWorkoutExercises(exercises), domain.ValidateWorkoutNotes(notes)...); len(errs) > 0 {
		c.mu.Unlock()
		return SaveResult{}, domain.NewValidationErrors(errs)
	}
	routineID := c.routineID
	c.stopAutosaveLocked()
	c.state = StateSaving
	c.mu.Unlock()

	if c.monitor.Online() {
		err := c.remote.SaveWorkout(ctx, api.SaveWorkoutInput{
			Exercises: exercises,
			Notes:     notes,
			Unit:      c.unit,
			RoutineID: routineID,
		})
		if err == nil {
			c.clearDraft(ctx)

			c.mu.Lock()
			c.state = StateSaved
			c.mu.Unlock()

			c.log.InfoContext(ctx, "workout saved", slog.Int("exercises", len(exercises)))
			return SaveResult{}, nil
		}
		c.log.WarnContext(ctx, "direct save failed, queueing", slog.String("error", err.Error()))
	}

	item, err := c.queue.Enqueue(ctx, offlinequeue.PendingWorkout{
		Exercises: exercises,
		Unit:      c.unit,
		Notes:     notes,
	})
	if err != nil {
		c.mu.Lock()
		c.state = StateEditing
		c.scheduleAutosaveLocked()
		c.mu.Unlock()
		return SaveResult{}, fmt.Errorf("queue workout: %w", err)
	}

	c.clearDraft(ctx)

	c.mu.Lock()
	c.exercises = nil
	c.notes = ""
	c.routineID = nil
	c.routineName = ""
	c.noticeUntil = c.clock.Now().Add(c.noticeTTL)
	c.state = StateQueuedOffline
	c.mu.Unlock()

	return SaveResult{Queued: true, LocalID: item.LocalID}, nil
}

// StartNext begins a fresh workout after a save.
func (c *Controller) StartNext() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateSaved, StateQueuedOffline:
	default:
		return ErrNotEditable
	}
	c.exercises = nil
	c.notes = ""
	c.routineID = nil
	c.routineName = ""
	c.state = StateEditing
	return nil
}

// OfflineNoticeVisible reports whether the "saved offline" notice is showing.
func (c *Controller) OfflineNoticeVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.noticeVisibleLocked()
}

func (c *Controller) noticeVisibleLocked() bool {
	return !c.noticeUntil.IsZero() && c.clock.Now().Before(c.noticeUntil)
}

// CompletedExercises keeps named exercises that have at least one set with
// both weight and reps filled in, dropping sets with an empty field. A
// filled set that does not parse is reported in a *domain.ValidationError
// rather than dropped. Weight must be a non-negative number and reps a
// positive integer.
func CompletedExercises(in []domain.DraftExercise) ([]domain.WorkoutExercise, error) {
	var (
		out  []domain.WorkoutExercise
		errs []domain.FieldError
	)
	for ei, ex := range in {
		name := strings.TrimSpace(ex.Name)
		if name == "" {
			continue
		}
		var sets []domain.WorkoutSet
		for si, s := range ex.Sets {
			ws := strings.TrimSpace(s.Weight)
			rs := strings.TrimSpace(s.Reps)
			if ws == "" || rs == "" {
				continue
			}
			field := fmt.Sprintf("%s (exercise %d) set %d", name, ei+1, si+1)
			weight, ok := parseWeight(ws)
			if !ok {
				errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("weight %q must be a non-negative number", ws)})
			}
			reps, err := strconv.Atoi(rs)
			if err != nil || reps <= 0 {
				errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf("reps %q must be a positive whole number", rs)})
				ok = false
			}
			if ok {
				sets = append(sets, domain.WorkoutSet{Weight: weight, Reps: reps})
			}
		}
		if len(sets) > 0 {
			out = append(out, domain.WorkoutExercise{Name: name, Sets: sets})
		}
	}
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}
	return out, nil
}

// parseWeight accepts a decimal comma.
func parseWeight(s string) (float64, bool) {
	w, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || w < 0 || math.IsInf(w, 0) || math.IsNaN(w) {
		return 0, false
	}
	return w, true
}
