package workoutlog

import (
	"log/slog"

	"github.com/heartmarshall/ironlog/internal/domain"
)

// SetField selects which value of a set UpdateSet changes.
type SetField int

const (
	FieldWeight SetField = iota
	FieldReps
)

// AddExercise appends an exercise with one empty set.
func (c *Controller) AddExercise(name string) error {
	return c.edit(func() error {
		c.exercises = append(c.exercises, domain.DraftExercise{
			Name: name,
			Sets: []domain.DraftSet{{}},
		})
		return nil
	})
}

// RenameExercise changes the name of exercise i.
func (c *Controller) RenameExercise(i int, name string) error {
	return c.edit(func() error {
		if i < 0 || i >= len(c.exercises) {
			return ErrOutOfRange
		}
		c.exercises[i].Name = name
		return nil
	})
}

// RemoveExercise deletes exercise i.
func (c *Controller) RemoveExercise(i int) error {
	return c.edit(func() error {
		if i < 0 || i >= len(c.exercises) {
			return ErrOutOfRange
		}
		c.exercises = append(c.exercises[:i], c.exercises[i+1:]...)
		return nil
	})
}

// UpdateSet stores the raw value typed into a set field. The value is not
// validated until Save.
func (c *Controller) UpdateSet(ei, si int, field SetField, value string) error {
	return c.edit(func() error {
		set, err := c.setAt(ei, si)
		if err != nil {
			return err
		}
		switch field {
		case FieldWeight:
			set.Weight = value
		case FieldReps:
			set.Reps = value
		default:
			return ErrOutOfRange
		}
		return nil
	})
}

// AddSet appends a set to exercise ei, prefilled from its last set.
func (c *Controller) AddSet(ei int) error {
	return c.edit(func() error {
		if ei < 0 || ei >= len(c.exercises) {
			return ErrOutOfRange
		}
		ex := &c.exercises[ei]
		next := domain.DraftSet{}
		if n := len(ex.Sets); n > 0 {
			next = ex.Sets[n-1]
		}
		ex.Sets = append(ex.Sets, next)
		return nil
	})
}

// RemoveSet deletes set si of exercise ei. An exercise left without sets is
// removed too.
func (c *Controller) RemoveSet(ei, si int) error {
	return c.edit(func() error {
		if _, err := c.setAt(ei, si); err != nil {
			return err
		}
		ex := &c.exercises[ei]
		ex.Sets = append(ex.Sets[:si], ex.Sets[si+1:]...)
		if len(ex.Sets) == 0 {
			c.exercises = append(c.exercises[:ei], c.exercises[ei+1:]...)
		}
		return nil
	})
}

// SetNotes replaces the workout notes.
func (c *Controller) SetNotes(notes string) error {
	return c.edit(func() error {
		c.notes = notes
		return nil
	})
}

// ReplaceExercises replaces every exercise at once.
func (c *Controller) ReplaceExercises(exercises []domain.DraftExercise) error {
	return c.edit(func() error {
		c.exercises = domain.CloneDraftExercises(exercises)
		return nil
	})
}

func (c *Controller) setAt(ei, si int) (*domain.DraftSet, error) {
	if ei < 0 || ei >= len(c.exercises) {
		return nil, ErrOutOfRange
	}
	sets := c.exercises[ei].Sets
	if si < 0 || si >= len(sets) {
		return nil, ErrOutOfRange
	}
	return &sets[si], nil
}

// edit applies fn to the workout under the lock and schedules an autosave.
func (c *Controller) edit(fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateEmpty, StateEditing, StateQueuedOffline:
	default:
		return ErrNotEditable
	}
	if c.closed {
		return ErrNotEditable
	}

	if err := fn(); err != nil {
		return err
	}
	c.state = StateEditing
	c.scheduleAutosaveLocked()
	return nil
}

// scheduleAutosaveLocked restarts the debounce window. Only the last edit
// within the window is written.
func (c *Controller) scheduleAutosaveLocked() {
	if !c.loaded || c.closed || c.state == StateDraftAvailable {
		return
	}

	c.stopAutosaveLocked()
	c.autosaveGen++
	gen := c.autosaveGen

	c.autosaveWG.Add(1)
	c.autosaveTimer = c.clock.AfterFunc(c.debounce, func() {
		defer c.autosaveWG.Done()
		c.autosave(gen)
	})
}

// stopAutosaveLocked cancels a pending autosave and invalidates one that has
// already fired but not yet written.
func (c *Controller) stopAutosaveLocked() {
	c.autosaveGen++
	if c.autosaveTimer == nil {
		return
	}
	if c.autosaveTimer.Stop() {
		c.autosaveWG.Done()
	}
	c.autosaveTimer = nil
}

func (c *Controller) autosave(gen uint64) {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	c.mu.Lock()
	if gen != c.autosaveGen || c.closed || c.state != StateEditing {
		c.mu.Unlock()
		return
	}
	if !domain.HasContent(c.exercises) {
		c.mu.Unlock()
		return
	}
	rec := domain.DraftRecord{
		Exercises: domain.CloneDraftExercises(c.exercises),
		Notes:     c.notes,
	}
	c.mu.Unlock()

	if err := c.drafts.SaveDraft(c.bg, rec); err != nil {
		c.log.WarnContext(c.bg, "autosave failed", slog.String("error", err.Error()))
	}
}
