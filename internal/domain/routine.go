package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultRoutineSets is used when a routine exercise does not specify a set count.
const DefaultRoutineSets = 3

// RoutineExercise is one exercise of a routine template.
type RoutineExercise struct {
	Name        string `json:"name"`
	DefaultSets int    `json:"defaultSets"`
	DefaultReps int    `json:"defaultReps"`
}

// Routine is a reusable workout template owned by a user.
type Routine struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Exercises []RoutineExercise
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DraftExercises expands the routine into editable draft exercises:
// DefaultSets rows per exercise with reps prefilled and weight left empty.
func (r *Routine) DraftExercises() []DraftExercise {
	out := make([]DraftExercise, 0, len(r.Exercises))
	for _, re := range r.Exercises {
		n := re.DefaultSets
		if n <= 0 {
			n = DefaultRoutineSets
		}
		reps := ""
		if re.DefaultReps > 0 {
			reps = itoa(re.DefaultReps)
		}
		sets := make([]DraftSet, n)
		for i := range sets {
			sets[i] = DraftSet{Reps: reps}
		}
		out = append(out, DraftExercise{Name: re.Name, Sets: sets})
	}
	return out
}
