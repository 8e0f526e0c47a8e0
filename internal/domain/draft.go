package domain

import "time"

// DraftSet holds the raw strings a user typed into a set row.
// Values are not validated: empty and partial input is preserved as is.
type DraftSet struct {
	Weight string `json:"weight"`
	Reps   string `json:"reps"`
}

// DraftExercise is an exercise in an unsaved workout.
type DraftExercise struct {
	Name string     `json:"name"`
	Sets []DraftSet `json:"sets"`
}

// DraftRecord is the single in-progress workout kept for crash recovery.
type DraftRecord struct {
	Exercises []DraftExercise `json:"exercises"`
	Notes     string          `json:"notes"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// HasContent reports whether any named exercise has a set with a
// non-empty weight or reps value.
func HasContent(exercises []DraftExercise) bool {
	for _, ex := range exercises {
		if ex.Name == "" {
			continue
		}
		for _, s := range ex.Sets {
			if s.Weight != "" || s.Reps != "" {
				return true
			}
		}
	}
	return false
}

// CloneDraftExercises returns a deep copy so callers can mutate freely.
func CloneDraftExercises(in []DraftExercise) []DraftExercise {
	if in == nil {
		return nil
	}
	out := make([]DraftExercise, len(in))
	for i, ex := range in {
		out[i] = DraftExercise{
			Name: ex.Name,
			Sets: append([]DraftSet(nil), ex.Sets...),
		}
	}
	return out
}
