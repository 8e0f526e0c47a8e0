package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// DateLayout is the calendar-date format used for workout dates.
const DateLayout = "2006-01-02"

// Workout limits enforced by the server and checked by clients before a
// workout is sent or queued.
const (
	MaxWorkoutExercises = 50
	MaxExerciseSets     = 100
	MaxWorkoutNotes     = 2000
	MaxExerciseName     = 200
)

// WorkoutSet is a single completed set with parsed values.
type WorkoutSet struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

// WorkoutExercise is a named exercise with its completed sets, in order.
type WorkoutExercise struct {
	Name string       `json:"name"`
	Sets []WorkoutSet `json:"sets"`
}

// Workout is a persisted workout owned by a user.
// LocalID is set only for workouts that arrived through the offline queue.
type Workout struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	LocalID   *uuid.UUID
	RoutineID *uuid.UUID
	Date      string
	Unit      WeightUnit
	Exercises []WorkoutExercise
	Notes     *string
	CreatedAt time.Time
}

// QueuedWorkout is a validated workout waiting in the offline queue.
// LocalID is the idempotency key and never changes once assigned.
type QueuedWorkout struct {
	LocalID   uuid.UUID         `json:"localId"`
	Exercises []WorkoutExercise `json:"exercises"`
	Unit      WeightUnit        `json:"unit"`
	Notes     string            `json:"notes"`
	Date      string            `json:"date"`
	QueuedAt  time.Time         `json:"queuedAt"`
}

// CountSets returns the total number of sets across all exercises.
func CountSets(exercises []WorkoutExercise) int {
	n := 0
	for _, ex := range exercises {
		n += len(ex.Sets)
	}
	return n
}

// ValidateWorkoutExercises checks exercises against the workout limits and
// returns every violation.
func ValidateWorkoutExercises(exercises []WorkoutExercise) []FieldError {
	var errs []FieldError

	if len(exercises) == 0 {
		return append(errs, FieldError{Field: "exercises", Message: "at least one exercise required"})
	}
	if len(exercises) > MaxWorkoutExercises {
		errs = append(errs, FieldError{Field: "exercises", Message: fmt.Sprintf("max %d exercises", MaxWorkoutExercises)})
	}

	for ei, ex := range exercises {
		prefix := fmt.Sprintf("exercises[%d]", ei)
		name := strings.TrimSpace(ex.Name)
		if name == "" {
			errs = append(errs, FieldError{Field: prefix + ".name", Message: "required"})
		}
		if utf8.RuneCountInString(name) > MaxExerciseName {
			errs = append(errs, FieldError{Field: prefix + ".name", Message: fmt.Sprintf("max %d characters", MaxExerciseName)})
		}
		if len(ex.Sets) == 0 {
			errs = append(errs, FieldError{Field: prefix + ".sets", Message: "at least one set required"})
		}
		if len(ex.Sets) > MaxExerciseSets {
			errs = append(errs, FieldError{Field: prefix + ".sets", Message: fmt.Sprintf("max %d sets", MaxExerciseSets)})
		}
		for si, set := range ex.Sets {
			if set.Weight < 0 {
				errs = append(errs, FieldError{Field: fmt.Sprintf("%s.sets[%d].weight", prefix, si), Message: "must be non-negative"})
			}
			if set.Reps <= 0 {
				errs = append(errs, FieldError{Field: fmt.Sprintf("%s.sets[%d].reps", prefix, si), Message: "must be positive"})
			}
		}
	}

	return errs
}

// ValidateWorkoutNotes checks the notes length limit.
func ValidateWorkoutNotes(notes string) []FieldError {
	if utf8.RuneCountInString(notes) > MaxWorkoutNotes {
		return []FieldError{{Field: "notes", Message: fmt.Sprintf("max %d characters", MaxWorkoutNotes)}}
	}
	return nil
}
