package workout

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ironlog/internal/domain"
)

// SaveWorkoutInput holds the parameters for a direct save.
type SaveWorkoutInput struct {
	Exercises []domain.WorkoutExercise
	Notes     string
	Unit      domain.WeightUnit
	RoutineID *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i SaveWorkoutInput) Validate() error {
	errs := domain.ValidateWorkoutExercises(i.Exercises)
	errs = append(errs, validateCommon(i.Unit, i.Notes)...)
	if i.RoutineID != nil && *i.RoutineID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "routine_id", Message: "must not be nil uuid"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SyncWorkoutInput holds a queued workout replayed by a client.
type SyncWorkoutInput struct {
	LocalID   uuid.UUID
	Exercises []domain.WorkoutExercise
	Notes     string
	Unit      domain.WeightUnit
	Date      string
}

// Validate checks all fields and collects all errors.
func (i SyncWorkoutInput) Validate() error {
	var errs []domain.FieldError
	if i.LocalID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "local_id", Message: "required"})
	}
	errs = append(errs, domain.ValidateWorkoutExercises(i.Exercises)...)
	errs = append(errs, validateCommon(i.Unit, i.Notes)...)
	if _, err := time.Parse(domain.DateLayout, i.Date); err != nil {
		errs = append(errs, domain.FieldError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateCommon(unit domain.WeightUnit, notes string) []domain.FieldError {
	var errs []domain.FieldError
	if unit != "" && !unit.IsValid() {
		errs = append(errs, domain.FieldError{Field: "unit", Message: "must be kg or lb"})
	}
	return append(errs, domain.ValidateWorkoutNotes(notes)...)
}

// normalize trims names and notes and applies the default unit.
func normalize(exercises []domain.WorkoutExercise, notes string, unit domain.WeightUnit) ([]domain.WorkoutExercise, *string, domain.WeightUnit) {
	out := make([]domain.WorkoutExercise, len(exercises))
	for i, ex := range exercises {
		out[i] = domain.WorkoutExercise{Name: strings.TrimSpace(ex.Name), Sets: ex.Sets}
	}

	var n *string
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		n = &trimmed
	}

	if unit == "" {
		unit = domain.WeightUnitKG
	}
	return out, n, unit
}
