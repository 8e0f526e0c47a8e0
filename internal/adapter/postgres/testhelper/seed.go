package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/ironlog/internal/domain"
)

// SeedRoutine inserts a routine for userID with two exercises and returns it.
func SeedRoutine(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.Routine {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	routine := domain.Routine{
		ID:     uuid.New(),
		UserID: userID,
		Name:   "Routine " + uuid.New().String()[:8],
		Exercises: []domain.RoutineExercise{
			{Name: "Squat", DefaultSets: 3, DefaultReps: 5},
			{Name: "Bench Press", DefaultSets: 3, DefaultReps: 8},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	exercises, err := json.Marshal(routine.Exercises)
	if err != nil {
		t.Fatalf("testhelper: SeedRoutine marshal: %v", err)
	}

	_, err = pool.Exec(context.Background(),
		`INSERT INTO routines (id, user_id, name, exercises, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		routine.ID, routine.UserID, routine.Name, exercises, routine.CreatedAt, routine.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRoutine insert: %v", err)
	}

	return routine
}

// CountWorkouts returns how many workouts userID has persisted.
func CountWorkouts(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM workouts WHERE user_id = $1`, userID,
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: CountWorkouts: %v", err)
	}
	return n
}
