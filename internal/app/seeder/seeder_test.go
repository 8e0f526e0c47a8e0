package seeder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/ironlog/internal/domain"
)

type mockRepo struct {
	upserted []domain.Routine
	err      error
}

func (m *mockRepo) Upsert(_ context.Context, r domain.Routine) error {
	if m.err != nil {
		return m.err
	}
	m.upserted = append(m.upserted, r)
	return nil
}

func newTestSeeder(repo RoutineRepo) *Seeder {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), repo)
}

func TestSeeder_Run_UpsertsValidRoutines(t *testing.T) {
	t.Parallel()
	repo := &mockRepo{}
	userID := uuid.New()

	res, err := newTestSeeder(repo).Run(context.Background(), Config{
		UserID: userID.String(),
		Routines: []RoutineSeed{
			{Name: " Legs ", Exercises: []ExerciseSeed{{Name: "Squat", Sets: 5, Reps: 5}}},
			{Name: ""},
			{Name: "Pull", Exercises: []ExerciseSeed{{Name: "Row", Sets: -1}}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Upserted)
	assert.Equal(t, 2, res.Skipped)
	require.Len(t, repo.upserted, 1)
	got := repo.upserted[0]
	assert.Equal(t, "Legs", got.Name)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, []domain.RoutineExercise{{Name: "Squat", DefaultSets: 5, DefaultReps: 5}}, got.Exercises)
}

func TestSeeder_Run_DerivedIDIsStable(t *testing.T) {
	t.Parallel()
	repo := &mockRepo{}
	s := newTestSeeder(repo)
	cfg := Config{UserID: uuid.NewString(), Routines: []RoutineSeed{{Name: "Push"}}}

	_, err := s.Run(context.Background(), cfg)
	require.NoError(t, err)
	_, err = s.Run(context.Background(), cfg)
	require.NoError(t, err)

	require.Len(t, repo.upserted, 2)
	assert.Equal(t, repo.upserted[0].ID, repo.upserted[1].ID)
}

func TestSeeder_Run_ExplicitID(t *testing.T) {
	t.Parallel()
	repo := &mockRepo{}
	id := uuid.New()

	_, err := newTestSeeder(repo).Run(context.Background(), Config{
		UserID:   uuid.NewString(),
		Routines: []RoutineSeed{{ID: id.String(), Name: "Push"}},
	})
	require.NoError(t, err)
	require.Len(t, repo.upserted, 1)
	assert.Equal(t, id, repo.upserted[0].ID)
}

func TestSeeder_Run_DryRunWritesNothing(t *testing.T) {
	t.Parallel()
	repo := &mockRepo{}

	res, err := newTestSeeder(repo).Run(context.Background(), Config{
		UserID:   uuid.NewString(),
		DryRun:   true,
		Routines: []RoutineSeed{{Name: "Push"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Upserted)
	assert.Empty(t, repo.upserted)
}

func TestSeeder_Run_Errors(t *testing.T) {
	t.Parallel()

	_, err := newTestSeeder(&mockRepo{}).Run(context.Background(), Config{UserID: "nope"})
	assert.Error(t, err)

	boom := errors.New("boom")
	_, err = newTestSeeder(&mockRepo{err: boom}).Run(context.Background(), Config{
		UserID:   uuid.NewString(),
		Routines: []RoutineSeed{{Name: "Push"}},
	})
	assert.ErrorIs(t, err, boom)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "routines.yaml")
	userID := uuid.NewString()
	content := "user_id: " + userID + `
routines:
  - name: Legs
    exercises:
      - name: Squat
        sets: 5
        reps: 5
      - name: Leg Curl
        reps: 12
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, userID, cfg.UserID)
	require.Len(t, cfg.Routines, 1)
	assert.Equal(t, "Legs", cfg.Routines[0].Name)
	assert.Equal(t, []ExerciseSeed{{Name: "Squat", Sets: 5, Reps: 5}, {Name: "Leg Curl", Reps: 12}}, cfg.Routines[0].Exercises)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	_, err = LoadConfig("")
	assert.Error(t, err)
}
