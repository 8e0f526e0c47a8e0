// Package seeder loads routine templates from a YAML file into the database.
// Routines have no write endpoint, so this is how they get created.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ironlog/internal/domain"
)

// routineNamespace scopes derived routine IDs.
var routineNamespace = uuid.MustParse("6f1d2c4e-8a0b-4f7e-9c3d-5b2a1e0f9d8c")

// RoutineRepo is implemented by routine.Repo.
type RoutineRepo interface {
	Upsert(ctx context.Context, r domain.Routine) error
}

// Result summarizes a seeding run.
type Result struct {
	Upserted int
	Skipped  int
	Duration time.Duration
}

// Seeder validates routine seeds and writes them through RoutineRepo.
type Seeder struct {
	log  *slog.Logger
	repo RoutineRepo
	now  func() time.Time
}

// New creates a Seeder.
func New(log *slog.Logger, repo RoutineRepo) *Seeder {
	return &Seeder{
		log:  log.With("component", "seeder"),
		repo: repo,
		now:  time.Now,
	}
}

// Run upserts every routine in cfg. Invalid routines are logged and skipped;
// a repository error aborts the run.
func (s *Seeder) Run(ctx context.Context, cfg Config) (Result, error) {
	start := s.now()

	userID, err := uuid.Parse(strings.TrimSpace(cfg.UserID))
	if err != nil {
		return Result{}, fmt.Errorf("seeder: parse user_id: %w", err)
	}

	var res Result
	for i, seed := range cfg.Routines {
		rt, err := s.build(userID, seed)
		if err != nil {
			s.log.Warn("skip routine", slog.Int("index", i), slog.String("error", err.Error()))
			res.Skipped++
			continue
		}

		if cfg.DryRun {
			s.log.Info("dry run", slog.String("routine", rt.Name), slog.String("id", rt.ID.String()))
			res.Skipped++
			continue
		}

		if err := s.repo.Upsert(ctx, rt); err != nil {
			return res, fmt.Errorf("seeder: upsert %q: %w", rt.Name, err)
		}
		res.Upserted++
	}

	res.Duration = s.now().Sub(start)
	s.log.Info("seeding finished",
		slog.Int("upserted", res.Upserted),
		slog.Int("skipped", res.Skipped),
		slog.Duration("duration", res.Duration),
	)
	return res, nil
}

func (s *Seeder) build(userID uuid.UUID, seed RoutineSeed) (domain.Routine, error) {
	name := strings.TrimSpace(seed.Name)
	if name == "" {
		return domain.Routine{}, fmt.Errorf("name: %w", domain.ErrValidation)
	}

	id := uuid.NewSHA1(routineNamespace, []byte(userID.String()+"/"+name))
	if seed.ID != "" {
		parsed, err := uuid.Parse(seed.ID)
		if err != nil {
			return domain.Routine{}, fmt.Errorf("id %q: %w", seed.ID, domain.ErrValidation)
		}
		id = parsed
	}

	exercises := make([]domain.RoutineExercise, 0, len(seed.Exercises))
	for j, ex := range seed.Exercises {
		exName := strings.TrimSpace(ex.Name)
		if exName == "" || ex.Sets < 0 || ex.Reps < 0 {
			return domain.Routine{}, fmt.Errorf("exercise %d: %w", j, domain.ErrValidation)
		}
		exercises = append(exercises, domain.RoutineExercise{
			Name:        exName,
			DefaultSets: ex.Sets,
			DefaultReps: ex.Reps,
		})
	}

	now := s.now().UTC()
	return domain.Routine{
		ID:        id,
		UserID:    userID,
		Name:      name,
		Exercises: exercises,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
