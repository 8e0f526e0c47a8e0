package workout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/ironlog/internal/domain"
	"github.com/heartmarshall/ironlog/pkg/ctxutil"
)

// SaveWorkout persists a workout dated today. When a routine is given it
// must belong to the caller.
func (s *Service) SaveWorkout(ctx context.Context, input SaveWorkoutInput) (*domain.Workout, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	exercises, notes, unit := normalize(input.Exercises, input.Notes, input.Unit)
	w := &domain.Workout{
		ID:        uuid.New(),
		UserID:    userID,
		RoutineID: input.RoutineID,
		Date:      s.today(),
		Unit:      unit,
		Exercises: exercises,
		Notes:     notes,
		CreatedAt: s.clock.Now().UTC(),
	}

	var created *domain.Workout
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if w.RoutineID != nil {
			if _, err := s.routines.GetByID(txCtx, userID, *w.RoutineID); err != nil {
				return fmt.Errorf("check routine: %w", err)
			}
		}

		var err error
		created, err = s.workouts.Create(txCtx, w)
		if err != nil {
			return fmt.Errorf("create workout: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "workout saved",
		slog.String("user_id", userID.String()),
		slog.String("workout_id", created.ID.String()),
		slog.Int("exercises", len(created.Exercises)),
		slog.Int("sets", domain.CountSets(created.Exercises)),
	)

	return created, nil
}
