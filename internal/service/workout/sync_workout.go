package workout

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/ironlog/internal/domain"
	"github.com/heartmarshall/ironlog/pkg/ctxutil"
)

// SyncResult reports the outcome of replaying a queued workout.
// WorkoutID is the stored row, the original one for a duplicate.
type SyncResult struct {
	LocalID   uuid.UUID
	WorkoutID uuid.UUID
	Duplicate bool
}

// SyncWorkout stores a workout replayed from a client's offline queue.
// Replaying the same LocalID for the same user succeeds without creating a
// second row; Duplicate is set in that case.
func (s *Service) SyncWorkout(ctx context.Context, input SyncWorkoutInput) (SyncResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return SyncResult{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return SyncResult{}, err
	}

	exercises, notes, unit := normalize(input.Exercises, input.Notes, input.Unit)
	localID := input.LocalID
	w := &domain.Workout{
		ID:        uuid.New(),
		UserID:    userID,
		LocalID:   &localID,
		Date:      input.Date,
		Unit:      unit,
		Exercises: exercises,
		Notes:     notes,
		CreatedAt: s.clock.Now().UTC(),
	}

	created, err := s.workouts.CreateIfAbsent(ctx, w)
	if err != nil {
		return SyncResult{}, fmt.Errorf("sync workout: %w", err)
	}

	if created {
		s.log.InfoContext(ctx, "queued workout synced",
			slog.String("user_id", userID.String()),
			slog.String("local_id", localID.String()),
			slog.String("date", input.Date),
		)
		return SyncResult{LocalID: localID, WorkoutID: w.ID}, nil
	}

	existing, err := s.workouts.GetByLocalID(ctx, userID, localID)
	if err != nil {
		return SyncResult{}, fmt.Errorf("sync workout: load existing: %w", err)
	}

	s.log.InfoContext(ctx, "queued workout already synced",
		slog.String("user_id", userID.String()),
		slog.String("local_id", localID.String()),
		slog.String("workout_id", existing.ID.String()),
	)
	return SyncResult{LocalID: localID, WorkoutID: existing.ID, Duplicate: true}, nil
}
