package workout

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/ironlog/internal/domain"
	"github.com/heartmarshall/ironlog/pkg/ctxutil"
)

// GetRoutine returns one of the caller's routines.
func (s *Service) GetRoutine(ctx context.Context, routineID uuid.UUID) (*domain.Routine, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if routineID == uuid.Nil {
		return nil, domain.NewValidationError("routine_id", "required")
	}

	return s.routines.GetByID(ctx, userID, routineID)
}
