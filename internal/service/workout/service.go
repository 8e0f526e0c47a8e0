// Package workout implements the server side of workout persistence:
// direct saves, idempotent replay of queued workouts, and routine lookup.
package workout

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/ironlog/internal/domain"
)

type workoutRepo interface {
	Create(ctx context.Context, w *domain.Workout) (*domain.Workout, error)
	CreateIfAbsent(ctx context.Context, w *domain.Workout) (bool, error)
	GetByLocalID(ctx context.Context, userID, localID uuid.UUID) (*domain.Workout, error)
}

type routineRepo interface {
	GetByID(ctx context.Context, userID, routineID uuid.UUID) (*domain.Routine, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides workout operations scoped to the authenticated user.
type Service struct {
	workouts workoutRepo
	routines routineRepo
	tx       txManager
	clock    clockwork.Clock
	log      *slog.Logger
}

// NewService creates a new Workout service.
func NewService(
	log *slog.Logger,
	workouts workoutRepo,
	routines routineRepo,
	tx txManager,
	clock clockwork.Clock,
) *Service {
	return &Service{
		workouts: workouts,
		routines: routines,
		tx:       tx,
		clock:    clock,
		log:      log.With("service", "workout"),
	}
}

// today returns the server's current calendar date.
func (s *Service) today() string {
	return s.clock.Now().UTC().Format(domain.DateLayout)
}
