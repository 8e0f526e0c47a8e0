package workout

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/ironlog/internal/domain"
)

var _ routineRepo = &routineRepoMock{}

type routineRepoMock struct {
	GetByIDFunc func(ctx context.Context, userID, routineID uuid.UUID) (*domain.Routine, error)

	calls struct {
		GetByID []struct {
			Ctx       context.Context
			UserID    uuid.UUID
			RoutineID uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *routineRepoMock) GetByID(ctx context.Context, userID, routineID uuid.UUID) (*domain.Routine, error) {
	if mock.GetByIDFunc == nil {
		panic("routineRepoMock.GetByIDFunc: method is nil but routineRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		UserID    uuid.UUID
		RoutineID uuid.UUID
	}{Ctx: ctx, UserID: userID, RoutineID: routineID}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, userID, routineID)
}

func (mock *routineRepoMock) GetByIDCalls() []struct {
	Ctx       context.Context
	UserID    uuid.UUID
	RoutineID uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}
