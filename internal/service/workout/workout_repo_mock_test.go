package workout

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/ironlog/internal/domain"
)

var _ workoutRepo = &workoutRepoMock{}

type workoutRepoMock struct {
	CreateFunc         func(ctx context.Context, w *domain.Workout) (*domain.Workout, error)
	CreateIfAbsentFunc func(ctx context.Context, w *domain.Workout) (bool, error)
	GetByLocalIDFunc   func(ctx context.Context, userID, localID uuid.UUID) (*domain.Workout, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			W   *domain.Workout
		}
		CreateIfAbsent []struct {
			Ctx context.Context
			W   *domain.Workout
		}
		GetByLocalID []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			LocalID uuid.UUID
		}
	}
	lockCreate         sync.RWMutex
	lockCreateIfAbsent sync.RWMutex
	lockGetByLocalID   sync.RWMutex
}

func (mock *workoutRepoMock) Create(ctx context.Context, w *domain.Workout) (*domain.Workout, error) {
	if mock.CreateFunc == nil {
		panic("workoutRepoMock.CreateFunc: method is nil but workoutRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		W   *domain.Workout
	}{Ctx: ctx, W: w}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, w)
}

func (mock *workoutRepoMock) CreateCalls() []struct {
	Ctx context.Context
	W   *domain.Workout
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *workoutRepoMock) CreateIfAbsent(ctx context.Context, w *domain.Workout) (bool, error) {
	if mock.CreateIfAbsentFunc == nil {
		panic("workoutRepoMock.CreateIfAbsentFunc: method is nil but workoutRepo.CreateIfAbsent was just called")
	}
	callInfo := struct {
		Ctx context.Context
		W   *domain.Workout
	}{Ctx: ctx, W: w}
	mock.lockCreateIfAbsent.Lock()
	mock.calls.CreateIfAbsent = append(mock.calls.CreateIfAbsent, callInfo)
	mock.lockCreateIfAbsent.Unlock()
	return mock.CreateIfAbsentFunc(ctx, w)
}

func (mock *workoutRepoMock) CreateIfAbsentCalls() []struct {
	Ctx context.Context
	W   *domain.Workout
} {
	mock.lockCreateIfAbsent.RLock()
	calls := mock.calls.CreateIfAbsent
	mock.lockCreateIfAbsent.RUnlock()
	return calls
}

func (mock *workoutRepoMock) GetByLocalID(ctx context.Context, userID, localID uuid.UUID) (*domain.Workout, error) {
	if mock.GetByLocalIDFunc == nil {
		panic("workoutRepoMock.GetByLocalIDFunc: method is nil but workoutRepo.GetByLocalID was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		LocalID uuid.UUID
	}{Ctx: ctx, UserID: userID, LocalID: localID}
	mock.lockGetByLocalID.Lock()
	mock.calls.GetByLocalID = append(mock.calls.GetByLocalID, callInfo)
	mock.lockGetByLocalID.Unlock()
	return mock.GetByLocalIDFunc(ctx, userID, localID)
}

func (mock *workoutRepoMock) GetByLocalIDCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	LocalID uuid.UUID
} {
	mock.lockGetByLocalID.RLock()
	calls := mock.calls.GetByLocalID
	mock.lockGetByLocalID.RUnlock()
	return calls
}
