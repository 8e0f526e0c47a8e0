package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/ironlog/internal/domain"
	"github.com/heartmarshall/ironlog/internal/service/workout"
)

var _ workoutService = &workoutServiceMock{}

type workoutServiceMock struct {
	SaveWorkoutFunc func(ctx context.Context, input workout.SaveWorkoutInput) (*domain.Workout, error)
	SyncWorkoutFunc func(ctx context.Context, input workout.SyncWorkoutInput) (workout.SyncResult, error)
	GetRoutineFunc  func(ctx context.Context, routineID uuid.UUID) (*domain.Routine, error)

	calls struct {
		SaveWorkout []struct {
			Ctx   context.Context
			Input workout.SaveWorkoutInput
		}
		SyncWorkout []struct {
			Ctx   context.Context
			Input workout.SyncWorkoutInput
		}
		GetRoutine []struct {
			Ctx       context.Context
			RoutineID uuid.UUID
		}
	}
	lockSaveWorkout sync.RWMutex
	lockSyncWorkout sync.RWMutex
	lockGetRoutine  sync.RWMutex
}

func (mock *workoutServiceMock) SaveWorkout(ctx context.Context, input workout.SaveWorkoutInput) (*domain.Workout, error) {
	if mock.SaveWorkoutFunc == nil {
		panic("workoutServiceMock.SaveWorkoutFunc: method is nil but workoutService.SaveWorkout was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input workout.SaveWorkoutInput
	}{Ctx: ctx, Input: input}
	mock.lockSaveWorkout.Lock()
	mock.calls.SaveWorkout = append(mock.calls.SaveWorkout, callInfo)
	mock.lockSaveWorkout.Unlock()
	return mock.SaveWorkoutFunc(ctx, input)
}

func (mock *workoutServiceMock) SaveWorkoutCalls() []struct {
	Ctx   context.Context
	Input workout.SaveWorkoutInput
} {
	mock.lockSaveWorkout.RLock()
	calls := mock.calls.SaveWorkout
	mock.lockSaveWorkout.RUnlock()
	return calls
}

func (mock *workoutServiceMock) SyncWorkout(ctx context.Context, input workout.SyncWorkoutInput) (workout.SyncResult, error) {
	if mock.SyncWorkoutFunc == nil {
		panic("workoutServiceMock.SyncWorkoutFunc: method is nil but workoutService.SyncWorkout was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input workout.SyncWorkoutInput
	}{Ctx: ctx, Input: input}
	mock.lockSyncWorkout.Lock()
	mock.calls.SyncWorkout = append(mock.calls.SyncWorkout, callInfo)
	mock.lockSyncWorkout.Unlock()
	return mock.SyncWorkoutFunc(ctx, input)
}

func (mock *workoutServiceMock) SyncWorkoutCalls() []struct {
	Ctx   context.Context
	Input workout.SyncWorkoutInput
} {
	mock.lockSyncWorkout.RLock()
	calls := mock.calls.SyncWorkout
	mock.lockSyncWorkout.RUnlock()
	return calls
}

func (mock *workoutServiceMock) GetRoutine(ctx context.Context, routineID uuid.UUID) (*domain.Routine, error) {
	if mock.GetRoutineFunc == nil {
		panic("workoutServiceMock.GetRoutineFunc: method is nil but workoutService.GetRoutine was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		RoutineID uuid.UUID
	}{Ctx: ctx, RoutineID: routineID}
	mock.lockGetRoutine.Lock()
	mock.calls.GetRoutine = append(mock.calls.GetRoutine, callInfo)
	mock.lockGetRoutine.Unlock()
	return mock.GetRoutineFunc(ctx, routineID)
}

func (mock *workoutServiceMock) GetRoutineCalls() []struct {
	Ctx       context.Context
	RoutineID uuid.UUID
} {
	mock.lockGetRoutine.RLock()
	calls := mock.calls.GetRoutine
	mock.lockGetRoutine.RUnlock()
	return calls
}
