package syncer

import (
	"context"
	"sync"

	"github.com/heartmarshall/ironlog/internal/domain"
)

var _ remote = &remoteMock{}

type remoteMock struct {
	SyncWorkoutFunc func(ctx context.Context, w domain.QueuedWorkout) error

	calls struct {
		SyncWorkout []struct {
			Ctx context.Context
			W   domain.QueuedWorkout
		}
	}
	lockSyncWorkout sync.RWMutex
}

func (mock *remoteMock) SyncWorkout(ctx context.Context, w domain.QueuedWorkout) error {
	if mock.SyncWorkoutFunc == nil {
		panic("remoteMock.SyncWorkoutFunc: method is nil but remote.SyncWorkout was just called")
	}
	callInfo := struct {
		Ctx context.Context
		W   domain.QueuedWorkout
	}{Ctx: ctx, W: w}
	mock.lockSyncWorkout.Lock()
	mock.calls.SyncWorkout = append(mock.calls.SyncWorkout, callInfo)
	mock.lockSyncWorkout.Unlock()
	return mock.SyncWorkoutFunc(ctx, w)
}

func (mock *remoteMock) SyncWorkoutCalls() []struct {
	Ctx context.Context
	W   domain.QueuedWorkout
} {
	mock.lockSyncWorkout.RLock()
	calls := mock.calls.SyncWorkout
	mock.lockSyncWorkout.RUnlock()
	return calls
}
