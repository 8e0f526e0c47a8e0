package workoutlog

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/ironlog/internal/adapter/api"
	"github.com/heartmarshall/ironlog/internal/domain"
	"github.com/heartmarshall/ironlog/internal/offlinequeue"
)

var (
	_ draftStore   = &draftStoreMock{}
	_ workoutQueue = &workoutQueueMock{}
	_ remote       = &remoteMock{}
)

type draftStoreMock struct {
	SaveDraftFunc  func(ctx context.Context, rec domain.DraftRecord) error
	LoadDraftFunc  func(ctx context.Context) (domain.DraftRecord, bool)
	ClearDraftFunc func(ctx context.Context) error

	calls struct {
		SaveDraft []struct {
			Ctx context.Context
			Rec domain.DraftRecord
		}
		LoadDraft []struct {
			Ctx context.Context
		}
		ClearDraft []struct {
			Ctx context.Context
		}
	}
	lockSaveDraft  sync.RWMutex
	lockLoadDraft  sync.RWMutex
	lockClearDraft sync.RWMutex
}

func (mock *draftStoreMock) SaveDraft(ctx context.Context, rec domain.DraftRecord) error {
	if mock.SaveDraftFunc == nil {
		panic("draftStoreMock.SaveDraftFunc: method is nil but draftStore.SaveDraft was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rec domain.DraftRecord
	}{Ctx: ctx, Rec: rec}
	mock.lockSaveDraft.Lock()
	mock.calls.SaveDraft = append(mock.calls.SaveDraft, callInfo)
	mock.lockSaveDraft.Unlock()
	return mock.SaveDraftFunc(ctx, rec)
}

func (mock *draftStoreMock) SaveDraftCalls() []struct {
	Ctx context.Context
	Rec domain.DraftRecord
} {
	mock.lockSaveDraft.RLock()
	calls := mock.calls.SaveDraft
	mock.lockSaveDraft.RUnlock()
	return calls
}

func (mock *draftStoreMock) LoadDraft(ctx context.Context) (domain.DraftRecord, bool) {
	if mock.LoadDraftFunc == nil {
		panic("draftStoreMock.LoadDraftFunc: method is nil but draftStore.LoadDraft was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockLoadDraft.Lock()
	mock.calls.LoadDraft = append(mock.calls.LoadDraft, callInfo)
	mock.lockLoadDraft.Unlock()
	return mock.LoadDraftFunc(ctx)
}

func (mock *draftStoreMock) LoadDraftCalls() []struct {
	Ctx context.Context
} {
	mock.lockLoadDraft.RLock()
	calls := mock.calls.LoadDraft
	mock.lockLoadDraft.RUnlock()
	return calls
}

func (mock *draftStoreMock) ClearDraft(ctx context.Context) error {
	if mock.ClearDraftFunc == nil {
		panic("draftStoreMock.ClearDraftFunc: method is nil but draftStore.ClearDraft was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockClearDraft.Lock()
	mock.calls.ClearDraft = append(mock.calls.ClearDraft, callInfo)
	mock.lockClearDraft.Unlock()
	return mock.ClearDraftFunc(ctx)
}

func (mock *draftStoreMock) ClearDraftCalls() []struct {
	Ctx context.Context
} {
	mock.lockClearDraft.RLock()
	calls := mock.calls.ClearDraft
	mock.lockClearDraft.RUnlock()
	return calls
}

type workoutQueueMock struct {
	EnqueueFunc func(ctx context.Context, p offlinequeue.PendingWorkout) (domain.QueuedWorkout, error)

	calls struct {
		Enqueue []struct {
			Ctx context.Context
			P   offlinequeue.PendingWorkout
		}
	}
	lockEnqueue sync.RWMutex
}

func (mock *workoutQueueMock) Enqueue(ctx context.Context, p offlinequeue.PendingWorkout) (domain.QueuedWorkout, error) {
	if mock.EnqueueFunc == nil {
		panic("workoutQueueMock.EnqueueFunc: method is nil but workoutQueue.Enqueue was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   offlinequeue.PendingWorkout
	}{Ctx: ctx, P: p}
	mock.lockEnqueue.Lock()
	mock.calls.Enqueue = append(mock.calls.Enqueue, callInfo)
	mock.lockEnqueue.Unlock()
	return mock.EnqueueFunc(ctx, p)
}

func (mock *workoutQueueMock) EnqueueCalls() []struct {
	Ctx context.Context
	P   offlinequeue.PendingWorkout
} {
	mock.lockEnqueue.RLock()
	calls := mock.calls.Enqueue
	mock.lockEnqueue.RUnlock()
	return calls
}

type remoteMock struct {
	SaveWorkoutFunc  func(ctx context.Context, in api.SaveWorkoutInput) error
	FetchRoutineFunc func(ctx context.Context, id uuid.UUID) (*domain.Routine, error)

	calls struct {
		SaveWorkout []struct {
			Ctx context.Context
			In  api.SaveWorkoutInput
		}
		FetchRoutine []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
	}
	lockSaveWorkout  sync.RWMutex
	lockFetchRoutine sync.RWMutex
}

func (mock *remoteMock) SaveWorkout(ctx context.Context, in api.SaveWorkoutInput) error {
	if mock.SaveWorkoutFunc == nil {
		panic("remoteMock.SaveWorkoutFunc: method is nil but remote.SaveWorkout was just called")
	}
	callInfo := struct {
		Ctx context.Context
		In  api.SaveWorkoutInput
	}{Ctx: ctx, In: in}
	mock.lockSaveWorkout.Lock()
	mock.calls.SaveWorkout = append(mock.calls.SaveWorkout, callInfo)
	mock.lockSaveWorkout.Unlock()
	return mock.SaveWorkoutFunc(ctx, in)
}

func (mock *remoteMock) SaveWorkoutCalls() []struct {
	Ctx context.Context
	In  api.SaveWorkoutInput
} {
	mock.lockSaveWorkout.RLock()
	calls := mock.calls.SaveWorkout
	mock.lockSaveWorkout.RUnlock()
	return calls
}

func (mock *remoteMock) FetchRoutine(ctx context.Context, id uuid.UUID) (*domain.Routine, error) {
	if mock.FetchRoutineFunc == nil {
		panic("remoteMock.FetchRoutineFunc: method is nil but remote.FetchRoutine was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockFetchRoutine.Lock()
	mock.calls.FetchRoutine = append(mock.calls.FetchRoutine, callInfo)
	mock.lockFetchRoutine.Unlock()
	return mock.FetchRoutineFunc(ctx, id)
}

func (mock *remoteMock) FetchRoutineCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockFetchRoutine.RLock()
	calls := mock.calls.FetchRoutine
	mock.lockFetchRoutine.RUnlock()
	return calls
}
