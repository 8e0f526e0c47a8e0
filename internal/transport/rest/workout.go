package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ironlog/internal/domain"
	"github.com/heartmarshall/ironlog/internal/service/workout"
)

// workoutService defines the minimal interface needed by WorkoutHandler.
type workoutService interface {
	SaveWorkout(ctx context.Context, input workout.SaveWorkoutInput) (*domain.Workout, error)
	SyncWorkout(ctx context.Context, input workout.SyncWorkoutInput) (workout.SyncResult, error)
	GetRoutine(ctx context.Context, routineID uuid.UUID) (*domain.Routine, error)
}

// WorkoutHandler serves the workout and routine endpoints.
type WorkoutHandler struct {
	svc workoutService
	log *slog.Logger
}

// NewWorkoutHandler creates a WorkoutHandler.
func NewWorkoutHandler(svc workoutService, logger *slog.Logger) *WorkoutHandler {
	return &WorkoutHandler{svc: svc, log: logger.With("handler", "workout")}
}

type saveWorkoutRequest struct {
	Exercises []domain.WorkoutExercise `json:"exercises"`
	Notes     string                   `json:"notes"`
	Unit      domain.WeightUnit        `json:"unit"`
	RoutineID *uuid.UUID               `json:"routineId"`
}

type syncWorkoutRequest struct {
	LocalID   uuid.UUID                `json:"localId"`
	Exercises []domain.WorkoutExercise `json:"exercises"`
	Notes     string                   `json:"notes"`
	Unit      domain.WeightUnit        `json:"unit"`
	Date      string                   `json:"date"`
}

type workoutResponse struct {
	ID        string                   `json:"id"`
	Date      string                   `json:"date"`
	Unit      string                   `json:"unit"`
	Exercises []domain.WorkoutExercise `json:"exercises"`
	Notes     *string                  `json:"notes,omitempty"`
	RoutineID *string                  `json:"routineId,omitempty"`
	CreatedAt time.Time                `json:"createdAt"`
}

type syncResponse struct {
	ID        string `json:"id"`
	LocalID   string `json:"localId"`
	Duplicate bool   `json:"duplicate"`
}

type routineResponse struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"name"`
	Exercises []domain.RoutineExercise `json:"exercises"`
}

// Save handles POST /api/workouts.
func (h *WorkoutHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveWorkoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	saved, err := h.svc.SaveWorkout(r.Context(), workout.SaveWorkoutInput{
		Exercises: req.Exercises,
		Notes:     req.Notes,
		Unit:      req.Unit,
		RoutineID: req.RoutineID,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toWorkoutResponse(saved))
}

// Sync handles POST /api/workouts/sync. A first delivery answers 201, a
// replay of an already stored local ID answers 200 with duplicate=true.
func (h *WorkoutHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var req syncWorkoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.svc.SyncWorkout(r.Context(), workout.SyncWorkoutInput{
		LocalID:   req.LocalID,
		Exercises: req.Exercises,
		Notes:     req.Notes,
		Unit:      req.Unit,
		Date:      req.Date,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	status := http.StatusCreated
	if res.Duplicate {
		status = http.StatusOK
	}
	writeJSON(w, status, syncResponse{
		ID:        res.WorkoutID.String(),
		LocalID:   res.LocalID.String(),
		Duplicate: res.Duplicate,
	})
}

// GetRoutine handles GET /api/routines/{id}.
func (h *WorkoutHandler) GetRoutine(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid routine id")
		return
	}

	routine, err := h.svc.GetRoutine(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	exercises := routine.Exercises
	if exercises == nil {
		exercises = []domain.RoutineExercise{}
	}
	writeJSON(w, http.StatusOK, routineResponse{
		ID:        routine.ID.String(),
		Name:      routine.Name,
		Exercises: exercises,
	})
}

func toWorkoutResponse(w *domain.Workout) workoutResponse {
	resp := workoutResponse{
		ID:        w.ID.String(),
		Date:      w.Date,
		Unit:      w.Unit.String(),
		Exercises: w.Exercises,
		Notes:     w.Notes,
		CreatedAt: w.CreatedAt,
	}
	if w.RoutineID != nil {
		s := w.RoutineID.String()
		resp.RoutineID = &s
	}
	return resp
}
