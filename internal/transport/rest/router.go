package rest

import (
	"net/http"

	"github.com/heartmarshall/ironlog/internal/transport/middleware"
)

// Routes groups the handlers and per-route middleware of the HTTP API.
type Routes struct {
	Health  *HealthHandler
	Workout *WorkoutHandler

	// WriteLimit wraps the two workout write endpoints.
	WriteLimit middleware.Middleware
}

// NewRouter registers all endpoints on a new ServeMux. Probes are public;
// every /api route requires an authenticated user.
func NewRouter(rt Routes) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", rt.Health.Live)
	mux.HandleFunc("GET /ready", rt.Health.Ready)
	mux.HandleFunc("GET /health", rt.Health.Health)

	writes := middleware.Chain(middleware.RequireUser)
	if rt.WriteLimit != nil {
		writes = middleware.Chain(middleware.RequireUser, rt.WriteLimit)
	}

	mux.Handle("POST /api/workouts", writes(http.HandlerFunc(rt.Workout.Save)))
	mux.Handle("POST /api/workouts/sync", writes(http.HandlerFunc(rt.Workout.Sync)))
	mux.Handle("GET /api/routines/{id}", middleware.RequireUser(http.HandlerFunc(rt.Workout.GetRoutine)))

	return mux
}
