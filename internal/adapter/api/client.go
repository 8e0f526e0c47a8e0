// Package api is the client side of the workout server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ironlog/internal/domain"
)

const maxErrorBody = 4 << 10

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps well-known statuses onto domain sentinels.
func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusBadRequest:
		return domain.ErrValidation
	}
	return nil
}

// SaveWorkoutInput is a workout written directly while online.
type SaveWorkoutInput struct {
	Exercises []domain.WorkoutExercise
	Notes     string
	Unit      domain.WeightUnit
	RoutineID *uuid.UUID
}

// Client talks to the workout server.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client for baseURL. Every request is bounded by timeout.
func NewClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "api"),
	}
}

type saveWorkoutRequest struct {
	Exercises []domain.WorkoutExercise `json:"exercises"`
	Notes     string                   `json:"notes"`
	Unit      domain.WeightUnit        `json:"unit"`
	RoutineID *uuid.UUID               `json:"routineId,omitempty"`
}

type syncWorkoutRequest struct {
	LocalID   uuid.UUID                `json:"localId"`
	Exercises []domain.WorkoutExercise `json:"exercises"`
	Notes     string                   `json:"notes"`
	Unit      domain.WeightUnit        `json:"unit"`
	Date      string                   `json:"date"`
}

type routineResponse struct {
	ID        uuid.UUID                `json:"id"`
	Name      string                   `json:"name"`
	Exercises []domain.RoutineExercise `json:"exercises"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// SaveWorkout posts a workout to the direct write endpoint.
func (c *Client) SaveWorkout(ctx context.Context, in SaveWorkoutInput) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/workouts", saveWorkoutRequest{
		Exercises: in.Exercises,
		Notes:     in.Notes,
		Unit:      in.Unit,
		RoutineID: in.RoutineID,
	})
	if err != nil {
		return fmt.Errorf("save workout: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("save workout: %w", statusError(resp))
	}
	return nil
}

// SyncWorkout replays a queued workout. A replay the server already stored
// answers 200 and counts as success.
func (c *Client) SyncWorkout(ctx context.Context, w domain.QueuedWorkout) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/workouts/sync", syncWorkoutRequest{
		LocalID:   w.LocalID,
		Exercises: w.Exercises,
		Notes:     w.Notes,
		Unit:      w.Unit,
		Date:      w.Date,
	})
	if err != nil {
		return fmt.Errorf("sync workout %s: %w", w.LocalID, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		return nil
	case http.StatusOK:
		c.log.DebugContext(ctx, "workout already stored", slog.String("local_id", w.LocalID.String()))
		return nil
	}
	return fmt.Errorf("sync workout %s: %w", w.LocalID, statusError(resp))
}

// FetchRoutine returns the routine with id.
// Returns nil, nil if the server does not know it (HTTP 404).
func (c *Client) FetchRoutine(ctx context.Context, id uuid.UUID) (*domain.Routine, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/routines/"+id.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch routine: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch routine: %w", statusError(resp))
	}

	var body routineResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("fetch routine: decode json: %w", err)
	}

	return &domain.Routine{
		ID:        body.ID,
		Name:      body.Name,
		Exercises: body.Exercises,
	}, nil
}

// Probe checks that the server answers its liveness endpoint.
func (c *Client) Probe(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/live", nil)
	if err != nil {
		return fmt.Errorf("probe: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("probe: %w", statusError(resp))
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.DebugContext(ctx, "api request", slog.String("method", method), slog.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func statusError(resp *http.Response) error {
	se := &StatusError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return se
	}
	var body errorResponse
	if err := json.Unmarshal(data, &body); err == nil {
		se.Message = body.Error
	}
	return se
}

