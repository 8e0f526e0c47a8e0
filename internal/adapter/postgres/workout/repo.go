// Package workout implements the Workout repository using PostgreSQL.
// Queued workouts are deduplicated by the (user_id, local_id) unique index,
// so a replayed sync is absorbed by the database rather than by a
// check-then-insert in application code.
package workout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/ironlog/internal/adapter/postgres"
	"github.com/heartmarshall/ironlog/internal/domain"
)

const table = "workouts"

var columns = []string{
	"id", "user_id", "local_id", "routine_id", "date", "unit", "exercises", "notes", "created_at",
}

// Repo provides workout persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new workout repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a workout and returns the persisted row.
func (r *Repo) Create(ctx context.Context, w *domain.Workout) (*domain.Workout, error) {
	insert, err := insertBuilder(w)
	if err != nil {
		return nil, err
	}

	query, args, err := insert.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert workout: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	got, err := scanWorkout(row)
	if err != nil {
		return nil, postgres.MapError(err, "workout", w.ID)
	}
	return got, nil
}

// CreateIfAbsent inserts a queued workout unless one with the same
// (user_id, local_id) already exists. It reports whether a row was created;
// false means the workout had already been persisted.
func (r *Repo) CreateIfAbsent(ctx context.Context, w *domain.Workout) (bool, error) {
	if w.LocalID == nil {
		return false, fmt.Errorf("workout %s: local_id: %w", w.ID, domain.ErrValidation)
	}

	insert, err := insertBuilder(w)
	if err != nil {
		return false, err
	}

	query, args, err := insert.
		Suffix("ON CONFLICT (user_id, local_id) WHERE local_id IS NOT NULL DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build insert workout: %w", err)
	}

	var id uuid.UUID
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, postgres.MapError(err, "workout", w.ID)
	}
	return true, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByLocalID returns the workout a queued write produced.
// Returns domain.ErrNotFound if there is none for this user.
func (r *Repo) GetByLocalID(ctx context.Context, userID, localID uuid.UUID) (*domain.Workout, error) {
	query, args, err := postgres.Builder.
		Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": userID, "local_id": localID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select workout: %w", err)
	}

	got, err := scanWorkout(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "workout", localID)
	}
	return got, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func insertBuilder(w *domain.Workout) (sq.InsertBuilder, error) {
	exercises, err := json.Marshal(w.Exercises)
	if err != nil {
		return sq.InsertBuilder{}, fmt.Errorf("marshal exercises: %w", err)
	}

	date, err := time.Parse(domain.DateLayout, w.Date)
	if err != nil {
		return sq.InsertBuilder{}, fmt.Errorf("workout %s: date %q: %w", w.ID, w.Date, domain.ErrValidation)
	}

	return postgres.Builder.
		Insert(table).
		Columns(columns...).
		Values(w.ID, w.UserID, w.LocalID, w.RoutineID, date, string(w.Unit), exercises, w.Notes, w.CreatedAt), nil
}

func scanWorkout(row pgx.Row) (*domain.Workout, error) {
	var (
		w         domain.Workout
		date      time.Time
		unit      string
		exercises []byte
	)

	if err := row.Scan(&w.ID, &w.UserID, &w.LocalID, &w.RoutineID, &date, &unit, &exercises, &w.Notes, &w.CreatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(exercises, &w.Exercises); err != nil {
		return nil, fmt.Errorf("unmarshal exercises: %w", err)
	}
	w.Date = date.Format(domain.DateLayout)
	w.Unit = domain.WeightUnit(unit)

	return &w, nil
}
