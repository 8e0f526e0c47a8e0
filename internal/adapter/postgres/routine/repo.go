// Package routine implements routine template persistence using PostgreSQL.
package routine

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/ironlog/internal/adapter/postgres"
	"github.com/heartmarshall/ironlog/internal/domain"
)

// Repo provides routine persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new routine repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a routine by primary key with user_id filter.
// Returns domain.ErrNotFound if the routine does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, routineID uuid.UUID) (*domain.Routine, error) {
	query, args, err := postgres.Builder.
		Select("id", "user_id", "name", "exercises", "created_at", "updated_at").
		From("routines").
		Where(sq.Eq{"id": routineID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select routine: %w", err)
	}

	var (
		rt        domain.Routine
		exercises []byte
	)
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).
		Scan(&rt.ID, &rt.UserID, &rt.Name, &exercises, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "routine", routineID)
	}

	if err := json.Unmarshal(exercises, &rt.Exercises); err != nil {
		return nil, fmt.Errorf("routine %s: unmarshal exercises: %w", routineID, err)
	}

	return &rt, nil
}

// Upsert inserts rt or replaces the name and exercises of an existing routine
// with the same ID. A routine owned by another user is left untouched and
// reported as domain.ErrNotFound.
func (r *Repo) Upsert(ctx context.Context, rt domain.Routine) error {
	exercises, err := json.Marshal(rt.Exercises)
	if err != nil {
		return fmt.Errorf("routine %s: marshal exercises: %w", rt.ID, err)
	}

	query, args, err := postgres.Builder.
		Insert("routines").
		Columns("id", "user_id", "name", "exercises", "created_at", "updated_at").
		Values(rt.ID, rt.UserID, rt.Name, exercises, rt.CreatedAt, rt.UpdatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name, exercises = EXCLUDED.exercises, updated_at = EXCLUDED.updated_at
			WHERE routines.user_id = EXCLUDED.user_id`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert routine: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "routine", rt.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("routine %s: %w", rt.ID, domain.ErrNotFound)
	}
	return nil
}
