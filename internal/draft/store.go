// Package draft keeps the single in-progress workout on durable local
// storage so it survives a crash or restart.
//
// Reads fail open: a missing, empty or unreadable record is reported as
// "no draft". Writes return their error so the caller can log it and move
// on; losing a draft is recoverable, blocking the editor is not.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/ironlog/internal/domain"
)

// Key is the fixed storage key of the draft record.
const Key = "draft:current"

type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	RequestDurability(ctx context.Context) error
}

// Store reads and writes the draft record.
type Store struct {
	kv    kvStore
	clock clockwork.Clock
	log   *slog.Logger

	durability sync.Once
}

// NewStore creates a draft Store over kv.
func NewStore(log *slog.Logger, kv kvStore, clock clockwork.Clock) *Store {
	return &Store{
		kv:    kv,
		clock: clock,
		log:   log.With("component", "draft"),
	}
}

// SaveDraft replaces the stored draft with rec, stamping UpdatedAt.
// The record is written in a single put.
func (s *Store) SaveDraft(ctx context.Context, rec domain.DraftRecord) error {
	s.durability.Do(func() {
		if err := s.kv.RequestDurability(ctx); err != nil {
			s.log.WarnContext(ctx, "durable storage request denied", slog.String("error", err.Error()))
		}
	})

	rec.UpdatedAt = s.clock.Now().UTC()
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	if err := s.kv.Put(ctx, Key, data); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// LoadDraft returns the stored draft. ok is false when there is no record,
// the record has no exercises, or it could not be read.
func (s *Store) LoadDraft(ctx context.Context) (rec domain.DraftRecord, ok bool) {
	data, err := s.kv.Get(ctx, Key)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DraftRecord{}, false
	}
	if err != nil {
		s.log.WarnContext(ctx, "load draft failed, treating as absent", slog.String("error", err.Error()))
		return domain.DraftRecord{}, false
	}

	if err := json.Unmarshal(data, &rec); err != nil {
		s.log.WarnContext(ctx, "draft record unreadable, treating as absent", slog.String("error", err.Error()))
		return domain.DraftRecord{}, false
	}

	if len(rec.Exercises) == 0 {
		return domain.DraftRecord{}, false
	}
	return rec, true
}

// ClearDraft deletes the stored draft. Clearing an absent draft succeeds.
func (s *Store) ClearDraft(ctx context.Context) error {
	if err := s.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
