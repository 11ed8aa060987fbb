package notes

import (
	"context"

	"example.com/notehook/internal/idempotency"
)

// Operation names scoping idempotency keys, so the same key used for a
// create and an update never interferes.
const (
	opCreate = "create"
	opUpdate = "update"
)

// Service wraps a Store with idempotency semantics for mutating calls.
// Reads and deletes pass through untouched.
type Service struct {
	store Store
	cache *idempotency.Cache[Note]
}

func NewService(store Store, cache *idempotency.Cache[Note]) *Service {
	return &Service{store: store, cache: cache}
}

// CreateNote creates a note. If idempotencyKey is non-empty, a retried call
// with the same key replays the original response instead of creating a
// second note.
func (s *Service) CreateNote(ctx context.Context, req CreateNoteRequest, idempotencyKey string) (Note, error) {
	return s.cache.Do(opCreate, idempotencyKey, func() (Note, error) {
		return s.store.Create(ctx, req)
	})
}

// UpdateNote applies a partial update. Not-found results are returned as
// errors and therefore never populate the idempotency cache: a client reusing
// the key after the note appears should see the update applied.
func (s *Service) UpdateNote(ctx context.Context, id int64, req UpdateNoteRequest, idempotencyKey string) (Note, error) {
	return s.cache.Do(opUpdate, idempotencyKey, func() (Note, error) {
		return s.store.Update(ctx, id, req)
	})
}

func (s *Service) GetNote(ctx context.Context, id int64) (Note, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListNotes(ctx context.Context, p ListParams) ([]Note, error) {
	return s.store.List(ctx, p)
}

func (s *Service) DeleteNote(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}
