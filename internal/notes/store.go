package notes

import (
	"context"
	"errors"
)

// ErrNotFound is returned by stores when no note exists for the given id.
var ErrNotFound = errors.New("note not found")

// Store is an abstraction over notes storage.
// It allows unit-testing the service and handlers without a real database.
type Store interface {
	Create(ctx context.Context, req CreateNoteRequest) (Note, error)
	Get(ctx context.Context, id int64) (Note, error)
	Update(ctx context.Context, id int64, req UpdateNoteRequest) (Note, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, p ListParams) ([]Note, error)
}

// ListParams filter and page the result of List. Tag and Query combine with
// logical AND. Limit <= 0 means no limit; Offset applies after filtering.
type ListParams struct {
	Query  string
	Tag    string
	Limit  int
	Offset int
}
