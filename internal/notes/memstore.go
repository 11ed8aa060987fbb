package notes

import (
	"context"
	"slices"
	"sync"
	"time"

	"example.com/notehook/internal/stringsx"
)

// MemStore keeps notes in process memory. It is the default store when no
// database is configured and backs most unit tests.
type MemStore struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]Note
	order  []int64 // ids in insertion order, defines List ordering

	now func() time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{
		byID: make(map[int64]Note),
		now:  time.Now,
	}
}

func (s *MemStore) Create(_ context.Context, req CreateNoteRequest) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	n := Note{
		ID:        s.nextID,
		Title:     req.Title,
		Content:   req.Content,
		Tags:      cloneTags(req.Tags),
		CreatedAt: s.now().UTC(),
	}
	s.byID[n.ID] = n
	s.order = append(s.order, n.ID)
	return copyNote(n), nil
}

func (s *MemStore) Get(_ context.Context, id int64) (Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.byID[id]
	if !ok {
		return Note{}, ErrNotFound
	}
	return copyNote(n), nil
}

func (s *MemStore) Update(_ context.Context, id int64, req UpdateNoteRequest) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.byID[id]
	if !ok {
		return Note{}, ErrNotFound
	}
	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Content != nil {
		n.Content = *req.Content
	}
	if req.Tags != nil {
		n.Tags = cloneTags(*req.Tags)
	}
	s.byID[id] = n
	return copyNote(n), nil
}

func (s *MemStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return nil
}

func (s *MemStore) List(_ context.Context, p ListParams) ([]Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]Note, 0, len(s.order))
	for _, id := range s.order {
		n := s.byID[id]
		if p.Tag != "" && !slices.Contains(n.Tags, p.Tag) {
			continue
		}
		if p.Query != "" &&
			!stringsx.ContainsFold(n.Title, p.Query) &&
			!stringsx.ContainsFold(n.Content, p.Query) {
			continue
		}
		matched = append(matched, copyNote(n))
	}

	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Offset >= len(matched) {
		return []Note{}, nil
	}
	matched = matched[p.Offset:]
	if p.Limit > 0 && p.Limit < len(matched) {
		matched = matched[:p.Limit]
	}
	return matched, nil
}

// copyNote detaches the tags slice so callers cannot mutate stored state.
func copyNote(n Note) Note {
	n.Tags = cloneTags(n.Tags)
	return n
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return slices.Clone(tags)
}
