package organizer_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/JaimeStill/organizer/internal/prompts"
)

// memStore is an in-memory prompts.Store with failure injection.
type memStore struct {
	mu      sync.Mutex
	records []prompts.Prompt
	nextID  int64
	now     time.Time
	loads   int

	failLoad   error
	failInsert error
	failUpdate error
	failDelete error
}

func newMemStore(seed ...prompts.Prompt) *memStore {
	s := &memStore{nextID: 1, now: base}
	for _, p := range seed {
		s.records = append(s.records, p)
		s.nextID = max(s.nextID, p.ID+1)
	}
	return s
}

func (s *memStore) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *memStore) LoadAll(ctx context.Context) ([]prompts.Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loads++
	if s.failLoad != nil {
		return nil, s.failLoad
	}

	out := make([]prompts.Prompt, len(s.records))
	for i, p := range s.records {
		p.Tags = slices.Clone(p.Tags)
		out[i] = p
	}
	return out, nil
}

func (s *memStore) Insert(ctx context.Context, f prompts.Fields) (prompts.Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failInsert != nil {
		return prompts.Prompt{}, s.failInsert
	}

	now := s.tick()
	p := prompts.Prompt{
		ID:          s.nextID,
		Title:       f.Title,
		Description: f.Description,
		PromptText:  f.PromptText,
		Tags:        slices.Clone(f.Tags),
		CreatedAt:   now,
		ModifiedAt:  now,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	s.nextID++
	s.records = append(s.records, p)
	return p, nil
}

func (s *memStore) UpdateByID(ctx context.Context, id int64, f prompts.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failUpdate != nil {
		return s.failUpdate
	}

	i := slices.IndexFunc(s.records, func(p prompts.Prompt) bool { return p.ID == id })
	if i < 0 {
		return prompts.ErrNotFound
	}

	p := &s.records[i]
	p.Title, p.Description, p.PromptText = f.Title, f.Description, f.PromptText
	p.Tags = slices.Clone(f.Tags)
	p.ModifiedAt = s.tick()
	return nil
}

func (s *memStore) DeleteByID(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failDelete != nil {
		return s.failDelete
	}

	i := slices.IndexFunc(s.records, func(p prompts.Prompt) bool { return p.ID == id })
	if i < 0 {
		return prompts.ErrNotFound
	}
	s.records = slices.Delete(s.records, i, i+1)
	return nil
}

func (s *memStore) loadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}
