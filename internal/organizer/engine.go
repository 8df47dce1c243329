// Package organizer is the query and lifecycle engine of the prompt library.
// It keeps the working set of prompts loaded from a prompts.Store, derives
// filtered and sorted views from it, and turns save and delete intents into
// store mutations followed by a full reload.
package organizer

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/text/language"

	"github.com/JaimeStill/organizer/internal/prompts"
	"github.com/JaimeStill/organizer/pkg/lifecycle"
)

// Intent is a request to persist a prompt. A zero ID creates a new prompt;
// any other ID replaces every field of that prompt.
type Intent struct {
	ID int64 `json:"id,omitempty"`
	prompts.Fields
}

// Engine owns the working set and the current view query.
//
// Mutations are serialized: the lock is held across the store call and the
// reload that follows, so a view never observes a half-applied intent.
// A failed mutation leaves the working set as it was.
type Engine struct {
	store  prompts.Store
	logger *slog.Logger
	locale language.Tag

	mu      sync.RWMutex
	records []prompts.Prompt
	query   Query
}

// New creates an Engine over store. Titles are collated using locale.
// The working set is empty until Refresh is called.
func New(store prompts.Store, logger *slog.Logger, locale language.Tag) *Engine {
	return &Engine{
		store:   store,
		logger:  logger.With("system", "organizer"),
		locale:  locale,
		records: []prompts.Prompt{},
		query:   Query{}.Normalize(),
	}
}

// Start registers the initial working-set load as a startup hook.
func (e *Engine) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup(func() error {
		if err := e.Refresh(lc.Context()); err != nil {
			e.logger.Error("initial load failed", "error", err)
			return fmt.Errorf("load prompt library: %w", err)
		}
		return nil
	})
	return nil
}

// Refresh replaces the working set with the store's current contents.
func (e *Engine) Refresh(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.refresh(ctx)
}

func (e *Engine) refresh(ctx context.Context) error {
	records, err := e.store.LoadAll(ctx)
	if err != nil {
		return err
	}

	e.records = records
	e.logger.Debug("working set loaded", "count", len(records))
	return nil
}

// Save creates or updates a prompt according to intent and reloads the working set.
// It returns the record as persisted. Store errors are returned unchanged and
// skip the reload.
func (e *Engine) Save(ctx context.Context, intent Intent) (prompts.Prompt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := intent.ID
	if id == 0 {
		p, err := e.store.Insert(ctx, intent.Fields)
		if err != nil {
			return prompts.Prompt{}, err
		}
		id = p.ID
	} else if err := e.store.UpdateByID(ctx, id, intent.Fields); err != nil {
		return prompts.Prompt{}, err
	}

	if err := e.refresh(ctx); err != nil {
		return prompts.Prompt{}, err
	}

	return e.find(id)
}

// Delete removes the prompt with id and reloads the working set.
// Deleting an unknown id returns prompts.ErrNotFound without reloading.
func (e *Engine) Delete(ctx context.Context, id int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.DeleteByID(ctx, id); err != nil {
		return err
	}

	return e.refresh(ctx)
}

// Find returns the working-set prompt with id, or prompts.ErrNotFound.
func (e *Engine) Find(id int64) (prompts.Prompt, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.find(id)
}

func (e *Engine) find(id int64) (prompts.Prompt, error) {
	i := slices.IndexFunc(e.records, func(p prompts.Prompt) bool {
		return p.ID == id
	})
	if i < 0 {
		return prompts.Prompt{}, prompts.ErrNotFound
	}
	return clone(e.records[i]), nil
}

// Records returns a copy of the full working set in store order.
func (e *Engine) Records() []prompts.Prompt {
	e.mu.RLock()
	defer e.mu.RUnlock()

	records := make([]prompts.Prompt, len(e.records))
	for i, p := range e.records {
		records[i] = clone(p)
	}
	return records
}

// Query returns the current view query.
func (e *Engine) Query() Query {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.query.Normalize()
}

// SetQuery replaces the current view query.
func (e *Engine) SetQuery(q Query) error {
	if err := q.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.query = q.Normalize()
	return nil
}

// View computes the view for the current query.
func (e *Engine) View() []prompts.Prompt {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Compute(e.records, e.query, e.locale)
}

// ViewOf computes the view for q without changing the current query.
func (e *Engine) ViewOf(q Query) ([]prompts.Prompt, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	return Compute(e.records, q, e.locale), nil
}

// Tags returns every tag in the working set, regardless of the current query.
func (e *Engine) Tags() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return DistinctTags(e.records)
}
