package prompts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/organizer/pkg/query"
	"github.com/JaimeStill/organizer/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Store created by New.
type Option func(*repo)

// WithClock replaces time.Now as the source of CreatedAt and ModifiedAt.
func WithClock(now func() time.Time) Option {
	return func(r *repo) {
		r.now = now
	}
}

// New creates a prompt Store backed by db.
// The prompts table must already exist (see internal/migrations).
func New(db *sql.DB, logger *slog.Logger, opts ...Option) Store {
	r := &repo{
		db:     db,
		logger: logger.With("system", "prompts"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *repo) LoadAll(ctx context.Context) ([]Prompt, error) {
	q := query.NewBuilder(projection, defaultSort).Build()

	prompts, err := repository.QueryMany(ctx, r.db, q, nil, scanPrompt)
	if err != nil {
		return nil, repository.MapError(fmt.Errorf("load prompts: %w", err), ErrNotFound, ErrStorage)
	}

	return prompts, nil
}

func (r *repo) Insert(ctx context.Context, fields Fields) (Prompt, error) {
	tags, err := encodeTags(fields.Tags)
	if err != nil {
		return Prompt{}, err
	}

	now := encodeTime(r.now())

	q := fmt.Sprintf(`
		INSERT INTO prompts(title, description, prompt_text, tags, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`, projection.Returning())

	args := []any{fields.Title, fields.Description, fields.PromptText, tags, now, now}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		return repository.QueryOne(ctx, tx, q, args, scanPrompt)
	})

	if err != nil {
		return Prompt{}, repository.MapError(err, ErrNotFound, ErrStorage)
	}

	r.logger.Info("prompt created", "id", p.ID, "title", p.Title)
	return p, nil
}

func (r *repo) UpdateByID(ctx context.Context, id int64, fields Fields) error {
	tags, err := encodeTags(fields.Tags)
	if err != nil {
		return err
	}

	// modified_at never falls below created_at, even if the clock steps backwards.
	q := `
		UPDATE prompts
		SET title = $1, description = $2, prompt_text = $3, tags = $4,
			modified_at = CASE WHEN created_at > $5 THEN created_at ELSE $5 END
		WHERE id = $6`

	args := []any{fields.Title, fields.Description, fields.PromptText, tags, encodeTime(r.now()), id}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, args...)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrStorage)
	}

	r.logger.Info("prompt updated", "id", id, "title", fields.Title)
	return nil
}

func (r *repo) DeleteByID(ctx context.Context, id int64) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM prompts WHERE id = $1",
			id,
		)
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrStorage)
	}

	r.logger.Info("prompt deleted", "id", id)
	return nil
}
