package prompts

import "context"

// Store defines the persistent record operations for prompts.
// Records are addressed only by id; reads are full scans.
type Store interface {
	// LoadAll returns every stored prompt in insertion order.
	LoadAll(ctx context.Context) ([]Prompt, error)
	// Insert persists a new prompt with a store-generated id and
	// CreatedAt = ModifiedAt = now, returning the full record.
	Insert(ctx context.Context, fields Fields) (Prompt, error)
	// UpdateByID replaces every editable field and refreshes ModifiedAt,
	// leaving CreatedAt untouched. Returns ErrNotFound if id is absent.
	UpdateByID(ctx context.Context, id int64, fields Fields) error
	// DeleteByID permanently removes a prompt. Returns ErrNotFound if id is absent.
	DeleteByID(ctx context.Context, id int64) error
}
