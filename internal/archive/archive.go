// Package archive backs up and restores the prompt library as JSON snapshots
// kept in blob storage.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/organizer/internal/organizer"
	"github.com/JaimeStill/organizer/internal/prompts"
	"github.com/JaimeStill/organizer/pkg/formatting"
	"github.com/JaimeStill/organizer/pkg/storage"
)

// Prefix is the storage key prefix under which snapshots are written.
const Prefix = "snapshots/"

const contentType = "application/json"

// Snapshot is the serialized form of the library at a point in time.
type Snapshot struct {
	ID         uuid.UUID        `json:"id"`
	ExportedAt time.Time        `json:"exportedAt"`
	Prompts    []prompts.Prompt `json:"prompts"`
}

// Manifest describes a written snapshot.
type Manifest struct {
	ID         uuid.UUID `json:"id"`
	Key        string    `json:"key"`
	Count      int       `json:"count"`
	Size       int64     `json:"size"`
	ExportedAt time.Time `json:"exportedAt"`
}

// Key returns the storage key of the snapshot with id.
func Key(id uuid.UUID) string {
	return path.Join(Prefix, id.String()+".json")
}

// Archive exports the engine's working set to storage and imports it back.
type Archive struct {
	engine *organizer.Engine
	store  storage.System
	logger *slog.Logger
	now    func() time.Time
}

// New creates an Archive over engine and store.
func New(engine *organizer.Engine, store storage.System, logger *slog.Logger) *Archive {
	return &Archive{
		engine: engine,
		store:  store,
		logger: logger.With("system", "archive"),
		now:    time.Now,
	}
}

// Handler returns the HTTP handler for archive endpoints.
func (a *Archive) Handler() *Handler {
	return NewHandler(a, a.logger)
}

// Export writes the current working set as a new snapshot.
func (a *Archive) Export(ctx context.Context) (Manifest, error) {
	snap := Snapshot{
		ID:         uuid.New(),
		ExportedAt: a.now().UTC(),
		Prompts:    a.engine.Records(),
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return Manifest{}, fmt.Errorf("encode snapshot: %w", err)
	}

	key := Key(snap.ID)
	if err := a.store.Upload(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return Manifest{}, err
	}

	m := Manifest{
		ID:         snap.ID,
		Key:        key,
		Count:      len(snap.Prompts),
		Size:       int64(len(data)),
		ExportedAt: snap.ExportedAt,
	}

	a.logger.Info("snapshot exported", "key", key, "count", m.Count, "size", formatting.FormatBytes(m.Size, 1))
	return m, nil
}

// Import saves every prompt in the snapshot at key as a new record. Keys
// outside Prefix are rejected with storage.ErrInvalidKey.
// The snapshot is validated before any record is written; saving stops at
// the first failure and the number of prompts imported so far is returned.
func (a *Archive) Import(ctx context.Context, key string) (int, error) {
	snap, err := a.read(ctx, key)
	if err != nil {
		return 0, err
	}

	for i, p := range snap.Prompts {
		if err := p.Fields().Validate(); err != nil {
			return 0, fmt.Errorf("%w: prompt %d: %w", ErrInvalidSnapshot, i, err)
		}
	}

	imported := 0
	for _, p := range snap.Prompts {
		if _, err := a.engine.Save(ctx, organizer.Intent{Fields: p.Fields()}); err != nil {
			a.logger.Error("snapshot import interrupted", "key", key, "imported", imported, "error", err)
			return imported, err
		}
		imported++
	}

	a.logger.Info("snapshot imported", "key", key, "count", imported)
	return imported, nil
}

// Open returns the raw snapshot stream at key, which must lie under Prefix.
// The caller must close it.
func (a *Archive) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	return a.store.Download(ctx, key)
}

// List returns the stored snapshots ordered by key.
func (a *Archive) List(ctx context.Context) ([]storage.Blob, error) {
	return a.store.List(ctx, Prefix)
}

func (a *Archive) read(ctx context.Context, key string) (Snapshot, error) {
	if err := checkKey(key); err != nil {
		return Snapshot{}, err
	}

	rc, err := a.store.Download(ctx, key)
	if err != nil {
		return Snapshot{}, err
	}
	defer rc.Close()

	var snap Snapshot
	if err := json.NewDecoder(rc).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	return snap, nil
}

// checkKey rejects keys outside the snapshot prefix.
func checkKey(key string) error {
	if !strings.HasPrefix(key, Prefix) {
		return fmt.Errorf("%w: %s is outside %s", storage.ErrInvalidKey, key, Prefix)
	}
	return nil
}
