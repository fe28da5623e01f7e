// Package snapshot stores the serialized application state in a single
// bounded key-value slot on the local device.
package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/visijn/haccp/internal/domain/models"
)

const slotKey = "app_state"

// Repository defines the interface for snapshot slot storage.
type Repository interface {
	// Read returns the persisted blob and whether a snapshot exists.
	Read(ctx context.Context) ([]byte, bool, error)
	// Write replaces the slot contents. It returns models.ErrQuotaExceeded
	// when the blob does not fit within the configured storage bound.
	Write(ctx context.Context, blob []byte) error
	// Clear removes the slot contents.
	Clear(ctx context.Context) error
}

// SQLiteRepository implements Repository on a local sqlite file.
type SQLiteRepository struct {
	db         *sql.DB
	quotaBytes int
}

// NewSQLiteRepository opens (and if needed creates) the sqlite slot at path.
// quotaBytes bounds the serialized snapshot size; zero disables the bound.
func NewSQLiteRepository(ctx context.Context, path string, quotaBytes int) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite slot: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite slot: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS snapshots (
		slot       TEXT PRIMARY KEY,
		payload    BLOB NOT NULL,
		updated_at TEXT NOT NULL
	)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create snapshot table: %w", err)
	}

	return &SQLiteRepository{db: db, quotaBytes: quotaBytes}, nil
}

// Read returns the persisted snapshot blob, if any.
func (r *SQLiteRepository) Read(ctx context.Context) ([]byte, bool, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE slot = ?`, slotKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read snapshot slot: %w", err)
	}
	return payload, true, nil
}

// Write replaces the slot contents, enforcing the storage bound first so a
// rejected write leaves the previous snapshot intact.
func (r *SQLiteRepository) Write(ctx context.Context, blob []byte) error {
	if r.quotaBytes > 0 && len(blob) > r.quotaBytes {
		return fmt.Errorf("snapshot is %d bytes, slot holds %d: %w", len(blob), r.quotaBytes, models.ErrQuotaExceeded)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO snapshots (slot, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		slotKey, blob, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write snapshot slot: %w", err)
	}
	return nil
}

// Clear removes the persisted snapshot.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE slot = ?`, slotKey); err != nil {
		return fmt.Errorf("failed to clear snapshot slot: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
