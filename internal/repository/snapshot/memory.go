package snapshot

import (
	"context"
	"fmt"
	"sync"

	"github.com/visijn/haccp/internal/domain/models"
)

// MemoryRepository is an in-process Repository used by tests and as a
// fallback when no durable slot is configured.
type MemoryRepository struct {
	mu         sync.Mutex
	blob       []byte
	exists     bool
	quotaBytes int
}

// NewMemoryRepository builds an empty in-memory slot with an optional byte bound.
func NewMemoryRepository(quotaBytes int) *MemoryRepository {
	return &MemoryRepository{quotaBytes: quotaBytes}
}

// Read returns the stored blob, if any.
func (r *MemoryRepository) Read(_ context.Context) ([]byte, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.exists {
		return nil, false, nil
	}
	return append([]byte(nil), r.blob...), true, nil
}

// Write replaces the stored blob, enforcing the byte bound.
func (r *MemoryRepository) Write(_ context.Context, blob []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.quotaBytes > 0 && len(blob) > r.quotaBytes {
		return fmt.Errorf("snapshot is %d bytes, slot holds %d: %w", len(blob), r.quotaBytes, models.ErrQuotaExceeded)
	}
	r.blob = append([]byte(nil), blob...)
	r.exists = true
	return nil
}

// Clear empties the slot.
func (r *MemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blob = nil
	r.exists = false
	return nil
}

// SetQuota adjusts the byte bound; tests use it to simulate a full device.
func (r *MemoryRepository) SetQuota(quotaBytes int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quotaBytes = quotaBytes
}
