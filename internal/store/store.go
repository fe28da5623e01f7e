// Package store owns the authoritative in-process application state and its
// best-effort persistence to the local snapshot slot.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/visijn/haccp/internal/domain/models"
	"github.com/visijn/haccp/internal/repository/snapshot"
)

// Store mediates every read and write of the application state. All record
// collections live in memory; each accepted mutation is followed by a
// best-effort write of the full snapshot to the slot. In-memory state is the
// source of truth even when that write fails. One mutex guards the whole
// state; handlers run on concurrent goroutines even though the deployment
// is single-operator.
type Store struct {
	mu     sync.Mutex
	repo   snapshot.Repository
	logger *zap.Logger

	state       models.Snapshot
	storageFull bool
	savedBytes  int
}

// NewStore wires a store over the given slot repository.
func NewStore(repo snapshot.Repository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		repo:   repo,
		logger: logger,
		state:  models.DefaultSnapshot(),
	}
}

// Load hydrates the store from the persisted slot. A missing or malformed
// snapshot is not an error: the store starts from the default state and the
// problem is logged.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, ok, err := s.repo.Read(ctx)
	if err != nil {
		s.logger.Warn("failed reading snapshot slot, starting empty", zap.Error(err))
		s.state = models.DefaultSnapshot()
		return
	}
	if !ok {
		s.logger.Info("no persisted snapshot, starting from defaults")
		s.state = models.DefaultSnapshot()
		return
	}

	var snap models.Snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		s.logger.Warn("persisted snapshot is malformed, starting empty", zap.Error(err))
		s.state = models.DefaultSnapshot()
		return
	}

	snap.Normalize()
	s.state = snap
	s.logger.Info("snapshot loaded", zap.Int("bytes", len(blob)))
}

// Update applies a mutation to the state and persists the result. The
// mutation itself never fails on persistence problems; quota exhaustion is
// surfaced through StorageFull instead.
func (s *Store) Update(ctx context.Context, mutate func(*models.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mutate(&s.state)
	s.save(ctx)
}

// Snapshot returns a deep copy of the current state for report generation
// and export. Callers must not feed it back through Restore unmodified.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Restore wholesale-replaces the state from an imported snapshot, then saves
// immediately so an oversized import surfaces the storage warning right away.
func (s *Store) Restore(ctx context.Context, snap models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap.Normalize()
	s.state = snap
	s.save(ctx)
}

// Reset replaces the state with first-run defaults and clears the slot.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = models.DefaultSnapshot()
	s.storageFull = false
	s.savedBytes = 0
	if err := s.repo.Clear(ctx); err != nil {
		s.logger.Warn("failed clearing snapshot slot", zap.Error(err))
	}
}

// StorageFull reports whether the latest save was rejected for quota. The
// flag clears on the next successful save.
func (s *Store) StorageFull() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storageFull
}

// SavedBytes returns the size of the last successfully persisted snapshot.
func (s *Store) SavedBytes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savedBytes
}

func (s *Store) save(ctx context.Context) {
	blob, err := json.Marshal(s.state)
	if err != nil {
		// Snapshot fields are all marshalable types; reaching this means a
		// programming error, but the mutation still stands.
		s.logger.Error("failed serializing snapshot", zap.Error(err))
		return
	}

	if err := s.repo.Write(ctx, blob); err != nil {
		if errors.Is(err, models.ErrQuotaExceeded) {
			s.storageFull = true
			s.logger.Warn("snapshot no longer fits in storage slot", zap.Int("bytes", len(blob)))
			return
		}
		s.logger.Warn("failed persisting snapshot", zap.Error(err))
		return
	}

	s.storageFull = false
	s.savedBytes = len(blob)
}
