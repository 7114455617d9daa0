// Package storage provides snapshot store implementations: in-memory
// (tests), JSON file (the default on-disk format), and SQLite.
package storage

import (
	"context"
	"sync"

	"github.com/kittipos/kruacost/internal/domain"
	"github.com/kittipos/kruacost/internal/logger"
)

// Compile-time interface check.
var _ domain.SnapshotStore = (*MemoryStore)(nil)

// MemoryStore keeps the snapshot in memory. Load and Save exchange deep
// copies so callers never share state with the store.
type MemoryStore struct {
	mu   sync.Mutex
	snap *domain.Snapshot
	log  *logger.Logger
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{log: log}
}

// Load returns a copy of the stored snapshot, or an empty snapshot when
// nothing has been saved yet.
func (s *MemoryStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap == nil {
		s.log.Debug("memory store empty, returning fresh snapshot")
		return domain.NewSnapshot(), nil
	}
	return s.snap.Clone(), nil
}

// Save stores a copy of the snapshot.
func (s *MemoryStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap = snap.Clone()
	s.log.Debug("memory store saved: %d ingredients, %d recipes, %d log entries",
		len(snap.Ingredients), len(snap.Recipes), len(snap.ProductionLog))
	return nil
}
