package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kittipos/kruacost/internal/domain"
	"github.com/kittipos/kruacost/internal/logger"
)

// Compile-time interface check.
var _ domain.SnapshotStore = (*FileStore)(nil)

// FileStore persists the snapshot as a single indented JSON file. A
// missing file loads as an empty snapshot; writes go through a temp file
// and rename so a crash mid-save never truncates the dataset.
type FileStore struct {
	path string
	log  *logger.Logger
}

// NewFileStore creates a store writing to the given path.
func NewFileStore(path string, log *logger.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// Load reads the snapshot from disk.
func (s *FileStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.log.Debug("data file %s not found, starting empty", s.path)
		return domain.NewSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	snap := domain.NewSnapshot()
	if err := json.Unmarshal(raw, snap); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return snap, nil
}

// Save writes the snapshot to disk atomically.
func (s *FileStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}

	s.log.Debug("saved snapshot to %s (%d bytes)", s.path, len(raw))
	return nil
}
