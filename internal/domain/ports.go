package domain

import "context"

// SnapshotStore persists the complete dataset. Implementations can be
// in-memory, a JSON file, or SQLite. Load on an empty backend returns an
// empty snapshot, not an error; the caller saves after every mutation.
type SnapshotStore interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}
