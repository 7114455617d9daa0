package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kittipos/kruacost/internal/logger"
)

func openSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "data.db"), logger.New(logger.LevelOff, nil))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreEmptyLoad(t *testing.T) {
	store := openSQLite(t)

	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Ingredients) != 0 || len(snap.Recipes) != 0 || len(snap.ProductionLog) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := openSQLite(t)
	ctx := context.Background()

	if err := store.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertEqualSnapshots(t, loaded, sampleSnapshot())
}

func TestSQLiteStoreSaveReplaces(t *testing.T) {
	store := openSQLite(t)
	ctx := context.Background()

	if err := store.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A later save fully replaces the previous contents, including
	// removals.
	snap := sampleSnapshot()
	snap.Ingredients = snap.Ingredients[:1]
	snap.Recipes[0].Lines = snap.Recipes[0].Lines[:1]
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Ingredients) != 1 {
		t.Fatalf("ingredients = %d, want 1", len(loaded.Ingredients))
	}
	if len(loaded.Recipes[0].Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(loaded.Recipes[0].Lines))
	}
}

func TestSQLiteStorePersistsAcrossOpens(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.db")
	log := logger.New(logger.LevelOff, nil)
	ctx := context.Background()

	store, err := OpenSQLiteStore(path, log)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenSQLiteStore(path, log)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	loaded, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertEqualSnapshots(t, loaded, sampleSnapshot())
}
