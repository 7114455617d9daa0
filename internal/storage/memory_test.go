package storage

import (
	"context"
	"testing"

	"github.com/kittipos/kruacost/internal/domain"
	"github.com/kittipos/kruacost/internal/logger"
)

func sampleSnapshot() *domain.Snapshot {
	snap := domain.NewSnapshot()
	snap.Ingredients = []domain.Ingredient{
		{ID: 1, Name: "Flour", Unit: "kg", PricePerUnit: 25, Stock: 10},
		{ID: 3, Name: "Sugar", Unit: "kg", PricePerUnit: 30, Stock: 4.5},
	}
	snap.Recipes = []domain.Recipe{
		{ID: 1, Name: "Bread", Servings: 4, Lines: []domain.RecipeLine{
			{IngredientID: 1, Quantity: 0.5},
			{IngredientID: 3, Quantity: 0.05},
		}},
	}
	snap.ProductionLog = []domain.ProductionEntry{
		{ID: 1, RecipeID: 1, RecipeName: "Bread", Batches: 2, TotalServings: 8,
			TotalCost: 28.0, Date: "2024-03-15 09:30:00"},
	}
	return snap
}

func assertEqualSnapshots(t *testing.T, got, want *domain.Snapshot) {
	t.Helper()
	if len(got.Ingredients) != len(want.Ingredients) {
		t.Fatalf("ingredients: got %d, want %d", len(got.Ingredients), len(want.Ingredients))
	}
	for i := range want.Ingredients {
		if got.Ingredients[i] != want.Ingredients[i] {
			t.Fatalf("ingredient %d: got %+v, want %+v", i, got.Ingredients[i], want.Ingredients[i])
		}
	}
	if len(got.Recipes) != len(want.Recipes) {
		t.Fatalf("recipes: got %d, want %d", len(got.Recipes), len(want.Recipes))
	}
	for i := range want.Recipes {
		g, w := got.Recipes[i], want.Recipes[i]
		if g.ID != w.ID || g.Name != w.Name || g.Servings != w.Servings || len(g.Lines) != len(w.Lines) {
			t.Fatalf("recipe %d: got %+v, want %+v", i, g, w)
		}
		for j := range w.Lines {
			if g.Lines[j] != w.Lines[j] {
				t.Fatalf("recipe %d line %d: got %+v, want %+v", i, j, g.Lines[j], w.Lines[j])
			}
		}
	}
	if len(got.ProductionLog) != len(want.ProductionLog) {
		t.Fatalf("log: got %d, want %d", len(got.ProductionLog), len(want.ProductionLog))
	}
	for i := range want.ProductionLog {
		if got.ProductionLog[i] != want.ProductionLog[i] {
			t.Fatalf("log entry %d: got %+v, want %+v", i, got.ProductionLog[i], want.ProductionLog[i])
		}
	}
}

func TestMemoryStoreEmptyLoad(t *testing.T) {
	store := NewMemoryStore(logger.New(logger.LevelOff, nil))

	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Ingredients) != 0 || len(snap.Recipes) != 0 || len(snap.ProductionLog) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(logger.New(logger.LevelOff, nil))
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

func TestMemoryStoreIsolation(t *testing.T) {
	store := NewMemoryStore(logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	original := sampleSnapshot()
	if err := store.Save(ctx, original); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutating the snapshot we saved, or one we loaded, must not leak
	// into the store.
	original.Ingredients[0].Stock = 999
	loaded, _ := store.Load(ctx)
	loaded.Recipes[0].Lines[0].Quantity = 999

	fresh, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertEqualSnapshots(t, fresh, sampleSnapshot())
}
