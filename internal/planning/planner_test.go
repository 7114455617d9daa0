package planning

import (
	"errors"
	"testing"

	"github.com/kittipos/kruacost/internal/domain"
)

func snapWith(ings []domain.Ingredient) *domain.Snapshot {
	snap := domain.NewSnapshot()
	snap.Ingredients = ings
	return snap
}

func TestMaxBatches(t *testing.T) {
	tests := []struct {
		name         string
		ingredients  []domain.Ingredient
		lines        []domain.RecipeLine
		wantBatches  int
		wantLimiting string
		wantBlocked  bool
	}{
		{
			name:         "fractional ratio floors",
			ingredients:  []domain.Ingredient{{ID: 1, Name: "A", Stock: 23}},
			lines:        []domain.RecipeLine{{IngredientID: 1, Quantity: 5}},
			wantBatches:  4, // 23/5 = 4.6
			wantLimiting: "A",
		},
		{
			name: "minimum ratio wins",
			ingredients: []domain.Ingredient{
				{ID: 1, Name: "Flour", Stock: 100},
				{ID: 2, Name: "Yeast", Stock: 3},
			},
			lines: []domain.RecipeLine{
				{IngredientID: 1, Quantity: 2},  // 50 possible
				{IngredientID: 2, Quantity: 1},  // 3 possible
			},
			wantBatches:  3,
			wantLimiting: "Yeast",
		},
		{
			name: "tie broken by encounter order",
			ingredients: []domain.Ingredient{
				{ID: 1, Name: "First", Stock: 10},
				{ID: 2, Name: "Second", Stock: 10},
			},
			lines: []domain.RecipeLine{
				{IngredientID: 1, Quantity: 2},
				{IngredientID: 2, Quantity: 2},
			},
			wantBatches:  5,
			wantLimiting: "First",
		},
		{
			name:         "zero stock",
			ingredients:  []domain.Ingredient{{ID: 1, Name: "A", Stock: 0}},
			lines:        []domain.RecipeLine{{IngredientID: 1, Quantity: 5}},
			wantBatches:  0,
			wantLimiting: "A",
		},
		{
			name:        "dangling reference blocks",
			ingredients: []domain.Ingredient{{ID: 1, Name: "A", Stock: 100}},
			lines: []domain.RecipeLine{
				{IngredientID: 1, Quantity: 1},
				{IngredientID: 9, Quantity: 1},
			},
			wantBatches: 0,
			wantBlocked: true,
		},
		{
			name:        "no lines means no ceiling",
			ingredients: nil,
			lines:       nil,
			wantBatches: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := snapWith(tt.ingredients)
			r := &domain.Recipe{ID: 1, Name: "R", Servings: 4, Lines: tt.lines}

			plan := MaxBatches(snap, r)
			if plan.Batches != tt.wantBatches {
				t.Fatalf("Batches = %d, want %d", plan.Batches, tt.wantBatches)
			}
			if plan.Blocked != tt.wantBlocked {
				t.Fatalf("Blocked = %v, want %v", plan.Blocked, tt.wantBlocked)
			}
			if !tt.wantBlocked && plan.Limiting != tt.wantLimiting {
				t.Fatalf("Limiting = %q, want %q", plan.Limiting, tt.wantLimiting)
			}
		})
	}
}

func TestMaxBatchesBlockedReportsMissingID(t *testing.T) {
	snap := snapWith(nil)
	r := &domain.Recipe{ID: 1, Lines: []domain.RecipeLine{{IngredientID: 42, Quantity: 1}}}

	plan := MaxBatches(snap, r)
	if !plan.Blocked || plan.MissingID != 42 {
		t.Fatalf("expected blocked on ingredient 42, got %+v", plan)
	}
}

func TestFeasibility(t *testing.T) {
	snap := snapWith([]domain.Ingredient{
		{ID: 1, Name: "A", Unit: "kg", Stock: 23},
		{ID: 2, Name: "B", Unit: "l", Stock: 50},
	})
	r := &domain.Recipe{ID: 1, Name: "R", Servings: 4, Lines: []domain.RecipeLine{
		{IngredientID: 1, Quantity: 5},
		{IngredientID: 2, Quantity: 2},
	}}

	t.Run("feasible request has no shortages", func(t *testing.T) {
		shortages, err := Feasibility(snap, r, 4)
		if err != nil {
			t.Fatalf("feasibility: %v", err)
		}
		if len(shortages) != 0 {
			t.Fatalf("expected no shortages, got %v", shortages)
		}
	})

	t.Run("shortage carries exact deficit", func(t *testing.T) {
		shortages, err := Feasibility(snap, r, 5)
		if err != nil {
			t.Fatalf("feasibility: %v", err)
		}
		if len(shortages) != 1 {
			t.Fatalf("expected 1 shortage, got %d", len(shortages))
		}
		s := shortages[0]
		if s.Ingredient.Name != "A" || s.Needed != 25 || s.Available != 23 {
			t.Fatalf("unexpected shortage: %+v", s)
		}
		if s.Amount() != 2 {
			t.Fatalf("Amount = %v, want 2", s.Amount())
		}
	})

	t.Run("all shortages reported at once", func(t *testing.T) {
		shortages, err := Feasibility(snap, r, 100)
		if err != nil {
			t.Fatalf("feasibility: %v", err)
		}
		if len(shortages) != 2 {
			t.Fatalf("expected 2 shortages, got %d", len(shortages))
		}
	})

	t.Run("dangling reference refuses outright", func(t *testing.T) {
		broken := &domain.Recipe{ID: 2, Lines: []domain.RecipeLine{{IngredientID: 9, Quantity: 1}}}
		_, err := Feasibility(snap, broken, 1)
		var re *domain.ReferentialError
		if !errors.As(err, &re) {
			t.Fatalf("expected ReferentialError, got %v", err)
		}
		if re.IngredientID != 9 || re.RecipeID != 2 {
			t.Fatalf("unexpected error detail: %+v", re)
		}
	})
}

// Feasibility monotonicity: the planner's max is exactly the largest
// count Feasibility accepts.
func TestPlannerFeasibilityAgree(t *testing.T) {
	snap := snapWith([]domain.Ingredient{
		{ID: 1, Name: "A", Stock: 23},
		{ID: 2, Name: "B", Stock: 7.5},
	})
	r := &domain.Recipe{ID: 1, Lines: []domain.RecipeLine{
		{IngredientID: 1, Quantity: 5},
		{IngredientID: 2, Quantity: 1.5},
	}}

	plan := MaxBatches(snap, r)
	if plan.Batches == 0 {
		t.Fatalf("fixture should allow production, got %+v", plan)
	}

	shortages, err := Feasibility(snap, r, plan.Batches)
	if err != nil || len(shortages) != 0 {
		t.Fatalf("producing the planner's max must be feasible, got %v %v", shortages, err)
	}
	shortages, err = Feasibility(snap, r, plan.Batches+1)
	if err != nil {
		t.Fatalf("feasibility: %v", err)
	}
	if len(shortages) == 0 {
		t.Fatal("producing max+1 must be short")
	}
}
