package costing

import (
	"math"
	"testing"

	"github.com/kittipos/kruacost/internal/domain"
)

const tolerance = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < tolerance }

// snapshot with ingredient A (id 1, price 10) and recipe R (servings 4,
// one line: 5 units of A), the worked example of the cost model.
func fixture() (*domain.Snapshot, *domain.Recipe) {
	snap := domain.NewSnapshot()
	snap.Ingredients = []domain.Ingredient{
		{ID: 1, Name: "A", Unit: "kg", PricePerUnit: 10, Stock: 100},
	}
	snap.Recipes = []domain.Recipe{
		{ID: 1, Name: "R", Servings: 4, Lines: []domain.RecipeLine{{IngredientID: 1, Quantity: 5}}},
	}
	return snap, &snap.Recipes[0]
}

func TestRecipeCost(t *testing.T) {
	snap, r := fixture()

	if got := RecipeCost(snap, r); !approx(got, 50) {
		t.Fatalf("RecipeCost = %v, want 50", got)
	}

	perServing, err := PerServing(snap, r)
	if err != nil {
		t.Fatalf("PerServing: %v", err)
	}
	if !approx(perServing, 12.5) {
		t.Fatalf("PerServing = %v, want 12.5", perServing)
	}
	// Multiplying back recovers the batch cost within tolerance.
	if !approx(perServing*float64(r.Servings), RecipeCost(snap, r)) {
		t.Fatal("per-serving times servings does not recover batch cost")
	}
}

func TestRecipeCostIsLive(t *testing.T) {
	snap, r := fixture()

	snap.Ingredient(1).PricePerUnit = 20
	if got := RecipeCost(snap, r); !approx(got, 100) {
		t.Fatalf("cost after price change = %v, want 100 (price must be resolved live)", got)
	}
}

func TestRecipeCostAdditivity(t *testing.T) {
	snap := domain.NewSnapshot()
	snap.Ingredients = []domain.Ingredient{
		{ID: 1, Name: "Flour", Unit: "kg", PricePerUnit: 25, Stock: 10},
		{ID: 2, Name: "Sugar", Unit: "kg", PricePerUnit: 30, Stock: 5},
		{ID: 3, Name: "Butter", Unit: "kg", PricePerUnit: 200, Stock: 2},
	}
	r := &domain.Recipe{ID: 1, Name: "Cake", Servings: 8, Lines: []domain.RecipeLine{
		{IngredientID: 1, Quantity: 0.5},
		{IngredientID: 2, Quantity: 0.25},
		{IngredientID: 3, Quantity: 0.2},
	}}

	sum := 0.0
	for _, lc := range Breakdown(snap, r) {
		sum += lc.Cost
	}
	if !approx(sum, RecipeCost(snap, r)) {
		t.Fatal("RecipeCost is not the sum of its breakdown")
	}
	if !approx(RecipeCost(snap, r), 0.5*25+0.25*30+0.2*200) {
		t.Fatalf("RecipeCost = %v", RecipeCost(snap, r))
	}
}

func TestDanglingLineContributesZero(t *testing.T) {
	snap, r := fixture()
	r.Lines = append(r.Lines, domain.RecipeLine{IngredientID: 7, Quantity: 3})

	if got := RecipeCost(snap, r); !approx(got, 50) {
		t.Fatalf("cost with dangling line = %v, want 50", got)
	}

	bd := Breakdown(snap, r)
	if len(bd) != 2 {
		t.Fatalf("expected 2 breakdown rows, got %d", len(bd))
	}
	if bd[0].Dangling || !bd[1].Dangling {
		t.Fatalf("wrong dangling flags: %+v", bd)
	}
	if bd[1].Cost != 0 || bd[1].Ingredient != nil {
		t.Fatalf("dangling row must cost zero with nil ingredient: %+v", bd[1])
	}
}

func TestPerServingGuard(t *testing.T) {
	snap, r := fixture()
	r.Servings = 0

	if _, err := PerServing(snap, r); err == nil {
		t.Fatal("expected error for zero servings")
	}
}

func TestSuggestedPrices(t *testing.T) {
	pps := SuggestedPrices(10)

	want := map[int]float64{30: 13, 50: 15, 70: 17, 100: 20}
	if len(pps) != len(want) {
		t.Fatalf("expected %d price points, got %d", len(want), len(pps))
	}
	for _, pp := range pps {
		if !approx(pp.Price, want[pp.MarginPct]) {
			t.Fatalf("margin %d%%: price %v, want %v", pp.MarginPct, pp.Price, want[pp.MarginPct])
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.0}, // 1.005 stored as 1.00499... rounds down
		{199.999, 200},
		{0.125, 0.13},
		{50, 50},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); !approx(got, tt.want) {
			t.Fatalf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
