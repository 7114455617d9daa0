// Package costing computes recipe costs from live ingredient prices.
// Everything here is a pure function over the snapshot: prices are
// resolved at call time, never cached, so a price edit is reflected in
// the very next cost query.
package costing

import (
	"math"

	"github.com/kittipos/kruacost/internal/domain"
)

// LineCost is one row of a recipe cost breakdown.
type LineCost struct {
	Line       domain.RecipeLine
	Ingredient *domain.Ingredient // nil when the reference is dangling
	Cost       float64            // zero for dangling lines
	Dangling   bool
}

// Breakdown resolves every line of the recipe against the snapshot. A
// line whose ingredient no longer exists is flagged dangling and costs
// zero; a cost is never computed against a stale or default price.
func Breakdown(snap *domain.Snapshot, r *domain.Recipe) []LineCost {
	out := make([]LineCost, 0, len(r.Lines))
	for _, ln := range r.Lines {
		ing := snap.Ingredient(ln.IngredientID)
		if ing == nil {
			out = append(out, LineCost{Line: ln, Dangling: true})
			continue
		}
		out = append(out, LineCost{
			Line:       ln,
			Ingredient: ing,
			Cost:       ln.Quantity * ing.PricePerUnit,
		})
	}
	return out
}

// RecipeCost sums quantity times price-per-unit over the recipe's
// resolvable lines. Dangling lines contribute zero.
func RecipeCost(snap *domain.Snapshot, r *domain.Recipe) float64 {
	total := 0.0
	for _, lc := range Breakdown(snap, r) {
		total += lc.Cost
	}
	return total
}

// PerServing divides the recipe cost by its servings. Servings must be
// positive; the catalog enforces this on every write path.
func PerServing(snap *domain.Snapshot, r *domain.Recipe) (float64, error) {
	if r.Servings <= 0 {
		return 0, &domain.ValidationError{Field: "servings", Reason: "must be positive"}
	}
	return RecipeCost(snap, r) / float64(r.Servings), nil
}

// Margins are the profit percentages shown on the suggested-price screen.
var Margins = []int{30, 50, 70, 100}

// PricePoint is a suggested selling price at one profit margin.
type PricePoint struct {
	MarginPct int
	Price     float64
}

// SuggestedPrices derives selling prices per serving for each margin.
// Pure display derivation, no state.
func SuggestedPrices(perServing float64) []PricePoint {
	out := make([]PricePoint, len(Margins))
	for i, m := range Margins {
		out[i] = PricePoint{MarginPct: m, Price: perServing * (1 + float64(m)/100)}
	}
	return out
}

// Round2 rounds a monetary value to 2 decimals, the precision stored in
// production log entries.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
