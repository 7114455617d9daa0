// Package planning answers "how much can we make": maximum feasible
// batch counts and per-request feasibility checks against current stock.
// Pure functions over the snapshot; nothing here mutates state.
package planning

import (
	"math"

	"github.com/kittipos/kruacost/internal/domain"
)

// Plan is the producibility report for one recipe.
type Plan struct {
	Batches  int
	Limiting string // name of the limiting ingredient, empty when none
	// Blocked means a line references a deleted ingredient; MissingID is
	// that reference. A blocked recipe cannot be produced at all.
	Blocked   bool
	MissingID int
}

// MaxBatches computes the largest whole batch count current stock
// supports. The first dangling reference blocks the recipe outright.
// Among resolvable lines the ingredient with the smallest stock-to-
// requirement ratio limits the count; ties go to the first encountered.
func MaxBatches(snap *domain.Snapshot, r *domain.Recipe) Plan {
	max := math.Inf(1)
	limiting := ""

	for _, ln := range r.Lines {
		ing := snap.Ingredient(ln.IngredientID)
		if ing == nil {
			return Plan{Blocked: true, MissingID: ln.IngredientID}
		}
		if ln.Quantity <= 0 {
			continue
		}
		possible := ing.Stock / ln.Quantity
		if possible < max {
			max = possible
			limiting = ing.Name
		}
	}

	if math.IsInf(max, 1) {
		// No line consumes stock, so there is no meaningful ceiling.
		return Plan{}
	}
	return Plan{Batches: int(max), Limiting: limiting}
}

// Feasibility checks whether the given batch count can be produced. It
// returns the complete shortage list (empty means feasible) or a
// ReferentialError when any line is dangling. Read-only in all cases.
func Feasibility(snap *domain.Snapshot, r *domain.Recipe, batches int) ([]domain.Shortage, error) {
	var shortages []domain.Shortage
	for _, ln := range r.Lines {
		ing := snap.Ingredient(ln.IngredientID)
		if ing == nil {
			return nil, &domain.ReferentialError{RecipeID: r.ID, IngredientID: ln.IngredientID}
		}
		needed := ln.Quantity * float64(batches)
		if needed > ing.Stock {
			shortages = append(shortages, domain.Shortage{
				Ingredient: *ing,
				Needed:     needed,
				Available:  ing.Stock,
			})
		}
	}
	return shortages, nil
}
