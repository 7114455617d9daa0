package domain

// RecipeLine is a single (ingredient, quantity) pairing within a recipe.
// It holds a non-owning reference into the ingredient catalog: the
// referenced ingredient may be deleted independently, leaving the line
// dangling. Quantity is the amount one batch consumes, always positive.
type RecipeLine struct {
	IngredientID int     `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
}

// Recipe is a named list of ingredient lines producing a fixed number of
// servings per batch. Lines never contain two entries for the same
// ingredient, and Servings is always positive; it divides both cost
// and batch size.
type Recipe struct {
	ID       int          `json:"id"`
	Name     string       `json:"name"`
	Servings int          `json:"servings"`
	Lines    []RecipeLine `json:"ingredients"`
}

// Line returns the line referencing the given ingredient, or nil.
func (r *Recipe) Line(ingredientID int) *RecipeLine {
	for i := range r.Lines {
		if r.Lines[i].IngredientID == ingredientID {
			return &r.Lines[i]
		}
	}
	return nil
}

// RecipeUpdate carries the fields of a recipe edit. Nil fields are left
// untouched. Lines, when non-nil, replaces the whole line set at once;
// edits are never incremental.
type RecipeUpdate struct {
	Name     *string
	Servings *int
	Lines    []RecipeLine
}
