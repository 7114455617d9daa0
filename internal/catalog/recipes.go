package catalog

import (
	"fmt"
	"strings"

	"github.com/kittipos/kruacost/internal/domain"
	"github.com/kittipos/kruacost/internal/logger"
)

// Recipes owns the recipe records of a snapshot. Line references are
// validated against the ingredient catalog at add/edit time; later
// ingredient deletions may still leave lines dangling.
type Recipes struct {
	snap *domain.Snapshot
	log  *logger.Logger
}

// NewRecipes creates a recipe catalog over the given snapshot.
func NewRecipes(snap *domain.Snapshot, log *logger.Logger) *Recipes {
	return &Recipes{snap: snap, log: log}
}

// validateLines checks a full line set: at least one line, positive
// quantities, no duplicate ingredients, every reference resolving.
func (c *Recipes) validateLines(lines []domain.RecipeLine) error {
	if len(lines) == 0 {
		return &domain.ValidationError{Field: "lines", Reason: "recipe needs at least one ingredient"}
	}
	seen := make(map[int]bool, len(lines))
	for _, ln := range lines {
		if ln.Quantity <= 0 {
			return &domain.ValidationError{
				Field:  "quantity",
				Reason: fmt.Sprintf("must be positive (ingredient %d)", ln.IngredientID),
			}
		}
		if seen[ln.IngredientID] {
			return &domain.ValidationError{
				Field:  "lines",
				Reason: fmt.Sprintf("ingredient %d listed twice", ln.IngredientID),
			}
		}
		seen[ln.IngredientID] = true
		if c.snap.Ingredient(ln.IngredientID) == nil {
			return &domain.ValidationError{
				Field:  "lines",
				Reason: fmt.Sprintf("ingredient %d does not exist", ln.IngredientID),
			}
		}
	}
	return nil
}

// Add validates and appends a new recipe, allocating its ID.
func (c *Recipes) Add(name string, servings int, lines []domain.RecipeLine) (*domain.Recipe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if servings <= 0 {
		return nil, &domain.ValidationError{Field: "servings", Reason: "must be positive"}
	}
	if err := c.validateLines(lines); err != nil {
		return nil, err
	}

	r := domain.Recipe{
		ID:       domain.NextID(c.snap.RecipeIDs()),
		Name:     name,
		Servings: servings,
		Lines:    append([]domain.RecipeLine(nil), lines...),
	}
	c.snap.Recipes = append(c.snap.Recipes, r)
	c.log.Info("added recipe %q (id=%d, %d lines)", r.Name, r.ID, len(r.Lines))
	return c.snap.Recipe(r.ID), nil
}

// Edit applies the non-nil fields of the update. A non-nil Lines slice
// replaces the existing line set atomically after full validation; a nil
// one leaves the lines untouched.
func (c *Recipes) Edit(id int, upd domain.RecipeUpdate) (*domain.Recipe, error) {
	r := c.snap.Recipe(id)
	if r == nil {
		return nil, fmt.Errorf("recipe %d: %w", id, domain.ErrNotFound)
	}

	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if upd.Servings != nil && *upd.Servings <= 0 {
		return nil, &domain.ValidationError{Field: "servings", Reason: "must be positive"}
	}
	if upd.Lines != nil {
		if err := c.validateLines(upd.Lines); err != nil {
			return nil, err
		}
	}

	if upd.Name != nil {
		r.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Servings != nil {
		r.Servings = *upd.Servings
	}
	if upd.Lines != nil {
		r.Lines = append([]domain.RecipeLine(nil), upd.Lines...)
	}
	c.log.Info("edited recipe %d", id)
	return r, nil
}

// Remove deletes a recipe and returns the removed record.
func (c *Recipes) Remove(id int) (*domain.Recipe, error) {
	for i := range c.snap.Recipes {
		if c.snap.Recipes[i].ID == id {
			removed := c.snap.Recipes[i]
			c.snap.Recipes = append(c.snap.Recipes[:i], c.snap.Recipes[i+1:]...)
			c.log.Info("removed recipe %q (id=%d)", removed.Name, id)
			return &removed, nil
		}
	}
	return nil, fmt.Errorf("recipe %d: %w", id, domain.ErrNotFound)
}

// Find returns the recipe with the given ID, or nil when absent.
func (c *Recipes) Find(id int) *domain.Recipe {
	return c.snap.Recipe(id)
}

// List returns copies of all recipes in insertion order.
func (c *Recipes) List() []domain.Recipe {
	out := make([]domain.Recipe, len(c.snap.Recipes))
	for i, r := range c.snap.Recipes {
		r.Lines = append([]domain.RecipeLine(nil), r.Lines...)
		out[i] = r
	}
	return out
}
