// Package catalog implements the ingredient and recipe catalogs: the
// only mutation surface over the shared snapshot. Every operation takes
// the snapshot it was constructed with as explicit state; there is no
// ambient global dataset.
package catalog

import (
	"fmt"
	"strings"

	"github.com/kittipos/kruacost/internal/domain"
	"github.com/kittipos/kruacost/internal/logger"
)

// Ingredients owns the ingredient records of a snapshot.
type Ingredients struct {
	snap *domain.Snapshot
	log  *logger.Logger
}

// NewIngredients creates an ingredient catalog over the given snapshot.
func NewIngredients(snap *domain.Snapshot, log *logger.Logger) *Ingredients {
	return &Ingredients{snap: snap, log: log}
}

// Add validates and appends a new ingredient, allocating its ID.
func (c *Ingredients) Add(name, unit string, price, stock float64) (*domain.Ingredient, error) {
	name = strings.TrimSpace(name)
	unit = strings.TrimSpace(unit)
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if unit == "" {
		return nil, &domain.ValidationError{Field: "unit", Reason: "must not be empty"}
	}
	if price < 0 {
		return nil, &domain.ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if stock < 0 {
		return nil, &domain.ValidationError{Field: "stock", Reason: "must not be negative"}
	}

	ing := domain.Ingredient{
		ID:           domain.NextID(c.snap.IngredientIDs()),
		Name:         name,
		Unit:         unit,
		PricePerUnit: price,
		Stock:        stock,
	}
	c.snap.Ingredients = append(c.snap.Ingredients, ing)
	c.log.Info("added ingredient %q (id=%d)", ing.Name, ing.ID)
	return c.snap.Ingredient(ing.ID), nil
}

// Edit applies the non-nil fields of the update to an existing
// ingredient. Provided fields are validated like Add's.
func (c *Ingredients) Edit(id int, upd domain.IngredientUpdate) (*domain.Ingredient, error) {
	ing := c.snap.Ingredient(id)
	if ing == nil {
		return nil, fmt.Errorf("ingredient %d: %w", id, domain.ErrNotFound)
	}

	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if upd.Unit != nil && strings.TrimSpace(*upd.Unit) == "" {
		return nil, &domain.ValidationError{Field: "unit", Reason: "must not be empty"}
	}
	if upd.PricePerUnit != nil && *upd.PricePerUnit < 0 {
		return nil, &domain.ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if upd.Stock != nil && *upd.Stock < 0 {
		return nil, &domain.ValidationError{Field: "stock", Reason: "must not be negative"}
	}

	if upd.Name != nil {
		ing.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Unit != nil {
		ing.Unit = strings.TrimSpace(*upd.Unit)
	}
	if upd.PricePerUnit != nil {
		ing.PricePerUnit = *upd.PricePerUnit
	}
	if upd.Stock != nil {
		ing.Stock = *upd.Stock
	}
	c.log.Info("edited ingredient %d", id)
	return ing, nil
}

// Remove deletes an ingredient unconditionally and returns the removed
// record. Checking for referencing recipes is the caller's job; use
// UsedIn to warn and confirm before invoking Remove.
func (c *Ingredients) Remove(id int) (*domain.Ingredient, error) {
	for i := range c.snap.Ingredients {
		if c.snap.Ingredients[i].ID == id {
			removed := c.snap.Ingredients[i]
			c.snap.Ingredients = append(c.snap.Ingredients[:i], c.snap.Ingredients[i+1:]...)
			c.log.Info("removed ingredient %q (id=%d)", removed.Name, id)
			return &removed, nil
		}
	}
	return nil, fmt.Errorf("ingredient %d: %w", id, domain.ErrNotFound)
}

// Restock adds a strictly positive quantity to an ingredient's stock and
// returns the new stock level.
func (c *Ingredients) Restock(id int, qty float64) (float64, error) {
	if qty <= 0 {
		return 0, &domain.ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	ing := c.snap.Ingredient(id)
	if ing == nil {
		return 0, fmt.Errorf("ingredient %d: %w", id, domain.ErrNotFound)
	}
	ing.Stock += qty
	c.log.Info("restocked ingredient %d by %.2f (now %.2f)", id, qty, ing.Stock)
	return ing.Stock, nil
}

// Find returns the ingredient with the given ID, or nil when absent.
func (c *Ingredients) Find(id int) *domain.Ingredient {
	return c.snap.Ingredient(id)
}

// List returns copies of all ingredients in insertion order.
func (c *Ingredients) List() []domain.Ingredient {
	return append([]domain.Ingredient(nil), c.snap.Ingredients...)
}

// UsedIn returns the names of recipes referencing the given ingredient.
// The presentation layer shows these before a deletion is confirmed.
func (c *Ingredients) UsedIn(id int) []string {
	var names []string
	for i := range c.snap.Recipes {
		if c.snap.Recipes[i].Line(id) != nil {
			names = append(names, c.snap.Recipes[i].Name)
		}
	}
	return names
}
