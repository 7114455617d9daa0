package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a referenced ID does not exist in the
// relevant catalog.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed or out-of-range input. The offending
// operation is not performed; the caller may retry with corrected input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ReferentialError reports a recipe line whose ingredient has since been
// deleted. It blocks production outright and flags cost computation.
type ReferentialError struct {
	RecipeID     int
	IngredientID int
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("recipe %d references deleted ingredient %d", e.RecipeID, e.IngredientID)
}

// Shortage is the deficit for one ingredient found during a feasibility
// check.
type Shortage struct {
	Ingredient Ingredient
	Needed     float64
	Available  float64
}

// Amount returns how much stock is missing, always positive.
func (s Shortage) Amount() float64 { return s.Needed - s.Available }

// InsufficientStockError means a requested production exceeds available
// stock. It carries the complete shortage list so the caller can report
// every deficit at once, not just the first.
type InsufficientStockError struct {
	Shortages []Shortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, len(e.Shortages))
	for i, s := range e.Shortages {
		parts[i] = fmt.Sprintf("%s short %.2f %s", s.Ingredient.Name, s.Amount(), s.Ingredient.Unit)
	}
	return "insufficient stock: " + strings.Join(parts, ", ")
}
