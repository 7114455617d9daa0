// Package domain defines the core types and interfaces for the costing
// and production engine. All other packages depend on domain; domain
// depends on nothing.
package domain

// Ingredient is a raw material held in stock.
//
// IDs are unique within the catalog and never change after creation.
// PricePerUnit and Stock are never negative; production must not drive
// Stock below zero.
type Ingredient struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"` // "kg", "g", "l", "ml", "pieces", ...
	PricePerUnit float64 `json:"price_per_unit"`
	Stock        float64 `json:"stock"`
}

// IngredientUpdate carries the fields of an ingredient edit. Nil fields
// are left untouched.
type IngredientUpdate struct {
	Name         *string
	Unit         *string
	PricePerUnit *float64
	Stock        *float64
}
