package domain

// Snapshot is the complete in-memory dataset: the three collections the
// persistence layer loads and saves as a unit. All collections keep
// insertion order; since IDs are allocated monotonically, insertion
// order is also ascending ID order.
type Snapshot struct {
	Ingredients   []Ingredient      `json:"ingredients"`
	Recipes       []Recipe          `json:"recipes"`
	ProductionLog []ProductionEntry `json:"production_log"`
}

// NewSnapshot returns an empty dataset with non-nil collections.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Ingredients:   []Ingredient{},
		Recipes:       []Recipe{},
		ProductionLog: []ProductionEntry{},
	}
}

// Ingredient returns a pointer to the ingredient with the given ID, or
// nil when the ID does not resolve.
func (s *Snapshot) Ingredient(id int) *Ingredient {
	for i := range s.Ingredients {
		if s.Ingredients[i].ID == id {
			return &s.Ingredients[i]
		}
	}
	return nil
}

// Recipe returns a pointer to the recipe with the given ID, or nil.
func (s *Snapshot) Recipe(id int) *Recipe {
	for i := range s.Recipes {
		if s.Recipes[i].ID == id {
			return &s.Recipes[i]
		}
	}
	return nil
}

// IngredientIDs returns the IDs of all ingredients, in insertion order.
func (s *Snapshot) IngredientIDs() []int {
	ids := make([]int, len(s.Ingredients))
	for i, ing := range s.Ingredients {
		ids[i] = ing.ID
	}
	return ids
}

// RecipeIDs returns the IDs of all recipes, in insertion order.
func (s *Snapshot) RecipeIDs() []int {
	ids := make([]int, len(s.Recipes))
	for i, r := range s.Recipes {
		ids[i] = r.ID
	}
	return ids
}

// LogIDs returns the IDs of all production entries, in insertion order.
func (s *Snapshot) LogIDs() []int {
	ids := make([]int, len(s.ProductionLog))
	for i, e := range s.ProductionLog {
		ids[i] = e.ID
	}
	return ids
}

// Clone returns a deep copy of the snapshot. Stores hand out clones so
// callers can never reach into persisted state by accident.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Ingredients:   make([]Ingredient, len(s.Ingredients)),
		Recipes:       make([]Recipe, len(s.Recipes)),
		ProductionLog: make([]ProductionEntry, len(s.ProductionLog)),
	}
	copy(out.Ingredients, s.Ingredients)
	copy(out.ProductionLog, s.ProductionLog)
	for i, r := range s.Recipes {
		r.Lines = append([]RecipeLine(nil), r.Lines...)
		out.Recipes[i] = r
	}
	return out
}
