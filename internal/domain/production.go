package domain

// TimeLayout is the fixed timestamp format used in production entries
// and in the persisted snapshot.
const TimeLayout = "2006-01-02 15:04:05"

// ProductionEntry records one executed production run. Entries are
// write-once: the log is an append-only sequence ordered by insertion.
// RecipeName is snapshotted at execution time so the entry survives
// deletion of the recipe it came from.
type ProductionEntry struct {
	ID            int     `json:"id"`
	RecipeID      int     `json:"recipe_id"`
	RecipeName    string  `json:"recipe_name"`
	Batches       int     `json:"batches"`
	TotalServings int     `json:"total_servings"`
	TotalCost     float64 `json:"total_cost"` // rounded to 2 decimals
	Date          string  `json:"date"`       // TimeLayout
}
