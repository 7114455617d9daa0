// Package engine wires the catalogs, cost calculator, and planner over
// one shared snapshot, and implements production execution. It owns the
// loaded snapshot for the lifetime of the process and saves it through
// the store after every successful mutation, so the persisted dataset
// never lags the in-memory one by more than one operation.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/kittipos/kruacost/internal/catalog"
	"github.com/kittipos/kruacost/internal/costing"
	"github.com/kittipos/kruacost/internal/domain"
	"github.com/kittipos/kruacost/internal/logger"
	"github.com/kittipos/kruacost/internal/planning"
)

// Option configures the engine.
type Option func(*Engine)

// WithClock overrides the timestamp source for production entries.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine is the single entry point for all operations. All methods are
// synchronous and invoked sequentially by the presentation layer; there
// is no concurrent access to the snapshot.
type Engine struct {
	snap        *domain.Snapshot
	store       domain.SnapshotStore
	ingredients *catalog.Ingredients
	recipes     *catalog.Recipes
	log         *logger.Logger
	now         func() time.Time
}

// New loads the snapshot from the store and builds the engine around it.
func New(ctx context.Context, store domain.SnapshotStore, log *logger.Logger, opts ...Option) (*Engine, error) {
	snap, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	e := &Engine{
		snap:        snap,
		store:       store,
		ingredients: catalog.NewIngredients(snap, log),
		recipes:     catalog.NewRecipes(snap, log),
		log:         log,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	log.Info("snapshot loaded: %d ingredients, %d recipes, %d log entries",
		len(snap.Ingredients), len(snap.Recipes), len(snap.ProductionLog))
	return e, nil
}

func (e *Engine) persist(ctx context.Context) error {
	if err := e.store.Save(ctx, e.snap); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// ── Ingredient catalog ───────────────────────────────────────────

// AddIngredient creates an ingredient and persists the snapshot.
func (e *Engine) AddIngredient(ctx context.Context, name, unit string, price, stock float64) (*domain.Ingredient, error) {
	ing, err := e.ingredients.Add(name, unit, price, stock)
	if err != nil {
		return nil, err
	}
	return ing, e.persist(ctx)
}

// EditIngredient applies a partial update and persists the snapshot.
func (e *Engine) EditIngredient(ctx context.Context, id int, upd domain.IngredientUpdate) (*domain.Ingredient, error) {
	ing, err := e.ingredients.Edit(id, upd)
	if err != nil {
		return nil, err
	}
	return ing, e.persist(ctx)
}

// RemoveIngredient deletes an ingredient unconditionally and persists
// the snapshot. Call IngredientUsage first to warn about recipes that
// would be left with dangling lines.
func (e *Engine) RemoveIngredient(ctx context.Context, id int) (*domain.Ingredient, error) {
	ing, err := e.ingredients.Remove(id)
	if err != nil {
		return nil, err
	}
	return ing, e.persist(ctx)
}

// RestockIngredient tops up stock and persists the snapshot.
func (e *Engine) RestockIngredient(ctx context.Context, id int, qty float64) (float64, error) {
	stock, err := e.ingredients.Restock(id, qty)
	if err != nil {
		return 0, err
	}
	return stock, e.persist(ctx)
}

// Ingredient returns one ingredient, or nil when absent.
func (e *Engine) Ingredient(id int) *domain.Ingredient { return e.ingredients.Find(id) }

// Ingredients returns all ingredients in insertion order.
func (e *Engine) Ingredients() []domain.Ingredient { return e.ingredients.List() }

// IngredientUsage returns the names of recipes referencing an ingredient.
func (e *Engine) IngredientUsage(id int) []string { return e.ingredients.UsedIn(id) }

// ── Recipe catalog ───────────────────────────────────────────────

// AddRecipe creates a recipe and persists the snapshot.
func (e *Engine) AddRecipe(ctx context.Context, name string, servings int, lines []domain.RecipeLine) (*domain.Recipe, error) {
	r, err := e.recipes.Add(name, servings, lines)
	if err != nil {
		return nil, err
	}
	return r, e.persist(ctx)
}

// EditRecipe applies a partial update (full line replacement when lines
// are given) and persists the snapshot.
func (e *Engine) EditRecipe(ctx context.Context, id int, upd domain.RecipeUpdate) (*domain.Recipe, error) {
	r, err := e.recipes.Edit(id, upd)
	if err != nil {
		return nil, err
	}
	return r, e.persist(ctx)
}

// RemoveRecipe deletes a recipe and persists the snapshot.
func (e *Engine) RemoveRecipe(ctx context.Context, id int) (*domain.Recipe, error) {
	r, err := e.recipes.Remove(id)
	if err != nil {
		return nil, err
	}
	return r, e.persist(ctx)
}

// Recipe returns one recipe, or nil when absent.
func (e *Engine) Recipe(id int) *domain.Recipe { return e.recipes.Find(id) }

// Recipes returns all recipes in insertion order.
func (e *Engine) Recipes() []domain.Recipe { return e.recipes.List() }

// ── Costing ──────────────────────────────────────────────────────

// RecipeCost returns the total cost of one batch at live prices.
func (e *Engine) RecipeCost(r *domain.Recipe) float64 {
	return costing.RecipeCost(e.snap, r)
}

// CostBreakdown returns per-line costs with dangling lines flagged.
func (e *Engine) CostBreakdown(r *domain.Recipe) []costing.LineCost {
	return costing.Breakdown(e.snap, r)
}

// CostPerServing returns the cost of a single serving.
func (e *Engine) CostPerServing(r *domain.Recipe) (float64, error) {
	return costing.PerServing(e.snap, r)
}

// ── Planning ─────────────────────────────────────────────────────

// Plan reports how many batches of a recipe current stock supports.
func (e *Engine) Plan(r *domain.Recipe) planning.Plan {
	return planning.MaxBatches(e.snap, r)
}

// ── Production ───────────────────────────────────────────────────

// Produce executes a production run: resolve the recipe, validate the
// request, check feasibility, deduct stock, append a log entry. The
// first three steps are side-effect-free; stock is only touched once
// every line has been validated as sufficient, so a failed run leaves
// the snapshot bit-for-bit unchanged.
func (e *Engine) Produce(ctx context.Context, recipeID, batches int) (*domain.ProductionEntry, error) {
	r := e.snap.Recipe(recipeID)
	if r == nil {
		return nil, fmt.Errorf("recipe %d: %w", recipeID, domain.ErrNotFound)
	}
	if batches <= 0 {
		return nil, &domain.ValidationError{Field: "batches", Reason: "must be positive"}
	}

	shortages, err := planning.Feasibility(e.snap, r, batches)
	if err != nil {
		e.log.Warn("production of recipe %d refused: %v", recipeID, err)
		return nil, err
	}
	if len(shortages) > 0 {
		e.log.Warn("production of recipe %d refused: %d ingredient(s) short", recipeID, len(shortages))
		return nil, &domain.InsufficientStockError{Shortages: shortages}
	}

	// Commit point: every line was validated above, deduct all together.
	for _, ln := range r.Lines {
		e.snap.Ingredient(ln.IngredientID).Stock -= ln.Quantity * float64(batches)
	}

	entry := domain.ProductionEntry{
		ID:            domain.NextID(e.snap.LogIDs()),
		RecipeID:      r.ID,
		RecipeName:    r.Name,
		Batches:       batches,
		TotalServings: r.Servings * batches,
		TotalCost:     costing.Round2(costing.RecipeCost(e.snap, r) * float64(batches)),
		Date:          e.now().Format(domain.TimeLayout),
	}
	e.snap.ProductionLog = append(e.snap.ProductionLog, entry)

	e.log.Info("produced %d batch(es) of %q: %d servings, cost %.2f",
		batches, r.Name, entry.TotalServings, entry.TotalCost)
	return &entry, e.persist(ctx)
}

// ProductionLog returns all log entries in insertion order.
func (e *Engine) ProductionLog() []domain.ProductionEntry {
	return append([]domain.ProductionEntry(nil), e.snap.ProductionLog...)
}
