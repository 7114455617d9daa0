package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/kittipos/kruacost/internal/domain"
	"github.com/kittipos/kruacost/internal/logger"
)

// Compile-time interface check.
var _ domain.SnapshotStore = (*SQLiteStore)(nil)

// SQLiteStore persists the snapshot in a SQLite database, one table per
// collection plus a line table. Save rewrites everything inside one
// transaction; with a dataset this size that is simpler and safer than
// per-row diffing, and it keeps the save-after-every-mutation contract
// identical to the file store's.
type SQLiteStore struct {
	db  *sql.DB
	log *logger.Logger
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS ingredients (
	id             INTEGER PRIMARY KEY,
	name           TEXT NOT NULL,
	unit           TEXT NOT NULL,
	price_per_unit REAL NOT NULL,
	stock          REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS recipes (
	id       INTEGER PRIMARY KEY,
	name     TEXT NOT NULL,
	servings INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS recipe_lines (
	recipe_id     INTEGER NOT NULL,
	position      INTEGER NOT NULL,
	ingredient_id INTEGER NOT NULL,
	quantity      REAL NOT NULL,
	PRIMARY KEY (recipe_id, position)
);
CREATE TABLE IF NOT EXISTS production_log (
	id             INTEGER PRIMARY KEY,
	recipe_id      INTEGER NOT NULL,
	recipe_name    TEXT NOT NULL,
	batches        INTEGER NOT NULL,
	total_servings INTEGER NOT NULL,
	total_cost     REAL NOT NULL,
	date           TEXT NOT NULL
);
`

// OpenSQLiteStore opens (creating if needed) the database at path and
// ensures the schema exists.
func OpenSQLiteStore(path string, log *logger.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// The app is single-threaded; one connection avoids write contention.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	log.Debug("sqlite store open at %s", path)
	return &SQLiteStore{db: db, log: log}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Load reads every collection. ID order equals insertion order because
// IDs are allocated monotonically.
func (s *SQLiteStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	snap := domain.NewSnapshot()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, unit, price_per_unit, stock FROM ingredients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("loading ingredients: %w", err)
	}
	for rows.Next() {
		var ing domain.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Unit, &ing.PricePerUnit, &ing.Stock); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning ingredient: %w", err)
		}
		snap.Ingredients = append(snap.Ingredients, ing)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT id, name, servings FROM recipes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("loading recipes: %w", err)
	}
	for rows.Next() {
		var r domain.Recipe
		if err := rows.Scan(&r.ID, &r.Name, &r.Servings); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning recipe: %w", err)
		}
		r.Lines = []domain.RecipeLine{}
		snap.Recipes = append(snap.Recipes, r)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT recipe_id, ingredient_id, quantity FROM recipe_lines ORDER BY recipe_id, position`)
	if err != nil {
		return nil, fmt.Errorf("loading recipe lines: %w", err)
	}
	for rows.Next() {
		var recipeID int
		var ln domain.RecipeLine
		if err := rows.Scan(&recipeID, &ln.IngredientID, &ln.Quantity); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning recipe line: %w", err)
		}
		if r := snap.Recipe(recipeID); r != nil {
			r.Lines = append(r.Lines, ln)
		}
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT id, recipe_id, recipe_name, batches, total_servings, total_cost, date
		 FROM production_log ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("loading production log: %w", err)
	}
	for rows.Next() {
		var e domain.ProductionEntry
		if err := rows.Scan(&e.ID, &e.RecipeID, &e.RecipeName, &e.Batches,
			&e.TotalServings, &e.TotalCost, &e.Date); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning production entry: %w", err)
		}
		snap.ProductionLog = append(snap.ProductionLog, e)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	return snap, nil
}

// Save rewrites every collection in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning save: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM ingredients`,
		`DELETE FROM recipes`,
		`DELETE FROM recipe_lines`,
		`DELETE FROM production_log`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clearing tables: %w", err)
		}
	}

	for _, ing := range snap.Ingredients {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO ingredients (id, name, unit, price_per_unit, stock) VALUES (?, ?, ?, ?, ?)`,
			ing.ID, ing.Name, ing.Unit, ing.PricePerUnit, ing.Stock); err != nil {
			return fmt.Errorf("saving ingredient %d: %w", ing.ID, err)
		}
	}
	for _, r := range snap.Recipes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipes (id, name, servings) VALUES (?, ?, ?)`,
			r.ID, r.Name, r.Servings); err != nil {
			return fmt.Errorf("saving recipe %d: %w", r.ID, err)
		}
		for pos, ln := range r.Lines {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO recipe_lines (recipe_id, position, ingredient_id, quantity) VALUES (?, ?, ?, ?)`,
				r.ID, pos, ln.IngredientID, ln.Quantity); err != nil {
				return fmt.Errorf("saving line %d of recipe %d: %w", pos, r.ID, err)
			}
		}
	}
	for _, e := range snap.ProductionLog {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO production_log (id, recipe_id, recipe_name, batches, total_servings, total_cost, date)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.RecipeID, e.RecipeName, e.Batches, e.TotalServings, e.TotalCost, e.Date); err != nil {
			return fmt.Errorf("saving production entry %d: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save: %w", err)
	}
	s.log.Debug("sqlite store saved: %d ingredients, %d recipes, %d log entries",
		len(snap.Ingredients), len(snap.Recipes), len(snap.ProductionLog))
	return nil
}
