package main

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/kittipos/kruacost/internal/display"
	"github.com/kittipos/kruacost/internal/domain"
	"github.com/kittipos/kruacost/internal/engine"
	"github.com/kittipos/kruacost/internal/logger"
	"github.com/kittipos/kruacost/internal/prompt"
)

// app drives the menu-based REPL over the engine. All engine calls run
// on the single app goroutine; the status bar reads the atomic counters
// below, so the UI tick never touches engine state.
type app struct {
	eng *engine.Engine
	ui  *display.UI
	in  *prompt.Reader
	log *logger.Logger

	nIngredients atomic.Int64
	nRecipes     atomic.Int64
	nRuns        atomic.Int64
}

func newApp(eng *engine.Engine, log *logger.Logger) *app {
	return &app{eng: eng, log: log}
}

// statusLine renders the bottom status bar. Safe to call from the UI
// goroutine.
func (a *app) statusLine() string {
	return fmt.Sprintf("%d ingredients │ %d recipes │ %d production runs",
		a.nIngredients.Load(), a.nRecipes.Load(), a.nRuns.Load())
}

func (a *app) refreshStatus() {
	a.nIngredients.Store(int64(len(a.eng.Ingredients())))
	a.nRecipes.Store(int64(len(a.eng.Recipes())))
	a.nRuns.Store(int64(len(a.eng.ProductionLog())))
}

// reportError renders a domain error in the terms the user acted in.
func (a *app) reportError(err error) {
	var ve *domain.ValidationError
	var re *domain.ReferentialError
	var se *domain.InsufficientStockError

	switch {
	case errors.As(err, &ve):
		a.ui.PrintError(ve.Error())
	case errors.As(err, &re):
		a.ui.PrintError(fmt.Sprintf("ingredient %d was deleted, fix the recipe first", re.IngredientID))
	case errors.As(err, &se):
		a.ui.PrintError("not enough stock:")
		for _, s := range se.Shortages {
			a.ui.PrintLine(fmt.Sprintf("  %s: short %.2f %s (need %.2f, have %.2f)",
				s.Ingredient.Name, s.Amount(), s.Ingredient.Unit, s.Needed, s.Available))
		}
		a.ui.PrintHint("restock before producing")
	case errors.Is(err, domain.ErrNotFound):
		a.ui.PrintError("no record with that ID")
	default:
		a.ui.PrintError(err.Error())
		a.log.Error("operation failed: %v", err)
	}
}

// menu prints a titled option list and returns the user's choice.
func (a *app) menu(ctx context.Context, title string, options []string) (string, error) {
	a.ui.Println("")
	a.ui.PrintTitle(title)
	for _, opt := range options {
		a.ui.PrintLine(opt)
	}
	return a.in.Text(ctx, "")
}

func (a *app) run(ctx context.Context) {
	for {
		choice, err := a.menu(ctx, "Main Menu", []string{
			"1. Ingredients",
			"2. Recipes",
			"3. Costing",
			"4. Production",
			"0. Quit",
		})
		if err != nil {
			return
		}

		switch choice {
		case "1":
			err = a.ingredientMenu(ctx)
		case "2":
			err = a.recipeMenu(ctx)
		case "3":
			err = a.costMenu(ctx)
		case "4":
			err = a.productionMenu(ctx)
		case "0":
			a.ui.PrintLine("Bye!")
			return
		default:
			a.ui.PrintError("unknown menu choice")
		}
		if err != nil {
			return
		}
	}
}

// ── Ingredient screens ───────────────────────────────────────────

func (a *app) ingredientMenu(ctx context.Context) error {
	for {
		choice, err := a.menu(ctx, "Ingredients", []string{
			"1. List ingredients",
			"2. Add ingredient",
			"3. Edit ingredient",
			"4. Delete ingredient",
			"5. Restock",
			"0. Back",
		})
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			a.listIngredients()
		case "2":
			err = a.addIngredient(ctx)
		case "3":
			err = a.editIngredient(ctx)
		case "4":
			err = a.removeIngredient(ctx)
		case "5":
			err = a.restockIngredient(ctx)
		case "0":
			return nil
		default:
			a.ui.PrintError("unknown menu choice")
		}
		if err != nil {
			return err
		}
	}
}

func (a *app) listIngredients() {
	ingredients := a.eng.Ingredients()
	a.ui.Println("")
	a.ui.PrintTitle("Ingredient List")
	if len(ingredients) == 0 {
		a.ui.PrintHint("(no ingredients yet)")
		return
	}

	rows := make([][]string, len(ingredients))
	for i, ing := range ingredients {
		rows[i] = []string{
			fmt.Sprintf("%d", ing.ID),
			ing.Name,
			ing.Unit,
			fmt.Sprintf("%.2f", ing.PricePerUnit),
			fmt.Sprintf("%.2f", ing.Stock),
		}
	}
	a.ui.PrintTable([]display.Col{
		{Title: "ID", Width: 4},
		{Title: "Name", Width: 20},
		{Title: "Unit", Width: 8},
		{Title: "Price/unit", Width: 10, Right: true},
		{Title: "Stock", Width: 10, Right: true},
	}, rows)
}

func (a *app) addIngredient(ctx context.Context) error {
	a.ui.Println("")
	a.ui.PrintTitle("Add Ingredient")

	name, err := a.in.Text(ctx, "Name: ")
	if err != nil {
		return err
	}
	unit, err := a.in.Text(ctx, "Unit (kg, g, l, ml, pieces, ...): ")
	if err != nil {
		return err
	}
	price, err := a.in.Float(ctx, "Price per unit: ")
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			return err
		}
		a.ui.PrintError(err.Error())
		return nil
	}
	stock, err := a.in.Float(ctx, "Stock on hand: ")
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			return err
		}
		a.ui.PrintError(err.Error())
		return nil
	}

	ing, err := a.eng.AddIngredient(ctx, name, unit, price, stock)
	if err != nil {
		a.reportError(err)
		return nil
	}
	a.refreshStatus()
	a.ui.PrintSuccess(fmt.Sprintf("added ingredient %q (ID: %d)", ing.Name, ing.ID))
	return nil
}

func (a *app) editIngredient(ctx context.Context) error {
	a.listIngredients()
	if len(a.eng.Ingredients()) == 0 {
		return nil
	}

	id, err := a.promptID(ctx, "Ingredient ID to edit: ")
	if err != nil || id < 0 {
		return err
	}
	ing := a.eng.Ingredient(id)
	if ing == nil {
		a.ui.PrintError("no ingredient with that ID")
		return nil
	}

	a.ui.PrintHint(fmt.Sprintf("editing %q (press Enter to keep a value)", ing.Name))

	name, err := a.in.Text(ctx, fmt.Sprintf("Name [%s]: ", ing.Name))
	if err != nil {
		return err
	}
	unit, err := a.in.Text(ctx, fmt.Sprintf("Unit [%s]: ", ing.Unit))
	if err != nil {
		return err
	}
	price, err := a.in.OptionalFloat(ctx, fmt.Sprintf("Price/unit [%.2f]: ", ing.PricePerUnit))
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			return err
		}
		a.ui.PrintError("price " + err.Error())
		return nil
	}
	stock, err := a.in.OptionalFloat(ctx, fmt.Sprintf("Stock [%.2f]: ", ing.Stock))
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			return err
		}
		a.ui.PrintError("stock " + err.Error())
		return nil
	}

	upd := domain.IngredientUpdate{PricePerUnit: price, Stock: stock}
	if name != "" {
		upd.Name = &name
	}
	if unit != "" {
		upd.Unit = &unit
	}

	if _, err := a.eng.EditIngredient(ctx, id, upd); err != nil {
		a.reportError(err)
		return nil
	}
	a.ui.PrintSuccess("ingredient updated")
	return nil
}

func (a *app) removeIngredient(ctx context.Context) error {
	a.listIngredients()
	if len(a.eng.Ingredients()) == 0 {
		return nil
	}

	id, err := a.promptID(ctx, "Ingredient ID to delete: ")
	if err != nil || id < 0 {
		return err
	}
	ing := a.eng.Ingredient(id)
	if ing == nil {
		a.ui.PrintError("no ingredient with that ID")
		return nil
	}

	// Deleting a referenced ingredient leaves dangling recipe lines;
	// the catalog allows it, so warn and confirm here.
	if used := a.eng.IngredientUsage(id); len(used) > 0 {
		a.ui.PrintWarn("this ingredient is used in: " + joinNames(used))
		ok, err := a.in.Confirm(ctx, "Delete anyway?")
		if err != nil {
			return err
		}
		if !ok {
			a.ui.PrintHint("delete cancelled")
			return nil
		}
	}

	removed, err := a.eng.RemoveIngredient(ctx, id)
	if err != nil {
		a.reportError(err)
		return nil
	}
	a.refreshStatus()
	a.ui.PrintSuccess(fmt.Sprintf("deleted ingredient %q", removed.Name))
	return nil
}

func (a *app) restockIngredient(ctx context.Context) error {
	a.listIngredients()
	if len(a.eng.Ingredients()) == 0 {
		return nil
	}

	id, err := a.promptID(ctx, "Ingredient ID to restock: ")
	if err != nil || id < 0 {
		return err
	}
	ing := a.eng.Ingredient(id)
	if ing == nil {
		a.ui.PrintError("no ingredient with that ID")
		return nil
	}

	qty, err := a.in.Float(ctx, fmt.Sprintf("Quantity to add (%s): ", ing.Unit))
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			return err
		}
		a.ui.PrintError(err.Error())
		return nil
	}

	stock, err := a.eng.RestockIngredient(ctx, id, qty)
	if err != nil {
		a.reportError(err)
		return nil
	}
	a.ui.PrintSuccess(fmt.Sprintf("restocked %q by %.2f %s (now %.2f %s)",
		ing.Name, qty, ing.Unit, stock, ing.Unit))
	return nil
}

// promptID reads an integer ID. Returns -1 with a printed error on bad
// input so callers can fall back to their menu.
func (a *app) promptID(ctx context.Context, label string) (int, error) {
	id, err := a.in.Int(ctx, label)
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			return -1, err
		}
		a.ui.PrintError("invalid ID")
		return -1, nil
	}
	return id, nil
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
