package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/kittipos/kruacost/internal/display"
	"github.com/kittipos/kruacost/internal/prompt"
)

func (a *app) productionMenu(ctx context.Context) error {
	for {
		choice, err := a.menu(ctx, "Production", []string{
			"1. Produce a recipe (deducts stock)",
			"2. Check what's producible",
			"3. Production history",
			"0. Back",
		})
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = a.produce(ctx)
		case "2":
			a.checkProducible()
		case "3":
			a.showProductionLog()
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

func (a *app) produce(ctx context.Context) error {
	a.listRecipes()
	if len(a.eng.Recipes()) == 0 {
		return nil
	}

	id, err := a.promptID(ctx, "Recipe ID to produce: ")
	if err != nil || id < 0 {
		return err
	}
	r := a.eng.Recipe(id)
	if r == nil {
		a.ui.PrintError("no recipe with that ID")
		return nil
	}

	batches, err := a.in.Int(ctx, fmt.Sprintf("Batches to produce (1 batch = %d servings): ", r.Servings))
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			return err
		}
		a.ui.PrintError(err.Error())
		return nil
	}
	if batches <= 0 {
		a.ui.PrintError("batches must be positive")
		return nil
	}

	// Preview the stock check. The engine redoes this authoritatively
	// inside Produce; this pass only renders the per-line status.
	a.ui.Println("")
	a.ui.PrintHint(fmt.Sprintf("stock check for %d batch(es):", batches))
	for _, ln := range r.Lines {
		ing := a.eng.Ingredient(ln.IngredientID)
		if ing == nil {
			a.ui.PrintError(fmt.Sprintf("ingredient %d was deleted, cannot produce", ln.IngredientID))
			return nil
		}
		needed := ln.Quantity * float64(batches)
		mark := "✅"
		if needed > ing.Stock {
			mark = "❌"
		}
		a.ui.PrintLine(fmt.Sprintf("%s %s: need %.2f %s | have %.2f %s",
			mark, ing.Name, needed, ing.Unit, ing.Stock, ing.Unit))
	}

	totalCost := a.eng.RecipeCost(r) * float64(batches)
	totalServings := r.Servings * batches
	a.ui.Println("")
	a.ui.PrintLine(fmt.Sprintf("production summary: %s", r.Name))
	a.ui.PrintLine(fmt.Sprintf("  %d batch(es) = %d servings", batches, totalServings))
	a.ui.PrintLine(fmt.Sprintf("  total cost: %.2f", totalCost))

	ok, err := a.in.Confirm(ctx, "Produce and deduct stock?")
	if err != nil {
		return err
	}
	if !ok {
		a.ui.PrintHint("production cancelled")
		return nil
	}

	entry, err := a.eng.Produce(ctx, id, batches)
	if err != nil {
		a.reportError(err)
		return nil
	}
	a.refreshStatus()
	a.ui.PrintSuccess("production complete, stock deducted")
	a.ui.PrintLine(fmt.Sprintf("  recipe: %s", entry.RecipeName))
	a.ui.PrintLine(fmt.Sprintf("  made: %d servings", entry.TotalServings))
	a.ui.PrintLine(fmt.Sprintf("  cost: %.2f", entry.TotalCost))
	return nil
}

func (a *app) checkProducible() {
	recipes := a.eng.Recipes()
	a.ui.Println("")
	a.ui.PrintTitle("Producibility Check")
	if len(recipes) == 0 {
		a.ui.PrintHint("(no recipes yet)")
		return
	}

	for i := range recipes {
		r := &recipes[i]
		plan := a.eng.Plan(r)

		a.ui.Println("")
		a.ui.PrintLine(fmt.Sprintf("[%s]", r.Name))
		if plan.Blocked {
			a.ui.PrintWarn(fmt.Sprintf("  blocked: ingredient %d was deleted", plan.MissingID))
			continue
		}
		a.ui.PrintLine(fmt.Sprintf("  max: %d batch(es) (%d servings)", plan.Batches, plan.Batches*r.Servings))
		if plan.Batches > 0 && plan.Limiting != "" {
			a.ui.PrintHint(fmt.Sprintf("  limited by: %s", plan.Limiting))
		} else if plan.Limiting != "" {
			a.ui.PrintHint(fmt.Sprintf("  out of stock: %s", plan.Limiting))
		}
	}
}

func (a *app) showProductionLog() {
	entries := a.eng.ProductionLog()
	a.ui.Println("")
	a.ui.PrintTitle("Production History")
	if len(entries) == 0 {
		a.ui.PrintHint("(nothing produced yet)")
		return
	}

	total := 0.0
	rows := make([][]string, len(entries))
	for i, e := range entries {
		total += e.TotalCost
		rows[i] = []string{
			fmt.Sprintf("%d", e.ID),
			e.Date,
			e.RecipeName,
			fmt.Sprintf("%d", e.Batches),
			fmt.Sprintf("%d", e.TotalServings),
			fmt.Sprintf("%.2f", e.TotalCost),
		}
	}
	a.ui.PrintTable([]display.Col{
		{Title: "ID", Width: 4},
		{Title: "Date", Width: 19},
		{Title: "Recipe", Width: 20},
		{Title: "Batches", Width: 7, Right: true},
		{Title: "Servings", Width: 8, Right: true},
		{Title: "Cost", Width: 10, Right: true},
	}, rows)
	a.ui.PrintLine(fmt.Sprintf("total production cost: %.2f", total))
}
