package main

import (
	"context"
	"fmt"

	"github.com/kittipos/kruacost/internal/costing"
	"github.com/kittipos/kruacost/internal/display"
)

func (a *app) costMenu(ctx context.Context) error {
	for {
		choice, err := a.menu(ctx, "Costing", []string{
			"1. Cost detail for one recipe",
			"2. Compare all recipes",
			"0. Back",
		})
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = a.costDetail(ctx)
		case "2":
			a.compareCosts()
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

func (a *app) costDetail(ctx context.Context) error {
	a.listRecipes()
	if len(a.eng.Recipes()) == 0 {
		return nil
	}

	id, err := a.promptID(ctx, "Recipe ID: ")
	if err != nil || id < 0 {
		return err
	}
	r := a.eng.Recipe(id)
	if r == nil {
		a.ui.PrintError("no recipe with that ID")
		return nil
	}

	a.ui.Println("")
	a.ui.PrintTitle("Cost Detail: " + r.Name)
	a.ui.PrintHint(fmt.Sprintf("servings per batch: %d", r.Servings))
	a.ui.Println("")

	var rows [][]string
	for _, lc := range a.eng.CostBreakdown(r) {
		if lc.Dangling {
			rows = append(rows, []string{
				fmt.Sprintf("[deleted %d]", lc.Line.IngredientID),
				fmt.Sprintf("%.2f", lc.Line.Quantity), "-", "-", "0.00",
			})
			continue
		}
		rows = append(rows, []string{
			lc.Ingredient.Name,
			fmt.Sprintf("%.2f", lc.Line.Quantity),
			lc.Ingredient.Unit,
			fmt.Sprintf("%.2f", lc.Ingredient.PricePerUnit),
			fmt.Sprintf("%.2f", lc.Cost),
		})
	}
	a.ui.PrintTable([]display.Col{
		{Title: "Ingredient", Width: 20},
		{Title: "Qty", Width: 8, Right: true},
		{Title: "Unit", Width: 6},
		{Title: "Price/unit", Width: 10, Right: true},
		{Title: "Cost", Width: 10, Right: true},
	}, rows)

	total := a.eng.RecipeCost(r)
	a.ui.PrintLine(fmt.Sprintf("batch total:  %10.2f", total))

	perServing, err := a.eng.CostPerServing(r)
	if err != nil {
		a.reportError(err)
		return nil
	}
	a.ui.PrintLine(fmt.Sprintf("per serving:  %10.2f", perServing))

	a.ui.Println("")
	a.ui.PrintHint("suggested prices per serving:")
	for _, pp := range costing.SuggestedPrices(perServing) {
		a.ui.PrintLine(fmt.Sprintf("  %3d%% margin: %10.2f", pp.MarginPct, pp.Price))
	}
	return nil
}

func (a *app) compareCosts() {
	recipes := a.eng.Recipes()
	a.ui.Println("")
	a.ui.PrintTitle("Cost Comparison")
	if len(recipes) == 0 {
		a.ui.PrintHint("(no recipes yet)")
		return
	}

	rows := make([][]string, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		cost := a.eng.RecipeCost(r)
		perServing, _ := a.eng.CostPerServing(r)
		rows[i] = []string{
			fmt.Sprintf("%d", r.ID),
			r.Name,
			fmt.Sprintf("%.2f", cost),
			fmt.Sprintf("%d", r.Servings),
			fmt.Sprintf("%.2f", perServing),
		}
	}
	a.ui.PrintTable([]display.Col{
		{Title: "ID", Width: 4},
		{Title: "Recipe", Width: 24},
		{Title: "Batch cost", Width: 10, Right: true},
		{Title: "Serv.", Width: 5, Right: true},
		{Title: "Per serving", Width: 11, Right: true},
	}, rows)
}
