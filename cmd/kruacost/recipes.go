package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/kittipos/kruacost/internal/domain"
	"github.com/kittipos/kruacost/internal/prompt"
)

func (a *app) recipeMenu(ctx context.Context) error {
	for {
		choice, err := a.menu(ctx, "Recipes", []string{
			"1. List recipes",
			"2. Add recipe",
			"3. Edit recipe",
			"4. Delete recipe",
			"0. Back",
		})
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			a.listRecipes()
		case "2":
			err = a.addRecipe(ctx)
		case "3":
			err = a.editRecipe(ctx)
		case "4":
			err = a.removeRecipe(ctx)
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

func (a *app) listRecipes() {
	recipes := a.eng.Recipes()
	a.ui.Println("")
	a.ui.PrintTitle("Recipe List")
	if len(recipes) == 0 {
		a.ui.PrintHint("(no recipes yet)")
		return
	}

	for i := range recipes {
		r := &recipes[i]
		cost := a.eng.RecipeCost(r)
		perServing, _ := a.eng.CostPerServing(r)

		a.ui.Println("")
		a.ui.PrintLine(fmt.Sprintf("[ID: %d] %s (%d servings per batch)", r.ID, r.Name, r.Servings))
		a.ui.PrintHint(fmt.Sprintf("  batch cost: %.2f | per serving: %.2f", cost, perServing))
		for _, lc := range a.eng.CostBreakdown(r) {
			if lc.Dangling {
				a.ui.PrintWarn(fmt.Sprintf("  [ingredient %d was deleted]", lc.Line.IngredientID))
				continue
			}
			a.ui.PrintLine(fmt.Sprintf("  - %s: %.2f %s (%.2f each = %.2f)",
				lc.Ingredient.Name, lc.Line.Quantity, lc.Ingredient.Unit,
				lc.Ingredient.PricePerUnit, lc.Cost))
		}
	}
}

// collectLines runs the line-entry loop: ingredient ID then quantity,
// blank ID to finish. Bad entries are reported and skipped so a typo
// doesn't throw away the lines already collected.
func (a *app) collectLines(ctx context.Context) ([]domain.RecipeLine, error) {
	a.listIngredients()
	var lines []domain.RecipeLine

	for {
		raw, err := a.in.Text(ctx, "Ingredient ID (blank to finish): ")
		if err != nil {
			return nil, err
		}
		if raw == "" {
			return lines, nil
		}

		id, err := strconv.Atoi(raw)
		if err != nil {
			a.ui.PrintError("invalid ID")
			continue
		}
		ing := a.eng.Ingredient(id)
		if ing == nil {
			a.ui.PrintError("no ingredient with that ID")
			continue
		}
		if hasLine(lines, id) {
			a.ui.PrintWarn("that ingredient is already in the recipe")
			continue
		}

		qty, err := a.in.Float(ctx, fmt.Sprintf("Quantity of %q (%s): ", ing.Name, ing.Unit))
		if err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				return nil, err
			}
			a.ui.PrintError(err.Error())
			continue
		}
		if qty <= 0 {
			a.ui.PrintError("quantity must be positive")
			continue
		}

		lines = append(lines, domain.RecipeLine{IngredientID: id, Quantity: qty})
		a.ui.PrintLine(fmt.Sprintf("+ %s %.2f %s", ing.Name, qty, ing.Unit))
	}
}

func hasLine(lines []domain.RecipeLine, ingredientID int) bool {
	for _, ln := range lines {
		if ln.IngredientID == ingredientID {
			return true
		}
	}
	return false
}

func (a *app) addRecipe(ctx context.Context) error {
	a.ui.Println("")
	a.ui.PrintTitle("Add Recipe")

	if len(a.eng.Ingredients()) == 0 {
		a.ui.PrintError("no ingredients yet, add some first")
		return nil
	}

	name, err := a.in.Text(ctx, "Recipe name: ")
	if err != nil {
		return err
	}
	servings, err := a.in.Int(ctx, "Servings per batch: ")
	if err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			return err
		}
		a.ui.PrintError(err.Error())
		return nil
	}

	lines, err := a.collectLines(ctx)
	if err != nil {
		return err
	}

	r, err := a.eng.AddRecipe(ctx, name, servings, lines)
	if err != nil {
		a.reportError(err)
		return nil
	}
	a.refreshStatus()
	a.ui.PrintSuccess(fmt.Sprintf("added recipe %q (ID: %d)", r.Name, r.ID))
	return nil
}

func (a *app) editRecipe(ctx context.Context) error {
	a.listRecipes()
	if len(a.eng.Recipes()) == 0 {
		return nil
	}

	id, err := a.promptID(ctx, "Recipe ID to edit: ")
	if err != nil || id < 0 {
		return err
	}
	r := a.eng.Recipe(id)
	if r == nil {
		a.ui.PrintError("no recipe with that ID")
		return nil
	}

	choice, err := a.menu(ctx, fmt.Sprintf("Editing %q", r.Name), []string{
		"1. Rename / change servings",
		"2. Replace ingredient lines",
		"0. Cancel",
	})
	if err != nil {
		return err
	}

	switch choice {
	case "1":
		name, err := a.in.Text(ctx, fmt.Sprintf("Name [%s]: ", r.Name))
		if err != nil {
			return err
		}
		servings, err := a.in.OptionalInt(ctx, fmt.Sprintf("Servings [%d]: ", r.Servings))
		if err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				return err
			}
			a.ui.PrintError("servings " + err.Error())
			return nil
		}

		upd := domain.RecipeUpdate{Servings: servings}
		if name != "" {
			upd.Name = &name
		}
		if _, err := a.eng.EditRecipe(ctx, id, upd); err != nil {
			a.reportError(err)
			return nil
		}
		a.ui.PrintSuccess("recipe updated")

	case "2":
		lines, err := a.collectLines(ctx)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			a.ui.PrintError("no lines entered, edit cancelled")
			return nil
		}
		// Full replacement: the engine swaps the whole line set at once.
		if _, err := a.eng.EditRecipe(ctx, id, domain.RecipeUpdate{Lines: lines}); err != nil {
			a.reportError(err)
			return nil
		}
		a.ui.PrintSuccess("recipe lines replaced")

	case "0":
	default:
		a.ui.PrintError("unknown menu choice")
	}
	return nil
}

func (a *app) removeRecipe(ctx context.Context) error {
	a.listRecipes()
	if len(a.eng.Recipes()) == 0 {
		return nil
	}

	id, err := a.promptID(ctx, "Recipe ID to delete: ")
	if err != nil || id < 0 {
		return err
	}
	r := a.eng.Recipe(id)
	if r == nil {
		a.ui.PrintError("no recipe with that ID")
		return nil
	}

	ok, err := a.in.Confirm(ctx, fmt.Sprintf("Delete recipe %q?", r.Name))
	if err != nil {
		return err
	}
	if !ok {
		a.ui.PrintHint("delete cancelled")
		return nil
	}

	removed, err := a.eng.RemoveRecipe(ctx, id)
	if err != nil {
		a.reportError(err)
		return nil
	}
	a.refreshStatus()
	a.ui.PrintSuccess(fmt.Sprintf("deleted recipe %q", removed.Name))
	return nil
}
