// seed loads demo data into a platewise-engine database from a YAML file.
//
// Usage: go run ./scripts/seed [-file scripts/seed/seed-data.yaml]
//
// Database connection: Uses standard PG* environment variables
//
// The seed is idempotent per user email: rerunning replaces the demo user's
// catalog and plans rather than duplicating them.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	User struct {
		Email string `yaml:"email"`
		Name  string `yaml:"name"`
	} `yaml:"user"`
	Categories []string `yaml:"categories"`
	Units      []struct {
		Name         string `yaml:"name"`
		Abbreviation string `yaml:"abbreviation"`
	} `yaml:"units"`
	Ingredients []struct {
		Name     string `yaml:"name"`
		Category string `yaml:"category,omitempty"`
	} `yaml:"ingredients"`
	Dishes []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description,omitempty"`
		Ingredients []struct {
			Ingredient string  `yaml:"ingredient"`
			Quantity   float64 `yaml:"quantity"`
			Unit       string  `yaml:"unit"`
		} `yaml:"ingredients"`
	} `yaml:"dishes"`
	MealPlans []struct {
		Date  string `yaml:"date"`
		Label string `yaml:"label"`
		Items []struct {
			Dish     string  `yaml:"dish"`
			Servings float64 `yaml:"servings"`
		} `yaml:"items"`
	} `yaml:"meal_plans"`
}

func main() {
	file := flag.String("file", "scripts/seed/seed-data.yaml", "path to seed data file")
	flag.Parse()

	if err := run(*file); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}
	if seed.User.Email == "" {
		return fmt.Errorf("seed file has no user email")
	}

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, "") // PG* environment variables
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userID, err := upsertUser(ctx, tx, seed.User.Email, seed.User.Name)
	if err != nil {
		return err
	}

	// Replace the demo user's data wholesale. FK cascades clear dependents.
	for _, table := range []string{"meal_plans", "dishes", "ingredients", "units", "categories"} {
		if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE user_id = $1", table), userID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	categoryIDs := make(map[string]uuid.UUID)
	for _, name := range seed.Categories {
		var id uuid.UUID
		err := tx.QueryRow(ctx,
			"INSERT INTO categories (user_id, name) VALUES ($1, $2) RETURNING id",
			userID, name).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert category %q: %w", name, err)
		}
		categoryIDs[name] = id
	}

	unitIDs := make(map[string]uuid.UUID)
	for _, u := range seed.Units {
		var id uuid.UUID
		err := tx.QueryRow(ctx,
			"INSERT INTO units (user_id, name, abbreviation) VALUES ($1, $2, $3) RETURNING id",
			userID, u.Name, u.Abbreviation).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert unit %q: %w", u.Name, err)
		}
		unitIDs[u.Name] = id
	}

	ingredientIDs := make(map[string]uuid.UUID)
	for _, ing := range seed.Ingredients {
		var categoryID *uuid.UUID
		if ing.Category != "" {
			id, ok := categoryIDs[ing.Category]
			if !ok {
				return fmt.Errorf("ingredient %q references unknown category %q", ing.Name, ing.Category)
			}
			categoryID = &id
		}
		var id uuid.UUID
		err := tx.QueryRow(ctx,
			"INSERT INTO ingredients (user_id, name, category_id) VALUES ($1, $2, $3) RETURNING id",
			userID, ing.Name, categoryID).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert ingredient %q: %w", ing.Name, err)
		}
		ingredientIDs[ing.Name] = id
	}

	dishIDs := make(map[string]uuid.UUID)
	for _, dish := range seed.Dishes {
		var id uuid.UUID
		err := tx.QueryRow(ctx,
			"INSERT INTO dishes (user_id, name, description) VALUES ($1, $2, $3) RETURNING id",
			userID, dish.Name, dish.Description).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert dish %q: %w", dish.Name, err)
		}
		dishIDs[dish.Name] = id

		for _, line := range dish.Ingredients {
			ingredientID, ok := ingredientIDs[line.Ingredient]
			if !ok {
				return fmt.Errorf("dish %q references unknown ingredient %q", dish.Name, line.Ingredient)
			}
			unitID, ok := unitIDs[line.Unit]
			if !ok {
				return fmt.Errorf("dish %q references unknown unit %q", dish.Name, line.Unit)
			}
			_, err := tx.Exec(ctx,
				"INSERT INTO dish_ingredients (dish_id, ingredient_id, quantity, unit_id) VALUES ($1, $2, $3, $4)",
				id, ingredientID, line.Quantity, unitID)
			if err != nil {
				return fmt.Errorf("insert dish ingredient for %q: %w", dish.Name, err)
			}
		}
	}

	for _, plan := range seed.MealPlans {
		var planID uuid.UUID
		err := tx.QueryRow(ctx,
			"INSERT INTO meal_plans (user_id, plan_date, meal_label) VALUES ($1, $2, $3) RETURNING id",
			userID, plan.Date, plan.Label).Scan(&planID)
		if err != nil {
			return fmt.Errorf("insert meal plan %s/%s: %w", plan.Date, plan.Label, err)
		}

		for _, item := range plan.Items {
			dishID, ok := dishIDs[item.Dish]
			if !ok {
				return fmt.Errorf("meal plan %s/%s references unknown dish %q", plan.Date, plan.Label, item.Dish)
			}
			_, err := tx.Exec(ctx,
				"INSERT INTO meal_items (meal_plan_id, dish_id, servings) VALUES ($1, $2, $3)",
				planID, dishID, item.Servings)
			if err != nil {
				return fmt.Errorf("insert meal item for %s/%s: %w", plan.Date, plan.Label, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	fmt.Printf("Seeded %s: %d categories, %d units, %d ingredients, %d dishes, %d meal plans\n",
		seed.User.Email, len(seed.Categories), len(seed.Units), len(seed.Ingredients),
		len(seed.Dishes), len(seed.MealPlans))
	return nil
}

func upsertUser(ctx context.Context, tx pgx.Tx, email, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `
		INSERT INTO users (email, name) VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, updated_at = now()
		RETURNING id`,
		email, name).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("upsert user %q: %w", email, err)
	}
	return id, nil
}
