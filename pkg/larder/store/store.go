// Package store defines persistence for imported recipes, import runs and
// per-run ingredient statistics.
package store

import (
	"context"
	"time"

	"github.com/cognicore/larder/pkg/larder/analytics"
	"github.com/cognicore/larder/pkg/larder/recipe"
)

// Store is the main interface for persisting and querying the corpus.
// Lookups of missing records return an error wrapping internalerr.ErrNotFound.
type Store interface {
	Close() error

	// Recipes, keyed by source id
	UpsertRecipe(ctx context.Context, r recipe.ImportedRecipe) error
	GetRecipe(ctx context.Context, sourceID int64) (recipe.ImportedRecipe, error)
	RecipesByCategory(ctx context.Context, category string, limit int) ([]recipe.ImportedRecipe, error)
	RecipesByIngredient(ctx context.Context, name string, limit int) ([]recipe.ImportedRecipe, error)
	CountRecipes(ctx context.Context) (int64, error)

	// Import runs
	SaveRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id string) (Run, error)

	// Ingredient statistics of a run, replaced wholesale on save
	SaveIngredientStats(ctx context.Context, runID string, stats []analytics.IngredientStat) error
	IngredientStats(ctx context.Context, runID string, limit int) ([]analytics.IngredientStat, error)
}

// Run records one import.
type Run struct {
	ID         string
	Input      string
	StartedAt  time.Time
	FinishedAt time.Time
	Rows       int64 // data rows read
	Accepted   int64
	Rejected   int64 // decoded but refused by the acceptance filter
	Failed     int64 // rows that could not be decoded
}

// DefaultLimit is used when a query passes limit <= 0.
const DefaultLimit = 20
