package memstore

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"

	"github.com/cognicore/larder/pkg/larder/analytics"
	"github.com/cognicore/larder/pkg/larder/internalerr"
	"github.com/cognicore/larder/pkg/larder/recipe"
	"github.com/cognicore/larder/pkg/larder/store"
)

// Store is an in-memory implementation of store.Store for tests and dry runs.
type Store struct {
	mu      sync.RWMutex
	recipes map[int64]recipe.ImportedRecipe
	runs    map[string]store.Run
	stats   map[string][]analytics.IngredientStat
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		recipes: make(map[int64]recipe.ImportedRecipe),
		runs:    make(map[string]store.Run),
		stats:   make(map[string][]analytics.IngredientStat),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertRecipe inserts or replaces a recipe, keyed by source id.
func (s *Store) UpsertRecipe(ctx context.Context, r recipe.ImportedRecipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recipes[r.SourceID] = copyRecipe(r)
	return nil
}

// GetRecipe returns a recipe by source id.
func (s *Store) GetRecipe(ctx context.Context, sourceID int64) (recipe.ImportedRecipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.recipes[sourceID]; ok {
		return copyRecipe(r), nil
	}
	return recipe.ImportedRecipe{}, fmt.Errorf("recipe %d: %w", sourceID, internalerr.ErrNotFound)
}

// RecipesByCategory returns recipes of a category ordered by source id.
func (s *Store) RecipesByCategory(ctx context.Context, category string, limit int) ([]recipe.ImportedRecipe, error) {
	return s.filter(limit, func(r recipe.ImportedRecipe) bool {
		return r.CategoryName() == category
	}), nil
}

// RecipesByIngredient returns recipes with at least one line of the given
// canonical name, ordered by source id.
func (s *Store) RecipesByIngredient(ctx context.Context, name string, limit int) ([]recipe.ImportedRecipe, error) {
	return s.filter(limit, func(r recipe.ImportedRecipe) bool {
		for _, ing := range r.Ingredients {
			if ing.Name == name {
				return true
			}
		}
		return false
	}), nil
}

// CountRecipes returns the number of stored recipes.
func (s *Store) CountRecipes(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.recipes)), nil
}

// SaveRun inserts or updates an import run.
func (s *Store) SaveRun(ctx context.Context, run store.Run) error {
	if run.ID == "" {
		return fmt.Errorf("%w: run id is required", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

// GetRun returns an import run by id.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if run, ok := s.runs[id]; ok {
		return run, nil
	}
	return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
}

// SaveIngredientStats replaces the statistics kept for a run.
func (s *Store) SaveIngredientStats(ctx context.Context, runID string, stats []analytics.IngredientStat) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]analytics.IngredientStat, 0, len(stats))
	for _, st := range stats {
		if st.Name == "" {
			continue
		}
		out = append(out, copyStat(st))
	}
	s.stats[runID] = out
	return nil
}

// IngredientStats returns a run's statistics ordered by count, then name.
func (s *Store) IngredientStats(ctx context.Context, runID string, limit int) ([]analytics.IngredientStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = store.DefaultLimit
	}
	list := make([]analytics.IngredientStat, 0, len(s.stats[runID]))
	for _, st := range s.stats[runID] {
		list = append(list, copyStat(st))
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Count == list[j].Count {
			return list[i].Name < list[j].Name
		}
		return list[i].Count > list[j].Count
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (s *Store) filter(limit int, keep func(recipe.ImportedRecipe) bool) []recipe.ImportedRecipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = store.DefaultLimit
	}

	var out []recipe.ImportedRecipe
	for _, r := range s.recipes {
		if keep(r) {
			out = append(out, copyRecipe(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SourceID < out[j].SourceID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func copyRecipe(r recipe.ImportedRecipe) recipe.ImportedRecipe {
	out := r
	out.ServingSizeGrams = copyPtr(r.ServingSizeGrams)
	out.PrepTimeMinutes = copyPtr(r.PrepTimeMinutes)
	out.CookTimeMinutes = copyPtr(r.CookTimeMinutes)
	out.TotalTimeMinutes = copyPtr(r.TotalTimeMinutes)
	out.Category = copyPtr(r.Category)
	out.Steps = copySlice(r.Steps)
	out.Tags = copySlice(r.Tags)
	out.SearchTerms = copySlice(r.SearchTerms)
	out.Cuisines = copySlice(r.Cuisines)
	out.DietaryFlags = copySlice(r.DietaryFlags)

	if r.Ingredients != nil {
		out.Ingredients = make([]recipe.ParsedIngredient, len(r.Ingredients))
		for i, ing := range r.Ingredients {
			ing.Quantity = copyPtr(ing.Quantity)
			ing.Unit = copyPtr(ing.Unit)
			ing.Preparation = copyPtr(ing.Preparation)
			out.Ingredients[i] = ing
		}
	}
	return out
}

func copyStat(st analytics.IngredientStat) analytics.IngredientStat {
	st.Units = copySlice(st.Units)
	st.Categories = copySlice(st.Categories)
	st.Profile = copyPtr(st.Profile)
	st.Totals = maps.Clone(st.Totals)
	return st
}

func copySlice(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
