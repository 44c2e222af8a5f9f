package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/cognicore/larder/pkg/larder/analytics"
	"github.com/cognicore/larder/pkg/larder/internalerr"
	"github.com/cognicore/larder/pkg/larder/recipe"
	"github.com/cognicore/larder/pkg/larder/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleRecipe(id int64, category string, names ...string) recipe.ImportedRecipe {
	r := recipe.ImportedRecipe{
		SourceID:     id,
		Name:         "recipe",
		Description:  "a test dish",
		Servings:     4,
		Steps:        []string{"mix", "bake"},
		Tags:         []string{"easy"},
		SearchTerms:  []string{"dinner"},
		Cuisines:     []string{},
		DietaryFlags: []string{},
	}
	if category != "" {
		r.Category = recipe.String(category)
	}
	for _, n := range names {
		r.Ingredients = append(r.Ingredients, recipe.ParsedIngredient{Name: n, Raw: n})
	}
	if r.Ingredients == nil {
		r.Ingredients = []recipe.ParsedIngredient{}
	}
	return r
}

func TestSchemaCreationIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open database: %v", err)
	}
	defer db.Close()

	for i := 0; i < 3; i++ {
		if err := initSchema(ctx, db); err != nil {
			t.Fatalf("initSchema iteration %d: %v", i, err)
		}
	}

	var count int
	err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'").Scan(&count)
	if err != nil {
		t.Fatalf("Count tables: %v", err)
	}
	if count != 4 { // recipes, recipe_ingredients, import_runs, ingredient_stats
		t.Errorf("Expected 4 tables, got %d", count)
	}
}

func TestRecipeRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	in := sampleRecipe(38, "dessert")
	in.ServingSizeGrams = recipe.Int(173)
	in.TotalTimeMinutes = recipe.Int(45)
	in.Cuisines = []string{"italian"}
	in.DietaryFlags = []string{"low-fat", "vegetarian"}
	in.Ingredients = []recipe.ParsedIngredient{
		{Quantity: recipe.Float(14), Unit: recipe.String("ounce"), Name: "diced tomatoes", Preparation: recipe.String("drained"), Raw: "1 (14 ounce) can diced tomatoes, drained"},
		{Name: "salt", Raw: "salt"},
	}

	if err := st.UpsertRecipe(ctx, in); err != nil {
		t.Fatalf("UpsertRecipe: %v", err)
	}

	got, err := st.GetRecipe(ctx, 38)
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, in)
	}
	if got.PrepTimeMinutes != nil || got.CookTimeMinutes != nil {
		t.Error("absent times should stay nil")
	}
	if got.Ingredients[1].Quantity != nil || got.Ingredients[1].Unit != nil {
		t.Error("absent quantity and unit should stay nil")
	}
}

func TestUpsertReplacesRecipe(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	if err := st.UpsertRecipe(ctx, sampleRecipe(1, "dinner", "egg", "milk", "butter")); err != nil {
		t.Fatalf("UpsertRecipe: %v", err)
	}
	updated := sampleRecipe(1, "", "egg")
	updated.Name = "renamed"
	if err := st.UpsertRecipe(ctx, updated); err != nil {
		t.Fatalf("UpsertRecipe again: %v", err)
	}

	got, err := st.GetRecipe(ctx, 1)
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if got.Name != "renamed" || got.Category != nil {
		t.Errorf("recipe not replaced: %+v", got)
	}
	if len(got.Ingredients) != 1 {
		t.Errorf("expected 1 ingredient after replace, got %d", len(got.Ingredients))
	}

	n, err := st.CountRecipes(ctx)
	if err != nil {
		t.Fatalf("CountRecipes: %v", err)
	}
	if n != 1 {
		t.Errorf("CountRecipes = %d, want 1", n)
	}
}

func TestGetRecipeNotFound(t *testing.T) {
	st := openTestStore(t)
	_, err := st.GetRecipe(context.Background(), 404)
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecipeQueries(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	fixtures := []recipe.ImportedRecipe{
		sampleRecipe(3, "dessert", "sugar", "butter"),
		sampleRecipe(1, "dessert", "sugar", "egg"),
		sampleRecipe(2, "dinner", "egg", "salt"),
	}
	for _, r := range fixtures {
		if err := st.UpsertRecipe(ctx, r); err != nil {
			t.Fatalf("UpsertRecipe %d: %v", r.SourceID, err)
		}
	}

	desserts, err := st.RecipesByCategory(ctx, "dessert", 0)
	if err != nil {
		t.Fatalf("RecipesByCategory: %v", err)
	}
	if len(desserts) != 2 || desserts[0].SourceID != 1 || desserts[1].SourceID != 3 {
		t.Errorf("desserts = %v", ids(desserts))
	}

	withEgg, err := st.RecipesByIngredient(ctx, "egg", 0)
	if err != nil {
		t.Fatalf("RecipesByIngredient: %v", err)
	}
	if !reflect.DeepEqual(ids(withEgg), []int64{1, 2}) {
		t.Errorf("recipes with egg = %v", ids(withEgg))
	}

	limited, err := st.RecipesByIngredient(ctx, "sugar", 1)
	if err != nil {
		t.Fatalf("RecipesByIngredient: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit not applied: %d", len(limited))
	}

	none, err := st.RecipesByCategory(ctx, "beverage", 0)
	if err != nil {
		t.Fatalf("RecipesByCategory: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no beverages, got %d", len(none))
	}
}

func TestRunsAndStats(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	if err := st.SaveRun(ctx, store.Run{}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty id, got %v", err)
	}

	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	run := store.Run{
		ID:         "01HQZ0000000000000000000",
		Input:      "recipes.csv",
		StartedAt:  started,
		FinishedAt: started.Add(90 * time.Second),
		Rows:       10,
		Accepted:   7,
		Rejected:   2,
		Failed:     1,
	}
	if err := st.SaveRun(ctx, run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	got, err := st.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if !got.StartedAt.Equal(run.StartedAt) || !got.FinishedAt.Equal(run.FinishedAt) {
		t.Errorf("times = %v..%v", got.StartedAt, got.FinishedAt)
	}
	if got.Rows != 10 || got.Accepted != 7 || got.Rejected != 2 || got.Failed != 1 {
		t.Errorf("counters = %+v", got)
	}

	if _, err := st.GetRun(ctx, "missing"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing run, got %v", err)
	}

	stats := []analytics.IngredientStat{
		{Name: "egg", Count: 5, Recipes: 4, Units: []string{"pieces"}, Categories: []string{"breakfast"}, Totals: map[string]float64{"pieces": 7}},
		{Name: "salt", Count: 9, Recipes: 9, Units: []string{}, Categories: []string{"dinner", "side"}},
		{Name: "butter", Count: 5, Recipes: 5, Totals: map[string]float64{"g": 454.5}, Unconverted: 2},
	}
	if err := st.SaveIngredientStats(ctx, run.ID, stats); err != nil {
		t.Fatalf("SaveIngredientStats: %v", err)
	}

	top, err := st.IngredientStats(ctx, run.ID, 0)
	if err != nil {
		t.Fatalf("IngredientStats: %v", err)
	}
	var names []string
	for _, s := range top {
		names = append(names, s.Name)
	}
	if !reflect.DeepEqual(names, []string{"salt", "butter", "egg"}) {
		t.Errorf("order = %v", names)
	}
	if !reflect.DeepEqual(top[0].Categories, []string{"dinner", "side"}) {
		t.Errorf("salt categories = %v", top[0].Categories)
	}
	if top[0].Totals != nil {
		t.Errorf("salt totals = %v, want nil", top[0].Totals)
	}
	if !reflect.DeepEqual(top[1].Totals, map[string]float64{"g": 454.5}) || top[1].Unconverted != 2 {
		t.Errorf("butter totals = %v, unconverted %d", top[1].Totals, top[1].Unconverted)
	}

	// saving again replaces the previous set
	if err := st.SaveIngredientStats(ctx, run.ID, stats[:1]); err != nil {
		t.Fatalf("SaveIngredientStats again: %v", err)
	}
	top, err = st.IngredientStats(ctx, run.ID, 10)
	if err != nil {
		t.Fatalf("IngredientStats: %v", err)
	}
	if len(top) != 1 || top[0].Name != "egg" {
		t.Errorf("stats not replaced: %+v", top)
	}
}

func TestReopenPreservesData(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	st, err := OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := st.UpsertRecipe(ctx, sampleRecipe(7, "soup", "onion")); err != nil {
		t.Fatalf("UpsertRecipe: %v", err)
	}
	st.Close()

	st2, err := OpenSQLite(ctx, dbPath)
	if err != nil {
		t.Fatalf("Reopen: %v", err)
	}
	defer st2.Close()

	got, err := st2.GetRecipe(ctx, 7)
	if err != nil {
		t.Fatalf("GetRecipe after reopen: %v", err)
	}
	if got.CategoryName() != "soup" || len(got.Ingredients) != 1 {
		t.Errorf("data lost on reopen: %+v", got)
	}
}

func ids(rs []recipe.ImportedRecipe) []int64 {
	out := make([]int64, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.SourceID)
	}
	return out
}
