package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/cognicore/larder/pkg/larder/analytics"
	"github.com/cognicore/larder/pkg/larder/internalerr"
	"github.com/cognicore/larder/pkg/larder/recipe"
	"github.com/cognicore/larder/pkg/larder/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates the
// schema if needed.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: schema: %v", internalerr.ErrStoreUnavailable, err)
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS recipes (
	source_id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	servings INTEGER NOT NULL DEFAULT 0,
	serving_size_grams INTEGER,
	prep_time_minutes INTEGER,
	cook_time_minutes INTEGER,
	total_time_minutes INTEGER,
	category TEXT,
	steps TEXT,
	tags TEXT,
	search_terms TEXT,
	cuisines TEXT,
	dietary_flags TEXT
);

CREATE INDEX IF NOT EXISTS idx_recipes_category ON recipes(category);

CREATE TABLE IF NOT EXISTS recipe_ingredients (
	source_id INTEGER NOT NULL,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	quantity REAL,
	unit TEXT,
	preparation TEXT,
	raw TEXT,
	PRIMARY KEY(source_id, position),
	FOREIGN KEY(source_id) REFERENCES recipes(source_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_recipe_ingredients_name ON recipe_ingredients(name);

CREATE TABLE IF NOT EXISTS import_runs (
	id TEXT PRIMARY KEY,
	input TEXT,
	started_at TEXT,
	finished_at TEXT,
	row_count INTEGER NOT NULL DEFAULT 0,
	accepted INTEGER NOT NULL DEFAULT 0,
	rejected INTEGER NOT NULL DEFAULT 0,
	failed INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS ingredient_stats (
	run_id TEXT NOT NULL,
	name TEXT NOT NULL,
	count INTEGER NOT NULL,
	recipes INTEGER NOT NULL,
	units TEXT,
	categories TEXT,
	totals TEXT,
	unconverted INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY(run_id, name),
	FOREIGN KEY(run_id) REFERENCES import_runs(id) ON DELETE CASCADE
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertRecipe inserts or replaces a recipe and its ingredient lines
func (s *sqliteStore) UpsertRecipe(ctx context.Context, r recipe.ImportedRecipe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO recipes (
	source_id, name, description, servings, serving_size_grams,
	prep_time_minutes, cook_time_minutes, total_time_minutes, category,
	steps, tags, search_terms, cuisines, dietary_flags
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(source_id) DO UPDATE SET
	name=excluded.name,
	description=excluded.description,
	servings=excluded.servings,
	serving_size_grams=excluded.serving_size_grams,
	prep_time_minutes=excluded.prep_time_minutes,
	cook_time_minutes=excluded.cook_time_minutes,
	total_time_minutes=excluded.total_time_minutes,
	category=excluded.category,
	steps=excluded.steps,
	tags=excluded.tags,
	search_terms=excluded.search_terms,
	cuisines=excluded.cuisines,
	dietary_flags=excluded.dietary_flags;
`

	_, err = tx.ExecContext(ctx, stmt,
		r.SourceID,
		r.Name,
		r.Description,
		r.Servings,
		nullInt(r.ServingSizeGrams),
		nullInt(r.PrepTimeMinutes),
		nullInt(r.CookTimeMinutes),
		nullInt(r.TotalTimeMinutes),
		nullString(r.Category),
		encodeList(r.Steps),
		encodeList(r.Tags),
		encodeList(r.SearchTerms),
		encodeList(r.Cuisines),
		encodeList(r.DietaryFlags),
	)
	if err != nil {
		return err
	}

	if err := replaceIngredients(ctx, tx, r.SourceID, r.Ingredients); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceIngredients(ctx context.Context, tx *sql.Tx, sourceID int64, ings []recipe.ParsedIngredient) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE source_id=?`, sourceID); err != nil {
		return err
	}
	if len(ings) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO recipe_ingredients (source_id, position, name, quantity, unit, preparation, raw)
VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, ing := range ings {
		var qty sql.NullFloat64
		if ing.Quantity != nil {
			qty = sql.NullFloat64{Float64: *ing.Quantity, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, sourceID, i, ing.Name, qty, nullString(ing.Unit), nullString(ing.Preparation), ing.Raw); err != nil {
			return err
		}
	}
	return nil
}

// GetRecipe retrieves a recipe by source id
func (s *sqliteStore) GetRecipe(ctx context.Context, sourceID int64) (recipe.ImportedRecipe, error) {
	return s.loadRecipe(ctx, sourceID)
}

// RecipesByCategory lists recipes of a category ordered by source id
func (s *sqliteStore) RecipesByCategory(ctx context.Context, category string, limit int) ([]recipe.ImportedRecipe, error) {
	if limit <= 0 {
		limit = store.DefaultLimit
	}
	ids, err := s.loadIDs(ctx, `SELECT source_id FROM recipes WHERE category = ? ORDER BY source_id LIMIT ?`, category, limit)
	if err != nil {
		return nil, err
	}
	return s.loadRecipes(ctx, ids)
}

// RecipesByIngredient lists recipes using a canonical ingredient
func (s *sqliteStore) RecipesByIngredient(ctx context.Context, name string, limit int) ([]recipe.ImportedRecipe, error) {
	if limit <= 0 {
		limit = store.DefaultLimit
	}
	ids, err := s.loadIDs(ctx, `
SELECT DISTINCT source_id
FROM recipe_ingredients
WHERE name = ?
ORDER BY source_id
LIMIT ?;
`, name, limit)
	if err != nil {
		return nil, err
	}
	return s.loadRecipes(ctx, ids)
}

// CountRecipes returns the number of stored recipes
func (s *sqliteStore) CountRecipes(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&total)
	return total, err
}

// SaveRun inserts or updates an import run
func (s *sqliteStore) SaveRun(ctx context.Context, run store.Run) error {
	if run.ID == "" {
		return fmt.Errorf("%w: run id is required", internalerr.ErrInvalidInput)
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO import_runs (id, input, started_at, finished_at, row_count, accepted, rejected, failed)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	input=excluded.input,
	started_at=excluded.started_at,
	finished_at=excluded.finished_at,
	row_count=excluded.row_count,
	accepted=excluded.accepted,
	rejected=excluded.rejected,
	failed=excluded.failed;
`, run.ID, run.Input, formatTime(run.StartedAt), formatTime(run.FinishedAt),
		run.Rows, run.Accepted, run.Rejected, run.Failed)
	return err
}

// GetRun retrieves an import run by id
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	var (
		run               store.Run
		started, finished string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, input, started_at, finished_at, row_count, accepted, rejected, failed
FROM import_runs
WHERE id = ?;
`, id).Scan(&run.ID, &run.Input, &started, &finished, &run.Rows, &run.Accepted, &run.Rejected, &run.Failed)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return store.Run{}, err
	}
	run.StartedAt = parseTime(started)
	run.FinishedAt = parseTime(finished)
	return run, nil
}

// SaveIngredientStats replaces the statistics stored for a run
func (s *sqliteStore) SaveIngredientStats(ctx context.Context, runID string, stats []analytics.IngredientStat) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ingredient_stats WHERE run_id=?`, runID); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO ingredient_stats (run_id, name, count, recipes, units, categories, totals, unconverted)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, st := range stats {
		if st.Name == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, runID, st.Name, st.Count, st.Recipes,
			encodeList(st.Units), encodeList(st.Categories), encodeTotals(st.Totals), st.Unconverted); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// IngredientStats returns a run's statistics ordered by count
func (s *sqliteStore) IngredientStats(ctx context.Context, runID string, limit int) ([]analytics.IngredientStat, error) {
	if limit <= 0 {
		limit = store.DefaultLimit
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT name, count, recipes, units, categories, totals, unconverted
FROM ingredient_stats
WHERE run_id = ?
ORDER BY count DESC, name ASC
LIMIT ?;
`, runID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []analytics.IngredientStat
	for rows.Next() {
		var (
			st                        analytics.IngredientStat
			units, categories, totals sql.NullString
		)
		if err := rows.Scan(&st.Name, &st.Count, &st.Recipes, &units, &categories, &totals, &st.Unconverted); err != nil {
			return nil, err
		}
		st.Units = decodeList(units.String)
		st.Categories = decodeList(categories.String)
		st.Totals = decodeTotals(totals.String)
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *sqliteStore) loadRecipe(ctx context.Context, sourceID int64) (recipe.ImportedRecipe, error) {
	var (
		r                                                recipe.ImportedRecipe
		description, category                            sql.NullString
		servingSize, prep, cook, total                   sql.NullInt64
		steps, tags, searchTerms, cuisines, dietaryFlags sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
SELECT source_id, name, description, servings, serving_size_grams,
	prep_time_minutes, cook_time_minutes, total_time_minutes, category,
	steps, tags, search_terms, cuisines, dietary_flags
FROM recipes
WHERE source_id = ?;
`, sourceID).Scan(
		&r.SourceID, &r.Name, &description, &r.Servings, &servingSize,
		&prep, &cook, &total, &category,
		&steps, &tags, &searchTerms, &cuisines, &dietaryFlags,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return recipe.ImportedRecipe{}, fmt.Errorf("recipe %d: %w", sourceID, internalerr.ErrNotFound)
	}
	if err != nil {
		return recipe.ImportedRecipe{}, err
	}

	r.Description = description.String
	r.ServingSizeGrams = intPtr(servingSize)
	r.PrepTimeMinutes = intPtr(prep)
	r.CookTimeMinutes = intPtr(cook)
	r.TotalTimeMinutes = intPtr(total)
	if category.Valid {
		r.Category = recipe.String(category.String)
	}
	r.Steps = decodeList(steps.String)
	r.Tags = decodeList(tags.String)
	r.SearchTerms = decodeList(searchTerms.String)
	r.Cuisines = decodeList(cuisines.String)
	r.DietaryFlags = decodeList(dietaryFlags.String)

	r.Ingredients, err = s.loadIngredients(ctx, sourceID)
	if err != nil {
		return recipe.ImportedRecipe{}, err
	}
	return r, nil
}

func (s *sqliteStore) loadIngredients(ctx context.Context, sourceID int64) ([]recipe.ParsedIngredient, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT name, quantity, unit, preparation, raw
FROM recipe_ingredients
WHERE source_id = ?
ORDER BY position;
`, sourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ings := []recipe.ParsedIngredient{}
	for rows.Next() {
		var (
			ing             recipe.ParsedIngredient
			qty             sql.NullFloat64
			unit, prep, raw sql.NullString
		)
		if err := rows.Scan(&ing.Name, &qty, &unit, &prep, &raw); err != nil {
			return nil, err
		}
		if qty.Valid {
			ing.Quantity = recipe.Float(qty.Float64)
		}
		if unit.Valid {
			ing.Unit = recipe.String(unit.String)
		}
		if prep.Valid {
			ing.Preparation = recipe.String(prep.String)
		}
		ing.Raw = raw.String
		ings = append(ings, ing)
	}
	return ings, rows.Err()
}

func (s *sqliteStore) loadRecipes(ctx context.Context, ids []int64) ([]recipe.ImportedRecipe, error) {
	out := make([]recipe.ImportedRecipe, 0, len(ids))
	for _, id := range ids {
		r, err := s.loadRecipe(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *sqliteStore) loadIDs(ctx context.Context, query string, args ...interface{}) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func encodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodeList(s string) []string {
	out := []string{}
	if s == "" {
		return out
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return []string{}
	}
	return out
}

// encodeTotals stores a nil map as NULL.
func encodeTotals(totals map[string]float64) sql.NullString {
	if len(totals) == 0 {
		return sql.NullString{}
	}
	data, err := json.Marshal(totals)
	if err != nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(data), Valid: true}
}

func decodeTotals(s string) map[string]float64 {
	if s == "" {
		return nil
	}
	var out map[string]float64
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil
	}
	return out
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
