// Command larder-query looks up recipes and run statistics in a database
// written by larder-import.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/cognicore/larder/internal/logging"
	"github.com/cognicore/larder/pkg/larder/config"
	"github.com/cognicore/larder/pkg/larder/internalerr"
	"github.com/cognicore/larder/pkg/larder/lexicon"
	"github.com/cognicore/larder/pkg/larder/recipe"
	"github.com/cognicore/larder/pkg/larder/store"
	"github.com/cognicore/larder/pkg/larder/store/sqlite"
)

func main() {
	var (
		dbPath      = flag.String("db", "", "Database path (required)")
		lexiconPath = flag.String("lexicon", "", "Lexicon file (optional)")
		query       = flag.String("query", "", "One-shot command (non-interactive mode)")
		topK        = flag.Int("topk", 10, "Number of results to return")
	)
	flag.Parse()

	logging.Init(logging.Config{Level: "warn", Format: "console"})

	if *dbPath == "" {
		logging.Error().Msg("--db required")
		os.Exit(2)
	}

	ctx := context.Background()

	eng, cleanup, err := buildEngine(ctx, *dbPath, *lexiconPath)
	if err != nil {
		logging.Error().Err(err).Msg("startup failed")
		os.Exit(1)
	}
	defer cleanup()

	// One-shot mode
	if *query != "" {
		if err := eng.execute(ctx, os.Stdout, *query, *topK); err != nil {
			logging.Error().Err(err).Msg("query failed")
			cleanup()
			os.Exit(1)
		}
		return
	}

	// Interactive mode
	fmt.Println("larder query. Commands:")
	fmt.Println("  ingredient <name> | category <name> | recipe <id> | run <id> | count")
	fmt.Println("Ctrl+D to exit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := eng.execute(ctx, os.Stdout, line, *topK); err != nil {
			fmt.Println("Error:", err)
		}
	}
	fmt.Println()
}

type engine struct {
	store store.Store
	lex   *lexicon.Lexicon
}

var errUnknownCommand = errors.New("unknown command")

// execute runs one "<command> <argument>" line and prints the result.
func (e *engine) execute(ctx context.Context, w io.Writer, line string, topK int) error {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "ingredient", "i":
		name := e.lex.Normalize(arg)
		recipes, err := e.store.RecipesByIngredient(ctx, name, topK)
		if err != nil {
			return fmt.Errorf("recipes by ingredient: %w", err)
		}
		fmt.Fprintf(w, "%q → %q: %d recipe(s)\n", arg, name, len(recipes))
		printRecipes(w, recipes)

	case "category", "c":
		recipes, err := e.store.RecipesByCategory(ctx, strings.ToLower(arg), topK)
		if err != nil {
			return fmt.Errorf("recipes by category: %w", err)
		}
		fmt.Fprintf(w, "%s: %d recipe(s)\n", arg, len(recipes))
		printRecipes(w, recipes)

	case "recipe", "r":
		var id int64
		if _, err := fmt.Sscan(arg, &id); err != nil {
			return fmt.Errorf("%w: recipe id %q", internalerr.ErrInvalidInput, arg)
		}
		r, err := e.store.GetRecipe(ctx, id)
		if err != nil {
			return err
		}
		printRecipe(w, r)

	case "run":
		run, err := e.store.GetRun(ctx, arg)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "run %s (%s)\n", run.ID, run.Input)
		fmt.Fprintf(w, "  %s, %s\n", run.StartedAt.Format(time.RFC3339), run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
		fmt.Fprintf(w, "  rows %d, accepted %d, rejected %d, failed %d\n", run.Rows, run.Accepted, run.Rejected, run.Failed)

		stats, err := e.store.IngredientStats(ctx, run.ID, topK)
		if err != nil {
			return fmt.Errorf("ingredient stats: %w", err)
		}
		fmt.Fprintln(w, "  top ingredients:")
		for _, st := range stats {
			fmt.Fprintf(w, "    %-24s %6d lines in %d recipes, units %v\n", st.Name, st.Count, st.Recipes, st.Units)
			if len(st.Totals) > 0 {
				fmt.Fprintf(w, "    %-24s total %s\n", "", formatTotals(st.Totals))
			}
		}

	case "count":
		n, err := e.store.CountRecipes(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d recipes\n", n)

	default:
		return fmt.Errorf("%w: %q", errUnknownCommand, cmd)
	}
	return nil
}

// formatTotals prints totals in unit order, e.g. "480g 2pieces".
func formatTotals(totals map[string]float64) string {
	keys := slices.Sorted(maps.Keys(totals))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%g%s", totals[k], k)
	}
	return strings.Join(parts, " ")
}

func printRecipes(w io.Writer, recipes []recipe.ImportedRecipe) {
	for _, r := range recipes {
		fmt.Fprintf(w, "  %8d  %s", r.SourceID, r.Name)
		if c := r.CategoryName(); c != "" {
			fmt.Fprintf(w, " [%s]", c)
		}
		fmt.Fprintln(w)
	}
}

func printRecipe(w io.Writer, r recipe.ImportedRecipe) {
	fmt.Fprintf(w, "%d: %s\n", r.SourceID, r.Name)
	if c := r.CategoryName(); c != "" {
		fmt.Fprintf(w, "  category: %s\n", c)
	}
	if len(r.Tags) > 0 {
		fmt.Fprintf(w, "  tags: %s\n", strings.Join(r.Tags, ", "))
	}
	fmt.Fprintf(w, "  serves %d\n", r.Servings)
	for _, ing := range r.Ingredients {
		fmt.Fprintf(w, "  • %s", ing.Name)
		if ing.Quantity != nil {
			fmt.Fprintf(w, " %g", *ing.Quantity)
		}
		if ing.Unit != nil {
			fmt.Fprintf(w, " %s", *ing.Unit)
		}
		fmt.Fprintln(w)
	}
}

func buildEngine(ctx context.Context, dbPath, lexiconPath string) (*engine, func(), error) {
	loader := config.Loader{LexiconPath: lexiconPath}
	components, err := loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	st, err := sqlite.OpenSQLite(ctx, dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	eng := &engine{store: st, lex: components.Normalizer}
	cleanup := func() {
		st.Close()
	}
	return eng, cleanup, nil
}
