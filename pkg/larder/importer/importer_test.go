package importer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/rs/zerolog"

	"github.com/cognicore/larder/pkg/larder/internalerr"
	"github.com/cognicore/larder/pkg/larder/recipe"
	"github.com/cognicore/larder/pkg/larder/record"
	"github.com/cognicore/larder/pkg/larder/store/memstore"
	"github.com/cognicore/larder/pkg/larder/units"
)

const header = "id,name,description,ingredients,ingredients_raw_str,serving_size,servings,steps,tags,search_terms\n"

func csvRow(fields ...string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",") + "\n"
}

// fixture holds five rows: two accepted (1, 4), a side dish and a bare
// sauce that the default filter rejects, and one row with a bad id.
func fixture() string {
	return header +
		csvRow("1", "garlic chicken", "weeknight dinner", `c("garlic", "chicken breast", "olive oil")`,
			`c("2 cloves garlic, minced", "1 pound chicken breast", "1 tablespoon olive oil")`,
			"1 (200 g)", "4", `c("brown the chicken", "add garlic")`,
			`c("dinner", "easy", "italian", "30-minutes-or-less")`, `{'dinner'}`) +
		csvRow("2", "buttered peas", "", `c("peas", "butter", "salt")`,
			`c("2 cups peas", "1 tablespoon butter", "salt")`,
			"", "4", `c("boil", "butter")`, `c("side-dishes", "easy")`, `{'side'}`) +
		csvRow("abc", "broken", "", "", "", "", "4", "", "", "") +
		csvRow("4", "lemon bars", "tart", `c("flour", "sugar", "lemon juice")`,
			`c("2 cups all-purpose flour", "1 cup sugar", "1/2 cup lemon juice")`,
			"", "8", "c(\"mix the crust\nand press\", \"bake\")", `c("desserts", "easy")`, `{'dessert'}`) +
		csvRow("5", "easy bbq sauce", "", `c("ketchup", "vinegar", "brown sugar")`,
			`c("1 cup ketchup", "2 tablespoons vinegar", "1/4 cup brown sugar")`,
			"", "4", `c("whisk", "simmer")`, `c("sauces", "easy")`, `{'sauce'}`)
}

func quiet() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func collect(seq func(func(recipe.ImportedRecipe) bool)) []int64 {
	var ids []int64
	for r := range seq {
		ids = append(ids, r.SourceID)
	}
	return ids
}

func TestRecipesFiltersAndCounts(t *testing.T) {
	im := New(Options{Logger: quiet()})

	ids := collect(im.Recipes(context.Background(), strings.NewReader(fixture())))
	if !reflect.DeepEqual(ids, []int64{1, 4}) {
		t.Fatalf("accepted ids = %v, want [1 4]", ids)
	}

	s := im.Summary()
	if s.Rows != 5 || s.Accepted != 2 || s.Rejected != 2 || s.Failed != 1 {
		t.Errorf("counters = rows %d accepted %d rejected %d failed %d", s.Rows, s.Accepted, s.Rejected, s.Failed)
	}
	if s.Stats.TotalRecipes != 2 {
		t.Errorf("aggregate saw %d recipes, want 2", s.Stats.TotalRecipes)
	}
	if _, ok := s.Stats.Ingredients["garlic"]; !ok {
		t.Error("garlic missing from aggregate")
	}
	if _, ok := s.Stats.Ingredients["peas"]; ok {
		t.Error("rejected recipes must not reach the aggregate")
	}
	if s.FinishedAt.Before(s.StartedAt) || s.StartedAt.IsZero() {
		t.Errorf("bad run times %v..%v", s.StartedAt, s.FinishedAt)
	}
	if im.Err() != nil {
		t.Errorf("unexpected run error: %v", im.Err())
	}
}

func TestConverterDensitiesReachTotals(t *testing.T) {
	run := func(conv *units.Converter) float64 {
		im := New(Options{Logger: quiet(), Converter: conv})
		collect(im.Recipes(context.Background(), strings.NewReader(fixture())))
		return im.Summary().Stats.Ingredients["sugar"].Totals["g"]
	}

	if got := run(nil); got != 200 {
		t.Errorf("default sugar grams = %v, want 200", got)
	}
	if got := run(units.NewConverter().WithDensities(map[string]float64{"sugar": 100})); got != 100 {
		t.Errorf("sugar grams with override = %v, want 100", got)
	}
}

func TestHeaderWidthWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	im := New(Options{Logger: &logger})

	short := "id,name,description\n1,soup,hot\n2,stew,thick\n"
	collect(im.Recipes(context.Background(), strings.NewReader(short)))
	if n := strings.Count(buf.String(), "unexpected header width"); n != 1 {
		t.Errorf("expected one header warning, got %d:\n%s", n, buf.String())
	}
	if !strings.Contains(buf.String(), `"columns":3`) {
		t.Errorf("warning should carry the column count:\n%s", buf.String())
	}

	buf.Reset()
	ok := New(Options{Logger: &logger})
	collect(ok.Recipes(context.Background(), strings.NewReader(fixture())))
	if strings.Contains(buf.String(), "unexpected header width") {
		t.Error("export header should not warn")
	}
}

func TestRecipesMultilineField(t *testing.T) {
	im := New(Options{Accept: AcceptAll, Logger: quiet()})
	for r := range im.Recipes(context.Background(), strings.NewReader(fixture())) {
		if r.SourceID != 4 {
			continue
		}
		if len(r.Steps) != 2 || r.Steps[0] != "mix the crust and press" {
			t.Errorf("record split across lines was not reassembled: %q", r.Steps)
		}
		return
	}
	t.Fatal("recipe 4 not emitted")
}

func TestProgressCadence(t *testing.T) {
	var calls []Progress
	im := New(Options{
		Logger:        quiet(),
		ProgressEvery: 2,
		Progress:      func(p Progress) { calls = append(calls, p) },
	})
	collect(im.Recipes(context.Background(), strings.NewReader(fixture())))

	if len(calls) != 3 {
		t.Fatalf("expected 3 progress calls, got %d: %+v", len(calls), calls)
	}
	if calls[0].Rows != 2 || calls[1].Rows != 4 {
		t.Errorf("cadence rows = %d, %d", calls[0].Rows, calls[1].Rows)
	}
	last := calls[2]
	if !last.Done || last.Rows != 5 || last.Accepted != 2 || last.RunID != im.RunID() {
		t.Errorf("final progress = %+v", last)
	}
}

func TestLimitStopsEarly(t *testing.T) {
	im := New(Options{Limit: 1, Logger: quiet()})
	ids := collect(im.Recipes(context.Background(), strings.NewReader(fixture())))
	if !reflect.DeepEqual(ids, []int64{1}) {
		t.Fatalf("ids = %v, want [1]", ids)
	}
	if rows := im.Summary().Rows; rows != 1 {
		t.Errorf("rows read after limit: %d", rows)
	}
}

func TestBreakEndsRun(t *testing.T) {
	done := false
	im := New(Options{
		Logger:   quiet(),
		Progress: func(p Progress) { done = done || p.Done },
	})
	for range im.Recipes(context.Background(), strings.NewReader(fixture())) {
		break
	}
	if !done {
		t.Error("final progress not reported after break")
	}
	if got := im.Summary().Accepted; got != 1 {
		t.Errorf("accepted = %d, want 1", got)
	}

	// single use
	if ids := collect(im.Recipes(context.Background(), strings.NewReader(fixture()))); len(ids) != 0 {
		t.Errorf("second run emitted %v", ids)
	}
}

type panicky struct{}

func (panicky) Decode(rec record.Record) (recipe.ImportedRecipe, error) {
	if rec.Fields[0] == "4" {
		panic("boom")
	}
	return recipe.ImportedRecipe{SourceID: 1}, nil
}

func TestPanicIsRowFailure(t *testing.T) {
	im := New(Options{Decoder: panicky{}, Accept: AcceptAll, Logger: quiet()})
	ids := collect(im.Recipes(context.Background(), strings.NewReader(fixture())))
	if len(ids) != 4 {
		t.Errorf("expected 4 recipes around the panic, got %d", len(ids))
	}
	if f := im.Summary().Failed; f != 1 {
		t.Errorf("failed = %d, want 1", f)
	}
}

func TestReadErrorIsReported(t *testing.T) {
	im := New(Options{Logger: quiet()})
	readErr := errors.New("disk gone")
	ids := collect(im.Recipes(context.Background(), iotest.ErrReader(readErr)))
	if len(ids) != 0 {
		t.Errorf("unexpected recipes: %v", ids)
	}
	if !errors.Is(im.Err(), internalerr.ErrInputUnavailable) || !errors.Is(im.Err(), readErr) {
		t.Errorf("Err = %v", im.Err())
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	im := New(Options{Logger: quiet()})
	if ids := collect(im.Recipes(ctx, strings.NewReader(fixture()))); len(ids) != 0 {
		t.Errorf("cancelled run emitted %v", ids)
	}
	if !errors.Is(im.Err(), context.Canceled) {
		t.Errorf("Err = %v", im.Err())
	}
}

func TestStorePersistsRun(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	im := New(Options{Store: st, Logger: quiet()})
	collect(im.Recipes(ctx, strings.NewReader(fixture())))

	if n, _ := st.CountRecipes(ctx); n != 2 {
		t.Errorf("stored %d recipes, want 2", n)
	}
	run, err := st.GetRun(ctx, im.RunID())
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.Rows != 5 || run.Accepted != 2 || run.Failed != 1 || run.FinishedAt.IsZero() {
		t.Errorf("run = %+v", run)
	}
	stats, err := st.IngredientStats(ctx, im.RunID(), 100)
	if err != nil {
		t.Fatalf("IngredientStats: %v", err)
	}
	want := len(im.Summary().Stats.Ingredients)
	if want == 0 || len(stats) != want {
		t.Errorf("stored %d ingredient stats, want %d", len(stats), want)
	}
}

func TestOpen(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.csv"), Options{}); !errors.Is(err, internalerr.ErrInputUnavailable) {
		t.Fatalf("expected ErrInputUnavailable, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "recipes.csv")
	if err := os.WriteFile(path, []byte(fixture()), 0644); err != nil {
		t.Fatal(err)
	}
	run, err := Open(path, Options{Logger: quiet()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ids := collect(run.Recipes(context.Background()))
	if !reflect.DeepEqual(ids, []int64{1, 4}) {
		t.Errorf("ids = %v", ids)
	}
	if run.Summary().Input != path {
		t.Errorf("input = %q", run.Summary().Input)
	}
	if _, err := run.f.Read(make([]byte, 1)); err == nil || err == io.EOF {
		t.Error("file should be closed once the sequence ends")
	}
	if err := run.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
