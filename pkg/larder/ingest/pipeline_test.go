package ingest

import (
	"errors"
	"reflect"
	"testing"

	"github.com/cognicore/larder/pkg/larder/internalerr"
	"github.com/cognicore/larder/pkg/larder/record"
)

func sampleFields() []string {
	return []string{
		"38",
		"low-fat  berry blue frozen dessert",
		"this is yummy &amp; low-fat",
		`c("blueberries", "granulated sugar", "vanilla yogurt", "lemon juice")`,
		`c("4 cups blueberries, fresh or frozen", "1/4 cup granulated sugar", "1 cup vanilla yogurt", "1 tablespoon lemon juice")`,
		"1 (155 g)",
		"4",
		`c("toss berries with sugar", "freeze")`,
		`c("weeknight", "time-to-make", "frozen-desserts", "low-fat", "dietary", "desserts", "30-minutes-or-less")`,
		`{'dessert', 'low-fat', 'dessert'}`,
	}
}

func TestPipelineDecode(t *testing.T) {
	p := NewPipeline(nil, nil, nil)

	got, err := p.Decode(record.Record{Line: 2, Fields: sampleFields()})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.SourceID != 38 {
		t.Errorf("SourceID = %d", got.SourceID)
	}
	if got.Name != "low-fat berry blue frozen dessert" {
		t.Errorf("Name = %q", got.Name)
	}
	if got.Description != "this is yummy & low-fat" {
		t.Errorf("Description = %q", got.Description)
	}
	if got.Servings != 4 {
		t.Errorf("Servings = %d", got.Servings)
	}
	if got.ServingSizeGrams == nil || *got.ServingSizeGrams != 155 {
		t.Errorf("ServingSizeGrams = %v", got.ServingSizeGrams)
	}
	if got.TotalTimeMinutes == nil || *got.TotalTimeMinutes != 30 {
		t.Errorf("TotalTimeMinutes = %v", got.TotalTimeMinutes)
	}
	if got.PrepTimeMinutes != nil || got.CookTimeMinutes != nil {
		t.Error("prep and cook times are not in the export and should be nil")
	}

	if len(got.Ingredients) != 4 {
		t.Fatalf("expected 4 ingredients, got %d", len(got.Ingredients))
	}
	names := got.IngredientNames()
	wantNames := []string{"blueberries", "sugar", "vanilla yogurt", "lemon juice"}
	if !reflect.DeepEqual(names, wantNames) {
		t.Errorf("ingredient names = %v, want %v", names, wantNames)
	}
	if prep := got.Ingredients[0].Preparation; prep == nil || *prep != "fresh or frozen" {
		t.Errorf("first preparation = %v", prep)
	}

	if !reflect.DeepEqual(got.Steps, []string{"toss berries with sugar", "freeze"}) {
		t.Errorf("Steps = %v", got.Steps)
	}
	if !reflect.DeepEqual(got.SearchTerms, []string{"dessert", "low-fat"}) {
		t.Errorf("SearchTerms = %v", got.SearchTerms)
	}
	if got.CategoryName() != "dessert" {
		t.Errorf("Category = %q, want dessert", got.CategoryName())
	}
	if !reflect.DeepEqual(got.DietaryFlags, []string{"low-fat"}) {
		t.Errorf("DietaryFlags = %v", got.DietaryFlags)
	}
	if len(got.Cuisines) != 0 {
		t.Errorf("Cuisines = %v, want none", got.Cuisines)
	}
	wantTags := []string{"low-fat", "weeknight", "frozen-desserts"}
	if !reflect.DeepEqual(got.Tags, wantTags) {
		t.Errorf("Tags = %v, want %v", got.Tags, wantTags)
	}
}

func TestPipelineFallsBackToIngredientNames(t *testing.T) {
	fields := sampleFields()
	fields[ColIngredientsRaw] = "character(0)"

	got, err := NewPipeline(nil, nil, nil).Decode(record.Record{Line: 2, Fields: fields})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Ingredients) != 4 || got.Ingredients[1].Name != "sugar" {
		t.Errorf("fallback ingredients = %+v", got.Ingredients)
	}
	if got.Ingredients[0].Quantity != nil {
		t.Error("name-only lines should have no quantity")
	}
}

func TestPipelineMalformedRows(t *testing.T) {
	p := NewPipeline(nil, nil, nil)

	tests := []struct {
		name   string
		mutate func([]string) []string
	}{
		{"missing id", func(f []string) []string { f[ColID] = ""; return f }},
		{"non-numeric id", func(f []string) []string { f[ColID] = "abc"; return f }},
		{"missing name", func(f []string) []string { f[ColName] = "  "; return f }},
		{"bad servings", func(f []string) []string { f[ColServings] = "four"; return f }},
		{"fractional servings", func(f []string) []string { f[ColServings] = "2.5"; return f }},
		{"too short", func(f []string) []string { return f[:1] }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Decode(record.Record{Line: 7, Fields: tt.mutate(sampleFields())})
			if !errors.Is(err, internalerr.ErrMalformedRow) {
				t.Errorf("expected ErrMalformedRow, got %v", err)
			}
		})
	}
}

func TestPipelineToleratesShortRows(t *testing.T) {
	got, err := NewPipeline(nil, nil, nil).Decode(record.Record{Line: 3, Fields: []string{"5", "toast"}})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Servings != 0 || len(got.Ingredients) != 0 || len(got.Steps) != 0 {
		t.Errorf("unexpected recipe from short row: %+v", got)
	}
	if got.Category != nil || got.ServingSizeGrams != nil {
		t.Error("optional fields should be nil")
	}
}

func TestServingSizeGrams(t *testing.T) {
	tests := map[string]int{
		"1 (155 g)":  155,
		"1 (82g)":    82,
		"1 (0 g)":    0,
		"":           0,
		"one plate":  0,
		"2 (1234 g)": 1234,
	}
	for in, want := range tests {
		got := ServingSizeGrams(in)
		switch {
		case want == 0 && got != nil:
			t.Errorf("ServingSizeGrams(%q) = %d, want nil", in, *got)
		case want != 0 && (got == nil || *got != want):
			t.Errorf("ServingSizeGrams(%q) = %v, want %d", in, got, want)
		}
	}
}

func TestRowValidateAcceptsIntegralFloatServings(t *testing.T) {
	fields := sampleFields()
	fields[ColServings] = "6.0"
	row := NewRow(2, fields)
	if err := row.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if n, _ := parseServings(row.Servings); n != 6 {
		t.Errorf("servings = %d, want 6", n)
	}
}
