package lexicon

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/larder/pkg/larder/internalerr"
)

func TestLexiconNew(t *testing.T) {
	lex := New()
	if lex == nil {
		t.Fatal("New() returned nil")
	}

	stats := lex.Stats()
	if stats.Rules != 0 || stats.SynonymGroups != 0 {
		t.Errorf("New lexicon should be empty, got %+v", stats)
	}
	if got := lex.Normalize("Fresh Parsley"); got != "fresh parsley" {
		t.Errorf("empty lexicon Normalize = %q, want the stripped phrase", got)
	}
}

func TestDefaultNormalize(t *testing.T) {
	lex := Default()

	tests := []struct {
		input string
		want  string
	}{
		{"fresh parsley", "parsley"},
		{"Fresh Flat-Leaf Parsley", "parsley"},
		{"onion chopped", "onion"},
		{"salt to taste", "salt"},
		{"jalapeño", "jalapeno"},
		{"jalapeno peppers", "jalapeno"},
		{"all-purpose flour", "all-purpose flour"},
		{"flour", "all-purpose flour"},
		{"diced tomatoes", "diced tomatoes"},
		{"garlic cloves, minced", "garlic"},
		{"butter (softened)", "butter"},
		{"eggs, beaten", "egg"},
		{"black pepper, freshly ground", "black pepper"},
		{"garlic powder", "garlic powder"},
		{"red onion", "red onion"},
		{"peanut butter", "peanut butter"},
		{"parmesan cheese, for garnish", "parmesan cheese"},
		{"dragon fruit", "dragon fruit"},
	}

	for _, tt := range tests {
		if got := lex.Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeIsPure(t *testing.T) {
	lex := Default()
	first := lex.Normalize("2 Tbsp Olive Oil")
	second := lex.Normalize("2 Tbsp Olive Oil")
	if first != second {
		t.Errorf("Normalize not deterministic: %q vs %q", first, second)
	}
}

func TestDefaultLexiconsAreIndependent(t *testing.T) {
	a := Default()
	if err := a.AddRule("tahini|sesame paste", "tahini"); err != nil {
		t.Fatal(err)
	}

	b := Default()
	if got := b.Normalize("sesame paste"); got != "sesame paste" {
		t.Errorf("rule leaked into another lexicon: %q", got)
	}
	if got := a.Normalize("sesame paste"); got != "tahini" {
		t.Errorf("a.Normalize('sesame paste') = %q, want tahini", got)
	}
}

func TestStrip(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Sugar.  ", "sugar"},
		{"milk, divided", "milk"},
		{"cheddar cheese (about 2 cups)", "cheddar cheese"},
		{"potato taste", "potato taste"},
		{"chopped", "chopped"},
		{"crème fraîche", "creme fraiche"},
	}
	for _, tt := range tests {
		if got := Strip(tt.input); got != tt.want {
			t.Errorf("Strip(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLexiconAddSynonymGroup(t *testing.T) {
	lex := New()
	lex.AddSynonymGroup("chickpeas", []string{"garbanzo beans", "Garbanzos", "chickpeas"})

	if got := lex.Normalize("garbanzos"); got != "chickpeas" {
		t.Errorf("Normalize('garbanzos') = %q, want chickpeas", got)
	}

	variants := lex.Variants("garbanzo beans")
	if len(variants) != 3 {
		t.Errorf("Variants('garbanzo beans') = %v, want 3 entries", variants)
	}

	stats := lex.Stats()
	if stats.Rules != 1 || stats.SynonymGroups != 1 || stats.TotalVariants != 3 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestVariantsUnknown(t *testing.T) {
	lex := New()
	got := lex.Variants("Saffron")
	if len(got) != 1 || got[0] != "saffron" {
		t.Errorf("Variants('Saffron') = %v", got)
	}
}

func TestAddRuleInvalid(t *testing.T) {
	lex := New()

	err := lex.AddRule("(unclosed", "x")
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	err = lex.AddRule("tahini", " ")
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for empty canonical, got %v", err)
	}
}

func TestLoadFromYAML(t *testing.T) {
	content := `rules:
  - pattern: "(?:fresh )?parsley"
    canonical: Italian Parsley
synonyms:
  - canonical: chickpeas
    variants: [ceci beans, ceci]
`
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	lex, err := LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML: %v", err)
	}

	if got := lex.Normalize("fresh parsley"); got != "italian parsley" {
		t.Errorf("custom rule should win over built-ins, got %q", got)
	}
	if got := lex.Normalize("ceci"); got != "chickpeas" {
		t.Errorf("Normalize('ceci') = %q, want chickpeas", got)
	}
	if got := lex.Normalize("eggs"); got != "egg" {
		t.Errorf("built-in rules missing after load, got %q", got)
	}
}

func TestLoadFromYAMLErrors(t *testing.T) {
	if _, err := LoadFromYAML(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("rules:\n  - pattern: \"[\"\n    canonical: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFromYAML(path)
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
