package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/cognicore/larder/pkg/larder/literal"
	"github.com/cognicore/larder/pkg/larder/recipe"
	"github.com/cognicore/larder/pkg/larder/record"
	"github.com/cognicore/larder/pkg/larder/tags"
)

// Pipeline turns one export record into a recipe:
// cells → literal decoding → ingredient parsing → tag classification → tag selection
type Pipeline struct {
	parser     *Parser
	classifier *tags.Classifier
	selector   *tags.Selector
}

var servingGrams = regexp.MustCompile(`\((\d+)\s*g\)`)

// NewPipeline creates a row pipeline with the given components. Nil
// components are replaced by the built-in defaults.
func NewPipeline(parser *Parser, classifier *tags.Classifier, selector *tags.Selector) *Pipeline {
	if parser == nil {
		parser = NewParser(nil)
	}
	if classifier == nil {
		classifier = tags.DefaultClassifier()
	}
	if selector == nil {
		selector = tags.DefaultSelector()
	}
	return &Pipeline{
		parser:     parser,
		classifier: classifier,
		selector:   selector,
	}
}

// Decode builds a recipe from a record. The error wraps
// internalerr.ErrMalformedRow when the record lacks an integer id or a name.
func (p *Pipeline) Decode(rec record.Record) (recipe.ImportedRecipe, error) {
	row := NewRow(rec.Line, rec.Fields)
	if err := row.Validate(); err != nil {
		return recipe.ImportedRecipe{}, err
	}
	return p.Process(row), nil
}

// Process builds a recipe from a validated row.
func (p *Pipeline) Process(row Row) recipe.ImportedRecipe {
	id, _ := strconv.ParseInt(row.ID, 10, 64)
	servings, _ := parseServings(row.Servings)

	// 1. Ingredients: full lines, falling back to bare names
	lines := literal.DecodeList(row.IngredientsRaw)
	if len(lines) == 0 {
		lines = literal.DecodeList(row.Ingredients)
	}
	ingredients := p.parser.ParseAll(lines)

	// 2. Steps and search terms
	steps := cleanAll(literal.DecodeList(row.Steps))
	searchTerms := dedupe(cleanAll(literal.DecodeSet(row.SearchTerms)))

	// 3. Tag classification and selection
	rawTags := cleanAll(literal.DecodeList(row.Tags))
	cl := p.classifier.Classify(rawTags, searchTerms)

	return recipe.ImportedRecipe{
		SourceID:         id,
		Name:             clean(row.Name),
		Description:      clean(row.Description),
		Servings:         servings,
		ServingSizeGrams: ServingSizeGrams(row.ServingSize),
		TotalTimeMinutes: cl.TotalTimeMinutes,
		Ingredients:      ingredients,
		Steps:            steps,
		Tags:             p.selector.Select(rawTags, cl.Cuisines, cl.DietaryFlags),
		SearchTerms:      searchTerms,
		Category:         cl.Category,
		Cuisines:         cl.Cuisines,
		DietaryFlags:     cl.DietaryFlags,
	}
}

// ServingSizeGrams extracts the gram weight from cells like "1 (155 g)".
func ServingSizeGrams(cell string) *int {
	m := servingGrams.FindStringSubmatch(cell)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

// clean unescapes HTML entities and collapses whitespace.
func clean(s string) string {
	return strings.TrimSpace(spaces.ReplaceAllString(html.UnescapeString(s), " "))
}

func cleanAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = clean(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, it := range items {
		key := strings.ToLower(it)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}
