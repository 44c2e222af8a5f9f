package ingest

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cognicore/larder/pkg/larder/internalerr"
)

// Column positions of the recipe export. Header names are not consulted.
const (
	ColID = iota
	ColName
	ColDescription
	ColIngredients
	ColIngredientsRaw
	ColServingSize
	ColServings
	ColSteps
	ColTags
	ColSearchTerms

	NumColumns
)

// Columns is the expected header, in order.
var Columns = []string{
	"id", "name", "description", "ingredients", "ingredients_raw_str",
	"serving_size", "servings", "steps", "tags", "search_terms",
}

// Row is one export record split into its raw cells.
type Row struct {
	Line           int
	ID             string
	Name           string
	Description    string
	Ingredients    string // list literal of bare ingredient names
	IngredientsRaw string // list literal of full ingredient lines
	ServingSize    string
	Servings       string
	Steps          string
	Tags           string
	SearchTerms    string // set literal
}

// NewRow maps positional fields onto a Row. Missing trailing fields are
// empty.
func NewRow(line int, fields []string) Row {
	get := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}
	return Row{
		Line:           line,
		ID:             strings.TrimSpace(get(ColID)),
		Name:           get(ColName),
		Description:    get(ColDescription),
		Ingredients:    get(ColIngredients),
		IngredientsRaw: get(ColIngredientsRaw),
		ServingSize:    get(ColServingSize),
		Servings:       strings.TrimSpace(get(ColServings)),
		Steps:          get(ColSteps),
		Tags:           get(ColTags),
		SearchTerms:    get(ColSearchTerms),
	}
}

// Validate checks the cells a recipe cannot be built without.
func (r *Row) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: line %d: id is required", internalerr.ErrMalformedRow, r.Line)
	}
	if _, err := strconv.ParseInt(r.ID, 10, 64); err != nil {
		return fmt.Errorf("%w: line %d: id %q is not an integer", internalerr.ErrMalformedRow, r.Line, r.ID)
	}

	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: line %d: name is required", internalerr.ErrMalformedRow, r.Line)
	}

	if r.Servings != "" {
		if _, err := parseServings(r.Servings); err != nil {
			return fmt.Errorf("%w: line %d: servings %q: %v", internalerr.ErrMalformedRow, r.Line, r.Servings, err)
		}
	}
	return nil
}

// parseServings accepts integers and integral floats ("4", "4.0").
func parseServings(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, errors.New("not a whole number")
	}
	return int(f), nil
}
