package importer

import (
	"regexp"
	"strings"

	"github.com/cognicore/larder/pkg/larder/recipe"
)

// Bounds of the default acceptance filter.
const (
	MinServings    = 2
	MaxServings    = 8
	MinIngredients = 3
	MinSteps       = 2
)

var (
	bareCondiment = regexp.MustCompile(`\b(?:sauce|dressing|marinade|glaze|rub|seasoning)s?\b`)
	withWord      = regexp.MustCompile(`\bwith\b`)
)

// DefaultAccept keeps recipes that make a plausible meal: not a side dish,
// 2 to 8 servings, at least 3 ingredients and 2 steps, and not a bare
// condiment such as "Easy BBQ Sauce" (a name with "with" is kept).
func DefaultAccept(r recipe.ImportedRecipe) bool {
	if r.CategoryName() == "side" {
		return false
	}
	if r.Servings < MinServings || r.Servings > MaxServings {
		return false
	}
	if len(r.Ingredients) < MinIngredients || len(r.Steps) < MinSteps {
		return false
	}
	name := strings.ToLower(r.Name)
	if bareCondiment.MatchString(name) && !withWord.MatchString(name) {
		return false
	}
	return true
}

// AcceptAll keeps every decoded recipe.
func AcceptAll(recipe.ImportedRecipe) bool { return true }

// InCategory keeps recipes whose derived category equals name,
// case-insensitively.
func InCategory(name string) AcceptFunc {
	name = strings.ToLower(strings.TrimSpace(name))
	return func(r recipe.ImportedRecipe) bool {
		return r.CategoryName() == name
	}
}

// All keeps a recipe only when every filter keeps it. Nil filters are
// ignored.
func All(filters ...AcceptFunc) AcceptFunc {
	return func(r recipe.ImportedRecipe) bool {
		for _, f := range filters {
			if f != nil && !f(r) {
				return false
			}
		}
		return true
	}
}
