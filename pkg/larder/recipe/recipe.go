// Package recipe defines the typed corpus records produced by the import
// pipeline. Records are built once per input row and not mutated afterwards.
package recipe

// MaxTags is the number of display tags a recipe carries at most.
const MaxTags = 4

// ParsedIngredient is one free-text ingredient line broken into parts.
// Name is always lower-case; Raw keeps the original text for auditing.
type ParsedIngredient struct {
	Quantity    *float64 `json:"quantity"`
	Unit        *string  `json:"unit"`
	Name        string   `json:"name"`
	Preparation *string  `json:"preparation"`
	Raw         string   `json:"raw"`
}

// ImportedRecipe is a canonicalized corpus record.
type ImportedRecipe struct {
	SourceID         int64              `json:"sourceId"`
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	Servings         int                `json:"servings"`
	ServingSizeGrams *int               `json:"servingSizeGrams"`
	PrepTimeMinutes  *int               `json:"prepTimeMinutes"`
	CookTimeMinutes  *int               `json:"cookTimeMinutes"`
	TotalTimeMinutes *int               `json:"totalTimeMinutes"`
	Ingredients      []ParsedIngredient `json:"ingredients"`
	Steps            []string           `json:"steps"`
	Tags             []string           `json:"tags"`
	SearchTerms      []string           `json:"searchTerms"`
	Category         *string            `json:"category"`
	Cuisines         []string           `json:"cuisines"`
	DietaryFlags     []string           `json:"dietaryFlags"`
}

// IngredientNames returns the canonical names in line order.
func (r ImportedRecipe) IngredientNames() []string {
	names := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		names = append(names, ing.Name)
	}
	return names
}

// CategoryName returns the derived category or "" when none was derived.
func (r ImportedRecipe) CategoryName() string {
	if r.Category == nil {
		return ""
	}
	return *r.Category
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
