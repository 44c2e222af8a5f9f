package tags

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Classifier derives cuisine, dietary, category and time signals from the
// free-text tags of a recipe. All matching is case-insensitive substring
// containment against keyword lists.
type Classifier struct {
	cuisines   []string
	dietary    []string
	categories []CategoryGroup // evaluated in order, first hit wins
	longCook   []string
}

// CategoryGroup names a category and the keywords that select it.
type CategoryGroup struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Classification is everything the classifier derives for one recipe.
type Classification struct {
	Cuisines         []string
	DietaryFlags     []string
	Category         *string
	TotalTimeMinutes *int
}

// LongCookMinutes is the estimate used when only a slow-cooking keyword is
// present.
const LongCookMinutes = 240

var (
	minutesTag = regexp.MustCompile(`(\d+)-minutes-or-less`)
	hoursTag   = regexp.MustCompile(`(\d+)-hours-or-less`)
)

// NewClassifier creates a classifier with no keywords.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// DefaultClassifier returns a classifier holding the built-in keyword lists.
func DefaultClassifier() *Classifier {
	c := NewClassifier()
	c.AddCuisines(defaultCuisines)
	c.AddDietaryFlags(defaultDietary)
	for _, g := range defaultCategories {
		c.AddCategory(g.Name, g.Keywords)
	}
	c.AddLongCookKeywords(defaultLongCook)
	return c
}

// Keywords holds classifier keyword lists loaded from configuration.
type Keywords struct {
	Cuisines   []string
	Dietary    []string
	Categories []CategoryGroup
	LongCook   []string
}

// DefaultClassifierWith returns a classifier holding extra ahead of the
// built-in lists, so configured category groups win over built-in ones.
func DefaultClassifierWith(extra Keywords) *Classifier {
	c := NewClassifier()
	c.AddCuisines(extra.Cuisines)
	c.AddCuisines(defaultCuisines)
	c.AddDietaryFlags(extra.Dietary)
	c.AddDietaryFlags(defaultDietary)
	for _, g := range extra.Categories {
		c.AddCategory(g.Name, g.Keywords)
	}
	for _, g := range defaultCategories {
		c.AddCategory(g.Name, g.Keywords)
	}
	c.AddLongCookKeywords(extra.LongCook)
	c.AddLongCookKeywords(defaultLongCook)
	return c
}

// AddCuisines appends cuisine keywords not already known.
func (c *Classifier) AddCuisines(keywords []string) {
	c.cuisines = appendNew(c.cuisines, keywords)
}

// AddDietaryFlags appends dietary keywords not already known.
func (c *Classifier) AddDietaryFlags(keywords []string) {
	c.dietary = appendNew(c.dietary, keywords)
}

// AddCategory appends a category group after the existing ones.
func (c *Classifier) AddCategory(name string, keywords []string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return
	}
	c.categories = append(c.categories, CategoryGroup{Name: name, Keywords: lower(keywords)})
}

// AddLongCookKeywords appends keywords that imply a long total time.
func (c *Classifier) AddLongCookKeywords(keywords []string) {
	c.longCook = appendNew(c.longCook, keywords)
}

// Classify runs every derivation over one recipe's tags and search terms.
func (c *Classifier) Classify(tags, searchTerms []string) Classification {
	return Classification{
		Cuisines:         c.Cuisines(tags),
		DietaryFlags:     c.DietaryFlags(tags),
		Category:         c.Category(tags, searchTerms),
		TotalTimeMinutes: c.TotalTime(tags),
	}
}

// Cuisines returns every cuisine keyword contained in a tag, in tag order.
// A keyword hit by several tags appears once per hit.
func (c *Classifier) Cuisines(tags []string) []string {
	return matchAll(tags, c.cuisines)
}

// DietaryFlags returns every dietary keyword contained in a tag, in tag order.
func (c *Classifier) DietaryFlags(tags []string) []string {
	return matchAll(tags, c.dietary)
}

// Category returns the first category group, in group order, with a keyword
// contained in any tag or search term. It returns nil when none matches.
func (c *Classifier) Category(tags, searchTerms []string) *string {
	texts := make([]string, 0, len(tags)+len(searchTerms))
	for _, t := range tags {
		texts = append(texts, strings.ToLower(t))
	}
	for _, t := range searchTerms {
		texts = append(texts, strings.ToLower(t))
	}

	for _, g := range c.categories {
		for _, kw := range g.Keywords {
			for _, text := range texts {
				if strings.Contains(text, kw) {
					name := g.Name
					return &name
				}
			}
		}
	}
	return nil
}

// TotalTime estimates total minutes from time tags. Minute tags win over
// hour tags (the tightest bound is used); a slow-cooking keyword alone gives
// LongCookMinutes. It returns nil when no tag says anything about time.
func (c *Classifier) TotalTime(tags []string) *int {
	best := 0
	for _, t := range tags {
		if m := minutesTag.FindStringSubmatch(strings.ToLower(t)); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 && (best == 0 || n < best) {
				best = n
			}
		}
	}
	if best > 0 {
		return &best
	}

	for _, t := range tags {
		if m := hoursTag.FindStringSubmatch(strings.ToLower(t)); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 && (best == 0 || n*60 < best) {
				best = n * 60
			}
		}
	}
	if best > 0 {
		return &best
	}

	for _, t := range tags {
		lt := strings.ToLower(t)
		for _, kw := range c.longCook {
			if strings.Contains(lt, kw) {
				minutes := LongCookMinutes
				return &minutes
			}
		}
	}
	return nil
}

func matchAll(tags, keywords []string) []string {
	out := []string{}
	for _, t := range tags {
		lt := strings.ToLower(t)
		for _, kw := range keywords {
			if strings.Contains(lt, kw) {
				out = append(out, kw)
			}
		}
	}
	return out
}

func lower(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

func appendNew(dst, keywords []string) []string {
	for _, kw := range lower(keywords) {
		if !slices.Contains(dst, kw) {
			dst = append(dst, kw)
		}
	}
	return dst
}
