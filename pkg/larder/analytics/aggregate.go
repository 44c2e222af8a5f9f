// Package analytics accumulates ingredient statistics over one import run.
package analytics

import (
	"math"
	"sort"

	"github.com/cognicore/larder/pkg/larder/pmi"
	"github.com/cognicore/larder/pkg/larder/recipe"
	"github.com/cognicore/larder/pkg/larder/units"
)

// Aggregate counts canonical ingredients across accepted recipes. It is
// owned by a single run and is not safe for concurrent use.
type Aggregate struct {
	conv         *units.Converter
	totalRecipes int64
	counts       map[string]int64
	units        map[string]map[string]struct{}
	categories   map[string]map[string]struct{}
	totals       map[string]map[string]float64 // name -> metric unit -> amount
	unconverted  map[string]int64
	cooccurrence *pmi.Counter
}

// NewAggregate creates an empty aggregate. conv converts ingredient
// quantities to metric totals and supplies profiles; with a nil conv
// neither is recorded.
func NewAggregate(conv *units.Converter) *Aggregate {
	return &Aggregate{
		conv:         conv,
		counts:       make(map[string]int64),
		units:        make(map[string]map[string]struct{}),
		categories:   make(map[string]map[string]struct{}),
		totals:       make(map[string]map[string]float64),
		unconverted:  make(map[string]int64),
		cooccurrence: pmi.NewCounter(),
	}
}

// Add records one recipe. Every ingredient line counts once toward its
// canonical name; observed units and the recipe category are collected as
// sets, and measured lines are summed in metric units.
func (a *Aggregate) Add(r recipe.ImportedRecipe) {
	a.totalRecipes++
	category := r.CategoryName()

	names := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if ing.Name == "" {
			continue
		}
		names = append(names, ing.Name)
		a.counts[ing.Name]++

		if ing.Unit != nil && *ing.Unit != "" {
			addTo(a.units, ing.Name, *ing.Unit)
		}
		if category != "" {
			addTo(a.categories, ing.Name, category)
		}
		a.measure(ing)
	}
	a.cooccurrence.AddRecipe(names)
}

// measure adds a line's metric amount to its name's totals. A quantity
// without a unit counts as pieces ("2 eggs").
func (a *Aggregate) measure(ing recipe.ParsedIngredient) {
	if a.conv == nil || ing.Quantity == nil {
		return
	}
	m := units.Metric{Value: *ing.Quantity, Unit: units.Pieces}
	if ing.Unit != nil {
		var ok bool
		if m, ok = a.conv.Convert(*ing.Quantity, *ing.Unit, ing.Name); !ok {
			a.unconverted[ing.Name]++
			return
		}
	}
	t := a.totals[ing.Name]
	if t == nil {
		t = make(map[string]float64)
		a.totals[ing.Name] = t
	}
	t[m.Unit] += m.Value
}

// TotalRecipes returns the number of recipes added.
func (a *Aggregate) TotalRecipes() int64 {
	return a.totalRecipes
}

// Len returns the number of distinct canonical names seen.
func (a *Aggregate) Len() int {
	return len(a.counts)
}

// IngredientStat is the aggregate entry of one canonical name.
type IngredientStat struct {
	Name       string         `json:"name"`
	Count      int64          `json:"count"`
	Recipes    int64          `json:"recipes"`
	Units      []string       `json:"units"`
	Categories []string       `json:"categories"`
	Profile    *units.Profile `json:"profile,omitempty"`

	// Totals sums measured lines by metric unit (g, ml, pieces).
	// Unconverted counts lines whose unit has no metric equivalent.
	Totals      map[string]float64 `json:"totals,omitempty"`
	Unconverted int64              `json:"unconverted,omitempty"`
}

// Stats is a point-in-time copy of an aggregate.
type Stats struct {
	TotalRecipes int64
	Ingredients  map[string]IngredientStat

	counter *pmi.Counter
}

// Snapshot returns a copy of the per-ingredient statistics. TopPairings on
// the result reads the aggregate's co-occurrence counter, so take snapshots
// once a run is complete.
func (a *Aggregate) Snapshot() Stats {
	out := make(map[string]IngredientStat, len(a.counts))
	for name, count := range a.counts {
		st := IngredientStat{
			Name:        name,
			Count:       count,
			Recipes:     a.cooccurrence.Count(name),
			Units:       sortedKeys(a.units[name]),
			Categories:  sortedKeys(a.categories[name]),
			Unconverted: a.unconverted[name],
		}
		if t := a.totals[name]; len(t) > 0 {
			st.Totals = make(map[string]float64, len(t))
			for u, v := range t {
				st.Totals[u] = math.Round(v*100) / 100
			}
		}
		if a.conv != nil {
			if p, ok := a.conv.Profile(name); ok {
				st.Profile = &p
			}
		}
		out[name] = st
	}
	return Stats{
		TotalRecipes: a.totalRecipes,
		Ingredients:  out,
		counter:      a.cooccurrence,
	}
}

// TopIngredients returns entries ordered by count, then name.
func (s Stats) TopIngredients(limit int) []IngredientStat {
	list := make([]IngredientStat, 0, len(s.Ingredients))
	for _, st := range s.Ingredients {
		list = append(list, st)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Count == list[j].Count {
			return list[i].Name < list[j].Name
		}
		return list[i].Count > list[j].Count
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}

// Pairing describes how strongly two ingredients go together.
type Pairing struct {
	A       string  `json:"a"`
	B       string  `json:"b"`
	PMI     float64 `json:"pmi"`
	NPMI    float64 `json:"npmi"`
	Support int64   `json:"support"` // recipes using both
}

// TopPairings returns ingredient pairs used together in at least minSupport
// recipes, ranked by PMI, then support.
func (s Stats) TopPairings(limit int, minSupport int64) []Pairing {
	if s.counter == nil || s.TotalRecipes == 0 {
		return nil
	}
	if minSupport < 1 {
		minSupport = 1
	}

	scorer := pmi.NewScorer(pmi.DefaultSmoothing)
	var out []Pairing
	for p, sup := range s.counter.Pairs() {
		if sup.Both < minSupport {
			continue
		}
		out = append(out, Pairing{
			A:       p.A,
			B:       p.B,
			PMI:     scorer.PMI(sup),
			NPMI:    scorer.NPMI(sup),
			Support: sup.Both,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].PMI != out[j].PMI {
			return out[i].PMI > out[j].PMI
		}
		if out[i].Support != out[j].Support {
			return out[i].Support > out[j].Support
		}
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func addTo(m map[string]map[string]struct{}, key, value string) {
	set := m[key]
	if set == nil {
		set = make(map[string]struct{})
		m[key] = set
	}
	set[value] = struct{}{}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
