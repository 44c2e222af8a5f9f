package pmi

import (
	"iter"
	"sort"
)

// Counter maintains per-recipe ingredient co-occurrence counts.
type Counter struct {
	n     int64            // recipes seen
	nx    map[string]int64 // recipes per ingredient
	pairs map[Pair]int64   // recipes per ingredient pair
}

// Pair is an unordered ingredient pair stored with A < B.
type Pair struct {
	A, B string
}

// NewPair returns the canonical ordering of a and b.
func NewPair(a, b string) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// NewCounter creates an empty co-occurrence counter
func NewCounter() *Counter {
	return &Counter{
		nx:    make(map[string]int64),
		pairs: make(map[Pair]int64),
	}
}

// AddRecipe counts one recipe's ingredients. Duplicates and empty names
// are ignored.
func (c *Counter) AddRecipe(ingredients []string) {
	c.n++

	seen := make(map[string]struct{}, len(ingredients))
	unique := make([]string, 0, len(ingredients))
	for _, name := range ingredients {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
		c.nx[name]++
	}

	sort.Strings(unique)
	for i := 0; i < len(unique); i++ {
		for j := i + 1; j < len(unique); j++ {
			c.pairs[Pair{A: unique[i], B: unique[j]}]++
		}
	}
}

// PairCount returns how many recipes use both a and b.
func (c *Counter) PairCount(a, b string) int64 {
	return c.pairs[NewPair(a, b)]
}

// Count returns how many recipes use name.
func (c *Counter) Count(name string) int64 {
	return c.nx[name]
}

// Total returns the number of recipes counted.
func (c *Counter) Total() int64 {
	return c.n
}

// Support returns the recipe counts of a pair.
func (c *Counter) Support(p Pair) Support {
	return Support{Both: c.pairs[p], A: c.nx[p.A], B: c.nx[p.B], Recipes: c.n}
}

// Pairs yields every pair seen together with its support, in no particular
// order.
func (c *Counter) Pairs() iter.Seq2[Pair, Support] {
	return func(yield func(Pair, Support) bool) {
		for p := range c.pairs {
			if !yield(p, c.Support(p)) {
				return
			}
		}
	}
}

// UniquePairs returns the number of distinct pairs.
func (c *Counter) UniquePairs() int {
	return len(c.pairs)
}
