// Package pmi scores how strongly two ingredients go together across a
// corpus of recipes using pointwise mutual information.
//
// Scores are computed from the 2x2 table of recipes that use both
// ingredients, only one, or neither. Every cell gets the same additive
// smoothing, which keeps empty cells finite and pulls pairs seen in only a
// few recipes toward zero.
package pmi

import "math"

// DefaultSmoothing is the pseudo-count added to each table cell.
const DefaultSmoothing = 0.5

// Support holds the recipe counts for one ingredient pair.
type Support struct {
	Both    int64 // recipes using both
	A       int64 // recipes using the first ingredient
	B       int64 // recipes using the second ingredient
	Recipes int64 // recipes in the corpus
}

// Valid reports whether the counts can come from a real corpus.
func (s Support) Valid() bool {
	return s.Recipes > 0 && s.Both >= 0 &&
		s.Both <= s.A && s.Both <= s.B &&
		s.A+s.B-s.Both <= s.Recipes
}

// Scorer computes smoothed PMI and NPMI over recipe support.
type Scorer struct {
	k float64
}

// NewScorer returns a scorer adding k to each table cell. k <= 0 uses
// DefaultSmoothing.
func NewScorer(k float64) Scorer {
	if k <= 0 {
		k = DefaultSmoothing
	}
	return Scorer{k: k}
}

// probabilities returns the smoothed joint and marginal probabilities.
func (sc Scorer) probabilities(s Support) (pAB, pA, pB float64) {
	both := float64(s.Both) + sc.k
	onlyA := float64(s.A-s.Both) + sc.k
	onlyB := float64(s.B-s.Both) + sc.k
	total := float64(s.Recipes) + 4*sc.k
	return both / total, (both + onlyA) / total, (both + onlyB) / total
}

// PMI returns log(P(a,b) / (P(a) P(b))). It is positive when the pair is
// used together more often than chance. Invalid support scores 0.
func (sc Scorer) PMI(s Support) float64 {
	if !s.Valid() {
		return 0
	}
	pAB, pA, pB := sc.probabilities(s)
	return math.Log(pAB / (pA * pB))
}

// NPMI returns PMI divided by -log P(a,b), clamped to [-1, 1]. Pairs
// never used together score 0.
func (sc Scorer) NPMI(s Support) float64 {
	if !s.Valid() || s.Both == 0 {
		return 0
	}
	pAB, pA, pB := sc.probabilities(s)
	h := -math.Log(pAB)
	if h == 0 {
		return 0
	}
	v := math.Log(pAB/(pA*pB)) / h
	return math.Max(-1, math.Min(1, v))
}
