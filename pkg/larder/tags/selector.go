// Package tags classifies free-text recipe tags and picks the short list of
// display tags shown with a recipe.
package tags

import (
	"regexp"
	"strings"

	"github.com/cognicore/larder/pkg/larder/recipe"
)

// Selector picks at most recipe.MaxTags non-redundant display tags.
type Selector struct {
	methods   map[string]struct{}
	dishTypes map[string]struct{}
	meta      map[string]struct{}
	max       int
}

var metaPattern = regexp.MustCompile(`^\d+-(?:minutes|hours|steps|ingredients)-or-less$`)

// NewSelector creates a selector over the given method, dish-type and meta
// tag lists.
func NewSelector(methods, dishTypes, meta []string) *Selector {
	return &Selector{
		methods:   toSet(methods),
		dishTypes: toSet(dishTypes),
		meta:      toSet(meta),
		max:       recipe.MaxTags,
	}
}

// DefaultSelector returns a selector over the built-in tag lists.
func DefaultSelector() *Selector {
	return NewSelector(defaultMethods, defaultDishTypes, defaultMeta)
}

// Extend returns a selector whose lists are the receiver's plus the given
// ones. The receiver is left unchanged.
func (s *Selector) Extend(methods, dishTypes, meta []string) *Selector {
	return &Selector{
		methods:   union(s.methods, methods),
		dishTypes: union(s.dishTypes, dishTypes),
		meta:      union(s.meta, meta),
		max:       s.max,
	}
}

// Select returns display tags in priority order: the first cuisine, the
// first dietary flag, method tags, dish-type tags, then any other tag that
// is not meta. Every candidate must pass accept against the tags already
// chosen.
func (s *Selector) Select(tags, cuisines, dietary []string) []string {
	picked := make([]string, 0, s.max)
	try := func(tag string) bool {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" && accept(tag, picked) {
			picked = append(picked, tag)
		}
		return len(picked) >= s.max
	}

	if len(cuisines) > 0 && try(cuisines[0]) {
		return picked
	}
	if len(dietary) > 0 && try(dietary[0]) {
		return picked
	}
	for _, t := range tags {
		if s.has(s.methods, t) && try(t) {
			return picked
		}
	}
	for _, t := range tags {
		if s.has(s.dishTypes, t) && try(t) {
			return picked
		}
	}
	for _, t := range tags {
		if !s.IsMeta(t) && try(t) {
			return picked
		}
	}
	return picked
}

// IsMeta reports whether a tag describes the corpus rather than the dish.
func (s *Selector) IsMeta(tag string) bool {
	t := strings.ToLower(strings.TrimSpace(tag))
	if _, ok := s.meta[t]; ok {
		return true
	}
	return metaPattern.MatchString(t)
}

func (s *Selector) has(set map[string]struct{}, tag string) bool {
	_, ok := set[strings.ToLower(strings.TrimSpace(tag))]
	return ok
}

// accept applies the redundancy rules to a lower-cased candidate.
func accept(tag string, picked []string) bool {
	for _, p := range picked {
		switch {
		case p == tag:
			return false
		case strings.HasPrefix(tag, "veggie") && p == "vegetarian":
			return false
		case tag == "vegetarian" && strings.HasPrefix(p, "veggie"):
			return false
		case tag == "vegetarian" && p == "vegan":
			return false
		case strings.HasPrefix(tag, "low-") && strings.HasPrefix(p, "low-"):
			return false
		case strings.Contains(p, tag) || strings.Contains(tag, p):
			return false
		}
	}
	return true
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it = strings.ToLower(strings.TrimSpace(it)); it != "" {
			set[it] = struct{}{}
		}
	}
	return set
}

func union(base map[string]struct{}, extra []string) map[string]struct{} {
	out := make(map[string]struct{}, len(base)+len(extra))
	for k := range base {
		out[k] = struct{}{}
	}
	for k := range toSet(extra) {
		out[k] = struct{}{}
	}
	return out
}
