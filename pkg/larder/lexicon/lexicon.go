package lexicon

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/larder/pkg/larder/internalerr"
)

// Lexicon maps raw ingredient phrases to canonical ingredient names:
//   - Qualifiers: trailing preparation words are stripped ("onion chopped" -> "onion")
//   - Rules: anchored patterns evaluated in order, first match wins
//     ("fresh flat-leaf parsley" -> "parsley")
//   - Synonyms: exact variant lists compiled into rules
//     ("garbanzo beans" -> "chickpeas")
//
// Design principles:
//   - Pure: Normalize depends only on its input and the rule list
//   - Ordered: later, broader rules may be shadowed by earlier ones
//   - Fallback: an unmatched phrase is its own canonical form
//
// A Lexicon is built once and then shared read-only. AddRule and
// AddSynonymGroup are for construction and must not be called after the
// lexicon has been handed to a parser.
type Lexicon struct {
	rules []Rule

	// canonical -> variants, kept for Stats and Variants
	synonyms map[string][]string
}

// Rule maps every phrase matching Pattern as a whole to Canonical.
type Rule struct {
	Pattern   *regexp.Regexp
	Canonical string
}

var (
	trailingParen     = regexp.MustCompile(`\s*\([^()]*\)$`)
	trailingOptional  = regexp.MustCompile(`(?:[,;]?\s+(?:to taste|for garnish|for serving|for frying|for dusting|optional|as needed|if desired|divided|or more|or less|or to taste|plus more|plus extra|more or less))+$`)
	trailingQualifier = regexp.MustCompile(`\s+(?:fresh|freshly|dried|ground|chopped|diced|minced|sliced|shredded|grated|crushed|whole|raw|cooked|uncooked|frozen|thawed|canned|packed|firmly packed|lightly packed|loosely packed|softened|melted|beaten|peeled|halved|quartered|cubed|rinsed|drained|finely|coarsely|roughly|thinly|and)$`)
	spaces            = regexp.MustCompile(`\s+`)
)

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{synonyms: make(map[string][]string)}
}

// defaultRules is the compiled built-in table, shared by every lexicon.
var defaultRules = compile(builtinRules)

// Default returns a lexicon holding the built-in rule table.
func Default() *Lexicon {
	lex := New()
	lex.rules = append(lex.rules, defaultRules...)
	return lex
}

// LoadFromYAML loads curated rules and synonym groups from a YAML file and
// places them ahead of the built-in rules, so they take precedence.
//
// Expected format:
//
//	rules:
//	  - pattern: "tahini|sesame (?:seed )?paste"
//	    canonical: tahini
//	synonyms:
//	  - canonical: chickpeas
//	    variants: [garbanzo beans, garbanzos]
//
// Patterns are matched against the whole phrase; anchors are added here.
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config struct {
		Rules []struct {
			Pattern   string `yaml:"pattern"`
			Canonical string `yaml:"canonical"`
		} `yaml:"rules"`
		Synonyms []struct {
			Canonical string   `yaml:"canonical"`
			Variants  []string `yaml:"variants"`
		} `yaml:"synonyms"`
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	lex := New()
	for i, r := range config.Rules {
		if err := lex.AddRule(r.Pattern, r.Canonical); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
	}
	for _, s := range config.Synonyms {
		lex.AddSynonymGroup(s.Canonical, s.Variants)
	}
	lex.rules = append(lex.rules, defaultRules...)
	return lex, nil
}

// AddRule appends an anchored rule. Rules added earlier win.
func (l *Lexicon) AddRule(pattern, canonical string) error {
	canonical = strings.ToLower(strings.TrimSpace(canonical))
	if strings.TrimSpace(pattern) == "" || canonical == "" {
		return fmt.Errorf("%w: rule needs a pattern and a canonical name", internalerr.ErrInvalidConfig)
	}
	re, err := regexp.Compile(`^(?:` + strings.ToLower(pattern) + `)$`)
	if err != nil {
		return fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	l.rules = append(l.rules, Rule{Pattern: re, Canonical: canonical})
	return nil
}

// AddSynonymGroup appends a rule matching the canonical form or any of its
// variants exactly.
func (l *Lexicon) AddSynonymGroup(canonical string, variants []string) {
	canonical = strings.ToLower(strings.TrimSpace(canonical))
	if canonical == "" {
		return
	}

	normalized := []string{canonical}
	seen := map[string]bool{canonical: true}
	for _, v := range variants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" && !seen[v] {
			normalized = append(normalized, v)
			seen[v] = true
		}
	}
	l.synonyms[canonical] = normalized

	quoted := make([]string, len(normalized))
	for i, v := range normalized {
		quoted[i] = regexp.QuoteMeta(v)
	}
	l.rules = append(l.rules, Rule{
		Pattern:   regexp.MustCompile(`^(?:` + strings.Join(quoted, "|") + `)$`),
		Canonical: canonical,
	})
}

// Normalize returns the canonical name for an ingredient phrase.
// If no rule matches, the cleaned phrase itself is returned.
//
// Examples:
//   - Normalize("fresh flat-leaf parsley") -> "parsley"
//   - Normalize("onion chopped") -> "onion"
//   - Normalize("dragon fruit") -> "dragon fruit"
func (l *Lexicon) Normalize(phrase string) string {
	s := Strip(phrase)
	for _, r := range l.rules {
		if r.Pattern.MatchString(s) {
			return r.Canonical
		}
	}
	return s
}

// Variants returns the synonym group a phrase belongs to, or the
// normalized phrase alone.
func (l *Lexicon) Variants(phrase string) []string {
	canonical := l.Normalize(phrase)
	if v, ok := l.synonyms[canonical]; ok {
		return v
	}
	return []string{canonical}
}

// Strip lower-cases a phrase, folds accents and removes trailing
// qualifiers and optionality markers until none remain.
func Strip(phrase string) string {
	s := fold(strings.ToLower(phrase))
	s = strings.TrimSpace(spaces.ReplaceAllString(s, " "))
	s = strings.Trim(s, " .,;:*")

	for {
		before := s
		s = strings.TrimSpace(trailingParen.ReplaceAllString(s, ""))
		if next := strings.TrimSpace(trailingOptional.ReplaceAllString(s, "")); next != "" {
			s = next
		}
		if next := trailingQualifier.ReplaceAllString(s, ""); next != "" {
			s = next
		}
		s = strings.Trim(s, " .,;:*")
		if s == before || s == "" {
			break
		}
	}
	if s == "" {
		return strings.TrimSpace(strings.ToLower(phrase))
	}
	return s
}

// fold removes combining marks after canonical decomposition, so
// "jalapeño" and "jalapeno" compare equal.
func fold(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, norm.NFKD.String(s))
}

// Stats returns statistics about the lexicon contents.
func (l *Lexicon) Stats() LexiconStats {
	totalVariants := 0
	for _, variants := range l.synonyms {
		totalVariants += len(variants)
	}
	return LexiconStats{
		Rules:         len(l.rules),
		SynonymGroups: len(l.synonyms),
		TotalVariants: totalVariants,
	}
}

// LexiconStats holds statistics about lexicon contents.
type LexiconStats struct {
	Rules         int // Number of ordered rules, synonym groups included
	SynonymGroups int // Number of canonical forms with explicit variants
	TotalVariants int // Total number of variants across all groups
}

func compile(table []builtinRule) []Rule {
	rules := make([]Rule, len(table))
	for i, r := range table {
		rules[i] = Rule{
			Pattern:   regexp.MustCompile(`^(?:` + r.pattern + `)$`),
			Canonical: r.canonical,
		}
	}
	return rules
}
