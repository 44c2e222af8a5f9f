package ingest

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/cognicore/larder/pkg/larder/lexicon"
	"github.com/cognicore/larder/pkg/larder/recipe"
	"github.com/cognicore/larder/pkg/larder/units"
)

var (
	spaces = regexp.MustCompile(`\s+`)

	// "(14 ounce) can", "(8-oz) packages", "(1 1/2 lb)"
	containerSize = regexp.MustCompile(`^\(\s*(` + number + `)\s*-?\s*([a-z][a-z. ]*?)\s*\)\s*(?:(?:cans?|bottles?|packages?|pkgs?|packets?|bags?|box(?:es)?|jars?)\.?(?:\s+|$))?`)

	unitPrefix = regexp.MustCompile(`^(teaspoons?|tsps?|tablespoons?|tbsps?|tbls?|tbs|cups?|fluid ounces?|fl\.? ?oz\.?|pints?|pts?|quarts?|qts?|gallons?|gals?|millilit(?:er|re)s?|mls?|centilit(?:er|re)s?|cl|decilit(?:er|re)s?|dl|lit(?:er|re)s?|pinch(?:es)?|dash(?:es)?|milligrams?|mg|kilograms?|kgs?|grams?|gr|g|ounces?|oz|pounds?|lbs?|pieces?|pcs?|cloves?|bunch(?:es)?|slices?|cans?|packages?|pkgs?|packets?|jars?|bottles?|bags?|box(?:es)?|stalks?|sprigs?|heads?|sticks?|leaves|leaf|fillets?|strips?|ears?|envelopes?|loaf|loaves|[tcl])\.?(?:\s+|$)`)

	sizeAfterUnit = regexp.MustCompile(`^\(\s*(` + number + `)\s*-?\s*([a-z][a-z. ]*?)\s*\)\s*`)
	leadingParen  = regexp.MustCompile(`^\([^()]*\)\s*`)
	leadingOf     = regexp.MustCompile(`^of\s+`)
)

// Parser breaks free-text ingredient lines into quantity, unit, name and
// preparation. It holds no mutable state and is safe to share.
type Parser struct {
	lex *lexicon.Lexicon
}

// NewParser creates a parser that canonicalizes names with lex.
func NewParser(lex *lexicon.Lexicon) *Parser {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Parser{lex: lex}
}

// Parse parses one ingredient line. It never fails: text it cannot make
// sense of ends up in Name.
//
//	"1 (14 ounce) can diced tomatoes, drained"
//	  -> {Quantity: 14, Unit: "ounce", Name: "diced tomatoes", Preparation: "drained"}
func (p *Parser) Parse(line string) recipe.ParsedIngredient {
	out := recipe.ParsedIngredient{Raw: line}

	text := strings.TrimSpace(html.UnescapeString(line))
	if len([]rune(text)) < 2 {
		out.Name = strings.ToLower(text)
		return out
	}

	if head, prep, found := strings.Cut(text, ","); found {
		text = head
		if prep = strings.TrimSpace(prep); prep != "" {
			out.Preparation = &prep
		}
	}
	text = strings.ToLower(strings.TrimSpace(spaces.ReplaceAllString(expandFractions(text), " ")))
	fallback := text

	rest := text
	var quantity *float64
	if q, r, ok := ParseQuantity(rest); ok {
		quantity = &q
		rest = r
	}

	if m := containerSize.FindStringSubmatch(rest); m != nil {
		if inner, ok := parseNumber(m[1]); ok {
			outer := 1.0
			if quantity != nil {
				outer = *quantity
			}
			total := outer * inner
			quantity = &total
			unit := strings.TrimSpace(strings.TrimSuffix(m[2], "."))
			out.Unit = &unit
			// a container noun is consumed with the match; any other noun
			// stays in the name
			rest = rest[len(m[0]):]
		}
	} else if m := unitPrefix.FindStringSubmatch(rest); m != nil {
		unit := units.Canonical(m[1])
		out.Unit = &unit
		rest = rest[len(m[0]):]

		// "1 can (14 oz) tomatoes": a size after a count unit is the real
		// measure; after any other unit the parenthetical is dropped
		if sm := sizeAfterUnit.FindStringSubmatch(rest); sm != nil {
			if inner, ok := parseNumber(sm[1]); ok && units.IsCount(unit) {
				outer := 1.0
				if quantity != nil {
					outer = *quantity
				}
				total := outer * inner
				quantity = &total
				size := strings.TrimSpace(strings.TrimSuffix(sm[2], "."))
				out.Unit = &size
			}
			rest = rest[len(sm[0]):]
		} else if pm := leadingParen.FindString(rest); pm != "" {
			rest = rest[len(pm):]
		}
	}
	out.Quantity = quantity

	rest = strings.TrimSpace(leadingOf.ReplaceAllString(strings.TrimSpace(rest), ""))
	if rest == "" {
		out.Name = fallback
		return out
	}
	out.Name = p.lex.Normalize(rest)
	if out.Name == "" {
		out.Name = fallback
	}
	return out
}

// ParseAll parses each line in order.
func (p *Parser) ParseAll(lines []string) []recipe.ParsedIngredient {
	out := make([]recipe.ParsedIngredient, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, p.Parse(line))
	}
	return out
}
