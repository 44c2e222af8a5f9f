package ingest

import (
	"regexp"
	"strconv"
	"strings"
)

// number matches one quantity token: mixed number ("1 1/2" or "1-1/2"),
// fraction, or decimal. The hyphenated mixed form is tried before a plain
// integer so "1-1/2" is not read as the range 1 to 1/2.
const number = `\d+\s+\d+/\d+|\d+-\d+/\d+|\d+/\d+|\d+(?:\.\d+)?|\.\d+`

var (
	leadingQuantity = regexp.MustCompile(`^(` + number + `)(?:\s*(?:-|–|to|or)\s*(` + number + `))?\s*`)

	vulgarFractions = strings.NewReplacer(
		"½", " 1/2", "¼", " 1/4", "¾", " 3/4",
		"⅓", " 1/3", "⅔", " 2/3",
		"⅛", " 1/8", "⅜", " 3/8", "⅝", " 5/8", "⅞", " 7/8",
		"⁄", "/",
	)
)

// ParseQuantity reads a leading quantity from s. Ranges ("1-2", "1 to 2")
// yield their midpoint; an upper end below the lower one is ignored. It
// returns the remainder of s after the quantity and false when s does not
// start with a number.
func ParseQuantity(s string) (float64, string, bool) {
	m := leadingQuantity.FindStringSubmatchIndex(s)
	if m == nil {
		return 0, s, false
	}

	lo, ok := parseNumber(s[m[2]:m[3]])
	if !ok {
		return 0, s, false
	}
	value := lo
	if m[4] >= 0 {
		if hi, ok := parseNumber(s[m[4]:m[5]]); ok && hi >= lo {
			value = (lo + hi) / 2
		}
	}
	return value, s[m[1]:], true
}

// parseNumber converts one quantity token.
func parseNumber(tok string) (float64, bool) {
	tok = strings.TrimSpace(tok)
	if whole, frac, found := strings.Cut(tok, "-"); found {
		tok = whole + " " + frac
	}
	if whole, frac, found := strings.Cut(tok, " "); found {
		w, err := strconv.ParseFloat(whole, 64)
		if err != nil {
			return 0, false
		}
		f, ok := parseNumber(strings.TrimSpace(frac))
		if !ok {
			return 0, false
		}
		return w + f, true
	}

	if num, den, found := strings.Cut(tok, "/"); found {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}

	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// expandFractions rewrites unicode vulgar fractions as ASCII ones
// ("1½" -> "1 1/2").
func expandFractions(s string) string {
	if !strings.ContainsAny(s, "½¼¾⅓⅔⅛⅜⅝⅞⁄") {
		return s
	}
	return strings.TrimSpace(spaces.ReplaceAllString(vulgarFractions.Replace(s), " "))
}
