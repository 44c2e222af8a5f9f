// Package literal decodes the list and set literals that recipe exports embed
// in CSV cells, e.g. ['a', 'b'], {'a', 'b'} or c('a', 'b').
//
// Decoding never fails: empty cells, sentinels and malformed literals all
// decode to an empty slice.
package literal

import "strings"

// sentinels are cell values that mean "no items".
var sentinels = map[string]struct{}{
	"":             {},
	"na":           {},
	"nan":          {},
	"null":         {},
	"none":         {},
	"character(0)": {},
	"[]":           {},
	"{}":           {},
	"c()":          {},
}

// DecodeList returns the quoted items of a list literal in order.
func DecodeList(cell string) []string {
	s := strings.TrimSpace(cell)
	if _, ok := sentinels[strings.ToLower(s)]; ok {
		return []string{}
	}

	var body string
	switch {
	case strings.HasPrefix(s, "["):
		body = strings.TrimSuffix(s[1:], "]")
	case strings.HasPrefix(s, "c("):
		body = strings.TrimSuffix(s[2:], ")")
	default:
		return []string{}
	}

	items, ok := scan(body)
	if !ok {
		return []string{}
	}
	return items
}

// DecodeSet returns the items of a set literal. Item order follows the cell
// but carries no meaning.
func DecodeSet(cell string) []string {
	s := strings.TrimSpace(cell)
	if strings.HasPrefix(s, "{") {
		s = "[" + strings.TrimSuffix(s[1:], "}") + "]"
	}
	return DecodeList(s)
}

// scan walks the literal body once, collecting every top-level quoted
// segment. A doubled quote character (or a backslash before it) inside a
// segment is an escaped quote. It reports false on an unterminated quote.
func scan(body string) ([]string, bool) {
	items := []string{}
	var (
		cur     strings.Builder
		inQuote bool
		quote   byte
	)

	for i := 0; i < len(body); i++ {
		c := body[i]
		if !inQuote {
			if c == '\'' || c == '"' {
				inQuote = true
				quote = c
				cur.Reset()
			}
			continue
		}

		switch {
		case c == '\\' && i+1 < len(body) && (body[i+1] == quote || body[i+1] == '\\'):
			cur.WriteByte(body[i+1])
			i++
		case c == quote && i+1 < len(body) && body[i+1] == quote:
			cur.WriteByte(quote)
			i++
		case c == quote:
			items = append(items, cur.String())
			inQuote = false
		default:
			cur.WriteByte(c)
		}
	}

	if inQuote {
		return nil, false
	}
	return items, true
}
