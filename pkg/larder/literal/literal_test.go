package literal

import (
	"reflect"
	"sort"
	"testing"
)

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want []string
	}{
		{"single quotes", `['a', 'b', 'c']`, []string{"a", "b", "c"}},
		{"double quotes", `["a", "b"]`, []string{"a", "b"}},
		{"mixed quotes", `["grandma's pie", 'plain']`, []string{"grandma's pie", "plain"}},
		{"comma inside item", `['salt, to taste', 'pepper']`, []string{"salt, to taste", "pepper"}},
		{"brackets inside item", `['1 [heaping] cup', '{weird}']`, []string{"1 [heaping] cup", "{weird}"}},
		{"doubled quote escape", `['it''s done', 'ok']`, []string{"it's done", "ok"}},
		{"backslash escape", `['it\'s done']`, []string{"it's done"}},
		{"empty item", `['', 'b']`, []string{"", "b"}},
		{"r vector", `c("flour", "sugar")`, []string{"flour", "sugar"}},
		{"missing closing bracket", `['a', 'b'`, []string{"a", "b"}},
		{"surrounding whitespace", "  ['a']  ", []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeList(tt.cell)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeList(%q) = %q, want %q", tt.cell, got, tt.want)
			}
		})
	}
}

func TestDecodeListSentinelsAndMalformed(t *testing.T) {
	cells := []string{
		"",
		"NA",
		"na",
		"character(0)",
		"[]",
		"c()",
		"no brackets at all",
		`['unterminated`,
		`'a', 'b'`,
	}

	for _, cell := range cells {
		got := DecodeList(cell)
		if got == nil {
			t.Errorf("DecodeList(%q) returned nil, want empty slice", cell)
			continue
		}
		if len(got) != 0 {
			t.Errorf("DecodeList(%q) = %q, want empty", cell, got)
		}
	}
}

func TestDecodeListItemCountMatchesQuotedSegments(t *testing.T) {
	cell := `['a, b', "c] d", 'e''f', "g"]`
	got := DecodeList(cell)
	if len(got) != 4 {
		t.Fatalf("expected 4 items, got %d: %q", len(got), got)
	}
	for _, item := range got {
		if item == "a" || item == "c" {
			t.Errorf("item %q was truncated at a delimiter", item)
		}
	}
}

func TestDecodeSet(t *testing.T) {
	got := DecodeSet(`{'dinner', 'chicken', 'easy'}`)
	sort.Strings(got)
	want := []string{"chicken", "dinner", "easy"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeSet = %q, want %q", got, want)
	}

	if got := DecodeSet("{}"); len(got) != 0 {
		t.Errorf("DecodeSet({}) = %q, want empty", got)
	}

	if got := DecodeSet(`{'a, b'}`); len(got) != 1 || got[0] != "a, b" {
		t.Errorf("DecodeSet kept comma item wrong: %q", got)
	}
}
