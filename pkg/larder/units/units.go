// Package units maps recipe units to metric quantities.
//
// Volume and weight units convert by a fixed factor to milliliters or grams.
// When a volume is converted for an ingredient with a known density
// (grams per standard 240 ml cup) the result is expressed in grams instead.
// Count-style units (cloves, cans, slices...) convert 1:1 to pieces.
//
// All tables are built once and never mutated; a Converter is safe to share.
package units

import (
	"math"
	"strings"
)

// Metric units produced by conversion.
const (
	Grams       = "g"
	Milliliters = "ml"
	Pieces      = "pieces"
)

// CupMilliliters is the volume of the standard cup the density table uses.
const CupMilliliters = 240.0

// Metric is a converted quantity.
type Metric struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type factor struct {
	multiplier float64
	unit       string
}

// defaultFactors is keyed by canonical unit abbreviation.
var defaultFactors = map[string]factor{
	// volume
	"tsp":   {5, Milliliters},
	"tbsp":  {15, Milliliters},
	"cup":   {CupMilliliters, Milliliters},
	"fl oz": {30, Milliliters},
	"pt":    {480, Milliliters},
	"qt":    {960, Milliliters},
	"gal":   {3840, Milliliters},
	"ml":    {1, Milliliters},
	"cl":    {10, Milliliters},
	"dl":    {100, Milliliters},
	"l":     {1000, Milliliters},
	"pinch": {0.3, Milliliters},
	"dash":  {0.6, Milliliters},

	// weight
	"mg": {0.001, Grams},
	"g":  {1, Grams},
	"kg": {1000, Grams},
	"oz": {28.35, Grams},
	"lb": {453.59, Grams},
}

// countUnits convert 1:1 to pieces.
var countUnits = map[string]struct{}{
	"piece": {}, "pieces": {}, "clove": {}, "bunch": {}, "slice": {},
	"can": {}, "package": {}, "jar": {}, "bottle": {}, "bag": {}, "box": {},
	"stalk": {}, "sprig": {}, "head": {}, "stick": {}, "leaf": {},
	"fillet": {}, "strip": {}, "ear": {}, "envelope": {}, "loaf": {},
	"each": {}, "whole": {},
}

// aliases maps spellings, plurals and abbreviations to the canonical form.
var aliases = map[string]string{
	"teaspoon": "tsp", "teaspoons": "tsp", "tsp": "tsp", "tsps": "tsp", "t": "tsp",
	"tablespoon": "tbsp", "tablespoons": "tbsp", "tbsp": "tbsp", "tbsps": "tbsp", "tbs": "tbsp", "tbl": "tbsp", "tbls": "tbsp",
	"cup": "cup", "cups": "cup", "c": "cup",
	"fluid ounce": "fl oz", "fluid ounces": "fl oz", "fl oz": "fl oz", "floz": "fl oz",
	"pint": "pt", "pints": "pt", "pt": "pt", "pts": "pt",
	"quart": "qt", "quarts": "qt", "qt": "qt", "qts": "qt",
	"gallon": "gal", "gallons": "gal", "gal": "gal", "gals": "gal",
	"milliliter": "ml", "milliliters": "ml", "millilitre": "ml", "millilitres": "ml", "ml": "ml", "mls": "ml",
	"centiliter": "cl", "centiliters": "cl", "cl": "cl",
	"deciliter": "dl", "deciliters": "dl", "dl": "dl",
	"liter": "l", "liters": "l", "litre": "l", "litres": "l", "l": "l",
	"pinch": "pinch", "pinches": "pinch",
	"dash": "dash", "dashes": "dash",
	"milligram": "mg", "milligrams": "mg", "mg": "mg",
	"gram": "g", "grams": "g", "gr": "g", "g": "g",
	"kilogram": "kg", "kilograms": "kg", "kg": "kg", "kgs": "kg",
	"ounce": "oz", "ounces": "oz", "oz": "oz",
	"pound": "lb", "pounds": "lb", "lb": "lb", "lbs": "lb",
	"piece": "piece", "pieces": "piece", "pc": "piece", "pcs": "piece",
	"clove": "clove", "cloves": "clove",
	"bunch": "bunch", "bunches": "bunch",
	"slice": "slice", "slices": "slice",
	"can": "can", "cans": "can",
	"package": "package", "packages": "package", "pkg": "package", "pkgs": "package", "packet": "package", "packets": "package",
	"jar": "jar", "jars": "jar",
	"bottle": "bottle", "bottles": "bottle",
	"bag": "bag", "bags": "bag",
	"box": "box", "boxes": "box",
	"stalk": "stalk", "stalks": "stalk",
	"sprig": "sprig", "sprigs": "sprig",
	"head": "head", "heads": "head",
	"stick": "stick", "sticks": "stick",
	"leaf": "leaf", "leaves": "leaf",
	"fillet": "fillet", "fillets": "fillet",
	"strip": "strip", "strips": "strip",
	"ear": "ear", "ears": "ear",
	"envelope": "envelope", "envelopes": "envelope",
	"loaf": "loaf", "loaves": "loaf",
}

// Canonical returns the canonical abbreviation for a unit spelling, or the
// cleaned spelling itself when it is not known.
func Canonical(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	u = strings.TrimSuffix(u, ".")
	u = strings.Join(strings.Fields(strings.ReplaceAll(u, ".", " ")), " ")
	if c, ok := aliases[u]; ok {
		return c
	}
	return u
}

// Converter converts quantities using immutable unit, density and profile
// tables.
type Converter struct {
	factors   map[string]factor
	densities map[string]float64
	profiles  map[string]Profile
}

// NewConverter returns a converter over the built-in tables.
func NewConverter() *Converter {
	return &Converter{
		factors:   defaultFactors,
		densities: defaultDensities,
		profiles:  defaultProfiles,
	}
}

// WithDensities returns a converter whose density table is the receiver's
// extended by extra (grams per cup, keyed by canonical ingredient name).
// The receiver is left unchanged.
func (c *Converter) WithDensities(extra map[string]float64) *Converter {
	merged := make(map[string]float64, len(c.densities)+len(extra))
	for k, v := range c.densities {
		merged[k] = v
	}
	for k, v := range extra {
		if v > 0 {
			merged[strings.ToLower(strings.TrimSpace(k))] = v
		}
	}
	return &Converter{factors: c.factors, densities: merged, profiles: c.profiles}
}

// WithProfiles returns a converter whose profile table is the receiver's
// extended by extra. The receiver is left unchanged.
func (c *Converter) WithProfiles(extra map[string]Profile) *Converter {
	merged := make(map[string]Profile, len(c.profiles)+len(extra))
	for k, v := range c.profiles {
		merged[k] = v
	}
	for k, v := range extra {
		merged[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &Converter{factors: c.factors, densities: c.densities, profiles: merged}
}

// Convert maps quantity in fromUnit to a metric quantity. ingredient may be
// empty; when set and the direct result is a volume, a known density turns
// the result into grams. ok is false when the unit cannot be converted,
// which callers must not read as zero.
func (c *Converter) Convert(quantity float64, fromUnit, ingredient string) (Metric, bool) {
	unit := Canonical(fromUnit)
	if unit == "" {
		return Metric{}, false
	}

	if _, ok := countUnits[unit]; ok {
		return Metric{Value: quantity, Unit: Pieces}, true
	}

	f, ok := c.factors[unit]
	if !ok {
		return Metric{}, false
	}

	value := quantity * f.multiplier
	if f.unit == Milliliters && ingredient != "" {
		if density, ok := c.Density(ingredient); ok {
			return Metric{Value: round2(value / CupMilliliters * density), Unit: Grams}, true
		}
	}
	return Metric{Value: round2(value), Unit: f.unit}, true
}

// Density returns grams per cup for a canonical ingredient name.
func (c *Converter) Density(ingredient string) (float64, bool) {
	d, ok := c.densities[strings.ToLower(strings.TrimSpace(ingredient))]
	return d, ok
}

// IsCount reports whether unit is a count-style unit.
func IsCount(unit string) bool {
	_, ok := countUnits[Canonical(unit)]
	return ok
}

var defaultConverter = NewConverter()

// Convert converts with the built-in tables.
func Convert(quantity float64, fromUnit, ingredient string) (Metric, bool) {
	return defaultConverter.Convert(quantity, fromUnit, ingredient)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
