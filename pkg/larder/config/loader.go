package config

import (
	"errors"
	"fmt"

	"github.com/cognicore/larder/pkg/larder/internalerr"
	"github.com/cognicore/larder/pkg/larder/lexicon"
	"github.com/cognicore/larder/pkg/larder/tags"
	"github.com/cognicore/larder/pkg/larder/units"
)

// Loader loads all configuration files and constructs components
type Loader struct {
	LexiconPath  string
	TaxonomyPath string
	UnitsPath    string
}

// Components holds all loaded configuration components. They are immutable
// once built and may be shared between runs.
type Components struct {
	Normalizer *lexicon.Lexicon
	Converter  *units.Converter
	Classifier *tags.Classifier
	Selector   *tags.Selector
}

// Load reads all configuration files and returns initialized components.
// Empty paths yield the built-in tables.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	// Load normalizer rules
	if l.LexiconPath != "" {
		lex, err := lexicon.LoadFromYAML(l.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", wrapConfig(err))
		}
		comp.Normalizer = lex
	} else {
		comp.Normalizer = lexicon.Default()
	}

	// Load taxonomy
	if l.TaxonomyPath != "" {
		tax, err := LoadTaxonomy(l.TaxonomyPath)
		if err != nil {
			return nil, fmt.Errorf("load taxonomy: %w", wrapConfig(err))
		}
		comp.Classifier = tags.DefaultClassifierWith(tags.Keywords{
			Cuisines:   tax.Cuisines,
			Dietary:    tax.Dietary,
			Categories: tax.Categories,
			LongCook:   tax.LongCook,
		})
		comp.Selector = tags.DefaultSelector().Extend(tax.Methods, tax.DishTypes, tax.Meta)
	} else {
		comp.Classifier = tags.DefaultClassifier()
		comp.Selector = tags.DefaultSelector()
	}

	// Load units
	comp.Converter = units.NewConverter()
	if l.UnitsPath != "" {
		u, err := LoadUnits(l.UnitsPath)
		if err != nil {
			return nil, fmt.Errorf("load units: %w", wrapConfig(err))
		}
		for name, d := range u.Densities {
			if d <= 0 {
				return nil, fmt.Errorf("load units: %w: density of %q must be positive", internalerr.ErrInvalidConfig, name)
			}
		}
		comp.Converter = comp.Converter.WithDensities(u.Densities).WithProfiles(u.Profiles)
	}

	return comp, nil
}

func wrapConfig(err error) error {
	if errors.Is(err, internalerr.ErrInvalidConfig) {
		return err
	}
	return fmt.Errorf("%w: %w", internalerr.ErrInvalidConfig, err)
}
