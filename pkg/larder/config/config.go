package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/larder/pkg/larder/tags"
	"github.com/cognicore/larder/pkg/larder/units"
)

// Taxonomy represents the tag taxonomy configuration
type Taxonomy struct {
	Cuisines   []string             `yaml:"cuisines"`
	Dietary    []string             `yaml:"dietary"`
	Categories []tags.CategoryGroup `yaml:"categories"`
	LongCook   []string             `yaml:"long_cook"`
	Methods    []string             `yaml:"methods"`
	DishTypes  []string             `yaml:"dish_types"`
	Meta       []string             `yaml:"meta"`
}

// LoadTaxonomy loads the tag taxonomy from a YAML file
func LoadTaxonomy(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tax Taxonomy
	if err := yaml.Unmarshal(data, &tax); err != nil {
		return nil, err
	}

	return &tax, nil
}

// Units represents extra unit-conversion data
type Units struct {
	Densities map[string]float64       `yaml:"densities"` // grams per cup
	Profiles  map[string]units.Profile `yaml:"profiles"`
}

// LoadUnits loads densities and ingredient profiles from a YAML file
func LoadUnits(path string) (*Units, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var u Units
	if err := yaml.Unmarshal(data, &u); err != nil {
		return nil, err
	}

	return &u, nil
}
