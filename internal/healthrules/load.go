package healthrules

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// catalogFile is the on-disk YAML layout.
type catalogFile struct {
	Limitations []LimitationRule `yaml:"limitations"`
	Conditions  []ConditionRule  `yaml:"conditions"`
	Diets       []DietRule       `yaml:"diets"`
}

// Default returns the built-in catalog. It panics if the embedded data is
// invalid, which the package tests rule out.
func Default() *Catalog {
	c, err := Parse(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("healthrules: embedded catalog: %v", err))
	}
	return c
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("catalog validation: %w", err)
	}
	return New(f.Limitations, f.Conditions, f.Diets), nil
}

func (f *catalogFile) validate() error {
	for i, l := range f.Limitations {
		if err := validateRule(l.Rule); err != nil {
			return fmt.Errorf("limitations[%d]: %w", i, err)
		}
		for j, alt := range l.SafeAlternatives {
			if strings.TrimSpace(alt.Fragment) == "" {
				return fmt.Errorf("limitations[%d] (%s): safe_alternatives[%d].fragment is empty", i, l.ID, j)
			}
			if len(alt.Substitutes) == 0 {
				return fmt.Errorf("limitations[%d] (%s): safe_alternatives[%d] has no substitutes", i, l.ID, j)
			}
		}
	}
	for i, c := range f.Conditions {
		if err := validateRule(c.Rule); err != nil {
			return fmt.Errorf("conditions[%d]: %w", i, err)
		}
		for j, r := range c.NutritionRestrictions {
			if r.Nutrient == "" {
				return fmt.Errorf("conditions[%d] (%s): nutrition_restrictions[%d].nutrient is empty", i, c.ID, j)
			}
		}
	}
	for i, d := range f.Diets {
		if d.ID == "" {
			return fmt.Errorf("diets[%d]: id is required", i)
		}
	}
	return nil
}

// validateRule rejects empty ids and empty fragments. An empty fragment would
// match every exercise under the bidirectional containment policy.
func validateRule(r Rule) error {
	if r.ID == "" {
		return fmt.Errorf("id is required")
	}
	for _, f := range r.Contraindicated {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("%s: empty contraindicated fragment", r.ID)
		}
	}
	for _, f := range r.Caution {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("%s: empty caution fragment", r.ID)
		}
	}
	return nil
}
