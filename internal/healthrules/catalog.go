// Package healthrules holds the static catalog of physical-limitation,
// medical-condition and dietary-preference rules consulted by workout
// filtering and nutrition overrides.
//
// A Catalog is built once (from the embedded default or a YAML file) and is
// read-only afterwards, so a single value can be shared by concurrent callers.
package healthrules

import (
	"github.com/claude/fitcoach/internal/models"
)

// Rule holds the fields shared by limitation and condition entries.
type Rule struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Contraindicated []string `yaml:"contraindicated"`
	Caution         []string `yaml:"caution"`
	Warnings        []string `yaml:"warnings"`
	Recommendations []string `yaml:"recommendations"`
}

// Alternative lists substitutes for exercises matching Fragment, in preference order.
type Alternative struct {
	Fragment    string   `yaml:"fragment"`
	Substitutes []string `yaml:"substitutes"`
}

// LimitationRule describes a physical limitation such as a knee injury.
type LimitationRule struct {
	Rule             `yaml:",inline"`
	SafeAlternatives []Alternative `yaml:"safe_alternatives"`
}

// ConditionRule describes a medical condition such as hypertension.
type ConditionRule struct {
	Rule                  `yaml:",inline"`
	RecommendedExercises  []string                     `yaml:"recommended_exercises"`
	MaxIntensity          string                       `yaml:"max_intensity"`
	NutritionRestrictions []models.NutrientRestriction `yaml:"nutrition_restrictions"`
	FocusNutrients        []string                     `yaml:"focus_nutrients"`
}

// DietRule describes a dietary preference.
type DietRule struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	FocusNutrients  []string `yaml:"focus_nutrients"`
	Warnings        []string `yaml:"warnings"`
	Recommendations []string `yaml:"recommendations"`
}

// Catalog is the immutable rule set. The zero value is an empty catalog.
type Catalog struct {
	limitations []LimitationRule
	conditions  []ConditionRule
	diets       []DietRule

	limitationIdx map[string]int
	conditionIdx  map[string]int
	dietIdx       map[string]int
}

// New builds a catalog from rule lists. Entry order is preserved for listing
// and for substitution scans; later duplicates of an id are ignored.
func New(limitations []LimitationRule, conditions []ConditionRule, diets []DietRule) *Catalog {
	c := &Catalog{
		limitationIdx: make(map[string]int),
		conditionIdx:  make(map[string]int),
		dietIdx:       make(map[string]int),
	}
	for _, l := range limitations {
		if _, dup := c.limitationIdx[l.ID]; dup {
			continue
		}
		c.limitationIdx[l.ID] = len(c.limitations)
		c.limitations = append(c.limitations, l)
	}
	for _, cond := range conditions {
		if _, dup := c.conditionIdx[cond.ID]; dup {
			continue
		}
		c.conditionIdx[cond.ID] = len(c.conditions)
		c.conditions = append(c.conditions, cond)
	}
	for _, d := range diets {
		if _, dup := c.dietIdx[d.ID]; dup {
			continue
		}
		c.dietIdx[d.ID] = len(c.diets)
		c.diets = append(c.diets, d)
	}
	return c
}

// Limitation looks up a limitation rule by id.
func (c *Catalog) Limitation(id string) (LimitationRule, bool) {
	i, ok := c.limitationIdx[id]
	if !ok {
		return LimitationRule{}, false
	}
	return c.limitations[i], true
}

// Condition looks up a condition rule by id.
func (c *Catalog) Condition(id string) (ConditionRule, bool) {
	i, ok := c.conditionIdx[id]
	if !ok {
		return ConditionRule{}, false
	}
	return c.conditions[i], true
}

// Diet looks up a dietary preference rule by id.
func (c *Catalog) Diet(id string) (DietRule, bool) {
	i, ok := c.dietIdx[id]
	if !ok {
		return DietRule{}, false
	}
	return c.diets[i], true
}

// Limitations returns all limitation rules in catalog order.
func (c *Catalog) Limitations() []LimitationRule {
	return append([]LimitationRule(nil), c.limitations...)
}

// Conditions returns all condition rules in catalog order.
func (c *Catalog) Conditions() []ConditionRule {
	return append([]ConditionRule(nil), c.conditions...)
}

// Diets returns all dietary preference rules in catalog order.
func (c *Catalog) Diets() []DietRule {
	return append([]DietRule(nil), c.diets...)
}

// Matched is the set of catalog rules a profile refers to, in profile order.
type Matched struct {
	Limitations []LimitationRule
	Conditions  []ConditionRule
	Diets       []DietRule
}

// Resolve maps a profile's ids onto catalog rules. Unknown and repeated ids are skipped.
func (c *Catalog) Resolve(p models.HealthProfile) Matched {
	var m Matched
	seen := make(map[string]bool)
	for _, id := range p.PhysicalLimitations {
		if seen["l:"+id] {
			continue
		}
		seen["l:"+id] = true
		if r, ok := c.Limitation(id); ok {
			m.Limitations = append(m.Limitations, r)
		}
	}
	for _, id := range p.MedicalConditions {
		if seen["c:"+id] {
			continue
		}
		seen["c:"+id] = true
		if r, ok := c.Condition(id); ok {
			m.Conditions = append(m.Conditions, r)
		}
	}
	for _, id := range p.DietaryPreferences {
		if seen["d:"+id] {
			continue
		}
		seen["d:"+id] = true
		if r, ok := c.Diet(id); ok {
			m.Diets = append(m.Diets, r)
		}
	}
	return m
}

// Unknown returns the profile ids that have no catalog entry, prefixed with
// their kind ("limitation:", "condition:", "diet:").
func (c *Catalog) Unknown(p models.HealthProfile) []string {
	var out []string
	for _, id := range p.PhysicalLimitations {
		if _, ok := c.limitationIdx[id]; !ok {
			out = append(out, "limitation:"+id)
		}
	}
	for _, id := range p.MedicalConditions {
		if _, ok := c.conditionIdx[id]; !ok {
			out = append(out, "condition:"+id)
		}
	}
	for _, id := range p.DietaryPreferences {
		if _, ok := c.dietIdx[id]; !ok {
			out = append(out, "diet:"+id)
		}
	}
	return out
}

// Entry is the public listing of one catalog rule.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Summary lists every rule id a health profile may reference.
type Summary struct {
	Limitations []Entry `json:"limitations"`
	Conditions  []Entry `json:"conditions"`
	Diets       []Entry `json:"dietary_preferences"`
}

// Summary returns the catalog's ids and display names in catalog order.
func (c *Catalog) Summary() Summary {
	s := Summary{
		Limitations: make([]Entry, 0, len(c.limitations)),
		Conditions:  make([]Entry, 0, len(c.conditions)),
		Diets:       make([]Entry, 0, len(c.diets)),
	}
	for _, l := range c.limitations {
		s.Limitations = append(s.Limitations, Entry{ID: l.ID, Name: l.Name})
	}
	for _, cond := range c.conditions {
		s.Conditions = append(s.Conditions, Entry{ID: cond.ID, Name: cond.Name})
	}
	for _, d := range c.diets {
		s.Diets = append(s.Diets, Entry{ID: d.ID, Name: d.Name})
	}
	return s
}
