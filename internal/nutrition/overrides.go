package nutrition

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/claude/fitcoach/internal/healthrules"
	"github.com/claude/fitcoach/internal/models"
)

// Override names recorded in HealthAdjustments.AppliedOverrides.
const (
	OverrideConditions = "condition_merge"
	OverrideDiabetes   = "diabetes_carb_cap"
	OverrideKidney     = "kidney_protein_cap"
	OverrideDiet       = "diet_preferences"
	OverrideKeto       = "keto_macros"
)

// Condition and diet ids with hard-coded macro rewrites.
const (
	DiabetesType1 = "diabetes_type_1"
	DiabetesType2 = "diabetes_type_2"
	KidneyDisease = "kidney_disease"
	Keto          = "keto"
)

// Carbohydrate caps in percent of calories.
var carbCaps = map[string]int{
	DiabetesType1: 45,
	DiabetesType2: 40,
}

// kidneyProteinPerKg replaces the goal-based protein target.
const kidneyProteinPerKg = 0.8

// Keto macro split in percent of calories.
const (
	ketoProteinPct = 20
	ketoFatPct     = 70
	ketoCarbsPct   = 10
)

// KetoElectrolyteWarning is appended whenever the keto override applies.
const KetoElectrolyteWarning = "Ketogenic diets increase electrolyte losses; supplement sodium, potassium and magnesium, especially in the first weeks."

// Draft is the intermediate nutrition state rewritten by override passes.
// Passes treat it as immutable and return a new value.
type Draft struct {
	Input          models.PhysiologicalInput
	TargetCalories int
	Macros         models.Macros
	Adjustments    models.HealthAdjustments

	// CarbCap pins the carbohydrate percentage once a carb cap applies.
	CarbCap int
}

func (d Draft) clone() Draft {
	a := d.Adjustments
	a.Conditions = slices.Clone(a.Conditions)
	a.DietaryPreferences = slices.Clone(a.DietaryPreferences)
	a.Restrictions = slices.Clone(a.Restrictions)
	a.FocusNutrients = slices.Clone(a.FocusNutrients)
	a.Recommendations = slices.Clone(a.Recommendations)
	a.Warnings = slices.Clone(a.Warnings)
	a.AppliedOverrides = slices.Clone(a.AppliedOverrides)
	d.Adjustments = a
	return d
}

// percentages recomputes macro shares, keeping a pinned carb cap exact.
func (d Draft) percentages() models.Macros {
	m := withPercentages(d.Macros)
	if d.CarbCap == 0 {
		return m
	}
	total := float64(m.Kcal())
	fatPct := 0
	if total > 0 {
		fatPct = int(math.Round(float64(m.FatG*9) / total * 100))
	}
	m.CarbsPercentage = d.CarbCap
	m.FatPercentage = fatPct
	m.ProteinPercentage = 100 - d.CarbCap - fatPct
	return m
}

// Pass is one ordered override step.
type Pass struct {
	Name  string
	Apply func(Draft, healthrules.Matched) Draft
}

// Passes returns the override passes in application order. Diet preferences
// run last so keto wins over condition-driven macros.
func Passes() []Pass {
	return []Pass{
		{Name: OverrideConditions, Apply: MergeConditions},
		{Name: OverrideDiabetes, Apply: CapCarbsForDiabetes},
		{Name: OverrideKidney, Apply: CapProteinForKidney},
		{Name: OverrideDiet, Apply: ApplyDietPreferences},
	}
}

// MergeRestriction combines two restrictions on the same nutrient.
//
// The stricter restriction wins: a numeric limit is stricter than none, and
// the lower of two numeric limits is stricter. Ties keep a. The unit follows
// the winning limit and distinct reasons are joined with "; ".
func MergeRestriction(a, b models.NutrientRestriction) models.NutrientRestriction {
	out := a
	if stricter(b.UpperLimit, a.UpperLimit) {
		out.UpperLimit = b.UpperLimit
		out.Unit = b.Unit
	}
	if out.UpperLimit != nil {
		v := *out.UpperLimit
		out.UpperLimit = &v
	}
	switch {
	case a.Reason == "":
		out.Reason = b.Reason
	case b.Reason == "" || b.Reason == a.Reason:
		out.Reason = a.Reason
	default:
		out.Reason = a.Reason + "; " + b.Reason
	}
	return out
}

// stricter reports whether limit x is strictly tighter than y.
func stricter(x, y *float64) bool {
	switch {
	case x == nil:
		return false
	case y == nil:
		return true
	default:
		return *x < *y
	}
}

func mergeInto(list []models.NutrientRestriction, r models.NutrientRestriction) []models.NutrientRestriction {
	for i, existing := range list {
		if strings.EqualFold(existing.Nutrient, r.Nutrient) {
			list[i] = MergeRestriction(existing, r)
			return list
		}
	}
	return append(list, MergeRestriction(r, models.NutrientRestriction{}))
}

// MergeConditions folds every matched condition's restrictions, focus
// nutrients, warnings and recommendations into the draft.
func MergeConditions(d Draft, m healthrules.Matched) Draft {
	if len(m.Conditions) == 0 {
		return d
	}
	d = d.clone()
	for _, c := range m.Conditions {
		d.Adjustments.Conditions = appendUnique(d.Adjustments.Conditions, c.ID)
		for _, r := range c.NutritionRestrictions {
			d.Adjustments.Restrictions = mergeInto(d.Adjustments.Restrictions, r)
		}
		d.Adjustments.FocusNutrients = appendUnique(d.Adjustments.FocusNutrients, c.FocusNutrients...)
		d.Adjustments.Warnings = appendUnique(d.Adjustments.Warnings, c.Warnings...)
		d.Adjustments.Recommendations = appendUnique(d.Adjustments.Recommendations, c.Recommendations...)
	}
	d.Adjustments.AppliedOverrides = append(d.Adjustments.AppliedOverrides, OverrideConditions)
	return d
}

// CapCarbsForDiabetes caps the carbohydrate share for diabetes and moves the
// freed calories to protein. With both types present the lower cap applies.
func CapCarbsForDiabetes(d Draft, m healthrules.Matched) Draft {
	limit := 0
	for _, c := range m.Conditions {
		if pct, ok := carbCaps[c.ID]; ok && (limit == 0 || pct < limit) {
			limit = pct
		}
	}
	if limit == 0 || d.Macros.CarbsPercentage <= limit {
		return d
	}

	d = d.clone()
	carbs := int(math.Round(float64(d.TargetCalories) * float64(limit) / 100 / 4))
	// Carbohydrate and protein both carry 4 kcal/g, so grams move one to one.
	d.Macros.ProteinG += d.Macros.CarbsG - carbs
	d.Macros.CarbsG = carbs
	d.CarbCap = limit
	d.Macros = d.percentages()
	d.Adjustments.Recommendations = appendUnique(d.Adjustments.Recommendations,
		fmt.Sprintf("Carbohydrates are capped at %d%% of calories; the difference is shifted to protein.", limit))
	d.Adjustments.AppliedOverrides = append(d.Adjustments.AppliedOverrides, OverrideDiabetes)
	return d
}

// CapProteinForKidney limits protein to 0.8 g/kg whatever the goal and moves
// the freed calories to fat. Carbohydrates absorb the rounding difference.
func CapProteinForKidney(d Draft, m healthrules.Matched) Draft {
	if !slices.ContainsFunc(m.Conditions, func(c healthrules.ConditionRule) bool { return c.ID == KidneyDisease }) {
		return d
	}

	d = d.clone()
	limit := int(math.Round(kidneyProteinPerKg * d.Input.WeightKg))
	if d.Macros.ProteinG > limit {
		freed := (d.Macros.ProteinG - limit) * 4
		d.Macros.ProteinG = limit
		d.Macros.FatG += int(math.Round(float64(freed) / 9))
		d.Macros.CarbsG = residualCarbs(d.TargetCalories, d.Macros.ProteinG, d.Macros.FatG)
		d.Macros = d.percentages()
	}

	limitG := float64(limit)
	d.Adjustments.Restrictions = mergeInto(d.Adjustments.Restrictions, models.NutrientRestriction{
		Nutrient:   "protein",
		UpperLimit: &limitG,
		Unit:       "g",
	})
	d.Adjustments.AppliedOverrides = append(d.Adjustments.AppliedOverrides, OverrideKidney)
	return d
}

// ApplyDietPreferences adds diet focus nutrients, warnings and
// recommendations. Keto then replaces the macro split outright.
func ApplyDietPreferences(d Draft, m healthrules.Matched) Draft {
	if len(m.Diets) == 0 {
		return d
	}
	d = d.clone()
	keto := false
	for _, diet := range m.Diets {
		d.Adjustments.DietaryPreferences = appendUnique(d.Adjustments.DietaryPreferences, diet.ID)
		d.Adjustments.FocusNutrients = appendUnique(d.Adjustments.FocusNutrients, diet.FocusNutrients...)
		d.Adjustments.Warnings = appendUnique(d.Adjustments.Warnings, diet.Warnings...)
		d.Adjustments.Recommendations = appendUnique(d.Adjustments.Recommendations, diet.Recommendations...)
		if diet.ID == Keto {
			keto = true
		}
	}
	d.Adjustments.AppliedOverrides = append(d.Adjustments.AppliedOverrides, OverrideDiet)
	if !keto {
		return d
	}

	t := float64(d.TargetCalories)
	protein := int(math.Round(t * ketoProteinPct / 100 / 4))
	fat := int(math.Round(t * ketoFatPct / 100 / 9))
	d.Macros = models.Macros{
		ProteinG:          protein,
		FatG:              fat,
		CarbsG:            residualCarbs(d.TargetCalories, protein, fat),
		ProteinPercentage: ketoProteinPct,
		FatPercentage:     ketoFatPct,
		CarbsPercentage:   ketoCarbsPct,
	}
	d.CarbCap = 0
	d.Adjustments.Warnings = appendUnique(d.Adjustments.Warnings, KetoElectrolyteWarning)
	d.Adjustments.AppliedOverrides = append(d.Adjustments.AppliedOverrides, OverrideKeto)
	return d
}

func appendUnique(dst []string, items ...string) []string {
	for _, it := range items {
		if !slices.Contains(dst, it) {
			dst = append(dst, it)
		}
	}
	return dst
}
