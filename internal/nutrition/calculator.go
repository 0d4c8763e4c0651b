// Package nutrition computes daily calorie, macronutrient and micronutrient
// targets from physiological input, then applies health-rule overrides.
package nutrition

import (
	"fmt"
	"math"

	"github.com/claude/fitcoach/internal/healthrules"
	"github.com/claude/fitcoach/internal/models"
)

// Calculator computes nutrition plans against a fixed rule catalog.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	catalog *healthrules.Catalog
	passes  []Pass
}

// New returns a Calculator using catalog for health overrides.
func New(catalog *healthrules.Catalog) *Calculator {
	return &Calculator{catalog: catalog, passes: Passes()}
}

// Calculate returns the nutrition plan for in. Input is not validated:
// non-positive measurements yield meaningless but finite numbers. Health
// overrides run only when profile lists conditions or dietary preferences.
func (c *Calculator) Calculate(in models.PhysiologicalInput, profile *models.HealthProfile) models.NutritionPlan {
	bmr := BMR(in)
	tdee := TDEE(bmr, in.ActivityLevel)
	target := CalculateTargetCalories(tdee, in.FitnessGoal)
	base := BaseMacros(target, in.WeightKg, in.FitnessGoal)

	plan := models.NutritionPlan{
		BMR:                  int(math.Round(bmr)),
		TDEE:                 int(math.Round(tdee)),
		TargetCalories:       target,
		Macros:               base,
		MicronutrientTargets: Micronutrients(in.Sex, in.AgeYears),
	}

	if profile != nil && (len(profile.MedicalConditions) > 0 || len(profile.DietaryPreferences) > 0) {
		matched := c.catalog.Resolve(*profile)
		if len(matched.Conditions) > 0 || len(matched.Diets) > 0 {
			d := c.applyOverrides(Draft{Input: in, TargetCalories: target, Macros: base}, matched)
			plan.Macros = d.Macros
			adj := d.Adjustments
			plan.HealthAdjustments = &adj
		}
	}

	plan.Explanation = explain(in, bmr, tdee, target, base, plan.Macros)
	return plan
}

func (c *Calculator) applyOverrides(d Draft, m healthrules.Matched) Draft {
	for _, p := range c.passes {
		d = p.Apply(d, m)
	}
	return d
}

func explain(in models.PhysiologicalInput, bmr, tdee float64, target int, base, final models.Macros) models.NutritionExplanation {
	sexTerm := "- 161"
	if in.Sex == models.SexMale {
		sexTerm = "+ 5"
	}
	perKg, ok := proteinPerKg[in.FitnessGoal]
	if !ok {
		perKg = proteinPerKg[models.GoalGeneralFitness]
	}
	fatPct, ok := fatPercent[in.FitnessGoal]
	if !ok {
		fatPct = fatPercent[models.GoalGeneralFitness]
	}

	e := models.NutritionExplanation{
		BMR: fmt.Sprintf("Mifflin-St Jeor: 10 x %.1f kg + 6.25 x %.1f cm - 5 x %d y %s = %.0f kcal",
			in.WeightKg, in.HeightCm, in.AgeYears, sexTerm, bmr),
		TDEE: fmt.Sprintf("%.0f kcal x %g (%s) = %.0f kcal",
			bmr, ActivityMultiplier(in.ActivityLevel), in.ActivityLevel, tdee),
		TargetCalories: fmt.Sprintf("%.0f kcal x %.2f (%s) = %d kcal",
			tdee, GoalFactor(in.FitnessGoal), in.FitnessGoal, target),
		Protein: fmt.Sprintf("%.1f g/kg x %.1f kg = %d g", perKg, in.WeightKg, base.ProteinG),
		Fat:     fmt.Sprintf("%d%% x %d kcal / 9 = %d g", fatPct, target, base.FatG),
		Carbs: fmt.Sprintf("(%d kcal - %d g x 4 - %d g x 9) / 4 = %d g",
			target, base.ProteinG, base.FatG, base.CarbsG),
	}
	if final.ProteinG != base.ProteinG {
		e.Protein += fmt.Sprintf("; %d g after health adjustments", final.ProteinG)
	}
	if final.FatG != base.FatG {
		e.Fat += fmt.Sprintf("; %d g after health adjustments", final.FatG)
	}
	if final.CarbsG != base.CarbsG {
		e.Carbs += fmt.Sprintf("; %d g after health adjustments", final.CarbsG)
	}
	return e
}
