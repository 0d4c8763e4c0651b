package nutrition

import (
	"math"

	"github.com/claude/fitcoach/internal/models"
)

// Activity multipliers applied to BMR.
var activityMultipliers = map[models.ActivityLevel]float64{
	models.ActivitySedentary:  1.2,
	models.ActivityLight:      1.375,
	models.ActivityModerate:   1.55,
	models.ActivityActive:     1.725,
	models.ActivityVeryActive: 1.9,
}

// Calorie factors applied to TDEE per goal.
var goalFactors = map[models.FitnessGoal]float64{
	models.GoalMuscleGain:     1.15,
	models.GoalFatLoss:        0.80,
	models.GoalEndurance:      1.05,
	models.GoalSportSpecific:  1.10,
	models.GoalGeneralFitness: 1.0,
}

// Protein grams per kg of body weight per goal.
var proteinPerKg = map[models.FitnessGoal]float64{
	models.GoalMuscleGain:     2.0,
	models.GoalFatLoss:        2.3,
	models.GoalEndurance:      1.6,
	models.GoalSportSpecific:  1.8,
	models.GoalGeneralFitness: 1.6,
}

// Share of target calories from fat per goal, in percent.
var fatPercent = map[models.FitnessGoal]int{
	models.GoalMuscleGain:     25,
	models.GoalFatLoss:        25,
	models.GoalEndurance:      20,
	models.GoalSportSpecific:  25,
	models.GoalGeneralFitness: 25,
}

// BMR is the Mifflin-St Jeor basal metabolic rate in kcal/day.
func BMR(in models.PhysiologicalInput) float64 {
	bmr := 10*in.WeightKg + 6.25*in.HeightCm - 5*float64(in.AgeYears)
	if in.Sex == models.SexMale {
		return bmr + 5
	}
	return bmr - 161
}

// ActivityMultiplier returns the TDEE multiplier for level, defaulting to sedentary.
func ActivityMultiplier(level models.ActivityLevel) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return activityMultipliers[models.ActivitySedentary]
}

// GoalFactor returns the calorie factor for goal, defaulting to maintenance.
func GoalFactor(goal models.FitnessGoal) float64 {
	if f, ok := goalFactors[goal]; ok {
		return f
	}
	return 1.0
}

// TDEE is total daily energy expenditure in kcal/day.
func TDEE(bmr float64, level models.ActivityLevel) float64 {
	return bmr * ActivityMultiplier(level)
}

// CalculateTargetCalories applies the goal factor to tdee and rounds to whole kcal.
func CalculateTargetCalories(tdee float64, goal models.FitnessGoal) int {
	return int(math.Round(tdee * GoalFactor(goal)))
}

// BaseMacros splits target calories into protein, fat and carbohydrate grams.
// Protein follows body weight and fat a fixed share of calories; carbohydrates
// take the remainder, so the gram totals land within 2 kcal of target.
func BaseMacros(target int, weightKg float64, goal models.FitnessGoal) models.Macros {
	perKg, ok := proteinPerKg[goal]
	if !ok {
		perKg = proteinPerKg[models.GoalGeneralFitness]
	}
	pct, ok := fatPercent[goal]
	if !ok {
		pct = fatPercent[models.GoalGeneralFitness]
	}

	m := models.Macros{
		ProteinG: int(math.Round(perKg * weightKg)),
		FatG:     int(math.Round(float64(pct) * float64(target) / 100 / 9)),
	}
	m.CarbsG = residualCarbs(target, m.ProteinG, m.FatG)
	return withPercentages(m)
}

func residualCarbs(target, proteinG, fatG int) int {
	return int(math.Round(float64(target-proteinG*4-fatG*9) / 4))
}

// withPercentages sets each macro's share of the gram calories. Shares are
// rounded with the largest-remainder method so they always sum to 100.
func withPercentages(m models.Macros) models.Macros {
	kcal := [3]float64{
		math.Max(float64(m.ProteinG*4), 0),
		math.Max(float64(m.CarbsG*4), 0),
		math.Max(float64(m.FatG*9), 0),
	}
	total := kcal[0] + kcal[1] + kcal[2]
	if total == 0 {
		m.ProteinPercentage, m.CarbsPercentage, m.FatPercentage = 0, 0, 0
		return m
	}

	var pct [3]int
	var rem [3]float64
	sum := 0
	for i, k := range kcal {
		exact := k / total * 100
		pct[i] = int(math.Floor(exact))
		rem[i] = exact - float64(pct[i])
		sum += pct[i]
	}
	for ; sum < 100; sum++ {
		best := 0
		for i := 1; i < 3; i++ {
			if rem[i] > rem[best] {
				best = i
			}
		}
		pct[best]++
		rem[best] = -1
	}

	m.ProteinPercentage, m.CarbsPercentage, m.FatPercentage = pct[0], pct[1], pct[2]
	return m
}

// Micronutrients returns the daily micronutrient targets for sex and age.
// Calcium and iron change for women over 50.
func Micronutrients(sex models.Sex, ageYears int) models.MicronutrientTargets {
	if sex == models.SexMale {
		return models.MicronutrientTargets{
			FiberG:      38,
			CalciumMg:   1000,
			IronMg:      8,
			VitaminDMcg: 15,
			VitaminCMg:  90,
			SodiumMg:    2300,
			PotassiumMg: 3400,
			MagnesiumMg: 420,
			ZincMg:      11,
			WaterMl:     3700,
		}
	}

	t := models.MicronutrientTargets{
		FiberG:      25,
		CalciumMg:   1000,
		IronMg:      18,
		VitaminDMcg: 15,
		VitaminCMg:  75,
		SodiumMg:    2300,
		PotassiumMg: 2600,
		MagnesiumMg: 320,
		ZincMg:      8,
		WaterMl:     2700,
	}
	if ageYears > 50 {
		t.CalciumMg = 1200
		t.IronMg = 8
	}
	return t
}
