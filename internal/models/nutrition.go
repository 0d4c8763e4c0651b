package models

// NutrientRestriction caps (or flags) a nutrient for a medical condition.
// A nil UpperLimit means the nutrient should be monitored without a numeric cap.
type NutrientRestriction struct {
	Nutrient   string   `json:"nutrient" yaml:"nutrient"`
	UpperLimit *float64 `json:"upper_limit,omitempty" yaml:"upper_limit,omitempty"`
	Unit       string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	Reason     string   `json:"reason" yaml:"reason"`
}

// Macros holds daily macronutrient grams and their share of total calories.
type Macros struct {
	ProteinG          int `json:"protein_g"`
	CarbsG            int `json:"carbs_g"`
	FatG              int `json:"fat_g"`
	ProteinPercentage int `json:"protein_percentage"`
	CarbsPercentage   int `json:"carbs_percentage"`
	FatPercentage     int `json:"fat_percentage"`
}

// Kcal returns the energy content of the macro grams (4/4/9 kcal per gram).
func (m Macros) Kcal() int {
	return m.ProteinG*4 + m.CarbsG*4 + m.FatG*9
}

// MicronutrientTargets is the fixed-key daily micronutrient table.
type MicronutrientTargets struct {
	FiberG      int `json:"fiber_g"`
	CalciumMg   int `json:"calcium_mg"`
	IronMg      int `json:"iron_mg"`
	VitaminDMcg int `json:"vitamin_d_mcg"`
	VitaminCMg  int `json:"vitamin_c_mg"`
	SodiumMg    int `json:"sodium_mg"`
	PotassiumMg int `json:"potassium_mg"`
	MagnesiumMg int `json:"magnesium_mg"`
	ZincMg      int `json:"zinc_mg"`
	WaterMl     int `json:"water_ml"`
}

// HealthAdjustments records everything the health overrides contributed.
type HealthAdjustments struct {
	Conditions         []string              `json:"conditions,omitempty"`
	DietaryPreferences []string              `json:"dietary_preferences,omitempty"`
	Restrictions       []NutrientRestriction `json:"restrictions,omitempty"`
	FocusNutrients     []string              `json:"focus_nutrients,omitempty"`
	Recommendations    []string              `json:"recommendations,omitempty"`
	Warnings           []string              `json:"warnings,omitempty"`
	AppliedOverrides   []string              `json:"applied_overrides,omitempty"`
}

// NutritionExplanation shows each formula with the numbers substituted in.
type NutritionExplanation struct {
	BMR            string `json:"bmr"`
	TDEE           string `json:"tdee"`
	TargetCalories string `json:"target_calories"`
	Protein        string `json:"protein"`
	Fat            string `json:"fat"`
	Carbs          string `json:"carbs"`
}

// NutritionPlan is the computed daily nutrition target.
type NutritionPlan struct {
	BMR                  int                  `json:"bmr"`
	TDEE                 int                  `json:"tdee"`
	TargetCalories       int                  `json:"target_calories"`
	Macros               Macros               `json:"macros"`
	MicronutrientTargets MicronutrientTargets `json:"micronutrient_targets"`
	HealthAdjustments    *HealthAdjustments   `json:"health_adjustments,omitempty"`
	Explanation          NutritionExplanation `json:"explanation"`
}
