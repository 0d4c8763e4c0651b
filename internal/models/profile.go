package models

import "time"

// Sex selects the sex-specific constants in the BMR formula and micronutrient table.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Valid reports whether s is a known value.
func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// ActivityLevel selects the TDEE multiplier.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// ActivityLevels lists the accepted levels, least active first.
var ActivityLevels = []ActivityLevel{ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive}

// Valid reports whether a is one of the known levels.
func (a ActivityLevel) Valid() bool {
	for _, known := range ActivityLevels {
		if a == known {
			return true
		}
	}
	return false
}

// HealthProfile is the read-only health input for filtering and nutrition overrides.
// Ids reference entries in the health-rules catalog; unknown ids are ignored.
type HealthProfile struct {
	PhysicalLimitations []string `json:"physical_limitations"`
	MedicalConditions   []string `json:"medical_conditions"`
	DietaryPreferences  []string `json:"dietary_preferences"`
}

// IsEmpty reports whether the profile has neither limitations nor conditions.
// Dietary preferences alone do not affect workout filtering.
func (p HealthProfile) IsEmpty() bool {
	return len(p.PhysicalLimitations) == 0 && len(p.MedicalConditions) == 0
}

// HasPreference reports whether the profile lists the given dietary preference.
func (p HealthProfile) HasPreference(id string) bool {
	for _, pref := range p.DietaryPreferences {
		if pref == id {
			return true
		}
	}
	return false
}

// PhysiologicalInput holds the body measurements the nutrition formulas need.
type PhysiologicalInput struct {
	AgeYears      int           `json:"age_years"`
	Sex           Sex           `json:"sex"`
	WeightKg      float64       `json:"weight_kg"`
	HeightCm      float64       `json:"height_cm"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	FitnessGoal   FitnessGoal   `json:"fitness_goal"`
}

// UserProfile is the persisted per-user record that feeds the engine.
type UserProfile struct {
	UserID    int                `json:"user_id"`
	Body      PhysiologicalInput `json:"body"`
	Health    HealthProfile      `json:"health"`
	UpdatedAt time.Time          `json:"updated_at"`
}
