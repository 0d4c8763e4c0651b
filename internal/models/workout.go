package models

// FitnessGoal is the primary training objective a plan or nutrition target is built for.
type FitnessGoal string

const (
	GoalMuscleGain     FitnessGoal = "muscle_gain"
	GoalFatLoss        FitnessGoal = "fat_loss"
	GoalEndurance      FitnessGoal = "endurance"
	GoalSportSpecific  FitnessGoal = "sport_specific"
	GoalGeneralFitness FitnessGoal = "general_fitness"
)

// FitnessGoals lists every accepted goal in display order.
var FitnessGoals = []FitnessGoal{GoalMuscleGain, GoalFatLoss, GoalEndurance, GoalSportSpecific, GoalGeneralFitness}

// Valid reports whether g is one of the known goals.
func (g FitnessGoal) Valid() bool {
	for _, known := range FitnessGoals {
		if g == known {
			return true
		}
	}
	return false
}

// ExperienceLevel drives per-exercise set counts.
type ExperienceLevel string

const (
	LevelBeginner     ExperienceLevel = "beginner"
	LevelIntermediate ExperienceLevel = "intermediate"
	LevelAdvanced     ExperienceLevel = "advanced"
)

// ExperienceLevels lists every accepted level, least experienced first.
var ExperienceLevels = []ExperienceLevel{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Valid reports whether l is one of the known levels.
func (l ExperienceLevel) Valid() bool {
	for _, known := range ExperienceLevels {
		if l == known {
			return true
		}
	}
	return false
}

// ExerciseTemplate is a single prescribed exercise within a workout day.
type ExerciseTemplate struct {
	Name          string   `json:"name"`
	TargetSets    int      `json:"target_sets"`
	RepRange      string   `json:"rep_range"`
	RestSeconds   int      `json:"rest_seconds"`
	Notes         string   `json:"notes,omitempty"`
	TargetMuscles []string `json:"target_muscles"`
}

// WorkoutDay is one scheduled training day. Exercise order is significant:
// compound movements precede isolation work.
type WorkoutDay struct {
	DayLabel          string             `json:"day_label"`
	DayOfWeek         int                `json:"day_of_week"` // 1 = Monday .. 7 = Sunday
	SplitTag          string             `json:"split_tag"`
	FocusMuscleGroups []string           `json:"focus_muscle_groups"`
	Exercises         []ExerciseTemplate `json:"exercises"`
}

// WorkoutPlan is a complete weekly split.
type WorkoutPlan struct {
	Name                string               `json:"name"`
	Description         string               `json:"description"`
	Rationale           string               `json:"rationale"`
	Days                []WorkoutDay         `json:"days"`
	HealthModifications *HealthModifications `json:"health_modifications,omitempty"`
}

// HealthModifications summarizes what health filtering changed in a plan.
type HealthModifications struct {
	Limitations []string `json:"limitations,omitempty"`
	Conditions  []string `json:"conditions,omitempty"`
	Removed     int      `json:"removed"`
	Substituted int      `json:"substituted"`
	Modified    int      `json:"modified"`
}

// WorkoutRequest carries the caller parameters for plan generation.
type WorkoutRequest struct {
	Goal            FitnessGoal     `json:"goal"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	DaysPerWeek     int             `json:"days_per_week"`
	Sport           string          `json:"sport,omitempty"`
}

// Clone returns a deep copy of the plan so callers can rewrite it without
// aliasing the original's slices.
func (p WorkoutPlan) Clone() WorkoutPlan {
	out := p
	if p.HealthModifications != nil {
		hm := *p.HealthModifications
		hm.Limitations = append([]string(nil), p.HealthModifications.Limitations...)
		hm.Conditions = append([]string(nil), p.HealthModifications.Conditions...)
		out.HealthModifications = &hm
	}
	out.Days = make([]WorkoutDay, len(p.Days))
	for i, d := range p.Days {
		out.Days[i] = d.Clone()
	}
	return out
}

// Clone returns a deep copy of the day.
func (d WorkoutDay) Clone() WorkoutDay {
	out := d
	out.FocusMuscleGroups = append([]string(nil), d.FocusMuscleGroups...)
	out.Exercises = make([]ExerciseTemplate, len(d.Exercises))
	for i, ex := range d.Exercises {
		ex.TargetMuscles = append([]string(nil), ex.TargetMuscles...)
		out.Exercises[i] = ex
	}
	return out
}
