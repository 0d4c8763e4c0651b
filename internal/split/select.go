// Package split selects and instantiates weekly workout split templates.
package split

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/claude/fitcoach/internal/models"
)

// Family names the template family a plan was built from.
const (
	FamilyFullBody   = "full_body"
	FamilyPPL        = "push_pull_legs"
	FamilyUpperLower = "upper_lower"
	FamilyBodyPart   = "body_part"
	FamilyPPLTwice   = "push_pull_legs_x2"
	FamilySport      = "sport"
)

// Working sets per compound lift for the goal-driven templates.
var levelSets = map[models.ExperienceLevel]int{
	models.LevelBeginner:     3,
	models.LevelIntermediate: 4,
	models.LevelAdvanced:     5,
}

// Adjustment to the fixed prescription of the rigid templates.
var levelAdjust = map[models.ExperienceLevel]int{
	models.LevelBeginner:     -1,
	models.LevelIntermediate: 0,
	models.LevelAdvanced:     1,
}

// weekdays spreads n sessions across the week (1 = Monday), keeping a rest
// day between sessions where the count allows it.
var weekdays = map[int][]int{
	1: {1},
	2: {1, 4},
	3: {1, 3, 5},
	4: {1, 2, 4, 5},
	5: {1, 2, 3, 4, 5},
	6: {1, 2, 3, 4, 5, 6},
}

// Sports returns the sports with a dedicated template, sorted.
func Sports() []string {
	return slices.Sorted(maps.Keys(sportTemplates))
}

// RepRange returns the goal-driven rep range used by the full-body and
// three-day templates.
func RepRange(goal models.FitnessGoal) string {
	switch goal {
	case models.GoalMuscleGain:
		return "8-12"
	case models.GoalEndurance:
		return "15-20"
	default:
		return "10-15"
	}
}

// Family reports which template family Select uses for the given inputs.
func Family(goal models.FitnessGoal, daysPerWeek int, sport string) string {
	if goal == models.GoalSportSpecific && sport != "" {
		if _, ok := sportTemplates[normalizeSport(sport)]; ok {
			return FamilySport
		}
		return FamilyPPL
	}
	switch {
	case daysPerWeek <= 2:
		return FamilyFullBody
	case daysPerWeek == 3:
		return FamilyPPL
	case daysPerWeek == 4:
		return FamilyUpperLower
	case daysPerWeek == 5:
		return FamilyBodyPart
	default:
		return FamilyPPLTwice
	}
}

// Select builds a weekly plan. It never fails: an unknown level is treated
// as beginner, an unknown sport falls back to the three-day template, and
// day counts outside 2..6 are served by the nearest family.
func Select(goal models.FitnessGoal, level models.ExperienceLevel, daysPerWeek int, sport string) models.WorkoutPlan {
	if !level.Valid() {
		level = models.LevelBeginner
	}
	b := builder{goal: goal, level: level}

	if goal == models.GoalSportSpecific && sport != "" {
		key := normalizeSport(sport)
		if t, ok := sportTemplates[key]; ok {
			return b.sport(t, daysPerWeek)
		}
		plan := b.threeDay()
		plan.Description = fmt.Sprintf("No dedicated template for %q; using the general three-day split. %s", sport, plan.Description)
		return plan
	}

	switch Family(goal, daysPerWeek, sport) {
	case FamilyFullBody:
		return b.fullBody(daysPerWeek)
	case FamilyPPL:
		return b.threeDay()
	case FamilyUpperLower:
		return b.upperLower()
	case FamilyBodyPart:
		return b.bodyPart()
	default:
		return b.pplTwice()
	}
}

type builder struct {
	goal  models.FitnessGoal
	level models.ExperienceLevel
}

func (b builder) fullBody(daysPerWeek int) models.WorkoutPlan {
	n := 1
	if daysPerWeek == 2 {
		n = 2
	}
	schedule := weekdays[n]
	days := make([]models.WorkoutDay, 0, n)
	for i := range n {
		d := b.goalDriven(fullBodyDay, schedule[i])
		if n > 1 {
			d.DayLabel = fmt.Sprintf("%s %d", d.DayLabel, i+1)
		}
		days = append(days, d)
	}
	return models.WorkoutPlan{
		Name:        "Full Body",
		Description: b.describe(n, "full-body"),
		Rationale: "Each session trains every major muscle group with compound lifts, so even two " +
			"sessions a week reach the twice-weekly frequency per muscle that best supports strength " +
			"and hypertrophy gains. Total weekly volume stays low, which suits limited schedules and " +
			"leaves at least 48 hours of recovery between sessions.",
		Days: days,
	}
}

func (b builder) threeDay() models.WorkoutPlan {
	schedule := weekdays[3]
	return models.WorkoutPlan{
		Name:        "Push/Pull/Legs",
		Description: b.describe(3, "push/pull/legs"),
		Rationale: "Grouping muscles by movement pattern lets each session accumulate enough sets per " +
			"muscle to reach productive weekly volume, while overlapping muscles (triceps on push, " +
			"biceps on pull) are never trained on consecutive days. Each muscle gets a full week " +
			"to recover, which keeps fatigue manageable on a three-day schedule.",
		Days: []models.WorkoutDay{
			b.goalDriven(pushDay, schedule[0]),
			b.goalDriven(pullDay, schedule[1]),
			b.goalDriven(legDay, schedule[2]),
		},
	}
}

func (b builder) upperLower() models.WorkoutPlan {
	schedule := weekdays[4]
	return models.WorkoutPlan{
		Name:        "Upper/Lower",
		Description: b.describe(4, "upper/lower"),
		Rationale: "Alternating upper and lower sessions trains every muscle twice a week, the frequency " +
			"associated with the best hypertrophy outcomes per unit of volume. Heavy and moderate rep " +
			"ranges are split across the A and B days so both strength and size are developed.",
		Days: []models.WorkoutDay{
			b.rigid(upperA, schedule[0]),
			b.rigid(lowerA, schedule[1]),
			b.rigid(upperB, schedule[2]),
			b.rigid(lowerB, schedule[3]),
		},
	}
}

func (b builder) bodyPart() models.WorkoutPlan {
	schedule := weekdays[5]
	defs := []dayDef{chestDay, backDay, shoulderDay, legsDay5, armsDay}
	days := make([]models.WorkoutDay, len(defs))
	for i, d := range defs {
		days[i] = b.rigid(d, schedule[i])
	}
	return models.WorkoutPlan{
		Name:        "Body Part Split",
		Description: b.describe(5, "one-muscle-group-per-day"),
		Rationale: "Dedicating each session to one muscle group allows high per-session volume and a " +
			"full week of recovery for that group. It suits lifters who already tolerate high " +
			"training volume and want to emphasize specific muscles.",
		Days: days,
	}
}

func (b builder) pplTwice() models.WorkoutPlan {
	schedule := weekdays[6]
	defs := []dayDef{push6A, pull6A, legs6A, push6B, pull6B, legs6B}
	days := make([]models.WorkoutDay, len(defs))
	for i, d := range defs {
		days[i] = b.rigid(d, schedule[i])
	}
	return models.WorkoutPlan{
		Name:        "Push/Pull/Legs x2",
		Description: b.describe(6, "push/pull/legs twice-through"),
		Rationale: "Running push/pull/legs twice a week hits every muscle twice with high weekly volume, " +
			"approaching the upper volume landmarks trained lifters respond to. The A and B " +
			"rotations vary exercise selection to spread joint stress across the week.",
		Days: days,
	}
}

func (b builder) sport(t sportTemplate, daysPerWeek int) models.WorkoutPlan {
	n := min(max(daysPerWeek, 1), len(t.days))
	schedule := weekdays[n]
	days := make([]models.WorkoutDay, n)
	for i := range n {
		days[i] = b.rigid(t.days[i], schedule[i])
	}
	return models.WorkoutPlan{
		Name:        t.name,
		Description: b.describe(n, strings.ToLower(t.name)),
		Rationale:   t.rationale,
		Days:        days,
	}
}

func (b builder) describe(days int, family string) string {
	return fmt.Sprintf("%d-day %s plan for %s at %s level.", days, family,
		strings.ReplaceAll(string(b.goal), "_", " "), b.level)
}

// goalDriven instantiates a template whose reps follow the goal and whose
// sets follow the level, with isolation work one set below the compounds.
func (b builder) goalDriven(def dayDef, dayOfWeek int) models.WorkoutDay {
	compoundSets := levelSets[b.level]
	isolationSets := max(compoundSets-1, 2)
	reps := RepRange(b.goal)

	return newDay(def, dayOfWeek, func(e exerciseDef) (int, string) {
		if e.compound {
			return compoundSets, reps
		}
		return isolationSets, reps
	})
}

// rigid instantiates a template with fixed reps, shifting sets by level.
func (b builder) rigid(def dayDef, dayOfWeek int) models.WorkoutDay {
	adj := levelAdjust[b.level]
	return newDay(def, dayOfWeek, func(e exerciseDef) (int, string) {
		return max(e.sets+adj, 1), e.reps
	})
}

func newDay(def dayDef, dayOfWeek int, prescribe func(exerciseDef) (int, string)) models.WorkoutDay {
	day := models.WorkoutDay{
		DayLabel:          def.label,
		DayOfWeek:         dayOfWeek,
		SplitTag:          def.tag,
		FocusMuscleGroups: slices.Clone(def.focus),
		Exercises:         make([]models.ExerciseTemplate, 0, len(def.exercises)),
	}
	for _, e := range def.exercises {
		sets, reps := prescribe(e)
		day.Exercises = append(day.Exercises, models.ExerciseTemplate{
			Name:          e.name,
			TargetSets:    sets,
			RepRange:      reps,
			RestSeconds:   e.rest,
			Notes:         e.notes,
			TargetMuscles: slices.Clone(e.muscles),
		})
	}
	return day
}

func normalizeSport(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
