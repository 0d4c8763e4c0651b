package split

import (
	"testing"

	"github.com/claude/fitcoach/internal/models"
)

func checkPlan(t *testing.T, plan models.WorkoutPlan) {
	t.Helper()
	if len(plan.Days) == 0 {
		t.Fatal("plan has no days")
	}
	if plan.Rationale == "" {
		t.Error("plan has empty rationale")
	}
	prevDOW := 0
	for _, d := range plan.Days {
		if d.DayOfWeek < 1 || d.DayOfWeek > 7 {
			t.Errorf("%s: day of week = %d, want 1..7", d.DayLabel, d.DayOfWeek)
		}
		if d.DayOfWeek <= prevDOW {
			t.Errorf("%s: day of week %d does not follow %d", d.DayLabel, d.DayOfWeek, prevDOW)
		}
		prevDOW = d.DayOfWeek
		if len(d.Exercises) == 0 {
			t.Errorf("%s: no exercises", d.DayLabel)
		}
		for _, ex := range d.Exercises {
			if ex.TargetSets < 1 {
				t.Errorf("%s/%s: sets = %d, want >= 1", d.DayLabel, ex.Name, ex.TargetSets)
			}
			if len(ex.TargetMuscles) == 0 {
				t.Errorf("%s/%s: no target muscles", d.DayLabel, ex.Name)
			}
			if ex.RepRange == "" {
				t.Errorf("%s/%s: empty rep range", d.DayLabel, ex.Name)
			}
		}
	}
}

func TestSelectAllCombinations(t *testing.T) {
	for _, goal := range models.FitnessGoals {
		for _, level := range models.ExperienceLevels {
			for days := 2; days <= 6; days++ {
				plan := Select(goal, level, days, "")
				checkPlan(t, plan)
			}
		}
	}
}

func TestSelectDayCounts(t *testing.T) {
	tests := []struct {
		days     int
		wantDays int
		wantName string
	}{
		{1, 1, "Full Body"},
		{2, 2, "Full Body"},
		{3, 3, "Push/Pull/Legs"},
		{4, 4, "Upper/Lower"},
		{5, 5, "Body Part Split"},
		{6, 6, "Push/Pull/Legs x2"},
		{7, 6, "Push/Pull/Legs x2"},
	}

	for _, tt := range tests {
		plan := Select(models.GoalGeneralFitness, models.LevelIntermediate, tt.days, "")
		if len(plan.Days) != tt.wantDays {
			t.Errorf("days=%d: len(Days) = %d, want %d", tt.days, len(plan.Days), tt.wantDays)
		}
		if plan.Name != tt.wantName {
			t.Errorf("days=%d: Name = %q, want %q", tt.days, plan.Name, tt.wantName)
		}
	}
}

func TestFullBodyDuplicatedOnSecondWeekday(t *testing.T) {
	plan := Select(models.GoalMuscleGain, models.LevelBeginner, 2, "")
	if plan.Days[0].DayOfWeek != 1 || plan.Days[1].DayOfWeek != 4 {
		t.Errorf("schedule = [%d %d], want [1 4]", plan.Days[0].DayOfWeek, plan.Days[1].DayOfWeek)
	}
	if len(plan.Days[0].Exercises) != len(plan.Days[1].Exercises) {
		t.Fatal("duplicated days differ in length")
	}
	for i := range plan.Days[0].Exercises {
		if plan.Days[0].Exercises[i].Name != plan.Days[1].Exercises[i].Name {
			t.Errorf("exercise %d differs: %q vs %q", i, plan.Days[0].Exercises[i].Name, plan.Days[1].Exercises[i].Name)
		}
	}

	// The copies must not share backing arrays.
	plan.Days[0].Exercises[0].TargetMuscles[0] = "changed"
	if plan.Days[1].Exercises[0].TargetMuscles[0] == "changed" {
		t.Error("duplicated days share target muscle slices")
	}
}

func TestRepRangeByGoal(t *testing.T) {
	tests := []struct {
		goal models.FitnessGoal
		want string
	}{
		{models.GoalMuscleGain, "8-12"},
		{models.GoalEndurance, "15-20"},
		{models.GoalFatLoss, "10-15"},
		{models.GoalGeneralFitness, "10-15"},
	}

	for _, tt := range tests {
		for _, days := range []int{2, 3} {
			plan := Select(tt.goal, models.LevelIntermediate, days, "")
			for _, d := range plan.Days {
				for _, ex := range d.Exercises {
					if ex.RepRange != tt.want {
						t.Errorf("%s/%d days: %s reps = %q, want %q", tt.goal, days, ex.Name, ex.RepRange, tt.want)
					}
				}
			}
		}
	}
}

func TestRigidTemplatesIgnoreGoal(t *testing.T) {
	for _, days := range []int{4, 5, 6} {
		a := Select(models.GoalMuscleGain, models.LevelIntermediate, days, "")
		b := Select(models.GoalEndurance, models.LevelIntermediate, days, "")
		for i := range a.Days {
			for j := range a.Days[i].Exercises {
				if a.Days[i].Exercises[j].RepRange != b.Days[i].Exercises[j].RepRange {
					t.Errorf("days=%d: %s reps differ by goal", days, a.Days[i].Exercises[j].Name)
				}
			}
		}
	}
}

func TestSetsIncreaseWithLevel(t *testing.T) {
	for _, days := range []int{2, 3, 4, 5, 6} {
		beginner := Select(models.GoalGeneralFitness, models.LevelBeginner, days, "")
		inter := Select(models.GoalGeneralFitness, models.LevelIntermediate, days, "")
		adv := Select(models.GoalGeneralFitness, models.LevelAdvanced, days, "")

		first := func(p models.WorkoutPlan) int { return p.Days[0].Exercises[0].TargetSets }
		if !(first(beginner) < first(inter) && first(inter) < first(adv)) {
			t.Errorf("days=%d: sets %d/%d/%d not increasing by level", days, first(beginner), first(inter), first(adv))
		}
	}
}

func TestCompoundsPrecedeIsolation(t *testing.T) {
	plan := Select(models.GoalMuscleGain, models.LevelIntermediate, 3, "")
	for _, d := range plan.Days {
		seenIsolation := false
		for _, ex := range d.Exercises {
			if ex.TargetSets == levelSets[models.LevelIntermediate] {
				if seenIsolation {
					t.Errorf("%s: compound %s after isolation work", d.DayLabel, ex.Name)
				}
			} else {
				seenIsolation = true
			}
		}
	}
}

func TestSportTemplates(t *testing.T) {
	for _, sport := range Sports() {
		for days := 2; days <= 6; days++ {
			plan := Select(models.GoalSportSpecific, models.LevelIntermediate, days, sport)
			checkPlan(t, plan)
			want := min(days, 4)
			if len(plan.Days) != want {
				t.Errorf("%s/%d: len(Days) = %d, want %d", sport, days, len(plan.Days), want)
			}
		}
	}
	if got := len(Sports()); got != 5 {
		t.Errorf("len(Sports) = %d, want 5", got)
	}
}

func TestSportNameNormalized(t *testing.T) {
	plan := Select(models.GoalSportSpecific, models.LevelBeginner, 3, "  Running ")
	if plan.Name != "Running Performance" {
		t.Errorf("Name = %q, want %q", plan.Name, "Running Performance")
	}
}

func TestUnknownSportFallsBackToThreeDay(t *testing.T) {
	plan := Select(models.GoalSportSpecific, models.LevelBeginner, 5, "curling")
	if plan.Name != "Push/Pull/Legs" {
		t.Errorf("Name = %q, want Push/Pull/Legs", plan.Name)
	}
	if len(plan.Days) != 3 {
		t.Errorf("len(Days) = %d, want 3", len(plan.Days))
	}
	checkPlan(t, plan)
}

func TestSportIgnoredForOtherGoals(t *testing.T) {
	plan := Select(models.GoalMuscleGain, models.LevelBeginner, 4, "running")
	if plan.Name != "Upper/Lower" {
		t.Errorf("Name = %q, want Upper/Lower", plan.Name)
	}
}

func TestUnknownLevelTreatedAsBeginner(t *testing.T) {
	got := Select(models.GoalGeneralFitness, "wizard", 3, "")
	want := Select(models.GoalGeneralFitness, models.LevelBeginner, 3, "")
	if got.Days[0].Exercises[0].TargetSets != want.Days[0].Exercises[0].TargetSets {
		t.Errorf("sets = %d, want %d", got.Days[0].Exercises[0].TargetSets, want.Days[0].Exercises[0].TargetSets)
	}
}

func TestFamily(t *testing.T) {
	tests := []struct {
		goal  models.FitnessGoal
		days  int
		sport string
		want  string
	}{
		{models.GoalMuscleGain, 2, "", FamilyFullBody},
		{models.GoalMuscleGain, 3, "", FamilyPPL},
		{models.GoalMuscleGain, 4, "", FamilyUpperLower},
		{models.GoalMuscleGain, 5, "", FamilyBodyPart},
		{models.GoalMuscleGain, 6, "", FamilyPPLTwice},
		{models.GoalSportSpecific, 6, "soccer", FamilySport},
		{models.GoalSportSpecific, 6, "darts", FamilyPPL},
		{models.GoalSportSpecific, 4, "", FamilyUpperLower},
	}

	for _, tt := range tests {
		if got := Family(tt.goal, tt.days, tt.sport); got != tt.want {
			t.Errorf("Family(%s, %d, %q) = %q, want %q", tt.goal, tt.days, tt.sport, got, tt.want)
		}
	}
}
