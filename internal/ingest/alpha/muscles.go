package alpha

import "strings"

// muscleRule maps exercise-name fragments to the muscles they train. Rules
// are checked in order and the first match wins, so specific names come
// before generic ones ("leg curl" before "curl").
type muscleRule struct {
	fragments []string
	muscles   []string
}

var muscleRules = []muscleRule{
	{[]string{"face pull", "rear delt", "reverse fly"}, []string{"shoulders", "upper back"}},
	{[]string{"romanian deadlift", "rdl", "stiff leg", "good morning"}, []string{"hamstrings", "glutes", "lower back"}},
	{[]string{"deadlift"}, []string{"hamstrings", "glutes", "lower back", "upper back"}},
	{[]string{"hyperextension", "back extension"}, []string{"lower back", "glutes"}},
	{[]string{"hip thrust", "glute bridge", "kickback"}, []string{"glutes"}},
	{[]string{"leg press", "lunge", "split squat", "step-up", "step up"}, []string{"quadriceps", "glutes"}},
	{[]string{"squat"}, []string{"quadriceps", "glutes", "hamstrings"}},
	{[]string{"leg extension"}, []string{"quadriceps"}},
	{[]string{"leg curl", "hamstring curl", "nordic"}, []string{"hamstrings"}},
	{[]string{"calf"}, []string{"calves"}},
	{[]string{"leg raise", "crunch", "plank", "sit-up", "ab wheel"}, []string{"core"}},
	{[]string{"fly", "flye", "pec deck"}, []string{"chest"}},
	{[]string{"bench press", "chest press", "push-up", "push up", "dip"}, []string{"chest", "triceps", "shoulders"}},
	{[]string{"overhead press", "shoulder press", "military press", "arnold"}, []string{"shoulders", "triceps"}},
	{[]string{"lateral raise", "front raise", "upright row"}, []string{"shoulders"}},
	{[]string{"pull-up", "pull up", "chin-up", "chin up", "pulldown", "pull-down"}, []string{"lats", "biceps", "upper back"}},
	{[]string{"row"}, []string{"upper back", "lats", "biceps"}},
	{[]string{"shrug"}, []string{"upper back"}},
	{[]string{"curl"}, []string{"biceps"}},
	{[]string{"tricep", "pushdown", "skull crusher", "extension"}, []string{"triceps"}},
	{[]string{"press"}, []string{"chest", "triceps", "shoulders"}},
}

// MusclesFor returns the muscles an exercise trains, or nil if the name is
// not recognized.
func MusclesFor(exercise string) []string {
	name := strings.ToLower(exercise)
	for _, r := range muscleRules {
		for _, f := range r.fragments {
			if strings.Contains(name, f) {
				return r.muscles
			}
		}
	}
	return nil
}
