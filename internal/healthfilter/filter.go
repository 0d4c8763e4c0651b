// Package healthfilter rewrites a workout plan so that it respects a user's
// physical limitations and medical conditions.
package healthfilter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/claude/fitcoach/internal/healthrules"
	"github.com/claude/fitcoach/internal/models"
)

// ReasonContraindicated is the removal reason for exercises with no safe substitute.
const ReasonContraindicated = "contraindicated"

// CautionNote is attached to every exercise that matches a caution fragment.
const CautionNote = "Use a lighter weight and focus on strict form."

// Removal records an exercise dropped from the plan.
type Removal struct {
	DayLabel string `json:"day_label"`
	Exercise string `json:"exercise"`
	Reason   string `json:"reason"`
	RuleID   string `json:"rule_id"`
}

// Substitution records an exercise replaced by a safe alternative.
type Substitution struct {
	DayLabel    string `json:"day_label"`
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
	RuleID      string `json:"rule_id"`
}

// Modification records an exercise kept with added safety notes.
type Modification struct {
	DayLabel string   `json:"day_label"`
	Exercise string   `json:"exercise"`
	Notes    []string `json:"notes"`
}

// Counts tallies changes by kind.
type Counts struct {
	Removed     int `json:"removed"`
	Substituted int `json:"substituted"`
	Modified    int `json:"modified"`
}

// FilteredPlan is the plan after filtering plus the bookkeeping of what changed.
// Filtered is false when the profile had nothing to apply and the plan was
// returned untouched.
type FilteredPlan struct {
	Plan              models.WorkoutPlan `json:"plan"`
	Filtered          bool               `json:"filtered"`
	RemovedExercises  []Removal          `json:"removed_exercises"`
	Substitutions     []Substitution     `json:"substitutions"`
	ModifiedExercises []Modification     `json:"modified_exercises"`
	Warnings          []string           `json:"warnings"`
	Recommendations   []string           `json:"recommendations"`
	Counts            Counts             `json:"counts"`
}

// sourcedFragment is a catalog fragment with the rule that contributed it.
type sourcedFragment struct {
	fragment string
	ruleID   string
}

type fragmentSet []sourcedFragment

func (s fragmentSet) match(name string) (sourcedFragment, bool) {
	for _, f := range s {
		if healthrules.Matches(f.fragment, name) {
			return f, true
		}
	}
	return sourcedFragment{}, false
}

func (s *fragmentSet) add(fragments []string, r healthrules.Rule, seen map[string]bool) {
	for _, f := range fragments {
		key := strings.ToLower(f)
		if seen[key] {
			continue
		}
		seen[key] = true
		*s = append(*s, sourcedFragment{fragment: f, ruleID: r.ID})
	}
}

// Filter applies the profile's limitation and condition rules to plan.
//
// Contraindicated exercises are replaced by the first safe alternative that
// is not itself contraindicated, or removed when none exists. Exercises that
// only need caution are kept with safety notes. The input plan is never
// mutated, and a profile with no limitations or conditions returns the plan
// as-is with Filtered set to false.
func Filter(plan models.WorkoutPlan, profile models.HealthProfile, catalog *healthrules.Catalog) FilteredPlan {
	out := FilteredPlan{
		Plan:              plan,
		RemovedExercises:  []Removal{},
		Substitutions:     []Substitution{},
		ModifiedExercises: []Modification{},
		Warnings:          []string{},
		Recommendations:   []string{},
	}
	if profile.IsEmpty() {
		return out
	}

	matched := catalog.Resolve(profile)
	f := newFilter(matched)

	result := plan.Clone()
	for i := range result.Days {
		f.filterDay(&result.Days[i], &out)
	}

	out.Warnings = append(out.Warnings, f.warnings()...)
	for _, d := range result.Days {
		if len(d.Exercises) == 0 {
			out.Warnings = appendUnique(out.Warnings,
				fmt.Sprintf("All exercises on %s were removed; use the day for mobility work or rest.", d.DayLabel))
		}
	}
	out.Recommendations = append(out.Recommendations, f.recommendations()...)

	out.Counts = Counts{
		Removed:     len(out.RemovedExercises),
		Substituted: len(out.Substitutions),
		Modified:    len(out.ModifiedExercises),
	}
	result.HealthModifications = &models.HealthModifications{
		Limitations: ruleIDs(matched.Limitations, func(r healthrules.LimitationRule) string { return r.ID }),
		Conditions:  ruleIDs(matched.Conditions, func(r healthrules.ConditionRule) string { return r.ID }),
		Removed:     out.Counts.Removed,
		Substituted: out.Counts.Substituted,
		Modified:    out.Counts.Modified,
	}
	out.Plan = result
	out.Filtered = true
	return out
}

type filter struct {
	matched         healthrules.Matched
	contraindicated fragmentSet
	cautioned       fragmentSet
}

func newFilter(m healthrules.Matched) *filter {
	f := &filter{matched: m}
	seenContra := make(map[string]bool)
	seenCaution := make(map[string]bool)
	for _, l := range m.Limitations {
		f.contraindicated.add(l.Contraindicated, l.Rule, seenContra)
		f.cautioned.add(l.Caution, l.Rule, seenCaution)
	}
	for _, c := range m.Conditions {
		f.contraindicated.add(c.Contraindicated, c.Rule, seenContra)
		f.cautioned.add(c.Caution, c.Rule, seenCaution)
	}
	return f
}

func (f *filter) filterDay(day *models.WorkoutDay, out *FilteredPlan) {
	kept := day.Exercises[:0]
	for _, ex := range day.Exercises {
		if hit, ok := f.contraindicated.match(ex.Name); ok {
			sub, rule, found := f.substitute(ex.Name)
			if !found {
				out.RemovedExercises = append(out.RemovedExercises, Removal{
					DayLabel: day.DayLabel,
					Exercise: ex.Name,
					Reason:   ReasonContraindicated,
					RuleID:   hit.ruleID,
				})
				continue
			}
			out.Substitutions = append(out.Substitutions, Substitution{
				DayLabel:    day.DayLabel,
				Original:    ex.Name,
				Replacement: sub,
				RuleID:      rule.ID,
			})
			ex.Notes = fmt.Sprintf("Substituted for %s (%s).", ex.Name, rule.Name)
			ex.Name = sub
			kept = append(kept, ex)
			continue
		}

		if _, ok := f.cautioned.match(ex.Name); ok {
			notes := append([]string{CautionNote}, f.intensityNotes(ex.Name)...)
			out.ModifiedExercises = append(out.ModifiedExercises, Modification{
				DayLabel: day.DayLabel,
				Exercise: ex.Name,
				Notes:    notes,
			})
			ex.Notes = joinNotes(ex.Notes, notes)
		}
		kept = append(kept, ex)
	}
	day.Exercises = kept
}

// substitute scans the profile's limitation rules, in profile order, for a
// safe alternative to name. The first substitute that does not itself match a
// contraindicated fragment wins.
func (f *filter) substitute(name string) (string, healthrules.LimitationRule, bool) {
	for _, l := range f.matched.Limitations {
		for _, alt := range l.SafeAlternatives {
			if !healthrules.Matches(alt.Fragment, name) {
				continue
			}
			for _, s := range alt.Substitutes {
				if _, banned := f.contraindicated.match(s); !banned {
					return s, l, true
				}
			}
		}
	}
	return "", healthrules.LimitationRule{}, false
}

// intensityNotes returns the max-intensity notes of the conditions whose
// caution fragments match name.
func (f *filter) intensityNotes(name string) []string {
	var out []string
	for _, c := range f.matched.Conditions {
		if c.MaxIntensity == "" {
			continue
		}
		if _, ok := healthrules.MatchAny(c.Caution, name); ok {
			out = appendUnique(out, fmt.Sprintf("%s: keep intensity %s.", c.Name, c.MaxIntensity))
		}
	}
	return out
}

func (f *filter) warnings() []string {
	var out []string
	for _, l := range f.matched.Limitations {
		out = appendUnique(out, l.Warnings...)
	}
	for _, c := range f.matched.Conditions {
		out = appendUnique(out, c.Warnings...)
	}
	return out
}

// recommendations collects limitation recommendations, plus those of
// conditions that list recommended exercise types.
func (f *filter) recommendations() []string {
	var out []string
	for _, l := range f.matched.Limitations {
		out = appendUnique(out, l.Recommendations...)
	}
	for _, c := range f.matched.Conditions {
		if len(c.RecommendedExercises) == 0 {
			continue
		}
		out = appendUnique(out, c.Recommendations...)
		out = appendUnique(out, fmt.Sprintf("Recommended for %s: %s.", c.Name, strings.Join(c.RecommendedExercises, ", ")))
	}
	return out
}

func joinNotes(existing string, notes []string) string {
	all := strings.Join(notes, " ")
	if existing == "" {
		return all
	}
	return existing + " " + all
}

func appendUnique(dst []string, items ...string) []string {
	for _, it := range items {
		if !slices.Contains(dst, it) {
			dst = append(dst, it)
		}
	}
	return dst
}

func ruleIDs[T any](rules []T, id func(T) string) []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		out = append(out, id(r))
	}
	return out
}
