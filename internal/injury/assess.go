// Package injury scores per-muscle usage for overtraining risk.
package injury

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/claude/fitcoach/internal/models"
)

// StartTrackingRecommendation is the only recommendation for an empty usage history.
const StartTrackingRecommendation = "Start tracking your workouts to receive personalized injury-risk insights."

// Thresholds for the per-muscle flags.
const (
	frequencyLimit      = 3
	frequencyIntensity  = 7
	fatigueIntensity    = 8
	fatigueWindow       = 48 * time.Hour
	balanceRatio        = 1.5
	moderateRiskPercent = 20.0
	highRiskPercent     = 40.0
)

var (
	upperBodyKeywords = []string{"chest", "pec", "back", "lat", "shoulder", "delt", "bicep", "tricep", "trap", "forearm"}
	lowerBodyKeywords = []string{"quad", "hamstring", "glute", "calf", "calves", "adductor", "abductor", "hip", "leg"}
)

// Assess flags overtrained muscles and rates the overall risk as of now.
// A non-positive plannedWeeklyFrequency disables the planned-frequency check.
func Assess(usage []models.MuscleUsageRecord, plannedWeeklyFrequency int, now time.Time) models.InjuryRiskAssessment {
	if len(usage) == 0 {
		return models.InjuryRiskAssessment{
			RiskLevel:       models.RiskLow,
			FlaggedMuscles:  []models.FlaggedMuscle{},
			Recommendations: []string{StartTrackingRecommendation},
		}
	}

	out := models.InjuryRiskAssessment{
		FlaggedMuscles:  []models.FlaggedMuscle{},
		Recommendations: []string{},
	}
	flagged := make(map[string]bool)

	for _, rec := range usage {
		flags := flagMuscle(rec, now)
		if len(flags) == 0 {
			continue
		}
		flagged[muscleKey(rec)] = true
		out.FlaggedMuscles = append(out.FlaggedMuscles, flags...)
		out.RecoveryPlan = append(out.RecoveryPlan, recoveryStep(rec, flags, now))
	}

	total := len(distinctMuscles(usage))
	out.RiskLevel = RiskFor(len(flagged), total)
	out.NeedsRestDay = out.RiskLevel == models.RiskHigh || out.RiskLevel == models.RiskVeryHigh

	switch out.RiskLevel {
	case models.RiskVeryHigh, models.RiskHigh:
		out.Recommendations = append(out.Recommendations,
			"Take a rest day or limit today's session to light active recovery.")
	case models.RiskModerate:
		out.Recommendations = append(out.Recommendations,
			"Train only muscle groups that are fully recovered today.")
	default:
		out.Recommendations = append(out.Recommendations,
			"All tracked muscles are within safe limits; continue your planned training.")
	}
	if rec, ok := balanceRecommendation(usage); ok {
		out.Recommendations = append(out.Recommendations, rec)
	}
	if rec, ok := plannedFrequencyRecommendation(usage, plannedWeeklyFrequency); ok {
		out.Recommendations = append(out.Recommendations, rec)
	}

	slices.SortStableFunc(out.RecoveryPlan, func(a, b models.RecoveryStep) int {
		return a.ReadyAt.Compare(b.ReadyAt)
	})
	return out
}

// RiskFor maps the share of flagged muscles onto the risk scale.
func RiskFor(flagged, total int) models.RiskLevel {
	if flagged <= 0 || total <= 0 {
		return models.RiskLow
	}
	pct := float64(flagged) / float64(total) * 100
	switch {
	case pct < moderateRiskPercent:
		return models.RiskModerate
	case pct < highRiskPercent:
		return models.RiskHigh
	default:
		return models.RiskVeryHigh
	}
}

func flagMuscle(rec models.MuscleUsageRecord, now time.Time) []models.FlaggedMuscle {
	name := displayName(rec)
	elapsed := max(now.Sub(rec.LastWorkedAt), 0)
	required := rec.RequiredRecoveryHours

	base := models.FlaggedMuscle{
		MuscleName:           name,
		DaysSinceWorked:      int(elapsed / (24 * time.Hour)),
		RequiredRecoveryDays: int(math.Ceil(float64(required) / 24)),
	}

	var flags []models.FlaggedMuscle
	if !rec.IsMarkedRecovered && elapsed < time.Duration(required)*time.Hour {
		remaining := math.Ceil((time.Duration(required)*time.Hour - elapsed).Hours())
		f := base
		f.IssueKind = models.IssueInsufficientRecovery
		f.Recommendation = fmt.Sprintf("Rest %s for about %.0f more hours before training it again.", name, remaining)
		flags = append(flags, f)
	}
	if rec.WeeklyFrequency > frequencyLimit && rec.Intensity >= frequencyIntensity {
		f := base
		f.IssueKind = models.IssueExcessiveFrequency
		f.Recommendation = fmt.Sprintf("%s was trained %d times this week at intensity %d; cut back to 2-3 sessions or lower the intensity.",
			name, rec.WeeklyFrequency, rec.Intensity)
		flags = append(flags, f)
	}
	if rec.Intensity >= fatigueIntensity && elapsed < fatigueWindow {
		f := base
		f.IssueKind = models.IssueCumulativeFatigue
		f.Recommendation = fmt.Sprintf("Keep %s to light work until 48 hours have passed since the last hard session.", name)
		flags = append(flags, f)
	}
	return flags
}

func recoveryStep(rec models.MuscleUsageRecord, flags []models.FlaggedMuscle, now time.Time) models.RecoveryStep {
	ready := rec.LastWorkedAt.Add(time.Duration(rec.RequiredRecoveryHours) * time.Hour)
	suggestion := "Light mobility work and stretching until ready."
	for _, f := range flags {
		switch f.IssueKind {
		case models.IssueCumulativeFatigue:
			if r := rec.LastWorkedAt.Add(fatigueWindow); r.After(ready) {
				ready = r
			}
		case models.IssueExcessiveFrequency:
			if len(flags) == 1 {
				suggestion = "Train at most 2-3 times this week at moderate intensity."
			}
		}
	}
	if ready.Before(now) {
		ready = now
	}
	return models.RecoveryStep{MuscleName: displayName(rec), ReadyAt: ready, Suggestion: suggestion}
}

// balanceRecommendation compares mean weekly frequency of upper and lower
// body muscles, matched by keyword.
func balanceRecommendation(usage []models.MuscleUsageRecord) (string, bool) {
	var upperSum, lowerSum, upperN, lowerN int
	for _, rec := range usage {
		name := strings.ToLower(displayName(rec))
		if containsAny(name, upperBodyKeywords) {
			upperSum += rec.WeeklyFrequency
			upperN++
		}
		if containsAny(name, lowerBodyKeywords) {
			lowerSum += rec.WeeklyFrequency
			lowerN++
		}
	}
	if upperN == 0 || lowerN == 0 {
		return "", false
	}

	upper := float64(upperSum) / float64(upperN)
	lower := float64(lowerSum) / float64(lowerN)
	switch {
	case upper > lower*balanceRatio:
		return fmt.Sprintf("Lower body is under-trained (%.1f vs %.1f sessions per week for upper body); add leg work to stay balanced.", lower, upper), true
	case lower > upper*balanceRatio:
		return fmt.Sprintf("Upper body is under-trained (%.1f vs %.1f sessions per week for lower body); add upper-body work to stay balanced.", upper, lower), true
	}
	return "", false
}

func plannedFrequencyRecommendation(usage []models.MuscleUsageRecord, planned int) (string, bool) {
	if planned <= 0 {
		return "", false
	}
	var over []string
	for _, rec := range usage {
		if rec.WeeklyFrequency > planned {
			over = append(over, displayName(rec))
		}
	}
	if len(over) == 0 {
		return "", false
	}
	return fmt.Sprintf("Trained more often than your planned %d sessions per week: %s.", planned, strings.Join(over, ", ")), true
}

func displayName(rec models.MuscleUsageRecord) string {
	if rec.MuscleName != "" {
		return rec.MuscleName
	}
	return rec.MuscleID
}

func muscleKey(rec models.MuscleUsageRecord) string {
	if rec.MuscleID != "" {
		return rec.MuscleID
	}
	return rec.MuscleName
}

func distinctMuscles(usage []models.MuscleUsageRecord) map[string]bool {
	seen := make(map[string]bool, len(usage))
	for _, rec := range usage {
		seen[muscleKey(rec)] = true
	}
	return seen
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
