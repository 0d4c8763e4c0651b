package models

import (
	"time"

	"github.com/google/uuid"
)

// MuscleUsageRecord is the rolling usage state for one (user, muscle) pair.
// It is overwritten on every new log of that muscle.
type MuscleUsageRecord struct {
	UserID                int       `json:"user_id"`
	MuscleID              string    `json:"muscle_id"`
	MuscleName            string    `json:"muscle_name"`
	LastWorkedAt          time.Time `json:"last_worked_at"`
	WeeklyFrequency       int       `json:"weekly_frequency"`
	Intensity             int       `json:"intensity"` // 1..10
	RequiredRecoveryHours int       `json:"required_recovery_hours"`
	IsMarkedRecovered     bool      `json:"is_marked_recovered"`
}

// MuscleUsageLog is a single "I trained this muscle" event.
type MuscleUsageLog struct {
	MuscleID              string    `json:"muscle_id"`
	MuscleName            string    `json:"muscle_name"`
	WorkedAt              time.Time `json:"worked_at"`
	Intensity             int       `json:"intensity"`
	RequiredRecoveryHours int       `json:"required_recovery_hours"`
}

// frequencyWindow is how recent the previous log must be for the weekly
// frequency to keep counting up instead of restarting at 1.
const frequencyWindow = 7 * 24 * time.Hour

// DefaultRecoveryHours is used when a log does not specify a recovery window.
const DefaultRecoveryHours = 48

// Stale reports whether entry is no newer than prev. Stale logs leave the
// record unchanged, so replaying a log or re-importing a file is a no-op.
func Stale(prev *MuscleUsageRecord, entry MuscleUsageLog) bool {
	return prev != nil && !entry.WorkedAt.After(prev.LastWorkedAt)
}

// NextUsageRecord folds a new log into the previous record (nil on first use).
// A stale log returns prev as is.
func NextUsageRecord(userID int, prev *MuscleUsageRecord, entry MuscleUsageLog) MuscleUsageRecord {
	if Stale(prev, entry) {
		return *prev
	}
	rec := MuscleUsageRecord{
		UserID:                userID,
		MuscleID:              entry.MuscleID,
		MuscleName:            entry.MuscleName,
		LastWorkedAt:          entry.WorkedAt,
		WeeklyFrequency:       1,
		Intensity:             entry.Intensity,
		RequiredRecoveryHours: entry.RequiredRecoveryHours,
	}
	if rec.MuscleName == "" {
		rec.MuscleName = entry.MuscleID
	}
	if rec.RequiredRecoveryHours <= 0 {
		rec.RequiredRecoveryHours = DefaultRecoveryHours
	}
	if prev != nil && entry.WorkedAt.Sub(prev.LastWorkedAt) < frequencyWindow {
		rec.WeeklyFrequency = prev.WeeklyFrequency + 1
	}
	return rec
}

// RiskLevel is the ordinal overtraining risk scale.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very_high"
)

// Rank returns the position of r on the scale low < moderate < high < very_high.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskModerate:
		return 1
	case RiskHigh:
		return 2
	case RiskVeryHigh:
		return 3
	default:
		return 0
	}
}

// IssueKind names why a muscle was flagged.
type IssueKind string

const (
	IssueInsufficientRecovery IssueKind = "insufficient_recovery"
	IssueExcessiveFrequency   IssueKind = "excessive_frequency"
	IssueCumulativeFatigue    IssueKind = "high_cumulative_fatigue"
)

// FlaggedMuscle is one flag raised against a muscle. A muscle may appear once per kind.
type FlaggedMuscle struct {
	MuscleName           string    `json:"muscle_name"`
	IssueKind            IssueKind `json:"issue_kind"`
	Recommendation       string    `json:"recommendation"`
	DaysSinceWorked      int       `json:"days_since_worked"`
	RequiredRecoveryDays int       `json:"required_recovery_days"`
}

// RecoveryStep tells the user when a flagged muscle is ready again.
type RecoveryStep struct {
	MuscleName string    `json:"muscle_name"`
	ReadyAt    time.Time `json:"ready_at"`
	Suggestion string    `json:"suggestion"`
}

// InjuryRiskAssessment is the derived overtraining report.
type InjuryRiskAssessment struct {
	RiskLevel       RiskLevel       `json:"risk_level"`
	FlaggedMuscles  []FlaggedMuscle `json:"flagged_muscles"`
	Recommendations []string        `json:"recommendations"`
	NeedsRestDay    bool            `json:"needs_rest_day"`
	RecoveryPlan    []RecoveryStep  `json:"recovery_plan,omitempty"`
}

// InjuryReport is a persisted assessment.
type InjuryReport struct {
	ID         uuid.UUID            `json:"id"`
	UserID     int                  `json:"user_id"`
	Assessment InjuryRiskAssessment `json:"assessment"`
	CreatedAt  time.Time            `json:"created_at"`
}

// StoredWorkoutPlan is a persisted, generated plan. Plan is the plan after
// health filtering; the filter's warnings and recommendations travel with it.
type StoredWorkoutPlan struct {
	ID              uuid.UUID      `json:"id"`
	UserID          int            `json:"user_id"`
	Request         WorkoutRequest `json:"request"`
	Plan            WorkoutPlan    `json:"plan"`
	Warnings        []string       `json:"warnings,omitempty"`
	Recommendations []string       `json:"recommendations,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// StoredNutritionPlan is a persisted nutrition calculation.
type StoredNutritionPlan struct {
	ID        uuid.UUID          `json:"id"`
	UserID    int                `json:"user_id"`
	Input     PhysiologicalInput `json:"input"`
	Plan      NutritionPlan      `json:"plan"`
	CreatedAt time.Time          `json:"created_at"`
}
