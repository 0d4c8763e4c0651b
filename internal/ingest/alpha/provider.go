package alpha

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"
	"sort"

	"github.com/claude/fitcoach/internal/apperr"
	"github.com/claude/fitcoach/internal/ingest"
	"github.com/claude/fitcoach/internal/models"
)

// UsageLogger records one muscle usage event. *service.Service satisfies it.
type UsageLogger interface {
	LogMuscleUsage(ctx context.Context, userID int, entry models.MuscleUsageLog) (*models.MuscleUsageRecord, error)
}

// Provider imports Alpha Progression CSV exports as muscle usage.
type Provider struct {
	usage UsageLogger
	log   *slog.Logger
}

// NewProvider creates a new Alpha Progression import provider.
func NewProvider(usage UsageLogger, log *slog.Logger) *Provider {
	return &Provider{usage: usage, log: log}
}

// Ingest parses a CSV export and logs every trained muscle, oldest session
// first so weekly frequencies build up in order. Logs are applied one at a
// time; if one fails, the ones before it stay stored. Logs no newer than the
// stored record are ignored, so importing the same file again is safe.
func (p *Provider) Ingest(ctx context.Context, r io.Reader, userID int) (*ingest.Result, error) {
	sessions, err := Parse(r)
	if err != nil {
		return nil, apperr.InvalidInput("file", "parsing CSV: %v", err)
	}

	logs, matched, unmatched := UsageLogs(sessions)
	for _, entry := range logs {
		if _, err := p.usage.LogMuscleUsage(ctx, userID, entry); err != nil {
			return nil, fmt.Errorf("logging %s at %s: %w", entry.MuscleID, entry.WorkedAt.Format("2006-01-02"), err)
		}
	}
	if len(unmatched) > 0 {
		p.log.Info("alpha import: unrecognized exercises", "user_id", userID, "exercises", unmatched)
	}

	return &ingest.Result{
		SessionsReceived: len(sessions),
		ExercisesMatched: matched,
		UsageLogged:      len(logs),
		Unmatched:        unmatched,
	}, nil
}

// UsageLogs converts sessions into one usage log per (session, muscle),
// sorted by time then muscle. A muscle hit by several exercises in a session
// takes the highest intensity. Exercises without working sets are ignored.
func UsageLogs(sessions []Session) (logs []models.MuscleUsageLog, matched int, unmatched []string) {
	for _, s := range sessions {
		intensity := map[string]int{}
		for _, ex := range s.Exercises {
			if len(ex.Sets) == 0 {
				continue
			}
			muscles := MusclesFor(ex.Name)
			if muscles == nil {
				if !slices.Contains(unmatched, ex.Name) {
					unmatched = append(unmatched, ex.Name)
				}
				continue
			}
			matched++
			level := IntensityFromRIR(ex.Sets)
			for _, m := range muscles {
				intensity[m] = max(intensity[m], level)
			}
		}
		for m, level := range intensity {
			logs = append(logs, models.MuscleUsageLog{MuscleID: m, WorkedAt: s.Date, Intensity: level})
		}
	}

	sort.Slice(logs, func(i, j int) bool {
		if !logs[i].WorkedAt.Equal(logs[j].WorkedAt) {
			return logs[i].WorkedAt.Before(logs[j].WorkedAt)
		}
		return logs[i].MuscleID < logs[j].MuscleID
	})
	return logs, matched, unmatched
}

// IntensityFromRIR maps average reps in reserve onto the 1-10 intensity
// scale: RIR 0 is 10, RIR 1 is 9 and so on.
func IntensityFromRIR(sets []Set) int {
	if len(sets) == 0 {
		return 1
	}
	var total float64
	for _, s := range sets {
		total += s.RIR
	}
	level := 10 - int(math.Round(total/float64(len(sets))))
	return min(max(level, 1), 10)
}
