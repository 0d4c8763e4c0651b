package alpha

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/claude/fitcoach/internal/apperr"
	"github.com/claude/fitcoach/internal/engine"
	"github.com/claude/fitcoach/internal/healthrules"
	"github.com/claude/fitcoach/internal/localstore"
	"github.com/claude/fitcoach/internal/models"
	"github.com/claude/fitcoach/internal/service"
)

const sampleCSV = `
"Legs · Day 2 · Week 4 · Push-Pull-Legs";"2026-02-19 4:54 h";"1:02 hr"
"1. Hack Squats · Machine · 8 reps";"WU1 · 37,5 kg · 9 reps<br>WU2 · 72,5 kg · 7 reps"
#;KG;REPS;RIR
1;115;8;1
2;115;10;1
3;115;10;1
"2. Sumo Squats · Smith machine · 10 reps";"WU1 · 35 kg · 8 reps"
#;KG;REPS;RIR
1;70;8;1
2;70;12;1
"3. Hyperextensions on Roman Chair · Bodyweight · 10 reps";"WU1 · +0 kg · 8 reps"
#;KG;REPS;RIR
1;+35;10;0
2;+35;9;1
3;+35;10;0
"4. Reverse Lunges · Dumbbells · 10 reps"
#;KG;REPS;RIR
1;10;10;1
2;10;10;1
3;10;10;0
"5. Standing Calf Raises · Machine · 12 reps";"WU1 · 47,5 kg · 8 reps"
#;KG;REPS;RIR
1;157,5;11;1
2;157,5;11;0
3;157,5;10;0
"6. Hanging Leg Raises · Bodyweight · 12 reps · 2 dropsets"
#;KG;REPS;RIR
1;+0;12;1
2;+0;12;1
3;+0;12;0

"Push · Day 1 · Week 4 · Push-Pull-Legs";"2026-02-17 5:04 h";"1:12 hr"
"1. Bench Press · Barbell · 6 reps";"WU1 · 22,5 kg · 10 reps<br>WU2 · 47,5 kg · 8 reps<br>WU3 · 77,5 kg · 6 reps"
#;KG;REPS;RIR
1;102,5;6;0
2;102,5;6;0
3;100;6;0
"2. Zercher Carry · Barbell · 20 reps"
#;KG;REPS;RIR
1;60;20;3
`

// TestParseCompleteSessions verifies parsing a multi-session CSV with exercises and sets.
func TestParseCompleteSessions(t *testing.T) {
	sessions, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}

	s1 := sessions[0]
	if s1.Name != "Legs · Day 2 · Week 4 · Push-Pull-Legs" {
		t.Errorf("s1.Name = %q", s1.Name)
	}
	if !s1.Date.Equal(time.Date(2026, 2, 19, 4, 54, 0, 0, time.UTC)) {
		t.Errorf("s1.Date = %v", s1.Date)
	}
	if len(s1.Exercises) != 6 {
		t.Fatalf("s1 exercises = %d, want 6", len(s1.Exercises))
	}

	ex1 := s1.Exercises[0]
	if ex1.Name != "Hack Squats" || ex1.Equipment != "Machine" {
		t.Errorf("ex1 = %q / %q, want Hack Squats / Machine", ex1.Name, ex1.Equipment)
	}
	if len(ex1.Sets) != 3 {
		t.Errorf("ex1 sets = %d, want 3 (warmups dropped)", len(ex1.Sets))
	}
	if ex1.Sets[0].Reps != 8 || ex1.Sets[0].RIR != 1 {
		t.Errorf("ex1 set 1 = %+v", ex1.Sets[0])
	}

	if got := s1.Exercises[5].Equipment; got != "Bodyweight" {
		t.Errorf("leg raise equipment = %q, want Bodyweight", got)
	}
}

func TestFractionalRIR(t *testing.T) {
	csv := `"S";"2026-01-01 10:00 h";"1:00 hr"
"1. Curl · Cable · 12 reps"
1;20;12;0,5
`
	sessions, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	if got := sessions[0].Exercises[0].Sets[0].RIR; got != 0.5 {
		t.Errorf("RIR = %v, want 0.5", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"exercise without session": `"1. Bench Press · Barbell · 6 reps"`,
		"set without exercise":     "\"S\";\"2026-01-01 10:00 h\";\"1:00 hr\"\n1;100;5;1",
	}
	for name, csv := range tests {
		if _, err := Parse(strings.NewReader(csv)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestEmptyInput(t *testing.T) {
	sessions, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 0 {
		t.Errorf("sessions = %d, want 0", len(sessions))
	}
}

func TestSplitExerciseHeader(t *testing.T) {
	tests := []struct {
		in, name, equipment string
	}{
		{"Hack Squats · Machine · 8 reps", "Hack Squats", "Machine"},
		{"Dips · 10 reps", "Dips", ""},
		{"Plank", "Plank", ""},
	}
	for _, tt := range tests {
		name, equipment := splitExerciseHeader(tt.in)
		if name != tt.name || equipment != tt.equipment {
			t.Errorf("splitExerciseHeader(%q) = %q, %q; want %q, %q", tt.in, name, equipment, tt.name, tt.equipment)
		}
	}
}

func TestMusclesFor(t *testing.T) {
	tests := map[string]string{
		"Hack Squats":         "quadriceps",
		"Romanian Deadlift":   "hamstrings",
		"Lying Leg Curl":      "hamstrings",
		"EZ Bar Curl":         "biceps",
		"Lat Pulldown":        "lats",
		"Seated Cable Row":    "upper back",
		"Face Pulls":          "shoulders",
		"Incline DB Press":    "chest",
		"Overhead Press":      "shoulders",
		"Hanging Leg Raises":  "core",
		"Triceps Pushdown":    "triceps",
		"Seated Calf Raise":   "calves",
		"Barbell Hip Thrusts": "glutes",
	}
	for exercise, want := range tests {
		got := MusclesFor(exercise)
		if len(got) == 0 || got[0] != want {
			t.Errorf("MusclesFor(%q) = %v, want first muscle %s", exercise, got, want)
		}
	}
	if MusclesFor("Zercher Carry") != nil {
		t.Error("unknown exercise should map to nil")
	}
}

func TestIntensityFromRIR(t *testing.T) {
	tests := []struct {
		sets []Set
		want int
	}{
		{[]Set{{RIR: 0}, {RIR: 0}}, 10},
		{[]Set{{RIR: 1}, {RIR: 0}, {RIR: 0}}, 10},
		{[]Set{{RIR: 1}, {RIR: 1}, {RIR: 0}}, 9},
		{[]Set{{RIR: 3}}, 7},
		{[]Set{{RIR: 12}}, 1},
		{nil, 1},
	}
	for _, tt := range tests {
		if got := IntensityFromRIR(tt.sets); got != tt.want {
			t.Errorf("IntensityFromRIR(%v) = %d, want %d", tt.sets, got, tt.want)
		}
	}
}

func TestUsageLogs(t *testing.T) {
	sessions, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	logs, matched, unmatched := UsageLogs(sessions)

	if matched != 7 {
		t.Errorf("matched = %d, want 7", matched)
	}
	if len(unmatched) != 1 || unmatched[0] != "Zercher Carry" {
		t.Errorf("unmatched = %v", unmatched)
	}

	// Push day (Feb 17) sorts before legs day (Feb 19).
	if logs[0].MuscleID != "chest" || logs[0].WorkedAt.Day() != 17 {
		t.Errorf("first log = %+v, want chest on the 17th", logs[0])
	}
	for i := 1; i < len(logs); i++ {
		if logs[i].WorkedAt.Before(logs[i-1].WorkedAt) {
			t.Fatalf("logs not sorted by time at %d", i)
		}
	}

	// Glutes are hit by squats (RIR 1, intensity 9) and hyperextensions
	// (avg RIR 0.33, intensity 10); the higher wins.
	for _, l := range logs {
		if l.MuscleID == "glutes" && l.Intensity != 10 {
			t.Errorf("glutes intensity = %d, want 10", l.Intensity)
		}
	}
}

type recordingLogger struct {
	entries []models.MuscleUsageLog
	err     error
}

func (r *recordingLogger) LogMuscleUsage(ctx context.Context, userID int, entry models.MuscleUsageLog) (*models.MuscleUsageRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.entries = append(r.entries, entry)
	return &models.MuscleUsageRecord{}, nil
}

func TestProviderIngest(t *testing.T) {
	rec := &recordingLogger{}
	p := NewProvider(rec, slog.New(slog.NewTextHandler(io.Discard, nil)))

	res, err := p.Ingest(context.Background(), strings.NewReader(sampleCSV), 1)
	if err != nil {
		t.Fatal(err)
	}
	if res.SessionsReceived != 2 {
		t.Errorf("SessionsReceived = %d, want 2", res.SessionsReceived)
	}
	if res.UsageLogged != len(rec.entries) || res.UsageLogged == 0 {
		t.Errorf("UsageLogged = %d, logger saw %d", res.UsageLogged, len(rec.entries))
	}

	_, err = p.Ingest(context.Background(), strings.NewReader(`"1. Bench Press · Barbell · 6 reps"`), 1)
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("bad CSV: err = %v, want INVALID_INPUT", err)
	}

	rec.err = errors.New("disk full")
	if _, err := p.Ingest(context.Background(), strings.NewReader(sampleCSV), 1); err == nil {
		t.Error("expected logger failure to propagate")
	}
}

// failAfter passes the first n logs through and fails the rest.
type failAfter struct {
	next UsageLogger
	n    int
}

func (f *failAfter) LogMuscleUsage(ctx context.Context, userID int, entry models.MuscleUsageLog) (*models.MuscleUsageRecord, error) {
	if f.n <= 0 {
		return nil, errors.New("connection reset")
	}
	f.n--
	return f.next.LogMuscleUsage(ctx, userID, entry)
}

func TestIngestRetryAfterPartialFailure(t *testing.T) {
	store, err := localstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("localstore.Open: %v", err)
	}
	defer store.Close()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(store, engine.New(healthrules.Default(), log), 0, log)
	ctx := context.Background()

	flaky := NewProvider(&failAfter{next: svc, n: 3}, log)
	if _, err := flaky.Ingest(ctx, strings.NewReader(sampleCSV), 1); err == nil {
		t.Fatal("expected the interrupted import to fail")
	}
	if _, err := NewProvider(svc, log).Ingest(ctx, strings.NewReader(sampleCSV), 1); err != nil {
		t.Fatalf("retry: %v", err)
	}
	retried, err := svc.MuscleUsage(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}

	fresh, err := localstore.Open(t.TempDir())
	if err != nil {
		t.Fatalf("localstore.Open: %v", err)
	}
	defer fresh.Close()
	clean := service.New(fresh, engine.New(healthrules.Default(), log), 0, log)
	if _, err := NewProvider(clean, log).Ingest(ctx, strings.NewReader(sampleCSV), 1); err != nil {
		t.Fatalf("clean import: %v", err)
	}
	want, err := clean.MuscleUsage(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}

	if len(retried) != len(want) {
		t.Fatalf("len(usage) = %d, want %d", len(retried), len(want))
	}
	for i := range want {
		if retried[i].WeeklyFrequency != want[i].WeeklyFrequency || !retried[i].LastWorkedAt.Equal(want[i].LastWorkedAt) {
			t.Errorf("%s: got frequency %d at %v, want %d at %v", want[i].MuscleID,
				retried[i].WeeklyFrequency, retried[i].LastWorkedAt, want[i].WeeklyFrequency, want[i].LastWorkedAt)
		}
	}
}
