// Package alpha reads Alpha Progression CSV exports and turns each session
// into muscle usage logs.
package alpha

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// sessionHeaderRe matches: "Session Name";"2026-02-19 4:54 h";"1:02 hr"
	sessionHeaderRe = regexp.MustCompile(`^"(.+)";"(\d{4}-\d{2}-\d{2}\s+\d+:\d+)\s+h";"(.+)"$`)

	// exerciseHeaderRe matches: "1. Exercise Name · Equipment · 8 reps"[;"warmup info"]
	exerciseHeaderRe = regexp.MustCompile(`^"(\d+)\.\s+(.+?)"(?:;".*")?$`)

	// setDataRe matches: 1;115;8;1
	setDataRe = regexp.MustCompile(`^(\d+);([^;]+);(\d+);([^;]+)$`)

	// columnHeaderRe matches: #;KG;REPS;RIR
	columnHeaderRe = regexp.MustCompile(`^#;KG;REPS;RIR$`)
)

// Session is one logged workout.
type Session struct {
	Name      string
	Date      time.Time
	Exercises []Exercise
}

// Exercise is one exercise within a session. Warmup sets are not kept.
type Exercise struct {
	Name      string
	Equipment string
	Sets      []Set
}

// Set is a working set.
type Set struct {
	Reps int
	RIR  float64
}

// Parse reads an Alpha Progression CSV export and returns parsed sessions.
// Lines it does not recognize are skipped.
func Parse(r io.Reader) ([]Session, error) {
	scanner := bufio.NewScanner(r)
	var sessions []Session
	var current *Session

	flush := func() {
		if current != nil {
			sessions = append(sessions, *current)
			current = nil
		}
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			flush()

		case columnHeaderRe.MatchString(line):

		case sessionHeaderRe.MatchString(line):
			m := sessionHeaderRe.FindStringSubmatch(line)
			flush()
			date, err := parseSessionDate(m[2])
			if err != nil {
				return nil, err
			}
			current = &Session{Name: m[1], Date: date}

		case exerciseHeaderRe.MatchString(line):
			if current == nil {
				return nil, fmt.Errorf("exercise without session: %q", line)
			}
			m := exerciseHeaderRe.FindStringSubmatch(line)
			name, equipment := splitExerciseHeader(m[2])
			current.Exercises = append(current.Exercises, Exercise{Name: name, Equipment: equipment})

		case setDataRe.MatchString(line):
			if current == nil || len(current.Exercises) == 0 {
				return nil, fmt.Errorf("set data without exercise: %q", line)
			}
			m := setDataRe.FindStringSubmatch(line)
			reps, _ := strconv.Atoi(m[3])
			ex := &current.Exercises[len(current.Exercises)-1]
			ex.Sets = append(ex.Sets, Set{Reps: reps, RIR: parseEuropeanFloat(m[4])})
		}
	}
	flush()

	return sessions, scanner.Err()
}

// parseSessionDate parses "2026-02-19 4:54" or "2026-02-19 16:54".
func parseSessionDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 3:04"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse session date %q", s)
}

// splitExerciseHeader splits "Hack Squats · Machine · 8 reps · 2 dropsets"
// into name and equipment. Equipment is empty when the second part is the
// rep target.
func splitExerciseHeader(s string) (name, equipment string) {
	parts := strings.Split(s, " · ")
	name = strings.TrimSpace(parts[0])
	if len(parts) > 1 && !strings.HasSuffix(parts[1], " reps") {
		equipment = strings.TrimSpace(parts[1])
	}
	return name, equipment
}

// parseEuropeanFloat converts "0,5" to 0.5. Unparseable input is 0.
func parseEuropeanFloat(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
