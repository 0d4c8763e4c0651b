// Package ingest holds the shared result type for training-log imports.
package ingest

// Result holds the outcome of an import.
type Result struct {
	SessionsReceived int      `json:"sessions_received"`
	ExercisesMatched int      `json:"exercises_matched"`
	UsageLogged      int      `json:"usage_logged"`
	Unmatched        []string `json:"unmatched_exercises,omitempty"`
}
