package healthrules

import "strings"

// Matches reports whether a catalog fragment applies to an exercise name:
// case-insensitive substring containment in either direction.
//
// The policy is deliberately loose and produces false positives (a short
// fragment such as "press" hits every pressing movement, and a short exercise
// name can be swallowed by a longer fragment). Callers depend on this exact
// behavior; do not tighten it to token matching here.
func Matches(fragment, exerciseName string) bool {
	f := strings.ToLower(fragment)
	n := strings.ToLower(exerciseName)
	return strings.Contains(f, n) || strings.Contains(n, f)
}

// MatchAny returns the first fragment that matches exerciseName.
func MatchAny(fragments []string, exerciseName string) (string, bool) {
	for _, f := range fragments {
		if Matches(f, exerciseName) {
			return f, true
		}
	}
	return "", false
}
