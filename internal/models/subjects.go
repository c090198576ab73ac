package models

import (
	"fmt"
	"strings"
)

// ActiveSubjectPolicy decides what happens to the active subject when the
// subject set changes underneath it.
type ActiveSubjectPolicy string

const (
	// ClearIfAbsent drops an active subject that is no longer assigned.
	ClearIfAbsent ActiveSubjectPolicy = "clear-if-absent"
	// KeepActive leaves the active subject untouched.
	KeepActive ActiveSubjectPolicy = "keep"
)

func ParseActiveSubjectPolicy(s string) (ActiveSubjectPolicy, error) {
	switch ActiveSubjectPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", ClearIfAbsent:
		return ClearIfAbsent, nil
	case KeepActive:
		return KeepActive, nil
	default:
		return "", fmt.Errorf("unknown active subject policy %q", s)
	}
}

// NormalizeSubjects trims names, drops blanks and duplicates, and keeps the
// first occurrence order.
func NormalizeSubjects(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// ReconcileActiveSubject applies policy after Subjects changed and then
// selects the first subject when none is active.
func (u *UserRecord) ReconcileActiveSubject(policy ActiveSubjectPolicy) {
	if u.ActiveSubject != "" && !u.HasSubject(u.ActiveSubject) && policy != KeepActive {
		u.ActiveSubject = ""
	}
	if u.ActiveSubject == "" && len(u.Subjects) > 0 {
		u.ActiveSubject = u.Subjects[0]
	}
}
