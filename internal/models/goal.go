package models

import (
	"strings"
	"time"
)

// GoalStatus is the workflow state of a weekly goal.
type GoalStatus string

const (
	GoalAssigned  GoalStatus = "assigned"
	GoalSubmitted GoalStatus = "submitted"
	GoalApproved  GoalStatus = "approved"
	GoalRejected  GoalStatus = "rejected"
)

// Label is the capitalised form used in exports, e.g. "Approved".
func (s GoalStatus) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalAssigned, GoalSubmitted, GoalApproved, GoalRejected:
		return true
	}
	return false
}

// DueLayout is how due dates are written: RFC 3339 with milliseconds.
const DueLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatDue renders t in DueLayout.
func FormatDue(t time.Time) string {
	return t.Format(DueLayout)
}

// Goal is a teacher-assigned task owned by one user record.
type Goal struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	Subject string     `json:"subject"`
	DueISO  string     `json:"dueISO"`
	Status  GoalStatus `json:"status"`
}

// Due parses DueISO.
func (g Goal) Due() (time.Time, error) {
	return time.Parse(time.RFC3339, g.DueISO)
}
