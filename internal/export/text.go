// Package export renders progress snapshots and delivers them to a sink.
// Rendering is pure: the same input always produces the same bytes.
package export

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/sharkbite/internal/models"
)

const none = "none"

// UserFileName is the name single-user snapshots are stored under.
func UserFileName(username string) string {
	return username + "_progress.txt"
}

const (
	RegistryFileName = "registry.json"
	RosterFileName   = "roster.xlsx"
)

// User renders rec as a key: value text block.
func User(rec *models.UserRecord) string {
	var b strings.Builder

	line := func(k, v string) {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteByte('\n')
	}

	line("username", rec.Username)
	line("role", string(rec.Role))
	line("subjects", list(rec.Subjects))
	line("activeSubject", orNone(rec.ActiveSubject))
	line("typingMinutes", strconv.Itoa(rec.TypingMinutes))
	line("badges", list(rec.Badges))
	line("assignedQuest", orNone(rec.AssignedQuest))

	if len(rec.WeeklyGoals) == 0 {
		line("weeklyGoals", none)
		return b.String()
	}
	b.WriteString("weeklyGoals:\n")
	for _, g := range rec.WeeklyGoals {
		fmt.Fprintf(&b, "- [%s] %s | subject: %s | due: %s\n", g.Status.Label(), g.Title, g.Subject, g.DueISO)
	}
	return b.String()
}

func list(items []string) string {
	if len(items) == 0 {
		return none
	}
	return strings.Join(items, ", ")
}

func orNone(s string) string {
	if s == "" {
		return none
	}
	return s
}

// All renders the whole registry in its persisted JSON layout, indented.
func All(users models.Users) ([]byte, error) {
	if users == nil {
		users = models.Users{}
	}
	b, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode registry: %w", err)
	}
	return append(b, '\n'), nil
}
