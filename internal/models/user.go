package models

import (
	"slices"
	"sort"
)

// CurrentSchemaVersion is stamped on every record written by this version.
const CurrentSchemaVersion = 1

// UserRecord is everything SharkBite knows about one account.
// An empty ActiveSubject or AssignedQuest means "none".
type UserRecord struct {
	Username      string   `json:"username"`
	Role          Role     `json:"role"`
	Badges        []string `json:"badges"`
	TypingMinutes int      `json:"typingMinutes"`
	Subjects      []string `json:"subjects"`
	ActiveSubject string   `json:"activeSubject"`
	AssignedQuest string   `json:"assignedQuest"`
	WeeklyGoals   []Goal   `json:"weeklyGoals"`
	SchemaVersion int      `json:"schemaVersion"`
}

// NewUserRecord returns a record with every collection initialised.
func NewUserRecord(username string, role Role) *UserRecord {
	return &UserRecord{
		Username:      username,
		Role:          role,
		Badges:        []string{},
		Subjects:      []string{},
		WeeklyGoals:   []Goal{},
		SchemaVersion: CurrentSchemaVersion,
	}
}

// Clone returns a deep copy.
func (u *UserRecord) Clone() *UserRecord {
	if u == nil {
		return nil
	}
	c := *u
	c.Badges = cloneStrings(u.Badges)
	c.Subjects = cloneStrings(u.Subjects)
	c.WeeklyGoals = make([]Goal, len(u.WeeklyGoals))
	copy(c.WeeklyGoals, u.WeeklyGoals)
	return &c
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func (u *UserRecord) HasBadge(name string) bool {
	return slices.Contains(u.Badges, name)
}

func (u *UserRecord) HasSubject(name string) bool {
	return slices.Contains(u.Subjects, name)
}

func (u *UserRecord) IsStudent() bool { return u.Role == RoleStudent }
func (u *UserRecord) IsTeacher() bool { return u.Role == RoleTeacher }

// GoalIndex returns the position of the goal with the given id, or -1.
func (u *UserRecord) GoalIndex(id string) int {
	return slices.IndexFunc(u.WeeklyGoals, func(g Goal) bool { return g.ID == id })
}

// Users is the whole registry keyed by username.
type Users map[string]*UserRecord

// Clone deep-copies every record.
func (us Users) Clone() Users {
	out := make(Users, len(us))
	for k, v := range us {
		out[k] = v.Clone()
	}
	return out
}

// Usernames returns the keys in ascending order.
func (us Users) Usernames() []string {
	names := make([]string, 0, len(us))
	for k := range us {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
