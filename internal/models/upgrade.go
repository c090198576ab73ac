package models

// Upgrade brings a record read from storage up to CurrentSchemaVersion.
// key is the registry key the record was stored under; it wins over a missing
// or mismatching username field. Upgrade is a no-op for current records.
// The active subject is left as stored; the registry reconciles it with the
// configured policy.
func Upgrade(key string, u *UserRecord) *UserRecord {
	if u == nil {
		return nil
	}
	u.Username = key

	if u.Badges == nil {
		u.Badges = []string{}
	}
	if u.Subjects == nil {
		u.Subjects = []string{}
	}
	if u.WeeklyGoals == nil {
		u.WeeklyGoals = []Goal{}
	}
	if u.TypingMinutes < 0 {
		u.TypingMinutes = 0
	}
	if u.SchemaVersion < CurrentSchemaVersion {
		u.Badges = dedupe(u.Badges)
		u.Subjects = NormalizeSubjects(u.Subjects)
		for i := range u.WeeklyGoals {
			if !u.WeeklyGoals[i].Status.Valid() {
				u.WeeklyGoals[i].Status = GoalAssigned
			}
		}
		u.SchemaVersion = CurrentSchemaVersion
	}
	return u
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
