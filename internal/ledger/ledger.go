// Package ledger records badges and typing time on user records.
package ledger

import (
	"context"
	"math"
	"strings"

	"github.com/dmitrijs2005/sharkbite/internal/common"
	"github.com/dmitrijs2005/sharkbite/internal/logging"
	"github.com/dmitrijs2005/sharkbite/internal/models"
	"github.com/dmitrijs2005/sharkbite/internal/registry"
)

// GoalGetter is awarded when a teacher approves a weekly goal.
const GoalGetter = "Goal Getter"

// Mutator is the write side of the registry.
type Mutator interface {
	Mutate(ctx context.Context, username string, fn func(*models.UserRecord) error) (*models.UserRecord, error)
}

// Grant appends badge to rec unless it is already there. It reports whether
// rec changed.
func Grant(rec *models.UserRecord, badge string) bool {
	if rec.HasBadge(badge) {
		return false
	}
	rec.Badges = append(rec.Badges, badge)
	return true
}

// MaxTypingMinutes caps a user's typing total.
const MaxTypingMinutes = math.MaxInt32

// CheckElapsed rejects elapsed times that cannot be counted.
func CheckElapsed(elapsedSeconds float64) error {
	switch {
	case math.IsNaN(elapsedSeconds) || math.IsInf(elapsedSeconds, 0):
		return common.ErrInvalidDuration
	case elapsedSeconds < 0:
		return common.ErrNegativeDuration
	}
	return nil
}

// WholeMinutes truncates elapsed seconds to whole minutes, capped at
// MaxTypingMinutes.
func WholeMinutes(elapsedSeconds float64) int {
	if elapsedSeconds <= 0 || math.IsNaN(elapsedSeconds) {
		return 0
	}
	m := math.Floor(elapsedSeconds / 60)
	if m >= MaxTypingMinutes {
		return MaxTypingMinutes
	}
	return int(m)
}

// AddMinutes adds minutes to total without going past MaxTypingMinutes.
// The result is never below total.
func AddMinutes(total, minutes int) int {
	if minutes <= 0 {
		return total
	}
	if minutes > MaxTypingMinutes-total {
		return max(total, MaxTypingMinutes)
	}
	return total + minutes
}

type Ledger struct {
	reg    Mutator
	logger logging.Logger
}

func New(reg Mutator, logger logging.Logger) *Ledger {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Ledger{reg: reg, logger: logger}
}

// AwardBadge adds badge to the user. Awarding a badge the user already holds
// is a no-op and does not write.
func (l *Ledger) AwardBadge(ctx context.Context, username, badge string) (*models.UserRecord, error) {
	badge = strings.TrimSpace(badge)
	if badge == "" {
		return nil, common.ErrEmptyBadge
	}
	rec, err := l.reg.Mutate(ctx, username, func(u *models.UserRecord) error {
		if !Grant(u, badge) {
			return registry.ErrUnchanged
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.logger.Debug(ctx, "badge awarded", "username", username, "badge", badge)
	return rec, nil
}

// AddTypingMinutes adds floor(elapsedSeconds/60) minutes to the user's
// typing total.
func (l *Ledger) AddTypingMinutes(ctx context.Context, username string, elapsedSeconds float64) (*models.UserRecord, error) {
	return l.recordTyping(ctx, username, "", elapsedSeconds)
}

// CompleteTimed awards badge and adds the elapsed whole minutes in a single
// write. It is how a timed quest is finished.
func (l *Ledger) CompleteTimed(ctx context.Context, username, badge string, elapsedSeconds float64) (*models.UserRecord, error) {
	badge = strings.TrimSpace(badge)
	if badge == "" {
		return nil, common.ErrEmptyBadge
	}
	return l.recordTyping(ctx, username, badge, elapsedSeconds)
}

func (l *Ledger) recordTyping(ctx context.Context, username, badge string, elapsedSeconds float64) (*models.UserRecord, error) {
	if err := CheckElapsed(elapsedSeconds); err != nil {
		return nil, err
	}
	minutes := WholeMinutes(elapsedSeconds)
	rec, err := l.reg.Mutate(ctx, username, func(u *models.UserRecord) error {
		granted := badge != "" && Grant(u, badge)
		total := AddMinutes(u.TypingMinutes, minutes)
		if !granted && total == u.TypingMinutes {
			return registry.ErrUnchanged
		}
		u.TypingMinutes = total
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.logger.Debug(ctx, "typing recorded", "username", username, "minutes", minutes, "badge", badge)
	return rec, nil
}
