// Package goals implements the weekly goal workflow:
//
//	assigned  --submit-->  submitted
//	rejected  --submit-->  submitted
//	submitted --approve--> approved
//	submitted --reject-->  rejected
//
// Every change goes through the registry so it is persisted before it is
// visible. Approving a goal grants the "Goal Getter" badge in the same write.
package goals

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/dmitrijs2005/sharkbite/internal/common"
	"github.com/dmitrijs2005/sharkbite/internal/ledger"
	"github.com/dmitrijs2005/sharkbite/internal/logging"
	"github.com/dmitrijs2005/sharkbite/internal/models"
	"github.com/google/uuid"
)

// maxIDAttempts bounds id regeneration on collision.
const maxIDAttempts = 8

var errIDExhausted = errors.New("could not generate a unique goal id")

// Registry is what the engine needs from the user registry.
type Registry interface {
	ledger.Mutator
	All() []*models.UserRecord
}

// Submission is a submitted goal together with its owner.
type Submission struct {
	Username string
	Goal     models.Goal
}

type Engine struct {
	reg    Registry
	logger logging.Logger
	now    func() time.Time
	newID  func() string
	loc    *time.Location
}

type Option func(*Engine)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides uuid.NewString.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) { e.newID = gen }
}

// WithLocation sets the zone used for end-of-week due dates.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func New(reg Registry, opts ...Option) *Engine {
	e := &Engine{
		reg:    reg,
		logger: logging.Discard(),
		now:    time.Now,
		newID:  uuid.NewString,
		loc:    time.Local,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// EndOfWeek returns the coming Saturday at 23:59:59.999 in now's location.
// On a Saturday it returns the end of that day.
func EndOfWeek(now time.Time) time.Time {
	days := (int(time.Saturday) - int(now.Weekday()) + 7) % 7
	y, m, d := now.Date()
	return time.Date(y, m, d+days, 23, 59, 59, int(999*time.Millisecond), now.Location())
}

// CreateGoal appends a new assigned goal to username's list.
func (e *Engine) CreateGoal(ctx context.Context, username string, in models.NewGoal) (models.Goal, error) {
	if err := in.Validate(); err != nil {
		return models.Goal{}, err
	}
	due := in.DueISO
	if due == "" {
		due = models.FormatDue(EndOfWeek(e.now().In(e.loc)))
	}

	var goal models.Goal
	_, err := e.reg.Mutate(ctx, username, func(u *models.UserRecord) error {
		id, err := e.uniqueID(u)
		if err != nil {
			return err
		}
		goal = models.Goal{
			ID:      id,
			Title:   in.Title,
			Subject: in.Subject,
			DueISO:  due,
			Status:  models.GoalAssigned,
		}
		u.WeeklyGoals = append(u.WeeklyGoals, goal)
		return nil
	})
	if err != nil {
		return models.Goal{}, err
	}
	e.logger.Info(ctx, "goal created", "username", username, "goal_id", goal.ID, "due", goal.DueISO)
	return goal, nil
}

func (e *Engine) uniqueID(u *models.UserRecord) (string, error) {
	for range maxIDAttempts {
		id := e.newID()
		if id != "" && u.GoalIndex(id) < 0 {
			return id, nil
		}
	}
	return "", errIDExhausted
}

// Submit moves an assigned or rejected goal to submitted.
func (e *Engine) Submit(ctx context.Context, username, goalID string) (models.Goal, error) {
	return e.transition(ctx, username, goalID, ActionSubmit)
}

// Approve moves a submitted goal to approved and grants "Goal Getter".
func (e *Engine) Approve(ctx context.Context, username, goalID string) (models.Goal, error) {
	return e.transition(ctx, username, goalID, ActionApprove)
}

// Reject moves a submitted goal back to rejected.
func (e *Engine) Reject(ctx context.Context, username, goalID string) (models.Goal, error) {
	return e.transition(ctx, username, goalID, ActionReject)
}

func (e *Engine) transition(ctx context.Context, username, goalID string, action Action) (models.Goal, error) {
	var goal models.Goal
	_, err := e.reg.Mutate(ctx, username, func(u *models.UserRecord) error {
		i := u.GoalIndex(goalID)
		if i < 0 {
			return fmt.Errorf("%w: %q", common.ErrGoalNotFound, goalID)
		}
		from := u.WeeklyGoals[i].Status
		to, ok := nextStatus(from, action)
		if !ok {
			return fmt.Errorf("%w: cannot %s a goal that is %s", common.ErrInvalidTransition, action, from)
		}
		u.WeeklyGoals[i].Status = to
		if action == ActionApprove {
			ledger.Grant(u, ledger.GoalGetter)
		}
		goal = u.WeeklyGoals[i]
		return nil
	})
	if err != nil {
		return models.Goal{}, err
	}
	e.logger.Info(ctx, "goal "+string(action), "username", username, "goal_id", goalID, "status", goal.Status)
	return goal, nil
}

// ListSubmitted yields every submitted goal of every student. The registry
// is read when iteration starts; each range sees fresh data.
func (e *Engine) ListSubmitted() iter.Seq[Submission] {
	return func(yield func(Submission) bool) {
		for _, u := range e.reg.All() {
			if !u.IsStudent() {
				continue
			}
			for _, g := range u.WeeklyGoals {
				if g.Status != models.GoalSubmitted {
					continue
				}
				if !yield(Submission{Username: u.Username, Goal: g}) {
					return
				}
			}
		}
	}
}
