package goals

import "github.com/dmitrijs2005/sharkbite/internal/models"

// Action is something a user does to a goal.
type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// nextStatus returns the status a goal in from moves to under action, and
// false when the edge does not exist. Approved is terminal.
func nextStatus(from models.GoalStatus, action Action) (models.GoalStatus, bool) {
	switch action {
	case ActionSubmit:
		if from == models.GoalAssigned || from == models.GoalRejected {
			return models.GoalSubmitted, true
		}
	case ActionApprove:
		if from == models.GoalSubmitted {
			return models.GoalApproved, true
		}
	case ActionReject:
		if from == models.GoalSubmitted {
			return models.GoalRejected, true
		}
	}
	return from, false
}
