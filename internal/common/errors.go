// Package common defines the sentinel errors shared by the registry, session,
// goal workflow and ledger layers of SharkBite. Callers should use errors.Is to
// match these values; specific errors wrap their category so that, for example,
// errors.Is(ErrEmptyTitle, ErrInvalidInput) holds.
package common

import (
	"errors"
	"fmt"
)

var (
	// Categories.
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrGoalNotFound       = errors.New("goal not found")
	ErrQuestNotFound      = errors.New("quest not found")
	ErrInvalidTransition  = errors.New("goal status transition is not allowed")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Validation errors.
	ErrInvalidUsername    = fmt.Errorf("%w: username must not be blank", ErrInvalidInput)
	ErrInvalidRole        = fmt.Errorf("%w: role must be Student or Teacher", ErrInvalidInput)
	ErrEmptyTitle         = fmt.Errorf("%w: goal title must not be blank", ErrInvalidInput)
	ErrEmptySubject       = fmt.Errorf("%w: subject must not be blank", ErrInvalidInput)
	ErrInvalidDueDate     = fmt.Errorf("%w: due date must be an ISO-8601 timestamp", ErrInvalidInput)
	ErrEmptyBadge         = fmt.Errorf("%w: badge name must not be blank", ErrInvalidInput)
	ErrEmptyQuest         = fmt.Errorf("%w: quest name must not be blank", ErrInvalidInput)
	ErrNegativeDuration   = fmt.Errorf("%w: elapsed time must not be negative", ErrInvalidInput)
	ErrInvalidDuration    = fmt.Errorf("%w: elapsed time must be a finite number", ErrInvalidInput)
	ErrImmutableField     = fmt.Errorf("%w: username and role cannot change", ErrInvalidInput)
	ErrSubjectNotAssigned = fmt.Errorf("%w: subject is not assigned", ErrInvalidInput)
	ErrNotStudent         = fmt.Errorf("%w: user is not a student", ErrInvalidInput)
	ErrWrongAnswer        = fmt.Errorf("%w: wrong answer", ErrInvalidInput)

	// Session errors.
	ErrNotLoggedIn = fmt.Errorf("%w: nobody is logged in", ErrNotAuthorized)
)
