package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/sharkbite/internal/common"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewUser holds what is needed to register an account.
type NewUser struct {
	Username string `validate:"required"`
	Role     Role   `validate:"oneof=Student Teacher"`
}

// Validate trims the username and checks both fields.
func (nu *NewUser) Validate() error {
	nu.Username = strings.TrimSpace(nu.Username)
	return mapFieldErrors(validate.Struct(nu), map[string]error{
		"Username": common.ErrInvalidUsername,
		"Role":     common.ErrInvalidRole,
	})
}

// NewGoal holds what a teacher supplies for a weekly goal. DueISO is
// optional; the end of the current week is used when it is empty.
type NewGoal struct {
	Title   string `validate:"required"`
	Subject string `validate:"required"`
	DueISO  string `validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// Validate trims every field and checks them in declaration order.
func (ng *NewGoal) Validate() error {
	ng.Title = strings.TrimSpace(ng.Title)
	ng.Subject = strings.TrimSpace(ng.Subject)
	ng.DueISO = strings.TrimSpace(ng.DueISO)
	return mapFieldErrors(validate.Struct(ng), map[string]error{
		"Title":   common.ErrEmptyTitle,
		"Subject": common.ErrEmptySubject,
		"DueISO":  common.ErrInvalidDueDate,
	})
}

// QuestAssignment names a quest label for a student.
type QuestAssignment struct {
	Student string `validate:"required"`
	Quest   string `validate:"required"`
}

func (qa *QuestAssignment) Validate() error {
	qa.Student = strings.TrimSpace(qa.Student)
	qa.Quest = strings.TrimSpace(qa.Quest)
	return mapFieldErrors(validate.Struct(qa), map[string]error{
		"Student": common.ErrInvalidUsername,
		"Quest":   common.ErrEmptyQuest,
	})
}

// mapFieldErrors turns the first validator field error into the sentinel
// registered for that field.
func mapFieldErrors(err error, byField map[string]error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if mapped, ok := byField[verrs[0].Field()]; ok {
			return mapped
		}
		return fmt.Errorf("%w: %s", common.ErrInvalidInput, verrs[0].Error())
	}
	return fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
}
