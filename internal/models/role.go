package models

import (
	"strings"

	"github.com/dmitrijs2005/sharkbite/internal/common"
)

// Role is fixed when an account is created.
type Role string

const (
	RoleStudent Role = "Student"
	RoleTeacher Role = "Teacher"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

// ParseRole accepts any casing of "student" or "teacher".
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "student":
		return RoleStudent, nil
	case "teacher":
		return RoleTeacher, nil
	default:
		return "", common.ErrInvalidRole
	}
}
