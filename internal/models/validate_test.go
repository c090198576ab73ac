package models

import (
	"testing"

	"github.com/dmitrijs2005/sharkbite/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser_Validate(t *testing.T) {
	nu := NewUser{Username: "  amy ", Role: RoleStudent}
	require.NoError(t, nu.Validate())
	assert.Equal(t, "amy", nu.Username)

	blank := NewUser{Username: "   ", Role: RoleStudent}
	assert.ErrorIs(t, blank.Validate(), common.ErrInvalidUsername)

	badRole := NewUser{Username: "amy", Role: "Admin"}
	assert.ErrorIs(t, badRole.Validate(), common.ErrInvalidRole)
}

func TestNewGoal_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      NewGoal
		wantErr error
	}{
		{"ok without due", NewGoal{Title: "Finish 3 worksheets", Subject: "Math"}, nil},
		{"ok with millis", NewGoal{Title: "t", Subject: "s", DueISO: "2026-10-24T23:59:59.999Z"}, nil},
		{"ok with offset", NewGoal{Title: "t", Subject: "s", DueISO: "2026-10-24T23:59:59+03:00"}, nil},
		{"blank title", NewGoal{Title: "  ", Subject: "Math"}, common.ErrEmptyTitle},
		{"blank subject", NewGoal{Title: "t", Subject: " "}, common.ErrEmptySubject},
		{"bad due", NewGoal{Title: "t", Subject: "s", DueISO: "next friday"}, common.ErrInvalidDueDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, common.ErrInvalidInput)
		})
	}
}

func TestQuestAssignment_Validate(t *testing.T) {
	qa := QuestAssignment{Student: " amy ", Quest: " Finish typing "}
	require.NoError(t, qa.Validate())
	assert.Equal(t, "amy", qa.Student)
	assert.Equal(t, "Finish typing", qa.Quest)

	missing := QuestAssignment{Student: "amy", Quest: "\t"}
	assert.ErrorIs(t, missing.Validate(), common.ErrEmptyQuest)

	noStudent := QuestAssignment{Quest: "x"}
	assert.ErrorIs(t, noStudent.Validate(), common.ErrInvalidUsername)
}
