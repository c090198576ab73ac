package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/sharkbite/internal/models"
	"github.com/xuri/excelize/v2"
)

// RosterSheet is the worksheet name of the roster workbook.
const RosterSheet = "Roster"

var rosterHeader = []any{
	"Username", "Badges", "Typing Minutes", "Subjects", "Active Subject",
	"Assigned Quest", "Goals Approved", "Goals Total",
}

// RosterRow is one student line of the class roster.
type RosterRow struct {
	Username      string
	Badges        []string
	TypingMinutes int
	Subjects      []string
	ActiveSubject string
	AssignedQuest string
	GoalsApproved int
	GoalsTotal    int
}

// RosterRows lists the students in recs in the order given.
func RosterRows(recs []*models.UserRecord) []RosterRow {
	rows := make([]RosterRow, 0, len(recs))
	for _, u := range recs {
		if !u.IsStudent() {
			continue
		}
		r := RosterRow{
			Username:      u.Username,
			Badges:        append([]string(nil), u.Badges...),
			TypingMinutes: u.TypingMinutes,
			Subjects:      append([]string(nil), u.Subjects...),
			ActiveSubject: u.ActiveSubject,
			AssignedQuest: u.AssignedQuest,
			GoalsTotal:    len(u.WeeklyGoals),
		}
		for _, g := range u.WeeklyGoals {
			if g.Status == models.GoalApproved {
				r.GoalsApproved++
			}
		}
		rows = append(rows, r)
	}
	return rows
}

// Roster writes the student roster as an XLSX workbook to w.
func Roster(rows []RosterRow, w io.Writer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", RosterSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(RosterSheet, "A1", &rosterHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{
			r.Username,
			strings.Join(r.Badges, ", "),
			r.TypingMinutes,
			strings.Join(r.Subjects, ", "),
			r.ActiveSubject,
			r.AssignedQuest,
			r.GoalsApproved,
			r.GoalsTotal,
		}
		if err := f.SetSheetRow(RosterSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
