package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/sharkbite/internal/models"
)

func (a *App) Roster(ctx context.Context) error {
	rows, err := a.class.Roster(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		a.println("No students yet.")
		return nil
	}
	for _, r := range rows {
		badges := strings.Join(r.Badges, ", ")
		if badges == "" {
			badges = "None"
		}
		a.printf("%s\n  Badges: %s\n  Typing Time: %d mins\n  Subjects: %s\n  Goals approved: %d/%d\n",
			r.Username, badges, r.TypingMinutes, strings.Join(r.Subjects, ", "), r.GoalsApproved, r.GoalsTotal)
	}
	return nil
}

func (a *App) AssignQuest(ctx context.Context, args []string) error {
	student, err := a.arg(args, 0, "Enter the student's username")
	if err != nil {
		return err
	}
	var quest string
	if len(args) > 1 {
		quest = strings.Join(args[1:], " ")
	} else if quest, err = GetSimpleText(a.reader, "Enter the name of the quest to assign", a.promptOut()); err != nil {
		return err
	}
	rec, err := a.class.AssignQuest(ctx, student, quest)
	if err != nil {
		return err
	}
	a.printf("Quest %q assigned to %s.\n", rec.AssignedQuest, rec.Username)
	return nil
}

func (a *App) AssignSubjects(ctx context.Context, args []string) error {
	student, err := a.arg(args, 0, "Enter the student's username")
	if err != nil {
		return err
	}
	var subjects []string
	if len(args) > 1 {
		subjects = splitList(strings.Join(args[1:], " "))
	} else if subjects, err = GetList(a.reader, "Subjects, comma separated (e.g. Math, Writing)", a.promptOut()); err != nil {
		return err
	}
	rec, err := a.class.AssignSubjects(ctx, student, subjects)
	if err != nil {
		return err
	}
	a.printf("%s now studies: %s (active: %s)\n", rec.Username, strings.Join(rec.Subjects, ", "), orNone(rec.ActiveSubject))
	return nil
}

func (a *App) AddSubject(ctx context.Context, args []string) error {
	student, err := a.arg(args, 0, "Enter the student's username")
	if err != nil {
		return err
	}
	subject, err := a.arg(args, 1, "Subject to add")
	if err != nil {
		return err
	}
	rec, err := a.class.AddSubject(ctx, student, subject)
	if err != nil {
		return err
	}
	a.printf("%s now studies: %s\n", rec.Username, strings.Join(rec.Subjects, ", "))
	return nil
}

func (a *App) CreateGoal(ctx context.Context, args []string) error {
	student, err := a.arg(args, 0, "Enter the student's username")
	if err != nil {
		return err
	}
	title, err := GetSimpleText(a.reader, "Goal title", a.promptOut())
	if err != nil {
		return err
	}
	subject, err := GetSimpleText(a.reader, "Subject", a.promptOut())
	if err != nil {
		return err
	}
	due, err := GetSimpleText(a.reader, "Due (RFC 3339, empty for end of week)", a.promptOut())
	if err != nil {
		return err
	}
	g, err := a.class.CreateGoal(ctx, student, models.NewGoal{Title: title, Subject: subject, DueISO: due})
	if err != nil {
		return err
	}
	a.printf("Goal %s created for %s, due %s.\n", g.ID, student, g.DueISO)
	return nil
}

func (a *App) Reviews(ctx context.Context) error {
	seq, err := a.class.PendingReviews(ctx)
	if err != nil {
		return err
	}
	n := 0
	for s := range seq {
		n++
		a.printf("%s  %s  [%s] %s\n", s.Username, s.Goal.ID, s.Goal.Subject, s.Goal.Title)
	}
	if n == 0 {
		a.println("Nothing to review.")
	}
	return nil
}

func (a *App) review(args []string) (string, string, error) {
	student, err := a.arg(args, 0, "Student username")
	if err != nil {
		return "", "", err
	}
	id, err := a.arg(args, 1, "Goal id")
	if err != nil {
		return "", "", err
	}
	return student, id, nil
}

func (a *App) Approve(ctx context.Context, args []string) error {
	student, id, err := a.review(args)
	if err != nil {
		return err
	}
	g, err := a.class.ApproveGoal(ctx, student, id)
	if err != nil {
		return err
	}
	a.printf("Approved %q for %s.\n", g.Title, student)
	return nil
}

func (a *App) Reject(ctx context.Context, args []string) error {
	student, id, err := a.review(args)
	if err != nil {
		return err
	}
	g, err := a.class.RejectGoal(ctx, student, id)
	if err != nil {
		return err
	}
	a.printf("Rejected %q for %s.\n", g.Title, student)
	return nil
}

func (a *App) ExportAll(ctx context.Context) error {
	locs, err := a.class.ExportRegistry(ctx)
	if err != nil {
		return err
	}
	for _, l := range locs {
		a.println("Saved", l)
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
