package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/sharkbite/internal/common"
	"github.com/dmitrijs2005/sharkbite/internal/quests"
)

func (a *App) SelectSubject(ctx context.Context, args []string) error {
	subject, err := a.arg(args, 0, "Subject")
	if err != nil {
		return err
	}
	rec, err := a.class.SelectSubject(ctx, subject)
	if err != nil {
		return err
	}
	a.println("Active subject:", rec.ActiveSubject)
	return nil
}

func (a *App) Quests(ctx context.Context) error {
	qs, err := a.class.AvailableQuests(ctx)
	if err != nil {
		return err
	}
	for _, q := range qs {
		a.printf("%-16s %s (badge: %s)\n", q.ID, q.Title, q.Badge)
	}
	return nil
}

// Play runs a non-timed quest; the typing quest is redirected to Typing.
func (a *App) Play(ctx context.Context, args []string) error {
	id, err := a.arg(args, 0, "Quest id")
	if err != nil {
		return err
	}
	q, err := quests.Lookup(id)
	if err != nil {
		return err
	}
	if q.Timed() {
		return a.Typing(ctx)
	}

	prompt := q.Prompt
	if len(q.Options) > 0 {
		prompt += "\n  " + strings.Join(q.Options, " / ")
	}
	answer, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	before, _ := a.auth.Current()
	rec, err := a.class.CompleteQuest(ctx, q.ID, answer)
	if errors.Is(err, common.ErrWrongAnswer) {
		a.println("Not quite! Try again.")
		return nil
	}
	if err != nil {
		return err
	}
	if before != nil && !before.HasBadge(q.Badge) && rec.HasBadge(q.Badge) {
		a.println("New badge:", q.Badge)
	}
	return nil
}

func (a *App) Typing(ctx context.Context) error {
	q, err := quests.Lookup(quests.TypingQuest)
	if err != nil {
		return err
	}
	start := a.now()
	typed, err := GetSimpleText(a.reader, q.Prompt, a.out)
	if err != nil {
		return err
	}
	elapsed := a.now().Sub(start).Seconds()

	rec, err := a.class.CompleteTypingQuest(ctx, typed, elapsed)
	if errors.Is(err, common.ErrWrongAnswer) {
		a.println("Not quite! Try again.")
		return nil
	}
	if err != nil {
		return err
	}
	a.printf("Finished in %.1fs. Typing time: %d mins\n", elapsed, rec.TypingMinutes)
	return nil
}

func (a *App) Goals(ctx context.Context) error {
	gs, err := a.class.MyGoals(ctx)
	if err != nil {
		return err
	}
	if len(gs) == 0 {
		a.println("No goals this week.")
		return nil
	}
	for _, g := range gs {
		a.printf("%s  [%s] %s | subject: %s | due: %s\n", g.ID, g.Status.Label(), g.Title, g.Subject, g.DueISO)
	}
	return nil
}

func (a *App) Submit(ctx context.Context, args []string) error {
	id, err := a.arg(args, 0, "Goal id")
	if err != nil {
		return err
	}
	g, err := a.class.SubmitGoal(ctx, id)
	if err != nil {
		return err
	}
	a.printf("Submitted %q for review.\n", g.Title)
	return nil
}
