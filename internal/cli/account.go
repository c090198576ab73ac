package cli

import (
	"context"
)

func (a *App) Register(ctx context.Context, args []string) error {
	name, err := a.arg(args, 0, "Enter username")
	if err != nil {
		return err
	}
	role, err := a.arg(args, 1, "Role (Student or Teacher)")
	if err != nil {
		return err
	}
	rec, err := a.auth.Register(ctx, name, role)
	if err != nil {
		return err
	}
	a.printf("Account %s created as %s.\n", rec.Username, rec.Role)
	return nil
}

func (a *App) Login(ctx context.Context, args []string) error {
	name, err := a.arg(args, 0, "Enter username")
	if err != nil {
		return err
	}
	rec, err := a.auth.Login(ctx, name)
	if err != nil {
		return err
	}
	a.printf("Welcome, %s!\n", rec.Username)
	if rec.AssignedQuest != "" {
		a.printf("Assigned quest: %s\n", rec.AssignedQuest)
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	a.println("Logged out.")
	return nil
}

func (a *App) Progress(ctx context.Context) error {
	text, err := a.class.Progress(ctx)
	if err != nil {
		return err
	}
	a.printf("%s", text)
	return nil
}

func (a *App) ExportSelf(ctx context.Context) error {
	loc, err := a.class.ExportSelf(ctx)
	if err != nil {
		return err
	}
	a.println("Progress saved to", loc)
	return nil
}
