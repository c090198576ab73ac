package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/sharkbite/internal/models"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App implements
// it; tests use a stub.
type execIface interface {
	currentRole() models.Role

	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	Progress(ctx context.Context) error
	ExportSelf(ctx context.Context) error

	Roster(ctx context.Context) error
	AssignQuest(ctx context.Context, args []string) error
	AssignSubjects(ctx context.Context, args []string) error
	AddSubject(ctx context.Context, args []string) error
	CreateGoal(ctx context.Context, args []string) error
	Reviews(ctx context.Context) error
	Approve(ctx context.Context, args []string) error
	Reject(ctx context.Context, args []string) error
	ExportAll(ctx context.Context) error

	SelectSubject(ctx context.Context, args []string) error
	Quests(ctx context.Context) error
	Play(ctx context.Context, args []string) error
	Typing(ctx context.Context) error
	Goals(ctx context.Context) error
	Submit(ctx context.Context, args []string) error
}

func helpText(role models.Role) string {
	switch role {
	case models.RoleTeacher:
		return "Available commands: roster, assignquest, subjects, addsubject, goal, reviews, approve, reject, exportall, progress, export, logout, exit"
	case models.RoleStudent:
		return "Available commands: subject, quests, play, typing, goals, submit, progress, export, logout, exit"
	default:
		return "Available commands: register, login, exit"
	}
}

// runREPL reads one command per line from reader and dispatches it. Errors
// from handlers are printed and the loop continues. It returns on EOF,
// "exit"/"quit" or when ctx is done.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("shark%s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText(a.currentRole()))

		case "register":
			cmdErr = a.Register(ctx, args)
		case "login":
			cmdErr = a.Login(ctx, args)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "progress", "me":
			cmdErr = a.Progress(ctx)
		case "export":
			cmdErr = a.ExportSelf(ctx)

		case "roster":
			cmdErr = a.Roster(ctx)
		case "assignquest":
			cmdErr = a.AssignQuest(ctx, args)
		case "subjects":
			cmdErr = a.AssignSubjects(ctx, args)
		case "addsubject":
			cmdErr = a.AddSubject(ctx, args)
		case "goal":
			cmdErr = a.CreateGoal(ctx, args)
		case "reviews":
			cmdErr = a.Reviews(ctx)
		case "approve":
			cmdErr = a.Approve(ctx, args)
		case "reject":
			cmdErr = a.Reject(ctx, args)
		case "exportall":
			cmdErr = a.ExportAll(ctx)

		case "subject":
			cmdErr = a.SelectSubject(ctx, args)
		case "quests":
			cmdErr = a.Quests(ctx)
		case "play":
			cmdErr = a.Play(ctx, args)
		case "typing":
			cmdErr = a.Typing(ctx)
		case "goals":
			cmdErr = a.Goals(ctx)
		case "submit":
			cmdErr = a.Submit(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("error:", cmdErr)
		}
	}
}
