package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/sharkbite/internal/config"
	"github.com/dmitrijs2005/sharkbite/internal/export"
	"github.com/dmitrijs2005/sharkbite/internal/goals"
	"github.com/dmitrijs2005/sharkbite/internal/ledger"
	"github.com/dmitrijs2005/sharkbite/internal/logging"
	"github.com/dmitrijs2005/sharkbite/internal/models"
	"github.com/dmitrijs2005/sharkbite/internal/registry"
	"github.com/dmitrijs2005/sharkbite/internal/services"
	"github.com/dmitrijs2005/sharkbite/internal/session"
	"github.com/dmitrijs2005/sharkbite/internal/storage"
)

type App struct {
	auth   services.AuthService
	class  services.ClassroomService
	logger logging.Logger

	reader      *bufio.Reader
	out         io.Writer
	interactive bool
	now         func() time.Time

	closeFn   func(ctx context.Context) error
	closeOnce sync.Once
	closeErr  error
}

// NewApp opens the store described by cfg and wires every layer.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	dialect, err := cfg.Dialect()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(ctx, dialect, cfg.StoreDSN, logger.With("component", "storage"))
	if err != nil {
		return nil, err
	}

	var sink export.Sink
	if cfg.UsesS3() {
		sink, err = export.NewS3Sink(ctx, cfg.S3(), logger.With("component", "export"))
		if err != nil {
			_ = store.Close()
			return nil, err
		}
	} else {
		sink = export.NewDirSink(cfg.ExportDir, logger.With("component", "export"))
	}

	reg := registry.Open(ctx, store, registry.WithActiveSubjectPolicy(policy))
	sess := session.New(reg)
	engine := goals.New(reg, goals.WithLocation(loc), goals.WithLogger(logger.With("component", "goals")))

	a := &App{
		auth: services.NewAuthService(reg, sess, logger),
		class: services.NewClassroomService(services.Deps{
			Registry: reg,
			Session:  sess,
			Goals:    engine,
			Ledger:   ledger.New(reg, logger),
			Sink:     sink,
			Policy:   policy,
			Logger:   logger,
		}),
		logger:      logger,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: isTerminal(int(os.Stdin.Fd())),
		now:         time.Now,
		closeFn: func(context.Context) error {
			return store.Close()
		},
	}
	logger.Info(ctx, "registry ready", "users", reg.Len(), "driver", dialect, "policy", policy)
	return a, nil
}

// Run reads commands until EOF, "exit" or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	a.println("Welcome to SharkBite (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

// Close releases the store. Every change was already saved when it was made,
// so nothing is written here. Only the first call does any work.
func (a *App) Close(ctx context.Context) error {
	a.closeOnce.Do(func() {
		if a.closeFn != nil {
			a.closeErr = a.closeFn(ctx)
		}
	})
	return a.closeErr
}

func (a *App) currentRole() models.Role {
	rec, ok := a.auth.Current()
	if !ok {
		return ""
	}
	return rec.Role
}

func (a *App) status() string {
	rec, ok := a.auth.Current()
	if !ok {
		return ""
	}
	if rec.ActiveSubject != "" {
		return fmt.Sprintf("(%s %s %s)", rec.Username, rec.Role, rec.ActiveSubject)
	}
	return fmt.Sprintf("(%s %s)", rec.Username, rec.Role)
}

// promptOut hides prompts when input is piped in.
func (a *App) promptOut() io.Writer {
	if a.interactive {
		return a.out
	}
	return io.Discard
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// arg returns args[i] or asks for it.
func (a *App) arg(args []string, i int, prompt string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}
	return GetSimpleText(a.reader, prompt, a.promptOut())
}
