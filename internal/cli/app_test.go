package cli

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/sharkbite/internal/config"
	"github.com/dmitrijs2005/sharkbite/internal/dbx"
	"github.com/dmitrijs2005/sharkbite/internal/goals"
	"github.com/dmitrijs2005/sharkbite/internal/ledger"
	"github.com/dmitrijs2005/sharkbite/internal/logging"
	"github.com/dmitrijs2005/sharkbite/internal/models"
	"github.com/dmitrijs2005/sharkbite/internal/quests"
	"github.com/dmitrijs2005/sharkbite/internal/registry"
	"github.com/dmitrijs2005/sharkbite/internal/repositories/kv"
	"github.com/dmitrijs2005/sharkbite/internal/services"
	"github.com/dmitrijs2005/sharkbite/internal/session"
	"github.com/dmitrijs2005/sharkbite/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

type testApp struct {
	*App
	reg *registry.Registry
	buf *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctx := context.Background()
	reg := registry.Open(ctx, registry.NewMemoryStore(nil))
	sess := session.New(reg)
	engine := goals.New(reg,
		goals.WithClock(func() time.Time { return time.Date(2026, 10, 21, 9, 0, 0, 0, time.UTC) }),
		goals.WithLocation(time.UTC))

	buf := &bytes.Buffer{}
	app := &App{
		auth: services.NewAuthService(reg, sess, nil),
		class: services.NewClassroomService(services.Deps{
			Registry: reg,
			Session:  sess,
			Goals:    engine,
			Ledger:   ledger.New(reg, nil),
		}),
		logger: logging.Discard(),
		out:    buf,
		now:    time.Now,
	}
	return &testApp{App: app, reg: reg, buf: buf}
}

func (ta *testApp) feed(lines ...string) {
	ta.reader = readerFromLines(lines...)
}

func TestApp_RegisterLoginAndPrompts(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)

	require.NoError(t, ta.Register(ctx, []string{"mr", "teacher"}))

	ta.feed("amy", "Student")
	require.NoError(t, ta.Register(ctx, nil))

	amy, ok := ta.reg.Find("amy")
	require.True(t, ok)
	assert.Equal(t, models.RoleStudent, amy.Role)
	assert.NotContains(t, ta.buf.String(), "Enter username", "prompts are hidden when not interactive")

	require.NoError(t, ta.Login(ctx, []string{"amy"}))
	assert.Equal(t, models.RoleStudent, ta.currentRole())
	assert.Equal(t, "(amy Student)", ta.status())

	require.NoError(t, ta.Logout(ctx))
	assert.Equal(t, "", ta.status())
}

func TestApp_TeacherAndStudentFlow(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)
	require.NoError(t, ta.Register(ctx, []string{"mr", "Teacher"}))
	require.NoError(t, ta.Register(ctx, []string{"amy", "Student"}))

	require.NoError(t, ta.Login(ctx, []string{"mr"}))
	require.NoError(t, ta.AssignSubjects(ctx, []string{"amy", "Math,", "Writing"}))
	require.NoError(t, ta.AssignQuest(ctx, []string{"amy", "Grammar", "Game"}))

	ta.feed("Finish 3 worksheets", "Math", "")
	require.NoError(t, ta.CreateGoal(ctx, []string{"amy"}))

	amy, _ := ta.reg.Find("amy")
	require.Len(t, amy.WeeklyGoals, 1)
	goalID := amy.WeeklyGoals[0].ID
	assert.Equal(t, "Grammar Game", amy.AssignedQuest)
	assert.Equal(t, "Math", amy.ActiveSubject)

	require.NoError(t, ta.Login(ctx, []string{"amy"}))
	assert.Contains(t, ta.buf.String(), "Assigned quest: Grammar Game")
	require.NoError(t, ta.Goals(ctx))
	assert.Contains(t, ta.buf.String(), "[Assigned] Finish 3 worksheets")
	require.NoError(t, ta.Submit(ctx, []string{goalID}))

	require.NoError(t, ta.Login(ctx, []string{"mr"}))
	ta.buf.Reset()
	require.NoError(t, ta.Reviews(ctx))
	assert.Contains(t, ta.buf.String(), "amy  "+goalID)
	require.NoError(t, ta.Approve(ctx, []string{"amy", goalID}))
	require.NoError(t, ta.Roster(ctx))
	assert.Contains(t, ta.buf.String(), "Badges: Goal Getter")

	require.NoError(t, ta.Login(ctx, []string{"amy"}))
	ta.buf.Reset()
	require.NoError(t, ta.Progress(ctx))
	assert.Contains(t, ta.buf.String(), "- [Approved] Finish 3 worksheets")
}

func TestApp_PlayQuests(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)
	require.NoError(t, ta.Register(ctx, []string{"amy", "Student"}))
	require.NoError(t, ta.Login(ctx, []string{"amy"}))

	ta.feed("Atlantic")
	require.NoError(t, ta.Play(ctx, []string{quests.DailyChallenge}))
	assert.Contains(t, ta.buf.String(), "Not quite!")

	ta.feed("Pacific")
	require.NoError(t, ta.Play(ctx, []string{quests.DailyChallenge}))
	assert.Contains(t, ta.buf.String(), "New badge: Ocean Brain")

	err := ta.Play(ctx, []string{"chess"})
	assert.Error(t, err)
}

func TestApp_Typing(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)
	require.NoError(t, ta.Register(ctx, []string{"amy", "Student"}))
	require.NoError(t, ta.Login(ctx, []string{"amy"}))

	start := time.Date(2026, 10, 21, 9, 0, 0, 0, time.UTC)
	ticks := []time.Time{start, start.Add(125 * time.Second)}
	ta.now = func() time.Time {
		t0 := ticks[0]
		ticks = ticks[1:]
		return t0
	}

	ta.feed(quests.TypingPassage)
	require.NoError(t, ta.Typing(ctx))
	assert.Contains(t, ta.buf.String(), "Typing time: 2 mins")

	amy, _ := ta.reg.Find("amy")
	assert.Equal(t, []string{"Typing Shark"}, amy.Badges)
}

func TestApp_RoleGateSurfacesErrors(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t)
	require.NoError(t, ta.Register(ctx, []string{"amy", "Student"}))
	require.NoError(t, ta.Login(ctx, []string{"amy"}))

	assert.Error(t, ta.Roster(ctx))
	assert.Error(t, ta.ExportAll(ctx))
	assert.ErrorIs(t, ta.ExportSelf(ctx), services.ErrNoSink)
}

func TestNewApp_SQLiteInTempDir(t *testing.T) {
	orig := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = orig })

	dir := t.TempDir()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StoreDSN = dir + "/sharkbite.db"
	cfg.ExportDir = dir + "/exports"

	ctx := context.Background()
	app, err := NewApp(ctx, cfg, logging.Discard())
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	app.out = buf
	app.reader = readerFromLines("register mr Teacher", "login mr", "exportall", "exit")
	app.Run(ctx)
	require.NoError(t, app.Close(ctx))

	assert.FileExists(t, dir+"/exports/registry.json")
	assert.FileExists(t, dir+"/exports/roster.xlsx")
}

func TestNewApp_ExitLeavesUnreadableRegistryAlone(t *testing.T) {
	orig := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = orig })

	ctx := context.Background()
	dir := t.TempDir()
	dsn := dir + "/sharkbite.db"

	adapter, err := storage.Open(ctx, dbx.DialectSQLite, dsn, nil)
	require.NoError(t, err)
	require.NoError(t, adapter.Close())

	stored := []byte(`{"amy":{"username":"amy","role":"Student","typingMinutes":"3"}}`)
	db, err := sql.Open(dbx.DialectSQLite.DriverName(), dsn)
	require.NoError(t, err)
	require.NoError(t, kv.NewSQLiteRepository(db).Set(ctx, storage.UsersKey, stored))
	require.NoError(t, db.Close())

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StoreDSN = dsn
	cfg.ExportDir = dir + "/exports"
	app, err := NewApp(ctx, cfg, logging.Discard())
	require.NoError(t, err)
	app.out = &bytes.Buffer{}
	app.reader = readerFromLines("exit")
	app.Run(ctx)
	require.NoError(t, app.Close(ctx))

	db, err = sql.Open(dbx.DialectSQLite.DriverName(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	got, err := kv.NewSQLiteRepository(db).Get(ctx, storage.UsersKey)
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}
