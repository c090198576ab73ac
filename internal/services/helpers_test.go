package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/sharkbite/internal/goals"
	"github.com/dmitrijs2005/sharkbite/internal/ledger"
	"github.com/dmitrijs2005/sharkbite/internal/models"
	"github.com/dmitrijs2005/sharkbite/internal/registry"
	"github.com/dmitrijs2005/sharkbite/internal/session"
	"github.com/stretchr/testify/require"
)

// Wednesday 2026-10-21 10:00 UTC.
var now = time.Date(2026, 10, 21, 10, 0, 0, 0, time.UTC)

type memSink struct {
	mu    sync.Mutex
	files map[string][]byte
	err   error
}

func newMemSink() *memSink { return &memSink{files: map[string][]byte{}} }

func (m *memSink) Put(_ context.Context, name string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.files[name] = append([]byte(nil), data...)
	return "mem://" + name, nil
}

type fixture struct {
	store *registry.MemoryStore
	reg   *registry.Registry
	sess  *session.Session
	auth  AuthService
	class ClassroomService
	sink  *memSink
}

func newFixture(t *testing.T, store registry.Store, policy models.ActiveSubjectPolicy) *fixture {
	t.Helper()
	ctx := context.Background()
	reg := registry.Open(ctx, store, registry.WithActiveSubjectPolicy(policy))
	sess := session.New(reg)

	n := 0
	engine := goals.New(reg,
		goals.WithClock(func() time.Time { return now }),
		goals.WithLocation(time.UTC),
		goals.WithIDGenerator(func() string { n++; return fmt.Sprintf("g%d", n) }),
	)
	sink := newMemSink()
	f := &fixture{
		reg:  reg,
		sess: sess,
		auth: NewAuthService(reg, sess, nil),
		class: NewClassroomService(Deps{
			Registry: reg,
			Session:  sess,
			Goals:    engine,
			Ledger:   ledger.New(reg, nil),
			Sink:     sink,
			Policy:   policy,
		}),
		sink: sink,
	}
	if ms, ok := store.(*registry.MemoryStore); ok {
		f.store = ms
	}
	return f
}

func (f *fixture) register(t *testing.T, username, role string) {
	t.Helper()
	_, err := f.auth.Register(context.Background(), username, role)
	require.NoError(t, err)
}

func (f *fixture) login(t *testing.T, username string) {
	t.Helper()
	_, err := f.auth.Login(context.Background(), username)
	require.NoError(t, err)
}

// classroom registers teacher "mr" and students "amy" and "bob".
func classroom(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t, registry.NewMemoryStore(nil), models.ClearIfAbsent)
	f.register(t, "mr", "Teacher")
	f.register(t, "amy", "Student")
	f.register(t, "bob", "student")
	return f
}
