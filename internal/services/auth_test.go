package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/sharkbite/internal/common"
	"github.com/dmitrijs2005/sharkbite/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	f := classroom(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "amy", "Teacher")
	assert.ErrorIs(t, err, common.ErrDuplicateUsername)

	_, err = f.auth.Register(ctx, "zoe", "principal")
	assert.ErrorIs(t, err, common.ErrInvalidRole)

	_, err = f.auth.Register(ctx, "  ", "Student")
	assert.ErrorIs(t, err, common.ErrInvalidUsername)

	bob, ok := f.reg.Find("bob")
	require.True(t, ok)
	assert.Equal(t, models.RoleStudent, bob.Role)
}

func TestLoginLogout(t *testing.T) {
	f := classroom(t)
	ctx := context.Background()

	_, err := f.auth.Login(ctx, "ghost")
	require.ErrorIs(t, err, common.ErrUserNotFound)
	_, ok := f.auth.Current()
	assert.False(t, ok)

	f.login(t, "amy")
	cur, ok := f.auth.Current()
	require.True(t, ok)
	assert.Equal(t, "amy", cur.Username)

	f.auth.Logout(ctx)
	_, ok = f.auth.Current()
	assert.False(t, ok)
}

func TestRegisterThenLogin_PaddedUsername(t *testing.T) {
	f := classroom(t)
	ctx := context.Background()

	rec, err := f.auth.Register(ctx, " zoe ", "Student")
	require.NoError(t, err)
	assert.Equal(t, "zoe", rec.Username)

	cur, err := f.auth.Login(ctx, " zoe")
	require.NoError(t, err)
	assert.Equal(t, "zoe", cur.Username)
}
