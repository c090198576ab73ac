package services

import (
	"context"

	"github.com/dmitrijs2005/sharkbite/internal/logging"
	"github.com/dmitrijs2005/sharkbite/internal/models"
	"github.com/dmitrijs2005/sharkbite/internal/registry"
	"github.com/dmitrijs2005/sharkbite/internal/session"
)

// AuthService manages accounts and the active session. There are no
// passwords; a username is all it takes.
type AuthService interface {
	Register(ctx context.Context, username, role string) (*models.UserRecord, error)
	Login(ctx context.Context, username string) (*models.UserRecord, error)
	Logout(ctx context.Context)
	Current() (*models.UserRecord, bool)
}

type authService struct {
	reg    *registry.Registry
	sess   *session.Session
	logger logging.Logger
}

func NewAuthService(reg *registry.Registry, sess *session.Session, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &authService{reg: reg, sess: sess, logger: logger}
}

// Register creates an account. role is parsed case-insensitively.
func (a *authService) Register(ctx context.Context, username, role string) (*models.UserRecord, error) {
	r, err := models.ParseRole(role)
	if err != nil {
		return nil, err
	}
	rec, err := a.reg.Create(ctx, username, r)
	if err != nil {
		return nil, err
	}
	a.logger.Info(ctx, "account created", "username", rec.Username, "role", rec.Role)
	return rec, nil
}

func (a *authService) Login(ctx context.Context, username string) (*models.UserRecord, error) {
	rec, err := a.sess.Login(username)
	if err != nil {
		a.logger.Debug(ctx, "login refused", "username", username)
		return nil, err
	}
	a.logger.Info(ctx, "logged in", "username", rec.Username, "role", rec.Role)
	return rec, nil
}

func (a *authService) Logout(ctx context.Context) {
	if name := a.sess.Username(); name != "" {
		a.logger.Info(ctx, "logged out", "username", name)
	}
	a.sess.Logout()
}

func (a *authService) Current() (*models.UserRecord, bool) {
	return a.sess.Current()
}
