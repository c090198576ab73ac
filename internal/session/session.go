// Package session tracks the single active identity of a SharkBite process.
package session

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/sharkbite/internal/common"
	"github.com/dmitrijs2005/sharkbite/internal/models"
)

// Directory resolves usernames to records.
type Directory interface {
	Find(username string) (*models.UserRecord, bool)
}

// Session remembers who is logged in. The record itself is always re-read
// from the directory so callers never see stale data.
type Session struct {
	mu       sync.RWMutex
	dir      Directory
	username string
	role     models.Role
}

func New(dir Directory) *Session {
	return &Session{dir: dir}
}

// Login makes username the active identity. There is no credential check.
// Surrounding whitespace is ignored, as it is on registration.
func (s *Session) Login(username string) (*models.UserRecord, error) {
	username = strings.TrimSpace(username)
	rec, ok := s.dir.Find(username)
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUserNotFound, username)
	}

	s.mu.Lock()
	s.username = rec.Username
	s.role = rec.Role
	s.mu.Unlock()
	return rec, nil
}

// Logout clears the active identity.
func (s *Session) Logout() {
	s.mu.Lock()
	s.username = ""
	s.role = ""
	s.mu.Unlock()
}

// Current returns the active user's record, or false when nobody is logged in.
func (s *Session) Current() (*models.UserRecord, bool) {
	s.mu.RLock()
	name := s.username
	s.mu.RUnlock()
	if name == "" {
		return nil, false
	}
	return s.dir.Find(name)
}

func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

func (s *Session) Role() models.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// Require returns the active username when its role is role.
func (s *Session) Require(role models.Role) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.username == "" {
		return "", common.ErrNotLoggedIn
	}
	if s.role != role {
		return "", fmt.Errorf("%w: %s only", common.ErrNotAuthorized, role)
	}
	return s.username, nil
}

// RequireAny returns the active username for any logged-in role.
func (s *Session) RequireAny() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.username == "" {
		return "", common.ErrNotLoggedIn
	}
	return s.username, nil
}
