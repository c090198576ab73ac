package registry

import (
	"context"

	"github.com/dmitrijs2005/sharkbite/internal/models"
)

// MemoryStore keeps the registry in process memory. It deep-copies on both
// Load and Save so callers cannot alias stored records.
type MemoryStore struct {
	users models.Users
	// SaveErr, when set, is returned by every Save.
	SaveErr error
	Saves   int
}

func NewMemoryStore(seed models.Users) *MemoryStore {
	if seed == nil {
		seed = models.Users{}
	}
	return &MemoryStore{users: seed.Clone()}
}

func (m *MemoryStore) Load(context.Context) models.Users {
	return m.users.Clone()
}

func (m *MemoryStore) Save(_ context.Context, users models.Users) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.users = users.Clone()
	m.Saves++
	return nil
}

// Stored returns what the last successful Save wrote.
func (m *MemoryStore) Stored() models.Users {
	return m.users.Clone()
}
