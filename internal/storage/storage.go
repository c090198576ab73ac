// Package storage persists the whole SharkBite registry as one JSON document
// in the local_storage key/value table.
//
// Load never fails: a missing document yields an empty registry, and an
// unreadable one is logged and also yields an empty registry so the
// application can keep running. A single unreadable record is skipped and
// the rest of the registry is kept. Save writes the document and its schema
// version in one transaction.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/sharkbite/internal/common"
	"github.com/dmitrijs2005/sharkbite/internal/dbx"
	"github.com/dmitrijs2005/sharkbite/internal/logging"
	"github.com/dmitrijs2005/sharkbite/internal/migrations"
	"github.com/dmitrijs2005/sharkbite/internal/models"
	"github.com/dmitrijs2005/sharkbite/internal/repositories/kv"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	// UsersKey holds the serialized registry.
	UsersKey = "allUsers"
	// VersionKey holds the schema version the registry was written with.
	VersionKey = "schemaVersion"
)

// Adapter reads and writes the registry document.
type Adapter struct {
	db      *sql.DB
	dialect dbx.Dialect
	logger  logging.Logger
}

// New wraps an already migrated database.
func New(db *sql.DB, d dbx.Dialect, logger logging.Logger) *Adapter {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Adapter{db: db, dialect: d, logger: logger}
}

// Open connects to dsn with the driver for d, applies migrations and
// returns the adapter. The caller owns Close.
func Open(ctx context.Context, d dbx.Dialect, dsn string, logger logging.Logger) (*Adapter, error) {
	db, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", common.ErrStorageUnavailable, d, err)
	}
	if d == dbx.DialectSQLite {
		// a single connection keeps ":memory:" databases alive and
		// serialises writers
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", common.ErrStorageUnavailable, d, err)
	}
	if err := migrations.Up(ctx, db, d); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	return New(db, d, logger), nil
}

func (a *Adapter) repo() kv.Repository {
	return kv.NewRepository(a.db, a.dialect)
}

// Load returns the stored registry with every record upgraded.
func (a *Adapter) Load(ctx context.Context) models.Users {
	raw, err := a.repo().Get(ctx, UsersKey)
	if err != nil {
		a.logger.Warn(ctx, "registry unreadable, starting empty",
			"error", fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err))
		return models.Users{}
	}
	if len(raw) == 0 {
		return models.Users{}
	}

	var docs map[string]json.RawMessage
	if err := json.Unmarshal(raw, &docs); err != nil {
		a.logger.Warn(ctx, "registry corrupt, starting empty",
			"error", fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err))
		return models.Users{}
	}

	out := make(models.Users, len(docs))
	for key, doc := range docs {
		var rec *models.UserRecord
		if err := json.Unmarshal(doc, &rec); err != nil {
			a.logger.Warn(ctx, "skipping unreadable registry entry", "username", key, "error", err)
			continue
		}
		if rec == nil {
			a.logger.Warn(ctx, "dropping empty registry entry", "username", key)
			continue
		}
		out[key] = models.Upgrade(key, rec)
	}
	a.logger.Debug(ctx, "registry loaded", "users", len(out))
	return out
}

// Save replaces the stored registry with users.
func (a *Adapter) Save(ctx context.Context, users models.Users) error {
	if users == nil {
		users = models.Users{}
	}
	payload, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("%w: encode registry: %w", common.ErrStorageUnavailable, err)
	}

	err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewRepository(tx, a.dialect)
		if err := repo.Set(ctx, UsersKey, payload); err != nil {
			return err
		}
		return repo.Set(ctx, VersionKey, []byte(strconv.Itoa(models.CurrentSchemaVersion)))
	})
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	return nil
}

// Reset removes every stored key.
func (a *Adapter) Reset(ctx context.Context) error {
	if err := a.repo().Clear(ctx); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	return nil
}

// Close releases the database.
func (a *Adapter) Close() error {
	return a.db.Close()
}
