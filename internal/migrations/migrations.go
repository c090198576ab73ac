// Package migrations embeds the goose migrations for every supported store
// dialect and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/dmitrijs2005/sharkbite/internal/dbx"
	"github.com/pressly/goose/v3"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Dir returns the embedded directory holding migrations for d.
func Dir(d dbx.Dialect) string {
	if d == dbx.DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

// Up brings the schema for dialect d up to date. It is idempotent.
// goose keeps its settings in package globals, so Up must not run concurrently.
func Up(ctx context.Context, db *sql.DB, d dbx.Dialect) error {
	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect(d.GooseDialect()); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, Dir(d)); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
