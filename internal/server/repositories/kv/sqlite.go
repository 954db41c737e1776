package kv

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mod7ex/chrome-ext-test/internal/filex"
	"github.com/mod7ex/chrome-ext-test/internal/server/migrations"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	sqlRepository
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{sqlRepository{
		db:          db,
		placeholder: func(int) string { return "?" },
		upsert: `INSERT INTO kv (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
	}}
}

// OpenSQLite opens (creating if needed) the database at dsn and applies the
// kv migrations. A single connection is kept so ":memory:" databases are
// shared by every query. Missing parent directories of a file path are
// created.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteRepository, error) {
	if filex.IsPlainFilePath(dsn) {
		if err := filex.EnsureParentDir(dsn); err != nil {
			return nil, fmt.Errorf("sqlite open error: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite open error: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := migrate(ctx, db, "sqlite3", migrations.SQLite, "sqlite"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewSQLiteRepository(db), nil
}
