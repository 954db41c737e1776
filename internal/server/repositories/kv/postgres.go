package kv

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/mod7ex/chrome-ext-test/internal/server/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresRepository struct {
	sqlRepository
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{sqlRepository{
		db:          db,
		placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
		upsert: `INSERT INTO kv (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
	}}
}

func OpenPostgres(ctx context.Context, dsn string) (*PostgresRepository, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := migrate(ctx, db, "postgres", migrations.Postgres, "postgres"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewPostgresRepository(db), nil
}
