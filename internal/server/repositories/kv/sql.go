package kv

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/mod7ex/chrome-ext-test/internal/dbx"
)

// sqlRepository implements Repository over any database/sql driver exposing
// a kv(key, value) table. Dialects differ only in placeholders and upsert.
type sqlRepository struct {
	db          *sql.DB
	placeholder func(n int) string
	upsert      string
}

func (r *sqlRepository) Get(ctx context.Context, keys ...string) (map[string][]byte, error) {
	query := `SELECT key, value FROM kv`
	args := make([]any, 0, len(keys))
	if len(keys) > 0 {
		marks := make([]string, len(keys))
		for i, k := range keys {
			marks[i] = r.placeholder(i + 1)
			args = append(args, k)
		}
		query += ` WHERE key IN (` + strings.Join(marks, ", ") + `)`
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get kv[%s]: %w", strings.Join(keys, ","), err)
	}
	defer rows.Close()

	result := make(map[string][]byte, len(keys))
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan kv row: %w", err)
		}
		result[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kv rows: %w", err)
	}

	return result, nil
}

func (r *sqlRepository) Set(ctx context.Context, items map[string][]byte) error {
	if len(items) == 0 {
		return nil
	}

	// deterministic statement order keeps sqlmock expectations stable
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, k := range keys {
			v := items[k]
			if v == nil {
				v = []byte{}
			}
			if _, err := tx.ExecContext(ctx, r.upsert, k, v); err != nil {
				return fmt.Errorf("failed to set kv[%s]: %w", k, err)
			}
		}
		return nil
	})
}

func (r *sqlRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv`); err != nil {
		return fmt.Errorf("failed to clear kv: %w", err)
	}
	return nil
}

func (r *sqlRepository) Close() error {
	return r.db.Close()
}
