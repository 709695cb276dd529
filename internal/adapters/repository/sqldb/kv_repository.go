package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/vncsmyrnk/tamaire/internal/core/ports"
)

type kvRepository struct {
	db     *sql.DB
	driver string
}

// NewKVRepository stores values in the kv_store table and implements
// ports.Pinger. The table must exist, see CreateSchema.
func NewKVRepository(db *sql.DB, driver string) ports.KeyValueStore {
	return &kvRepository{
		db:     db,
		driver: driver,
	}
}

var placeholder = regexp.MustCompile(`\$\d+`)

// rebind rewrites $N placeholders for drivers that only take "?".
func (r *kvRepository) rebind(query string) string {
	if r.driver == DriverSQLite {
		return placeholder.ReplaceAllString(query, "?")
	}
	return query
}

func (r *kvRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := `SELECT value FROM kv_store WHERE key = $1`
	var value string
	err := r.db.QueryRowContext(ctx, r.rebind(query), key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (r *kvRepository) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, r.rebind(query), key, string(value))
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (r *kvRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
