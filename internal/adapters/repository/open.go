// Package repository selects the key-value backend named by the config.
package repository

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vncsmyrnk/tamaire/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/tamaire/internal/adapters/repository/redisstore"
	"github.com/vncsmyrnk/tamaire/internal/adapters/repository/sqldb"
	"github.com/vncsmyrnk/tamaire/internal/config"
	"github.com/vncsmyrnk/tamaire/internal/core/ports"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the configured store and the resource to close on shutdown.
// SQL backends get their schema created.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.KeyValueStore, io.Closer, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		logger.Warn("memory store selected, state is lost on exit")
		return memory.NewKVRepository(), nopCloser{}, nil
	case config.StoreSQLite, config.StorePostgres:
		db, err := sqldb.Open(ctx, cfg.StoreDriver, cfg.StoreDSN, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := sqldb.CreateSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return sqldb.NewKVRepository(db, cfg.StoreDriver), db, nil
	case config.StoreRedis:
		repo, err := redisstore.NewKVRepository(cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
