package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/accountsystem/pkg/config"
)

// Open builds the store selected by cfg.Store.Driver. The Postgres backend
// migrates its table before returning.
func Open(ctx context.Context, cfg *config.App, logger *slog.Logger) (Store, error) {
	logger = logger.With("store_driver", cfg.Store.Driver)
	initial := cfg.Store.InitialBalance

	switch cfg.Store.Driver {
	case config.DriverMemory, "":
		logger.Debug("Using in-memory balance store")
		return NewMemoryStore(initial), nil
	case config.DriverJSON:
		logger.Debug("Using JSON balance store", "path", cfg.Store.Path)
		return NewJSONStore(cfg.Store.Path, initial), nil
	case config.DriverPostgres:
		db, err := OpenPostgres(cfg.DB.Url, cfg.Env)
		if err != nil {
			return nil, err
		}
		s := NewPostgresStore(db, DefaultAccountID, initial)
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
		logger.Debug("Using Postgres balance store")
		return s, nil
	case config.DriverRedis:
		client, err := OpenRedis(cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		logger.Debug("Using Redis balance store", "key", cfg.Redis.Key)
		return NewRedisStore(client, cfg.Redis.Key, initial), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Store.Driver)
	}
}
