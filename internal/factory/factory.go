// Package factory wires storage backends and services into a runnable
// application.
package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/accountweb/accountweb/internal/services/auth"
	"github.com/accountweb/accountweb/internal/storage"
	"github.com/accountweb/accountweb/internal/storage/memory"
	"github.com/accountweb/accountweb/internal/storage/postgres"
	redisstorage "github.com/accountweb/accountweb/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypePostgres = "postgres"

	SessionStoreTypeRedis = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Users    storage.UserStore
	Sessions storage.SessionStore

	// Services
	AuthService *auth.Service

	closers []func() error
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the user storage backend ("memory" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// DatabaseURL is the postgres connection string (required if StorageType is "postgres")
	DatabaseURL string
	// SessionStoreType selects where sessions live ("memory", "postgres" or "redis")
	// If empty, sessions share the user storage backend
	SessionStoreType string
	// RedisConfig holds Redis connection settings (required if SessionStoreType is "redis")
	RedisConfig *redisstorage.Config
	// BcryptCost overrides the password hashing cost (optional)
	// If zero, the bcrypt default cost is used
	BcryptCost int
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	app := &App{}

	// Create user storage based on type
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	var users storage.UserStore
	var sessions storage.SessionStore

	switch storageType {
	case StorageTypeMemory:
		store := memory.New()
		users = store
		sessions = store
	case StorageTypePostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DatabaseURL required when StorageType is postgres")
		}
		store, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, func() error { store.Close(); return nil })
		users = store
		sessions = store
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'postgres'")
	}

	// Sessions may live in a different backend than users
	sessionType := cfg.SessionStoreType
	if sessionType != "" && sessionType != storageType {
		switch sessionType {
		case StorageTypeMemory:
			sessions = memory.New()
		case StorageTypePostgres:
			if cfg.DatabaseURL == "" {
				return nil, errors.New("DatabaseURL required when SessionStoreType is postgres")
			}
			store, err := postgres.New(ctx, cfg.DatabaseURL)
			if err != nil {
				app.Close()
				return nil, err
			}
			app.closers = append(app.closers, func() error { store.Close(); return nil })
			sessions = store
		case SessionStoreTypeRedis:
			if cfg.RedisConfig == nil {
				return nil, errors.New("RedisConfig required when SessionStoreType is redis")
			}
			redisStore, err := redisstorage.New(*cfg.RedisConfig)
			if err != nil {
				app.Close()
				return nil, err
			}
			app.closers = append(app.closers, redisStore.Close)
			sessions = redisStore
		default:
			return nil, errors.New("invalid SessionStoreType: must be 'memory', 'postgres' or 'redis'")
		}
	}

	app.Users = users
	app.Sessions = sessions
	app.AuthService = auth.New(users, sessions, auth.NewPasswordHasher(cfg.BcryptCost), logger)

	return app, nil
}

// Close releases storage connections held by the app
func (a *App) Close() error {
	var errs []error
	for _, closer := range a.closers {
		if err := closer(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
