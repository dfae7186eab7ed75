// Package database opens the blog post store selected by DATABASE_URL.
//
// mongodb:// and mongodb+srv:// URLs use the MongoDB backend, postgres:// and postgresql:// URLs
// use the PostgreSQL backend. Both implement blog.Store.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/information-sharing-networks/blog-demo/internal/blog"
	"github.com/information-sharing-networks/blog-demo/internal/config"
	"github.com/information-sharing-networks/blog-demo/internal/database/mongodb"
	"github.com/information-sharing-networks/blog-demo/internal/database/postgres"
)

type Backend string

const (
	BackendMongoDB  Backend = "mongodb"
	BackendPostgres Backend = "postgres"
)

// BackendFor returns the backend that serves databaseURL
func BackendFor(databaseURL string) (Backend, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid database URL: %w", err)
	}
	switch u.Scheme {
	case "mongodb", "mongodb+srv":
		return BackendMongoDB, nil
	case "postgres", "postgresql":
		return BackendPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database URL scheme %q", u.Scheme)
	}
}

// Open connects to the configured database, checks it is reachable and returns the store.
// For PostgreSQL the schema migrations are applied before the store is returned.
func Open(ctx context.Context, cfg *config.ServerEnvironment, logger *slog.Logger) (blog.Store, error) {
	backend, err := BackendFor(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DatabasePingTimeout)
	defer cancel()

	switch backend {
	case BackendMongoDB:
		store, err := mongodb.New(pingCtx, mongodb.Config{
			URL:             cfg.DatabaseURL,
			MaxConnections:  uint64(cfg.DBMaxConnections),
			MinConnections:  uint64(cfg.DBMinConnections),
			MaxConnIdleTime: cfg.DBMaxConnIdleTime,
			ConnectTimeout:  cfg.DBConnectTimeout,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("connected to MongoDB", slog.String("database", store.DatabaseName()))
		return store, nil

	case BackendPostgres:
		pool, err := postgres.NewPool(pingCtx, postgres.Config{
			URL:             cfg.DatabaseURL,
			MaxConnections:  cfg.DBMaxConnections,
			MinConnections:  cfg.DBMinConnections,
			MaxConnLifetime: cfg.DBMaxConnLifetime,
			MaxConnIdleTime: cfg.DBMaxConnIdleTime,
			ConnectTimeout:  cfg.DBConnectTimeout,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("connected to PostgreSQL")

		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, err
		}
		return postgres.New(pool), nil
	}

	return nil, fmt.Errorf("unsupported backend %q", backend)
}
