package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/information-sharing-networks/blog-demo/internal/config"
	"github.com/information-sharing-networks/blog-demo/internal/database"
	"github.com/information-sharing-networks/blog-demo/internal/database/postgres"
	"github.com/information-sharing-networks/blog-demo/internal/logger"
	"github.com/information-sharing-networks/blog-demo/internal/server"
	"github.com/information-sharing-networks/blog-demo/internal/version"
)

//	@title			blog-server
//	@description	blog-server is a CRUD API for blog posts stored in MongoDB or PostgreSQL.
//	@description
//	@description	## Common Error Responses
//	@description	All endpoints may return:
//	@description	- `413` Request body exceeds size limit
//	@description	- `429` Rate limit exceeded
//	@description	- `500` Internal server error
//	@description
//	@description	## Request Limits
//	@description	- **Rate limiting**: Configurable requests per second (see env vars) - default 100 rps (set to 0 to disable)
//	@description	- **Request size limits**: Configurable (see env vars) - default 1MB
//	@description
//	@description	Check the X-Max-Request-Size response header for the configured limit.
//	@license.name	MIT

//	@servers.url			http://localhost:8080
//	@servers.description	Development server

//	@accept		json
//	@produce	json

//	@tag.name			Posts
//	@tag.description	Blog post endpoints

//	@tag.name			Common
//	@tag.description	Server API endpoints (health, readiness, version, docs)

var seedCount int

func main() {
	cmd := &cobra.Command{
		Use:               "blog-server",
		Short:             "Blog posts API server",
		Long:              `blog-server serves the /posts API. The backing store is selected by the DATABASE_URL scheme (mongodb:// or postgres://)`,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the PostgreSQL schema migrations",
		Long:  `Apply the embedded goose migrations to the PostgreSQL database in DATABASE_URL. MongoDB needs no migrations.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context())
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert randomly generated blog posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), seedCount)
		},
	}
	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 10, "number of posts to insert")

	cmd.AddCommand(migrateCmd, seedCmd)

	v := version.Get()
	cmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads .env (if present) and the environment, and initialises the default logger
func loadConfig() (*config.ServerEnvironment, *slog.Logger, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg, err := config.NewServerConfig()
	if err != nil {
		log.Printf("failed to load configuration: %v", err.Error())
		return nil, nil, err
	}

	appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)
	return cfg, appLogger, nil
}

func run() error {
	cfg, appLogger, err := loadConfig()
	if err != nil {
		return err
	}

	backend, _ := database.BackendFor(cfg.DatabaseURL)
	appLogger.Info("Configuration loaded",
		slog.String("ENVIRONMENT", cfg.Environment),
		slog.String("HOST", cfg.Host),
		slog.Int("PORT", cfg.Port),
		slog.String("LOG_LEVEL", cfg.LogLevel),
		slog.String("DATABASE_BACKEND", string(backend)),
		slog.Int64("MAX_REQUEST_BODY_BYTES", cfg.MaxRequestBodyBytes),
		slog.Int("RATE_LIMIT_RPS", int(cfg.RateLimitRPS)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Open(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Unable to open database", slog.String("error", err.Error()))
		return err
	}

	appLogger.Info("Starting server", slog.String("version", version.Get().Version))

	srv := server.NewServer(store, cfg, appLogger)
	defer srv.DatabaseShutdown()

	if err := srv.Start(ctx); err != nil {
		appLogger.Error("Server error", slog.String("error", err.Error()))
		return err
	}

	appLogger.Info("server shutdown complete")
	return nil
}

func runMigrate(ctx context.Context) error {
	cfg, appLogger, err := loadConfig()
	if err != nil {
		return err
	}

	backend, err := database.BackendFor(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if backend != database.BackendPostgres {
		appLogger.Info("nothing to migrate", slog.String("backend", string(backend)))
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DatabasePingTimeout)
	defer cancel()

	pool, err := postgres.NewPool(pingCtx, postgres.Config{
		URL:            cfg.DatabaseURL,
		MaxConnections: 1,
		ConnectTimeout: cfg.DBConnectTimeout,
	})
	if err != nil {
		appLogger.Error("Unable to connect to PostgreSQL", slog.String("error", err.Error()))
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, appLogger); err != nil {
		appLogger.Error("Migration failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}

func runSeed(ctx context.Context, count int) error {
	cfg, appLogger, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := database.Open(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("Unable to open database", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			appLogger.Warn("database close error", slog.String("error", err.Error()))
		}
	}()

	posts, err := database.Seed(ctx, store, gofakeit.New(0), count)
	if err != nil {
		appLogger.Error("Seeding failed", slog.String("error", err.Error()))
		return err
	}

	for _, p := range posts {
		appLogger.Debug("inserted post", slog.String("id", p.ID), slog.String("title", p.Title))
	}
	appLogger.Info("seeded blog posts", slog.Int("count", len(posts)))
	return nil
}
