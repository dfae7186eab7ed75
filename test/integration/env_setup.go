//go:build integration

package integration

// Test environment setup and server lifecycle management.
//
// By default both backends are tested. Restrict them with TEST_BACKENDS, e.g.
//
//	TEST_BACKENDS=mongodb go test -tags=integration -v ./test/integration
//
// MongoDB is reached at TEST_MONGODB_URL (default mongodb://localhost:27017/test-blog-app).
// PostgreSQL uses the local dev database on port 15433, or the CI service when GITHUB_ACTIONS=true.
//
// By default the server logs are not included in the test output, you can enable them with:
//
//	ENABLE_SERVER_LOGS=true go test -tags=integration -v ./test/integration

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/information-sharing-networks/blog-demo/internal/blog"
	"github.com/information-sharing-networks/blog-demo/internal/config"
	"github.com/information-sharing-networks/blog-demo/internal/database"
	"github.com/information-sharing-networks/blog-demo/internal/logger"
	"github.com/information-sharing-networks/blog-demo/internal/server"
)

const seedPostCount = 10

// testEnv provides access to the test store and server for integration tests
type testEnv struct {
	baseURL string
	cfg     *config.ServerEnvironment

	// store is a connection independent of the server, used to seed and verify the database
	store blog.Store

	// seeded holds the posts inserted before the test ran
	seeded []blog.Post
}

// backends returns the backends to test
func backends() []database.Backend {
	selected := os.Getenv("TEST_BACKENDS")
	if selected == "" {
		return []database.Backend{database.BackendMongoDB, database.BackendPostgres}
	}

	var result []database.Backend
	for _, name := range strings.Split(selected, ",") {
		result = append(result, database.Backend(strings.TrimSpace(name)))
	}
	return result
}

// forEachBackend runs fn as a subtest for every backend under test
func forEachBackend(t *testing.T, fn func(t *testing.T, backend database.Backend)) {
	t.Helper()
	for _, backend := range backends() {
		t.Run(string(backend), func(t *testing.T) {
			fn(t, backend)
		})
	}
}

// databaseURL returns an empty database for the backend
func databaseURL(t *testing.T, backend database.Backend) string {
	t.Helper()

	switch backend {
	case database.BackendMongoDB:
		if url := os.Getenv("TEST_MONGODB_URL"); url != "" {
			return url
		}
		return "mongodb://localhost:27017/test-blog-app"
	case database.BackendPostgres:
		return setupTestDatabase(t)
	default:
		t.Fatalf("backend %q not supported (use mongodb or postgres)", backend)
		return ""
	}
}

// setEnv sets environment variables for the duration of the test
func setEnv(t *testing.T, vars map[string]string) {
	t.Helper()

	originalEnvVars := make(map[string]string)
	for key, value := range vars {
		originalEnvVars[key] = os.Getenv(key)
		os.Setenv(key, value)
	}

	t.Cleanup(func() {
		for key, original := range originalEnvVars {
			if original != "" {
				os.Setenv(key, original)
			} else {
				os.Unsetenv(key)
			}
		}
	})
}

// openTestStore opens a store on the test database, independent of any server
func openTestStore(t *testing.T, cfg *config.ServerEnvironment) blog.Store {
	t.Helper()

	ctx := context.Background()
	store, err := database.Open(ctx, cfg, logger.InitLogger(logger.LevelNone, "test"))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}

	t.Cleanup(func() {
		if err := store.Close(context.Background()); err != nil {
			t.Logf("Failed to close test store: %v", err)
		}
	})
	return store
}

// loadTestConfig points the server configuration at an empty database for the backend
func loadTestConfig(t *testing.T, backend database.Backend, port int) *config.ServerEnvironment {
	t.Helper()

	logLevel := "none"
	if os.Getenv("ENABLE_SERVER_LOGS") == "true" {
		logLevel = "debug"
	}

	setEnv(t, map[string]string{
		"HOST":           "localhost",
		"PORT":           fmt.Sprintf("%d", port),
		"ENVIRONMENT":    "test",
		"LOG_LEVEL":      logLevel,
		"RATE_LIMIT_RPS": "0",
		"DATABASE_URL":   databaseURL(t, backend),
	})

	cfg, err := config.NewServerConfig()
	if err != nil {
		t.Fatalf("Failed to load configuration: %v", err)
	}
	return cfg
}

// startInProcessServer starts the blog-server in-process for testing against the backend.
//
// Before the server starts the database is seeded with 10 random posts. When the test completes
// the server is stopped and the database is dropped.
func startInProcessServer(t *testing.T, backend database.Backend) *testEnv {
	t.Helper()

	t.Logf("Starting in-process server (%s)...", backend)

	port := findFreePort(t)
	cfg := loadTestConfig(t, backend, port)

	env := &testEnv{
		cfg:   cfg,
		store: openTestStore(t, cfg),
	}

	ctx := context.Background()

	// start from an empty collection even if a previous run was interrupted
	if err := env.store.Drop(ctx); err != nil {
		t.Fatalf("Failed to drop test database: %v", err)
	}

	seeded, err := database.Seed(ctx, env.store, gofakeit.New(0), seedPostCount)
	if err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}
	env.seeded = seeded

	appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), "test")

	serverStore, err := database.Open(ctx, cfg, appLogger)
	if err != nil {
		t.Fatalf("Failed to open server store: %v", err)
	}
	serverInstance := server.NewServer(serverStore, cfg, appLogger)

	serverCtx, serverCancel := context.WithCancel(ctx)

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := serverInstance.Start(serverCtx); err != nil {
			serverDone <- err
		}
	}()

	// cleanups run last-in first-out: stop the server, then drop the database
	t.Cleanup(func() {
		if err := env.store.Drop(context.Background()); err != nil {
			t.Errorf("Failed to drop test database: %v", err)
		}
	})
	t.Cleanup(func() {
		t.Log("Stopping server...")
		serverCancel()

		select {
		case err := <-serverDone:
			if err != nil {
				t.Logf("Server shutdown with error: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Log("Server shutdown timeout")
		}

		serverInstance.DatabaseShutdown()
	})

	env.baseURL = fmt.Sprintf("http://localhost:%d", port)

	if !waitForServer(t, env.baseURL+"/health/ready", 30*time.Second) {
		t.Fatal("Server failed to start within timeout")
	}

	t.Logf("Server started at %s", env.baseURL)
	return env
}

func findFreePort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("Failed to find free port: %v", err)
	}
	defer listener.Close()

	addr := listener.Addr().(*net.TCPAddr)
	return addr.Port
}

func waitForServer(t *testing.T, url string, timeout time.Duration) bool {
	t.Helper()

	client := &http.Client{Timeout: 1 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return true
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	return false
}

// Test database configuration

type databaseConfig struct {
	userAndPassword string
	dbname          string
	host            string
	port            int
}

func (d *databaseConfig) connectionURL() string {
	return fmt.Sprintf("postgres://%s@%s:%d/%s?sslmode=disable",
		d.userAndPassword, d.host, d.port, d.dbname)
}

func (d *databaseConfig) WithDatabase(dbname string) *databaseConfig {
	return &databaseConfig{
		userAndPassword: d.userAndPassword,
		host:            d.host,
		port:            d.port,
		dbname:          dbname,
	}
}

func localDatabaseConfig() *databaseConfig {
	return &databaseConfig{
		userAndPassword: "blog-dev",
		dbname:          "tmp_blog_integration_test",
		host:            "localhost",
		port:            15433,
	}
}

func ciDatabaseConfig() *databaseConfig {
	return &databaseConfig{
		userAndPassword: "postgres:postgres",
		dbname:          "tmp_blog_integration_test",
		host:            "localhost",
		port:            5432,
	}
}

// setupTestDatabase creates an empty PostgreSQL test database and returns its URL.
// The schema is applied by database.Open. The database is dropped when the test completes.
// the function auto-detects if it is running in CI (github actions) and uses the appropriate database config
func setupTestDatabase(t *testing.T) string {
	t.Helper()

	ctx := context.Background()
	config := *localDatabaseConfig()
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		config = *ciDatabaseConfig()
	}

	// connect to the postgres database to create the test database
	postgresConnectionURL := config.WithDatabase("postgres").connectionURL()

	postgresPool, err := pgxpool.New(ctx, postgresConnectionURL)
	if err != nil {
		t.Fatalf("Unable to create postgres connection pool: %v", err)
	}

	if err := postgresPool.Ping(ctx); err != nil {
		postgresPool.Close()
		t.Fatalf("Can't ping PostgreSQL server %s", postgresConnectionURL)
	}

	if _, err := postgresPool.Exec(ctx, "DROP DATABASE IF EXISTS "+config.dbname+" WITH (FORCE)"); err != nil {
		t.Fatalf("DROP DATABASE IF EXISTS Failed : %v", err)
	}

	if _, err := postgresPool.Exec(ctx, "CREATE DATABASE "+config.dbname); err != nil {
		t.Fatalf("CREATE DATABASE Failed : %v", err)
	}

	// registered first so it runs after every store using the database has been closed
	t.Cleanup(func() {
		defer postgresPool.Close()
		if _, err := postgresPool.Exec(context.Background(), "DROP DATABASE IF EXISTS "+config.dbname+" WITH (FORCE)"); err != nil {
			t.Errorf("Failed to drop test database: %v", err)
		}
	})

	t.Logf("Database ready: %s", config.dbname)
	return config.connectionURL()
}
