package config

import (
	"strings"
	"testing"
	"time"
)

func TestNewServerConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017/blog")

	cfg, err := NewServerConfig()
	if err != nil {
		t.Fatalf("NewServerConfig() error = %v", err)
	}

	if cfg.Environment != "dev" {
		t.Errorf("Environment = %q, want dev", cfg.Environment)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.ServerShutdownTimeout != 10*time.Second {
		t.Errorf("ServerShutdownTimeout = %v, want 10s", cfg.ServerShutdownTimeout)
	}
	if cfg.MaxRequestBodyBytes != 1048576 {
		t.Errorf("MaxRequestBodyBytes = %d, want 1048576", cfg.MaxRequestBodyBytes)
	}
}

func TestNewServerConfig_RateLimitBurst(t *testing.T) {
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017/blog")
	t.Setenv("RATE_LIMIT_RPS", "10")
	t.Setenv("RATE_LIMIT_BURST", "0")

	_, err := NewServerConfig()
	if err == nil || !strings.Contains(err.Error(), "RATE_LIMIT_BURST") {
		t.Fatalf("expected a RATE_LIMIT_BURST error, got %v", err)
	}
}

func TestNewServerConfig_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := NewServerConfig(); err == nil {
		t.Fatal("expected an error when DATABASE_URL is not set")
	}
}

func TestValidateConfig(t *testing.T) {
	valid := func() ServerEnvironment {
		return ServerEnvironment{
			Environment:         "test",
			Port:                8080,
			MaxRequestBodyBytes: 1024,
			DBMaxConnections:    4,
			DBMinConnections:    0,
			DatabaseURL:         "postgres://user@localhost:5432/blog",
		}
	}

	tests := []struct {
		name    string
		modify  func(*ServerEnvironment)
		wantErr string
	}{
		{"valid postgres", func(c *ServerEnvironment) {}, ""},
		{"valid mongodb", func(c *ServerEnvironment) { c.DatabaseURL = "mongodb://localhost:27017/blog" }, ""},
		{"valid mongodb srv", func(c *ServerEnvironment) { c.DatabaseURL = "mongodb+srv://cluster.example.com/blog" }, ""},
		{"port too low", func(c *ServerEnvironment) { c.Port = 0 }, "PORT"},
		{"port too high", func(c *ServerEnvironment) { c.Port = 70000 }, "PORT"},
		{"bad environment", func(c *ServerEnvironment) { c.Environment = "qa" }, "ENVIRONMENT"},
		{"unsupported scheme", func(c *ServerEnvironment) { c.DatabaseURL = "mysql://localhost/blog" }, "scheme"},
		{"rate limit without burst", func(c *ServerEnvironment) { c.RateLimitRPS = 10; c.RateLimitBurst = 0 }, "RATE_LIMIT_BURST"},
		{"rate limit with burst", func(c *ServerEnvironment) { c.RateLimitRPS = 10; c.RateLimitBurst = 1 }, ""},
		{"rate limit disabled without burst", func(c *ServerEnvironment) { c.RateLimitRPS = 0; c.RateLimitBurst = 0 }, ""},
		{"zero body limit", func(c *ServerEnvironment) { c.MaxRequestBodyBytes = 0 }, "MAX_REQUEST_BODY_BYTES"},
		{"no connections", func(c *ServerEnvironment) { c.DBMaxConnections = 0 }, "DB_MAX_CONNECTIONS"},
		{"negative min", func(c *ServerEnvironment) { c.DBMinConnections = -1 }, "DB_MIN_CONNECTIONS"},
		{"min above max", func(c *ServerEnvironment) { c.DBMinConnections = 5 }, "cannot be greater"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(&cfg)
			err := validateConfig(&cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestNewClientConfig(t *testing.T) {
	t.Setenv("BLOG_API_URL", "http://localhost:9999")
	cfg, err := NewClientConfig()
	if err != nil {
		t.Fatalf("NewClientConfig() error = %v", err)
	}
	if cfg.APIURL != "http://localhost:9999" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}

	t.Setenv("BLOG_API_URL", "not a url")
	if _, err := NewClientConfig(); err == nil {
		t.Error("expected error for relative BLOG_API_URL")
	}
}
