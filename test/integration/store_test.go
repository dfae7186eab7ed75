//go:build integration

package integration

import (
	"context"
	"testing"

	"github.com/information-sharing-networks/blog-demo/internal/blog"
	"github.com/information-sharing-networks/blog-demo/internal/database"
	"github.com/information-sharing-networks/blog-demo/internal/database/databasetest"
)

// TestStoreConformance runs the store contract against the real backends
func TestStoreConformance(t *testing.T) {
	forEachBackend(t, func(t *testing.T, backend database.Backend) {
		cfg := loadTestConfig(t, backend, findFreePort(t))
		store := openTestStore(t, cfg)

		t.Cleanup(func() {
			if err := store.Drop(context.Background()); err != nil {
				t.Errorf("Failed to drop test database: %v", err)
			}
		})

		databasetest.RunStoreConformance(t, func(t *testing.T) blog.Store {
			if err := store.Drop(context.Background()); err != nil {
				t.Fatalf("Drop() error = %v", err)
			}
			return store
		})
	})
}
