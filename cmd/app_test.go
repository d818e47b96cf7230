package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joy095/propertyops/config"
	"github.com/joy095/propertyops/models/room_models"
	"github.com/joy095/propertyops/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Port:        "0",
		LockBackend: config.LockBackendLocal,
		LockTimeout: time.Second,
		Location:    time.UTC,
		RateLimit:   "1000-1m",
	}
}

func TestNewAppInMemory(t *testing.T) {
	a, err := newApp(context.Background(), memoryConfig())
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.migrate(context.Background()))
	require.NoError(t, a.enableRateLimiting())
	assert.NotNil(t, a.deps.LimiterStore)

	w := httptest.NewRecorder()
	routes.NewRouter(a.deps).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewAppLockBackendNeedsConnection(t *testing.T) {
	for _, backend := range []string{config.LockBackendRedis, config.LockBackendPostgres, "zookeeper"} {
		t.Run(backend, func(t *testing.T) {
			cfg := memoryConfig()
			cfg.LockBackend = backend
			_, err := newApp(context.Background(), cfg)
			assert.Error(t, err)
		})
	}
}

func TestSeedFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
roomTypes:
  - name: Standard
    basePrice: "99.00"
    capacity: 2
    rooms: ["101", "102"]
`), 0o600))

	a, err := newApp(context.Background(), memoryConfig())
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.seed(context.Background(), path))
	require.NoError(t, a.seed(context.Background(), path))

	rooms, err := a.inventory.ListRooms(context.Background(), room_models.RoomFilter{})
	require.NoError(t, err)
	assert.Len(t, rooms, 2)
}
