package cmd

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joy095/propertyops/config"
	"github.com/joy095/propertyops/config/db"
	redisclient "github.com/joy095/propertyops/config/redis"
	"github.com/joy095/propertyops/logger"
	middleware "github.com/joy095/propertyops/middlewares"
	"github.com/joy095/propertyops/routes"
	"github.com/joy095/propertyops/services/calendar_service"
	"github.com/joy095/propertyops/services/inventory_service"
	"github.com/joy095/propertyops/services/lock_service"
	"github.com/joy095/propertyops/services/payment_service"
	"github.com/joy095/propertyops/services/reservation_service"
	"github.com/joy095/propertyops/services/task_service"
	"github.com/joy095/propertyops/store"
	"github.com/joy095/propertyops/utils"
	"github.com/redis/go-redis/v9"
)

// app holds the wired backends and services for one process.
type app struct {
	cfg   *config.Config
	store store.Store
	pool  *pgxpool.Pool
	rdb   *redis.Client

	inventory *inventory_service.InventoryService
	deps      *routes.Dependencies
}

// newApp opens the configured backends. An empty DATABASE_URL selects the
// in-memory store.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg}

	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.pool = pool
		a.store = store.NewPostgresStore(pool)
	} else {
		logger.WarnLogger.Warn("DATABASE_URL not set; using in-memory store, data is lost on exit")
		a.store = store.NewMemoryStore()
	}

	if cfg.RedisURL != "" {
		rdb, err := redisclient.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.rdb = rdb
	}

	locker, err := a.locker()
	if err != nil {
		a.Close()
		return nil, err
	}

	clock := utils.NewClock(cfg.Location)
	a.inventory = inventory_service.NewInventoryService(a.store, clock)
	a.deps = &routes.Dependencies{
		Inventory:      a.inventory,
		Reservations:   reservation_service.NewReservationService(a.store, a.inventory, locker, clock, cfg.LockTimeout),
		Payments:       payment_service.NewPaymentService(a.store, locker, clock, cfg.LockTimeout),
		Tasks:          task_service.NewTaskService(a.store, locker, clock, cfg.LockTimeout),
		Calendar:       calendar_service.NewCalendarService(a.store, clock),
		RateLimit:      cfg.RateLimit,
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins,
	}
	return a, nil
}

func (a *app) locker() (lock_service.Locker, error) {
	switch a.cfg.LockBackend {
	case config.LockBackendLocal:
		return lock_service.NewLocalLocker(), nil
	case config.LockBackendRedis:
		if a.rdb == nil {
			return nil, fmt.Errorf("LOCK_BACKEND=redis requires REDIS_URL")
		}
		return lock_service.NewRedisLocker(a.rdb), nil
	case config.LockBackendPostgres:
		if a.pool == nil {
			return nil, fmt.Errorf("LOCK_BACKEND=postgres requires DATABASE_URL")
		}
		return lock_service.NewPostgresLocker(a.pool), nil
	}
	return nil, fmt.Errorf("unknown LOCK_BACKEND %q", a.cfg.LockBackend)
}

// enableRateLimiting backs the limiter with Redis when available, memory otherwise.
func (a *app) enableRateLimiting() error {
	st, err := middleware.NewLimiterStore(a.rdb)
	if err != nil {
		return fmt.Errorf("rate limiter store: %w", err)
	}
	a.deps.LimiterStore = st
	return nil
}

func (a *app) migrate(ctx context.Context) error {
	if a.pool == nil {
		logger.InfoLogger.Info("In-memory store; no schema to apply")
		return nil
	}
	return db.Migrate(ctx, a.pool)
}

func (a *app) seed(ctx context.Context, path string) error {
	res, err := a.inventory.LoadInventory(ctx, path)
	if err != nil {
		return err
	}
	logger.InfoLogger.Infof("Inventory %s loaded: %d new room types, %d new rooms", path, res.RoomTypes, res.Rooms)
	return nil
}

func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
	redisclient.Close(a.rdb)
}
