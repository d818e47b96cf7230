package lock_service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joy095/propertyops/logger"
)

const pgRetryDelay = 25 * time.Millisecond

// PostgresLocker uses session advisory locks, so it needs no extra
// infrastructure when the store is already PostgreSQL. Each held lock pins
// one pool connection.
type PostgresLocker struct {
	pool *pgxpool.Pool
}

func NewPostgresLocker(pool *pgxpool.Pool) *PostgresLocker {
	return &PostgresLocker{pool: pool}
}

func (l *PostgresLocker) Lock(ctx context.Context, key string) (func(), error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, lockTimeout(key, ctx.Err())
		}
		return nil, fmt.Errorf("advisory lock %s: %w", key, err)
	}

	for {
		var ok bool
		err := conn.QueryRow(ctx, `SELECT pg_try_advisory_lock(hashtextextended($1, 0))`, key).Scan(&ok)
		if err != nil {
			conn.Release()
			if ctx.Err() != nil {
				return nil, lockTimeout(key, ctx.Err())
			}
			return nil, fmt.Errorf("advisory lock %s: %w", key, err)
		}
		if ok {
			break
		}

		timer := time.NewTimer(pgRetryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			conn.Release()
			return nil, lockTimeout(key, ctx.Err())
		case <-timer.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if _, err := conn.Exec(releaseCtx, `SELECT pg_advisory_unlock(hashtextextended($1, 0))`, key); err != nil {
				logger.WarnLogger.Warnf("Failed to release advisory lock %s: %v", key, err)
				// The session still holds the lock; drop the connection instead of returning it.
				_ = conn.Conn().Close(releaseCtx)
			}
			conn.Release()
		})
	}, nil
}
