package db

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joy095/propertyops/logger"
)

//go:embed schema.sql
var schema string

// Migrate applies the embedded schema. Every statement is idempotent so it is
// safe to run on each deploy.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	logger.InfoLogger.Info("Applying database schema")
	if _, err := pool.Exec(ctx, schema); err != nil {
		logger.ErrorLogger.Errorf("Failed to apply schema: %v", err)
		return fmt.Errorf("apply schema: %w", err)
	}
	logger.InfoLogger.Info("Database schema is up to date")
	return nil
}
