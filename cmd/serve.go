package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joy095/propertyops/config"
	"github.com/joy095/propertyops/logger"
	"github.com/joy095/propertyops/routes"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), config.Load(), skipMigrate)
		},
	}
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply the schema on start")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, skipMigrate bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if !skipMigrate {
		if err := a.migrate(ctx); err != nil {
			return err
		}
	}
	if cfg.InventoryFile != "" {
		if err := a.seed(ctx, cfg.InventoryFile); err != nil {
			return err
		}
	}
	if err := a.enableRateLimiting(); err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	if os.Getenv("GIN_MODE") != "" {
		gin.SetMode(os.Getenv("GIN_MODE"))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(a.deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.InfoLogger.Infof("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		if err != nil {
			logger.ErrorLogger.Errorf("Server failed to listen: %v", err)
			return err
		}
		return nil
	case <-quit:
	}
	logger.InfoLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorLogger.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logger.InfoLogger.Info("Server exited gracefully.")
	return nil
}
