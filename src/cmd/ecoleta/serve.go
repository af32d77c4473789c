package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apppoint "github.com/jackyeh168/ecoleta/src/internal/application/point"
	"github.com/jackyeh168/ecoleta/src/internal/infrastructure/events"
	"github.com/jackyeh168/ecoleta/src/internal/infrastructure/metrics"
	"github.com/jackyeh168/ecoleta/src/internal/infrastructure/persistence"
	"github.com/jackyeh168/ecoleta/src/internal/interfaces/api"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  `Open the database, apply migrations and seed items, then serve the JSON API until SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTPAddr = addr
			}

			db, err := persistence.Open(persistence.DatabaseConfig{
				Driver:   cfg.DBDriver,
				DSN:      cfg.DBDSN,
				LogLevel: gormLogLevel(cfg.LogLevel),
			})
			if err != nil {
				return err
			}
			defer closeDB(db, logger)

			if err := persistence.Migrate(db); err != nil {
				return err
			}

			m := metrics.New(true)
			pointRepo := persistence.NewPointRepository(db)
			itemRepo := persistence.NewItemRepository(db)
			txManager := persistence.NewGORMTransactionManager(db)
			publisher := events.NewLogPublisher(logger, m)

			handler := api.NewHandler(api.Dependencies{
				ListPoints:  apppoint.NewListPointsUseCase(pointRepo),
				GetPoint:    apppoint.NewGetPointUseCase(pointRepo, itemRepo),
				CreatePoint: apppoint.NewCreatePointUseCase(pointRepo, itemRepo, txManager, publisher, logger),
				ListItems:   apppoint.NewListItemsUseCase(itemRepo, cfg.PublicBaseURL),
				HealthCheck: func(ctx context.Context) error {
					return persistence.Ping(ctx, db)
				},
				UploadsDir: cfg.UploadsDir,
				Metrics:    m,
				Logger:     logger,
			})

			srv := &http.Server{
				Addr:              cfg.HTTPAddr,
				Handler:           handler,
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("http server listening",
					"addr", cfg.HTTPAddr,
					"db_driver", cfg.DBDriver,
				)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("shutting down http server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to shut down http server: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides HTTP_ADDR)")
	return cmd
}
