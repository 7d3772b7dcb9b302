package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/icco/animedash/handlers"
	"github.com/icco/animedash/lib/catalog"
	"github.com/icco/animedash/lib/config"
	"github.com/icco/animedash/lib/db"
	"github.com/icco/animedash/lib/lock"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const mirrorLockTimeout = 30 * time.Second

var (
	cfg    = config.Load()
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:           "animedash",
	Short:         "Anime catalog explorer and visual analytics dashboard",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := cfg.NewLogger()
		if err != nil {
			return err
		}
		slog.SetDefault(l)
		logger = l
		return nil
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfg.DataPath, "data", cfg.DataPath, "Path to the anime CSV (or set DATA_PATH)")
	rootCmd.PersistentFlags().StringVar(&cfg.DBDSN, "db", cfg.DBDSN, "SQLite DSN for the statistics mirror (or set DB_DSN)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error (or set LOG_LEVEL)")
	rootCmd.Flags().StringVar(&cfg.Port, "port", cfg.Port, "HTTP port (or set PORT)")
	serveCmd.Flags().StringVar(&cfg.Port, "port", cfg.Port, "HTTP port (or set PORT)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(inspectCmd)
}

// openCatalog loads the catalog and mirrors it into the statistics database.
// Either failure is fatal for the session.
func openCatalog(ctx context.Context) (*catalog.Source, *catalog.Dataset, *gorm.DB, error) {
	source := catalog.NewSource(cfg.DataPath, logger)
	ds, err := source.Dataset()
	if err != nil {
		return nil, nil, nil, err
	}

	logger.Info("Connecting to database", slog.String("dsn", cfg.DBDSN))
	gormDB, err := db.Open(ctx, cfg.DBDSN, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := mirror(ctx, gormDB, ds); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to mirror catalog: %w", err)
	}
	return source, ds, gormDB, nil
}

// mirror copies ds into the statistics database. An on-disk database may be
// shared by several processes, so the copy runs under a file lock.
func mirror(ctx context.Context, gormDB *gorm.DB, ds *catalog.Dataset) error {
	if cfg.DBDSN == db.MemoryDSN {
		return db.Mirror(ctx, gormDB, ds, logger)
	}

	fl := lock.NewFileLock("", logger)
	key := lock.KeyFor(cfg.DBDSN)
	ok, err := fl.TryLock(ctx, key, mirrorLockTimeout)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("timed out waiting for lock on %s", cfg.DBDSN)
	}
	defer func() {
		if err := fl.Unlock(key); err != nil {
			logger.Error("Failed to release lock", slog.Any("error", err))
		}
	}()

	return db.Mirror(ctx, gormDB, ds, logger)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, _, gormDB, err := openCatalog(ctx)
	if err != nil {
		return err
	}

	router, err := handlers.NewRouter(source, gormDB)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("Starting server", slog.String("port", cfg.Port))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("Command failed", slog.Any("error", err))
		os.Exit(1)
	}
}
