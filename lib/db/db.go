// Package db mirrors the catalog into SQLite for SQL-backed statistics.
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/icco/animedash/lib/catalog"
	"github.com/icco/animedash/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MemoryDSN is a private in-memory SQLite database. Open pins the pool to a
// single connection so every query sees the same database.
const MemoryDSN = ":memory:"

// mirrorBatchSize bounds the number of rows per INSERT statement.
const mirrorBatchSize = 500

// Open connects to the SQLite database at dsn and runs migrations.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*gorm.DB, error) {
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: NewGormLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, gormDB, logger); err != nil {
		return nil, err
	}
	return gormDB, nil
}

// Mirror replaces the contents of the anime table with ds. The catalog file
// stays the source of truth; the table only backs SQL statistics.
func Mirror(ctx context.Context, db *gorm.DB, ds *catalog.Dataset, logger *slog.Logger) error {
	records := ds.Records()

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Anime{}).Error; err != nil {
			return fmt.Errorf("failed to clear anime table: %w", err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(records, mirrorBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert anime: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "Mirrored catalog into database", slog.Int("records", len(records)))
	return nil
}
