// Package db provides a GORM-based local store for plansync.
// It uses the pure-Go SQLite driver so the CLI has no cgo dependency.
package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/medjourney/plansync/internal/models"
)

// DB wraps the GORM database connection with plansync-specific operations.
type DB struct {
	*gorm.DB
	path string
}

// Config holds database configuration options.
type Config struct {
	Path        string
	Debug       bool
	MaxIdleConn int
	MaxOpenConn int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	}
}

// New creates a new database connection and runs migrations.
func New(cfg Config) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// Configure GORM logger
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	// DELETE journal mode: WAL has visibility issues with the pure-Go driver
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", cfg.Path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	wrapped := &DB{DB: db, path: cfg.Path}

	if err := wrapped.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Seed default sync metadata
	if err := wrapped.seedSyncMeta(); err != nil {
		return nil, fmt.Errorf("seed sync meta: %w", err)
	}

	// Seed the built-in discipline taxonomy
	if err := wrapped.seedDisciplines(); err != nil {
		return nil, fmt.Errorf("seed disciplines: %w", err)
	}

	// Queue rows and their timestamps must stay paired; refuse to start
	// from a store that violates that
	if err := wrapped.VerifyQueueIntegrity(); err != nil {
		return nil, fmt.Errorf("verify queue integrity: %w", err)
	}

	return wrapped, nil
}

// migrate runs GORM auto-migrations for all models.
func (db *DB) migrate() error {
	return db.AutoMigrate(
		&models.PlanRecord{},
		&models.SyncQueueEntry{},
		&models.SyncMeta{},
		&models.Discipline{},
		&models.Subject{},
	)
}

// seedSyncMeta inserts default sync metadata if not present.
func (db *DB) seedSyncMeta() error {
	defaults := []models.SyncMeta{
		{Key: models.SyncMetaLastSync, Value: ""},
		{Key: models.SyncMetaSchemaVersion, Value: "1"},
		{Key: models.SyncMetaTotalPlans, Value: "0"},
	}

	for _, meta := range defaults {
		// Only insert if not exists
		result := db.Where("key = ?", meta.Key).FirstOrCreate(&meta)
		if result.Error != nil {
			return result.Error
		}
	}

	return nil
}

// seedDisciplines inserts the predefined discipline set if not present.
// User edits to these rows are preserved on subsequent startups.
func (db *DB) seedDisciplines() error {
	for id, name := range models.PredefinedDisciplines {
		disc := models.Discipline{ID: id, Name: name}
		result := db.Where("id = ?", id).FirstOrCreate(&disc)
		if result.Error != nil {
			return result.Error
		}
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction executes a function within a database transaction.
// The callback receives a *DB wrapper that uses the transaction.
func (d *DB) Transaction(fc func(tx *DB) error) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		wrappedTx := &DB{DB: tx, path: d.path}
		return fc(wrappedTx)
	})
}

// GetStats returns aggregate statistics about the local store.
func (db *DB) GetStats() (*models.PlanStats, error) {
	var stats models.PlanStats

	if err := db.Model(&models.PlanRecord{}).Count(&stats.TotalPlans).Error; err != nil {
		return nil, fmt.Errorf("count plans: %w", err)
	}

	if err := db.Model(&models.SyncQueueEntry{}).Count(&stats.QueuedEntries).Error; err != nil {
		return nil, fmt.Errorf("count queue entries: %w", err)
	}

	var pendingIDs []string
	if err := db.Model(&models.SyncQueueEntry{}).
		Where("kind IN ?", []models.QueueKind{models.QueueCreate, models.QueueUpdate}).
		Distinct("item_id").Pluck("item_id", &pendingIDs).Error; err != nil {
		return nil, fmt.Errorf("count pending plans: %w", err)
	}
	stats.PendingPlans = int64(len(pendingIDs))

	// Get database file size
	if info, err := os.Stat(db.path); err == nil {
		stats.CacheSizeBytes = info.Size()
	}

	stats.LastUpdated = time.Now()

	return &stats, nil
}
