// services/catalog_mirror.go
package services

import (
	"context"
	"fmt"

	"game-catalog/models"
	"game-catalog/workers"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CatalogMirror copies snapshots into the game_records table for
// reporting. It never feeds the store.
type CatalogMirror struct {
	DB *gorm.DB
}

// OpenCatalogMirror connects to Postgres and migrates the mirror table.
func OpenCatalogMirror(dsn string) (*CatalogMirror, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewCatalogMirror(db)
}

func NewCatalogMirror(db *gorm.DB) (*CatalogMirror, error) {
	if err := db.AutoMigrate(&models.GameRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &CatalogMirror{DB: db}, nil
}

func (m *CatalogMirror) Name() string {
	return "postgres"
}

// Write replaces the mirrored catalog with snap in one transaction.
func (m *CatalogMirror) Write(ctx context.Context, snap workers.Snapshot) error {
	records := GameRecords(snap)

	return m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.GameRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear game_records: %w", err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(records, 100).Error; err != nil {
			return fmt.Errorf("failed to insert game_records: %w", err)
		}
		return nil
	})
}

// GameRecords maps a snapshot to mirror rows, keeping store order.
func GameRecords(snap workers.Snapshot) []models.GameRecord {
	records := make([]models.GameRecord, len(snap.Games))
	for i, g := range snap.Games {
		records[i] = models.NewGameRecord(g, i, snap.TakenAt)
	}
	return records
}

func (m *CatalogMirror) Close() error {
	sqlDB, err := m.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
