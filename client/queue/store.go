// Package queue persists reports captured while offline and drains them
// against the central API once connectivity returns.
package queue

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vwin2537-arch/FireCheckPointReport/models"
)

// Store is the SQLite-backed pending-report queue. Append-only except for
// head removal after a confirmed successful remote delivery; it survives
// process restarts.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the queue database at path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open pending queue: %w", err)
	}

	if err := db.AutoMigrate(&models.PendingReport{}); err != nil {
		return nil, fmt.Errorf("failed to migrate pending queue: %w", err)
	}

	return &Store{db: db}, nil
}

// Enqueue appends one pending report to the tail of the queue.
func (s *Store) Enqueue(report *models.PendingReport) error {
	if report.EnqueuedAt.IsZero() {
		report.EnqueuedAt = time.Now()
	}
	if err := s.db.Create(report).Error; err != nil {
		return fmt.Errorf("failed to enqueue pending report: %w", err)
	}
	return nil
}

// All returns the queue in FIFO order.
func (s *Store) All() ([]models.PendingReport, error) {
	var reports []models.PendingReport
	if err := s.db.Order("id asc").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to read pending queue: %w", err)
	}
	return reports, nil
}

// Count returns the number of queued reports.
func (s *Store) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&models.PendingReport{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count pending queue: %w", err)
	}
	return count, nil
}

// Remove deletes one delivered report from the queue.
func (s *Store) Remove(id uint) error {
	if err := s.db.Delete(&models.PendingReport{}, id).Error; err != nil {
		return fmt.Errorf("failed to remove pending report %d: %w", id, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
