package db

import (
	"sync"
	"time"

	"github.com/vwin2537-arch/FireCheckPointReport/models"
)

// MemoryDB is an in-memory ReportStore for development (no Firestore
// project configured) and tests.
type MemoryDB struct {
	mu      sync.RWMutex
	reports map[string]models.Report // keyed by record id
}

// NewMemoryDB creates an empty in-memory store.
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		reports: make(map[string]models.Report),
	}
}

// Close is a no-op.
func (db *MemoryDB) Close() error {
	return nil
}

// CreateReport stores one accepted submission record.
func (db *MemoryDB) CreateReport(report *models.Report) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}
	db.reports[report.RecordID] = *report
	return nil
}

// GetReportsByDate retrieves all reports submitted for a given date.
func (db *MemoryDB) GetReportsByDate(date string) ([]models.Report, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var reports []models.Report
	for _, r := range db.reports {
		if r.Date == date {
			reports = append(reports, r)
		}
	}
	return reports, nil
}

// GetRecordsByDate projects the stored reports onto the status-endpoint
// shape.
func (db *MemoryDB) GetRecordsByDate(date string) ([]models.SubmissionRecord, error) {
	reports, err := db.GetReportsByDate(date)
	if err != nil {
		return nil, err
	}

	records := make([]models.SubmissionRecord, 0, len(reports))
	for i := range reports {
		records = append(records, reports[i].Record())
	}
	return records, nil
}
