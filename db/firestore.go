package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/vwin2537-arch/FireCheckPointReport/models"
)

// ReportStore is the persistence boundary for submission records. The
// Firestore implementation backs production; the in-memory one backs
// development and tests.
type ReportStore interface {
	CreateReport(report *models.Report) error
	GetReportsByDate(date string) ([]models.Report, error)
	GetRecordsByDate(date string) ([]models.SubmissionRecord, error)
	Close() error
}

// FirestoreDB wraps the Firestore client
type FirestoreDB struct {
	client *firestore.Client
	ctx    context.Context
}

// NewFirestoreDB initializes a new Firestore client
func NewFirestoreDB(ctx context.Context, projectID, credentialsPath string) (*FirestoreDB, error) {
	opt := option.WithCredentialsFile(credentialsPath)

	config := &firebase.Config{ProjectID: projectID}
	app, err := firebase.NewApp(ctx, config, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firestore client: %w", err)
	}

	log.Printf("✅ Connected to Firestore project: %s", projectID)

	return &FirestoreDB{
		client: client,
		ctx:    ctx,
	}, nil
}

// Close closes the Firestore client
func (db *FirestoreDB) Close() error {
	return db.client.Close()
}

// CreateReport stores one accepted submission record
func (db *FirestoreDB) CreateReport(report *models.Report) error {
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}
	_, err := db.client.Collection("reports").Doc(report.RecordID).Set(db.ctx, report)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// GetReportsByDate retrieves all reports submitted for a given date
func (db *FirestoreDB) GetReportsByDate(date string) ([]models.Report, error) {
	iter := db.client.Collection("reports").
		Where("date", "==", date).
		Documents(db.ctx)
	defer iter.Stop()

	var reports []models.Report
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate reports: %w", err)
		}

		var report models.Report
		if err := doc.DataTo(&report); err != nil {
			log.Printf("Warning: failed to parse report %s: %v", doc.Ref.ID, err)
			continue
		}
		reports = append(reports, report)
	}

	return reports, nil
}

// GetRecordsByDate projects the stored reports onto the status-endpoint
// shape consumed by the dashboard and the notifier.
func (db *FirestoreDB) GetRecordsByDate(date string) ([]models.SubmissionRecord, error) {
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
