package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/vwin2537-arch/FireCheckPointReport/auth"
	"github.com/vwin2537-arch/FireCheckPointReport/config"
	"github.com/vwin2537-arch/FireCheckPointReport/db"
	"github.com/vwin2537-arch/FireCheckPointReport/models"
)

// Seeds demo submission records for today and prints the bcrypt hash for
// the dashboard passcode, so a fresh deployment has something to show.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	cfg.Validate()

	if cfg.Firebase.ProjectID == "" {
		log.Fatal("FIREBASE_PROJECT_ID must be set")
	}

	ctx := context.Background()
	firestoreDB, err := db.NewFirestoreDB(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firestore: %v", err)
	}
	defer firestoreDB.Close()

	log.Println("🌱 Starting database seeding...")

	if err := seedReports(firestoreDB, cfg.Watch.PointCount); err != nil {
		log.Fatalf("Failed to seed reports: %v", err)
	}

	hash, err := auth.HashPasscode("2518")
	if err != nil {
		log.Fatalf("Failed to hash demo passcode: %v", err)
	}
	fmt.Printf("ADMIN_PASSCODE_HASH=%s\n", hash)

	log.Println("✅ Seeding complete")
}

func seedReports(store db.ReportStore, pointCount int) error {
	points := models.DefaultWatchPoints(pointCount)
	date := time.Now().Format("2006-01-02")

	// First few points report the morning shift; point 1 reports all
	// three so the dashboard shows one fully-covered row.
	for i, p := range points {
		if i >= 5 {
			break
		}

		shifts := []models.Shift{models.ShiftMorning}
		if i == 0 {
			shifts = models.AllShifts
		}

		for _, shift := range shifts {
			report := &models.Report{
				RecordID:   uuid.NewString(),
				PointName:  models.NormalizePointName(p.Name),
				Shift:      shift,
				Date:       date,
				Notes:      "รายงานทดสอบระบบ",
				ImageCount: 1,
				ClientTS:   time.Now(),
			}
			if err := store.CreateReport(report); err != nil {
				return err
			}
			log.Printf("Seeded %s / %s", report.PointName, shift)
		}
	}

	return nil
}
