// FireCheckPoint LINE notifier.
// Run from cron at 10:00 / 14:00 / 18:00 with the shift name, and at
// 19:00 with "daily", mirroring the field reporting routine.

package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/vwin2537-arch/FireCheckPointReport/config"
	"github.com/vwin2537-arch/FireCheckPointReport/db"
	"github.com/vwin2537-arch/FireCheckPointReport/models"
	"github.com/vwin2537-arch/FireCheckPointReport/notify"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	cfg.Validate()

	if cfg.Line.ChannelToken == "" || cfg.Line.GroupID == "" {
		log.Fatal("LINE_CHANNEL_ACCESS_TOKEN and LINE_GROUP_ID must be set")
	}
	if cfg.Firebase.ProjectID == "" {
		log.Fatal("FIREBASE_PROJECT_ID must be set")
	}

	mode := "daily"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	ctx := context.Background()
	store, err := db.NewFirestoreDB(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firestore: %v", err)
	}
	defer store.Close()

	now := time.Now()
	date := now.Format("2006-01-02")
	thaiDate := notify.FormatThaiDate(now)

	records, err := store.GetRecordsByDate(date)
	if err != nil {
		log.Fatalf("Failed to load records for %s: %v", date, err)
	}

	points := models.DefaultWatchPoints(cfg.Watch.PointCount)
	line := notify.NewLineClient(cfg.Line.ChannelToken, cfg.Line.GroupID)

	var message map[string]interface{}
	switch mode {
	case "morning":
		message = shiftMessage(points, records, date, thaiDate, models.ShiftMorning)
	case "afternoon":
		message = shiftMessage(points, records, date, thaiDate, models.ShiftAfternoon)
	case "evening":
		message = shiftMessage(points, records, date, thaiDate, models.ShiftEvening)
	case "daily":
		day := notify.SummarizeDay(points, records, date)
		message = notify.BuildDailySummaryMessage(day, thaiDate)
	default:
		log.Fatalf("Unknown mode %q (want morning|afternoon|evening|daily)", mode)
	}

	if err := line.Push(ctx, message); err != nil {
		log.Fatalf("Failed to push notification: %v", err)
	}

	log.Printf("✅ Notification sent (%s, %s)", mode, date)
}

// shiftMessage picks the reminder or the all-complete congratulation.
func shiftMessage(points []models.WatchPoint, records []models.SubmissionRecord, date, thaiDate string, shift models.Shift) map[string]interface{} {
	summary := notify.SummarizeShift(points, records, date, shift)
	if summary.Missing == 0 {
		return notify.BuildAllCompleteMessage(string(shift), thaiDate)
	}
	return notify.BuildShiftMessage(summary, thaiDate)
}
