package handlers

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/vwin2537-arch/FireCheckPointReport/db"
	"github.com/vwin2537-arch/FireCheckPointReport/models"
	"github.com/vwin2537-arch/FireCheckPointReport/notify"
)

type AdminHandler struct {
	store  db.ReportStore
	points []models.WatchPoint
}

func NewAdminHandler(store db.ReportStore, points []models.WatchPoint) *AdminHandler {
	return &AdminHandler{
		store:  store,
		points: points,
	}
}

// GetSummary returns the per-shift and overall coverage for a date, the
// same numbers the LINE notifier posts.
func (h *AdminHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	records, err := h.store.GetRecordsByDate(date)
	if err != nil {
		log.Printf("❌ Failed to get records for %s: %v", date, err)
		writeError(w, "Failed to retrieve summary", http.StatusInternalServerError)
		return
	}

	summary := notify.SummarizeDay(h.points, records, date)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// ExportReports exports all reports for a date to CSV.
func (h *AdminHandler) ExportReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	reports, err := h.store.GetReportsByDate(date)
	if err != nil {
		log.Printf("❌ Failed to get reports for %s: %v", date, err)
		writeError(w, "Failed to retrieve reports", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("firecheckpoint_reports_%s.csv", date)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{
		"Record ID",
		"Watch Point",
		"Shift",
		"Date",
		"Image Count",
		"Notes",
		"Created At",
	}
	if err := writer.Write(header); err != nil {
		log.Printf("❌ Failed to write CSV header: %v", err)
		return
	}

	for _, report := range reports {
		row := []string{
			report.RecordID,
			report.PointName,
			string(report.Shift),
			report.Date,
			fmt.Sprintf("%d", report.ImageCount),
			report.Notes,
			report.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			log.Printf("❌ Failed to write CSV row: %v", err)
			return
		}
	}

	log.Printf("📊 CSV export for %s: %d reports", date, len(reports))
}
