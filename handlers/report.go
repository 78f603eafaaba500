package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vwin2537-arch/FireCheckPointReport/cache"
	"github.com/vwin2537-arch/FireCheckPointReport/db"
	"github.com/vwin2537-arch/FireCheckPointReport/models"
	"github.com/vwin2537-arch/FireCheckPointReport/storage"
)

type ReportHandler struct {
	store   db.ReportStore
	archive *storage.Archive
	cache   *cache.StatusCache // nil when Redis is not configured
}

func NewReportHandler(store db.ReportStore, archive *storage.Archive, statusCache *cache.StatusCache) *ReportHandler {
	return &ReportHandler{
		store:   store,
		archive: archive,
		cache:   statusCache,
	}
}

// Submit accepts one field report: archives the photos into the
// point/date/shift folder and records the submission. Duplicate
// submissions for an already-reported point/shift are accepted and append
// another photo set; dedup is advisory and lives on the client.
func (h *ReportHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.PointName == "" || req.Date == "" || len(req.Images) == 0 {
		writeError(w, "pointName, date and at least one image are required", http.StatusBadRequest)
		return
	}
	if !req.Shift.Valid() {
		writeError(w, "Unknown shift label", http.StatusBadRequest)
		return
	}

	// Clients normalize before submitting; normalize again so a raw name
	// can never split the archive into two folders.
	pointName := models.NormalizePointName(req.PointName)

	saved, err := h.archive.SaveImages(pointName, req.Date, req.Shift, req.Images)
	if err != nil {
		log.Printf("❌ Failed to archive images for %s/%s/%s: %v", pointName, req.Date, req.Shift, err)
		writeResult(w, models.SubmitResult{
			Success: false,
			Message: "ไม่สามารถบันทึกรูปภาพได้ กรุณาลองใหม่อีกครั้ง",
		})
		return
	}

	report := &models.Report{
		RecordID:   uuid.NewString(),
		PointName:  pointName,
		Shift:      req.Shift,
		Date:       req.Date,
		Notes:      req.Notes,
		ImageCount: saved,
		ClientTS:   time.Now(),
	}

	if err := h.store.CreateReport(report); err != nil {
		log.Printf("❌ Failed to create report %s: %v", report.RecordID, err)
		writeResult(w, models.SubmitResult{
			Success: false,
			Message: "ไม่สามารถบันทึกรายงานได้ กรุณาลองใหม่อีกครั้ง",
		})
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(r.Context(), req.Date)
	}

	log.Printf("📤 Report accepted: %s / %s / %s (%d images)", pointName, req.Date, req.Shift, saved)

	writeResult(w, models.SubmitResult{
		Success: true,
		Message: "บันทึกรูปภาพลงในโฟลเดอร์ " + pointName + " > " + string(req.Shift) + " เรียบร้อยแล้ว",
	})
}

// Status answers the dashboard coverage query: a flat JSON array of
// {pointName, shift} records for the requested date. The "t" query
// parameter is a client cache-buster and is ignored here.
func (h *ReportHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	if h.cache != nil {
		if records, ok := h.cache.Get(r.Context(), date); ok {
			writeRecords(w, records)
			return
		}
	}

	records, err := h.store.GetRecordsByDate(date)
	if err != nil {
		log.Printf("❌ Failed to get records for %s: %v", date, err)
		writeError(w, "Failed to retrieve status", http.StatusInternalServerError)
		return
	}

	if h.cache != nil {
		h.cache.Set(r.Context(), date, records)
	}

	writeRecords(w, records)
}

func writeRecords(w http.ResponseWriter, records []models.SubmissionRecord) {
	if records == nil {
		records = []models.SubmissionRecord{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

func writeResult(w http.ResponseWriter, result models.SubmitResult) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
