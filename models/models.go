// models.go
// Defines the core data structures shared by the central API, the field
// client core and the notifier.

package models

import (
	"fmt"
	"regexp"
	"time"
)

// Shift is one of the three daily inspection windows. The Thai labels are
// the wire vocabulary: the photo archive, the status endpoint and the LINE
// notifier all key on these exact strings.
type Shift string

const (
	ShiftMorning   Shift = "ภาคเช้า"
	ShiftAfternoon Shift = "ภาคกลางวัน"
	ShiftEvening   Shift = "ภาคเย็น"
)

// AllShifts lists the shifts in display order.
var AllShifts = []Shift{ShiftMorning, ShiftAfternoon, ShiftEvening}

// Valid reports whether s is one of the three known shifts.
func (s Shift) Valid() bool {
	return s == ShiftMorning || s == ShiftAfternoon || s == ShiftEvening
}

// WatchPoint is a fixed physical inspection location. The registry is
// static and defined at process start.
type WatchPoint struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DefaultWatchPoints builds the registry of n watch points with the
// canonical Thai display names.
func DefaultWatchPoints(n int) []WatchPoint {
	points := make([]WatchPoint, 0, n)
	for i := 1; i <= n; i++ {
		points = append(points, WatchPoint{
			ID:   i,
			Name: fmt.Sprintf("จุดเฝ้าระวังที่ %d", i),
		})
	}
	return points
}

// FindWatchPoint returns the point with the given id, or false.
func FindWatchPoint(points []WatchPoint, id int) (WatchPoint, bool) {
	for _, p := range points {
		if p.ID == id {
			return p, true
		}
	}
	return WatchPoint{}, false
}

var pointNumberPattern = regexp.MustCompile(`\d+`)

// NormalizePointName zero-pads the first embedded integer in a point name
// to at least 2 digits ("จุดเฝ้าระวังที่ 9" -> "จุดเฝ้าระวังที่ 09").
// Every join between the local registry and remote submission records must
// go through this form; the remote side pads its folder names and a plain
// string comparison would silently miss matches. Idempotent.
func NormalizePointName(name string) string {
	first := true
	return pointNumberPattern.ReplaceAllStringFunc(name, func(match string) string {
		if !first {
			return match
		}
		first = false
		if len(match) >= 2 {
			return match
		}
		return "0" + match
	})
}

// SubmissionRecord says "this point/shift had at least one photo submitted
// on the queried date". Multiplicity beyond existence is not tracked.
type SubmissionRecord struct {
	PointName string `json:"pointName"`
	Shift     Shift  `json:"shift"`
}

// DashboardSnapshot is the aggregator's immutable view of all submission
// records for one queried date. Replaced wholesale on refresh, never
// merged.
type DashboardSnapshot struct {
	Date    string             `json:"date"`
	Records []SubmissionRecord `json:"records"`
}

// MaxDraftImages caps the number of photos attached to one report.
const MaxDraftImages = 5

// ReportDraft holds the in-progress form state on the field client.
// Mutated only by user input and the submission orchestrator.
type ReportDraft struct {
	Date           string
	PointID        int // 0 = not selected
	Shift          Shift
	Images         []string // data-URI encoded, at most MaxDraftImages
	Notes          string
	IsSubmitting   bool
	UploadProgress int // 0..100, advisory only
}

// AddImage appends a data-URI image, silently dropping anything past the
// cap.
func (d *ReportDraft) AddImage(dataURI string) {
	if len(d.Images) >= MaxDraftImages {
		return
	}
	d.Images = append(d.Images, dataURI)
}

// Reset clears the draft after a successful submit. The selected date is
// preserved so the user can keep reporting the same day.
func (d *ReportDraft) Reset() {
	*d = ReportDraft{Date: d.Date}
}

// PendingReport is an offline queue entry: a submission captured locally
// while the device was offline, awaiting a later successful remote
// delivery. Owned exclusively by the queue store; drained in FIFO order.
type PendingReport struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	PointName  string    `json:"point_name"` // already normalized
	Shift      Shift     `json:"shift"`
	Date       string    `json:"date"`
	Images     []string  `gorm:"serializer:json" json:"images"`
	Notes      string    `json:"notes"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// Report is the server-side record of one accepted submission. Maps
// directly to a Firestore document.
type Report struct {
	RecordID   string    `firestore:"record_id" json:"record_id"`
	PointName  string    `firestore:"point_name" json:"point_name"` // normalized
	Shift      Shift     `firestore:"shift" json:"shift"`
	Date       string    `firestore:"date" json:"date"` // YYYY-MM-DD
	Notes      string    `firestore:"notes" json:"notes"`
	ImageCount int       `firestore:"image_count" json:"image_count"`
	ClientTS   time.Time `firestore:"client_ts" json:"client_ts"`
	CreatedAt  time.Time `firestore:"created_at" json:"created_at"`
}

// Record projects the stored report onto the status-endpoint shape.
func (r *Report) Record() SubmissionRecord {
	return SubmissionRecord{PointName: r.PointName, Shift: r.Shift}
}

// SubmitRequest is the payload the field client posts to the central API.
type SubmitRequest struct {
	ParentFolderID string   `json:"parentFolderId"`
	Date           string   `json:"date"`
	PointName      string   `json:"pointName"` // normalized
	Shift          Shift    `json:"shift"`
	Images         []string `json:"images"` // data-URI encoded
	Notes          string   `json:"notes"`
}

// SubmitResult is the remote submit endpoint's response.
type SubmitResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
