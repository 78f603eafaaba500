// Package submit sequences one report submission: validation, duplicate
// check, optional compression, then either the remote endpoint or the
// offline queue.
package submit

import (
	"context"
	"sync"

	"github.com/vwin2537-arch/FireCheckPointReport/client/imaging"
	"github.com/vwin2537-arch/FireCheckPointReport/client/remote"
	"github.com/vwin2537-arch/FireCheckPointReport/client/report"
	"github.com/vwin2537-arch/FireCheckPointReport/models"
)

// Outcome is the terminal state of one submission attempt.
type Outcome string

const (
	OutcomeSucceeded     Outcome = "SUCCEEDED"
	OutcomeQueuedOffline Outcome = "QUEUED_OFFLINE"
	OutcomeFailed        Outcome = "FAILED"
	OutcomeAbandoned     Outcome = "ABANDONED" // user declined the duplicate warning
	OutcomeRejected      Outcome = "REJECTED"  // validation failed, nothing touched
	OutcomeBusy          Outcome = "BUSY"      // a submit is already in flight
)

// Result carries the outcome and the user-facing message.
type Result struct {
	Outcome Outcome
	Message string
}

const (
	validationMessage   = "กรุณากรอกข้อมูลให้ครบถ้วน: เลือกจุด, ช่วงเวลา และแนบรูปอย่างน้อย 1 รูป"
	savedLocallyMessage = "บันทึกรายงานไว้ในเครื่องแล้ว จะส่งเข้าส่วนกลางอัตโนมัติเมื่อกลับมาออนไลน์"
	compressFailMessage = "เกิดข้อผิดพลาดในการเตรียมรูปภาพ กรุณาลองใหม่อีกครั้ง"
	queueFailMessage    = "ไม่สามารถบันทึกรายงานไว้ในเครื่องได้ กรุณาลองใหม่อีกครั้ง"
)

// Enqueuer is the offline queue's write side. *queue.Store satisfies it.
type Enqueuer interface {
	Enqueue(report *models.PendingReport) error
}

// Compressor shrinks the attached images before upload; nil skips the
// step.
type Compressor func(images []string, onProgress func(int)) ([]string, error)

// DefaultCompressor applies the standard upload bounds.
func DefaultCompressor(images []string, onProgress func(int)) ([]string, error) {
	return imaging.CompressAll(images, imaging.DefaultOptions, onProgress)
}

// Orchestrator runs the submission state machine. One instance per form;
// attempts are serialized by the draft's IsSubmitting flag.
type Orchestrator struct {
	agg       *report.Aggregator
	submitter remote.Submitter
	queue     Enqueuer
	online    func() bool
	confirm   func(draft *models.ReportDraft) bool
	compress  Compressor

	mu sync.Mutex
}

// NewOrchestrator wires the orchestrator. confirm is asked exactly once
// when the duplicate guard trips; nil declines, abandoning the attempt.
func NewOrchestrator(
	agg *report.Aggregator,
	submitter remote.Submitter,
	enqueuer Enqueuer,
	online func() bool,
	confirm func(draft *models.ReportDraft) bool,
	compress Compressor,
) *Orchestrator {
	return &Orchestrator{
		agg:       agg,
		submitter: submitter,
		queue:     enqueuer,
		online:    online,
		confirm:   confirm,
		compress:  compress,
	}
}

// AttemptSubmit runs one submission attempt over the draft.
//
// Validation happens first with no side effects. A duplicate warning must
// be confirmed before anything is touched; declining abandons the attempt
// with no state change. A known-offline device skips the network
// entirely and queues the report. A foreground failure, network error
// included, leaves the draft populated and editable and is never
// auto-queued; only known-offline submits go to the queue.
func (o *Orchestrator) AttemptSubmit(ctx context.Context, draft *models.ReportDraft) Result {
	o.mu.Lock()
	if draft.IsSubmitting {
		o.mu.Unlock()
		return Result{Outcome: OutcomeBusy}
	}

	if draft.PointID == 0 || draft.Shift == "" || len(draft.Images) == 0 {
		o.mu.Unlock()
		return Result{Outcome: OutcomeRejected, Message: validationMessage}
	}

	point, ok := models.FindWatchPoint(o.agg.Points(), draft.PointID)
	if !ok {
		o.mu.Unlock()
		return Result{Outcome: OutcomeRejected, Message: validationMessage}
	}

	if o.agg.IsDuplicate(o.agg.Snapshot(), draft.PointID, draft.Shift) {
		o.mu.Unlock()
		if o.confirm == nil || !o.confirm(draft) {
			return Result{Outcome: OutcomeAbandoned}
		}
		o.mu.Lock()
		if draft.IsSubmitting {
			o.mu.Unlock()
			return Result{Outcome: OutcomeBusy}
		}
	}

	draft.IsSubmitting = true
	draft.UploadProgress = 0
	o.mu.Unlock()

	pointName := models.NormalizePointName(point.Name)

	// Known-offline: no network attempt at all.
	if o.online != nil && !o.online() {
		err := o.queue.Enqueue(&models.PendingReport{
			PointName: pointName,
			Shift:     draft.Shift,
			Date:      draft.Date,
			Images:    draft.Images,
			Notes:     draft.Notes,
		})
		if err != nil {
			draft.IsSubmitting = false
			return Result{Outcome: OutcomeFailed, Message: queueFailMessage}
		}
		draft.Reset()
		return Result{Outcome: OutcomeQueuedOffline, Message: savedLocallyMessage}
	}

	images := draft.Images
	if o.compress != nil {
		compressed, err := o.compress(images, func(p int) {
			// Compression spans the first stretch of the progress bar.
			if scaled := p * 80 / 100; scaled > draft.UploadProgress {
				draft.UploadProgress = scaled
			}
		})
		if err != nil {
			draft.IsSubmitting = false
			return Result{Outcome: OutcomeFailed, Message: compressFailMessage}
		}
		images = compressed
	}

	result, err := o.submitter.SubmitReport(ctx, models.SubmitRequest{
		Date:      draft.Date,
		PointName: pointName,
		Shift:     draft.Shift,
		Images:    images,
		Notes:     draft.Notes,
	})
	if err != nil {
		// Foreground network exception: report failure, keep the draft.
		draft.IsSubmitting = false
		return Result{Outcome: OutcomeFailed, Message: remote.ConnectionErrorMessage}
	}
	if !result.Success {
		draft.IsSubmitting = false
		return Result{Outcome: OutcomeFailed, Message: result.Message}
	}

	draft.UploadProgress = 100
	date := draft.Date
	draft.Reset()
	o.agg.Refresh(ctx, date)

	return Result{Outcome: OutcomeSucceeded, Message: result.Message}
}
