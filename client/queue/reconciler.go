package queue

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/vwin2537-arch/FireCheckPointReport/client/remote"
	"github.com/vwin2537-arch/FireCheckPointReport/models"
)

// PendingStore is what the reconciler needs from the queue. *Store
// satisfies it; tests use an in-memory implementation.
type PendingStore interface {
	All() ([]models.PendingReport, error)
	Remove(id uint) error
}

// Reconciler drains the pending queue against the central API.
type Reconciler struct {
	store     PendingStore
	submitter remote.Submitter
	online    func() bool
	syncing   atomic.Bool
}

// NewReconciler creates a reconciler. online reports the device's current
// connectivity; a drain while offline is a no-op.
func NewReconciler(store PendingStore, submitter remote.Submitter, online func() bool) *Reconciler {
	return &Reconciler{
		store:     store,
		submitter: submitter,
		online:    online,
	}
}

// Drain submits queued reports strictly in FIFO order, one at a time, and
// returns how many were delivered. On the first failure it stops
// immediately, leaving the failed entry and everything behind it in
// original order for a later attempt; per-item failures are not surfaced.
// Concurrent drains are collapsed into one: a second trigger while a
// drain is running returns 0 without touching the queue.
func (r *Reconciler) Drain(ctx context.Context) (int, error) {
	if !r.syncing.CompareAndSwap(false, true) {
		return 0, nil
	}
	defer r.syncing.Store(false)

	if r.online != nil && !r.online() {
		return 0, nil
	}

	pending, err := r.store.All()
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	delivered := 0
	for _, p := range pending {
		result, err := r.submitter.SubmitReport(ctx, models.SubmitRequest{
			Date:      p.Date,
			PointName: p.PointName,
			Shift:     p.Shift,
			Images:    p.Images,
			Notes:     p.Notes,
		})
		if err != nil || !result.Success {
			// Halt on first failure: do not skip ahead, do not reorder.
			if err != nil {
				log.Printf("Pending sync stopped at report %d: %v", p.ID, err)
			}
			break
		}

		if err := r.store.Remove(p.ID); err != nil {
			// The report was delivered but the queue still holds it; a
			// later drain would resubmit. Stop here rather than risk
			// compounding duplicates.
			log.Printf("Failed to dequeue delivered report %d: %v", p.ID, err)
			break
		}
		delivered++
	}

	if delivered > 0 {
		log.Printf("📤 Pending sync delivered %d report(s)", delivered)
	}
	return delivered, nil
}
