// Package report holds the dashboard coverage model: the aggregator that
// turns the flat remote record list into completeness numbers, and the
// duplicate-submission guard.
package report

import (
	"context"
	"log"
	"sync"

	"github.com/vwin2537-arch/FireCheckPointReport/client/remote"
	"github.com/vwin2537-arch/FireCheckPointReport/models"
)

// Aggregator owns the dashboard snapshot for the currently selected date.
// The snapshot is replaced wholesale on every refresh; callers read it,
// nothing else mutates it.
type Aggregator struct {
	fetcher remote.StatusFetcher
	points  []models.WatchPoint

	mu            sync.Mutex
	snapshot      models.DashboardSnapshot
	requestedDate string // date of the most recently requested fetch
}

// NewAggregator creates an aggregator over the static point registry.
func NewAggregator(fetcher remote.StatusFetcher, points []models.WatchPoint) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		points:  points,
	}
}

// Points returns the static registry the aggregator joins against.
func (a *Aggregator) Points() []models.WatchPoint {
	return a.points
}

// Snapshot returns the current dashboard snapshot.
func (a *Aggregator) Snapshot() models.DashboardSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshot
}

// Refresh fetches the records for a date and replaces the snapshot.
// Fetch failures degrade to an empty record list so the dashboard always
// renders. If the user has since requested a different date, the late
// result is discarded and the newer snapshot is returned untouched; the
// in-flight call is never cancelled, only ignored.
func (a *Aggregator) Refresh(ctx context.Context, date string) models.DashboardSnapshot {
	a.mu.Lock()
	a.requestedDate = date
	a.mu.Unlock()

	records, err := a.fetcher.FetchStatus(ctx, date)
	if err != nil {
		log.Printf("Dashboard fetch failed for %s: %v", date, err)
		records = nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.requestedDate != date {
		// A newer fetch has been requested; this result is stale.
		return a.snapshot
	}

	a.snapshot = models.DashboardSnapshot{Date: date, Records: records}
	return a.snapshot
}

// IsPointShiftReported reports whether the snapshot contains a record for
// the given point and shift. The join goes through the normalized name.
func (a *Aggregator) IsPointShiftReported(snapshot models.DashboardSnapshot, pointID int, shift models.Shift) bool {
	point, ok := models.FindWatchPoint(a.points, pointID)
	if !ok {
		return false
	}
	name := models.NormalizePointName(point.Name)

	for _, rec := range snapshot.Records {
		if models.NormalizePointName(rec.PointName) == name && rec.Shift == shift {
			return true
		}
	}
	return false
}

// PointsFullyReported counts registry points whose set of distinct shifts
// in the snapshot has size 3. Duplicate records for the same shift do not
// inflate the count.
func (a *Aggregator) PointsFullyReported(snapshot models.DashboardSnapshot) int {
	shiftsByPoint := make(map[string]map[models.Shift]bool)
	for _, rec := range snapshot.Records {
		name := models.NormalizePointName(rec.PointName)
		if shiftsByPoint[name] == nil {
			shiftsByPoint[name] = make(map[models.Shift]bool)
		}
		shiftsByPoint[name][rec.Shift] = true
	}

	count := 0
	for _, p := range a.points {
		if len(shiftsByPoint[models.NormalizePointName(p.Name)]) == len(models.AllShifts) {
			count++
		}
	}
	return count
}

// OverallPercent is round-half-up of records over pointCount*3, clamped
// to 0 when the registry is empty.
func (a *Aggregator) OverallPercent(snapshot models.DashboardSnapshot) int {
	total := len(a.points) * len(models.AllShifts)
	if total == 0 {
		return 0
	}
	return (100*len(snapshot.Records) + total/2) / total
}
