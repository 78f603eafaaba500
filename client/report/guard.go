package report

import (
	"github.com/vwin2537-arch/FireCheckPointReport/models"
)

// IsDuplicate reports whether the snapshot already holds a record for the
// selected point and shift. Purely advisory: a confirmed duplicate
// resubmits exactly like a fresh report and the server appends another
// photo set. An incomplete selection can never be a duplicate.
func (a *Aggregator) IsDuplicate(snapshot models.DashboardSnapshot, pointID int, shift models.Shift) bool {
	if pointID == 0 || shift == "" {
		return false
	}
	return a.IsPointShiftReported(snapshot, pointID, shift)
}
