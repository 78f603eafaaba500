// Package notify computes coverage summaries and pushes them to the LINE
// group the park staff use. The scheduled triggers mirror the field
// routine: per-shift reminders during the day and a daily wrap-up in the
// evening.
package notify

import (
	"github.com/vwin2537-arch/FireCheckPointReport/models"
)

// ShiftSummary describes submission coverage for one shift on one date.
type ShiftSummary struct {
	Shift         models.Shift
	Date          string
	Submitted     int
	Missing       int
	MissingPoints []string // normalized names, registry order
	Percent       int
}

// DaySummary aggregates all three shifts for one date.
type DaySummary struct {
	Date           string
	Shifts         []ShiftSummary
	TotalSubmitted int
	TotalExpected  int
	OverallPercent int
}

// roundPercent is round-half-up integer percent, 0 when the denominator
// is 0.
func roundPercent(n, d int) int {
	if d <= 0 {
		return 0
	}
	return (100*n + d/2) / d
}

// SummarizeShift computes coverage for one shift from the flat record
// list. A point counts as submitted when at least one record exists for
// its normalized name and the shift; duplicates do not inflate the count.
func SummarizeShift(points []models.WatchPoint, records []models.SubmissionRecord, date string, shift models.Shift) ShiftSummary {
	reported := make(map[string]bool)
	for _, rec := range records {
		if rec.Shift == shift {
			reported[models.NormalizePointName(rec.PointName)] = true
		}
	}

	summary := ShiftSummary{Shift: shift, Date: date}
	for _, p := range points {
		name := models.NormalizePointName(p.Name)
		if reported[name] {
			summary.Submitted++
		} else {
			summary.MissingPoints = append(summary.MissingPoints, name)
		}
	}
	summary.Missing = len(summary.MissingPoints)
	summary.Percent = roundPercent(summary.Submitted, len(points))
	return summary
}

// SummarizeDay computes the daily wrap-up across all three shifts.
func SummarizeDay(points []models.WatchPoint, records []models.SubmissionRecord, date string) DaySummary {
	day := DaySummary{
		Date:          date,
		TotalExpected: len(points) * len(models.AllShifts),
	}
	for _, shift := range models.AllShifts {
		s := SummarizeShift(points, records, date, shift)
		day.Shifts = append(day.Shifts, s)
		day.TotalSubmitted += s.Submitted
	}
	day.OverallPercent = roundPercent(day.TotalSubmitted, day.TotalExpected)
	return day
}
