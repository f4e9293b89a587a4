package domain

import "time"

// DailySnapshot is the reconstructed end-of-day state of a project's
// workload. One exists per (project, calendar day) with no gaps.
//
// Invariants: RemainingHours = TotalHours - CompletedHours, and for every
// day after the first, TotalHours = previous TotalHours + AddedHours +
// ChangedHours - RemovedHours.
type DailySnapshot struct {
	ProjectID int
	Date      time.Time

	TotalHours     float64
	CompletedHours float64
	RemainingHours float64

	// Deltas versus the prior day's snapshot.
	AddedHours   float64
	ChangedHours float64
	RemovedHours float64

	ActiveCount    int
	CompletedCount int

	// Tickets present but without an estimate. Tracked for data-quality
	// reporting; such tickets contribute 0 to all hour sums.
	UnestimatedCount int
}

// ScopeChange returns the net scope movement for the day.
func (s *DailySnapshot) ScopeChange() float64 {
	return s.AddedHours + s.ChangedHours - s.RemovedHours
}

// TotalTickets returns the number of tickets present at end of day.
func (s *DailySnapshot) TotalTickets() int {
	return s.ActiveCount + s.CompletedCount
}

// CompletionRate returns the completed ticket ratio as a percentage.
func (s *DailySnapshot) CompletionRate() float64 {
	total := s.TotalTickets()
	if total == 0 {
		return 0
	}
	return float64(s.CompletedCount) / float64(total) * 100
}
