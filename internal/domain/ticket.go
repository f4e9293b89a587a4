package domain

import "time"

// Ticket is the tracker-side view of one issue. Its current-state fields
// (Status, EstimatedHours) are a cache derivable from the journal; replay
// never mutates tickets directly.
type Ticket struct {
	ID             int
	ProjectID      int
	Subject        string
	EstimatedHours *float64
	Status         TicketStatus
	AssigneeID     *int
	AssigneeName   string
	VersionID      *int
	VersionName    string
	CreatedOn      time.Time
	UpdatedOn      time.Time

	// DeletedOn is set when a full resync no longer sees the ticket in
	// the tracker. A deleted ticket stops contributing to snapshots from
	// that date on.
	DeletedOn *time.Time
}

// IsDone reports whether the ticket's current status counts as completed.
func (t *Ticket) IsDone() bool {
	return DoneStatuses[t.Status]
}

// EstimatedHoursSafe returns the estimate, treating a missing estimate as 0.
func (t *Ticket) EstimatedHoursSafe() float64 {
	if t.EstimatedHours == nil {
		return 0
	}
	return *t.EstimatedHours
}

// ExistsOn reports whether the ticket existed at end of the given calendar
// day: created on or before it and not yet deleted.
func (t *Ticket) ExistsOn(day time.Time) bool {
	if t.CreatedOn.After(endOfDay(day)) {
		return false
	}
	if t.DeletedOn != nil && !t.DeletedOn.After(endOfDay(day)) {
		return false
	}
	return true
}

func endOfDay(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}
