package testutil

import (
	"time"

	"github.com/kiririmode/rd-burndown/internal/domain"
)

// Day builds a midnight-UTC date for test data.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Hours returns a pointer to an estimate value.
func Hours(h float64) *float64 {
	return &h
}

// Ticket options
type TicketOption func(*domain.Ticket)

func WithEstimate(h float64) TicketOption {
	return func(t *domain.Ticket) {
		t.EstimatedHours = &h
	}
}

func WithoutEstimate() TicketOption {
	return func(t *domain.Ticket) {
		t.EstimatedHours = nil
	}
}

func WithStatus(s domain.TicketStatus) TicketOption {
	return func(t *domain.Ticket) {
		t.Status = s
	}
}

func WithCreatedOn(d time.Time) TicketOption {
	return func(t *domain.Ticket) {
		t.CreatedOn = d
		t.UpdatedOn = d
	}
}

func WithDeletedOn(d time.Time) TicketOption {
	return func(t *domain.Ticket) {
		t.DeletedOn = &d
	}
}

func WithAssignee(id int, name string) TicketOption {
	return func(t *domain.Ticket) {
		t.AssigneeID = &id
		t.AssigneeName = name
	}
}

// NewTicket builds a valid open ticket with an 8h estimate, created at a
// fixed early date so replay windows in tests always cover it.
func NewTicket(projectID, id int, opts ...TicketOption) *domain.Ticket {
	est := 8.0
	t := &domain.Ticket{
		ID:             id,
		ProjectID:      projectID,
		Subject:        "Test ticket",
		EstimatedHours: &est,
		Status:         domain.StatusOpen,
		CreatedOn:      Day(2025, time.January, 1),
		UpdatedOn:      Day(2025, time.January, 1),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewProject builds a valid project.
func NewProject(id int, opts ...func(*domain.Project)) *domain.Project {
	p := &domain.Project{
		ID:         id,
		Name:       "Test project",
		Identifier: "test-project",
		CreatedOn:  Day(2025, time.January, 1),
		UpdatedOn:  Day(2025, time.January, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// StatusChange builds a status journal entry occurring at noon of the
// given day.
func StatusChange(projectID, ticketID int, day time.Time, seq int64, from, to domain.TicketStatus) *domain.JournalEntry {
	return &domain.JournalEntry{
		ProjectID:  projectID,
		TicketID:   ticketID,
		Field:      domain.FieldStatus,
		OldValue:   string(from),
		NewValue:   string(to),
		OccurredAt: day.Add(12 * time.Hour),
		Seq:        seq,
	}
}

// EstimateChange builds an estimated-hours journal entry occurring at noon
// of the given day. Nil values mean "no estimate".
func EstimateChange(projectID, ticketID int, day time.Time, seq int64, from, to *float64) *domain.JournalEntry {
	return &domain.JournalEntry{
		ProjectID:  projectID,
		TicketID:   ticketID,
		Field:      domain.FieldEstimatedHours,
		OldValue:   domain.FormatHours(from),
		NewValue:   domain.FormatHours(to),
		OccurredAt: day.Add(12 * time.Hour),
		Seq:        seq,
	}
}
