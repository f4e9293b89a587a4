package replay

import (
	"time"

	"github.com/kiririmode/rd-burndown/internal/domain"
)

// Detect derives scope-change events for every day in [start, end]: one
// event per ticket whose effort contribution was added, revised, or
// removed that day. Impact is classified against the day's total effort
// using the given thresholds.
//
// Detection is purely derivative of the same inputs as Replay and never
// mutates them; re-running it against the full history is always safe.
func Detect(projectID int, tickets []*domain.Ticket, entries []*domain.JournalEntry, start, end time.Time, thresholds domain.ImpactThresholds) ([]*domain.ScopeChangeEvent, error) {
	var events []*domain.ScopeChangeEvent
	err := walk(projectID, tickets, entries, start, end, func(d *daySummary) {
		for _, diff := range d.diffs {
			events = append(events, &domain.ScopeChangeEvent{
				ProjectID:     projectID,
				Date:          d.date,
				TicketID:      diff.ticket.ID,
				TicketSubject: diff.ticket.Subject,
				Kind:          diff.kind,
				HoursDelta:    diff.delta,
				OldHours:      diff.oldHours,
				NewHours:      diff.newHours,
				Impact:        thresholds.Classify(diff.delta, d.snapshot.TotalHours),
			})
		}
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}
