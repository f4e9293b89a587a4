// Package replay reconstructs a project's day-by-day workload from its
// ticket set and journal. Everything here is pure computation: no I/O, no
// shared state, and identical inputs always produce identical output.
package replay

import (
	"fmt"
	"sort"
	"time"

	"github.com/kiririmode/rd-burndown/internal/dateutil"
	"github.com/kiririmode/rd-burndown/internal/domain"
)

// Replay produces one DailySnapshot per calendar day in [start, end].
//
// Per-ticket state is initialized to its value at the day before start by
// replaying every earlier journal entry, then each day's entries are
// applied in (timestamp, seq) order before the day's snapshot is
// materialized. Days without events still produce a snapshot carrying the
// prior totals forward, so the series has no gaps.
func Replay(projectID int, tickets []*domain.Ticket, entries []*domain.JournalEntry, start, end time.Time) ([]*domain.DailySnapshot, error) {
	var snapshots []*domain.DailySnapshot
	err := walk(projectID, tickets, entries, start, end, func(d *daySummary) {
		snapshots = append(snapshots, d.snapshot)
	})
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

// ticketState is the mutable replay view of one ticket. The state table is
// rebuilt fresh per invocation and scoped to it, so concurrent replays of
// different projects cannot interfere.
type ticketState struct {
	ticket   *domain.Ticket
	estimate *float64
	status   domain.TicketStatus
}

// contribution is a ticket's effect on one day's snapshot.
type contribution struct {
	present   bool
	hours     float64
	estimated bool
	done      bool
}

// ticketDiff describes how one ticket's contribution moved between two
// consecutive days. The detector turns these into scope-change events.
type ticketDiff struct {
	ticket   *domain.Ticket
	kind     domain.ChangeKind
	oldHours *float64
	newHours *float64
	delta    float64
}

// daySummary is one day's replay output: the snapshot plus the ticket
// movements that produced its deltas, ordered by ticket ID.
type daySummary struct {
	date     time.Time
	snapshot *domain.DailySnapshot
	diffs    []ticketDiff
}

// walk is the shared day-by-day engine behind Replay and Detect.
func walk(projectID int, tickets []*domain.Ticket, entries []*domain.JournalEntry, start, end time.Time, visit func(*daySummary)) error {
	start, end = dateutil.DateOnly(start), dateutil.DateOnly(end)
	if end.Before(start) {
		return fmt.Errorf("replay window end %s precedes start %s",
			end.Format(dateutil.Layout), start.Format(dateutil.Layout))
	}

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInconsistentHistory, err)
		}
	}
	states, err := initialStates(tickets, entries)
	if err != nil {
		return err
	}

	sorted := make([]*domain.JournalEntry, len(entries))
	copy(sorted, entries)
	domain.SortJournal(sorted)

	// Advance state to the eve of the window.
	idx := 0
	for idx < len(sorted) && dateutil.DateOnly(sorted[idx].OccurredAt).Before(start) {
		if err := apply(states, sorted[idx]); err != nil {
			return err
		}
		idx++
	}

	// Keep tickets in a stable order so sums are bit-identical run to run.
	ordered := orderTickets(tickets)
	prev := contributionsOn(ordered, states, start.AddDate(0, 0, -1))

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		for idx < len(sorted) && dateutil.DateOnly(sorted[idx].OccurredAt).Equal(day) {
			if err := apply(states, sorted[idx]); err != nil {
				return err
			}
			idx++
		}

		curr := contributionsOn(ordered, states, day)
		visit(summarize(projectID, day, ordered, prev, curr))
		prev = curr
	}
	return nil
}

// initialStates derives each ticket's pre-journal value per field: the old
// value of its earliest journal entry, or the current ticket value when the
// field was never journaled.
func initialStates(tickets []*domain.Ticket, entries []*domain.JournalEntry) (map[int]*ticketState, error) {
	states := make(map[int]*ticketState, len(tickets))
	for _, t := range tickets {
		states[t.ID] = &ticketState{ticket: t, estimate: t.EstimatedHours, status: t.Status}
	}

	sorted := make([]*domain.JournalEntry, len(entries))
	copy(sorted, entries)
	domain.SortJournal(sorted)

	seen := make(map[int]map[domain.JournalField]bool, len(tickets))
	for _, e := range sorted {
		st, ok := states[e.TicketID]
		if !ok {
			return nil, fmt.Errorf("%w: journal entry references unknown ticket %d",
				domain.ErrInconsistentHistory, e.TicketID)
		}
		if seen[e.TicketID] == nil {
			seen[e.TicketID] = make(map[domain.JournalField]bool, 2)
		}
		if seen[e.TicketID][e.Field] {
			continue
		}
		seen[e.TicketID][e.Field] = true

		switch e.Field {
		case domain.FieldStatus:
			st.status = domain.TicketStatus(e.OldValue)
		case domain.FieldEstimatedHours:
			h, err := e.OldHours()
			if err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrInconsistentHistory, err)
			}
			st.estimate = h
		}
	}
	return states, nil
}

func apply(states map[int]*ticketState, e *domain.JournalEntry) error {
	st, ok := states[e.TicketID]
	if !ok {
		return fmt.Errorf("%w: journal entry references unknown ticket %d",
			domain.ErrInconsistentHistory, e.TicketID)
	}
	switch e.Field {
	case domain.FieldStatus:
		st.status = domain.TicketStatus(e.NewValue)
	case domain.FieldEstimatedHours:
		h, err := e.NewHours()
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInconsistentHistory, err)
		}
		st.estimate = h
	}
	return nil
}

func orderTickets(tickets []*domain.Ticket) []*domain.Ticket {
	ordered := make([]*domain.Ticket, len(tickets))
	copy(ordered, tickets)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })
	return ordered
}

func contributionsOn(ordered []*domain.Ticket, states map[int]*ticketState, day time.Time) map[int]contribution {
	contribs := make(map[int]contribution, len(ordered))
	for _, t := range ordered {
		st := states[t.ID]
		c := contribution{present: t.ExistsOn(day)}
		if c.present {
			if st.estimate != nil {
				c.hours = *st.estimate
				c.estimated = true
			}
			c.done = domain.DoneStatuses[st.status]
		}
		contribs[t.ID] = c
	}
	return contribs
}

// summarize materializes one day's snapshot from the per-ticket
// contributions and their diffs versus the previous day. Computing the
// added/changed/removed deltas from the same contributions that feed the
// totals is what makes the conservation invariant hold exactly.
func summarize(projectID int, day time.Time, ordered []*domain.Ticket, prev, curr map[int]contribution) *daySummary {
	snap := &domain.DailySnapshot{ProjectID: projectID, Date: day}
	var diffs []ticketDiff

	for _, t := range ordered {
		c := curr[t.ID]
		p := prev[t.ID]

		if c.present {
			snap.TotalHours += c.hours
			if c.done {
				snap.CompletedHours += c.hours
				snap.CompletedCount++
			} else {
				snap.ActiveCount++
			}
			if !c.estimated {
				snap.UnestimatedCount++
			}
		}

		switch {
		case c.present && !p.present:
			snap.AddedHours += c.hours
			diffs = append(diffs, ticketDiff{
				ticket:   t,
				kind:     domain.ChangeAdded,
				newHours: hoursPtr(c),
				delta:    c.hours,
			})
		case !c.present && p.present:
			snap.RemovedHours += p.hours
			diffs = append(diffs, ticketDiff{
				ticket:   t,
				kind:     domain.ChangeRemoved,
				oldHours: hoursPtr(p),
				delta:    -p.hours,
			})
		case c.present && p.present && c.hours != p.hours:
			snap.ChangedHours += c.hours - p.hours
			diffs = append(diffs, ticketDiff{
				ticket:   t,
				kind:     domain.ChangeModified,
				oldHours: hoursPtr(p),
				newHours: hoursPtr(c),
				delta:    c.hours - p.hours,
			})
		}
	}

	snap.RemainingHours = snap.TotalHours - snap.CompletedHours
	return &daySummary{date: day, snapshot: snap, diffs: diffs}
}

func hoursPtr(c contribution) *float64 {
	if !c.estimated {
		return nil
	}
	h := c.hours
	return &h
}
