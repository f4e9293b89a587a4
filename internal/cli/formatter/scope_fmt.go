package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kiririmode/rd-burndown/internal/domain"
)

// FormatScopeChanges renders scope change events as a table, newest last.
func FormatScopeChanges(events []*domain.ScopeChangeEvent) string {
	if len(events) == 0 {
		return Dim("No scope changes in this range.")
	}

	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			Dim(Day(e.Date)),
			strconv.Itoa(e.TicketID),
			truncate(e.TicketSubject, 40),
			kindLabel(e.Kind),
			FormatHoursPtr(e.OldHours),
			FormatHoursPtr(e.NewHours),
			FormatDelta(e.HoursDelta),
			ImpactIndicator(e.Impact),
		})
	}

	t := &Table{
		Headers:    []string{"DATE", "TICKET", "SUBJECT", "CHANGE", "OLD", "NEW", "DELTA", "IMPACT"},
		Rows:       rows,
		AlignRight: map[int]bool{1: true, 4: true, 5: true, 6: true},
	}
	return t.Render()
}

// FormatScopeSummary renders aggregate movement for a set of events.
func FormatScopeSummary(events []*domain.ScopeChangeEvent) string {
	var added, removed, modified float64
	var high int
	for _, e := range events {
		switch e.Kind {
		case domain.ChangeAdded:
			added += e.HoursDelta
		case domain.ChangeRemoved:
			removed += -e.HoursDelta
		case domain.ChangeModified:
			modified += e.HoursDelta
		}
		if e.Impact == domain.ImpactHigh {
			high++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d events: %s added, %s removed, %s revised",
		len(events), FormatHours(added), FormatHours(removed), FormatDelta(modified))
	if high > 0 {
		fmt.Fprintf(&b, ", %s", StyleRed.Render(fmt.Sprintf("%d high impact", high)))
	}
	return b.String()
}

func kindLabel(k domain.ChangeKind) string {
	switch k {
	case domain.ChangeAdded:
		return StyleYellow.Render("added")
	case domain.ChangeRemoved:
		return StyleGreen.Render("removed")
	case domain.ChangeModified:
		return StyleBlue.Render("revised")
	default:
		return StyleDim.Render(string(k))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
