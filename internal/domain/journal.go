package domain

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// JournalEntry is one immutable, timestamped change fact about a ticket.
// Entries are the sole source of truth for "what happened when"; replay
// applies them in (OccurredAt, Seq) order.
//
// Values are stored as normalized strings: status names for FieldStatus,
// decimal hours for FieldEstimatedHours, empty string for a missing
// estimate.
type JournalEntry struct {
	ProjectID  int
	TicketID   int
	Field      JournalField
	OldValue   string
	NewValue   string
	OccurredAt time.Time
	Seq        int64
}

// Key identifies an entry for idempotent merging. Two entries with the same
// key are the same fact.
type JournalKey struct {
	TicketID   int
	Field      JournalField
	OccurredAt time.Time
	Seq        int64
}

func (e *JournalEntry) Key() JournalKey {
	return JournalKey{
		TicketID:   e.TicketID,
		Field:      e.Field,
		OccurredAt: e.OccurredAt,
		Seq:        e.Seq,
	}
}

// Validate fails fast on entries that would silently corrupt downstream
// sums: zero timestamps, unknown fields, negative hour values.
func (e *JournalEntry) Validate() error {
	if e.OccurredAt.IsZero() {
		return fmt.Errorf("journal entry for ticket %d has zero timestamp", e.TicketID)
	}
	if !ValidJournalFields[e.Field] {
		return fmt.Errorf("journal entry for ticket %d has unknown field %q", e.TicketID, e.Field)
	}
	if e.Field == FieldEstimatedHours {
		for _, v := range []string{e.OldValue, e.NewValue} {
			h, err := ParseHours(v)
			if err != nil {
				return fmt.Errorf("journal entry for ticket %d: %w", e.TicketID, err)
			}
			if h != nil && *h < 0 {
				return fmt.Errorf("journal entry for ticket %d has negative hours %v", e.TicketID, *h)
			}
		}
	}
	return nil
}

// OldHours and NewHours decode the estimate values of a FieldEstimatedHours
// entry. A nil result means the estimate was unset.
func (e *JournalEntry) OldHours() (*float64, error) { return ParseHours(e.OldValue) }
func (e *JournalEntry) NewHours() (*float64, error) { return ParseHours(e.NewValue) }

// ParseHours decodes a normalized hour value. Empty string means unset.
func ParseHours(v string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	h, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing hours %q: %w", v, err)
	}
	return &h, nil
}

// FormatHours is the inverse of ParseHours.
func FormatHours(h *float64) string {
	if h == nil {
		return ""
	}
	return strconv.FormatFloat(*h, 'f', -1, 64)
}

// SortJournal orders entries by (OccurredAt, Seq) so replay is
// deterministic even when entries share a timestamp.
func SortJournal(entries []*JournalEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.OccurredAt.Equal(b.OccurredAt) {
			return a.OccurredAt.Before(b.OccurredAt)
		}
		return a.Seq < b.Seq
	})
}
