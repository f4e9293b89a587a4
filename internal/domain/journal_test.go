package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryAt(ts time.Time, seq int64) *JournalEntry {
	return &JournalEntry{
		ProjectID:  1,
		TicketID:   7,
		Field:      FieldStatus,
		OldValue:   string(StatusOpen),
		NewValue:   string(StatusClosed),
		OccurredAt: ts,
		Seq:        seq,
	}
}

func TestSortJournal_ByTimestampThenSeq(t *testing.T) {
	t1 := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	entries := []*JournalEntry{
		entryAt(t2, 1),
		entryAt(t1, 5),
		entryAt(t1, 2),
	}
	SortJournal(entries)

	assert.Equal(t, int64(2), entries[0].Seq)
	assert.Equal(t, int64(5), entries[1].Seq)
	assert.Equal(t, t2, entries[2].OccurredAt)
}

func TestJournalEntry_Validate(t *testing.T) {
	valid := entryAt(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), 1)
	assert.NoError(t, valid.Validate())

	zeroTime := entryAt(time.Time{}, 1)
	assert.Error(t, zeroTime.Validate())

	unknownField := entryAt(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), 1)
	unknownField.Field = JournalField("priority")
	assert.Error(t, unknownField.Validate())

	negative := &JournalEntry{
		TicketID:   7,
		Field:      FieldEstimatedHours,
		OldValue:   "4",
		NewValue:   "-2",
		OccurredAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Seq:        1,
	}
	assert.Error(t, negative.Validate())

	garbled := &JournalEntry{
		TicketID:   7,
		Field:      FieldEstimatedHours,
		OldValue:   "",
		NewValue:   "eight",
		OccurredAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Seq:        1,
	}
	assert.Error(t, garbled.Validate())
}

func TestParseHours_RoundTrip(t *testing.T) {
	h, err := ParseHours("")
	require.NoError(t, err)
	assert.Nil(t, h)
	assert.Equal(t, "", FormatHours(nil))

	h, err = ParseHours("7.5")
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, 7.5, *h)
	assert.Equal(t, "7.5", FormatHours(h))

	_, err = ParseHours("n/a")
	assert.Error(t, err)
}

func TestJournalEntry_KeyIgnoresValues(t *testing.T) {
	ts := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	a := entryAt(ts, 3)
	b := entryAt(ts, 3)
	b.NewValue = string(StatusResolved)

	assert.Equal(t, a.Key(), b.Key())
}
