package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kiririmode/rd-burndown/internal/domain"
	"github.com/kiririmode/rd-burndown/internal/service"
)

func TestFormatSyncReport(t *testing.T) {
	r := &service.SyncReport{
		State: &domain.SyncState{
			LastSyncID: "b5c7d1f0-0000-0000-0000-000000000001",
		},
		Mode:           domain.SyncFull,
		TicketsFetched: 12,
		EntriesMerged:  34,
		TicketsRemoved: 2,
		RecomputedFrom: time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		RecomputedTo:   time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
	}
	got := FormatSyncReport(r)

	assert.Contains(t, got, "Sync complete (full)")
	assert.Contains(t, got, "Tickets fetched:  12")
	assert.Contains(t, got, "Entries merged:   34")
	assert.Contains(t, got, "Tickets removed:  2")
	assert.Contains(t, got, "2025-03-03 .. 2025-03-10")
	assert.Contains(t, got, "b5c7d1f0")
}

func TestFormatSyncReportNothingNew(t *testing.T) {
	r := &service.SyncReport{
		State: &domain.SyncState{LastSyncID: "x"},
		Mode:  domain.SyncIncremental,
	}
	got := FormatSyncReport(r)

	assert.Contains(t, got, "Sync complete (incremental)")
	assert.Contains(t, got, "Nothing new; snapshots unchanged.")
	assert.NotContains(t, got, "Tickets removed")
	assert.NotContains(t, got, "Recomputed")
}

func TestFormatCacheStatus(t *testing.T) {
	s := &service.CacheStatus{
		ProjectID:    42,
		ProjectName:  "Payment rework",
		Tickets:      20,
		JournalSize:  115,
		Snapshots:    30,
		ScopeChanges: 5,
		LastFetchAt:  time.Now().Add(-2 * time.Hour),
	}
	got := FormatCacheStatus(s)

	assert.Contains(t, got, "Payment rework")
	assert.Contains(t, got, "(#42)")
	assert.Contains(t, got, "Tickets        20")
	assert.Contains(t, got, "Journal        115 entries")
	assert.Contains(t, got, "Snapshots      30 days")
	assert.Contains(t, got, "Scope changes  5")
	assert.Contains(t, got, "2h ago")
	assert.Contains(t, got, "fresh")
}

func TestFormatCacheStatusStale(t *testing.T) {
	got := FormatCacheStatus(&service.CacheStatus{
		ProjectID:   42,
		ProjectName: "Payment rework",
		Stale:       true,
	})
	assert.Contains(t, got, "never")
	assert.Contains(t, got, "stale")
}
