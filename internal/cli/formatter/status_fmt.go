package formatter

import (
	"fmt"
	"strings"

	"github.com/kiririmode/rd-burndown/internal/service"
)

// FormatSyncReport renders the outcome of one sync run.
func FormatSyncReport(r *service.SyncReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sync complete (%s)\n", string(r.Mode))
	fmt.Fprintf(&b, "  Tickets fetched:  %d\n", r.TicketsFetched)
	fmt.Fprintf(&b, "  Entries merged:   %d\n", r.EntriesMerged)
	if r.TicketsRemoved > 0 {
		fmt.Fprintf(&b, "  Tickets removed:  %d\n", r.TicketsRemoved)
	}
	if r.RecomputedFrom.IsZero() {
		fmt.Fprintf(&b, "  %s\n", Dim("Nothing new; snapshots unchanged."))
	} else {
		fmt.Fprintf(&b, "  Recomputed:       %s .. %s\n", Day(r.RecomputedFrom), Day(r.RecomputedTo))
	}
	fmt.Fprintf(&b, "  Sync ID:          %s\n", Dim(r.State.LastSyncID))
	return b.String()
}

// FormatCacheStatus renders what the local store holds for a project.
func FormatCacheStatus(s *service.CacheStatus) string {
	freshness := StyleGreen.Render("fresh")
	if s.Stale {
		freshness = StyleYellow.Render("stale")
	}
	lastFetch := Dim("never")
	if !s.LastFetchAt.IsZero() {
		lastFetch = HumanTimestamp(s.LastFetchAt)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", Bold(s.ProjectName), Dim(fmt.Sprintf("(#%d)", s.ProjectID)))
	fmt.Fprintf(&b, "Tickets        %d\n", s.Tickets)
	fmt.Fprintf(&b, "Journal        %d entries\n", s.JournalSize)
	fmt.Fprintf(&b, "Snapshots      %d days\n", s.Snapshots)
	fmt.Fprintf(&b, "Scope changes  %d\n", s.ScopeChanges)
	fmt.Fprintf(&b, "Last fetch     %s (%s)\n", lastFetch, freshness)
	return b.String()
}
