package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kiririmode/rd-burndown/internal/domain"
)

func scopeEvent(kind domain.ChangeKind, delta float64, impact domain.ImpactLevel) *domain.ScopeChangeEvent {
	return &domain.ScopeChangeEvent{
		ProjectID:     1,
		Date:          time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
		TicketID:      101,
		TicketSubject: "Checkout flow",
		Kind:          kind,
		HoursDelta:    delta,
		Impact:        impact,
	}
}

func TestFormatScopeChanges(t *testing.T) {
	events := []*domain.ScopeChangeEvent{
		scopeEvent(domain.ChangeAdded, 8, domain.ImpactHigh),
		scopeEvent(domain.ChangeModified, 4, domain.ImpactMedium),
	}
	got := FormatScopeChanges(events)

	assert.Contains(t, got, "2025-03-05")
	assert.Contains(t, got, "101")
	assert.Contains(t, got, "Checkout flow")
	assert.Contains(t, got, "added")
	assert.Contains(t, got, "revised")
	assert.Contains(t, got, "+8h")
	assert.Contains(t, got, "HIGH")
	assert.Contains(t, got, "MEDIUM")
}

func TestFormatScopeChangesEmpty(t *testing.T) {
	assert.Contains(t, FormatScopeChanges(nil), "No scope changes")
}

func TestFormatScopeSummary(t *testing.T) {
	events := []*domain.ScopeChangeEvent{
		scopeEvent(domain.ChangeAdded, 8, domain.ImpactHigh),
		scopeEvent(domain.ChangeRemoved, -5, domain.ImpactLow),
		scopeEvent(domain.ChangeModified, 2, domain.ImpactLow),
	}
	got := FormatScopeSummary(events)

	assert.Contains(t, got, "3 events")
	assert.Contains(t, got, "8h added")
	assert.Contains(t, got, "5h removed")
	assert.Contains(t, got, "+2h")
	assert.Contains(t, got, "1 high impact")
}

func TestFormatScopeSummaryNoHighImpact(t *testing.T) {
	got := FormatScopeSummary([]*domain.ScopeChangeEvent{
		scopeEvent(domain.ChangeAdded, 2, domain.ImpactLow),
	})
	assert.NotContains(t, got, "high impact")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	long := "this subject line keeps going and going well past the limit"
	got := truncate(long, 20)
	assert.Len(t, []rune(got), 20)
	assert.Contains(t, got, "…")
}
