package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kiririmode/rd-burndown/internal/domain"
	"github.com/kiririmode/rd-burndown/internal/service"
)

func fmtProject() *domain.Project {
	end := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)
	return &domain.Project{
		ID:          42,
		Name:        "Payment rework",
		Identifier:  "payment-rework",
		Description: "Backend overhaul",
		EndDate:     &end,
		CreatedOn:   time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestFormatProjectList(t *testing.T) {
	got := FormatProjectList([]*domain.Project{fmtProject()})

	assert.Contains(t, got, "ID")
	assert.Contains(t, got, "IDENTIFIER")
	assert.Contains(t, got, "42")
	assert.Contains(t, got, "Payment rework")
	assert.Contains(t, got, "payment-rework")
	assert.Contains(t, got, "2025-03-14")
}

func TestFormatProjectListNoEndDate(t *testing.T) {
	p := fmtProject()
	p.EndDate = nil
	got := FormatProjectList([]*domain.Project{p})
	assert.Contains(t, got, "--")
}

func TestFormatProjectDetail(t *testing.T) {
	got := FormatProjectDetail(fmtProject())

	assert.Contains(t, got, "Payment rework")
	assert.Contains(t, got, "#42, payment-rework")
	assert.Contains(t, got, "Backend overhaul")
	assert.Contains(t, got, "End:")
	assert.NotContains(t, got, "Start:")
}

func TestFormatSummary(t *testing.T) {
	remaining := 4
	date := time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC)
	daysNeeded := 5
	s := &service.ProjectSummary{
		Project:          fmtProject(),
		TotalTickets:     6,
		CompletedTickets: 3,
		TotalHours:       40,
		CompletedHours:   15,
		RemainingHours:   25,
		DaysElapsed:      7,
		DaysRemaining:    &remaining,
		CompletionRate:   0.5,
		AverageBurnRate:  5,
		Forecast: domain.Forecast{
			Date:          &date,
			DaysRemaining: &daysNeeded,
			Confidence:    "high",
			Velocity:      5,
		},
	}
	got := FormatSummary(s)

	assert.Contains(t, got, "PROJECT STATUS")
	assert.Contains(t, got, "6 total, 3 completed")
	assert.Contains(t, got, "40h total, 15h done, 25h remaining")
	assert.Contains(t, got, "5h/day")
	assert.Contains(t, got, "day 7, 4 days left")
	assert.Contains(t, got, "2025-03-11")
	assert.Contains(t, got, "high confidence")
	// 25h at 5h/day needs 5 days against 4 remaining.
	assert.Contains(t, got, "BEHIND")
	assert.Contains(t, got, "1d over")
}

func TestFormatSummaryNoEndDate(t *testing.T) {
	s := &service.ProjectSummary{
		Project:        fmtProject(),
		RemainingHours: 25,
		DaysElapsed:    3,
	}
	got := FormatSummary(s)

	assert.Contains(t, got, "no end date set")
	assert.Contains(t, got, "no measurable velocity yet")
}
