package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kiririmode/rd-burndown/internal/domain"
	"github.com/kiririmode/rd-burndown/internal/service"
)

// FormatProjectList renders the cached projects as a table.
func FormatProjectList(projects []*domain.Project) string {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		end := StyleDim.Render("--")
		if p.EndDate != nil {
			end = Day(*p.EndDate)
		}
		rows = append(rows, []string{
			strconv.Itoa(p.ID),
			Bold(p.Name),
			StylePurple.Render(p.Identifier),
			end,
		})
	}

	t := &Table{
		Headers:    []string{"ID", "NAME", "IDENTIFIER", "END"},
		Rows:       rows,
		AlignRight: map[int]bool{0: true},
	}
	return t.Render()
}

// FormatProjectDetail renders one project's header block.
func FormatProjectDetail(p *domain.Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Bold(p.Name), Dim(fmt.Sprintf("(#%d, %s)", p.ID, p.Identifier)))
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n", p.Description)
	}
	if p.StartDate != nil {
		fmt.Fprintf(&b, "Start:   %s\n", Day(*p.StartDate))
	}
	if p.EndDate != nil {
		fmt.Fprintf(&b, "End:     %s\n", Day(*p.EndDate))
	}
	fmt.Fprintf(&b, "Created: %s\n", HumanTimestamp(p.CreatedOn))
	return b.String()
}

// FormatSummary renders a project's current standing.
func FormatSummary(s *service.ProjectSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n\n", Bold(s.Project.Name), TrackIndicator(s.OnTrack()))
	fmt.Fprintf(&b, "Progress   %s\n", RenderProgress(s.CompletionRate, 24))
	fmt.Fprintf(&b, "Tickets    %d total, %d completed\n", s.TotalTickets, s.CompletedTickets)
	fmt.Fprintf(&b, "Scope      %s total, %s done, %s remaining\n",
		FormatHours(s.TotalHours), FormatHours(s.CompletedHours), FormatHours(s.RemainingHours))
	fmt.Fprintf(&b, "Burn rate  %s/day\n", FormatHours(s.AverageBurnRate))

	if s.DaysRemaining != nil {
		fmt.Fprintf(&b, "Schedule   day %d, %d days left", s.DaysElapsed, *s.DaysRemaining)
		if v := s.ScheduleVariance(); v != nil {
			fmt.Fprintf(&b, " %s", varianceLabel(*v))
		}
		b.WriteString("\n")
	} else {
		fmt.Fprintf(&b, "Schedule   day %d, no end date set\n", s.DaysElapsed)
	}

	if s.Forecast.Date != nil {
		fmt.Fprintf(&b, "Forecast   done around %s %s\n",
			Day(*s.Forecast.Date), Dim("("+s.Forecast.Confidence+" confidence)"))
	} else if s.RemainingHours > 0 {
		fmt.Fprintf(&b, "Forecast   %s\n", Dim("no measurable velocity yet"))
	}

	return RenderBox("Project Status", strings.TrimRight(b.String(), "\n"))
}

func varianceLabel(days float64) string {
	switch {
	case days > 0.5:
		return StyleRed.Render(fmt.Sprintf("(~%.0fd over)", days))
	case days < -0.5:
		return StyleGreen.Render(fmt.Sprintf("(~%.0fd ahead)", -days))
	default:
		return StyleDim.Render("(on schedule)")
	}
}
