package formatter

import (
	"fmt"
	"strings"

	"github.com/kiririmode/rd-burndown/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
	idealMark   = "·"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	empty := width - filled

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)

	var style = StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	pctStr := fmt.Sprintf("%3.0f%%", pct*100)
	return fmt.Sprintf("[%s] %s", style.Render(bar), pctStr)
}

// FormatBurndownChart renders the remaining-hours series as one horizontal
// bar per day, scaled to the series' peak, with the ideal line's value for
// the day marked inside the bar.
func FormatBurndownChart(t *domain.Timeline, width int, excludeWeekends bool) string {
	actual := t.ActualLine()
	if len(actual) == 0 {
		return Dim("No snapshot data. Run `rd-burndown data sync` first.")
	}
	if width < 10 {
		width = 10
	}

	var peak float64
	for _, p := range actual {
		if p.Hours > peak {
			peak = p.Hours
		}
	}

	ideal := make(map[string]float64, len(actual))
	for _, p := range t.IdealLine(excludeWeekends) {
		ideal[Day(p.Date)] = p.Hours
	}

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Burndown: %s", t.ProjectName)))
	b.WriteString("\n")

	for _, p := range actual {
		var mark *float64
		if iv, ok := ideal[Day(p.Date)]; ok {
			mark = &iv
		}
		fmt.Fprintf(&b, "%s %s %s\n", Dim(Day(p.Date)), renderBar(p.Hours, mark, peak, width), FormatHours(p.Hours))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s actual remaining", StyleBlue.Render(filledBlock))
	if len(ideal) > 0 {
		fmt.Fprintf(&b, "  %s ideal", Dim(idealMark))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatScopeTrendChart renders the total-hours series, annotating days
// whose scope moved against the previous day.
func FormatScopeTrendChart(t *domain.Timeline, width int) string {
	trend := t.ScopeTrendLine()
	if len(trend) == 0 {
		return Dim("No snapshot data. Run `rd-burndown data sync` first.")
	}
	if width < 10 {
		width = 10
	}

	var peak float64
	for _, p := range trend {
		if p.Hours > peak {
			peak = p.Hours
		}
	}

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Scope trend: %s", t.ProjectName)))
	b.WriteString("\n")

	prev := trend[0].Hours
	for _, p := range trend {
		delta := ""
		if p.Hours != prev {
			delta = " " + FormatDelta(p.Hours-prev)
		}
		fmt.Fprintf(&b, "%s %s %s%s\n", Dim(Day(p.Date)), renderBar(p.Hours, nil, peak, width), FormatHours(p.Hours), delta)
		prev = p.Hours
	}
	return b.String()
}

// renderBar draws one scaled bar, optionally placing the ideal-line mark
// at its scaled position.
func renderBar(hours float64, ideal *float64, peak float64, width int) string {
	filled := 0
	if peak > 0 {
		filled = int(hours / peak * float64(width))
		if filled > width {
			filled = width
		}
	}

	markPos := -1
	if ideal != nil && peak > 0 {
		markPos = int(*ideal / peak * float64(width))
		if markPos >= width {
			markPos = width - 1
		}
	}

	var b strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i == markPos:
			b.WriteString(StyleFg.Render(idealMark))
		case i < filled:
			b.WriteString(StyleBlue.Render(filledBlock))
		default:
			b.WriteString(StyleDim.Render(emptyBlock))
		}
	}
	return b.String()
}
