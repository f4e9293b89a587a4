package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/kiririmode/rd-burndown/internal/dateutil"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// FormatHours renders an hour quantity without trailing zero noise.
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}

// FormatHoursPtr renders a nullable estimate, "--" when missing.
func FormatHoursPtr(h *float64) string {
	if h == nil {
		return StyleDim.Render("--")
	}
	return FormatHours(*h)
}

// FormatDelta renders a signed hour movement with gain/loss coloring.
func FormatDelta(h float64) string {
	switch {
	case h > 0:
		return StyleYellow.Render("+" + FormatHours(h))
	case h < 0:
		return StyleGreen.Render(FormatHours(h))
	default:
		return StyleDim.Render("±0h")
	}
}

// FormatPercent renders a 0..1 ratio as a percentage.
func FormatPercent(r float64) string {
	return fmt.Sprintf("%.1f%%", r*100)
}

// Day renders a date in the canonical YYYY-MM-DD layout.
func Day(t time.Time) string {
	return t.Format(dateutil.Layout)
}

// HumanTimestamp returns a human-friendly relative timestamp string.
func HumanTimestamp(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 2006")
	}
}
