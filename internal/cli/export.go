package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/kiririmode/rd-burndown/internal/dateutil"
	"github.com/kiririmode/rd-burndown/internal/domain"
)

// exportTimeline writes the snapshot series in the requested format to the
// output path, or stdout when the path is empty.
func exportTimeline(t *domain.Timeline, format, output string) error {
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "csv":
		return exportCSV(w, t)
	case "json":
		return exportJSON(w, t)
	default:
		return fmt.Errorf("unknown export format %q (want csv or json)", format)
	}
}

func exportCSV(w io.Writer, t *domain.Timeline) error {
	cw := csv.NewWriter(w)
	header := []string{
		"date", "total_hours", "completed_hours", "remaining_hours",
		"added_hours", "changed_hours", "removed_hours",
		"active_count", "completed_count", "unestimated_count",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, s := range t.Snapshots {
		row := []string{
			s.Date.Format(dateutil.Layout),
			formatFloat(s.TotalHours),
			formatFloat(s.CompletedHours),
			formatFloat(s.RemainingHours),
			formatFloat(s.AddedHours),
			formatFloat(s.ChangedHours),
			formatFloat(s.RemovedHours),
			strconv.Itoa(s.ActiveCount),
			strconv.Itoa(s.CompletedCount),
			strconv.Itoa(s.UnestimatedCount),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type snapshotJSON struct {
	Date             string  `json:"date"`
	TotalHours       float64 `json:"total_hours"`
	CompletedHours   float64 `json:"completed_hours"`
	RemainingHours   float64 `json:"remaining_hours"`
	AddedHours       float64 `json:"added_hours"`
	ChangedHours     float64 `json:"changed_hours"`
	RemovedHours     float64 `json:"removed_hours"`
	ActiveCount      int     `json:"active_count"`
	CompletedCount   int     `json:"completed_count"`
	UnestimatedCount int     `json:"unestimated_count"`
}

type timelineJSON struct {
	ProjectID   int            `json:"project_id"`
	ProjectName string         `json:"project_name"`
	Snapshots   []snapshotJSON `json:"snapshots"`
}

func exportJSON(w io.Writer, t *domain.Timeline) error {
	out := timelineJSON{
		ProjectID:   t.ProjectID,
		ProjectName: t.ProjectName,
		Snapshots:   make([]snapshotJSON, 0, len(t.Snapshots)),
	}
	for _, s := range t.Snapshots {
		out.Snapshots = append(out.Snapshots, snapshotJSON{
			Date:             s.Date.Format(dateutil.Layout),
			TotalHours:       s.TotalHours,
			CompletedHours:   s.CompletedHours,
			RemainingHours:   s.RemainingHours,
			AddedHours:       s.AddedHours,
			ChangedHours:     s.ChangedHours,
			RemovedHours:     s.RemovedHours,
			ActiveCount:      s.ActiveCount,
			CompletedCount:   s.CompletedCount,
			UnestimatedCount: s.UnestimatedCount,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
