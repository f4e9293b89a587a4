package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/kiririmode/rd-burndown/internal/cli/formatter"
	"github.com/kiririmode/rd-burndown/internal/dateutil"
	"github.com/kiririmode/rd-burndown/internal/domain"
	"github.com/spf13/cobra"
)

func newChartCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render burndown data",
	}

	cmd.AddCommand(
		newChartBurndownCmd(app),
		newChartScopeCmd(app),
	)

	return cmd
}

func parseRangeFlags(fromStr, toStr string) (from, to *time.Time, err error) {
	if fromStr != "" {
		t, err := time.Parse(dateutil.Layout, fromStr)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --from date %q: %w", fromStr, err)
		}
		from = &t
	}
	if toStr != "" {
		t, err := time.Parse(dateutil.Layout, toStr)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --to date %q: %w", toStr, err)
		}
		to = &t
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, fmt.Errorf("--to %s precedes --from %s", toStr, fromStr)
	}
	return from, to, nil
}

func loadTimeline(app *App, fromStr, toStr string, projectArg string) (*domain.Timeline, error) {
	projectID, err := parseProjectID(projectArg)
	if err != nil {
		return nil, err
	}
	from, to, err := parseRangeFlags(fromStr, toStr)
	if err != nil {
		return nil, err
	}
	return app.Timelines.Timeline(context.Background(), projectID, from, to)
}

func newChartBurndownCmd(app *App) *cobra.Command {
	var fromStr, toStr, export, output string
	var width int
	var weekends bool

	cmd := &cobra.Command{
		Use:   "burndown PROJECT_ID",
		Short: "Render the remaining-hours burndown chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			timeline, err := loadTimeline(app, fromStr, toStr, args[0])
			if err != nil {
				return err
			}

			if export != "" {
				return exportTimeline(timeline, export, output)
			}

			fmt.Printf("%s", formatter.FormatBurndownChart(timeline, width, !weekends))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "Range end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&export, "export", "", "Export format (csv|json) instead of rendering")
	cmd.Flags().StringVar(&output, "output", "", "Export destination file (default stdout)")
	cmd.Flags().IntVar(&width, "width", 40, "Chart bar width in cells")
	cmd.Flags().BoolVar(&weekends, "weekends", false, "Burn ideal hours on weekends too")

	return cmd
}

func newChartScopeCmd(app *App) *cobra.Command {
	var fromStr, toStr string
	var width int

	cmd := &cobra.Command{
		Use:   "scope PROJECT_ID",
		Short: "Render the total-scope trend chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			timeline, err := loadTimeline(app, fromStr, toStr, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s", formatter.FormatScopeTrendChart(timeline, width))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "Range end (YYYY-MM-DD)")
	cmd.Flags().IntVar(&width, "width", 40, "Chart bar width in cells")

	return cmd
}
