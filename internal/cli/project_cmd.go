package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kiririmode/rd-burndown/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func parseProjectID(input string) (int, error) {
	id, err := strconv.Atoi(input)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid project ID %q", input)
	}
	return id, nil
}

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Inspect cached projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectTestCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects known to the local store",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Timelines.ListProjects(context.Background())
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Println("No projects cached. Run `rd-burndown data sync PROJECT_ID` first.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PROJECT_ID",
		Short: "Show project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			summary, err := app.Timelines.Summary(context.Background(), projectID)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatProjectDetail(summary.Project))
			if summary.Timeline.Current() != nil {
				fmt.Printf("%s\n", formatter.FormatSummary(summary))
			}
			return nil
		},
	}
}

func newProjectTestCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "test-connection",
		Short: "Verify tracker URL and credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Config.ValidateRedmine(); err != nil {
				return err
			}
			if err := app.Tracker.Ping(context.Background()); err != nil {
				return fmt.Errorf("connection failed: %w", err)
			}
			fmt.Printf("Connected to %s\n", app.Config.Redmine.URL)
			return nil
		},
	}
}
