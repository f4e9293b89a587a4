package cli

import (
	"context"
	"fmt"

	"github.com/kiririmode/rd-burndown/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status PROJECT_ID",
		Short: "Show the project's current burndown standing",
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

			fmt.Printf("%s\n", formatter.FormatSummary(summary))
			return nil
		},
	}
}
