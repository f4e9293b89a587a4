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

func newDataCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Manage the local data store",
	}

	cmd.AddCommand(
		newDataSyncCmd(app),
		newDataStatusCmd(app),
		newDataClearCmd(app),
	)

	return cmd
}

func newDataSyncCmd(app *App) *cobra.Command {
	var full bool
	var sinceStr string

	cmd := &cobra.Command{
		Use:   "sync PROJECT_ID",
		Short: "Fetch tracker changes and rebuild affected snapshots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			if err := app.Config.ValidateRedmine(); err != nil {
				return err
			}

			mode := domain.SyncIncremental
			if full {
				mode = domain.SyncFull
			}

			var since *time.Time
			if sinceStr != "" {
				t, err := time.Parse(dateutil.Layout, sinceStr)
				if err != nil {
					return fmt.Errorf("invalid --since date %q: %w", sinceStr, err)
				}
				if full {
					return fmt.Errorf("--since only applies to incremental sync")
				}
				since = &t
			}

			report, err := app.Sync.Run(context.Background(), projectID, mode, since)
			if err != nil {
				return err
			}

			fmt.Printf("%s", formatter.FormatSyncReport(report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Discard derived data and rebuild from scratch")
	cmd.Flags().StringVar(&sinceStr, "since", "", "Override the incremental cutoff (YYYY-MM-DD)")

	return cmd
}

func newDataStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status PROJECT_ID",
		Short: "Show what the local store holds for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			status, err := app.Cache.Status(context.Background(), projectID, app.Config.Data.CacheTTL)
			if err != nil {
				return err
			}

			fmt.Printf("%s", formatter.FormatCacheStatus(status))
			return nil
		},
	}
}

func newDataClearCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear PROJECT_ID",
		Short: "Remove everything stored for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseProjectID(args[0])
			if err != nil {
				return err
			}
			if !force {
				return fmt.Errorf("refusing to clear project %d without --force", projectID)
			}
			if err := app.Cache.Clear(context.Background(), projectID); err != nil {
				return err
			}

			fmt.Printf("Cleared project %d\n", projectID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Confirm removal")

	return cmd
}
