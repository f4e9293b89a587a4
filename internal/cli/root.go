package cli

import (
	"context"

	"github.com/kiririmode/rd-burndown/internal/config"
	"github.com/kiririmode/rd-burndown/internal/service"
	"github.com/spf13/cobra"
)

// Pinger checks tracker connectivity without fetching data.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Sync      service.SyncService
	Timelines service.TimelineService
	Cache     service.CacheService
	Tracker   Pinger
	Config    *config.Config
}

// NewRootCmd creates the top-level "rd-burndown" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "rd-burndown",
		Short: "Burndown chart data engine for Redmine projects",
	}

	root.AddCommand(
		newProjectCmd(app),
		newDataCmd(app),
		newChartCmd(app),
		newScopeCmd(app),
		newStatusCmd(app),
	)

	return root
}
