package cli

import (
	"fmt"

	"github.com/kiririmode/rd-burndown/internal/cli/formatter"
	"github.com/kiririmode/rd-burndown/internal/domain"
	"github.com/spf13/cobra"
)

func newScopeCmd(app *App) *cobra.Command {
	var fromStr, toStr, impact string

	cmd := &cobra.Command{
		Use:   "scope PROJECT_ID",
		Short: "List scope change events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			timeline, err := loadTimeline(app, fromStr, toStr, args[0])
			if err != nil {
				return err
			}

			events := timeline.ScopeChanges
			if impact != "" {
				events = filterByImpact(events, domain.ImpactLevel(impact))
			}

			fmt.Printf("%s\n", formatter.FormatScopeChanges(events))
			if len(events) > 0 {
				fmt.Printf("%s\n", formatter.FormatScopeSummary(events))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "Range end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&impact, "impact", "", "Only show events at this impact level (low|medium|high)")

	return cmd
}

func filterByImpact(events []*domain.ScopeChangeEvent, level domain.ImpactLevel) []*domain.ScopeChangeEvent {
	var out []*domain.ScopeChangeEvent
	for _, e := range events {
		if e.Impact == level {
			out = append(out, e)
		}
	}
	return out
}
