package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/dicelog/internal/app"
	"github.com/doeshing/dicelog/internal/infrastructure/cli/helpers"
)

// NewStatsCommand creates the stats command
func NewStatsCommand(container *app.Container) *cobra.Command {
	var (
		dateRange helpers.DateRange
		dice      string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show outcome histograms for a date range",
		Long: "Aggregate every recorded roll between --from and --to (inclusive, YYYY-MM-DD) " +
			"and draw one histogram per dice kind. Missing or malformed bounds fall back to today.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.StatsService == nil {
				return errors.New(ErrStatsServiceUnavailable)
			}
			faceCount, err := helpers.ParseDiceFilter(dice)
			if err != nil {
				return err
			}

			bounds := dateRange.WithDefaults(container.Config.Stats.DefaultStart, container.Today)
			stop := startSpinner(cmd, fmt.Sprintf("Loading %s .. %s", bounds.From, bounds.To))
			report, err := container.StatsService.Report(cmd.Context(), bounds.From, bounds.To)
			stop()
			if err != nil {
				return err
			}

			newRenderer(cmd, container).Report(report, faceCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateRange.From, "from", "", "First day of the range (default stats.default_start)")
	cmd.Flags().StringVar(&dateRange.To, "to", "", "Last day of the range (default today)")
	cmd.Flags().StringVar(&dice, "dice", "", "Only show the histogram for this dice kind")
	return cmd
}
