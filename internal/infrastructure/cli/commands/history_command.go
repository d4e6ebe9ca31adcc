package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/dicelog/internal/app"
	"github.com/doeshing/dicelog/internal/domain"
	"github.com/doeshing/dicelog/internal/infrastructure/cli/helpers"
	"github.com/doeshing/dicelog/internal/infrastructure/export"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded rolls",
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryDaysCommand(container),
		newHistoryExportCommand(container),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container *app.Container) *cobra.Command {
	var (
		dateRange helpers.DateRange
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent rolls in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 {
				return errors.New(ErrInvalidLimit)
			}
			if container.StatsService == nil {
				return errors.New(ErrStatsServiceUnavailable)
			}

			// A bare list shows today only.
			bounds := dateRange.WithDefaults(container.Today.String(), container.Today)
			events, err := container.StatsService.QueryRange(cmd.Context(), bounds.From, bounds.To)
			if err != nil {
				return err
			}

			newRenderer(cmd, container).Events(lastEvents(events, limit))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateRange.From, "from", "", "First day of the range (default today)")
	cmd.Flags().StringVar(&dateRange.To, "to", "", "Last day of the range (default today)")
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show")
	return cmd
}

// newHistoryDaysCommand creates the 'history days' subcommand
func newHistoryDaysCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "days",
		Short: "List days that have a ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := container.Ledger.Days(cmd.Context())
			if err != nil {
				return err
			}
			newRenderer(cmd, container).Days(days)
			return nil
		},
	}
}

// newHistoryExportCommand creates the 'history export' subcommand
func newHistoryExportCommand(container *app.Container) *cobra.Command {
	var dateRange helpers.DateRange

	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Export rolls as JSON lines (.gz and .xz are compressed)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.StatsService == nil {
				return errors.New(ErrStatsServiceUnavailable)
			}

			bounds := dateRange.WithDefaults(container.Config.Stats.DefaultStart, container.Today)
			events, err := container.StatsService.QueryRange(cmd.Context(), bounds.From, bounds.To)
			if err != nil {
				return err
			}

			path := args[0]
			if err := export.ToFile(path, events); err != nil {
				return fmt.Errorf("export history: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d roll(s) to %s (%s)\n", len(events), path, export.CompressionFor(path))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateRange.From, "from", "", "First day of the range (default stats.default_start)")
	cmd.Flags().StringVar(&dateRange.To, "to", "", "Last day of the range (default today)")
	return cmd
}

// lastEvents keeps the newest limit events, preserving order.
func lastEvents(events []domain.RollEvent, limit int) []domain.RollEvent {
	if len(events) <= limit {
		return events
	}
	return events[len(events)-limit:]
}
