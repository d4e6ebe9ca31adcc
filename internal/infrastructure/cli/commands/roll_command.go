package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/doeshing/dicelog/internal/app"
	"github.com/doeshing/dicelog/internal/domain"
	"github.com/doeshing/dicelog/internal/infrastructure/cli/render"
)

// NewRollCommand creates the roll command
func NewRollCommand(container *app.Container) *cobra.Command {
	var (
		count    int
		modifier int
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "roll [dice]",
		Short: "Roll dice and record the result in today's ledger",
		Long: "Roll one or more dice of the same kind. The dice name defaults to " +
			"roll.default_dice from the configuration (e.g. d20, d6, d2(separate)).",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := container.Config.Roll.DefaultDice
			if len(args) == 1 {
				name = args[0]
			}
			return rollDice(cmd.Context(), newRenderer(cmd, container), container, name, count, modifier, !dryRun)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of dice to roll")
	cmd.Flags().IntVarP(&modifier, "modifier", "m", 0, "Flat modifier added to the total")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Roll without recording to the ledger")
	return cmd
}

// rollDice rolls and, when record is set, appends the event to the ledger.
// A roll that could not be recorded is still shown before the error is returned.
func rollDice(ctx context.Context, r *render.Renderer, container *app.Container, name string, count, modifier int, record bool) error {
	if container.RollService == nil {
		return errors.New(ErrRollServiceUnavailable)
	}

	dice, err := domain.ParseDice(name)
	if err != nil {
		return err
	}

	if !record {
		event, err := container.RollService.Roll(dice, count, modifier)
		if err != nil {
			return err
		}
		r.Roll(event)
		return nil
	}

	event, err := container.RollService.RollAndRecord(ctx, dice, count, modifier)
	if event.ID != "" {
		r.Roll(event)
	}
	return err
}
