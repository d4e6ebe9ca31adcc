package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/dicelog/internal/app"
	"github.com/doeshing/dicelog/internal/infrastructure/cli/commands"
	"github.com/doeshing/dicelog/internal/version"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. The container is built after
// argument parsing, and only for commands that need it; help, version and
// config path leave the data directory untouched. The returned cleanup
// flushes the ledger writer and closes storage; call it after Execute returns.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, func()) {
	// Commands hold this pointer and read its fields when they run.
	container := &app.Container{}
	built := false

	root := &cobra.Command{
		Use:         "dicelog",
		Short:       "dicelog - dice roller with a per-day roll ledger",
		Long:        "dicelog rolls dice, records every roll in a per-day ledger and draws outcome histograms over date ranges.",
		Version:     version.Version,
		Annotations: map[string]string{commands.AnnotationNoContainer: "true"},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if built || cmd.Annotations[commands.AnnotationNoContainer] == "true" {
				return nil
			}
			buildCtx := cmd.Context()
			if buildCtx == nil {
				buildCtx = ctx
			}
			c, err := app.BuildContainer(buildCtx, app.Options{Verbose: opts.Verbose})
			if err != nil {
				return err
			}
			*container = *c
			built = true
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Parsed early by main; declared here so cobra accepts it.
	root.PersistentFlags().BoolP("verbose", "v", opts.Verbose, "Enable debug logging")

	root.AddCommand(commands.NewRollCommand(container))
	root.AddCommand(commands.NewStatsCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewSessionCommand(container))
	root.AddCommand(commands.NewDiceCommand(container))
	root.AddCommand(commands.NewThemeCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewVersionCommand())

	cleanup := func() {
		if built {
			container.Close()
		}
	}
	return root, cleanup
}
