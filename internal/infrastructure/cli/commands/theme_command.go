package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/dicelog/internal/app"
	"github.com/doeshing/dicelog/internal/domain"
)

// NewThemeCommand creates the theme command with all subcommands
func NewThemeCommand(container *app.Container) *cobra.Command {
	themeCmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the colour theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showCurrentTheme(cmd, container)
		},
	}

	themeCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the selected theme",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showCurrentTheme(cmd, container)
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List built-in themes",
			RunE: func(cmd *cobra.Command, args []string) error {
				current, err := container.ThemeStore.Load(cmd.Context())
				if err != nil {
					return err
				}
				newRenderer(cmd, container).Themes(current)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <name>",
			Short: "Select a built-in theme by name",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				theme, err := domain.FindTheme(strings.Join(args, " "))
				if err != nil {
					return err
				}
				if err := container.ThemeStore.Save(cmd.Context(), theme); err != nil {
					return fmt.Errorf("save theme: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", theme.Name)
				return nil
			},
		},
	)

	return themeCmd
}

func showCurrentTheme(cmd *cobra.Command, container *app.Container) error {
	theme, err := container.ThemeStore.Load(cmd.Context())
	if err != nil {
		return err
	}
	newRenderer(cmd, container).Theme(theme)
	return nil
}
