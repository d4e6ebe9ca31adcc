package commands

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/dicelog/internal/app"
)

// NewDiceCommand lists the supported dice kinds.
func NewDiceCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "dice",
		Short: "List supported dice",
		RunE: func(cmd *cobra.Command, args []string) error {
			newRenderer(cmd, container).Catalog()
			return nil
		},
	}
}
