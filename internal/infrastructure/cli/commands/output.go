package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/dicelog/internal/app"
	"github.com/doeshing/dicelog/internal/domain"
	"github.com/doeshing/dicelog/internal/infrastructure/cli/render"
)

// AnnotationNoContainer marks commands that run without building the
// container, so they never touch the data directory.
const AnnotationNoContainer = "dicelog.no-container"

// newRenderer builds a renderer for cmd's output using the saved theme and
// the configured colour mode.
func newRenderer(cmd *cobra.Command, container *app.Container) *render.Renderer {
	return rendererFor(cmd, cmd.OutOrStdout(), container)
}

func rendererFor(cmd *cobra.Command, out io.Writer, container *app.Container) *render.Renderer {
	theme := domain.DefaultTheme()
	if container.ThemeStore != nil {
		if t, err := container.ThemeStore.Load(cmd.Context()); err == nil {
			theme = t
		} else {
			container.Logger.Warn("theme unavailable, using default", map[string]interface{}{"error": err.Error()})
		}
	}
	return render.New(out, render.Options{
		Color:    render.ColorEnabled(container.Config.Display.Color, out),
		Theme:    theme,
		BarWidth: container.Config.Display.BarWidth,
	})
}

// startSpinner animates on stderr until the returned stop is called.
// Nothing is drawn unless stderr is a terminal.
func startSpinner(cmd *cobra.Command, label string) func() {
	errOut := cmd.ErrOrStderr()
	if !render.IsTerminal(errOut) {
		return func() {}
	}
	spinner := render.NewSpinner(errOut, label)
	spinner.Start()
	return spinner.Stop
}
