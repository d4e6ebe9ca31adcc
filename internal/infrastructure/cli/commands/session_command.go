package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/dicelog/internal/app"
	"github.com/doeshing/dicelog/internal/application/stats"
	"github.com/doeshing/dicelog/internal/infrastructure/cli/helpers"
	"github.com/doeshing/dicelog/internal/infrastructure/cli/render"
)

const sessionHelp = `Commands:
  roll [dice] [count] [modifier]  roll and record (e.g. roll d6 3 +2)
  range [from] [to]               show or change the stats range (YYYY-MM-DD)
  stats [dice]                    histograms for the current range
  days                            days that have a ledger
  help                            this text
  quit                            leave the session
`

// NewSessionCommand creates the interactive session command
func NewSessionCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Interactive roll and stats session",
		Long: "Read commands from stdin. The stats for the selected range are refreshed in the " +
			"background after every roll and range change; only the newest refresh is shown.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.StatsService == nil {
				return errors.New(ErrStatsServiceUnavailable)
			}
			if container.RollService == nil {
				return errors.New(ErrRollServiceUnavailable)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			out := cmd.OutOrStdout()
			s := &session{
				ctx:       ctx,
				out:       out,
				errOut:    cmd.ErrOrStderr(),
				renderer:  rendererFor(cmd, out, container),
				container: container,
				refresher: stats.NewRefresher(container.StatsService),
				from:      container.Config.Stats.DefaultStart,
				to:        container.Today.String(),
				prompt:    render.IsTerminal(out),
			}
			return s.run(cmd.InOrStdin())
		},
	}
}

type session struct {
	ctx       context.Context
	out       io.Writer
	errOut    io.Writer
	renderer  *render.Renderer
	container *app.Container
	refresher *stats.Refresher

	from, to string
	ticket   stats.Ticket
	latest   *stats.Result

	// waiting is set while a stats command is blocked on a refresh.
	waiting   bool
	faceCount int
	stopSpin  func()
	prompt    bool
}

func (s *session) run(in io.Reader) error {
	lines := readLines(s.ctx, in)
	s.refresh()
	s.showPrompt()

	for {
		input := lines
		if s.waiting {
			input = nil
		}

		select {
		case <-s.ctx.Done():
			return s.ctx.Err()
		case line, ok := <-input:
			if !ok {
				return nil
			}
			if s.handle(strings.Fields(line)) {
				return nil
			}
			if !s.waiting {
				s.showPrompt()
			}
		case res := <-s.refresher.Results():
			if !s.refresher.Current(res.Ticket) {
				continue
			}
			s.latest = &res
			if s.waiting {
				s.stopSpin()
				s.waiting = false
				s.showReport()
				s.showPrompt()
			}
		}
	}
}

// handle executes one command line and reports whether the session should end.
func (s *session) handle(fields []string) bool {
	if len(fields) == 0 {
		return false
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return true
	case "help", "?":
		fmt.Fprint(s.out, sessionHelp)
	case "roll":
		s.roll(fields[1:])
	case "range":
		s.setRange(fields[1:])
	case "stats":
		s.stats(fields[1:])
	case "days":
		days, err := s.container.Ledger.Days(s.ctx)
		if err != nil {
			s.fail(err)
			return false
		}
		s.renderer.Days(days)
	default:
		fmt.Fprintf(s.out, "unknown command %q (try help)\n", fields[0])
	}
	return false
}

func (s *session) roll(args []string) {
	name := s.container.Config.Roll.DefaultDice
	count, modifier := 1, 0
	var err error

	if len(args) > 0 {
		name = args[0]
	}
	if len(args) > 1 {
		if count, err = strconv.Atoi(args[1]); err != nil {
			s.fail(fmt.Errorf("invalid count %q", args[1]))
			return
		}
	}
	if len(args) > 2 {
		if modifier, err = strconv.Atoi(args[2]); err != nil {
			s.fail(fmt.Errorf("invalid modifier %q", args[2]))
			return
		}
	}

	if err := rollDice(s.ctx, s.renderer, s.container, name, count, modifier, true); err != nil {
		s.fail(err)
		return
	}
	s.refresh()
}

func (s *session) setRange(args []string) {
	switch len(args) {
	case 0:
	case 1:
		s.from, s.to = args[0], s.container.Today.String()
		s.refresh()
	default:
		s.from, s.to = args[0], args[1]
		s.refresh()
	}
	fmt.Fprintf(s.out, "Range: %s .. %s\n", s.from, s.to)
}

func (s *session) stats(args []string) {
	faceCount := 0
	if len(args) > 0 {
		n, err := helpers.ParseDiceFilter(args[0])
		if err != nil {
			s.fail(err)
			return
		}
		faceCount = n
	}
	s.faceCount = faceCount

	if s.latest != nil && s.latest.Ticket == s.ticket {
		s.showReport()
		return
	}

	s.waiting = true
	s.stopSpin = func() {}
	if s.prompt {
		spinner := render.NewSpinner(s.errOut, "Loading stats")
		spinner.Start()
		s.stopSpin = spinner.Stop
	}
}

func (s *session) refresh() {
	s.ticket = s.refresher.Request(s.ctx, s.from, s.to)
}

func (s *session) showReport() {
	if s.latest.Err != nil {
		s.fail(s.latest.Err)
		return
	}
	s.renderer.Report(s.latest.Report, s.faceCount)
}

func (s *session) showPrompt() {
	if s.prompt {
		fmt.Fprint(s.out, "dicelog> ")
	}
}

func (s *session) fail(err error) {
	fmt.Fprintf(s.out, "error: %v\n", err)
}

// readLines feeds stdin lines to a channel until EOF or ctx ends.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}
