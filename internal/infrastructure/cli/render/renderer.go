package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/doeshing/dicelog/internal/domain"
)

const (
	barGlyph        = "█"
	eventTimeLayout = "2006-01-02 15:04"
)

// Options configures a Renderer.
type Options struct {
	Color    bool
	Theme    domain.Theme
	BarWidth int
	// Location is used for event timestamps; nil means time.Local.
	Location *time.Location
	// Now anchors relative times; nil means time.Now.
	Now func() time.Time
}

// Renderer writes human-readable output.
type Renderer struct {
	out     io.Writer
	opts    Options
	printer *message.Printer
}

// New builds a Renderer writing to out.
func New(out io.Writer, opts Options) *Renderer {
	if opts.BarWidth <= 0 {
		opts.BarWidth = domain.DefaultBarWidth
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Theme.Name == "" {
		opts.Theme = domain.DefaultTheme()
	}
	return &Renderer{out: out, opts: opts, printer: message.NewPrinter(language.English)}
}

// Roll prints one roll with every value badged by tier. Combined dice show a
// single sum; individual dice show each die with the modifier applied.
func (r *Renderer) Roll(event domain.RollEvent) {
	fmt.Fprintf(r.out, "Rolled %d x %s%s\n", event.DiceCount, event.Dice.Name, modifierSuffix(event.Modifier))

	if event.Dice.Combined() {
		terms := make([]string, 0, len(event.Rolls))
		for _, roll := range event.Rolls {
			terms = append(terms, r.value(roll, domain.Classify(roll, event.Dice, false)))
		}
		fmt.Fprintf(r.out, "  %s %s = %s\n",
			strings.Join(terms, " + "),
			modifierTerm(event.Modifier),
			r.value(event.Total, domain.Classify(event.Total, event.Dice, true)))
		return
	}

	for _, roll := range event.Rolls {
		total := roll + event.Modifier
		fmt.Fprintf(r.out, "  %s %s = %s\n",
			r.value(roll, domain.Classify(roll, event.Dice, false)),
			modifierTerm(event.Modifier),
			r.value(total, domain.Classify(total, event.Dice, true)))
	}
	if len(event.Rolls) > 1 {
		fmt.Fprintf(r.out, "  Total: %d\n", event.Total)
	}
}

// Report prints the range header and the histograms, optionally only the one
// for faceCount (0 prints all).
func (r *Renderer) Report(report domain.StatsReport, faceCount int) {
	if len(report.Days) == 0 {
		fmt.Fprintln(r.out, "No days in range.")
		return
	}
	first, last := report.Days[0], report.Days[len(report.Days)-1]
	fmt.Fprintf(r.out, "%s .. %s  %s\n", first, last,
		r.printer.Sprintf("%d day(s), %d roll(s)", len(report.Days), report.Events))

	for _, h := range report.Histograms {
		if faceCount > 0 && h.Dice.FaceCount != faceCount {
			continue
		}
		fmt.Fprintln(r.out)
		r.Histogram(h)
	}
}

// Histogram prints one bar per face scaled to the configured width.
func (r *Renderer) Histogram(h domain.Histogram) {
	fmt.Fprintf(r.out, "%s  %s\n", h.Dice.Name, r.printer.Sprintf("Total Rolls (%d)", h.Total()))

	peak := h.Max()
	width := r.opts.BarWidth
	labelWidth := len(strconv.Itoa(len(h.Faces)))
	for _, f := range h.Faces {
		n := barLength(f.Count, peak, width)
		bar := r.chart(strings.Repeat(barGlyph, n))
		fmt.Fprintf(r.out, "  %*d | %s%s %s\n", labelWidth, f.Face, bar, strings.Repeat(" ", width-n), r.printer.Sprintf("%d", f.Count))
	}
	if h.Rejected > 0 {
		fmt.Fprintf(r.out, "  (%s)\n", r.printer.Sprintf("%d out-of-range outcome(s) ignored", h.Rejected))
	}
}

// Events prints ledger entries, newest last, with relative times.
func (r *Renderer) Events(events []domain.RollEvent) {
	if len(events) == 0 {
		fmt.Fprintln(r.out, "No rolls recorded.")
		return
	}
	now := r.opts.Now()
	for _, e := range events {
		label := fmt.Sprintf("%dx%s", e.DiceCount, e.Dice.Name)
		fmt.Fprintf(r.out, "%s  %-15s %v%s = %d  (%s)\n",
			e.Timestamp.In(r.opts.Location).Format(eventTimeLayout),
			label,
			e.Rolls,
			modifierSuffix(e.Modifier),
			e.Total,
			humanize.RelTime(e.Timestamp, now, "ago", "from now"))
	}
}

// Days prints the recorded days and a total.
func (r *Renderer) Days(days []domain.Day) {
	for _, d := range days {
		fmt.Fprintln(r.out, d)
	}
	fmt.Fprintln(r.out, r.printer.Sprintf("%d day(s) recorded", len(days)))
}

// Catalog prints the supported dice.
func (r *Renderer) Catalog() {
	for _, d := range domain.Catalog() {
		spec := d.Spec()
		mode := "combined"
		if !spec.Combined() {
			mode = "individual"
		}
		marker := ""
		if d == domain.DefaultDice {
			marker = " (default)"
		}
		fmt.Fprintf(r.out, "%-13s %3d faces  %s%s\n", spec.Name, spec.FaceCount, mode, marker)
	}
}

// Themes prints the built-in themes, marking the current one.
func (r *Renderer) Themes(current domain.Theme) {
	for _, t := range domain.Themes() {
		marker := " "
		if t.Name == current.Name {
			marker = "*"
		}
		fmt.Fprintf(r.out, "%s %-18s background %s  charts %s%s\n", marker, t.Name, t.Colors.Background, t.Colors.Charts, r.swatch(t))
	}
}

// Theme prints a single theme.
func (r *Renderer) Theme(t domain.Theme) {
	fmt.Fprintf(r.out, "%s%s\n", t.Name, r.swatch(t))
	fmt.Fprintf(r.out, "  background    %s\n", t.Colors.Background)
	fmt.Fprintf(r.out, "  charts        %s\n", t.Colors.Charts)
	fmt.Fprintf(r.out, "  contrast text %s\n", t.Colors.ContrastText)
}

func (r *Renderer) value(v int, tier domain.Tier) string {
	text := strconv.Itoa(v)
	if !r.opts.Color {
		return text
	}
	return tierPaint(text, tier)
}

func (r *Renderer) chart(bar string) string {
	if !r.opts.Color || bar == "" {
		return bar
	}
	return foreground(r.opts.Theme.Colors.Charts) + bar + ansiReset
}

func (r *Renderer) swatch(t domain.Theme) string {
	if !r.opts.Color {
		return ""
	}
	return "  " + background(t.Colors.Background) + "  " + background(t.Colors.Charts) + "  " + ansiReset
}

// barLength scales count to width; any non-zero count gets at least one cell.
func barLength(count, peak, width int) int {
	if peak <= 0 || count <= 0 {
		return 0
	}
	n := count * width / peak
	if n == 0 {
		n = 1
	}
	return n
}

func modifierSuffix(m int) string {
	if m == 0 {
		return ""
	}
	return fmt.Sprintf("%+d", m)
}

func modifierTerm(m int) string {
	if m < 0 {
		return fmt.Sprintf("- %d", -m)
	}
	return fmt.Sprintf("+ %d", m)
}
