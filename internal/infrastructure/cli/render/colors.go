// Package render formats rolls, histograms and listings for the terminal.
package render

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/doeshing/dicelog/internal/domain"
)

const (
	ansiReset = "\x1b[0m"
	tierText  = "#000000"
)

var tierBackgrounds = map[domain.Tier]string{
	domain.TierLow:  "#FF6D66",
	domain.TierMid:  "#F7FF4C",
	domain.TierHigh: "#A4FF66",
}

var rainbow = []string{"#FF0000", "#FF7F00", "#FFFF00", "#00FF00", "#0000FF", "#4B0082", "#9400D3"}

// ColorEnabled resolves a display.color setting against the output stream.
// "auto" colours only terminals and honours NO_COLOR.
func ColorEnabled(mode string, w io.Writer) bool {
	switch strings.ToLower(mode) {
	case domain.ColorAlways:
		return true
	case domain.ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return IsTerminal(w)
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func rgb(hex string) (r, g, b int, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF), true
}

func foreground(hex string) string {
	r, g, b, ok := rgb(hex)
	if !ok {
		return ""
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
}

func background(hex string) string {
	r, g, b, ok := rgb(hex)
	if !ok {
		return ""
	}
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
}

// tierPaint wraps text in the tier's badge colours.
func tierPaint(text string, tier domain.Tier) string {
	if tier == domain.TierCritical {
		var b strings.Builder
		for i, ch := range text {
			b.WriteString(background(rainbow[i%len(rainbow)]))
			b.WriteString(foreground(tierText))
			b.WriteRune(ch)
		}
		b.WriteString(ansiReset)
		return b.String()
	}
	bg, ok := tierBackgrounds[tier]
	if !ok {
		return text
	}
	return background(bg) + foreground(tierText) + " " + text + " " + ansiReset
}
