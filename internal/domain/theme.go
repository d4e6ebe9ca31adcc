package domain

import (
	"fmt"
	"strings"
)

// ThemeColors are hex colour codes such as "#1D1D1D".
type ThemeColors struct {
	Background   string `json:"background"`
	Charts       string `json:"charts"`
	ContrastText string `json:"contrastText"`
}

// Theme is a named colour scheme persisted as the user's selection.
type Theme struct {
	Name   string      `json:"name"`
	Colors ThemeColors `json:"colors"`
}

const (
	colorBlack = "#1D1D1D"
	colorGold  = "#CEB888"
	colorWhite = "#FFFFFF"
)

var themes = []Theme{
	{Name: "Wild Berry", Colors: ThemeColors{Background: "#02A5C0", Charts: "#A67BB0", ContrastText: colorBlack}},
	{Name: "My Wedding", Colors: ThemeColors{Background: "#572123", Charts: "#5392b1", ContrastText: colorWhite}},
	{Name: "Happily Ever Peak", Colors: ThemeColors{Background: "#E0BFB8", Charts: colorGold, ContrastText: colorBlack}},
	{Name: "Boiler Up", Colors: ThemeColors{Background: colorBlack, Charts: colorGold, ContrastText: colorWhite}},
	{Name: "#PSL", Colors: ThemeColors{Background: "#d27254", Charts: "#ecd292", ContrastText: colorBlack}},
	{Name: "Snow Leopard", Colors: ThemeColors{Background: colorBlack, Charts: "#dfe2de", ContrastText: colorWhite}},
	{Name: "Captain America", Colors: ThemeColors{Background: "#162CA2", Charts: "#C31D10", ContrastText: colorWhite}},
	{Name: "Matrix", Colors: ThemeColors{Background: colorBlack, Charts: "#2AD03D", ContrastText: colorWhite}},
	{Name: "Hot Dog Stand", Colors: ThemeColors{Background: "#FF0000", Charts: "#FFFF00", ContrastText: colorBlack}},
}

// Themes returns the built-in themes; the first one is the default.
func Themes() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// DefaultTheme returns the theme used when none has been selected.
func DefaultTheme() Theme {
	return themes[0]
}

// FindTheme looks a theme up by name, ignoring case.
func FindTheme(name string) (Theme, error) {
	for _, t := range themes {
		if strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
}
