package domain_test

import (
	"errors"
	"testing"

	"github.com/doeshing/dicelog/internal/domain"
)

func TestParseDice(t *testing.T) {
	tests := []struct {
		input   string
		want    domain.Dice
		wantErr bool
	}{
		{input: "d20", want: domain.D20},
		{input: " D6 ", want: domain.D6},
		{input: "d2(separate)", want: domain.D2Separate},
		{input: "d3", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := domain.ParseDice(tt.input)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrUnknownDice) {
					t.Fatalf("expected ErrUnknownDice, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDice error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseDice(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestCatalogIsConsistent(t *testing.T) {
	names := map[string]bool{}
	for _, d := range domain.Catalog() {
		spec := d.Spec()
		if !d.Valid() || spec.FaceCount <= 0 {
			t.Fatalf("%v has invalid spec %+v", d, spec)
		}
		if names[spec.Name] {
			t.Fatalf("duplicate name %s", spec.Name)
		}
		names[spec.Name] = true
	}
	if domain.Dice(0).Valid() || domain.Dice(42).Valid() {
		t.Fatal("values outside the catalog must be invalid")
	}
}

func TestStatsDiceDedupesFaceCounts(t *testing.T) {
	got := domain.StatsDice()
	want := []domain.Dice{domain.D2, domain.D4, domain.D6, domain.D8, domain.D10, domain.D12, domain.D20, domain.D100}
	if len(got) != len(want) {
		t.Fatalf("StatsDice() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("StatsDice()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFindTheme(t *testing.T) {
	theme, err := domain.FindTheme("matrix")
	if err != nil {
		t.Fatalf("FindTheme error: %v", err)
	}
	if theme.Colors.Charts != "#2AD03D" {
		t.Fatalf("unexpected theme %+v", theme)
	}
	if _, err := domain.FindTheme("Neon"); !errors.Is(err, domain.ErrUnknownTheme) {
		t.Fatalf("expected ErrUnknownTheme, got %v", err)
	}
	if domain.DefaultTheme().Name != "Wild Berry" {
		t.Fatalf("default theme = %s", domain.DefaultTheme().Name)
	}
}
