package label

import (
	"testing"

	"github.com/wethinkt/go-swatchsheet/internal/color"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"PANTONE 186 C", "186 C"},
		{"Pantone", ""},
		{"pantone Red 032 C", "Red 032 C"},
		{"PantoneWarm Red", "Warm Red"},
		{"  Process Black  ", "Process Black"},
		{"Custom Color", "Custom Color"},
		{"My Pantone", "My Pantone"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveSpot(t *testing.T) {
	called := false
	lookup := func(color.Color) (string, bool) {
		called = true
		return "from library", true
	}

	got, source := ResolveSource(color.Spot{Name: "PANTONE 186 C", Type: color.SpotTypeSpot}, lookup)
	if got != "186 C" || source != SourceSpot {
		t.Errorf("ResolveSource(spot) = %q, %q; want %q, %q", got, source, "186 C", SourceSpot)
	}
	if called {
		t.Error("lookup should not be consulted for a spot ink")
	}
}

func TestResolveProcessSpotUsesLookup(t *testing.T) {
	lookup := func(c color.Color) (string, bool) {
		if s, ok := c.(color.Spot); ok && s.Name == "Brand Blue" {
			return "PANTONE 286 C", true
		}
		return "", false
	}

	got, source := ResolveSource(color.Spot{Name: "Brand Blue", Type: color.SpotTypeProcess}, lookup)
	if got != "286 C" || source != SourceLibrary {
		t.Errorf("ResolveSource() = %q, %q; want %q, %q", got, source, "286 C", SourceLibrary)
	}
}

func TestResolveFallback(t *testing.T) {
	miss := func(color.Color) (string, bool) { return "", false }

	tests := []struct {
		name   string
		color  color.Color
		lookup Lookup
	}{
		{"unrecognized spot", color.Spot{Name: "Reg", Type: color.SpotTypeRegistration}, miss},
		{"rgb no match", color.RGB{R: 1, G: 2, B: 3}, miss},
		{"nil lookup", color.CMYK{K: 50}, nil},
		{"unknown", color.Unknown{Kind: "gradient"}, miss},
		{"empty name counts as miss", color.RGB{}, func(color.Color) (string, bool) { return "", true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, source := ResolveSource(tt.color, tt.lookup)
			if got != CustomColor || source != SourceCustom {
				t.Errorf("ResolveSource() = %q, %q; want %q, %q", got, source, CustomColor, SourceCustom)
			}
		})
	}
}

func TestResolveLibraryMatch(t *testing.T) {
	lookup := func(c color.Color) (string, bool) {
		if color.Equal(c, color.RGB{R: 0, G: 0, B: 0}) {
			return " Black ", true
		}
		return "", false
	}
	if got := Resolve(color.RGB{}, lookup); got != "Black" {
		t.Errorf("Resolve() = %q, want %q", got, "Black")
	}
}

func TestChain(t *testing.T) {
	first := func(c color.Color) (string, bool) {
		if color.Key(c) == "1-0-0" {
			return "one", true
		}
		return "", false
	}
	second := func(color.Color) (string, bool) { return "fallback", true }

	chain := Chain(nil, first, second)

	if name, ok := chain(color.RGB{R: 1}); !ok || name != "one" {
		t.Errorf("chain(1) = %q, %v", name, ok)
	}
	if name, ok := chain(color.RGB{R: 2}); !ok || name != "fallback" {
		t.Errorf("chain(2) = %q, %v", name, ok)
	}
	if _, ok := Chain()(color.RGB{}); ok {
		t.Error("empty chain should not match")
	}
}
