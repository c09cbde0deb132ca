package library

import (
	"testing"

	"github.com/wethinkt/go-swatchsheet/internal/color"
)

func TestSearch(t *testing.T) {
	set := Set{{
		Name: "inks",
		Swatches: []Swatch{
			{Name: "PANTONE 186 C", Color: color.Spot{Name: "PANTONE 186 C"}},
			{Name: "PANTONE 186 C", Color: color.RGB{R: 200, G: 16, B: 46}},
			{Name: "PANTONE 286 C", Color: color.RGB{G: 51, B: 160}},
			{Name: "Warm Red", Color: color.RGB{R: 249, G: 66, B: 58}},
		},
	}}

	matches := Search(set, "186", DefaultMinScore)
	if len(matches) != 1 {
		t.Fatalf("Search(186) = %+v, want one match", matches)
	}
	if matches[0].Name != "PANTONE 186 C" || matches[0].Score != 1 || matches[0].Library != "inks" {
		t.Errorf("match = %+v", matches[0])
	}

	matches = Search(set, "pantone 286 c", DefaultMinScore)
	if len(matches) == 0 || matches[0].Name != "PANTONE 286 C" {
		t.Errorf("case-insensitive search = %+v", matches)
	}

	if got := Search(set, "   ", 0); got != nil {
		t.Errorf("blank query = %+v, want nil", got)
	}
	if got := Search(set, "zzzzqqq", DefaultMinScore); len(got) != 0 {
		t.Errorf("unrelated query = %+v", got)
	}
}
