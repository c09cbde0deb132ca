package layout

import (
	"errors"
	"testing"

	"github.com/wethinkt/go-swatchsheet/internal/color"
)

func rgbs(n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		out[i] = color.RGB{R: i}
	}
	return out
}

func TestPlanWrapBoundary(t *testing.T) {
	cfg := Config{SwatchSize: 50, Padding: 30, StrokeWidth: 1, LabelOffset: 5}
	got := Plan(rgbs(3), 180, cfg)

	want := []Point{{0, 0}, {80, 0}, {0, -80}}
	if len(got) != len(want) {
		t.Fatalf("Plan() returned %d placements, want %d", len(got), len(want))
	}
	for i, p := range got {
		if p.Rect != want[i] {
			t.Errorf("placement %d rect = %v, want %v", i, p.Rect, want[i])
		}
		if p.Size != 50 {
			t.Errorf("placement %d size = %v, want 50", i, p.Size)
		}
	}
}

func TestPlanDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.SwatchSize != 50 || cfg.StrokeWidth != 1 || cfg.Padding != 30 || cfg.LabelOffset != 5 {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestPlanProvisionalLabel(t *testing.T) {
	cfg := DefaultConfig()
	got := Plan(rgbs(2), 1000, cfg)

	if got[1].Label != (Point{X: 80, Y: -65}) {
		t.Errorf("provisional label = %v, want {80 -65}", got[1].Label)
	}
}

func TestCenter(t *testing.T) {
	cfg := DefaultConfig()
	p := Plan(rgbs(1), 1000, cfg)[0]

	got := p.Center(20, cfg)
	want := Point{X: 15, Y: -55}
	if got != want {
		t.Errorf("Center(20) = %v, want %v", got, want)
	}

	wide := p.Center(80, cfg)
	if wide.X != -15 {
		t.Errorf("Center(80).X = %v, want -15", wide.X)
	}
}

func TestPlanIndependentOfColors(t *testing.T) {
	cfg := DefaultConfig()
	a := Plan(rgbs(7), 300, cfg)
	b := Plan([]color.Color{
		color.CMYK{K: 100},
		color.Spot{Name: "x"},
		color.Unknown{Kind: "gradient"},
		color.RGB{R: 1},
		color.RGB{R: 2},
		color.RGB{R: 3},
		color.RGB{R: 4},
	}, 300, cfg)

	for i := range a {
		if a[i].Rect != b[i].Rect || a[i].Label != b[i].Label || a[i].Size != b[i].Size {
			t.Errorf("placement %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestPlanDistinctSlotsAndOrder(t *testing.T) {
	colors := rgbs(12)
	got := Plan(colors, 260, DefaultConfig())

	seen := map[Point]bool{}
	for i, p := range got {
		if seen[p.Rect] {
			t.Errorf("slot %v used twice", p.Rect)
		}
		seen[p.Rect] = true
		if !color.Equal(p.Color, colors[i]) {
			t.Errorf("placement %d color = %v, want %v", i, p.Color, colors[i])
		}
	}
}

func TestPlanNarrowWidth(t *testing.T) {
	got := Plan(rgbs(3), 10, DefaultConfig())
	for i, p := range got {
		want := Point{X: 0, Y: -80 * float64(i)}
		if p.Rect != want {
			t.Errorf("placement %d rect = %v, want %v", i, p.Rect, want)
		}
	}
}

func TestPlanEmpty(t *testing.T) {
	if got := Plan(nil, 500, DefaultConfig()); len(got) != 0 {
		t.Errorf("Plan(nil) = %v, want empty", got)
	}
}

func TestColumns(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		width float64
		want  int
	}{
		{10, 1},
		{180, 2},
		{210, 3},
		{612, 8},
	}
	for _, tt := range tests {
		if got := Columns(tt.width, cfg); got != tt.want {
			t.Errorf("Columns(%v) = %d, want %d", tt.width, got, tt.want)
		}

		// Columns must agree with where Plan wraps.
		plan := Plan(rgbs(tt.want+1), tt.width, cfg)
		if plan[tt.want].Rect.Y != -cfg.Pitch() || plan[tt.want].Rect.X != 0 {
			t.Errorf("width %v: swatch %d at %v, expected start of second row", tt.width, tt.want, plan[tt.want].Rect)
		}
	}
}

func TestBounds(t *testing.T) {
	w, h := Bounds(Plan(rgbs(3), 180, DefaultConfig()))
	if w != 130 || h != 130 {
		t.Errorf("Bounds() = %v, %v; want 130, 130", w, h)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}

	bad := []Config{
		{SwatchSize: 0, Padding: 30},
		{SwatchSize: 50, Padding: -1},
		{SwatchSize: 50, StrokeWidth: -1},
		{SwatchSize: 50, LabelOffset: -2},
	}
	for _, cfg := range bad {
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Validate(%+v) = %v, want ErrInvalidConfig", cfg, err)
		}
	}
}
