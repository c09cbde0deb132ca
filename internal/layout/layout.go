// Package layout places swatches on a row-wrapping grid.
//
// Coordinates follow the drawing host's convention: x grows to the right and
// rows grow downward with decreasing y. A rectangle's origin is its top-left
// corner.
package layout

import (
	"errors"
	"fmt"

	"github.com/wethinkt/go-swatchsheet/internal/color"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid layout configuration")

// Config controls swatch geometry.
type Config struct {
	SwatchSize  float64 `json:"swatch_size"`
	StrokeWidth float64 `json:"stroke_width"`
	Padding     float64 `json:"padding"`
	LabelOffset float64 `json:"label_offset"`
}

// DefaultConfig returns the standard 50pt swatches with 30pt gutters.
func DefaultConfig() Config {
	return Config{
		SwatchSize:  50,
		StrokeWidth: 1,
		Padding:     30,
		LabelOffset: 5,
	}
}

// Validate reports geometry that cannot produce a grid.
func (c Config) Validate() error {
	switch {
	case c.SwatchSize <= 0:
		return fmt.Errorf("%w: swatch size must be positive, got %g", ErrInvalidConfig, c.SwatchSize)
	case c.Padding < 0:
		return fmt.Errorf("%w: padding must not be negative, got %g", ErrInvalidConfig, c.Padding)
	case c.StrokeWidth < 0:
		return fmt.Errorf("%w: stroke width must not be negative, got %g", ErrInvalidConfig, c.StrokeWidth)
	case c.LabelOffset < 0:
		return fmt.Errorf("%w: label offset must not be negative, got %g", ErrInvalidConfig, c.LabelOffset)
	}
	return nil
}

// Pitch is the distance between the origins of neighbouring swatches.
func (c Config) Pitch() float64 {
	return c.SwatchSize + c.Padding
}

// Point is a position on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Placement is where one swatch and its label go.
type Placement struct {
	Color color.Color `json:"-"`
	Rect  Point       `json:"rect"`
	Size  float64     `json:"size"`
	Label Point       `json:"label"`
	Text  string      `json:"text"`
}

// Plan lays colors out left to right, wrapping to a new row once the cursor
// passes availableWidth - SwatchSize. The result depends only on the number of
// colors, availableWidth and cfg.
func Plan(colors []color.Color, availableWidth float64, cfg Config) []Placement {
	placements := make([]Placement, 0, len(colors))
	var x, y float64

	for _, c := range colors {
		placements = append(placements, Placement{
			Color: c,
			Rect:  Point{X: x, Y: y},
			Size:  cfg.SwatchSize,
			Label: Point{X: x, Y: y - cfg.SwatchSize - cfg.Padding/2},
		})

		x += cfg.Pitch()
		if x > availableWidth-cfg.SwatchSize {
			x = 0
			y -= cfg.Pitch()
		}
	}

	return placements
}

// Center returns the label origin that centers a label of the given width
// under the swatch.
func (p Placement) Center(labelWidth float64, cfg Config) Point {
	return Point{
		X: p.Rect.X + p.Size/2 - labelWidth/2,
		Y: p.Rect.Y - p.Size - cfg.LabelOffset,
	}
}

// Columns returns how many swatches fit on one row before Plan wraps.
func Columns(availableWidth float64, cfg Config) int {
	if cfg.Pitch() <= 0 {
		return 1
	}
	n := 1
	x := cfg.Pitch()
	for x <= availableWidth-cfg.SwatchSize {
		n++
		x += cfg.Pitch()
	}
	return n
}

// Bounds returns the total width and height covered by the placements'
// rectangles.
func Bounds(placements []Placement) (width, height float64) {
	for _, p := range placements {
		width = max(width, p.Rect.X+p.Size)
		height = max(height, -p.Rect.Y+p.Size)
	}
	return width, height
}
