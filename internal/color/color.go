// Package color defines the fill colors found in a document.
//
// A Color is one of a closed set of variants: Spot, RGB, CMYK or Unknown.
// Colors are compared only within their own representation; no color-space
// conversion takes part in deciding whether two colors are the same.
package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Model names the representation a color is expressed in.
type Model string

const (
	ModelSpot    Model = "spot"
	ModelRGB     Model = "rgb"
	ModelCMYK    Model = "cmyk"
	ModelUnknown Model = "unknown"
)

// Color is a fill color. The concrete type is always one of Spot, RGB, CMYK
// or Unknown.
type Color interface {
	// Model reports which variant the color is.
	Model() Model
	// Hex returns an approximate sRGB rendering of the color, for display only.
	Hex() string

	isColor()
}

// SpotType is the ink classification of a spot color.
type SpotType string

const (
	SpotTypeSpot         SpotType = "spot"
	SpotTypeProcess      SpotType = "process"
	SpotTypeRegistration SpotType = "registration"
)

// ParseSpotType parses a spot classification. An empty string means SpotTypeSpot.
func ParseSpotType(s string) (SpotType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "spot":
		return SpotTypeSpot, nil
	case "process":
		return SpotTypeProcess, nil
	case "registration":
		return SpotTypeRegistration, nil
	}
	return "", fmt.Errorf("unknown spot type %q", s)
}

// Spot is a named ink. Base is the color the ink is defined by and is only
// used for rendering.
type Spot struct {
	Name string
	Type SpotType
	Base Color
}

// RGB is a color with 0–255 integer channels.
type RGB struct {
	R, G, B int
}

// CMYK is a process color. Channels are either 0–100 or 0–1 depending on the
// source; values are kept exactly as read.
type CMYK struct {
	C, M, Y, K float64
}

// Unknown is any fill that is not a plain color, such as a gradient or a
// pattern. Kind carries the source's name for it.
type Unknown struct {
	Kind string
}

func (Spot) Model() Model    { return ModelSpot }
func (RGB) Model() Model     { return ModelRGB }
func (CMYK) Model() Model    { return ModelCMYK }
func (Unknown) Model() Model { return ModelUnknown }

func (Spot) isColor()    {}
func (RGB) isColor()     {}
func (CMYK) isColor()    {}
func (Unknown) isColor() {}

// Black is the document black used for swatch strokes and label text.
var Black Color = CMYK{C: 0, M: 0, Y: 0, K: 100}

// Key returns the identity key of c. Two colors are the same color exactly
// when their keys are equal.
//
// Unknown colors all share the empty key.
func Key(c Color) string {
	switch v := c.(type) {
	case Spot:
		return v.Name
	case RGB:
		return strconv.Itoa(v.R) + "-" + strconv.Itoa(v.G) + "-" + strconv.Itoa(v.B)
	case CMYK:
		return formatChannel(v.C) + "-" + formatChannel(v.M) + "-" + formatChannel(v.Y) + "-" + formatChannel(v.K)
	}
	return ""
}

// Equal reports whether a and b are the same variant with identical values.
// Spot colors are equal when their names are.
func Equal(a, b Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Model() != b.Model() {
		return false
	}
	switch av := a.(type) {
	case Spot:
		return av.Name == b.(Spot).Name
	case RGB:
		return av == b.(RGB)
	case CMYK:
		return av == b.(CMYK)
	}
	return false
}

// String formats the color for humans, e.g. "rgb(200 16 46)".
func String(c Color) string {
	switch v := c.(type) {
	case Spot:
		return fmt.Sprintf("spot(%s, %s)", v.Name, v.Type)
	case RGB:
		return fmt.Sprintf("rgb(%d %d %d)", v.R, v.G, v.B)
	case CMYK:
		return fmt.Sprintf("cmyk(%s %s %s %s)", formatChannel(v.C), formatChannel(v.M), formatChannel(v.Y), formatChannel(v.K))
	case Unknown:
		return v.Kind
	}
	return "none"
}

func formatChannel(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", clamp8(c.R), clamp8(c.G), clamp8(c.B))
}

// Hex converts with the naive subtractive formula. Percentages above 1 are
// treated as 0–100 values.
func (c CMYK) Hex() string {
	scale := 1.0
	if c.C > 1 || c.M > 1 || c.Y > 1 || c.K > 1 {
		scale = 100
	}
	k := 1 - c.K/scale
	ch := func(v float64) int {
		return int(math.Round(255 * (1 - v/scale) * k))
	}
	return RGB{R: ch(c.C), G: ch(c.M), B: ch(c.Y)}.Hex()
}

// Hex renders the spot through its base color, or mid gray without one.
func (c Spot) Hex() string {
	if c.Base != nil {
		return c.Base.Hex()
	}
	return "#808080"
}

// Hex of an unknown fill is mid gray.
func (Unknown) Hex() string {
	return "#808080"
}

// ParseHex parses "#rgb" or "#rrggbb" into an RGB color.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGB{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}, nil
}

// Contrast returns black or white, whichever reads better on c.
func Contrast(c Color) string {
	rgb, err := ParseHex(c.Hex())
	if err != nil {
		return "#000000"
	}
	luminance := (0.299*float64(rgb.R) + 0.587*float64(rgb.G) + 0.114*float64(rgb.B)) / 255
	if luminance > 0.5 {
		return "#000000"
	}
	return "#ffffff"
}

func clamp8(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
