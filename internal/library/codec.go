package library

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/wethinkt/go-swatchsheet/internal/color"
)

// fileLibrary is the on-disk library format shared by TOML and YAML.
type fileLibrary struct {
	Name        string       `toml:"name" yaml:"name"`
	Description string       `toml:"description" yaml:"description"`
	Swatches    []fileSwatch `toml:"swatch" yaml:"swatch"`
}

// fileSwatch lists every representation a named color is known by.
type fileSwatch struct {
	Name     string    `toml:"name" yaml:"name"`
	Spot     bool      `toml:"spot,omitempty" yaml:"spot,omitempty"`
	SpotType string    `toml:"spot_type,omitempty" yaml:"spot_type,omitempty"`
	CMYK     []float64 `toml:"cmyk,omitempty" yaml:"cmyk,omitempty"`
	RGB      []int     `toml:"rgb,omitempty" yaml:"rgb,omitempty"`
}

// Decode parses library data. ext selects the format (".toml", ".yaml" or
// ".yml").
func Decode(data []byte, ext string) (Library, error) {
	var f fileLibrary
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return Library{}, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return Library{}, err
		}
	default:
		return Library{}, fmt.Errorf("unsupported library format %q", ext)
	}
	return f.library()
}

func (f fileLibrary) library() (Library, error) {
	lib := Library{Name: f.Name, Description: f.Description}
	for i, s := range f.Swatches {
		if strings.TrimSpace(s.Name) == "" {
			return Library{}, fmt.Errorf("swatch %d has no name", i+1)
		}
		colors, err := s.colors()
		if err != nil {
			return Library{}, fmt.Errorf("swatch %q: %w", s.Name, err)
		}
		for _, c := range colors {
			lib.Swatches = append(lib.Swatches, Swatch{Name: s.Name, Color: c})
		}
	}
	return lib, nil
}

// colors expands a file entry into its representations: the spot ink first,
// then the process build, then the screen value.
func (s fileSwatch) colors() ([]color.Color, error) {
	var out []color.Color
	var process, screen color.Color

	if s.CMYK != nil {
		if len(s.CMYK) != 4 {
			return nil, fmt.Errorf("cmyk needs 4 channels, got %d", len(s.CMYK))
		}
		process = color.CMYK{C: s.CMYK[0], M: s.CMYK[1], Y: s.CMYK[2], K: s.CMYK[3]}
	}
	if s.RGB != nil {
		if len(s.RGB) != 3 {
			return nil, fmt.Errorf("rgb needs 3 channels, got %d", len(s.RGB))
		}
		for _, v := range s.RGB {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("rgb channel %d out of range", v)
			}
		}
		screen = color.RGB{R: s.RGB[0], G: s.RGB[1], B: s.RGB[2]}
	}

	if s.Spot {
		typ, err := color.ParseSpotType(s.SpotType)
		if err != nil {
			return nil, err
		}
		base := process
		if base == nil {
			base = screen
		}
		out = append(out, color.Spot{Name: s.Name, Type: typ, Base: base})
	}
	if process != nil {
		out = append(out, process)
	}
	if screen != nil {
		out = append(out, screen)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no color values")
	}
	return out, nil
}

// Encode writes a library as TOML. Consecutive swatches sharing a name are
// folded back into one entry.
func Encode(lib Library) ([]byte, error) {
	f := fileLibrary{Name: lib.Name, Description: lib.Description}
	for _, s := range lib.Swatches {
		if n := len(f.Swatches); n == 0 || f.Swatches[n-1].Name != s.Name {
			f.Swatches = append(f.Swatches, fileSwatch{Name: s.Name})
		}
		entry := &f.Swatches[len(f.Swatches)-1]
		switch c := s.Color.(type) {
		case color.Spot:
			entry.Spot = true
			if c.Type != color.SpotTypeSpot && c.Type != "" {
				entry.SpotType = string(c.Type)
			}
		case color.CMYK:
			entry.CMYK = []float64{c.C, c.M, c.Y, c.K}
		case color.RGB:
			entry.RGB = []int{c.R, c.G, c.B}
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
