package library

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wethinkt/go-swatchsheet/internal/color"
)

// itermColor is one named entry of an .itermcolors plist, channels 0.0–1.0.
type itermColor struct {
	Name string
	RGB  [3]float64
}

// parseItermColors parses an iTerm2 .itermcolors plist and returns the color
// entries in file order.
func parseItermColors(r io.Reader) ([]itermColor, error) {
	decoder := xml.NewDecoder(r)
	var colors []itermColor

	// Navigate to the top-level <dict> inside <plist>
	if err := seekElement(decoder, "dict"); err != nil {
		return nil, fmt.Errorf("plist: missing top-level dict: %w", err)
	}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("plist: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "key" {
			continue
		}

		name, err := readText(decoder)
		if err != nil {
			return nil, err
		}
		if err := seekElement(decoder, "dict"); err != nil {
			continue
		}
		rgb, err := parseColorDict(decoder)
		if err != nil {
			return nil, fmt.Errorf("plist: color %q: %w", name, err)
		}
		colors = append(colors, itermColor{Name: name, RGB: rgb})
	}

	if len(colors) == 0 {
		return nil, fmt.Errorf("plist: no colors found")
	}
	return colors, nil
}

// parseColorDict reads the Red/Green/Blue Component reals of a color <dict>.
func parseColorDict(decoder *xml.Decoder) ([3]float64, error) {
	var rgb [3]float64
	depth := 1

	for depth > 0 {
		tok, err := decoder.Token()
		if err != nil {
			return rgb, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != "key" {
				continue
			}
			key, err := readText(decoder)
			if err != nil {
				return rgb, err
			}
			valTag, err := nextStartElement(decoder)
			if err != nil {
				continue
			}
			valStr, err := readText(decoder)
			if err != nil {
				return rgb, err
			}
			if valTag != "real" {
				continue
			}

			var val float64
			if _, err := fmt.Sscanf(valStr, "%f", &val); err != nil {
				continue
			}
			switch key {
			case "Red Component":
				rgb[0] = val
			case "Green Component":
				rgb[1] = val
			case "Blue Component":
				rgb[2] = val
			}
		case xml.EndElement:
			if t.Name.Local == "dict" {
				depth--
			}
		}
	}

	return rgb, nil
}

func nextStartElement(decoder *xml.Decoder) (string, error) {
	for {
		tok, err := decoder.Token()
		if err != nil {
			return "", err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local, nil
		}
	}
}

func seekElement(decoder *xml.Decoder, name string) error {
	for {
		tok, err := decoder.Token()
		if err != nil {
			return err
		}
		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == name {
			return nil
		}
	}
}

// readText reads the character data of the current element up to its end tag.
func readText(decoder *xml.Decoder) (string, error) {
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.EndElement:
			return strings.TrimSpace(buf.String()), nil
		}
	}
}

func unitToByte(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// ImportIterm converts an iTerm2 .itermcolors file into an RGB swatch
// library, one swatch per color entry.
func ImportIterm(r io.Reader, name string) (Library, error) {
	colors, err := parseItermColors(r)
	if err != nil {
		return Library{}, err
	}

	lib := Library{
		Name:        name,
		Description: fmt.Sprintf("Imported from %s iTerm2 color scheme", name),
	}
	for _, c := range colors {
		lib.Swatches = append(lib.Swatches, Swatch{
			Name:  c.Name,
			Color: color.RGB{R: unitToByte(c.RGB[0]), G: unitToByte(c.RGB[1]), B: unitToByte(c.RGB[2])},
		})
	}
	return lib, nil
}
