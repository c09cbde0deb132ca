// Package label derives the text printed under each swatch.
package label

import (
	"strings"

	"github.com/wethinkt/go-swatchsheet/internal/color"
)

// CustomColor is the label of a color no lookup could name.
const CustomColor = "Custom Color"

// brandPrefix is stripped from the start of resolved names.
const brandPrefix = "pantone"

// Lookup finds the name of a color in a swatch collection.
type Lookup func(color.Color) (string, bool)

// Source records which step produced a label.
type Source string

const (
	SourceSpot    Source = "spot"
	SourceLibrary Source = "library"
	SourceCustom  Source = "custom"
)

// Resolve returns the label text for c. A spot ink of type spot is named by
// itself; anything else goes through lookup, and falls back to CustomColor.
// lookup may be nil.
func Resolve(c color.Color, lookup Lookup) string {
	text, _ := ResolveSource(c, lookup)
	return text
}

// ResolveSource is Resolve that also reports where the name came from.
func ResolveSource(c color.Color, lookup Lookup) (string, Source) {
	name, source := resolveName(c, lookup)
	return Clean(name), source
}

func resolveName(c color.Color, lookup Lookup) (string, Source) {
	if spot, ok := c.(color.Spot); ok && spot.Type == color.SpotTypeSpot {
		return spot.Name, SourceSpot
	}
	if lookup != nil {
		if name, ok := lookup(c); ok && name != "" {
			return name, SourceLibrary
		}
	}
	return CustomColor, SourceCustom
}

// Clean drops a leading brand word and surrounding whitespace. The brand
// match is case-insensitive and removes exactly its length in bytes, so
// "PANTONE 186 C" becomes "186 C" and "Pantone" becomes "".
func Clean(name string) string {
	if strings.HasPrefix(strings.ToLower(name), brandPrefix) {
		name = name[len(brandPrefix):]
	}
	return strings.TrimSpace(name)
}

// Chain combines lookups; the first one that finds a name wins. Nil lookups
// are skipped.
func Chain(lookups ...Lookup) Lookup {
	return func(c color.Color) (string, bool) {
		for _, l := range lookups {
			if l == nil {
				continue
			}
			if name, ok := l(c); ok {
				return name, true
			}
		}
		return "", false
	}
}
