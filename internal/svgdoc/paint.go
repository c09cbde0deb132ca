package svgdoc

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/wethinkt/go-swatchsheet/internal/color"
	"github.com/wethinkt/go-swatchsheet/internal/runlog"
)

// paint is the fill an element resolves to before paint servers are looked up.
type paint struct {
	none     bool
	color    color.Color
	ref      string // id of a paint server
	cmyk     *color.CMYK
	spot     string
	spotType color.SpotType
}

// initialPaint is the SVG initial value of fill.
var initialPaint = paint{color: color.RGB{}}

// apply returns the paint of an element whose parent has paint p. An element's
// own fill replaces the inherited one, including any CMYK or spot override.
func (p paint) apply(start xml.StartElement) (paint, error) {
	value := attr(start, "fill")
	if v, ok := styleProperty(attr(start, "style"), "fill"); ok {
		value = v
	}
	if value != "" && !strings.EqualFold(value, "inherit") {
		np, err := parsePaint(value)
		if err != nil {
			runlog.Log.Warn("Ignoring invalid fill", "id", attr(start, "id"), "value", value)
		} else {
			p = np
		}
	}

	if v := attr(start, "data-cmyk"); v != "" {
		cmyk, err := parseCMYKList(v)
		if err != nil {
			return p, err
		}
		p.cmyk = &cmyk
	}
	if v := attr(start, "data-spot"); v != "" {
		typ, err := color.ParseSpotType(attr(start, "data-spot-type"))
		if err != nil {
			return p, err
		}
		p.spot = v
		p.spotType = typ
	}
	return p, nil
}

// parsePaint parses an SVG paint value.
func parsePaint(value string) (paint, error) {
	v := strings.TrimSpace(value)
	lower := strings.ToLower(v)

	switch {
	case lower == "none" || lower == "transparent":
		return paint{none: true}, nil
	case strings.HasPrefix(lower, "url("):
		end := strings.IndexByte(v, ')')
		if end < 0 {
			return paint{}, fmt.Errorf("unterminated paint reference %q", value)
		}
		ref := strings.Trim(strings.TrimSpace(v[len("url("):end]), `"'`)
		return paint{ref: strings.TrimPrefix(ref, "#")}, nil
	}

	c, err := parseColor(v)
	if err != nil {
		return paint{}, err
	}
	return paint{color: c}, nil
}

// parseColor parses an SVG color: #rgb, #rrggbb, rgb(), device-cmyk() or a
// color keyword.
func parseColor(value string) (color.Color, error) {
	v := strings.TrimSpace(value)
	lower := strings.ToLower(v)

	switch {
	case strings.HasPrefix(v, "#"):
		return color.ParseHex(v)
	case strings.HasPrefix(lower, "rgb(") || strings.HasPrefix(lower, "rgba("):
		return parseRGBFunc(v)
	case strings.HasPrefix(lower, "device-cmyk("):
		args, err := funcArgs(v)
		if err != nil {
			return nil, err
		}
		return cmykFromArgs(args)
	case lower == "currentcolor":
		return color.RGB{}, nil
	}

	if rgba, ok := colornames.Map[lower]; ok {
		return color.RGB{R: int(rgba.R), G: int(rgba.G), B: int(rgba.B)}, nil
	}
	return nil, fmt.Errorf("unrecognized color %q", value)
}

func parseRGBFunc(v string) (color.Color, error) {
	args, err := funcArgs(v)
	if err != nil {
		return nil, err
	}
	if len(args) < 3 {
		return nil, fmt.Errorf("rgb() needs 3 channels: %q", v)
	}

	var ch [3]int
	for i := 0; i < 3; i++ {
		a := args[i]
		if pct, ok := strings.CutSuffix(a, "%"); ok {
			f, err := strconv.ParseFloat(pct, 64)
			if err != nil {
				return nil, fmt.Errorf("rgb channel %q: %w", a, err)
			}
			ch[i] = int(f*255/100 + 0.5)
			continue
		}
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("rgb channel %q: %w", a, err)
		}
		ch[i] = int(f + 0.5)
	}
	for i := range ch {
		ch[i] = min(max(ch[i], 0), 255)
	}
	return color.RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// funcArgs splits the arguments of a CSS functional notation on commas,
// slashes and whitespace.
func funcArgs(v string) ([]string, error) {
	open := strings.IndexByte(v, '(')
	end := strings.LastIndexByte(v, ')')
	if open < 0 || end < open {
		return nil, fmt.Errorf("malformed color function %q", v)
	}
	return strings.FieldsFunc(v[open+1:end], func(r rune) bool {
		return r == ',' || r == '/' || r == ' ' || r == '\t' || r == '\n'
	}), nil
}

// parseCMYKList parses "c m y k" or "c,m,y,k". Values are kept as written; a
// trailing % is dropped.
func parseCMYKList(v string) (color.CMYK, error) {
	fields := strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	return cmykFromArgs(fields)
}

func cmykFromArgs(args []string) (color.CMYK, error) {
	if len(args) < 4 {
		return color.CMYK{}, fmt.Errorf("cmyk needs 4 channels, got %d", len(args))
	}
	var ch [4]float64
	for i := 0; i < 4; i++ {
		f, err := strconv.ParseFloat(strings.TrimSuffix(args[i], "%"), 64)
		if err != nil {
			return color.CMYK{}, fmt.Errorf("cmyk channel %q: %w", args[i], err)
		}
		ch[i] = f
	}
	return color.CMYK{C: ch[0], M: ch[1], Y: ch[2], K: ch[3]}, nil
}

// styleProperty returns the value of prop in an inline style declaration.
func styleProperty(style, prop string) (string, bool) {
	var value string
	var found bool
	for _, decl := range strings.Split(style, ";") {
		name, v, ok := strings.Cut(decl, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(name), prop) {
			continue
		}
		value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "!important"))
		found = true
	}
	return value, found
}

// attr returns the value of the first attribute with the given local name.
func attr(start xml.StartElement, local string) string {
	for _, a := range start.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// hasAttr reports whether an attribute with the given local name is present.
func hasAttr(start xml.StartElement, local string) bool {
	for _, a := range start.Attr {
		if a.Name.Local == local {
			return true
		}
	}
	return false
}

// svgPaint renders a color as SVG fill attributes. CMYK and spot values are
// kept in data attributes so a written sheet parses back to the same colors.
func svgPaint(c color.Color) [][2]string {
	switch v := c.(type) {
	case nil:
		return [][2]string{{"fill", "none"}}
	case color.Spot:
		out := [][2]string{{"fill", v.Hex()}}
		if cmyk, ok := v.Base.(color.CMYK); ok {
			out = append(out, [2]string{"data-cmyk", cmykList(cmyk)})
		}
		out = append(out, [2]string{"data-spot", v.Name})
		if v.Type != "" && v.Type != color.SpotTypeSpot {
			out = append(out, [2]string{"data-spot-type", string(v.Type)})
		}
		return out
	case color.CMYK:
		return [][2]string{{"fill", v.Hex()}, {"data-cmyk", cmykList(v)}}
	}
	return [][2]string{{"fill", c.Hex()}}
}

func cmykList(c color.CMYK) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return f(c.C) + " " + f(c.M) + " " + f(c.Y) + " " + f(c.K)
}
