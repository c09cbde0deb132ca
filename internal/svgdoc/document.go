// Package svgdoc adapts SVG files to the document interfaces of package sheet.
//
// Parse reads an SVG into a shape tree and a selection, resolving each
// element's fill to a color. Inkscape solid swatches become named document
// swatches. Layers added through AddLayer are written back into the original
// markup by WriteTo, just before the end tag of the root element.
package svgdoc

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/wethinkt/go-swatchsheet/internal/color"
	"github.com/wethinkt/go-swatchsheet/internal/library"
	"github.com/wethinkt/go-swatchsheet/internal/sheet"
	"github.com/wethinkt/go-swatchsheet/internal/shape"
)

// TextMeasurer measures label text in document units.
type TextMeasurer interface {
	Width(text string, size float64) float64
	Ascent(size float64) float64
}

// Options controls how a document is read.
type Options struct {
	// Select lists element ids to select. Empty selects every top-level object.
	Select []string
	// Measurer measures label text. Defaults to textmetrics.Default().
	Measurer TextMeasurer
}

// Document is a parsed SVG file. It implements sheet.Document.
type Document struct {
	source          []byte
	rootTag         string
	rootEnd         int64
	rootSelfClosing bool
	roots           []shape.Node
	selection       []shape.Node
	width           float64
	swatches        library.Library
	layers          []*Layer
	measurer        TextMeasurer
}

// svgNamespace is declared on added layers when the root element uses a
// prefix, so unprefixed layer elements stay in the SVG namespace.
const svgNamespace = "http://www.w3.org/2000/svg"

var _ sheet.Document = (*Document)(nil)

// Roots returns every selectable top-level object.
func (d *Document) Roots() []shape.Node { return d.roots }

// Selection returns the selected objects.
func (d *Document) Selection() []shape.Node { return d.selection }

// Width returns the document width in user units, or 0 when unknown.
func (d *Document) Width() float64 { return d.width }

// Swatches returns the document's named solid swatches.
func (d *Document) Swatches() []library.Swatch { return d.swatches.Swatches }

// LookupNamedColor returns the name of the first document swatch equal to c.
func (d *Document) LookupNamedColor(c color.Color) (string, bool) {
	return d.swatches.Lookup(c)
}

// AddLayer starts a new top layer. It is written out by WriteTo.
func (d *Document) AddLayer(name string) sheet.Layer {
	l := &Layer{name: name, id: d.layerID(name), measurer: d.measurer}
	if strings.Contains(d.rootTag, ":") {
		l.xmlns = svgNamespace
	}
	d.layers = append(d.layers, l)
	return l
}

// WriteTo writes the original document with all added layers inserted
// before the end tag of the root element.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	if d.rootEnd < 0 || d.rootEnd > int64(len(d.source)) {
		return 0, errors.New("svg: document has no closing svg tag")
	}
	if len(d.layers) == 0 {
		n, err := w.Write(d.source)
		return int64(n), err
	}

	end := d.rootEnd
	var buf bytes.Buffer
	if d.rootSelfClosing {
		// <svg .../> is reopened as <svg ...>layers</svg>.
		buf.Write(bytes.TrimRight(d.source[:end-2], " \t\r\n"))
		buf.WriteString(">\n")
	} else {
		buf.Write(d.source[:end])
	}
	for _, l := range d.layers {
		l.render(&buf)
	}
	if d.rootSelfClosing {
		buf.WriteString("</" + d.rootTag + ">")
	}
	buf.Write(d.source[end:])
	return buf.WriteTo(w)
}

// layerID derives a unique element id from a layer name.
func (d *Document) layerID(name string) string {
	base := sanitizeID(name)
	id := base
	for n := 2; d.hasLayerID(id); n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	return id
}

func (d *Document) hasLayerID(id string) bool {
	for _, l := range d.layers {
		if l.id == id {
			return true
		}
	}
	return false
}

func sanitizeID(name string) string {
	b := []byte(name)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			b[i] = '_'
		}
	}
	if len(b) == 0 || (b[0] >= '0' && b[0] <= '9') || b[0] == '-' {
		b = append([]byte("layer_"), b...)
	}
	return string(b)
}
