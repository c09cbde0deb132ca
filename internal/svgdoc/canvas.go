package svgdoc

import (
	"bytes"
	"encoding/xml"
	"math"
	"strconv"

	"github.com/wethinkt/go-swatchsheet/internal/color"
	"github.com/wethinkt/go-swatchsheet/internal/layout"
	"github.com/wethinkt/go-swatchsheet/internal/sheet"
)

// Layer is a group of drawn swatches and labels. Coordinates passed in are
// host coordinates with y growing upward; they are flipped when written.
type Layer struct {
	name     string
	id       string
	xmlns    string
	items    []item
	measurer TextMeasurer
}

type item interface {
	render(buf *bytes.Buffer)
}

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// DrawRectangle adds a square whose top-left corner is origin.
func (l *Layer) DrawRectangle(origin layout.Point, size float64) sheet.Rectangle {
	r := &Rect{origin: origin, size: size}
	l.items = append(l.items, r)
	return r
}

// AddText adds a point text whose top-left corner is origin.
func (l *Layer) AddText(text string, origin layout.Point, style sheet.TextStyle) sheet.TextFrame {
	t := &Text{text: text, origin: origin, style: style, measurer: l.measurer}
	l.items = append(l.items, t)
	return t
}

func (l *Layer) render(buf *bytes.Buffer) {
	buf.WriteString(`<g`)
	if l.xmlns != "" {
		writeAttr(buf, "xmlns", l.xmlns)
	}
	buf.WriteString(` id="`)
	escape(buf, l.id)
	buf.WriteString(`" data-name="`)
	escape(buf, l.name)
	buf.WriteString("\">\n")
	for _, it := range l.items {
		buf.WriteString("  ")
		it.render(buf)
		buf.WriteString("\n")
	}
	buf.WriteString("</g>\n")
}

// Rect is a drawn swatch rectangle.
type Rect struct {
	origin      layout.Point
	size        float64
	fill        color.Color
	stroke      color.Color
	strokeWidth float64
}

func (r *Rect) SetFill(c color.Color) { r.fill = c }

func (r *Rect) SetStroke(c color.Color, width float64) {
	r.stroke = c
	r.strokeWidth = width
}

func (r *Rect) render(buf *bytes.Buffer) {
	buf.WriteString("<rect")
	writeAttr(buf, "x", num(r.origin.X))
	writeAttr(buf, "y", num(-r.origin.Y))
	writeAttr(buf, "width", num(r.size))
	writeAttr(buf, "height", num(r.size))
	for _, a := range svgPaint(r.fill) {
		writeAttr(buf, a[0], a[1])
	}
	if r.stroke != nil && r.strokeWidth > 0 {
		writeAttr(buf, "stroke", r.stroke.Hex())
		writeAttr(buf, "stroke-width", num(r.strokeWidth))
	}
	buf.WriteString("/>")
}

// Text is a drawn label.
type Text struct {
	text     string
	origin   layout.Point
	style    sheet.TextStyle
	measurer TextMeasurer
}

// Width returns the advance width of the label at its font size.
func (t *Text) Width() float64 {
	if t.measurer == nil {
		return 0
	}
	return t.measurer.Width(t.text, t.style.Size)
}

// SetPosition moves the label's top-left corner to origin.
func (t *Text) SetPosition(origin layout.Point) { t.origin = origin }

// render writes the label with its baseline one ascent below the top edge.
func (t *Text) render(buf *bytes.Buffer) {
	var ascent float64
	if t.measurer != nil {
		ascent = t.measurer.Ascent(t.style.Size)
	}

	buf.WriteString("<text")
	writeAttr(buf, "x", num(t.origin.X))
	writeAttr(buf, "y", num(-t.origin.Y+ascent))
	if t.style.Font != "" {
		writeAttr(buf, "font-family", t.style.Font)
	}
	writeAttr(buf, "font-size", num(t.style.Size))
	fill := t.style.Fill
	if fill == nil {
		fill = color.Black
	}
	for _, a := range svgPaint(fill) {
		writeAttr(buf, a[0], a[1])
	}
	buf.WriteString(">")
	escape(buf, t.text)
	buf.WriteString("</text>")
}

func writeAttr(buf *bytes.Buffer, name, value string) {
	buf.WriteString(" ")
	buf.WriteString(name)
	buf.WriteString(`="`)
	escape(buf, value)
	buf.WriteString(`"`)
}

func escape(buf *bytes.Buffer, s string) {
	// Writes to a bytes.Buffer cannot fail.
	_ = xml.EscapeText(buf, []byte(s))
}

// num formats a coordinate with at most three decimals.
func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
