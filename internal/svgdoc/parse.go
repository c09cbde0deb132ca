package svgdoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wethinkt/go-swatchsheet/internal/color"
	"github.com/wethinkt/go-swatchsheet/internal/library"
	"github.com/wethinkt/go-swatchsheet/internal/runlog"
	"github.com/wethinkt/go-swatchsheet/internal/shape"
	"github.com/wethinkt/go-swatchsheet/internal/sheet"
	"github.com/wethinkt/go-swatchsheet/internal/textmetrics"
)

// Elements drawn with a fill.
var leafElements = map[string]bool{
	"path": true, "rect": true, "circle": true, "ellipse": true,
	"polygon": true, "polyline": true, "line": true, "text": true,
}

// Elements that group their children.
var groupElements = map[string]bool{
	"g": true, "a": true, "switch": true, "svg": true,
}

// paintServer is a gradient or pattern that fills can reference.
type paintServer struct {
	id    string
	name  string
	kind  string
	solid bool
	href  string
	stops []color.Color
}

// pendingFill is a leaf whose fill is resolved after the whole document is
// read, since paint servers may be defined after use.
type pendingFill struct {
	leaf  *shape.Leaf
	paint paint
}

// frame is one open element during parsing.
type frame struct {
	paint paint
	// children collects selectable child objects; nil when the element's
	// content is not selectable.
	children *[]shape.Node
	server   *paintServer
}

type parser struct {
	data    []byte
	decoder *xml.Decoder
	stack   []frame
	roots   []shape.Node
	servers map[string]*paintServer
	order   []*paintServer
	pending []pendingFill
	width   float64
	seenSVG bool

	// Byte offsets of the root element in data. rootEnd is the start of its
	// end tag, or the end of the start tag when the root is self-closing.
	rootTag         string
	rootEnd         int64
	rootSelfClosing bool
}

// Parse reads an SVG document. The root element must be <svg>; anything else
// is reported as sheet.ErrNoDocument.
func Parse(r io.Reader, opts Options) (*Document, error) {
	defer runlog.Log.Timed("parse svg")()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read svg: %w", err)
	}

	measurer := opts.Measurer
	if measurer == nil {
		m, err := textmetrics.Default()
		if err != nil {
			return nil, err
		}
		measurer = m
	}

	p := &parser{
		data:    data,
		decoder: xml.NewDecoder(bytes.NewReader(data)),
		servers: make(map[string]*paintServer),
		rootEnd: -1,
	}
	if err := p.run(); err != nil {
		return nil, err
	}

	doc := &Document{
		source:          data,
		rootTag:         p.rootTag,
		rootEnd:         p.rootEnd,
		rootSelfClosing: p.rootSelfClosing,
		roots:           p.roots,
		width:           p.width,
		measurer:        measurer,
	}
	doc.swatches = library.Library{Name: "document", Swatches: p.documentSwatches()}
	for _, pf := range p.pending {
		pf.leaf.Fill = p.resolve(pf.paint)
		pf.leaf.Filled = pf.leaf.Fill != nil
	}
	doc.selection = selectNodes(doc.roots, opts.Select)

	runlog.Log.Debug("Parsed svg",
		"objects", len(doc.roots),
		"leaves", shape.Count(doc.roots),
		"swatches", len(doc.swatches.Swatches),
		"selected", len(doc.selection),
		"width", doc.width)
	return doc, nil
}

func (p *parser) run() error {
	for {
		off := p.decoder.InputOffset()
		tok, err := p.decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			if !p.seenSVG {
				return fmt.Errorf("%w: %v", sheet.ErrNoDocument, err)
			}
			return fmt.Errorf("parse svg: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			isRoot := !p.seenSVG
			if err := p.start(t); err != nil {
				return err
			}
			if isRoot {
				p.rootTag = rawTagName(p.data[off:])
			}
		case xml.EndElement:
			if len(p.stack) == 1 && p.rootEnd < 0 {
				p.rootEnd = off
				p.rootSelfClosing = p.decoder.InputOffset() == off
			}
			if len(p.stack) > 0 {
				p.stack = p.stack[:len(p.stack)-1]
			}
		}
	}

	if !p.seenSVG {
		return fmt.Errorf("%w: no svg element", sheet.ErrNoDocument)
	}
	return nil
}

// rawTagName returns the element name, prefix included, of the start tag at
// the beginning of b.
func rawTagName(b []byte) string {
	b = bytes.TrimPrefix(b, []byte("<"))
	end := bytes.IndexAny(b, " \t\r\n/>")
	if end < 0 {
		return string(b)
	}
	return string(b[:end])
}

func (p *parser) start(t xml.StartElement) error {
	local := t.Name.Local

	if len(p.stack) == 0 {
		if p.seenSVG {
			return errors.New("parse svg: content after root element")
		}
		if local != "svg" {
			return fmt.Errorf("%w: root element is <%s>", sheet.ErrNoDocument, local)
		}
		p.seenSVG = true
		p.width = documentWidth(t)
		pt, err := initialPaint.apply(t)
		if err != nil {
			return fmt.Errorf("svg root: %w", err)
		}
		p.stack = append(p.stack, frame{paint: pt, children: &p.roots})
		return nil
	}

	parent := p.stack[len(p.stack)-1]
	pt, err := parent.paint.apply(t)
	if err != nil {
		return fmt.Errorf("<%s id=%q>: %w", local, attr(t, "id"), err)
	}
	f := frame{paint: pt}
	id := attr(t, "id")

	switch {
	case local == "linearGradient" || local == "radialGradient" || local == "pattern":
		f.server = p.define(t, local)
	case local == "stop":
		if parent.server != nil {
			parent.server.stops = append(parent.server.stops, stopColor(t))
		}
	case groupElements[local] && parent.children != nil:
		var node shape.Node
		if hasAttr(t, "data-compound-path") {
			cp := &shape.CompoundPath{ID: id}
			f.children = &cp.Children
			node = cp
		} else {
			g := &shape.Group{ID: id}
			f.children = &g.Children
			node = g
		}
		*parent.children = append(*parent.children, node)
	case leafElements[local] && parent.children != nil:
		leaf := &shape.Leaf{ID: id}
		*parent.children = append(*parent.children, leaf)
		p.pending = append(p.pending, pendingFill{leaf: leaf, paint: pt})
	}

	p.stack = append(p.stack, f)
	return nil
}

// define registers a gradient or pattern element.
func (p *parser) define(t xml.StartElement, local string) *paintServer {
	s := &paintServer{
		id:   attr(t, "id"),
		name: attr(t, "label"),
		kind: "gradient",
		href: strings.TrimPrefix(attr(t, "href"), "#"),
	}
	if local == "pattern" {
		s.kind = "pattern"
	}
	if strings.EqualFold(attr(t, "paint"), "solid") || strings.EqualFold(attr(t, "swatch"), "solid") {
		s.solid = true
	}
	if s.name == "" {
		s.name = s.id
	}
	if s.id != "" {
		p.servers[s.id] = s
	}
	p.order = append(p.order, s)
	return s
}

// stopColor returns the color of a gradient stop; black when unset.
func stopColor(t xml.StartElement) color.Color {
	value := attr(t, "stop-color")
	if v, ok := styleProperty(attr(t, "style"), "stop-color"); ok {
		value = v
	}
	if value == "" {
		return color.RGB{}
	}
	c, err := parseColor(value)
	if err != nil {
		return color.RGB{}
	}
	return c
}

// swatchColor returns the color of a solid swatch, following href chains.
func (p *parser) swatchColor(s *paintServer) (color.Color, bool) {
	if !s.solid {
		return nil, false
	}
	cur := s
	for hops := 0; len(cur.stops) == 0 && cur.href != "" && hops < 8; hops++ {
		next, ok := p.servers[cur.href]
		if !ok {
			break
		}
		cur = next
	}
	if len(cur.stops) != 1 {
		return nil, false
	}
	return cur.stops[0], true
}

// documentSwatches lists the solid swatches in definition order.
func (p *parser) documentSwatches() []library.Swatch {
	var swatches []library.Swatch
	for _, s := range p.order {
		if c, ok := p.swatchColor(s); ok && s.name != "" {
			swatches = append(swatches, library.Swatch{Name: s.name, Color: c})
		}
	}
	return swatches
}

// resolve turns a paint into a fill color; nil means unfilled.
func (p *parser) resolve(pt paint) color.Color {
	if pt.none {
		return nil
	}

	base := pt.color
	if pt.ref != "" {
		base = p.resolveRef(pt.ref)
	}
	if pt.cmyk != nil {
		base = *pt.cmyk
	}
	if pt.spot != "" {
		return color.Spot{Name: pt.spot, Type: pt.spotType, Base: base}
	}
	return base
}

func (p *parser) resolveRef(id string) color.Color {
	s, ok := p.servers[id]
	if !ok {
		return color.Unknown{Kind: "gradient"}
	}
	// Inkscape points fills at a gradient that links to the swatch.
	for hops := 0; !s.solid && len(s.stops) == 0 && s.href != "" && hops < 8; hops++ {
		next, ok := p.servers[s.href]
		if !ok {
			break
		}
		s = next
	}
	if c, ok := p.swatchColor(s); ok {
		return c
	}
	return color.Unknown{Kind: s.kind}
}

// selectNodes returns the objects with the given ids in document order, or
// every root when ids is empty.
func selectNodes(roots []shape.Node, ids []string) []shape.Node {
	if len(ids) == 0 {
		return roots
	}

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var selected []shape.Node
	var visit func(nodes []shape.Node)
	visit = func(nodes []shape.Node) {
		for _, n := range nodes {
			if id := n.NodeID(); id != "" && want[id] {
				selected = append(selected, n)
				delete(want, id)
			}
			switch v := n.(type) {
			case *shape.Group:
				visit(v.Children)
			case *shape.CompoundPath:
				visit(v.Children)
			}
		}
	}
	visit(roots)

	for _, id := range ids {
		if want[id] {
			runlog.Log.Warn("Selected id not found", "id", id)
		}
	}
	return selected
}

// Absolute units in user units (CSS pixels), as px per unit = num / den.
var unitScale = map[string][2]float64{
	"":   {1, 1},
	"px": {1, 1},
	"pt": {96, 72},
	"pc": {96, 6},
	"mm": {96, 25.4},
	"cm": {96, 2.54},
	"in": {96, 1},
}

// documentWidth reads the width from the viewBox, falling back to the width
// attribute.
func documentWidth(t xml.StartElement) float64 {
	if vb := strings.FieldsFunc(attr(t, "viewBox"), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	}); len(vb) == 4 {
		if w, err := strconv.ParseFloat(vb[2], 64); err == nil && w > 0 {
			return w
		}
	}
	return parseLength(attr(t, "width"))
}

func parseLength(s string) float64 {
	s = strings.TrimSpace(s)
	i := len(s)
	for i > 0 && (s[i-1] < '0' || s[i-1] > '9') && s[i-1] != '.' {
		i--
	}
	scale, ok := unitScale[strings.ToLower(s[i:])]
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil || v < 0 {
		return 0
	}
	return v * scale[0] / scale[1]
}
