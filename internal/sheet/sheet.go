// Package sheet generates a swatch reference sheet from a document selection.
//
// Generate extracts the distinct fill colors of the selection, lays one square
// swatch per color on a wrapping grid, labels each with its name and draws the
// result onto a new layer of the document. The document is reached only
// through the interfaces declared here; svgdoc provides an implementation.
package sheet

import (
	"errors"
	"fmt"

	"github.com/wethinkt/go-swatchsheet/internal/color"
	"github.com/wethinkt/go-swatchsheet/internal/config"
	"github.com/wethinkt/go-swatchsheet/internal/extract"
	"github.com/wethinkt/go-swatchsheet/internal/label"
	"github.com/wethinkt/go-swatchsheet/internal/layout"
	"github.com/wethinkt/go-swatchsheet/internal/runlog"
	"github.com/wethinkt/go-swatchsheet/internal/shape"
)

// Each of these aborts generation before a layer is created.
var (
	ErrNoDocument     = errors.New("no document open")
	ErrEmptySelection = errors.New("selection is empty")
	ErrNoColors       = errors.New("no colors found in selection")
)

// Document is the host document a sheet is generated into.
type Document interface {
	// Selection returns the selected top-level objects.
	Selection() []shape.Node
	// Width is the horizontal extent available for the sheet.
	Width() float64
	// LookupNamedColor returns the name of a document swatch equal to c.
	LookupNamedColor(c color.Color) (string, bool)
	// AddLayer creates a new layer on top of the document.
	AddLayer(name string) Layer
}

// Layer is a drawing target inside the document.
type Layer interface {
	DrawRectangle(origin layout.Point, size float64) Rectangle
	AddText(text string, origin layout.Point, style TextStyle) TextFrame
}

// Rectangle is a drawn swatch.
type Rectangle interface {
	SetFill(c color.Color)
	SetStroke(c color.Color, width float64)
}

// TextFrame is a drawn label. Width is the rendered width of its text.
type TextFrame interface {
	Width() float64
	SetPosition(origin layout.Point)
}

// TextStyle is the character style of swatch labels.
type TextStyle struct {
	Font string
	Size float64
	Fill color.Color
}

// Options controls a generation.
type Options struct {
	Layout    layout.Config
	LayerName string
	Label     TextStyle
	// Lookup names colors the document itself has no swatch for. May be nil.
	Lookup label.Lookup
	// Width overrides the document width when positive.
	Width float64
}

// DefaultOptions returns the options of a default configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

// OptionsFromConfig builds generation options from cfg. Library lookups are
// left for the caller to attach.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Layout:    cfg.Layout,
		LayerName: cfg.LayerName,
		Label: TextStyle{
			Font: cfg.Label.Font,
			Size: cfg.Label.Size,
			Fill: color.Black,
		},
	}
}

// Entry is one planned swatch with its resolved label.
type Entry struct {
	layout.Placement
	Key    string       `json:"key"`
	Model  color.Model  `json:"model"`
	Value  string       `json:"value"`
	Hex    string       `json:"hex"`
	Source label.Source `json:"source"`
}

// Result describes a generated sheet.
type Result struct {
	Layer   string  `json:"layer"`
	Entries []Entry `json:"entries"`
}

// Prepare runs every step of Generate except drawing: it validates the
// document and selection, extracts colors, plans the grid and resolves labels.
// Entries carry provisional label origins.
func Prepare(doc Document, opts Options) ([]Entry, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	if err := opts.Layout.Validate(); err != nil {
		return nil, err
	}

	selection := doc.Selection()
	if len(selection) == 0 {
		return nil, ErrEmptySelection
	}

	colors := extract.Colors(selection)
	colorsExtracted.Observe(float64(len(colors)))
	runlog.Log.Debug("Extracted colors", "objects", len(selection), "leaves", shape.Count(selection), "colors", len(colors))
	if len(colors) == 0 {
		return nil, ErrNoColors
	}

	width := doc.Width()
	if opts.Width > 0 {
		width = opts.Width
	}

	lookup := label.Chain(doc.LookupNamedColor, opts.Lookup)
	placements := layout.Plan(colors, width, opts.Layout)

	entries := make([]Entry, len(placements))
	for i, p := range placements {
		text, source := label.ResolveSource(p.Color, lookup)
		p.Text = text
		entries[i] = Entry{
			Placement: p,
			Key:       color.Key(p.Color),
			Model:     p.Color.Model(),
			Value:     color.String(p.Color),
			Hex:       p.Color.Hex(),
			Source:    source,
		}
	}
	return entries, nil
}

// Generate draws a swatch sheet for the document's selection onto a new
// layer. Nothing is drawn when an error is returned.
func Generate(doc Document, opts Options) (Result, error) {
	defer runlog.Log.Timed("generate sheet")()

	result, err := generate(doc, opts)
	generationsTotal.WithLabelValues(Status(err)).Inc()
	if err != nil {
		runlog.Log.Warn("Sheet generation aborted", "error", err)
		return Result{}, err
	}
	runlog.Log.Info("Sheet generated", "layer", result.Layer, "swatches", len(result.Entries))
	return result, nil
}

func generate(doc Document, opts Options) (Result, error) {
	entries, err := Prepare(doc, opts)
	if err != nil {
		return Result{}, err
	}

	name := opts.LayerName
	if name == "" {
		name = config.DefaultLayerName
	}
	layer := doc.AddLayer(name)
	if layer == nil {
		return Result{}, fmt.Errorf("add layer %q: host returned no layer", name)
	}

	style := opts.Label
	if style.Fill == nil {
		style.Fill = color.Black
	}

	for i := range entries {
		e := &entries[i]

		rect := layer.DrawRectangle(e.Rect, e.Size)
		rect.SetFill(e.Color)
		rect.SetStroke(color.Black, opts.Layout.StrokeWidth)

		frame := layer.AddText(e.Text, e.Label, style)
		e.Label = e.Center(frame.Width(), opts.Layout)
		frame.SetPosition(e.Label)

		labelSourcesTotal.WithLabelValues(string(e.Source)).Inc()
	}

	return Result{Layer: name, Entries: entries}, nil
}
