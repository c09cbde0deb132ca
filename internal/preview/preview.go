// Package preview renders a planned swatch sheet in the terminal.
package preview

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/term"

	"github.com/wethinkt/go-swatchsheet/internal/color"
	"github.com/wethinkt/go-swatchsheet/internal/i18n"
	"github.com/wethinkt/go-swatchsheet/internal/layout"
	"github.com/wethinkt/go-swatchsheet/internal/library"
	"github.com/wethinkt/go-swatchsheet/internal/sheet"
)

const (
	// cellWidth is the width of one swatch cell in terminal columns.
	cellWidth = 18
	// cellGap separates adjacent cells.
	cellGap = 2
	// defaultWidth is used when the output is not a terminal.
	defaultWidth = 80
)

// Display writes swatch previews to a terminal or plain writer.
type Display struct {
	w     io.Writer
	width int
}

// New creates a display for w, sized to the terminal when w is one.
func New(w io.Writer) *Display {
	width := defaultWidth
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			width = tw
		}
	}
	return &Display{w: w, width: width}
}

// WithWidth overrides the available width in columns.
func (d *Display) WithWidth(width int) *Display {
	if width > 0 {
		d.width = width
	}
	return d
}

// Columns returns how many cells fit on one row. Rows wrap the same way the
// sheet itself does, treating each cell as a swatch.
func (d *Display) Columns() int {
	return layout.Columns(float64(d.width), layout.Config{
		SwatchSize: cellWidth,
		Padding:    cellGap,
	})
}

// Show renders the entries as a grid of colored cells with their labels.
func (d *Display) Show(title string, entries []sheet.Entry) error {
	if title != "" {
		fmt.Fprintln(d.w, lipgloss.NewStyle().Bold(true).Render(title))
	}
	fmt.Fprintln(d.w, i18n.Tn("preview.swatchCount", "{{.Count}} swatch", "{{.Count}} swatches", len(entries)))
	fmt.Fprintln(d.w)

	cols := d.Columns()
	for start := 0; start < len(entries); start += cols {
		end := min(start+cols, len(entries))
		cells := make([]string, 0, 2*(end-start))
		for i, e := range entries[start:end] {
			if i > 0 {
				cells = append(cells, strings.Repeat(" ", cellGap))
			}
			cells = append(cells, renderCell(e))
		}
		fmt.Fprintln(d.w, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		fmt.Fprintln(d.w)
	}
	return nil
}

// renderCell draws one swatch: a colored block showing the hex value, the
// label and the identity key.
func renderCell(e sheet.Entry) string {
	block := lipgloss.NewStyle().
		Width(cellWidth).
		Height(2).
		Background(lipgloss.Color(e.Hex)).
		Foreground(lipgloss.Color(color.Contrast(e.Color))).
		Render(e.Hex)

	labelStyle := lipgloss.NewStyle().Width(cellWidth).Bold(true)
	keyStyle := lipgloss.NewStyle().Width(cellWidth).Faint(true)

	key := e.Key
	if key == "" {
		key = string(e.Model)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		block,
		labelStyle.Render(truncate(e.Text, cellWidth)),
		keyStyle.Render(truncate(key, cellWidth)),
	)
}

// ShowJSON writes the entries as indented JSON.
func (d *Display) ShowJSON(v any) error {
	enc := json.NewEncoder(d.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ShowLibrary lists the swatches of a library with a color sample each.
func (d *Display) ShowLibrary(lib library.Library) error {
	fmt.Fprintln(d.w, lipgloss.NewStyle().Bold(true).Render(lib.Name))
	if lib.Description != "" {
		fmt.Fprintln(d.w, lib.Description)
	}
	fmt.Fprintln(d.w)

	nameStyle := lipgloss.NewStyle().Width(28)
	valueStyle := lipgloss.NewStyle().Width(26).Faint(true)
	for _, s := range lib.Swatches {
		sample := lipgloss.NewStyle().
			Background(lipgloss.Color(s.Color.Hex())).
			Render("      ")
		fmt.Fprintf(d.w, "  %s %s %s\n",
			sample,
			nameStyle.Render(truncate(s.Name, 28)),
			valueStyle.Render(color.String(s.Color)),
		)
	}
	fmt.Fprintln(d.w)
	return nil
}

// ListLibraries writes a table of available libraries.
func (d *Display) ListLibraries(libs []library.Meta) error {
	fmt.Fprintln(d.w, i18n.T("preview.availableLibraries", "Available Libraries:"))
	fmt.Fprintln(d.w)

	nameStyle := lipgloss.NewStyle().Width(26)
	for _, l := range libs {
		source := i18n.T("preview.builtin", "built-in")
		if !l.Embedded {
			source = l.Path
		}
		fmt.Fprintf(d.w, "  %s %4d  %s\n", nameStyle.Render(l.Name), l.Swatches, l.Description)
		fmt.Fprintf(d.w, "  %s       %s\n", nameStyle.Render(""), lipgloss.NewStyle().Faint(true).Render(source))
	}
	return nil
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
