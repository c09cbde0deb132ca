// Package textmetrics measures label text for layout.
//
// Labels are measured with the Go Regular face, whose advance widths are close
// to Helvetica's. Measurements are in points at 72 DPI.
package textmetrics

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Measurer measures strings at any font size. Faces are built lazily and
// cached per size. A Measurer is safe for concurrent use.
type Measurer struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// New parses the embedded Go Regular font.
func New() (*Measurer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse label font: %w", err)
	}
	return &Measurer{font: f, faces: make(map[float64]font.Face)}, nil
}

var (
	defaultOnce     sync.Once
	defaultMeasurer *Measurer
	defaultErr      error
)

// Default returns a shared Measurer.
func Default() (*Measurer, error) {
	defaultOnce.Do(func() {
		defaultMeasurer, defaultErr = New()
	})
	return defaultMeasurer, defaultErr
}

func (m *Measurer) face(size float64) (font.Face, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if face, ok := m.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[size] = face
	return face, nil
}

// Width returns the advance width of text at size.
func (m *Measurer) Width(text string, size float64) float64 {
	if text == "" || size <= 0 {
		return 0
	}
	face, err := m.face(size)
	if err != nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return toFloat(font.MeasureString(face, text))
}

// Ascent returns the distance from the baseline to the top of the face.
func (m *Measurer) Ascent(size float64) float64 {
	if size <= 0 {
		return 0
	}
	face, err := m.face(size)
	if err != nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return toFloat(face.Metrics().Ascent)
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
