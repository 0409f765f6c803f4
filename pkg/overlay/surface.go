package overlay

import (
	"fmt"
	"unicode"

	"github.com/pppGg/pdf-sku-label-tool/pkg/pdf"
)

// PageSurface implements layout.Surface over a content-stream Builder.
// Each draw call validates its own geometry and fails independently, so the
// layout engine can skip a bad operation and keep rendering.
type PageSurface struct {
	builder *Builder
}

// NewPageSurface creates a drawing surface for a page of the given height
func NewPageSurface(pageHeight float64) *PageSurface {
	return &PageSurface{builder: NewBuilder(pageHeight)}
}

// DrawRect strokes a rectangle outline
func (s *PageSurface) DrawRect(rect pdf.BoundingBox, lineWidth float64) error {
	if rect.Width() <= 0 || rect.Height() <= 0 {
		return fmt.Errorf("degenerate rectangle %.2fx%.2f", rect.Width(), rect.Height())
	}
	if lineWidth <= 0 {
		return fmt.Errorf("invalid line width %.2f", lineWidth)
	}
	s.builder.Rect(rect.X0, rect.Y0, rect.Width(), rect.Height(), lineWidth)
	return nil
}

// DrawLine strokes a line segment
func (s *PageSurface) DrawLine(from, to pdf.Point, lineWidth float64) error {
	if from == to {
		return fmt.Errorf("degenerate line at (%.2f, %.2f)", from.X, from.Y)
	}
	if lineWidth <= 0 {
		return fmt.Errorf("invalid line width %.2f", lineWidth)
	}
	s.builder.Line(from.X, from.Y, to.X, to.Y, lineWidth)
	return nil
}

// InsertText places a text run with its baseline at the given point. Runs
// containing glyphs outside the Latin-1 range of the core font are rejected
// rather than rendered as garbage.
func (s *PageSurface) InsertText(at pdf.Point, text string, fontSize float64) error {
	if text == "" {
		return fmt.Errorf("empty text run")
	}
	if fontSize <= 0 {
		return fmt.Errorf("invalid font size %.2f", fontSize)
	}
	for _, r := range text {
		if r > unicode.MaxLatin1 {
			return fmt.Errorf("glyph %q not encodable in %s", r, overlayBaseFont)
		}
	}
	s.builder.Text(at.X, at.Y, text, fontSize)
	return nil
}

// Empty reports whether nothing was drawn
func (s *PageSurface) Empty() bool {
	return s.builder.Empty()
}

// Stream returns the finished overlay content stream
func (s *PageSurface) Stream() []byte {
	return s.builder.Bytes()
}
