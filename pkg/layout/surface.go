package layout

import (
	"github.com/pppGg/pdf-sku-label-tool/pkg/pdf"
)

// Surface receives the overlay drawing primitives for one target page.
// Each call may fail independently (bad glyph, degenerate geometry); the
// engine records such failures as skips and keeps going, so a single bad
// draw never blanks the whole overlay.
type Surface interface {
	// DrawRect strokes a rectangle outline
	DrawRect(rect pdf.BoundingBox, lineWidth float64) error

	// DrawLine strokes a line segment
	DrawLine(from, to pdf.Point, lineWidth float64) error

	// InsertText places a text run with its baseline at the given point
	InsertText(at pdf.Point, text string, fontSize float64) error
}

// SearchFunc returns the bounding boxes of literal substring matches on the
// target page; used to locate the table anchor
type SearchFunc func(term string) []pdf.BoundingBox

// PageGeometry carries the target page dimensions in points
type PageGeometry struct {
	Width  float64
	Height float64
}

// SkippedOp records one failed draw operation
type SkippedOp struct {
	Op     string
	Reason string
}

// RenderReport aggregates per-operation outcomes of one table rendering.
// Tests assert on skip counts instead of digging through swallowed errors.
type RenderReport struct {
	Ok      int
	Skipped []SkippedOp
}

// SkipCount returns the number of skipped draw operations
func (r *RenderReport) SkipCount() int {
	return len(r.Skipped)
}

// record books the outcome of a single draw call
func (r *RenderReport) record(op string, err error) {
	if err != nil {
		r.Skipped = append(r.Skipped, SkippedOp{Op: op, Reason: err.Error()})
		return
	}
	r.Ok++
}
