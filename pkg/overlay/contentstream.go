// Package overlay is the write side: it turns layout drawing primitives
// into a PDF content stream and attaches that stream to label pages with
// pdfcpu. Overlays are purely additive; existing page content is never
// removed.
package overlay

import (
	"bytes"
	"fmt"
	"strings"
)

// fontResourceName is the resource key the overlay text operators
// reference; the stamper registers Helvetica under this name
const fontResourceName = "Helv"

// Builder accumulates PDF content-stream operators for one page overlay.
// Callers pass coordinates in the top-left origin used everywhere else in
// this repository; the builder flips Y into PDF user space.
type Builder struct {
	buf        bytes.Buffer
	pageHeight float64
}

// NewBuilder creates a content-stream builder for a page of the given
// height
func NewBuilder(pageHeight float64) *Builder {
	return &Builder{pageHeight: pageHeight}
}

// Rect strokes a rectangle outline. x, y address the top-left corner.
func (b *Builder) Rect(x, y, width, height, lineWidth float64) {
	lly := b.pageHeight - (y + height)
	fmt.Fprintf(&b.buf, "%.2f w\n0 G\n%.2f %.2f %.2f %.2f re\nS\n",
		lineWidth, x, lly, width, height)
}

// Line strokes a segment between two points
func (b *Builder) Line(x0, y0, x1, y1, lineWidth float64) {
	fmt.Fprintf(&b.buf, "%.2f w\n0 G\n%.2f %.2f m\n%.2f %.2f l\nS\n",
		lineWidth, x0, b.pageHeight-y0, x1, b.pageHeight-y1)
}

// Text places a text run with its baseline at (x, y)
func (b *Builder) Text(x, y float64, text string, fontSize float64) {
	fmt.Fprintf(&b.buf, "BT\n/%s %.2f Tf\n0 g\n%.2f %.2f Td\n(%s) Tj\nET\n",
		fontResourceName, fontSize, x, b.pageHeight-y, escapeString(text))
}

// Empty reports whether nothing has been drawn yet
func (b *Builder) Empty() bool {
	return b.buf.Len() == 0
}

// Bytes returns the finished content stream, wrapped in a q/Q pair so the
// overlay cannot leak graphics state into subsequent streams
func (b *Builder) Bytes() []byte {
	var out bytes.Buffer
	out.WriteString("q\n")
	out.Write(b.buf.Bytes())
	out.WriteString("Q")
	return out.Bytes()
}

// escapeString escapes the characters that terminate or confuse a PDF
// literal string
func escapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '(':
			b.WriteString(`\(`)
		case ')':
			b.WriteString(`\)`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
