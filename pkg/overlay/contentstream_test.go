package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pppGg/pdf-sku-label-tool/pkg/pdf"
)

func TestBuilderWrapsStateInQQ(t *testing.T) {
	b := NewBuilder(792)
	b.Line(0, 0, 10, 10, 1)

	stream := string(b.Bytes())
	assert.True(t, strings.HasPrefix(stream, "q\n"))
	assert.True(t, strings.HasSuffix(stream, "Q"))
}

func TestBuilderRectFlipsY(t *testing.T) {
	b := NewBuilder(792)
	// Top-left (40, 100), 320x48: PDF lower-left y = 792-(100+48) = 644
	b.Rect(40, 100, 320, 48, 1)

	stream := string(b.Bytes())
	assert.Contains(t, stream, "40.00 644.00 320.00 48.00 re")
	assert.Contains(t, stream, "1.00 w")
	assert.Contains(t, stream, "S\n")
}

func TestBuilderLineFlipsY(t *testing.T) {
	b := NewBuilder(792)
	b.Line(40, 116, 360, 116, 0.5)

	stream := string(b.Bytes())
	assert.Contains(t, stream, "40.00 676.00 m")
	assert.Contains(t, stream, "360.00 676.00 l")
	assert.Contains(t, stream, "0.50 w")
}

func TestBuilderText(t *testing.T) {
	b := NewBuilder(792)
	b.Text(43, 111, "pack-Y2K-beige53", 9)

	stream := string(b.Bytes())
	assert.Contains(t, stream, "BT")
	assert.Contains(t, stream, "/Helv 9.00 Tf")
	assert.Contains(t, stream, "43.00 681.00 Td")
	assert.Contains(t, stream, "(pack-Y2K-beige53) Tj")
	assert.Contains(t, stream, "ET")
}

func TestBuilderEmpty(t *testing.T) {
	b := NewBuilder(792)
	assert.True(t, b.Empty())

	b.Text(0, 0, "x", 9)
	assert.False(t, b.Empty())
}

func TestEscapeString(t *testing.T) {
	assert.Equal(t, `a\(b\)c`, escapeString("a(b)c"))
	assert.Equal(t, `a\\b`, escapeString(`a\b`))
	assert.Equal(t, `a\nb`, escapeString("a\nb"))
	assert.Equal(t, `a\rb`, escapeString("a\rb"))
	assert.Equal(t, "plain", escapeString("plain"))
}

func TestPageSurfaceRejectsDegenerateGeometry(t *testing.T) {
	s := NewPageSurface(792)

	err := s.DrawRect(pdf.BoundingBox{X0: 10, Y0: 10, X1: 10, Y1: 20}, 1)
	assert.Error(t, err, "zero-width rectangle")

	err = s.DrawRect(pdf.BoundingBox{X0: 10, Y0: 10, X1: 20, Y1: 20}, 0)
	assert.Error(t, err, "zero line width")

	err = s.DrawLine(pdf.Point{X: 5, Y: 5}, pdf.Point{X: 5, Y: 5}, 1)
	assert.Error(t, err, "zero-length line")

	assert.True(t, s.Empty(), "rejected operations must not draw")
}

func TestPageSurfaceRejectsBadText(t *testing.T) {
	s := NewPageSurface(792)

	assert.Error(t, s.InsertText(pdf.Point{}, "", 9))
	assert.Error(t, s.InsertText(pdf.Point{}, "x", 0))
	assert.Error(t, s.InsertText(pdf.Point{}, "snowman ☃", 9), "glyph outside the core font encoding")

	assert.True(t, s.Empty())
}

func TestPageSurfaceStream(t *testing.T) {
	s := NewPageSurface(792)
	require.NoError(t, s.DrawRect(pdf.BoundingBox{X0: 40, Y0: 100, X1: 360, Y1: 148}, 1))
	require.NoError(t, s.InsertText(pdf.Point{X: 43, Y: 111}, "a1", 11))

	stream := string(s.Stream())
	assert.Contains(t, stream, "re")
	assert.Contains(t, stream, "(a1) Tj")
}
