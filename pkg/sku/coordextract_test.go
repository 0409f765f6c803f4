package sku

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pppGg/pdf-sku-label-tool/pkg/pdf"
)

// word builds a synthetic word one text-height tall at the given position
func word(text string, x, y float64) pdf.Word {
	return pdf.Word{Text: text, X0: x, Y0: y, X1: x + 8*float64(len(text)), Y1: y + 10}
}

// slipWords builds a minimal packing-slip table: header anchors at y=100,
// body rows below, the qty column starting at x=400
func slipWords(rows ...[]pdf.Word) []pdf.Word {
	words := []pdf.Word{
		word("Seller", 50, 100),
		word("SKU", 110, 100),
		word("Qty", 400, 100),
	}
	for _, r := range rows {
		words = append(words, r...)
	}
	words = append(words, word("Qty Total", 50, 300))
	return words
}

func TestExtractFromWordsSimpleRows(t *testing.T) {
	e := NewCoordinateExtractor(nil)

	words := slipWords(
		[]pdf.Word{word("Ink-pack-Y2K-beige53", 50, 120), word("2", 405, 120)},
		[]pdf.Word{word("Ink-card-metro10", 50, 140), word("3", 405, 140)},
	)

	records, ok := e.ExtractFromWords(words)
	require.True(t, ok)
	assert.Equal(t, []Record{
		{Identifier: "Ink-pack-Y2K-beige53", Quantity: 2},
		{Identifier: "Ink-card-metro10", Quantity: 3},
	}, records)
}

func TestExtractFromWordsMissingAnchors(t *testing.T) {
	e := NewCoordinateExtractor(nil)

	_, ok := e.ExtractFromWords([]pdf.Word{
		word("Ink-pack-Y2K-beige53", 50, 120),
		word("2", 405, 120),
	})
	assert.False(t, ok, "no header anchors, caller must fall back to text extraction")

	_, ok = e.ExtractFromWords(nil)
	assert.False(t, ok)
}

func TestExtractFromWordsInvertedAnchors(t *testing.T) {
	e := NewCoordinateExtractor(nil)

	// Qty header left of the Seller header is structurally inconsistent
	_, ok := e.ExtractFromWords([]pdf.Word{
		word("Seller", 400, 100),
		word("Qty", 50, 100),
		word("Ink-pack-x", 60, 120),
	})
	assert.False(t, ok)
}

func TestExtractFromWordsDefaultQuantity(t *testing.T) {
	e := NewCoordinateExtractor(nil)

	words := slipWords(
		[]pdf.Word{word("Ink-pack-Y2K-beige53", 50, 120)},
	)

	records, ok := e.ExtractFromWords(words)
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].Quantity, "a row without a numeric cell defaults to quantity 1")
}

func TestExtractFromWordsLastQuantityCandidateWins(t *testing.T) {
	e := NewCoordinateExtractor(nil)

	words := slipWords(
		[]pdf.Word{word("Ink-pack-Y2K-beige53", 50, 120), word("12345", 405, 120), word("4", 460, 120)},
	)

	records, ok := e.ExtractFromWords(words)
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, 4, records[0].Quantity)
}

func TestExtractFromWordsWrappedRowMerge(t *testing.T) {
	wl := NewWhitelist([]string{"Ink-pack-Y2K-(beige53+pink53)"})
	e := NewCoordinateExtractor(wl)

	words := slipWords(
		[]pdf.Word{word("Ink-pack-Y2K-", 50, 120), word("2", 405, 120)},
		[]pdf.Word{word("beige53", 50, 135)},
		[]pdf.Word{word("pink53", 50, 150)},
	)

	records, ok := e.ExtractFromWords(words)
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, "Ink-pack-Y2K-(beige53+pink53)", records[0].Identifier)
	assert.Equal(t, 2, records[0].Quantity)
}

func TestExtractFromWordsMergeStopsAtBoundaryRow(t *testing.T) {
	e := NewCoordinateExtractor(nil)

	words := slipWords(
		[]pdf.Word{word("Ink-pack-Y2K-beige53", 50, 120), word("2", 405, 120)},
		[]pdf.Word{word("Order", 50, 140), word("ID", 100, 140)},
		[]pdf.Word{word("trailing", 50, 160), word("noise", 120, 160)},
	)

	records, ok := e.ExtractFromWords(words)
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, "Ink-pack-Y2K-beige53", records[0].Identifier)
}

func TestExtractFromWordsRowsOutsideScanRangeIgnored(t *testing.T) {
	e := NewCoordinateExtractor(nil)

	words := slipWords(
		[]pdf.Word{word("Ink-pack-Y2K-beige53", 50, 120), word("2", 405, 120)},
		// Below the "Qty Total" row at y=300, outside the table body
		[]pdf.Word{word("Ink-pack-phantom", 50, 320), word("9", 405, 320)},
	)

	records, ok := e.ExtractFromWords(words)
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, "Ink-pack-Y2K-beige53", records[0].Identifier)
	assert.Equal(t, 2, records[0].Quantity)
}

func TestExtractFromWordsNoIdentifierRows(t *testing.T) {
	e := NewCoordinateExtractor(nil)

	// Body rows carry no marker token and no whitelist member
	words := slipWords(
		[]pdf.Word{word("random", 50, 120), word("2", 405, 120)},
	)

	_, ok := e.ExtractFromWords(words)
	assert.False(t, ok)
}

func TestCoordinateThenTextFallback(t *testing.T) {
	strategy := CoordinateThenText(nil)

	// Words without anchors force the text fallback
	records := strategy.Extract(PageInput{
		Lines: []string{"SKU QTY", "Ink-pack-Y2K-beige53 2"},
		Words: []pdf.Word{word("Ink-pack-Y2K-beige53", 50, 120)},
	})
	require.Len(t, records, 1)
	assert.Equal(t, Record{Identifier: "Ink-pack-Y2K-beige53", Quantity: 2}, records[0])
}

func TestCoordinateStrategyPreferred(t *testing.T) {
	strategy := CoordinateThenText(nil)

	words := slipWords(
		[]pdf.Word{word("Ink-card-metro10", 50, 120), word("3", 405, 120)},
	)

	// The text lines disagree on purpose; coordinates must win
	records := strategy.Extract(PageInput{
		Lines: []string{"SKU QTY", "Ink-other 9"},
		Words: words,
	})
	require.Len(t, records, 1)
	assert.Equal(t, Record{Identifier: "Ink-card-metro10", Quantity: 3}, records[0])
}
