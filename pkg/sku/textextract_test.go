package sku

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFromTextIgnoresEverythingBeforeHeader(t *testing.T) {
	e := NewTextExtractor(nil)

	lines := []string{
		"Ink-pack-phantom 5", // before the header, must not count
		"Order ID: 12345",
		"SKU Qty",
		"Ink-pack-Y2K-beige53 2",
	}

	records := e.ExtractFromText(lines)
	require.Len(t, records, 1)
	assert.Equal(t, Record{Identifier: "Ink-pack-Y2K-beige53", Quantity: 2}, records[0])
}

func TestExtractFromTextAcceptsQuantityHeader(t *testing.T) {
	e := NewTextExtractor(nil)

	records := e.ExtractFromText([]string{
		"Product SKU and Quantity",
		"Ink-card-metro10 3",
	})
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].Quantity)
}

func TestExtractFromTextMarkerLineTokens(t *testing.T) {
	e := NewTextExtractor(nil)

	// Tokens before the marker belong to the description column and are
	// dropped; parsing stops at the first integer
	records := e.ExtractFromText([]string{
		"SKU QTY",
		"Y2K Sticker Pack Ink-pack-Y2K-beige53 4 $1.99",
	})
	require.Len(t, records, 1)
	assert.Equal(t, "Ink-pack-Y2K-beige53", records[0].Identifier)
	assert.Equal(t, 4, records[0].Quantity)
}

func TestExtractFromTextPendingCompletedByBareInteger(t *testing.T) {
	e := NewTextExtractor(nil)

	// The identifier line carries no quantity; a later line supplies it
	records := e.ExtractFromText([]string{
		"SKU QTY",
		"Ink-pack-Y2K-beige53",
		"2",
	})
	require.Len(t, records, 1)
	assert.Equal(t, Record{Identifier: "Ink-pack-Y2K-beige53", Quantity: 2}, records[0])
}

func TestExtractFromTextContinuationSuffix(t *testing.T) {
	e := NewTextExtractor(nil)

	// The wrapped suffix "53" on the next line is appended before the join
	records := e.ExtractFromText([]string{
		"SKU QTY",
		"Ink-pack-Y2K-beige 2",
		"53",
	})
	require.Len(t, records, 1)
	assert.Equal(t, "Ink-pack-Y2K-beige-53", records[0].Identifier)
	assert.Equal(t, 2, records[0].Quantity)
}

func TestContinuationSuffix(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		suffix string
		ok     bool
	}{
		{"short alnum token", "53", "53", true},
		{"hyphenated token stripped for the check", "a-1", "a-1", true},
		{"reject keyword", "for", "", false},
		{"too long", "beige53x", "", false},
		{"too short", "x", "", false},
		{"description keyword stops the scan", "beige sticker", "", false},
		{"scan runs from line end", "ignored blah 53", "53", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suffix, ok := continuationSuffix(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.suffix, suffix)
		})
	}
}

func TestJoinIdentifierParts(t *testing.T) {
	// All parts alphanumeric or hyphenated: hyphen join with collapsing
	assert.Equal(t, "Ink-pack-Y2K-beige53", joinIdentifierParts([]string{"Ink-pack-", "Y2K", "beige53"}))

	// A part with other punctuation forces a space join
	assert.Equal(t, "Ink-pack (v2) x", joinIdentifierParts([]string{"Ink-pack", "(v2)", "x"}))

	// Edge hyphens are stripped
	assert.Equal(t, "Ink-a", joinIdentifierParts([]string{"-Ink", "a-"}))
}

func TestExtractFromTextWhitelistLineBypassesHeuristics(t *testing.T) {
	wl := NewWhitelist([]string{"Ink-pack-Y2K-beige53"})
	e := NewTextExtractor(wl)

	records := e.ExtractFromText([]string{
		"SKU QTY",
		"Y2K Sticker Ink-pack-Y2K-beige53 7",
	})
	require.Len(t, records, 1)
	assert.Equal(t, Record{Identifier: "Ink-pack-Y2K-beige53", Quantity: 7}, records[0])
}

func TestExtractFromTextBackfillAddsMissedEntry(t *testing.T) {
	wl := NewWhitelist([]string{"Metro Card 10"})
	e := NewTextExtractor(wl)

	// The entry wraps across two lines so the per-line scan misses it, but
	// the joined region text still contains it verbatim
	records := e.ExtractFromText([]string{
		"SKU QTY",
		"Metro",
		"Card 10",
		"QTY TOTAL 1",
	})
	require.Len(t, records, 1)
	assert.Equal(t, Record{Identifier: "Metro Card 10", Quantity: 1}, records[0])
}

func TestExtractFromTextBackfillCompositeEvictsFragment(t *testing.T) {
	wl := NewWhitelist([]string{"Ink-pack-Y2K-(beige53+pink53)"})
	e := NewTextExtractor(wl)

	records := e.ExtractFromText([]string{
		"SKU QTY",
		"Ink-pack-Y2K- 2",
		"beige53 pink53",
		"QTY TOTAL 2",
	})

	// The heuristic fragment "Ink-pack-Y2K-" is evicted in favor of the
	// composite whitelist entry
	require.Len(t, records, 1)
	assert.Equal(t, "Ink-pack-Y2K-(beige53+pink53)", records[0].Identifier)
	assert.Equal(t, 1, records[0].Quantity)
}

func TestExtractFromTextDedupSumsQuantities(t *testing.T) {
	e := NewTextExtractor(nil)

	records := e.ExtractFromText([]string{
		"SKU QTY",
		"Ink-pack-Y2K-beige53 2",
		"Ink-pack-Y2K-beige53 3",
	})
	require.Len(t, records, 1)
	assert.Equal(t, 5, records[0].Quantity)
}

func TestExtractFromTextEmptyAndHeaderless(t *testing.T) {
	e := NewTextExtractor(nil)

	assert.Empty(t, e.ExtractFromText(nil))
	assert.Empty(t, e.ExtractFromText([]string{"no table here", "Ink-pack-x 2"}))
}

func TestTrailingInteger(t *testing.T) {
	n, ok := trailingInteger(" 12")
	require.True(t, ok)
	assert.Equal(t, 12, n)

	n, ok = trailingInteger("  7  ")
	require.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = trailingInteger(" x")
	assert.False(t, ok)

	_, ok = trailingInteger("")
	assert.False(t, ok)
}

func TestMergeRecords(t *testing.T) {
	merged := MergeRecords([]Record{
		{Identifier: "Ink-a  b", Quantity: 1},
		{Identifier: "Ink-c", Quantity: 2},
		{Identifier: "Ink-a b", Quantity: 3},
	})

	assert.Equal(t, []Record{
		{Identifier: "Ink-a b", Quantity: 4},
		{Identifier: "Ink-c", Quantity: 2},
	}, merged)
}
