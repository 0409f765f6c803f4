package sku

import (
	"math"
	"sort"
	"strings"

	"github.com/pppGg/pdf-sku-label-tool/pkg/pdf"
)

// CoordinateExtractor recovers records from word bounding boxes. It locates
// the identifier and quantity columns by their header anchors, clusters
// words into rows, merges rows belonging to one wrapped identifier, and
// normalizes the result against the whitelist. Structural failures are
// reported to the caller instead of being guessed around.
type CoordinateExtractor struct {
	whitelist *Whitelist

	// RowTolerance is the vertical-center proximity, in points, within
	// which words are judged to share a row
	RowTolerance float64
}

// NewCoordinateExtractor creates a coordinate extractor backed by the given
// whitelist
func NewCoordinateExtractor(wl *Whitelist) *CoordinateExtractor {
	return &CoordinateExtractor{
		whitelist:    wl,
		RowTolerance: RowTolerance,
	}
}

// wordRow carries one clustered row's identifier tokens and the pure
// numeric tokens seen in the quantity column
type wordRow struct {
	tokens        []string
	qtyCandidates []int
}

// ExtractFromWords extracts records from one page's words. ok is false when
// the column anchors are missing or inconsistent, or when the pipeline
// yields no records; the caller is expected to fall back to text-based
// extraction in that case.
func (e *CoordinateExtractor) ExtractFromWords(words []pdf.Word) (records []Record, ok bool) {
	if len(words) == 0 {
		return nil, false
	}

	seller, qtyHeader := findColumnAnchors(words)
	if seller == nil || qtyHeader == nil {
		return nil, false
	}

	sellerX0 := seller.X0
	qtyX0 := qtyHeader.X0
	if qtyX0 <= sellerX0 {
		return nil, false
	}

	yMin, yMax := verticalScanRange(words, seller.Y0)

	rows := e.clusterRows(words, yMin, yMax, sellerX0, qtyX0)
	merged := e.mergeWrappedRows(rows)

	for _, row := range merged {
		raw := strings.Join(row.tokens, " ")
		normalized := e.whitelist.Normalize(raw)

		// Reject rows that still look nothing like an identifier
		if !strings.Contains(normalized, MarkerToken) && !e.whitelist.Contains(normalized) {
			continue
		}

		qty := 1
		if n := len(row.qtyCandidates); n > 0 {
			qty = row.qtyCandidates[n-1]
		}
		records = append(records, Record{Identifier: normalized, Quantity: qty})
	}

	if len(records) == 0 {
		return nil, false
	}
	return MergeRecords(records), true
}

// findColumnAnchors locates the header words bounding the identifier
// column: the first word equal to "seller" and the topmost word starting
// with "qty". The later "Qty Total" sits lower on the page and is skipped
// by the topmost rule.
func findColumnAnchors(words []pdf.Word) (seller, qtyHeader *pdf.Word) {
	for i := range words {
		txt := strings.TrimSpace(words[i].Text)
		lower := strings.ToLower(txt)

		if seller == nil && lower == "seller" {
			seller = &words[i]
		}
		if strings.HasPrefix(lower, "qty") {
			if qtyHeader == nil || words[i].Y0 < qtyHeader.Y0 {
				qtyHeader = &words[i]
			}
		}
	}
	return seller, qtyHeader
}

// verticalScanRange bounds the table body: just below the header row, just
// above the bottom-most "qty total" word when present, else the page's
// bottom extent
func verticalScanRange(words []pdf.Word, headerTop float64) (yMin, yMax float64) {
	yMin = headerTop + 1.0

	qtyTotalTop := math.Inf(-1)
	bottom := math.Inf(-1)
	for _, w := range words {
		lower := strings.ToLower(strings.TrimSpace(w.Text))
		if strings.Contains(lower, "qty") && strings.Contains(lower, "total") {
			qtyTotalTop = max(qtyTotalTop, w.Y0)
		}
		bottom = max(bottom, w.Y1)
	}

	if !math.IsInf(qtyTotalTop, -1) {
		return yMin, qtyTotalTop - 1.0
	}
	return yMin, bottom
}

// clusterRows groups the in-range words into rows by top proximity and
// classifies each word as an identifier token or a quantity candidate by
// its horizontal center
func (e *CoordinateExtractor) clusterRows(words []pdf.Word, yMin, yMax, sellerX0, qtyX0 float64) []wordRow {
	var candidates []pdf.Word
	for _, w := range words {
		if c := w.CenterY(); c >= yMin && c <= yMax {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Y0 < candidates[j].Y0
	})

	var groups [][]pdf.Word
	var current []pdf.Word
	currentTop := candidates[0].Y0

	for _, w := range candidates {
		if len(current) > 0 && math.Abs(w.Y0-currentTop) > e.RowTolerance {
			groups = append(groups, current)
			current = []pdf.Word{w}
			currentTop = w.Y0
		} else {
			current = append(current, w)
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	var rows []wordRow
	for _, group := range groups {
		sort.Slice(group, func(i, j int) bool {
			return group[i].X0 < group[j].X0
		})

		var row wordRow
		for _, w := range group {
			txt := strings.TrimSpace(w.Text)
			if txt == "" {
				continue
			}
			// The column label itself is never part of an identifier
			if strings.ToLower(txt) == "qty" {
				continue
			}

			center := w.CenterX()
			if center >= sellerX0 && center < qtyX0 {
				row.tokens = append(row.tokens, txt)
			}
			if center >= qtyX0 && isDigits(txt) {
				row.qtyCandidates = append(row.qtyCandidates, atoiDigits(txt))
			}
		}

		if len(row.tokens) > 0 {
			rows = append(rows, row)
		}
	}

	return rows
}

// mergeWrappedRows joins rows split from one long identifier: starting from
// each row that looks like an identifier start, following rows are absorbed
// as continuations until the next start row or a table-boundary row
func (e *CoordinateExtractor) mergeWrappedRows(rows []wordRow) []wordRow {
	var merged []wordRow

	i := 0
	for i < len(rows) {
		cur := rows[i]
		if !e.isStartRow(cur) {
			i++
			continue
		}

		tokens := append([]string(nil), cur.tokens...)
		qtyCandidates := append([]int(nil), cur.qtyCandidates...)

		j := i + 1
		for j < len(rows) {
			next := rows[j]
			if e.isStartRow(next) || beginsWithBoundaryPhrase(next.tokens) {
				break
			}
			tokens = append(tokens, next.tokens...)
			j++
		}

		merged = append(merged, wordRow{tokens: tokens, qtyCandidates: qtyCandidates})
		i = j
	}

	return merged
}

// isStartRow reports whether a row begins a new identifier: its joined
// tokens contain the marker token, or its first token is a prefix of some
// whitelist entry
func (e *CoordinateExtractor) isStartRow(row wordRow) bool {
	if len(row.tokens) == 0 {
		return false
	}
	if strings.Contains(strings.Join(row.tokens, " "), MarkerToken) {
		return true
	}
	for _, name := range e.whitelist.Entries() {
		if strings.HasPrefix(name, row.tokens[0]) {
			return true
		}
	}
	return false
}

// beginsWithBoundaryPhrase reports whether the row's joined text starts
// with a known table-boundary phrase
func beginsWithBoundaryPhrase(tokens []string) bool {
	lower := strings.ToLower(strings.Join(tokens, " "))
	for _, phrase := range boundaryPhrases {
		if strings.HasPrefix(lower, phrase) {
			return true
		}
	}
	return false
}

// isDigits reports whether s is non-empty and entirely ASCII digits
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// atoiDigits converts a digit-only string; callers must check isDigits
func atoiDigits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
