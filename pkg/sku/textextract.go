package sku

import (
	"strconv"
	"strings"
	"unicode"
)

// TextExtractor recovers records by scanning raw line-oriented page text
// with pattern heuristics and the whitelist. It is the lower-fidelity
// strategy used when no word coordinates are available or the
// coordinate-based extraction fails structurally.
type TextExtractor struct {
	whitelist *Whitelist
}

// NewTextExtractor creates a text extractor backed by the given whitelist.
// A nil or empty whitelist selects heuristics-only mode.
func NewTextExtractor(wl *Whitelist) *TextExtractor {
	return &TextExtractor{whitelist: wl}
}

// ExtractFromText extracts deduplicated records from one page's text lines.
//
// The scan is a two-state machine: lines are ignored until the header line
// (containing "SKU" and a quantity keyword) is seen, then every following
// line is inspected. Identifier lines carrying the marker token are parsed
// token-wise up to the first integer (the quantity); identifiers wrapped
// across lines are recovered via a pending buffer and a look-ahead for
// short trailing suffix tokens on the next line.
func (e *TextExtractor) ExtractFromText(lines []string) []Record {
	var records []Record

	foundHeader := false
	headerIndex := -1
	qtyTotalIndex := -1

	var pendingParts []string
	var pendingQty *int

	flushPending := func() {
		if len(pendingParts) > 0 && pendingQty != nil {
			records = append(records, Record{
				Identifier: strings.Join(pendingParts, " "),
				Quantity:   *pendingQty,
			})
			pendingParts = nil
			pendingQty = nil
		}
	}

	for i, rawLine := range lines {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			// A blank line ends any record still being assembled
			flushPending()
			continue
		}

		upper := strings.ToUpper(line)
		if !foundHeader && strings.Contains(upper, headerKeyword) &&
			(strings.Contains(upper, qtyKeyword) || strings.Contains(upper, quantityKeyword)) {
			foundHeader = true
			headerIndex = i
			continue
		}

		if qtyTotalIndex < 0 && strings.Contains(upper, qtyTotalMarker) {
			qtyTotalIndex = i
		}

		if !foundHeader {
			continue
		}

		// Known identifiers appearing verbatim bypass the heuristics
		if matched := e.matchWhitelistInLine(line); len(matched) > 0 {
			records = append(records, matched...)
			continue
		}

		if strings.Contains(line, MarkerToken) {
			parts, qty, ok := parseMarkerLine(line)
			if !ok {
				continue
			}
			if qty != nil {
				if i+1 < len(lines) {
					if suffix, ok := continuationSuffix(lines[i+1]); ok {
						parts = append(parts, suffix)
					}
				}
				records = append(records, Record{
					Identifier: joinIdentifierParts(parts),
					Quantity:   *qty,
				})
			} else {
				// Identifier wraps onto following lines; keep the parts
				// until a quantity shows up
				pendingParts = parts
			}
			continue
		}

		// Continuation line: a bare integer completes a pending identifier
		for _, token := range strings.Fields(line) {
			qty, err := strconv.Atoi(token)
			if err != nil {
				continue
			}
			if len(pendingParts) > 0 {
				records = append(records, Record{
					Identifier: strings.Join(pendingParts, " "),
					Quantity:   qty,
				})
				pendingParts = nil
				pendingQty = nil
			}
			break
		}
	}

	flushPending()

	records = e.backfillFromWhitelist(records, lines, headerIndex, qtyTotalIndex)

	return MergeRecords(records)
}

// matchWhitelistInLine emits every whitelist entry appearing verbatim in the
// line, with the quantity parsed from a trailing integer after the match
func (e *TextExtractor) matchWhitelistInLine(line string) []Record {
	var matched []Record
	for _, entry := range e.whitelist.Entries() {
		idx := strings.Index(line, entry)
		if idx < 0 {
			continue
		}
		qty := 1
		if n, ok := trailingInteger(line[idx+len(entry):]); ok {
			qty = n
		}
		matched = append(matched, Record{Identifier: entry, Quantity: qty})
	}
	return matched
}

// parseMarkerLine tokenizes a marker line into identifier parts and the
// first pure-integer token as quantity. qty is nil when the line holds no
// integer, meaning the identifier continues on following lines.
func parseMarkerLine(line string) (parts []string, qty *int, ok bool) {
	tokens := strings.Fields(line)

	start := -1
	for j, token := range tokens {
		if strings.Contains(token, MarkerToken) {
			start = j
			break
		}
	}
	if start < 0 {
		return nil, nil, false
	}

	for _, token := range tokens[start:] {
		if n, err := strconv.Atoi(token); err == nil {
			qty = &n
			break
		}
		parts = append(parts, token)
	}

	if len(parts) == 0 {
		return nil, nil, false
	}
	return parts, qty, true
}

// continuationSuffix inspects the line following an identifier line for a
// short trailing alphanumeric token that looks like a wrapped identifier
// suffix. Tokens are checked from line end backwards; description keywords
// terminate the scan instead.
func continuationSuffix(nextLine string) (string, bool) {
	tokens := strings.Fields(strings.TrimSpace(nextLine))
	for k := len(tokens) - 1; k >= 0; k-- {
		token := tokens[k]
		plain := strings.Map(func(r rune) rune {
			if r == '-' || r == '_' {
				return -1
			}
			return r
		}, token)

		if len(token) >= continuationMinLen && len(token) <= continuationMaxLen && isAlnum(plain) {
			if !containsAnyKeyword(token, continuationRejectKeywords) {
				return token, true
			}
		} else if containsAnyKeyword(token, descriptionKeywords) {
			break
		}
	}
	return "", false
}

// backfillFromWhitelist sweeps the table region (header line to the
// "QTY TOTAL" line, or end of page) for whitelist entries the line scan
// missed, tolerating order-independent line-wrap splitting for composite
// entries. A composite match is considered more authoritative than a
// heuristic fragment sharing its prefix and evicts it.
func (e *TextExtractor) backfillFromWhitelist(records []Record, lines []string, headerIndex, qtyTotalIndex int) []Record {
	if e.whitelist.Len() == 0 || headerIndex < 0 {
		return records
	}

	end := len(lines)
	if qtyTotalIndex >= 0 {
		end = qtyTotalIndex
	}
	if headerIndex+1 > end {
		return records
	}

	var regionParts []string
	for _, line := range lines[headerIndex+1 : end] {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			regionParts = append(regionParts, trimmed)
		}
	}
	regionText := strings.Join(regionParts, " ")

	existing := make(map[string]struct{}, len(records))
	for _, r := range records {
		existing[r.Identifier] = struct{}{}
	}

	for _, entry := range e.whitelist.Entries() {
		if _, ok := existing[entry]; ok {
			continue
		}

		matched := false
		replacementBase := ""

		if strings.Contains(regionText, entry) {
			matched = true
		} else if prefix, parts, ok := splitComposite(entry); ok {
			if prefix != "" && strings.Contains(regionText, prefix) && allContained(regionText, parts) {
				matched = true
				replacementBase = prefix
			}
		}

		if !matched {
			continue
		}

		if replacementBase != "" {
			// Heuristic fragments drop edge hyphens during joining, so the
			// base is compared hyphen-trimmed
			base := strings.TrimRight(replacementBase, "-")
			kept := records[:0]
			for _, r := range records {
				if strings.HasPrefix(r.Identifier, base) && r.Identifier != entry {
					continue
				}
				kept = append(kept, r)
			}
			records = kept
		}

		records = append(records, Record{Identifier: entry, Quantity: 1})
	}

	return records
}

// joinIdentifierParts joins identifier parts with hyphens when every part is
// alphanumeric or hyphenated, otherwise with spaces. Repeated hyphens are
// collapsed and edge hyphens stripped.
func joinIdentifierParts(parts []string) string {
	hyphenate := true
	for _, part := range parts {
		if !strings.Contains(part, "-") && !isAlnum(part) {
			hyphenate = false
			break
		}
	}

	var joined string
	if hyphenate {
		joined = strings.Join(parts, "-")
	} else {
		joined = strings.Join(parts, " ")
	}

	return strings.Trim(collapseHyphens(joined), "-")
}

// collapseHyphens reduces runs of hyphens to a single hyphen
func collapseHyphens(s string) string {
	var b strings.Builder
	prevHyphen := false
	for _, r := range s {
		if r == '-' {
			if prevHyphen {
				continue
			}
			prevHyphen = true
		} else {
			prevHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// trailingInteger parses an integer terminating s (ignoring trailing
// whitespace)
func trailingInteger(s string) (int, bool) {
	s = strings.TrimRight(s, " \t")
	end := len(s)
	start := end
	for start > 0 && s[start-1] >= '0' && s[start-1] <= '9' {
		start--
	}
	if start == end {
		return 0, false
	}
	n, err := strconv.Atoi(s[start:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// isAlnum reports whether s is non-empty and entirely letters and digits
func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// containsAnyKeyword reports whether the lowercased token contains any of
// the keywords as a substring
func containsAnyKeyword(token string, keywords []string) bool {
	lower := strings.ToLower(token)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// allContained reports whether every part occurs somewhere in text
func allContained(text string, parts []string) bool {
	for _, p := range parts {
		if !strings.Contains(text, p) {
			return false
		}
	}
	return true
}
