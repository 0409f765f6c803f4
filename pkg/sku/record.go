// Package sku recovers (identifier, quantity) records from packing-slip
// pages, using either the page's plain text lines or its positioned words.
package sku

import "strings"

// Record is a normalized (identifier, quantity) pair extracted from a
// packing slip. Records are immutable once created.
type Record struct {
	Identifier string
	Quantity   int
}

// NormalizeSpace collapses whitespace runs into single spaces and trims the
// result. Record identity for deduplication uses this form.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// MergeRecords deduplicates records by whitespace-normalized identifier,
// summing quantities. First-occurrence order is preserved.
func MergeRecords(records []Record) []Record {
	seen := make(map[string]int, len(records))
	var order []string

	for _, r := range records {
		id := NormalizeSpace(r.Identifier)
		if _, ok := seen[id]; !ok {
			order = append(order, id)
		}
		seen[id] += r.Quantity
	}

	merged := make([]Record, 0, len(order))
	for _, id := range order {
		merged = append(merged, Record{Identifier: id, Quantity: seen[id]})
	}
	return merged
}
