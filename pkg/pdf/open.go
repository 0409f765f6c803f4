// Package pdf provides the read-side document model: page text as lines,
// words with bounding boxes, page dimensions and literal text search.
package pdf

import "fmt"

// Open opens a PDF file, trying the ledongthuc backend first for its
// accurate per-item coordinates, then falling back to dslipak
func Open(filepath string) (Document, error) {
	doc, err := OpenWithLedongthuc(filepath)
	if err == nil {
		return doc, nil
	}

	doc, dErr := OpenWithDslipak(filepath)
	if dErr == nil {
		return doc, nil
	}

	return nil, fmt.Errorf("unable to open %s: %w", filepath, err)
}
