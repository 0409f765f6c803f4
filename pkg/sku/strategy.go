package sku

import "github.com/pppGg/pdf-sku-label-tool/pkg/pdf"

// PageInput carries the extraction artifacts of one packing-slip page.
// Both fields are read-only borrowed views of the source page.
type PageInput struct {
	Lines []string
	Words []pdf.Word
}

// Strategy recovers records from one page's input
type Strategy interface {
	Extract(in PageInput) []Record
}

// TextStrategy extracts from plain text lines only
type TextStrategy struct {
	extractor *TextExtractor
}

// NewTextStrategy creates the text-only strategy
func NewTextStrategy(wl *Whitelist) *TextStrategy {
	return &TextStrategy{extractor: NewTextExtractor(wl)}
}

// Extract implements Strategy
func (s *TextStrategy) Extract(in PageInput) []Record {
	return s.extractor.ExtractFromText(in.Lines)
}

// CoordinateStrategy extracts from word bounding boxes only; it yields
// nothing on structural failure
type CoordinateStrategy struct {
	extractor *CoordinateExtractor
}

// NewCoordinateStrategy creates the coordinate-only strategy
func NewCoordinateStrategy(wl *Whitelist) *CoordinateStrategy {
	return &CoordinateStrategy{extractor: NewCoordinateExtractor(wl)}
}

// Extract implements Strategy
func (s *CoordinateStrategy) Extract(in PageInput) []Record {
	records, ok := s.extractor.ExtractFromWords(in.Words)
	if !ok {
		return nil
	}
	return records
}

// fallbackStrategy tries the primary strategy and falls back to the
// secondary when the primary yields nothing
type fallbackStrategy struct {
	primary   Strategy
	secondary Strategy
}

// Extract implements Strategy
func (s fallbackStrategy) Extract(in PageInput) []Record {
	if records := s.primary.Extract(in); len(records) > 0 {
		return records
	}
	return s.secondary.Extract(in)
}

// CoordinateThenText composes the two extraction strategies: coordinates
// first, plain text whenever the coordinate pipeline fails structurally or
// comes back empty. This is the composition the page-pairing driver uses.
func CoordinateThenText(wl *Whitelist) Strategy {
	return fallbackStrategy{
		primary:   NewCoordinateStrategy(wl),
		secondary: NewTextStrategy(wl),
	}
}
