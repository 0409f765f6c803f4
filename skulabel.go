// Package skulabel turns combined shipping-label/packing-slip PDF documents
// into label-only documents with a SKU summary table stamped onto each label.
package skulabel

import (
	"github.com/pppGg/pdf-sku-label-tool/pkg/layout"
	"github.com/pppGg/pdf-sku-label-tool/pkg/pdf"
	"github.com/pppGg/pdf-sku-label-tool/pkg/pipeline"
	"github.com/pppGg/pdf-sku-label-tool/pkg/sku"
)

// Re-export the types callers need for the public API
type (
	Document             = pdf.Document
	Page                 = pdf.Page
	Word                 = pdf.Word
	BoundingBox          = pdf.BoundingBox
	WordExtractionOption = pdf.WordExtractionOption

	Record    = sku.Record
	Whitelist = sku.Whitelist
	Strategy  = sku.Strategy

	LayoutConfig = layout.Config
	Options      = pipeline.Options
	Processor    = pipeline.Processor
)

// Re-export option functions
var (
	WithXTolerance = pdf.WithXTolerance
	WithYTolerance = pdf.WithYTolerance
)

// Open opens a PDF file for reading
func Open(filepath string) (pdf.Document, error) {
	return pdf.Open(filepath)
}

// LoadWhitelist reads a known-identifier list, one entry per line. Load
// failures yield an empty whitelist rather than an error.
func LoadWhitelist(path string) *sku.Whitelist {
	return sku.LoadWhitelist(path)
}

// DefaultLayout returns the layout configuration for the production label
// template
func DefaultLayout() layout.Config {
	return layout.DefaultConfig()
}

// NewProcessor creates a document processor with the given options
func NewProcessor(opts pipeline.Options) *pipeline.Processor {
	return pipeline.New(opts)
}

// Process runs the full pipeline with default settings: extract records
// from every packing slip of inputPath, stamp the paired labels and write
// the label-only document to outputPath. It returns the label page count.
func Process(inputPath, outputPath, whitelistPath string) (int, error) {
	proc := pipeline.New(pipeline.Options{
		WhitelistPath: whitelistPath,
		Layout:        layout.DefaultConfig(),
	})
	return proc.Process(inputPath, outputPath)
}
