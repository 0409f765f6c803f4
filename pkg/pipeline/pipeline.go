// Package pipeline pairs packing-slip pages with their shipping-label
// pages, runs the extraction strategies, overlays the summary tables and
// assembles the label-only output document.
package pipeline

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"

	"github.com/pppGg/pdf-sku-label-tool/pkg/layout"
	"github.com/pppGg/pdf-sku-label-tool/pkg/overlay"
	"github.com/pppGg/pdf-sku-label-tool/pkg/pdf"
	"github.com/pppGg/pdf-sku-label-tool/pkg/sku"
)

// Options configures a Processor
type Options struct {
	// WhitelistPath points at the known-identifier list, one entry per
	// line. Load failures degrade to heuristics-only extraction.
	WhitelistPath string

	// Layout is the table layout configuration
	Layout layout.Config

	// Logger receives per-page progress; nil selects the standard logger
	Logger *logrus.Logger
}

// Processor runs the full document pipeline. It is safe to reuse across
// documents; all mutable state is per call.
type Processor struct {
	whitelist *sku.Whitelist
	strategy  sku.Strategy
	engine    *layout.Engine
	log       *logrus.Logger
}

// New creates a Processor. The whitelist is loaded once here and shared
// read-only across all pages.
func New(opts Options) *Processor {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	wl := sku.LoadWhitelist(opts.WhitelistPath)
	if opts.WhitelistPath != "" && wl.Len() == 0 {
		log.WithField("path", opts.WhitelistPath).
			Warn("whitelist empty or unreadable, extraction falls back to heuristics only")
	}

	return &Processor{
		whitelist: wl,
		strategy:  sku.CoordinateThenText(wl),
		engine:    layout.NewEngine(opts.Layout, nil),
		log:       log,
	}
}

// Pages alternate shipping label / packing slip: with 0-based indexing the
// labels sit at even indices and each packing slip describes the label
// directly before it.

// isPackingSlip reports whether the 0-based page index holds a packing slip
func isPackingSlip(index int) bool {
	return index%2 == 1
}

// labelIndexFor returns the 0-based index of the label page paired with the
// given packing-slip index
func labelIndexFor(packingSlipIndex int) int {
	return packingSlipIndex - 1
}

// labelPageCount returns how many label pages a document of n pages holds
func labelPageCount(n int) int {
	return (n + 1) / 2
}

// Process extracts records from every packing-slip page of inputPath,
// overlays a summary table onto each paired label page and writes a
// document containing only the label pages to outputPath. It returns the
// label page count.
func (p *Processor) Process(inputPath, outputPath string) (int, error) {
	doc, err := pdf.Open(inputPath)
	if err != nil {
		return 0, err
	}
	defer doc.Close()

	stamper, err := overlay.OpenStamper(inputPath)
	if err != nil {
		return 0, err
	}

	pageCount := doc.PageCount()
	p.log.WithFields(logrus.Fields{
		"input": inputPath,
		"pages": pageCount,
	}).Info("processing document")

	for i := 0; i < pageCount; i++ {
		if !isPackingSlip(i) {
			continue
		}
		if err := p.processPair(doc, stamper, i); err != nil {
			return 0, fmt.Errorf("packing slip page %d: %w", i+1, err)
		}
	}

	if err := p.assemble(stamper, outputPath); err != nil {
		return 0, err
	}

	labels := labelPageCount(pageCount)
	p.log.WithFields(logrus.Fields{
		"output": outputPath,
		"labels": labels,
	}).Info("processing complete")

	return labels, nil
}

// processPair extracts records from one packing-slip page and stamps the
// summary table onto its paired label page
func (p *Processor) processPair(doc pdf.Document, stamper *overlay.Stamper, slipIndex int) error {
	slip, err := doc.GetPage(slipIndex)
	if err != nil {
		return err
	}

	records := p.strategy.Extract(sku.PageInput{
		Lines: slip.ExtractLines(),
		Words: slip.ExtractWords(),
	})

	pageLog := p.log.WithFields(logrus.Fields{
		"slip":    slipIndex + 1,
		"label":   labelIndexFor(slipIndex) + 1,
		"records": len(records),
	})

	if len(records) == 0 {
		pageLog.Warn("no records extracted, label left unstamped")
		return nil
	}
	pageLog.Info("records extracted")

	label, err := doc.GetPage(labelIndexFor(slipIndex))
	if err != nil {
		return err
	}

	surface := overlay.NewPageSurface(label.GetHeight())
	report := p.engine.Render(surface, records, layout.PageGeometry{
		Width:  label.GetWidth(),
		Height: label.GetHeight(),
	}, label.SearchFor)

	if report.SkipCount() > 0 {
		pageLog.WithField("skipped", report.Skipped).Warn("some draw operations skipped")
	}
	if surface.Empty() {
		pageLog.Warn("overlay empty, nothing to stamp")
		return nil
	}

	return stamper.AppendContent(label.GetPageNumber(), surface.Stream())
}

// assemble writes the stamped document to a temp file, then keeps only the
// label pages (odd 1-based positions) in the final output
func (p *Processor) assemble(stamper *overlay.Stamper, outputPath string) error {
	tmp, err := os.CreateTemp("", "skulabel-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := stamper.Write(tmpPath); err != nil {
		return err
	}

	if err := api.TrimFile(tmpPath, outputPath, []string{"odd"}, model.NewDefaultConfiguration()); err != nil {
		return fmt.Errorf("failed to assemble label pages: %w", err)
	}
	return nil
}
