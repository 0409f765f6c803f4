package pdf

import (
	"fmt"
	"strings"

	gopdf "github.com/dslipak/pdf"
)

// DslipakDocument implements the Document interface using dslipak/pdf.
// Used as a fallback when ledongthuc fails to open a document.
type DslipakDocument struct {
	reader *gopdf.Reader
	pages  []Page
}

// OpenWithDslipak opens a PDF file using the dslipak/pdf library
func OpenWithDslipak(filepath string) (Document, error) {
	r, err := gopdf.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with dslipak: %w", err)
	}

	doc := &DslipakDocument{reader: r}

	if err := doc.initializePages(); err != nil {
		return nil, fmt.Errorf("failed to initialize pages: %w", err)
	}

	return doc, nil
}

// initializePages initializes all pages in the document
func (d *DslipakDocument) initializePages() error {
	pageCount := d.reader.NumPage()
	d.pages = make([]Page, pageCount)

	for i := 1; i <= pageCount; i++ {
		page, err := newDslipakPage(d.reader, i)
		if err != nil {
			return fmt.Errorf("failed to initialize page %d: %w", i, err)
		}
		d.pages[i-1] = page
	}

	return nil
}

// GetPages returns all pages in the document
func (d *DslipakDocument) GetPages() []Page {
	return d.pages
}

// GetPage returns a specific page by index (0-based)
func (d *DslipakDocument) GetPage(index int) (Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(d.pages))
	}
	return d.pages[index], nil
}

// PageCount returns the total number of pages
func (d *DslipakDocument) PageCount() int {
	return len(d.pages)
}

// Close releases resources associated with the document
func (d *DslipakDocument) Close() error {
	d.reader = nil
	d.pages = nil
	return nil
}

// DslipakPage implements the Page interface using dslipak/pdf
type DslipakPage struct {
	pageNumber int
	width      float64
	height     float64
	chars      []CharObject
}

// newDslipakPage creates a new page using dslipak/pdf
func newDslipakPage(reader *gopdf.Reader, pageNumber int) (Page, error) {
	if pageNumber < 1 || pageNumber > reader.NumPage() {
		return nil, fmt.Errorf("invalid page number: %d", pageNumber)
	}

	page := reader.Page(pageNumber)

	// The dslipak library does not expose the MediaBox; assume US Letter
	p := &DslipakPage{
		pageNumber: pageNumber,
		width:      612.0,
		height:     792.0,
	}
	p.extractChars(page.Content())

	return p, nil
}

// extractChars converts content text items into positioned characters,
// flipping Y into a top-left origin
func (p *DslipakPage) extractChars(content gopdf.Content) {
	for _, text := range content.Text {
		fontSize := text.FontSize
		fontHeight := fontSize
		yTopPDF := text.Y + fontHeight*0.8
		y0 := p.height - yTopPDF

		runes := []rune(text.S)
		if len(runes) == 0 {
			continue
		}

		charWidth := text.W / float64(len(runes))
		x := text.X

		for _, ch := range runes {
			if ch != ' ' {
				p.chars = append(p.chars, CharObject{
					Text:     string(ch),
					Font:     text.Font,
					FontSize: fontSize,
					X0:       x,
					Y0:       y0,
					X1:       x + charWidth,
					Y1:       y0 + fontHeight,
					Width:    charWidth,
					Height:   fontHeight,
				})
			}
			x += charWidth
		}
	}
}

// GetPageNumber returns the page number (1-based)
func (p *DslipakPage) GetPageNumber() int {
	return p.pageNumber
}

// GetWidth returns the page width
func (p *DslipakPage) GetWidth() float64 {
	return p.width
}

// GetHeight returns the page height
func (p *DslipakPage) GetHeight() float64 {
	return p.height
}

// GetBBox returns the page bounding box
func (p *DslipakPage) GetBBox() BoundingBox {
	return BoundingBox{X0: 0, Y0: 0, X1: p.width, Y1: p.height}
}

// ExtractText extracts the full page text in reading order
func (p *DslipakPage) ExtractText(opts ...WordExtractionOption) string {
	return strings.Join(p.ExtractLines(opts...), "\n")
}

// ExtractLines extracts the page text as an ordered sequence of lines
func (p *DslipakPage) ExtractLines(opts ...WordExtractionOption) []string {
	config := defaultWordExtractionConfig()
	for _, opt := range opts {
		opt(config)
	}
	return linesFromChars(p.chars, config)
}

// ExtractWords extracts individual words with bounding boxes
func (p *DslipakPage) ExtractWords(opts ...WordExtractionOption) []Word {
	config := defaultWordExtractionConfig()
	for _, opt := range opts {
		opt(config)
	}
	return wordsFromChars(p.chars, config)
}

// SearchFor returns bounding boxes of literal substring matches
func (p *DslipakPage) SearchFor(term string) []BoundingBox {
	config := defaultWordExtractionConfig()
	return SearchWords(p.ExtractWords(), term, config.YTolerance)
}
