package pdf

import (
	"fmt"
	"io"
	"strings"

	lpdf "github.com/ledongthuc/pdf"
)

// LedongthucDocument implements the Document interface using ledongthuc/pdf.
// This is the primary backend: it exposes per-item coordinates, which the
// coordinate-based extraction depends on.
type LedongthucDocument struct {
	file   io.Closer
	reader *lpdf.Reader
	pages  []Page
}

// OpenWithLedongthuc opens a PDF file using the ledongthuc/pdf library
func OpenWithLedongthuc(filepath string) (Document, error) {
	f, r, err := lpdf.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with ledongthuc: %w", err)
	}

	doc := &LedongthucDocument{
		file:   f,
		reader: r,
	}

	if err := doc.initializePages(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to initialize pages: %w", err)
	}

	return doc, nil
}

// initializePages initializes all pages in the document
func (d *LedongthucDocument) initializePages() error {
	pageCount := d.reader.NumPage()
	d.pages = make([]Page, pageCount)

	for i := 1; i <= pageCount; i++ {
		page, err := newLedongthucPage(d.reader, i)
		if err != nil {
			return fmt.Errorf("failed to initialize page %d: %w", i, err)
		}
		d.pages[i-1] = page
	}

	return nil
}

// GetPages returns all pages in the document
func (d *LedongthucDocument) GetPages() []Page {
	return d.pages
}

// GetPage returns a specific page by index (0-based)
func (d *LedongthucDocument) GetPage(index int) (Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(d.pages))
	}
	return d.pages[index], nil
}

// PageCount returns the total number of pages
func (d *LedongthucDocument) PageCount() int {
	return len(d.pages)
}

// Close releases resources associated with the document
func (d *LedongthucDocument) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}

// LedongthucPage implements the Page interface using ledongthuc/pdf
type LedongthucPage struct {
	pageNumber int
	width      float64
	height     float64
	chars      []CharObject
}

// newLedongthucPage creates a new page using ledongthuc/pdf
func newLedongthucPage(reader *lpdf.Reader, pageNumber int) (Page, error) {
	if pageNumber < 1 || pageNumber > reader.NumPage() {
		return nil, fmt.Errorf("invalid page number: %d", pageNumber)
	}

	page := reader.Page(pageNumber)

	// Default to US Letter when the MediaBox is absent
	width := 612.0
	height := 792.0

	mediaBox := page.V.Key("MediaBox")
	if mediaBox.Kind() == lpdf.Array && mediaBox.Len() == 4 {
		x0 := mediaBox.Index(0).Float64()
		y0 := mediaBox.Index(1).Float64()
		x1 := mediaBox.Index(2).Float64()
		y1 := mediaBox.Index(3).Float64()
		width = x1 - x0
		height = y1 - y0
	}

	p := &LedongthucPage{
		pageNumber: pageNumber,
		width:      width,
		height:     height,
	}
	p.extractChars(page.Content())

	return p, nil
}

// extractChars converts content text items into positioned characters.
// PDF coordinates grow upward from the bottom; everything downstream uses a
// top-left origin, so Y is flipped here once.
func (p *LedongthucPage) extractChars(content lpdf.Content) {
	for _, text := range content.Text {
		fontSize := text.FontSize
		fontHeight := fontSize
		// Baseline sits at roughly 80% of the font height
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
func (p *LedongthucPage) GetPageNumber() int {
	return p.pageNumber
}

// GetWidth returns the page width
func (p *LedongthucPage) GetWidth() float64 {
	return p.width
}

// GetHeight returns the page height
func (p *LedongthucPage) GetHeight() float64 {
	return p.height
}

// GetBBox returns the page bounding box
func (p *LedongthucPage) GetBBox() BoundingBox {
	return BoundingBox{X0: 0, Y0: 0, X1: p.width, Y1: p.height}
}

// ExtractText extracts the full page text in reading order
func (p *LedongthucPage) ExtractText(opts ...WordExtractionOption) string {
	return strings.Join(p.ExtractLines(opts...), "\n")
}

// ExtractLines extracts the page text as an ordered sequence of lines
func (p *LedongthucPage) ExtractLines(opts ...WordExtractionOption) []string {
	config := defaultWordExtractionConfig()
	for _, opt := range opts {
		opt(config)
	}
	return linesFromChars(p.chars, config)
}

// ExtractWords extracts individual words with bounding boxes
func (p *LedongthucPage) ExtractWords(opts ...WordExtractionOption) []Word {
	config := defaultWordExtractionConfig()
	for _, opt := range opts {
		opt(config)
	}
	return wordsFromChars(p.chars, config)
}

// SearchFor returns bounding boxes of literal substring matches
func (p *LedongthucPage) SearchFor(term string) []BoundingBox {
	config := defaultWordExtractionConfig()
	return SearchWords(p.ExtractWords(), term, config.YTolerance)
}
