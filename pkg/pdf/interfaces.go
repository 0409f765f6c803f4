package pdf

// Document represents a PDF document opened for extraction
type Document interface {
	// GetPages returns all pages in the document
	GetPages() []Page

	// GetPage returns a specific page by index (0-based)
	GetPage(index int) (Page, error)

	// PageCount returns the total number of pages
	PageCount() int

	// Close releases resources associated with the document
	Close() error
}

// Page represents a single page in a PDF document.
// All coordinates use a top-left origin with Y increasing downward.
type Page interface {
	// GetPageNumber returns the page number (1-based)
	GetPageNumber() int

	// GetWidth returns the page width in points
	GetWidth() float64

	// GetHeight returns the page height in points
	GetHeight() float64

	// GetBBox returns the page bounding box
	GetBBox() BoundingBox

	// ExtractText extracts the full page text in reading order
	ExtractText(opts ...WordExtractionOption) string

	// ExtractLines extracts the page text as an ordered sequence of lines
	ExtractLines(opts ...WordExtractionOption) []string

	// ExtractWords extracts individual words with bounding boxes
	ExtractWords(opts ...WordExtractionOption) []Word

	// SearchFor returns bounding boxes of literal substring matches
	SearchFor(term string) []BoundingBox
}
