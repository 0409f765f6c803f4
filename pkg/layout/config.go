// Package layout lays recovered records out into a fixed-size grid on a
// shipping-label page: grid geometry, merged-row policy for long
// identifiers, adaptive font sizing and truncation, and best-effort
// emission of drawing primitives.
package layout

// OverflowSentinel is appended as a placeholder record when more records
// exist than the display cap allows
const OverflowSentinel = "Check More"

// Geometry ratios and paddings, tuned to the label template. Kept as named
// constants so synthetic-geometry tests can reason about them.
const (
	// sideMarginRatio is the symmetric horizontal margin, as a fraction
	// of page width, keeping the table inside the label's border lines
	sideMarginRatio = 0.10

	// identifierColRatio and qtyColRatio split a name+quantity column
	// pair; two pairs make up one row
	identifierColRatio = 0.40
	qtyColRatio        = 0.10

	// addressRegionRatio reserves the bottom of the page for the
	// recipient address block
	addressRegionRatio = 0.15

	// defaultOriginRatio places the table when neither a fixed position
	// nor an anchor match is available
	defaultOriginRatio = 0.55

	// cellPadding is horizontal slack subtracted from a cell before text
	// fitting; textInset is the left inset of inserted text
	cellPadding = 6.0
	textInset   = 3.0

	// collisionGap is the extra clearance above the address region after
	// an upward shift
	collisionGap = 10.0

	borderLineWidth    = 1.0
	separatorLineWidth = 0.5

	// truncationReserve is the character count surrendered to the
	// ellipsis when a minimum-size fit still overflows
	truncationReserve = 3
)

// Config holds the table layout configuration
type Config struct {
	// TableYPosition fixes the table top offset from the page top, in
	// points. A negative value selects automatic anchor search.
	TableYPosition float64

	// Rows is the grid row count
	Rows int

	// RowHeight is the height of one grid row in points
	RowHeight float64

	// MaxDisplayRecords caps how many records are shown before the
	// overflow sentinel takes over
	MaxDisplayRecords int

	// Font sizes in points. Fitting starts at MaxFontSize and steps down
	// to MinFontSize; quantities always use BaseFontSize.
	BaseFontSize float64
	MaxFontSize  float64
	MinFontSize  float64

	// AnchorTerms are searched in order to locate the table position
	// when TableYPosition is unset
	AnchorTerms []string

	// AnchorOffset is the gap, in points, between the anchor match and
	// the table top
	AnchorOffset float64

	// DisplayPrefix is stripped from identifiers before rendering
	DisplayPrefix string
}

// DefaultConfig returns the configuration matching the production label
// template
func DefaultConfig() Config {
	return Config{
		TableYPosition:    148,
		Rows:              3,
		RowHeight:         16,
		MaxDisplayRecords: 6,
		BaseFontSize:      9,
		MaxFontSize:       11,
		MinFontSize:       6,
		AnchorTerms:       []string{"RDC 01", "RDC", "rdc 01", "rdc"},
		AnchorOffset:      25,
		DisplayPrefix:     "Ink-",
	}
}
