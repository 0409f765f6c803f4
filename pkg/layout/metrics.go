package layout

import (
	pdffont "github.com/pdfcpu/pdfcpu/pkg/font"
)

// overlayFontName is the core font used for all overlay text
const overlayFontName = "Helvetica"

// TextMeasurer returns the rendered width, in points, of text at the given
// font size. Injected so synthetic-geometry tests can use deterministic
// metrics without font tables.
type TextMeasurer func(text string, fontSize float64) float64

// HelveticaMeasurer measures text using pdfcpu's built-in core font
// metrics, matching the font the overlay draws with
func HelveticaMeasurer(text string, fontSize float64) float64 {
	return pdffont.TextWidth(text, overlayFontName, int(fontSize))
}
