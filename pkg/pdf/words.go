package pdf

import (
	"math"
	"sort"
	"strings"
)

// The char-to-word assembly below is shared by every backend: characters are
// first clustered into horizontal lines by Y proximity, then split into words
// wherever the horizontal gap exceeds the X tolerance.

// groupCharsIntoLines clusters characters into lines by vertical proximity
func groupCharsIntoLines(chars []CharObject, yTolerance float64) [][]CharObject {
	if len(chars) == 0 {
		return nil
	}

	sorted := make([]CharObject, len(chars))
	copy(sorted, chars)

	sort.Slice(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].Y0-sorted[j].Y0) > yTolerance {
			return sorted[i].Y0 < sorted[j].Y0
		}
		return sorted[i].X0 < sorted[j].X0
	})

	var lines [][]CharObject
	var currentLine []CharObject
	currentY := sorted[0].Y0

	for _, char := range sorted {
		if math.Abs(char.Y0-currentY) > yTolerance {
			if len(currentLine) > 0 {
				lines = append(lines, currentLine)
			}
			currentLine = []CharObject{char}
			currentY = char.Y0
		} else {
			currentLine = append(currentLine, char)
		}
	}

	if len(currentLine) > 0 {
		lines = append(lines, currentLine)
	}

	return lines
}

// wordsFromLineChars splits a single line of characters into words
func wordsFromLineChars(lineChars []CharObject, xTolerance float64) []Word {
	if len(lineChars) == 0 {
		return nil
	}

	sort.Slice(lineChars, func(i, j int) bool {
		return lineChars[i].X0 < lineChars[j].X0
	})

	var words []Word
	var currentWord []CharObject

	for i, char := range lineChars {
		if i == 0 {
			currentWord = []CharObject{char}
			continue
		}
		gap := char.X0 - lineChars[i-1].X1
		if gap > xTolerance || gap > char.Width*0.3 {
			if len(currentWord) > 0 {
				words = append(words, buildWord(currentWord))
			}
			currentWord = []CharObject{char}
		} else {
			currentWord = append(currentWord, char)
		}
	}

	if len(currentWord) > 0 {
		words = append(words, buildWord(currentWord))
	}

	return words
}

// buildWord assembles a Word from a run of characters
func buildWord(chars []CharObject) Word {
	var text strings.Builder
	minX, minY := chars[0].X0, chars[0].Y0
	maxX, maxY := chars[0].X1, chars[0].Y1

	for _, char := range chars {
		text.WriteString(char.Text)
		minX = min(minX, char.X0)
		minY = min(minY, char.Y0)
		maxX = max(maxX, char.X1)
		maxY = max(maxY, char.Y1)
	}

	return Word{
		Text:       text.String(),
		X0:         minX,
		Y0:         minY,
		X1:         maxX,
		Y1:         maxY,
		Characters: chars,
	}
}

// wordsFromChars extracts words from a full page worth of characters
func wordsFromChars(chars []CharObject, config *wordExtractionConfig) []Word {
	var words []Word
	for _, line := range groupCharsIntoLines(chars, config.YTolerance) {
		words = append(words, wordsFromLineChars(line, config.XTolerance)...)
	}
	return words
}

// linesFromChars extracts the page text as ordered lines, words within each
// line joined by single spaces
func linesFromChars(chars []CharObject, config *wordExtractionConfig) []string {
	var lines []string
	for _, lineChars := range groupCharsIntoLines(chars, config.YTolerance) {
		words := wordsFromLineChars(lineChars, config.XTolerance)
		parts := make([]string, 0, len(words))
		for _, w := range words {
			parts = append(parts, w.Text)
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return lines
}

// SearchWords finds literal, case-insensitive substring matches of term
// within rows of words and returns the bounding box of each matched run.
// Words sharing a row are joined with single spaces before matching, so
// multi-word terms like "RDC 01" are found across token boundaries.
func SearchWords(words []Word, term string, yTolerance float64) []BoundingBox {
	if term == "" || len(words) == 0 {
		return nil
	}

	needle := strings.ToLower(term)
	var matches []BoundingBox

	for _, row := range clusterWordsIntoRows(words, yTolerance) {
		joined := ""
		offsets := make([]int, len(row))
		for i, w := range row {
			if i > 0 {
				joined += " "
			}
			offsets[i] = len(joined)
			joined += w.Text
		}

		haystack := strings.ToLower(joined)
		from := 0
		for {
			idx := strings.Index(haystack[from:], needle)
			if idx < 0 {
				break
			}
			start := from + idx
			end := start + len(needle)

			var bbox BoundingBox
			found := false
			for i, w := range row {
				wordStart := offsets[i]
				wordEnd := wordStart + len(w.Text)
				if wordEnd <= start || wordStart >= end {
					continue
				}
				if !found {
					bbox = w.GetBBox()
					found = true
				} else {
					bbox = bbox.Union(w.GetBBox())
				}
			}
			if found {
				matches = append(matches, bbox)
			}
			from = start + 1
		}
	}

	return matches
}

// clusterWordsIntoRows groups words into horizontal rows by vertical-center
// proximity, rows ordered top to bottom, words left to right
func clusterWordsIntoRows(words []Word, yTolerance float64) [][]Word {
	if len(words) == 0 {
		return nil
	}

	sorted := make([]Word, len(words))
	copy(sorted, words)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CenterY() < sorted[j].CenterY()
	})

	var rows [][]Word
	var currentRow []Word
	currentY := sorted[0].CenterY()

	for _, w := range sorted {
		if len(currentRow) > 0 && math.Abs(w.CenterY()-currentY) > yTolerance {
			rows = append(rows, currentRow)
			currentRow = []Word{w}
			currentY = w.CenterY()
		} else {
			currentRow = append(currentRow, w)
		}
	}
	if len(currentRow) > 0 {
		rows = append(rows, currentRow)
	}

	for _, row := range rows {
		sort.Slice(row, func(i, j int) bool {
			return row[i].X0 < row[j].X0
		})
	}

	return rows
}
