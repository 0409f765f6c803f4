package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pppGg/pdf-sku-label-tool/pkg/pdf"
	"github.com/pppGg/pdf-sku-label-tool/pkg/sku"
)

// Engine lays records out into the summary table and drives a Surface.
// One Engine may serve many pages; it holds no page state.
type Engine struct {
	cfg     Config
	measure TextMeasurer
}

// NewEngine creates a layout engine. A nil measurer selects the Helvetica
// core-font metrics used by the overlay renderer.
func NewEngine(cfg Config, measure TextMeasurer) *Engine {
	if measure == nil {
		measure = HelveticaMeasurer
	}
	return &Engine{cfg: cfg, measure: measure}
}

type rowKind int

const (
	rowNormal rowKind = iota
	// rowMerged dedicates the full grid row to one long identifier: the
	// name spans three of the four cells, the quantity keeps the last
	rowMerged
)

// plannedRow is one grid row with its assigned records (one for merged
// rows, up to two for normal rows)
type plannedRow struct {
	kind  rowKind
	cells []sku.Record
}

// tablePlan is the computed geometry and cell assignment for one page
type tablePlan struct {
	x, y          float64
	width, height float64
	colName       float64
	colQty        float64
	rows          []plannedRow
	// rowKinds covers every grid row, planned or empty, for separator
	// drawing
	rowKinds []rowKind
}

// Render lays out records on the target page and emits the drawing
// primitives onto surface. The returned report counts succeeded and
// skipped draw operations; rendering is best-effort and never fails as a
// whole.
func (e *Engine) Render(surface Surface, records []sku.Record, page PageGeometry, search SearchFunc) RenderReport {
	display := e.displayRecords(records)
	plan := e.plan(display, page, search)

	var report RenderReport
	e.drawGrid(surface, plan, &report)
	e.drawCells(surface, plan, &report)
	return report
}

// displayRecords returns the records that will actually be shown: capped at
// the configured maximum, with the overflow sentinel appended when records
// were dropped.
func (e *Engine) displayRecords(records []sku.Record) []sku.Record {
	if len(records) <= e.cfg.MaxDisplayRecords {
		return records
	}
	display := make([]sku.Record, 0, e.cfg.MaxDisplayRecords+1)
	display = append(display, records[:e.cfg.MaxDisplayRecords]...)
	display = append(display, sku.Record{Identifier: OverflowSentinel})
	return display
}

// plan computes the table geometry and assigns records to grid cells
func (e *Engine) plan(display []sku.Record, page PageGeometry, search SearchFunc) tablePlan {
	tableY := e.tableOrigin(page, search)

	margin := page.Width * sideMarginRatio
	tableWidth := page.Width - 2*margin
	tableHeight := float64(e.cfg.Rows) * e.cfg.RowHeight

	// Never cover the address block at the bottom of the label
	addressTop := page.Height - page.Height*addressRegionRatio
	if tableY+tableHeight > addressTop {
		tableY = addressTop - tableHeight - collisionGap
	}

	plan := tablePlan{
		x:       margin,
		y:       tableY,
		width:   tableWidth,
		height:  tableHeight,
		colName: tableWidth * identifierColRatio,
		colQty:  tableWidth * qtyColRatio,
	}

	// A record overflowing a single name cell even at the minimum font
	// size gets a merged row to itself
	long := make([]bool, len(display))
	for i, r := range display {
		long[i] = e.overflowsSingleCell(r.Identifier, plan.colName)
	}

	i := 0
	for i < len(display) && len(plan.rows) < e.cfg.Rows {
		if long[i] {
			plan.rows = append(plan.rows, plannedRow{kind: rowMerged, cells: display[i : i+1]})
			i++
			continue
		}
		row := plannedRow{kind: rowNormal, cells: []sku.Record{display[i]}}
		i++
		if i < len(display) && !long[i] {
			row.cells = append(row.cells, display[i])
			i++
		}
		plan.rows = append(plan.rows, row)
	}

	plan.rowKinds = make([]rowKind, e.cfg.Rows)
	for idx := range plan.rowKinds {
		if idx < len(plan.rows) {
			plan.rowKinds[idx] = plan.rows[idx].kind
		}
	}

	return plan
}

// tableOrigin resolves the table's top Y: the fixed configured position,
// else the first anchor-term match plus the configured offset, else a fixed
// fraction of the page height
func (e *Engine) tableOrigin(page PageGeometry, search SearchFunc) float64 {
	if e.cfg.TableYPosition >= 0 {
		return e.cfg.TableYPosition
	}

	if search != nil {
		for _, term := range e.cfg.AnchorTerms {
			if matches := search(term); len(matches) > 0 {
				return matches[0].Y1 + e.cfg.AnchorOffset
			}
		}
	}

	return page.Height * defaultOriginRatio
}

// overflowsSingleCell predicts whether an identifier cannot fit a single
// name cell even at the minimum font size
func (e *Engine) overflowsSingleCell(identifier string, colName float64) bool {
	display := e.displayName(identifier)
	return e.measure(display, e.cfg.MinFontSize) > colName-cellPadding
}

// displayName strips the fixed display prefix from an identifier
func (e *Engine) displayName(identifier string) string {
	return strings.TrimPrefix(identifier, e.cfg.DisplayPrefix)
}

// drawGrid emits the outer border, the horizontal row separators and the
// per-row vertical separators. Merged rows skip the two interior verticals
// so the name spans three cells; the final vertical bounding the quantity
// column is always drawn.
func (e *Engine) drawGrid(surface Surface, plan tablePlan, report *RenderReport) {
	report.record("border", surface.DrawRect(pdf.BoundingBox{
		X0: plan.x,
		Y0: plan.y,
		X1: plan.x + plan.width,
		Y1: plan.y + plan.height,
	}, borderLineWidth))

	for i := 1; i < e.cfg.Rows; i++ {
		y := plan.y + float64(i)*e.cfg.RowHeight
		report.record("row-separator", surface.DrawLine(
			pdf.Point{X: plan.x, Y: y},
			pdf.Point{X: plan.x + plan.width, Y: y},
			separatorLineWidth,
		))
	}

	v1 := plan.x + plan.colName
	v2 := v1 + plan.colQty
	v3 := v2 + plan.colName

	for idx, kind := range plan.rowKinds {
		top := plan.y + float64(idx)*e.cfg.RowHeight
		bottom := top + e.cfg.RowHeight

		if kind != rowMerged {
			report.record("col-separator", surface.DrawLine(
				pdf.Point{X: v1, Y: top}, pdf.Point{X: v1, Y: bottom}, separatorLineWidth))
			report.record("col-separator", surface.DrawLine(
				pdf.Point{X: v2, Y: top}, pdf.Point{X: v2, Y: bottom}, separatorLineWidth))
		}

		report.record("col-separator", surface.DrawLine(
			pdf.Point{X: v3, Y: top}, pdf.Point{X: v3, Y: bottom}, separatorLineWidth))
	}
}

// drawCells emits the fitted text runs for every planned row
func (e *Engine) drawCells(surface Surface, plan tablePlan, report *RenderReport) {
	for idx, row := range plan.rows {
		// Baseline centered within the row height, corrected by a
		// third of the base font size
		y := plan.y + float64(idx)*e.cfg.RowHeight + e.cfg.RowHeight/2 + e.cfg.BaseFontSize/3

		if row.kind == rowMerged {
			rec := row.cells[0]
			mergedWidth := plan.colName*2 + plan.colQty
			name, size := e.fitText(e.displayName(rec.Identifier), mergedWidth-cellPadding)

			report.record("name", surface.InsertText(
				pdf.Point{X: plan.x + textInset, Y: y}, name, size))

			if rec.Quantity > 0 {
				xQty := plan.x + plan.colName + plan.colQty + plan.colName
				report.record("qty", surface.InsertText(
					pdf.Point{X: xQty, Y: y}, strconv.Itoa(rec.Quantity), e.cfg.BaseFontSize))
			}
			continue
		}

		for col, rec := range row.cells {
			x := plan.x + textInset + float64(col)*(plan.colName+plan.colQty)
			name, size := e.fitText(e.displayName(rec.Identifier), plan.colName-cellPadding)

			report.record("name", surface.InsertText(pdf.Point{X: x, Y: y}, name, size))

			if rec.Quantity > 0 {
				report.record("qty", surface.InsertText(
					pdf.Point{X: x + plan.colName, Y: y}, strconv.Itoa(rec.Quantity), e.cfg.BaseFontSize))
			}
		}
	}
}

// fitText shrinks the font from the maximum size in unit steps until the
// text fits the available width; when even the minimum size overflows, the
// text is truncated to a fitting prefix plus an ellipsis
func (e *Engine) fitText(text string, available float64) (string, float64) {
	for size := e.cfg.MaxFontSize; size >= e.cfg.MinFontSize; size-- {
		if e.measure(text, size) <= available {
			return text, size
		}
	}
	return e.truncate(text, available), e.cfg.MinFontSize
}

// truncate cuts text character by character to the longest prefix fitting
// available width at the minimum font size, surrendering three characters
// to the ellipsis (or taking the literal fitting prefix when it is three
// characters or shorter)
func (e *Engine) truncate(text string, available float64) string {
	runes := []rune(text)

	width := 0.0
	maxChars := 0
	for _, r := range runes {
		w := e.measure(string(r), e.cfg.MinFontSize)
		if width+w > available {
			break
		}
		width += w
		maxChars++
	}

	if maxChars >= len(runes) {
		return text
	}
	if maxChars > truncationReserve {
		return string(runes[:maxChars-truncationReserve]) + "..."
	}
	return string(runes[:maxChars])
}

// String describes a planned row, for debug logging
func (r plannedRow) String() string {
	names := make([]string, 0, len(r.cells))
	for _, c := range r.cells {
		names = append(names, c.Identifier)
	}
	kind := "normal"
	if r.kind == rowMerged {
		kind = "merged"
	}
	return fmt.Sprintf("%s[%s]", kind, strings.Join(names, ", "))
}
