package sku

// MarkerToken flags heuristic identifier lines; every SKU in the target
// template carries this prefix.
const MarkerToken = "Ink-"

// Header and end-of-table markers, matched case-insensitively
const (
	headerKeyword   = "SKU"
	qtyKeyword      = "QTY"
	quantityKeyword = "QUANTITY"
	qtyTotalMarker  = "QTY TOTAL"
)

// RowTolerance is the vertical-center clustering tolerance, in points, used
// when grouping words into rows. Tuned to the packing-slip template.
const RowTolerance = 2.0

// Length bounds for a wrapped identifier suffix on a continuation line
const (
	continuationMinLen = 2
	continuationMaxLen = 5
)

// descriptionKeywords mark tokens that belong to product descriptions, not
// identifiers; hitting one terminates the continuation scan
var descriptionKeywords = []string{
	"sticker", "card", "pack", "sheet", "for",
	"and", "the", "chip", "key", "metro",
}

// continuationRejectKeywords disqualify a short token from being accepted
// as a wrapped identifier suffix
var continuationRejectKeywords = []string{"for", "and", "the", "card", "chip"}

// boundaryPhrases begin rows that terminate a multi-row identifier merge
var boundaryPhrases = []string{
	"qty total", "order id", "package id", "buyer id", "product name",
}
