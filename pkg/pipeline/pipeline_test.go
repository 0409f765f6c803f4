package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pppGg/pdf-sku-label-tool/pkg/layout"
)

func TestPagePairing(t *testing.T) {
	// 0-based: labels at even indices, each slip describes the page before
	assert.False(t, isPackingSlip(0))
	assert.True(t, isPackingSlip(1))
	assert.False(t, isPackingSlip(2))
	assert.True(t, isPackingSlip(3))

	assert.Equal(t, 0, labelIndexFor(1))
	assert.Equal(t, 2, labelIndexFor(3))
}

func TestLabelPageCount(t *testing.T) {
	tests := []struct {
		pages  int
		labels int
	}{
		{0, 0},
		{1, 1}, // trailing label without a slip still ships
		{2, 1},
		{3, 2},
		{8, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.labels, labelPageCount(tt.pages), "pages=%d", tt.pages)
	}
}

func TestNewDefaultsToHeuristicsWithoutWhitelist(t *testing.T) {
	p := New(Options{Layout: layout.DefaultConfig()})

	assert.NotNil(t, p.strategy)
	assert.NotNil(t, p.engine)
	assert.Equal(t, 0, p.whitelist.Len())
}
