package layout

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var card = image.Rect(100, 100, 200, 300)

func TestCornerMarksStayOutsideCard(t *testing.T) {
	segs := CornerMarks(card, 30, 5)
	require.Len(t, segs, 8)
	h := 0
	for _, s := range segs {
		if s.Horizontal() {
			h++
			assert.Equal(t, 30, s.X1-s.X0)
		} else {
			assert.Equal(t, 30, s.Y1-s.Y0)
		}
		assert.False(t, StrokeRect(s, 1).Overlaps(card), "%+v touches the card", s)
	}
	assert.Equal(t, 4, h)
	assert.Equal(t, Segment{X0: 65, Y0: 95, X1: 95, Y1: 95}, segs[0])
	assert.Equal(t, Segment{X0: 205, Y0: 305, X1: 205, Y1: 335}, segs[7])
}

func inRing(v, lo, hi, border int) bool {
	return (v >= lo-border && v <= lo) || (v >= hi && v <= hi+border)
}

func TestClipToBorderKeepsMarksInsideRing(t *testing.T) {
	const border = 20
	segs := ClipToBorder(CornerMarks(card, 30, 5), card, border, 1)
	require.Len(t, segs, 8)
	for _, s := range segs {
		if s.Horizontal() {
			assert.True(t, inRing(s.Y0, card.Min.Y, card.Max.Y, border), "%+v", s)
			assert.True(t, inRing(s.X0, card.Min.X, card.Max.X, border), "%+v", s)
			assert.True(t, inRing(s.X1, card.Min.X, card.Max.X, border), "%+v", s)
		} else {
			assert.True(t, inRing(s.X0, card.Min.X, card.Max.X, border), "%+v", s)
			assert.True(t, inRing(s.Y0, card.Min.Y, card.Max.Y, border), "%+v", s)
			assert.True(t, inRing(s.Y1, card.Min.Y, card.Max.Y, border), "%+v", s)
		}
		assert.True(t, StrokeRect(s, 1).In(card.Inset(-border)), "%+v leaks past the border", s)
	}
	assert.Equal(t, Segment{X0: 80, Y0: 95, X1: 95, Y1: 95}, segs[0])
}

func TestClipToBorderDropsMarksBeyondBorder(t *testing.T) {
	assert.Empty(t, ClipToBorder(CornerMarks(card, 30, 25), card, 20, 1))
	assert.Empty(t, ClipToBorder(CornerMarks(card, 30, 5), card, 0, 1))
}

func TestClipToBorderAccountsForStroke(t *testing.T) {
	segs := ClipToBorder(CornerMarks(card, 30, 10), card, 20, 5)
	require.Len(t, segs, 8)
	for _, s := range segs {
		assert.True(t, StrokeRect(s, 5).In(card.Inset(-20)), "%+v", s)
	}
}

func TestGridMarks(t *testing.T) {
	g := Grid{CropLength: 30, CropGap: 5}
	crop := CropConfig{Enabled: true, StrokePx: 1, HideUnderBorder: true}

	assert.Len(t, g.Marks(card, crop, BorderConfig{}), 8)
	assert.Empty(t, g.Marks(card, CropConfig{}, BorderConfig{}))

	clipped := g.Marks(card, crop, BorderConfig{Enabled: true, WidthPx: 3})
	assert.Empty(t, clipped)
}
