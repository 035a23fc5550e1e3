package layout

import (
	"fmt"
	"image"
)

const (
	Cols         = 3
	Rows         = 3
	CardsPerPage = Cols * Rows
)

// Grid is the pixel geometry of a page, derived from a SheetConfig.
type Grid struct {
	PageW, PageH     int
	CardW, CardH     int
	Cols, Rows       int
	GapX, GapY       int // after gap-shrink correction
	MarginX, MarginY int
	CropLength       int
	CropGap          int
}

// Plan converts cfg to pixels and shrinks the gaps if the grid would
// overflow the page. Margins and card size are never changed; if zero gaps
// still overflow, ErrGeometryInfeasible is returned.
func Plan(cfg SheetConfig) (Grid, error) {
	if err := cfg.Validate(); err != nil {
		return Grid{}, err
	}
	dpi := cfg.DPI
	g := Grid{
		PageW:      MMToPx(PageWidthMM, dpi),
		PageH:      MMToPx(PageHeightMM, dpi),
		CardW:      MMToPx(cfg.CardWMM, dpi),
		CardH:      MMToPx(cfg.CardHMM, dpi),
		Cols:       Cols,
		Rows:       Rows,
		MarginX:    MMToPx(cfg.MarginXMM, dpi),
		MarginY:    MMToPx(cfg.MarginYMM, dpi),
		GapX:       MMToPx(cfg.GapXMM, dpi),
		GapY:       MMToPx(cfg.GapYMM, dpi),
		CropLength: MMToPx(cfg.Crop.LengthMM, dpi),
		CropGap:    MMToPx(cfg.Crop.GapMM, dpi),
	}
	var err error
	if g.GapX, err = fitGap(g.PageW, g.MarginX, g.CardW, g.GapX, g.Cols); err != nil {
		return Grid{}, fmt.Errorf("horizontal: %w", err)
	}
	if g.GapY, err = fitGap(g.PageH, g.MarginY, g.CardH, g.GapY, g.Rows); err != nil {
		return Grid{}, fmt.Errorf("vertical: %w", err)
	}
	return g, nil
}

// fitGap returns the largest gap <= gap such that n cards fit along one
// axis of length page.
func fitGap(page, margin, card, gap, n int) (int, error) {
	fixed := 2*margin + n*card
	if fixed > page {
		return 0, fmt.Errorf("%w: %d px of margins and cards exceed the %d px page", ErrGeometryInfeasible, fixed, page)
	}
	if n < 2 {
		return gap, nil
	}
	over := fixed + (n-1)*gap - page
	if over <= 0 {
		return gap, nil
	}
	shrink := (over + n - 2) / (n - 1) // ceil(over / (n-1))
	if gap -= shrink; gap < 0 {
		gap = 0
	}
	return gap, nil
}

// Width is the horizontal extent of the grid including margins.
func (g Grid) Width() int { return 2*g.MarginX + g.Cols*g.CardW + (g.Cols-1)*g.GapX }

// Height is the vertical extent of the grid including margins.
func (g Grid) Height() int { return 2*g.MarginY + g.Rows*g.CardH + (g.Rows-1)*g.GapY }

// Slot returns the card rectangle for a slot index on a page. Slots are
// numbered row-major from the top-left.
func (g Grid) Slot(index int) image.Rectangle {
	row, col := index/g.Cols, index%g.Cols
	x := g.MarginX + col*(g.CardW+g.GapX)
	y := g.MarginY + row*(g.CardH+g.GapY)
	return image.Rect(x, y, x+g.CardW, y+g.CardH)
}

// PerPage is the number of slots on one page.
func (g Grid) PerPage() int { return g.Cols * g.Rows }
