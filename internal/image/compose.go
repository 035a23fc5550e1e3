package imagepkg

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/youruser/cardsheet/internal/layout"
)

// Page is a fully drawn sheet. It is not modified after Compose returns it.
type Page struct {
	canvas *image.NRGBA
	grid   layout.Grid
	filled int
}

// Image is the page raster. Callers must treat it as read-only.
func (p *Page) Image() *image.NRGBA { return p.canvas }

// Filled is the number of slots holding a card.
func (p *Page) Filled() int { return p.filled }

// Slot returns a copy of the pixels at the planned card position (row, col).
func (p *Page) Slot(row, col int) *image.NRGBA {
	return imaging.Crop(p.canvas, p.grid.Slot(row*p.grid.Cols+col))
}

// Compositor draws cards onto pages using one grid for the whole run.
type Compositor struct {
	grid       layout.Grid
	crop       layout.CropConfig
	border     layout.BorderConfig
	background color.Color
	logger     *zap.Logger
}

// NewCompositor prepares a compositor. The grid should come from
// layout.Plan so geometry errors surface before any drawing happens.
func NewCompositor(grid layout.Grid, crop layout.CropConfig, border layout.BorderConfig, logger *zap.Logger) *Compositor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compositor{
		grid:       grid,
		crop:       crop,
		border:     border,
		background: color.White,
		logger:     logger,
	}
}

// Compose splits images into pages of grid.PerPage() cards, keeping order.
func (c *Compositor) Compose(images []image.Image) []*Page {
	per := c.grid.PerPage()
	var pages []*Page
	for start := 0; start < len(images); start += per {
		end := min(start+per, len(images))
		pages = append(pages, c.ComposePage(images[start:end]))
	}
	c.logger.Debug("pages composed", zap.Int("cards", len(images)), zap.Int("pages", len(pages)))
	return pages
}

// ComposePage draws up to one page worth of images. All crop marks go down
// first so card art and borders are painted over them.
func (c *Compositor) ComposePage(images []image.Image) *Page {
	g := c.grid
	if len(images) > g.PerPage() {
		images = images[:g.PerPage()]
	}
	canvas := imaging.New(g.PageW, g.PageH, c.background)

	if c.crop.Enabled {
		ink := image.NewUniform(c.crop.Color)
		for i := range images {
			for _, seg := range g.Marks(g.Slot(i), c.crop, c.border) {
				draw.Draw(canvas, layout.StrokeRect(seg, c.crop.StrokePx), ink, image.Point{}, draw.Src)
			}
		}
	}

	for i, img := range images {
		slot := g.Slot(i)
		var tile image.Image = FitCard(img, g.CardW, g.CardH)
		at := slot.Min
		if c.border.Active() {
			tile = AddBorder(tile, c.border.WidthPx, c.border.Color)
			at = at.Sub(image.Pt(c.border.WidthPx, c.border.WidthPx))
		}
		dst := image.Rectangle{Min: at, Max: at.Add(tile.Bounds().Size())}
		draw.Draw(canvas, dst, tile, tile.Bounds().Min, draw.Over)
	}
	return &Page{canvas: canvas, grid: g, filled: len(images)}
}
