package layout

import (
	"errors"
	"fmt"
	"image/color"
)

var (
	// ErrInvalidConfig marks a SheetConfig field outside its allowed range.
	ErrInvalidConfig = errors.New("invalid sheet configuration")
	// ErrGeometryInfeasible means the cards and margins do not fit on the
	// page even with zero gaps.
	ErrGeometryInfeasible = errors.New("sheet geometry infeasible")
)

// SheetConfig describes one sheet-building run. Lengths are millimeters.
type SheetConfig struct {
	DPI       int
	CardWMM   float64
	CardHMM   float64
	MarginXMM float64
	MarginYMM float64
	GapXMM    float64
	GapYMM    float64
	Crop      CropConfig
	Border    BorderConfig
}

// CropConfig controls the corner crop marks.
type CropConfig struct {
	Enabled         bool
	LengthMM        float64
	GapMM           float64
	StrokePx        int
	Color           color.NRGBA
	HideUnderBorder bool
}

// BorderConfig controls the solid border added around each card.
type BorderConfig struct {
	Enabled bool
	WidthPx int
	Color   color.NRGBA
}

// Active reports whether a border of non-zero width will be drawn.
func (b BorderConfig) Active() bool { return b.Enabled && b.WidthPx > 0 }

// Validate checks field ranges. It does not check that the grid fits; Plan
// does that.
func (c SheetConfig) Validate() error {
	if c.DPI < MinDPI {
		return fmt.Errorf("%w: dpi %d below %d", ErrInvalidConfig, c.DPI, MinDPI)
	}
	if c.CardWMM <= 0 || c.CardHMM <= 0 {
		return fmt.Errorf("%w: card size %gx%g mm", ErrInvalidConfig, c.CardWMM, c.CardHMM)
	}
	for name, v := range map[string]float64{
		"margin_x": c.MarginXMM, "margin_y": c.MarginYMM,
		"gap_x": c.GapXMM, "gap_y": c.GapYMM,
		"crop length": c.Crop.LengthMM, "crop gap": c.Crop.GapMM,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s is negative (%g mm)", ErrInvalidConfig, name, v)
		}
	}
	if c.Crop.Enabled && c.Crop.StrokePx <= 0 {
		return fmt.Errorf("%w: crop stroke must be positive", ErrInvalidConfig)
	}
	if c.Border.WidthPx < 0 {
		return fmt.Errorf("%w: border width is negative", ErrInvalidConfig)
	}
	return nil
}
