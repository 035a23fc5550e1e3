package layout

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sheet(dpi int, cardW, cardH, marginX, marginY, gapX, gapY float64) SheetConfig {
	return SheetConfig{
		DPI: dpi, CardWMM: cardW, CardHMM: cardH,
		MarginXMM: marginX, MarginYMM: marginY,
		GapXMM: gapX, GapYMM: gapY,
	}
}

func TestPlanDefaultsFitUnchanged(t *testing.T) {
	g, err := Plan(sheet(300, 63, 88, 7, 13, 3, 3))
	require.NoError(t, err)
	assert.Equal(t, Grid{
		PageW: 2480, PageH: 3508,
		CardW: 744, CardH: 1039,
		Cols: 3, Rows: 3,
		GapX: 35, GapY: 35,
		MarginX: 83, MarginY: 154,
	}, g)
}

func TestPlanShrinksGapToLargestFit(t *testing.T) {
	tests := []struct {
		name string
		cfg  SheetConfig
		gapX int
		gapY int
	}{
		{"even overage", sheet(300, 63, 88, 10, 13, 10, 3), 6, 35},
		{"odd overage", sheet(300, 63.1, 88, 10, 13, 10, 3), 4, 35},
		{"vertical only", sheet(300, 63, 88, 7, 13, 3, 20), 35, 41},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Plan(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.gapX, g.GapX)
			assert.Equal(t, tt.gapY, g.GapY)
			assert.LessOrEqual(t, g.Width(), g.PageW)
			assert.LessOrEqual(t, g.Height(), g.PageH)

			wider := g
			wider.GapX++
			wider.GapY++
			if g.GapX < MMToPx(tt.cfg.GapXMM, tt.cfg.DPI) {
				assert.Greater(t, wider.Width(), g.PageW)
			}
			if g.GapY < MMToPx(tt.cfg.GapYMM, tt.cfg.DPI) {
				assert.Greater(t, wider.Height(), g.PageH)
			}
		})
	}
}

// 2*118 + 3*827 = 2717 px exceeds the 2480 px page before any gap is added.
func TestPlanInfeasibleEvenWithoutGaps(t *testing.T) {
	_, err := Plan(sheet(300, 70, 88, 10, 13, 5, 3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGeometryInfeasible))
}

func TestPlanRejectsInvalidConfig(t *testing.T) {
	for name, cfg := range map[string]SheetConfig{
		"low dpi":      sheet(71, 63, 88, 7, 13, 3, 3),
		"zero card":    sheet(300, 0, 88, 7, 13, 3, 3),
		"negative gap": sheet(300, 63, 88, 7, 13, -1, 3),
		"no stroke": func() SheetConfig {
			c := sheet(300, 63, 88, 7, 13, 3, 3)
			c.Crop = CropConfig{Enabled: true, LengthMM: 2.5}
			return c
		}(),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Plan(cfg)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

// When the raw grid already fits, the planned gaps equal the configured ones.
func TestPlanNoUnnecessaryShrink(t *testing.T) {
	for _, dpi := range []int{72, 150, 300, 600} {
		for _, gap := range []float64{0, 1, 2.5, 3, 5} {
			for _, margin := range []float64{0, 5, 7, 10} {
				cfg := sheet(dpi, 63, 88, margin, margin, gap, gap)
				g, err := Plan(cfg)
				if err != nil {
					continue
				}
				rawW := 2*MMToPx(margin, dpi) + 3*MMToPx(63, dpi) + 2*MMToPx(gap, dpi)
				if rawW <= g.PageW {
					assert.Equal(t, MMToPx(gap, dpi), g.GapX)
				} else {
					assert.Less(t, g.GapX, MMToPx(gap, dpi))
				}
				assert.GreaterOrEqual(t, g.GapX, 0)
				assert.LessOrEqual(t, g.Width(), g.PageW)
			}
		}
	}
}

func TestGridSlot(t *testing.T) {
	g, err := Plan(sheet(300, 63, 88, 7, 13, 3, 3))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(83, 154, 827, 1193), g.Slot(0))
	assert.Equal(t, image.Rect(83+2*(744+35), 154, 83+2*(744+35)+744, 1193), g.Slot(2))
	assert.Equal(t, image.Rect(83+744+35, 154+2*(1039+35), 83+2*744+35, 154+2*(1039+35)+1039), g.Slot(7))
	assert.Equal(t, 9, g.PerPage())
}
