package layout

import "math"

// This file holds the physical-unit helpers. Every length on a sheet is
// given in millimeters and converted to pixels once, here.

const (
	MMPerInch = 25.4
	MinDPI    = 72

	// A4 portrait.
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
)

// MMToPx converts millimeters to whole pixels at dpi: round(mm / 25.4 * dpi).
func MMToPx(mm float64, dpi int) int {
	return int(math.Round(mm / MMPerInch * float64(dpi)))
}

// PxToMM is the inverse of MMToPx, without rounding.
func PxToMM(px int, dpi int) float64 {
	return float64(px) / float64(dpi) * MMPerInch
}
