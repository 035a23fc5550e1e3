package layout

import (
	"math"
	"testing"
)

// TestMMToPx checks the rounding rule round(mm / 25.4 * dpi).
func TestMMToPx(t *testing.T) {
	cases := []struct {
		mm   float64
		dpi  int
		want int
	}{
		{210, 300, 2480},
		{297, 300, 3508},
		{63, 300, 744},
		{88, 300, 1039},
		{25.4, 72, 72},
		{0, 600, 0},
		{2.5, 300, 30},
		{0.8, 300, 9},
	}
	for _, c := range cases {
		if got := MMToPx(c.mm, c.dpi); got != c.want {
			t.Fatalf("MMToPx(%g, %d) = %d, want %d", c.mm, c.dpi, got, c.want)
		}
	}
}

// TestPxMMRoundTrip checks that converting back stays within half a pixel.
func TestPxMMRoundTrip(t *testing.T) {
	for _, dpi := range []int{72, 150, 300, 600, 1200} {
		for _, mm := range []float64{0.8, 3, 7, 13, 63, 88, 210, 297} {
			px := MMToPx(mm, dpi)
			back := PxToMM(px, dpi)
			if diff := math.Abs(back - mm); diff > PxToMM(1, dpi)/2+1e-9 {
				t.Fatalf("%gmm at %d dpi -> %dpx -> %gmm (diff %g)", mm, dpi, px, back, diff)
			}
		}
	}
}
