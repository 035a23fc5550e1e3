package imagepkg

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Upscale enlarges img so its height reaches minHeight, keeping the aspect
// ratio, then sharpens it once. Images already at least minHeight tall are
// returned unchanged.
func Upscale(img image.Image, minHeight int) image.Image {
	b := img.Bounds()
	if minHeight <= 0 || b.Dy() <= 0 || b.Dy() >= minHeight {
		return img
	}
	scale := float64(minHeight) / float64(b.Dy())
	w := int(math.Round(float64(b.Dx()) * scale))
	if w < 1 {
		w = 1
	}
	out := imaging.Resize(img, w, minHeight, imaging.Lanczos)
	return imaging.Sharpen(out, 1.0)
}

// AddBorder returns img surrounded by width pixels of c on every side.
func AddBorder(img image.Image, width int, c color.Color) *image.NRGBA {
	if width <= 0 {
		return imaging.Clone(img)
	}
	b := img.Bounds()
	canvas := imaging.New(b.Dx()+2*width, b.Dy()+2*width, c)
	return imaging.Paste(canvas, img, image.Pt(width, width))
}

// FitCard resizes img to exactly w×h with a Lanczos filter.
func FitCard(img image.Image, w, h int) *image.NRGBA {
	return imaging.Resize(img, w, h, imaging.Lanczos)
}
