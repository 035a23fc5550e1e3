package layout

import "image"

// Segment is an axis-aligned line between two pixels, endpoints inclusive,
// with X0 <= X1 and Y0 <= Y1.
type Segment struct {
	X0, Y0, X1, Y1 int
}

// Horizontal reports whether the segment runs along the x axis.
func (s Segment) Horizontal() bool { return s.Y0 == s.Y1 }

// hseg and vseg normalize endpoint order.
func hseg(x0, x1, y int) Segment {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	return Segment{X0: x0, Y0: y, X1: x1, Y1: y}
}

func vseg(x, y0, y1 int) Segment {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Segment{X0: x, Y0: y0, X1: x, Y1: y1}
}

// CornerMarks returns the eight legs of the four L-shaped marks around
// card: for each corner one horizontal and one vertical leg of the given
// length, pushed outward from the corner by gap.
func CornerMarks(card image.Rectangle, length, gap int) []Segment {
	l, t := card.Min.X-gap, card.Min.Y-gap
	r, b := card.Max.X+gap, card.Max.Y+gap
	return []Segment{
		hseg(l-length, l, t), vseg(l, t-length, t), // top-left
		hseg(r, r+length, t), vseg(r, t-length, t), // top-right
		hseg(l-length, l, b), vseg(l, b, b+length), // bottom-left
		hseg(r, r+length, b), vseg(r, b, b+length), // bottom-right
	}
}

// strokeSpread splits a stroke of width s into the pixels drawn before and
// after the segment's centre line.
func strokeSpread(s int) (before, after int) {
	if s < 1 {
		s = 1
	}
	before = (s - 1) / 2
	return before, s - 1 - before
}

// StrokeRect is the pixel rectangle covered by drawing seg with stroke s.
func StrokeRect(seg Segment, s int) image.Rectangle {
	before, after := strokeSpread(s)
	if seg.Horizontal() {
		return image.Rect(seg.X0, seg.Y0-before, seg.X1+1, seg.Y1+after+1)
	}
	return image.Rect(seg.X0-before, seg.Y0, seg.X1+after+1, seg.Y1+1)
}

// ClipToBorder keeps only the parts of segs that will be covered by a
// border of width border around card, so the marks vanish once the border
// is pasted on top. Segments left with no length are dropped.
func ClipToBorder(segs []Segment, card image.Rectangle, border, stroke int) []Segment {
	if border <= 0 {
		return nil
	}
	outer := card.Inset(-border)
	// inclusive pixel bounds of the bordered card
	minX, minY := outer.Min.X, outer.Min.Y
	maxX, maxY := outer.Max.X-1, outer.Max.Y-1
	before, after := strokeSpread(stroke)

	out := make([]Segment, 0, len(segs))
	for _, s := range segs {
		if s.Horizontal() {
			if s.Y0-before < minY || s.Y0+after > maxY {
				continue
			}
			s.X0, s.X1 = max(s.X0, minX), min(s.X1, maxX)
			if s.X0 > s.X1 {
				continue
			}
		} else {
			if s.X0-before < minX || s.X0+after > maxX {
				continue
			}
			s.Y0, s.Y1 = max(s.Y0, minY), min(s.Y1, maxY)
			if s.Y0 > s.Y1 {
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

// Marks returns the crop-mark segments for one placed card under crop and
// border. It is empty when crop marks are disabled.
func (g Grid) Marks(card image.Rectangle, crop CropConfig, border BorderConfig) []Segment {
	if !crop.Enabled || g.CropLength <= 0 {
		return nil
	}
	segs := CornerMarks(card, g.CropLength, g.CropGap)
	if crop.HideUnderBorder && border.Active() {
		segs = ClipToBorder(segs, card, border.WidthPx, crop.StrokePx)
	}
	return segs
}
