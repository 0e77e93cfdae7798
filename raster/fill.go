package raster

import "math"

// FillCircle blends every pixel whose center lies within radius of
// (cx, cy). Membership is a hard threshold, there is no edge coverage.
func (cv *Canvas) FillCircle(cx, cy, radius float64, c Color, a uint8) {
	x0, x1 := clipSpan(cx-radius-1, cx+radius+2, cv.width)
	y0, y1 := clipSpan(cy-radius-1, cy+radius+2, cv.height)

	for y := y0; y < y1; y++ {
		dy := float64(y) - cy
		for x := x0; x < x1; x++ {
			dx := float64(x) - cx
			// explicit conversions keep the products from fusing into FMA
			if math.Sqrt(float64(dx*dx)+float64(dy*dy)) <= radius {
				cv.BlendPixel(x, y, c, a)
			}
		}
	}
}

// FillRect blends the half-open box [x1,x2) x [y1,y2). Fractional bounds
// are truncated toward zero.
func (cv *Canvas) FillRect(x1, y1, x2, y2 float64, c Color, a uint8) {
	xs, xe := clipSpan(x1, x2, cv.width)
	ys, ye := clipSpan(y1, y2, cv.height)

	for y := ys; y < ye; y++ {
		for x := xs; x < xe; x++ {
			cv.BlendPixel(x, y, c, a)
		}
	}
}

// clipSpan truncates [lo, hi) to integers and clips it to [0, limit).
// An empty span comes back with start >= end.
func clipSpan(lo, hi float64, limit int) (int, int) {
	return max(0, int(lo)), min(limit, int(hi))
}
