package common

import "math"

// Rect is an axis-aligned rectangle in pixel space. X/Y is the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Area returns the rectangle's area, or 0 when it is empty.
func (r Rect) Area() float64 {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// The left and top edges are inclusive, the right and bottom edges exclusive.
//
// Parameters:
//   - x, y: the point to test
//
// Returns:
//   - bool: true if the point is inside
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersect returns the overlap of two rectangles. The result is the zero Rect when they do not overlap.
//
// Parameters:
//   - o: the other rectangle
//
// Returns:
//   - Rect: the intersection
func (r Rect) Intersect(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.X+r.W, o.X+o.W)
	y1 := math.Min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Inflate grows the rectangle by m on every side. A negative m shrinks it.
//
// Parameters:
//   - m: the margin in pixels
//
// Returns:
//   - Rect: the inflated rectangle
func (r Rect) Inflate(m float64) Rect {
	return Rect{X: r.X - m, Y: r.Y - m, W: r.W + 2*m, H: r.H + 2*m}
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// ScaleAbout returns the rectangle scaled by s around the point (cx, cy).
func (r Rect) ScaleAbout(cx, cy, s float64) Rect {
	return Rect{X: cx + (r.X-cx)*s, Y: cy + (r.Y-cy)*s, W: r.W * s, H: r.H * s}
}

// Fit returns the largest rectangle of the given aspect (w:h) centered inside r.
// Non-positive sizes return r unchanged.
func (r Rect) Fit(w, h float64) Rect {
	if w <= 0 || h <= 0 || r.W <= 0 || r.H <= 0 {
		return r
	}
	aspect := w / h
	fw, fh := r.W, r.W/aspect
	if fh > r.H {
		fh, fw = r.H, r.H*aspect
	}
	return Rect{X: r.X + (r.W-fw)/2, Y: r.Y + (r.H-fh)/2, W: fw, H: fh}
}
