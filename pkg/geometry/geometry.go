// Package geometry provides the toolpath primitives consumed by the
// G-code generator: 3D points and ordered polylines.
package geometry

import "math"

// Point is a 3D coordinate in millimeters.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Polyline is an ordered sequence of points describing one continuous
// motion/deposition path. Paths with fewer than 2 points are degenerate
// and produce no motion.
type Polyline []Point

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(q Point) float64 {
	dx := q.X - p.X
	dy := q.Y - p.Y
	dz := q.Z - p.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Lerp returns the point at parameter t along the segment p->q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
		Z: p.Z + (q.Z-p.Z)*t,
	}
}

// Round returns the point with each coordinate rounded to the given
// number of decimal places. Input geometry is normalized to 3 decimals
// before generation so that output is byte-stable.
func (p Point) Round(decimals int) Point {
	scale := math.Pow(10, float64(decimals))
	return Point{
		X: math.Round(p.X*scale) / scale,
		Y: math.Round(p.Y*scale) / scale,
		Z: math.Round(p.Z*scale) / scale,
	}
}

// IsFinite reports whether all coordinates are finite real numbers.
func (p Point) IsFinite() bool {
	for _, v := range [3]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Degenerate reports whether the polyline cannot produce motion.
func (pl Polyline) Degenerate() bool {
	return len(pl) < 2
}

// Length returns the total polyline length.
func (pl Polyline) Length() float64 {
	total := 0.0
	for i := 1; i < len(pl); i++ {
		total += pl[i-1].Distance(pl[i])
	}
	return total
}

// SegmentCount returns the number of consecutive point pairs.
func (pl Polyline) SegmentCount() int {
	if len(pl) < 2 {
		return 0
	}
	return len(pl) - 1
}

// Rounded returns a copy of the polyline with all points rounded.
func (pl Polyline) Rounded(decimals int) Polyline {
	out := make(Polyline, len(pl))
	for i, p := range pl {
		out[i] = p.Round(decimals)
	}
	return out
}
