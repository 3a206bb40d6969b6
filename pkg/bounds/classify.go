package bounds

import (
	"math"

	"github.com/lborunda/rhinoFOAM/pkg/geometry"
)

// SegmentClass is the result category of a segment test.
type SegmentClass int

const (
	// SegmentInside means both endpoints are inside the envelope.
	SegmentInside SegmentClass = iota
	// SegmentOutside means both endpoints are outside; no crossing
	// point is synthesized.
	SegmentOutside
	// SegmentCrossing means exactly one endpoint is inside; a boundary
	// crossing point is synthesized by linear interpolation.
	SegmentCrossing
)

// SegmentResult describes how a segment relates to the envelope.
type SegmentResult struct {
	Class SegmentClass

	// Crossing is the synthesized boundary point, valid only when
	// Class is SegmentCrossing.
	Crossing geometry.Point

	// T is the segment parameter of the crossing measured from the
	// inside endpoint, in [0,1].
	T float64

	// InsideFirst reports whether the segment's first endpoint is the
	// inside one.
	InsideFirst bool
}

// ClassifySegment evaluates both endpoints of the segment a->b against
// the envelope. On a mixed result the boundary crossing nearest the
// inside endpoint is computed deterministically: when the segment exits
// through more than one face, the smallest parameter t from the inside
// end wins.
func (e Envelope) ClassifySegment(a, b geometry.Point) SegmentResult {
	aIn := e.Contains(a)
	bIn := e.Contains(b)

	switch {
	case aIn && bIn:
		return SegmentResult{Class: SegmentInside}
	case !aIn && !bIn:
		return SegmentResult{Class: SegmentOutside}
	}

	inside, outside := a, b
	if bIn {
		inside, outside = b, a
	}

	t := e.exitParameter(inside, outside)
	return SegmentResult{
		Class:       SegmentCrossing,
		Crossing:    inside.Lerp(outside, t),
		T:           t,
		InsideFirst: aIn,
	}
}

// exitParameter returns the smallest t in [0,1] at which the segment
// from the inside point to the outside point leaves the envelope.
func (e Envelope) exitParameter(in, out geometry.Point) float64 {
	best := 1.0
	consider := func(t float64) {
		if t >= 0 && t < best {
			best = t
		}
	}

	if e.Shape == Cylinder {
		if t, ok := planeExit(in.Z, out.Z, 0, e.Height); ok {
			consider(t)
		}
		if t, ok := cylinderWallExit(in, out, e.Radius); ok {
			consider(t)
		}
		return best
	}

	if t, ok := planeExit(in.X, out.X, 0, e.SizeX); ok {
		consider(t)
	}
	if t, ok := planeExit(in.Y, out.Y, 0, e.SizeY); ok {
		consider(t)
	}
	if t, ok := planeExit(in.Z, out.Z, 0, e.SizeZ); ok {
		consider(t)
	}
	return best
}

// planeExit computes the parameter where a 1D coordinate moving from an
// in-range value to an out-of-range value crosses the nearer bound.
func planeExit(in, out, lo, hi float64) (float64, bool) {
	d := out - in
	if out < lo && d != 0 {
		return (lo - in) / d, true
	}
	if out > hi && d != 0 {
		return (hi - in) / d, true
	}
	return 0, false
}

// cylinderWallExit solves |xy(t)| = radius for the segment in->out with
// the inside endpoint within the wall. Returns the positive root of the
// quadratic, or false when the XY projection never reaches the wall.
func cylinderWallExit(in, out geometry.Point, radius float64) (float64, bool) {
	if out.X*out.X+out.Y*out.Y <= radius*radius {
		return 0, false
	}
	dx := out.X - in.X
	dy := out.Y - in.Y
	qa := dx*dx + dy*dy
	if qa == 0 {
		return 0, false
	}
	qb := 2 * (in.X*dx + in.Y*dy)
	qc := in.X*in.X + in.Y*in.Y - radius*radius
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return 0, false
	}
	t := (-qb + math.Sqrt(disc)) / (2 * qa)
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}
