// Package bounds validates toolpath geometry against a printer's build
// envelope. The envelope is a closed tagged variant: a corner-rooted
// rectangular prism for Cartesian machines or an origin-centered
// cylinder for Delta machines. Points exactly on the surface are inside.
package bounds

import (
	"fmt"
	"math"
	"strings"

	"github.com/lborunda/rhinoFOAM/pkg/geometry"
)

// Shape identifies the envelope geometry.
type Shape int

const (
	// Prism spans [0,SizeX] x [0,SizeY] x [0,SizeZ].
	Prism Shape = iota
	// Cylinder spans x^2+y^2 <= Radius^2, z in [0,Height].
	Cylinder
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case Prism:
		return "prism"
	case Cylinder:
		return "cylinder"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Envelope is the region within which motion is valid. Exactly the
// fields of the active shape are meaningful.
type Envelope struct {
	Shape Shape

	// Prism dimensions.
	SizeX, SizeY, SizeZ float64

	// Cylinder dimensions.
	Radius, Height float64
}

// NewPrism returns a Cartesian build envelope.
func NewPrism(sizeX, sizeY, sizeZ float64) Envelope {
	return Envelope{Shape: Prism, SizeX: sizeX, SizeY: sizeY, SizeZ: sizeZ}
}

// NewCylinder returns a Delta build envelope.
func NewCylinder(radius, height float64) Envelope {
	return Envelope{Shape: Cylinder, Radius: radius, Height: height}
}

// Validate checks that the populated dimensions are positive.
func (e Envelope) Validate() error {
	switch e.Shape {
	case Prism:
		if e.SizeX <= 0 || e.SizeY <= 0 || e.SizeZ <= 0 {
			return fmt.Errorf("bounds: prism dimensions must be positive, got %gx%gx%g", e.SizeX, e.SizeY, e.SizeZ)
		}
	case Cylinder:
		if e.Radius <= 0 || e.Height <= 0 {
			return fmt.Errorf("bounds: cylinder dimensions must be positive, got r=%g h=%g", e.Radius, e.Height)
		}
	default:
		return fmt.Errorf("bounds: unknown envelope shape %d", int(e.Shape))
	}
	return nil
}

// Violations returns the out-of-bounds reasons for a point, empty when
// the point is inside. The reason vocabulary matches the generator's
// diagnostic labels (X<0, X>BedX, r>BedRadius, ...).
func (e Envelope) Violations(p geometry.Point) []string {
	var reasons []string
	switch e.Shape {
	case Cylinder:
		if math.Sqrt(p.X*p.X+p.Y*p.Y) > e.Radius {
			reasons = append(reasons, "r>BedRadius")
		}
		if p.Z < 0 {
			reasons = append(reasons, "Z<0")
		}
		if p.Z > e.Height {
			reasons = append(reasons, "Z>BedZ")
		}
	default:
		if p.X < 0 {
			reasons = append(reasons, "X<0")
		}
		if p.Y < 0 {
			reasons = append(reasons, "Y<0")
		}
		if p.Z < 0 {
			reasons = append(reasons, "Z<0")
		}
		if p.X > e.SizeX {
			reasons = append(reasons, "X>BedX")
		}
		if p.Y > e.SizeY {
			reasons = append(reasons, "Y>BedY")
		}
		if p.Z > e.SizeZ {
			reasons = append(reasons, "Z>BedZ")
		}
	}
	return reasons
}

// Contains reports whether the point is inside the closed envelope.
func (e Envelope) Contains(p geometry.Point) bool {
	return len(e.Violations(p)) == 0
}

// Reason joins violation labels into the single diagnostic string used
// by BadPoint and WarnDot entries.
func Reason(violations []string) string {
	return strings.Join(violations, ", ")
}

// Outline returns the bed outline curve in the XY plane, derived from
// the envelope for preview rendering. A prism yields its rectangle, a
// cylinder a 64-segment circle approximation.
func (e Envelope) Outline() geometry.Polyline {
	if e.Shape == Cylinder {
		const segments = 64
		outline := make(geometry.Polyline, 0, segments+1)
		for i := 0; i <= segments; i++ {
			a := 2 * math.Pi * float64(i) / segments
			outline = append(outline, geometry.Point{
				X: e.Radius * math.Cos(a),
				Y: e.Radius * math.Sin(a),
			})
		}
		return outline
	}
	return geometry.Polyline{
		{X: 0, Y: 0},
		{X: e.SizeX, Y: 0},
		{X: e.SizeX, Y: e.SizeY},
		{X: 0, Y: e.SizeY},
		{X: 0, Y: 0},
	}
}
