package bounds

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lborunda/rhinoFOAM/pkg/geometry"
)

func TestPrismContains(t *testing.T) {
	env := NewPrism(300, 300, 300)

	assert.True(t, env.Contains(geometry.Point{X: 150, Y: 150, Z: 150}))
	assert.True(t, env.Contains(geometry.Point{X: 0, Y: 0, Z: 0}), "boundary is closed")
	assert.True(t, env.Contains(geometry.Point{X: 300, Y: 300, Z: 300}), "boundary is closed")
	assert.False(t, env.Contains(geometry.Point{X: 350, Y: 0, Z: 0}))
	assert.False(t, env.Contains(geometry.Point{X: -1, Y: 0, Z: 0}))
}

func TestPrismViolationReasons(t *testing.T) {
	env := NewPrism(300, 300, 300)

	reasons := env.Violations(geometry.Point{X: 350, Y: -2, Z: 400})
	assert.Equal(t, []string{"Y<0", "X>BedX", "Z>BedZ"}, reasons)
	assert.Equal(t, "Y<0, X>BedX, Z>BedZ", Reason(reasons))
}

func TestCylinderContains(t *testing.T) {
	env := NewCylinder(150, 300)

	// 200^2 > 150^2, so outside regardless of z.
	assert.False(t, env.Contains(geometry.Point{X: 200, Y: 0, Z: 50}))
	assert.Equal(t, []string{"r>BedRadius"}, env.Violations(geometry.Point{X: 200, Y: 0, Z: 50}))

	assert.True(t, env.Contains(geometry.Point{X: 150, Y: 0, Z: 0}), "wall is closed")
	assert.True(t, env.Contains(geometry.Point{X: 100, Y: 100, Z: 299}))
	assert.False(t, env.Contains(geometry.Point{X: 110, Y: 110, Z: 10}))
	assert.False(t, env.Contains(geometry.Point{X: 0, Y: 0, Z: -0.5}))
}

func TestEnvelopeValidate(t *testing.T) {
	require.NoError(t, NewPrism(300, 300, 300).Validate())
	require.NoError(t, NewCylinder(150, 300).Validate())
	assert.Error(t, NewPrism(0, 300, 300).Validate())
	assert.Error(t, NewCylinder(150, -1).Validate())
	assert.Error(t, Envelope{Shape: Shape(9)}.Validate())
}

func TestClassifySegmentInsideOutside(t *testing.T) {
	env := NewPrism(300, 300, 300)

	in := env.ClassifySegment(geometry.Point{X: 10, Y: 10, Z: 10}, geometry.Point{X: 20, Y: 20, Z: 20})
	assert.Equal(t, SegmentInside, in.Class)

	out := env.ClassifySegment(geometry.Point{X: -10, Y: 0, Z: 0}, geometry.Point{X: -20, Y: 0, Z: 0})
	assert.Equal(t, SegmentOutside, out.Class)
}

func TestClassifySegmentCrossingPrism(t *testing.T) {
	env := NewPrism(300, 300, 300)

	// (0,0,0) inside paired with (350,0,0) outside X.
	res := env.ClassifySegment(geometry.Point{X: 0, Y: 0, Z: 0}, geometry.Point{X: 350, Y: 0, Z: 0})
	require.Equal(t, SegmentCrossing, res.Class)
	assert.True(t, res.InsideFirst)
	assert.InDelta(t, 300.0/350.0, res.T, 1e-12)
	assert.InDelta(t, 300, res.Crossing.X, 1e-9)
	assert.Equal(t, 0.0, res.Crossing.Y)
	assert.Equal(t, 0.0, res.Crossing.Z)
}

func TestClassifySegmentCrossingReversed(t *testing.T) {
	env := NewPrism(300, 300, 300)

	// Outside endpoint first: T is still measured from the inside end.
	res := env.ClassifySegment(geometry.Point{X: 350, Y: 0, Z: 0}, geometry.Point{X: 0, Y: 0, Z: 0})
	require.Equal(t, SegmentCrossing, res.Class)
	assert.False(t, res.InsideFirst)
	assert.InDelta(t, 300, res.Crossing.X, 1e-9)
}

func TestClassifySegmentPicksNearestFace(t *testing.T) {
	env := NewPrism(100, 100, 100)

	// Exits through both x=100 (t=0.18) and y=100 (t=0.3); nearest wins.
	a := geometry.Point{X: 10, Y: 10, Z: 0}
	b := geometry.Point{X: 510, Y: 310, Z: 0}
	res := env.ClassifySegment(a, b)
	require.Equal(t, SegmentCrossing, res.Class)
	assert.InDelta(t, 0.18, res.T, 1e-12)
	assert.InDelta(t, 100, res.Crossing.X, 1e-9)
	assert.Less(t, res.Crossing.Y, 100.0)
}

func TestClassifySegmentCylinderWall(t *testing.T) {
	env := NewCylinder(150, 300)

	a := geometry.Point{X: 0, Y: 0, Z: 50}
	b := geometry.Point{X: 300, Y: 0, Z: 50}
	res := env.ClassifySegment(a, b)
	require.Equal(t, SegmentCrossing, res.Class)
	assert.InDelta(t, 0.5, res.T, 1e-12)

	// Crossing satisfies the wall equation within tolerance.
	r := math.Sqrt(res.Crossing.X*res.Crossing.X + res.Crossing.Y*res.Crossing.Y)
	assert.InDelta(t, 150, r, 1e-9)
}

func TestClassifySegmentCylinderTopPlaneBeforeWall(t *testing.T) {
	env := NewCylinder(150, 100)

	// Steep segment exits the top plane before reaching the wall.
	a := geometry.Point{X: 0, Y: 0, Z: 0}
	b := geometry.Point{X: 200, Y: 0, Z: 400}
	res := env.ClassifySegment(a, b)
	require.Equal(t, SegmentCrossing, res.Class)
	assert.InDelta(t, 0.25, res.T, 1e-12)
	assert.InDelta(t, 100, res.Crossing.Z, 1e-9)
}

func TestClassifyDeterministic(t *testing.T) {
	env := NewCylinder(150, 300)
	a := geometry.Point{X: 12.345, Y: -3.21, Z: 9.87}
	b := geometry.Point{X: 250.001, Y: 99.9, Z: 310.5}

	first := env.ClassifySegment(a, b)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, env.ClassifySegment(a, b))
	}
}

func TestOutline(t *testing.T) {
	rect := NewPrism(200, 100, 50).Outline()
	require.Len(t, rect, 5)
	assert.Equal(t, rect[0], rect[len(rect)-1], "outline is closed")
	assert.Equal(t, geometry.Point{X: 200, Y: 100}, rect[2])

	circle := NewCylinder(150, 300).Outline()
	require.Len(t, circle, 65)
	assert.Equal(t, circle[0], circle[len(circle)-1], "outline is closed")
	for _, p := range circle {
		assert.InDelta(t, 150, math.Hypot(p.X, p.Y), 1e-9)
	}
}
