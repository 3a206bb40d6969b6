package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointDistance(t *testing.T) {
	a := Point{X: 0, Y: 0, Z: 0}
	b := Point{X: 3, Y: 4, Z: 0}
	assert.Equal(t, 5.0, a.Distance(b))
	assert.Equal(t, 5.0, b.Distance(a))
	assert.Equal(t, 0.0, a.Distance(a))
}

func TestPointLerp(t *testing.T) {
	a := Point{X: 0, Y: 0, Z: 0}
	b := Point{X: 10, Y: 20, Z: 30}

	mid := a.Lerp(b, 0.5)
	assert.Equal(t, Point{X: 5, Y: 10, Z: 15}, mid)
	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
}

func TestPointRound(t *testing.T) {
	p := Point{X: 1.23456, Y: -2.99951, Z: 0.0004}
	got := p.Round(3)
	assert.Equal(t, Point{X: 1.235, Y: -3.0, Z: 0}, got)
}

func TestPointIsFinite(t *testing.T) {
	assert.True(t, Point{X: 1, Y: 2, Z: 3}.IsFinite())
	assert.False(t, Point{X: math.NaN()}.IsFinite())
	assert.False(t, Point{Z: math.Inf(1)}.IsFinite())
}

func TestPolylineLength(t *testing.T) {
	pl := Polyline{{0, 0, 0}, {100, 0, 0}, {100, 50, 0}}
	assert.Equal(t, 150.0, pl.Length())
	assert.Equal(t, 2, pl.SegmentCount())
}

func TestPolylineDegenerate(t *testing.T) {
	assert.True(t, Polyline{}.Degenerate())
	assert.True(t, Polyline{{1, 2, 3}}.Degenerate())
	assert.False(t, Polyline{{0, 0, 0}, {1, 0, 0}}.Degenerate())
	assert.Equal(t, 0, Polyline{{1, 2, 3}}.SegmentCount())
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
paths:
  - [[0, 0, 0], [100, 0, 0]]
  - [[0, 0, 1], [50, 50, 1], [100, 0, 1]]
`)
	paths, err := ParseYAML(data)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, Polyline{{0, 0, 0}, {100, 0, 0}}, paths[0])
	assert.Len(t, paths[1], 3)
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{"paths": [[[0,0,0],[10,0,0]]]}`)
	paths, err := ParseJSON(data)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, Polyline{{0, 0, 0}, {10, 0, 0}}, paths[0])
}

func TestParseRejectsBadTriples(t *testing.T) {
	_, err := ParseJSON([]byte(`{"paths": [[[0,0]]]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3")
}
