package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lborunda/rhinoFOAM/pkg/bounds"
	"github.com/lborunda/rhinoFOAM/pkg/emitter"
	foamerrors "github.com/lborunda/rhinoFOAM/pkg/errors"
	"github.com/lborunda/rhinoFOAM/pkg/geometry"
	"github.com/lborunda/rhinoFOAM/pkg/profile"
)

func hotProfile() *profile.Profile {
	return profile.NewHot(profile.Cartesian, profile.Bed{}, nil)
}

func generate(t *testing.T, geo []geometry.Polyline, p *profile.Profile) *Bundle {
	t.Helper()
	b, err := Generate(geo, p, Options{})
	require.NoError(t, err)
	return b
}

func motionLines(b *Bundle) []string {
	var lines []string
	for _, l := range b.Instructions {
		if strings.HasPrefix(l, "G1 ") && strings.Contains(l, " E") {
			lines = append(lines, l)
		}
	}
	return lines
}

func TestHotSingleSegment(t *testing.T) {
	geo := []geometry.Polyline{{{X: 0, Y: 0, Z: 0}, {X: 100, Y: 0, Z: 0}}}
	b := generate(t, geo, hotProfile())

	// 100mm * CrossSectionFactor 1.0 * ExtrusionMultiplier 0.2 = 20.
	moves := motionLines(b)
	require.Len(t, moves, 1)
	assert.Equal(t, "G1 X100.000 Y0.000 Z0.000 E20.0000 F1500", moves[0])

	assert.Empty(t, b.BadSegments)
	assert.Empty(t, b.BadPoints)
	assert.Empty(t, b.WarnDots)
	assert.Equal(t, "OK", b.Report.Status)
}

func TestBoundaryCrossingDiagnostics(t *testing.T) {
	geo := []geometry.Polyline{{{X: 0, Y: 0, Z: 0}, {X: 350, Y: 0, Z: 0}}}
	b := generate(t, geo, hotProfile())

	require.Len(t, b.BadPoints, 1)
	assert.Equal(t, geometry.Point{X: 350, Y: 0, Z: 0}, b.BadPoints[0].Point)
	assert.Equal(t, "X>BedX", b.BadPoints[0].Reason)

	require.Len(t, b.WarnDots, 1)
	assert.Equal(t, geometry.Point{X: 300, Y: 0, Z: 0}, b.WarnDots[0].Position)
	assert.Equal(t, bounds.CategoryBoundaryCrossing, b.WarnDots[0].Category)

	require.Len(t, b.BadSegments, 1)
	assert.Equal(t, geometry.Point{X: 300, Y: 0, Z: 0}, b.BadSegments[0].Start)
	assert.Equal(t, geometry.Point{X: 350, Y: 0, Z: 0}, b.BadSegments[0].End)

	// Motion stops at the boundary.
	moves := motionLines(b)
	require.Len(t, moves, 1)
	assert.Contains(t, moves[0], "X300.000")

	// The in-bounds preview portion ends at the crossing.
	require.Len(t, b.PreviewGeometry, 1)
	last := b.PreviewGeometry[0][len(b.PreviewGeometry[0])-1]
	assert.Equal(t, geometry.Point{X: 300, Y: 0, Z: 0}, last)
}

func TestFullyOutsideSegmentSkipped(t *testing.T) {
	geo := []geometry.Polyline{{{X: -50, Y: 0, Z: 0}, {X: -10, Y: 0, Z: 0}}}
	b := generate(t, geo, hotProfile())

	assert.Empty(t, motionLines(b))
	assert.Len(t, b.BadPoints, 2)
	require.Len(t, b.BadSegments, 1)
	assert.Equal(t, "fully out of bounds", b.BadSegments[0].Reason)
	assert.Empty(t, b.PreviewGeometry)
	assert.Contains(t, b.Report.Status, "Out of bounds: 2 point(s)")
}

func TestReentryResumesAtBoundary(t *testing.T) {
	// Leaves through x=300 and comes back: two in-bounds runs.
	geo := []geometry.Polyline{{
		{X: 200, Y: 0, Z: 0},
		{X: 400, Y: 0, Z: 0},
		{X: 250, Y: 0, Z: 0},
	}}
	b := generate(t, geo, hotProfile())

	require.Len(t, b.PreviewGeometry, 2)
	assert.Len(t, b.WarnDots, 2)
	assert.Len(t, b.BadSegments, 2)

	// Exactly one lift/approach block separates the two runs.
	joined := strings.Join(b.Instructions, "\n")
	assert.Equal(t, 2, strings.Count(joined, "; Start path"))
	assert.Equal(t, 2, strings.Count(joined, "; End path"))
}

func TestPenThreeCollinearPoints(t *testing.T) {
	p := profile.NewPen(profile.Cartesian, profile.Bed{}, nil)
	geo := []geometry.Polyline{{{X: 0, Y: 0, Z: 0}, {X: 10, Y: 0, Z: 0}, {X: 20, Y: 0, Z: 0}}}
	b := generate(t, geo, p)

	assert.Equal(t, 2, b.Report.MotionLines)
	assert.Empty(t, motionLines(b), "pen mode emits no extrusion lines")

	joined := strings.Join(b.Instructions, "\n")
	assert.Equal(t, 1, strings.Count(joined, "G4 P100"), "one pen-down delay per toolpath entry")
	assert.NotContains(t, joined, "M3")
}

func TestClearanceBlockBetweenToolpaths(t *testing.T) {
	geo := []geometry.Polyline{
		{{X: 0, Y: 0, Z: 0}, {X: 50, Y: 0, Z: 0}},
		{{X: 100, Y: 100, Z: 0}, {X: 150, Y: 100, Z: 0}},
	}
	b := generate(t, geo, hotProfile())

	joined := strings.Join(b.Instructions, "\n")
	assert.Equal(t, 2, strings.Count(joined, "lift tool"))
	assert.Equal(t, 2, strings.Count(joined, "move above start"))

	// The block between the paths is lift -> approach -> descend, with
	// no extrusion in between.
	endIdx := indexOf(b.Instructions, "; End path")
	startIdx := indexOfFrom(b.Instructions, "; Start path", endIdx)
	require.Greater(t, startIdx, endIdx)
	for _, l := range b.Instructions[endIdx:startIdx] {
		assert.NotContains(t, l, " E", "travel never deposits")
	}
}

func TestStructuralErrorAborts(t *testing.T) {
	p := profile.NewHot(profile.Delta, profile.Bed{}, nil)
	p.Envelope = bounds.NewPrism(300, 300, 300) // mismatch with Delta

	b, err := Generate([]geometry.Polyline{{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}}}, p, Options{})
	require.Error(t, err)
	assert.Nil(t, b, "no instructions are produced on structural failure")
	assert.True(t, foamerrors.Is(err, foamerrors.ErrProfileEnvelope))
}

func TestDegenerateToolpathSkipped(t *testing.T) {
	geo := []geometry.Polyline{
		{{X: 5, Y: 5, Z: 0}}, // single point
		{{X: 0, Y: 0, Z: 0}, {X: 10, Y: 0, Z: 0}},
	}
	b := generate(t, geo, hotProfile())

	assert.Equal(t, 1, b.Report.SkippedToolpaths)
	assert.Len(t, b.PreviewGeometry, 1)

	found := false
	for _, n := range b.Report.Notes {
		if strings.Contains(n, "degenerate toolpath 0") {
			found = true
		}
	}
	assert.True(t, found, "skip is recorded in the report")
}

func TestDeterminism(t *testing.T) {
	geo := []geometry.Polyline{
		{{X: 0, Y: 0, Z: 0}, {X: 123.456, Y: 78.9, Z: 0.42}, {X: 350, Y: 10, Z: 5}},
		{{X: 10, Y: 20, Z: 30}, {X: 40, Y: 50, Z: 60}},
	}

	first := generate(t, geo, hotProfile())
	for i := 0; i < 5; i++ {
		again := generate(t, geo, hotProfile())
		assert.Equal(t, first.Instructions, again.Instructions, "instructions are byte-stable")
		assert.Equal(t, first.Report, again.Report)
	}
}

func TestMonotonicExtrusionAcrossPaths(t *testing.T) {
	geo := []geometry.Polyline{
		{{X: 0, Y: 0, Z: 0}, {X: 100, Y: 0, Z: 0}},
		{{X: 0, Y: 50, Z: 0}, {X: 100, Y: 50, Z: 0}},
	}
	b := generate(t, geo, hotProfile())

	moves := motionLines(b)
	require.Len(t, moves, 2)
	assert.Contains(t, moves[0], "E20.0000")
	assert.Contains(t, moves[1], "E40.0000", "extrusion position carries across toolpaths")
}

func TestPreviewTruncation(t *testing.T) {
	// A long zig-zag produces well over 30 instruction lines.
	var pl geometry.Polyline
	for i := 0; i < 40; i++ {
		pl = append(pl, geometry.Point{X: float64(i * 5), Y: float64(i % 2 * 10), Z: 0})
	}
	b := generate(t, []geometry.Polyline{pl}, hotProfile())
	require.Greater(t, len(b.Instructions), PreviewLineCount)

	lines := strings.Split(b.PreviewText, "\n")
	require.Len(t, lines, PreviewLineCount+1, "30 preview lines plus the total-count trailer")
	for i := 0; i < PreviewLineCount; i++ {
		assert.Equal(t, b.Instructions[i], lines[i])
	}
	assert.Contains(t, lines[PreviewLineCount], "lines total")
}

func TestConservation(t *testing.T) {
	geo := []geometry.Polyline{
		{{X: 0, Y: 0, Z: 0}, {X: 100, Y: 0, Z: 0}, {X: 350, Y: 0, Z: 0}},
		{{X: -10, Y: -10, Z: 0}, {X: -20, Y: -10, Z: 0}},
		{{X: 5, Y: 5, Z: 5}},
	}
	b := generate(t, geo, hotProfile())

	// No segment vanishes without being emitted or diagnosed.
	total := b.Report.MotionLines + b.Report.BadSegments + b.Report.SkippedToolpaths
	assert.GreaterOrEqual(t, total, b.Report.Segments)
}

func TestPartialDialectKeepsDefaults(t *testing.T) {
	geo := []geometry.Polyline{{{X: 0, Y: 0, Z: 0}, {X: 100, Y: 0, Z: 0}}}
	b, err := Generate(geo, hotProfile(), Options{
		Dialect: emitter.Dialect{CoordDecimals: 1},
	})
	require.NoError(t, err)

	// Comment prefix and extrusion precision fall back to defaults.
	assert.Equal(t, "; FOAM G-code Generator", b.Instructions[0])
	moves := motionLines(b)
	require.Len(t, moves, 1)
	assert.Equal(t, "G1 X100.0 Y0.0 Z0.0 E20.0000 F1500", moves[0])
}

func TestBaseCodePassthrough(t *testing.T) {
	header := []string{"; custom header", "G28 ; home", "M900 K0.05"}
	footer := []string{"; custom footer", "M84"}
	geo := []geometry.Polyline{{{X: 0, Y: 0, Z: 0}, {X: 10, Y: 0, Z: 0}}}

	b, err := Generate(geo, hotProfile(), Options{BaseHeader: header, BaseFooter: footer})
	require.NoError(t, err)

	assert.Equal(t, header, b.Instructions[:len(header)])
	assert.Equal(t, footer, b.Instructions[len(b.Instructions)-len(footer):])
	assert.NotContains(t, strings.Join(b.Instructions, "\n"), "FOAM G-code Generator")
}

func TestDefaultHeaderFooter(t *testing.T) {
	geo := []geometry.Polyline{{{X: 0, Y: 0, Z: 0}, {X: 10, Y: 0, Z: 0}}}
	b := generate(t, geo, hotProfile())

	assert.Equal(t, "; FOAM G-code Generator", b.Instructions[0])
	joined := strings.Join(b.Instructions, "\n")
	assert.Contains(t, joined, "M104 S210")
	assert.Contains(t, joined, "G92 E0")
	assert.Contains(t, joined, "M84 ; disable motors")

	// Pen runs carry no temperature or extrusion-reset lines.
	pb := generate(t, geo, profile.NewPen(profile.Cartesian, profile.Bed{}, nil))
	pjoined := strings.Join(pb.Instructions, "\n")
	assert.NotContains(t, pjoined, "M104")
	assert.NotContains(t, pjoined, "G92 E0")
}

func TestBedOutlineShapes(t *testing.T) {
	b := generate(t, nil, hotProfile())
	assert.Len(t, b.BedOutline, 5, "rectangle outline for Cartesian")

	db := generate(t, nil, profile.NewClay(profile.Delta, profile.Bed{}, nil))
	assert.Len(t, db.BedOutline, 65, "circle outline for Delta")
}

func TestReportSummary(t *testing.T) {
	geo := []geometry.Polyline{{{X: 0, Y: 0, Z: 0}, {X: 10, Y: 0, Z: 0}}}
	b := generate(t, geo, hotProfile())

	assert.Contains(t, b.Report.Summary, "Geometry: 1")
	assert.Contains(t, b.Report.Summary, "Status: OK")
	assert.Equal(t, 1, b.Report.Toolpaths)
	assert.Equal(t, 1, b.Report.Segments)
}

func indexOf(lines []string, want string) int {
	return indexOfFrom(lines, want, 0)
}

func indexOfFrom(lines []string, want string, from int) int {
	for i := from; i < len(lines); i++ {
		if lines[i] == want {
			return i
		}
	}
	return -1
}
