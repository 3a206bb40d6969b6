// Package generator drives a G-code generation run: it validates the
// profile, walks every toolpath segment through the envelope validator
// and the mode's emitter, and assembles the output bundle. A run is a
// pure function of (geometry, profile, options); it owns all of its
// mutable state, so concurrent runs need no coordination.
package generator

import (
	"fmt"
	"strings"

	"github.com/lborunda/rhinoFOAM/pkg/bounds"
	"github.com/lborunda/rhinoFOAM/pkg/emitter"
	"github.com/lborunda/rhinoFOAM/pkg/geometry"
	"github.com/lborunda/rhinoFOAM/pkg/profile"
)

// Input geometry is normalized to this precision before generation.
const coordinateDecimals = 3

// PreviewLineCount is the number of instruction lines included in the
// short preview text.
const PreviewLineCount = 30

// Options carries the per-run configuration beyond profile and geometry.
type Options struct {
	// BaseHeader lines are emitted verbatim before any motion. When
	// nil, the default header block is used.
	BaseHeader []string

	// BaseFooter lines are emitted verbatim after all motion. When
	// nil, the default footer block is used.
	BaseFooter []string

	// Dialect fixes the instruction text conventions. Unset fields
	// take the defaults.
	Dialect emitter.Dialect
}

func (o Options) dialect() emitter.Dialect {
	return o.Dialect.WithDefaults()
}

// Bundle is the assembled result of one generation run. It is built
// once and returned immutably; there is no partial or streaming form.
type Bundle struct {
	// Instructions is the primary artifact: the literal machine
	// instruction text, one instruction per line, in emission order.
	Instructions []string `json:"instructions"`

	// PreviewGeometry holds the in-bounds polyline portions actually
	// traversed.
	PreviewGeometry []geometry.Polyline `json:"previewGeometry"`

	// PreviewText is the first PreviewLineCount instruction lines,
	// joined for display.
	PreviewText string `json:"previewText"`

	// Report summarizes the run.
	Report Report `json:"report"`

	// BedOutline is the 2D bed curve derived from the envelope.
	BedOutline geometry.Polyline `json:"bedOutline"`

	BadPoints   []bounds.BadPoint   `json:"badPoints"`
	BadSegments []bounds.BadSegment `json:"badSegments"`
	WarnDots    []bounds.WarnDot    `json:"warnDots"`
}

// Report is the human-readable run summary with diagnostic counts.
type Report struct {
	Toolpaths        int      `json:"toolpaths"`
	Segments         int      `json:"segments"`
	MotionLines      int      `json:"motionLines"`
	BadPoints        int      `json:"badPoints"`
	BadSegments      int      `json:"badSegments"`
	Warnings         int      `json:"warnings"`
	SkippedToolpaths int      `json:"skippedToolpaths"`
	Status           string   `json:"status"`
	Summary          string   `json:"summary"`
	Notes            []string `json:"notes,omitempty"`
}

// run is the mutable state of one generation pass, owned exclusively
// by Generate for the duration of the call.
type run struct {
	prof *profile.Profile
	em   emitter.Emitter
	env  bounds.Envelope

	state        emitter.State
	instructions []string
	preview      []geometry.Polyline
	badPoints    []bounds.BadPoint
	badSegments  []bounds.BadSegment
	warnDots     []bounds.WarnDot
	notes        []string

	segments    int
	motionLines int
	skipped     int
}

// Generate performs one toolpath-to-code generation pass. The only
// fatal condition is a structurally invalid profile; out-of-bounds or
// degenerate geometry degrades gracefully into the report.
func Generate(geo []geometry.Polyline, prof *profile.Profile, opts Options) (*Bundle, error) {
	if err := prof.Validate(); err != nil {
		return nil, err
	}

	em, err := emitter.New(prof, opts.dialect())
	if err != nil {
		return nil, err
	}

	r := &run{
		prof:  prof,
		em:    em,
		env:   prof.Envelope,
		notes: append([]string(nil), prof.Notes...),
	}

	r.emit(headerLines(em, opts, opts.dialect())...)

	for i, pl := range geo {
		r.toolpath(i, pl.Rounded(coordinateDecimals))
	}

	r.emit(footerLines(em, opts, opts.dialect())...)

	return r.assemble(len(geo)), nil
}

// emit appends instruction lines in order.
func (r *run) emit(lines ...string) {
	r.instructions = append(r.instructions, lines...)
}

// toolpath processes one polyline: per-point bounds diagnostics, then
// decomposition into in-bounds runs, each emitted as an approach /
// moves / lift block. Travel between runs is the lift + approach pair,
// which never deposits.
func (r *run) toolpath(index int, pl geometry.Polyline) {
	if pl.Degenerate() {
		r.skipped++
		r.notes = append(r.notes, fmt.Sprintf("skipped degenerate toolpath %d (%d point(s))", index, len(pl)))
		return
	}

	for _, pt := range pl {
		if violations := r.env.Violations(pt); len(violations) > 0 {
			r.badPoints = append(r.badPoints, bounds.BadPoint{Point: pt, Reason: bounds.Reason(violations)})
		}
	}

	for _, runPts := range r.clip(pl) {
		r.emitRun(runPts)
	}
}

// clip splits a polyline into its maximal in-bounds sub-polylines,
// synthesizing boundary crossing points and recording diagnostics for
// the portions left out.
func (r *run) clip(pl geometry.Polyline) []geometry.Polyline {
	var runs []geometry.Polyline
	var cur geometry.Polyline

	flush := func() {
		if len(cur) >= 2 {
			runs = append(runs, cur)
		}
		cur = nil
	}

	for i := 1; i < len(pl); i++ {
		a, b := pl[i-1], pl[i]
		r.segments++

		res := r.env.ClassifySegment(a, b)
		switch res.Class {
		case bounds.SegmentInside:
			if len(cur) == 0 {
				cur = append(cur, a)
			}
			cur = append(cur, b)

		case bounds.SegmentCrossing:
			cross := res.Crossing.Round(coordinateDecimals)
			r.warnDots = append(r.warnDots, bounds.WarnDot{
				Position: cross,
				Category: bounds.CategoryBoundaryCrossing,
			})
			if res.InsideFirst {
				// Motion up to the boundary, then the segment leaves.
				if len(cur) == 0 {
					cur = append(cur, a)
				}
				cur = append(cur, cross)
				flush()
				r.badSegments = append(r.badSegments, bounds.BadSegment{
					Start:  cross,
					End:    b,
					Reason: bounds.Reason(r.env.Violations(b)),
				})
			} else {
				// Re-entering: resume motion from the boundary.
				r.badSegments = append(r.badSegments, bounds.BadSegment{
					Start:  a,
					End:    cross,
					Reason: bounds.Reason(r.env.Violations(a)),
				})
				flush()
				cur = geometry.Polyline{cross, b}
			}

		case bounds.SegmentOutside:
			r.badSegments = append(r.badSegments, bounds.BadSegment{
				Start:  a,
				End:    b,
				Reason: "fully out of bounds",
			})
		}
	}
	flush()

	return runs
}

// emitRun emits one in-bounds run through the mode's strategy.
func (r *run) emitRun(pts geometry.Polyline) {
	var lines []string

	lines, r.state = r.em.PathStart(pts[0], r.state)
	r.emit(lines...)

	for i := 1; i < len(pts); i++ {
		lines, r.state = r.em.Move(pts[i-1], pts[i], r.state)
		r.emit(lines...)
		r.motionLines += len(lines)
	}

	lines, r.state = r.em.PathEnd(pts[len(pts)-1], r.state)
	r.emit(lines...)

	r.preview = append(r.preview, pts)
}

// assemble builds the immutable output bundle.
func (r *run) assemble(toolpaths int) *Bundle {
	status := "OK"
	if len(r.badPoints) > 0 {
		status = fmt.Sprintf("Out of bounds: %d point(s)", len(r.badPoints))
	}

	report := Report{
		Toolpaths:        toolpaths,
		Segments:         r.segments,
		MotionLines:      r.motionLines,
		BadPoints:        len(r.badPoints),
		BadSegments:      len(r.badSegments),
		Warnings:         len(r.warnDots),
		SkippedToolpaths: r.skipped,
		Status:           status,
		Notes:            r.notes,
	}
	report.Summary = fmt.Sprintf("Geometry: %d, Paths: %d, G-code lines: %d, Status: %s",
		toolpaths, len(r.preview), len(r.instructions), status)

	return &Bundle{
		Instructions:    r.instructions,
		PreviewGeometry: r.preview,
		PreviewText:     previewText(r.instructions),
		Report:          report,
		BedOutline:      r.env.Outline(),
		BadPoints:       r.badPoints,
		BadSegments:     r.badSegments,
		WarnDots:        r.warnDots,
	}
}

// previewText joins the first PreviewLineCount instruction lines and
// appends the total line count.
func previewText(instructions []string) string {
	if len(instructions) == 0 {
		return "No G-code generated"
	}
	n := len(instructions)
	if n > PreviewLineCount {
		n = PreviewLineCount
	}
	return strings.Join(instructions[:n], "\n") + fmt.Sprintf("\n... (%d lines total)", len(instructions))
}

// headerLines returns the caller's BaseCode header verbatim, or the
// default header block.
func headerLines(em emitter.Emitter, opts Options, d emitter.Dialect) []string {
	if opts.BaseHeader != nil {
		return opts.BaseHeader
	}
	lines := []string{
		d.Comment("FOAM G-code Generator"),
		d.WithComment("G28", "Home all axes"),
	}
	return append(lines, em.HeaderLines()...)
}

// footerLines returns the caller's BaseCode footer verbatim, or the
// default footer block.
func footerLines(em emitter.Emitter, opts Options, d emitter.Dialect) []string {
	if opts.BaseFooter != nil {
		return opts.BaseFooter
	}
	lines := []string{d.Comment("End of FOAM print")}
	lines = append(lines, em.FooterLines()...)
	return append(lines,
		d.WithComment("M107", "fans off"),
		d.WithComment("G28 X0", "home X"),
		d.WithComment("M84", "disable motors"),
	)
}
