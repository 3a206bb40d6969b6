// Package emitter turns validated toolpath segments into machine
// instructions. One strategy exists per deposition mode (Hot, Clay,
// Pen) behind a common contract; each strategy carries only the state
// its mode needs, threaded explicitly so runs stay independent.
package emitter

import (
	"github.com/lborunda/rhinoFOAM/pkg/geometry"
	"github.com/lborunda/rhinoFOAM/pkg/profile"

	foamerrors "github.com/lborunda/rhinoFOAM/pkg/errors"
)

// State is the cumulative per-run emission state. It is a value,
// owned by the orchestrator and never shared across runs.
type State struct {
	// Extrusion is the cumulative filament position (Hot only). It is
	// monotonically non-decreasing for the whole run.
	Extrusion float64

	// PressureOn reports whether paste pressure is applied (Clay only).
	PressureOn bool

	// PenDown reports whether the tool is lowered (Pen only).
	PenDown bool
}

// Emitter is the per-mode strategy. PathStart positions the tool at the
// start of an in-bounds run and engages deposition; Move traverses one
// segment; PathEnd disengages deposition and lifts clear. Travel between
// runs is the PathEnd/PathStart pair, so it never deposits.
type Emitter interface {
	// Mode returns the deposition mode this strategy implements.
	Mode() profile.Mode

	// PathStart emits the approach/engage sequence for a run starting
	// at the given point.
	PathStart(start geometry.Point, st State) ([]string, State)

	// Move emits the instructions to traverse one segment.
	Move(from, to geometry.Point, st State) ([]string, State)

	// PathEnd emits the disengage/lift sequence after the run's last
	// point.
	PathEnd(last geometry.Point, st State) ([]string, State)

	// HeaderLines returns the mode's contribution to the default
	// header (used only when the caller supplies no BaseCode).
	HeaderLines() []string

	// FooterLines returns the mode's contribution to the default footer.
	FooterLines() []string
}

// New selects the strategy for the profile's mode.
func New(p *profile.Profile, d Dialect) (Emitter, error) {
	switch p.Mode {
	case profile.ModeHot:
		return newHot(p, d), nil
	case profile.ModeClay:
		return newClay(p, d), nil
	case profile.ModePen:
		return newPen(p, d), nil
	default:
		return nil, foamerrors.ModeError(string(p.Mode))
	}
}
