// Package profile defines the normalized, mode-tagged parameter bundle
// consumed by the G-code generator, plus the three profile builders
// (Hot, Clay, Pen) that assemble it with documented defaults.
package profile

import (
	"fmt"
	"sort"

	"github.com/lborunda/rhinoFOAM/pkg/bounds"
	foamerrors "github.com/lborunda/rhinoFOAM/pkg/errors"
	"github.com/lborunda/rhinoFOAM/pkg/geometry"
)

// Mode is the material-deposition strategy.
type Mode string

const (
	// ModeHot is thermoplastic FDM: heated nozzle, cumulative filament extrusion.
	ModeHot Mode = "Hot"
	// ModeClay is paste/clay/concrete extrusion: pressure-based deposition.
	ModeClay Mode = "Clay"
	// ModePen is pen-plotter or motion-only operation: no extrusion.
	ModePen Mode = "Pen"
)

// Kinematics is the machine envelope interpretation.
type Kinematics string

const (
	// Cartesian machines have a rectangular prism envelope.
	Cartesian Kinematics = "Cartesian"
	// Delta machines have a cylindrical envelope.
	Delta Kinematics = "Delta"
)

// Parameter names. The set of meaningful keys depends on the mode; the
// per-mode tables live in defaults.go.
const (
	ParamNozzleTemp          = "NozzleTemp"
	ParamBedTemp             = "BedTemp"
	ParamExtrusionMultiplier = "ExtrusionMultiplier"
	ParamCrossSectionFactor  = "CrossSectionFactor"
	ParamExtrusionPressure   = "ExtrusionPressure"
	ParamFlowRate            = "FlowRate"
	ParamRetractionDelay     = "RetractionDelay"
	ParamCurePause           = "CurePause"
	ParamPenUpHeight         = "PenUpHeight"
	ParamPenDownOffset       = "PenDownOffset"
	ParamPenDownDelay        = "PenDownDelay"
	ParamFeedRate            = "FeedRate"
	ParamTravelFeedRate      = "TravelFeedRate"
	ParamClearanceHeight     = "ClearanceHeight"
)

// Profile is an immutable, mode-tagged parameter bundle constructed
// once per generation run.
type Profile struct {
	Mode       Mode
	Kinematics Kinematics

	// Params maps parameter name to value. Builders fill in documented
	// defaults for missing keys; unknown keys are dropped.
	Params map[string]float64

	// Envelope is the build volume, consistent with Kinematics.
	Envelope bounds.Envelope

	// Notes records informational events from profile assembly, such
	// as applied defaults and ignored unknown parameters.
	Notes []string
}

// Param returns a parameter value, falling back to the documented
// default for the profile's mode when the key is absent.
func (p *Profile) Param(name string) float64 {
	if v, ok := p.Params[name]; ok {
		return v
	}
	return defaultsFor(p.Mode)[name]
}

// BedOutline returns the 2D preview curve derived from the envelope.
func (p *Profile) BedOutline() geometry.Polyline {
	return p.Envelope.Outline()
}

// Validate checks the structural invariants: recognized mode and
// kinematics, and an envelope shape consistent with the kinematics.
// A violation is fatal; the generator refuses to start the run.
func (p *Profile) Validate() error {
	switch p.Mode {
	case ModeHot, ModeClay, ModePen:
	default:
		return foamerrors.ModeError(string(p.Mode))
	}

	switch p.Kinematics {
	case Cartesian:
		if p.Envelope.Shape != bounds.Prism {
			return foamerrors.EnvelopeMismatchError(string(p.Kinematics), p.Envelope.Shape.String())
		}
	case Delta:
		if p.Envelope.Shape != bounds.Cylinder {
			return foamerrors.EnvelopeMismatchError(string(p.Kinematics), p.Envelope.Shape.String())
		}
	default:
		return foamerrors.KinematicsError(string(p.Kinematics))
	}

	if err := p.Envelope.Validate(); err != nil {
		return foamerrors.Wrap(err, foamerrors.ErrProfileEnvelope, "invalid envelope dimensions")
	}
	return nil
}

// String returns a short description for logs and reports.
func (p *Profile) String() string {
	switch p.Envelope.Shape {
	case bounds.Cylinder:
		return fmt.Sprintf("%s/%s r=%g h=%g", p.Mode, p.Kinematics, p.Envelope.Radius, p.Envelope.Height)
	default:
		return fmt.Sprintf("%s/%s %gx%gx%g", p.Mode, p.Kinematics, p.Envelope.SizeX, p.Envelope.SizeY, p.Envelope.SizeZ)
	}
}

// sortedParamNames returns the parameter names in deterministic order.
func sortedParamNames(params map[string]float64) []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
