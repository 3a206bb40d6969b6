package profile

import (
	"fmt"

	"github.com/lborunda/rhinoFOAM/pkg/bounds"
)

// Default bed dimensions shared by all builders.
const (
	DefaultBedSize   = 300.0
	DefaultBedRadius = 150.0
)

// hotDefaults is the documented parameter table for Hot (FDM) profiles.
var hotDefaults = map[string]float64{
	ParamNozzleTemp:          210,
	ParamBedTemp:             30,
	ParamExtrusionMultiplier: 0.20,
	ParamCrossSectionFactor:  1.0,
	ParamFeedRate:            1500,
	ParamTravelFeedRate:      2000,
	ParamClearanceHeight:     5,
}

// clayDefaults is the documented parameter table for Clay (paste) profiles.
var clayDefaults = map[string]float64{
	ParamExtrusionPressure: 4.0,
	ParamFlowRate:          10.0,
	ParamRetractionDelay:   0.5,
	ParamCurePause:         0.0,
	ParamFeedRate:          800,
	ParamTravelFeedRate:    2000,
	ParamClearanceHeight:   5,
}

// penDefaults is the documented parameter table for Pen (motion-only) profiles.
var penDefaults = map[string]float64{
	ParamPenUpHeight:     5,
	ParamPenDownOffset:   0.2,
	ParamPenDownDelay:    100,
	ParamFeedRate:        1000,
	ParamTravelFeedRate:  2000,
	ParamClearanceHeight: 5,
}

// defaultsFor returns the parameter table for a mode.
func defaultsFor(mode Mode) map[string]float64 {
	switch mode {
	case ModeHot:
		return hotDefaults
	case ModeClay:
		return clayDefaults
	case ModePen:
		return penDefaults
	default:
		return nil
	}
}

// Bed describes the build volume as supplied by the caller. Zero fields
// fall back to the shared defaults (300x300x300 Cartesian, radius 150
// Delta with height SizeZ).
type Bed struct {
	SizeX  float64
	SizeY  float64
	SizeZ  float64
	Radius float64
}

// envelope resolves the Bed into a concrete envelope for the kinematics.
func (b Bed) envelope(kin Kinematics) bounds.Envelope {
	sizeX := orDefault(b.SizeX, DefaultBedSize)
	sizeY := orDefault(b.SizeY, DefaultBedSize)
	sizeZ := orDefault(b.SizeZ, DefaultBedSize)
	if kin == Delta {
		return bounds.NewCylinder(orDefault(b.Radius, DefaultBedRadius), sizeZ)
	}
	return bounds.NewPrism(sizeX, sizeY, sizeZ)
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// NewHot builds a thermoplastic FDM profile.
func NewHot(kin Kinematics, bed Bed, params map[string]float64) *Profile {
	return build(ModeHot, kin, bed, params)
}

// NewClay builds a paste/clay extrusion profile.
func NewClay(kin Kinematics, bed Bed, params map[string]float64) *Profile {
	return build(ModeClay, kin, bed, params)
}

// NewPen builds a pen-plotter / motion-only profile.
func NewPen(kin Kinematics, bed Bed, params map[string]float64) *Profile {
	return build(ModePen, kin, bed, params)
}

// build assembles a profile: every key of the mode's table is present
// in the result, caller values win, missing keys take the documented
// default (recorded as a note), unknown keys are dropped with a note.
func build(mode Mode, kin Kinematics, bed Bed, params map[string]float64) *Profile {
	defaults := defaultsFor(mode)
	p := &Profile{
		Mode:       mode,
		Kinematics: kin,
		Params:     make(map[string]float64, len(defaults)),
		Envelope:   bed.envelope(kin),
	}

	for _, name := range sortedParamNames(defaults) {
		if v, ok := params[name]; ok {
			p.Params[name] = v
			continue
		}
		p.Params[name] = defaults[name]
		p.Notes = append(p.Notes, fmt.Sprintf("default applied: %s=%g", name, defaults[name]))
	}

	for _, name := range sortedParamNames(params) {
		if _, ok := defaults[name]; !ok {
			p.Notes = append(p.Notes, fmt.Sprintf("ignored unknown parameter: %s", name))
		}
	}

	return p
}
