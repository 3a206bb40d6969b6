package profile

import (
	"github.com/lborunda/rhinoFOAM/pkg/config"
	foamerrors "github.com/lborunda/rhinoFOAM/pkg/errors"
)

// optionNames maps profile file option names to canonical parameter
// names. File options use snake_case per the config dialect.
var optionNames = map[string]string{
	"nozzle_temp":          ParamNozzleTemp,
	"bed_temp":             ParamBedTemp,
	"extrusion_multiplier": ParamExtrusionMultiplier,
	"cross_section_factor": ParamCrossSectionFactor,
	"extrusion_pressure":   ParamExtrusionPressure,
	"flow_rate":            ParamFlowRate,
	"retraction_delay":     ParamRetractionDelay,
	"cure_pause":           ParamCurePause,
	"pen_up_height":        ParamPenUpHeight,
	"pen_down_offset":      ParamPenDownOffset,
	"pen_down_delay":       ParamPenDownDelay,
	"feed_rate":            ParamFeedRate,
	"travel_feed_rate":     ParamTravelFeedRate,
	"clearance_height":     ParamClearanceHeight,
}

// LoadFile reads a profile from a .cfg file with [profile], [bed] and
// [params] sections and assembles it through the mode's builder.
func LoadFile(path string) (*Profile, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, foamerrors.Wrap(err, foamerrors.ErrConfigValidation, "unable to load profile file")
	}
	return FromConfig(cfg)
}

// LoadString parses a profile from cfg text. Used by tests and by the
// generation service, which receives profiles inline.
func LoadString(data string) (*Profile, error) {
	cfg, err := config.LoadString(data)
	if err != nil {
		return nil, foamerrors.Wrap(err, foamerrors.ErrConfigValidation, "unable to parse profile")
	}
	return FromConfig(cfg)
}

// FromConfig assembles a Profile from a parsed config.
func FromConfig(cfg *config.Config) (*Profile, error) {
	sec, err := cfg.GetSection("profile")
	if err != nil {
		return nil, foamerrors.Wrap(err, foamerrors.ErrConfigSection, "profile file needs a [profile] section")
	}

	modeName, err := sec.GetChoice("mode", []string{string(ModeHot), string(ModeClay), string(ModePen)})
	if err != nil {
		return nil, foamerrors.Wrap(err, foamerrors.ErrProfileMode, "invalid or missing mode").SetSection("profile")
	}

	kinName, err := sec.GetChoice("kinematics", []string{string(Cartesian), string(Delta)}, string(Cartesian))
	if err != nil {
		return nil, foamerrors.Wrap(err, foamerrors.ErrProfileKinematics, "invalid kinematics").SetSection("profile")
	}
	kin := Kinematics(kinName)

	bed, err := bedFromConfig(cfg, kin)
	if err != nil {
		return nil, err
	}

	params, err := paramsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	var p *Profile
	switch Mode(modeName) {
	case ModeHot:
		p = NewHot(kin, bed, params)
	case ModeClay:
		p = NewClay(kin, bed, params)
	case ModePen:
		p = NewPen(kin, bed, params)
	}

	// Unknown file options are ignored, but surfaced as notes.
	for section, opts := range cfg.UnusedOptions() {
		for _, opt := range opts {
			p.Notes = append(p.Notes, "ignored unknown option: ["+section+"] "+opt)
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func bedFromConfig(cfg *config.Config, kin Kinematics) (Bed, error) {
	var bed Bed
	sec := cfg.GetSectionOptional("bed")
	if sec == nil {
		return bed, nil
	}

	above := 0.0
	posOnly := config.FloatBounds{Above: &above}

	// Absent dimensions stay zero and take the documented defaults in
	// the builder; present ones must be positive.
	dim := func(option string, dst *float64) error {
		if !sec.HasOption(option) {
			return nil
		}
		v, err := sec.GetFloatWithBounds(option, posOnly)
		if err != nil {
			return wrapBed(err)
		}
		*dst = v
		return nil
	}

	for option, dst := range map[string]*float64{
		"size_x": &bed.SizeX,
		"size_y": &bed.SizeY,
		"size_z": &bed.SizeZ,
		"radius": &bed.Radius,
	} {
		if err := dim(option, dst); err != nil {
			return bed, err
		}
	}
	if kin == Delta {
		// Delta profiles may spell the cylinder height explicitly.
		var height float64
		if err := dim("height", &height); err != nil {
			return bed, err
		}
		if height != 0 {
			bed.SizeZ = height
		}
	}
	return bed, nil
}

// wrapBed keeps bounds failures fatal: a zero fallback means "use the
// documented default", but an explicit non-positive dimension is a
// structural error.
func wrapBed(err error) error {
	return foamerrors.Wrap(err, foamerrors.ErrProfileEnvelope, "invalid bed dimension").SetSection("bed")
}

func paramsFromConfig(cfg *config.Config) (map[string]float64, error) {
	params := make(map[string]float64)
	sec := cfg.GetSectionOptional("params")
	if sec == nil {
		return params, nil
	}
	for opt, canonical := range optionNames {
		if !sec.HasOption(opt) {
			continue
		}
		v, err := sec.GetFloat(opt)
		if err != nil {
			return nil, foamerrors.Wrap(err, foamerrors.ErrConfigOption, "invalid parameter value").SetSection("params").SetOption(opt)
		}
		params[canonical] = v
	}
	return params, nil
}
