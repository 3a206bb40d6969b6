package emitter

import (
	"github.com/lborunda/rhinoFOAM/pkg/geometry"
	"github.com/lborunda/rhinoFOAM/pkg/profile"
)

// clay is the paste-extrusion strategy: pressure is switched on after
// positioning at a run start and off before lifting, with a settling
// dwell before every pressure-off and an optional cure pause after each
// run. The pressure drive value scales flow rate by extrusion pressure.
type clay struct {
	d Dialect

	drive      float64 // pressure drive value: ExtrusionPressure * FlowRate
	retractMS  float64 // dwell before pressure-off, milliseconds
	cureMS     float64 // optional pause after a finished run, milliseconds
	feed       float64
	travelFeed float64
	clearance  float64
}

func newClay(p *profile.Profile, d Dialect) *clay {
	return &clay{
		d:          d,
		drive:      p.Param(profile.ParamExtrusionPressure) * p.Param(profile.ParamFlowRate),
		retractMS:  p.Param(profile.ParamRetractionDelay) * 1000,
		cureMS:     p.Param(profile.ParamCurePause) * 1000,
		feed:       p.Param(profile.ParamFeedRate),
		travelFeed: p.Param(profile.ParamTravelFeedRate),
		clearance:  p.Param(profile.ParamClearanceHeight),
	}
}

func (c *clay) Mode() profile.Mode { return profile.ModeClay }

func (c *clay) PathStart(start geometry.Point, st State) ([]string, State) {
	above := start
	above.Z += c.clearance
	lines := []string{
		c.d.Comment("Start path"),
		c.d.WithComment(c.d.Move(above, c.travelFeed), "move above start"),
		c.d.WithComment(c.d.Move(start, c.feed), "descend to start"),
	}
	if !st.PressureOn {
		lines = append(lines, c.d.WithComment(c.d.PressureOn(c.drive), "pressure on"))
		st.PressureOn = true
	}
	return lines, st
}

func (c *clay) Move(from, to geometry.Point, st State) ([]string, State) {
	return []string{c.d.Move(to, c.feed)}, st
}

func (c *clay) PathEnd(last geometry.Point, st State) ([]string, State) {
	var lines []string
	if st.PressureOn {
		lines = append(lines,
			c.d.WithComment(c.d.Dwell(c.retractMS), "pressure settle"),
			c.d.WithComment(c.d.PressureOff(), "pressure off"),
		)
		st.PressureOn = false
	}
	lines = append(lines,
		c.d.Comment("End path"),
		c.d.WithComment(c.d.LiftTo(last.Z+c.clearance, c.travelFeed), "lift tool"),
	)
	if c.cureMS > 0 {
		lines = append(lines, c.d.WithComment(c.d.Dwell(c.cureMS), "cure pause"))
	}
	return lines, st
}

func (c *clay) HeaderLines() []string { return nil }

func (c *clay) FooterLines() []string { return nil }
