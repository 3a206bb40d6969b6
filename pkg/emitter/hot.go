package emitter

import (
	"fmt"

	"github.com/lborunda/rhinoFOAM/pkg/geometry"
	"github.com/lborunda/rhinoFOAM/pkg/profile"
)

// hot is the thermoplastic FDM strategy: every drawing move carries the
// cumulative filament position E, advanced by segment length times the
// cross-section factor times the extrusion multiplier.
type hot struct {
	d Dialect

	perMM      float64 // extruded filament per mm of travel
	feed       float64
	travelFeed float64
	clearance  float64
	nozzleTemp float64
	bedTemp    float64
}

func newHot(p *profile.Profile, d Dialect) *hot {
	return &hot{
		d:          d,
		perMM:      p.Param(profile.ParamCrossSectionFactor) * p.Param(profile.ParamExtrusionMultiplier),
		feed:       p.Param(profile.ParamFeedRate),
		travelFeed: p.Param(profile.ParamTravelFeedRate),
		clearance:  p.Param(profile.ParamClearanceHeight),
		nozzleTemp: p.Param(profile.ParamNozzleTemp),
		bedTemp:    p.Param(profile.ParamBedTemp),
	}
}

func (h *hot) Mode() profile.Mode { return profile.ModeHot }

func (h *hot) PathStart(start geometry.Point, st State) ([]string, State) {
	above := start
	above.Z += h.clearance
	lines := []string{
		h.d.Comment("Start path"),
		h.d.WithComment(h.d.Move(above, h.travelFeed), "move above start"),
		h.d.WithComment(h.d.Move(start, h.feed), "descend to start"),
	}
	return lines, st
}

func (h *hot) Move(from, to geometry.Point, st State) ([]string, State) {
	st.Extrusion += from.Distance(to) * h.perMM
	return []string{h.d.MoveE(to, st.Extrusion, h.feed)}, st
}

func (h *hot) PathEnd(last geometry.Point, st State) ([]string, State) {
	lines := []string{
		h.d.Comment("End path"),
		h.d.WithComment(h.d.LiftTo(last.Z+h.clearance, h.travelFeed), "lift tool"),
	}
	return lines, st
}

func (h *hot) HeaderLines() []string {
	return []string{
		fmt.Sprintf("M104 S%.0f %sset nozzle temp", h.nozzleTemp, h.d.CommentPrefix),
		fmt.Sprintf("M140 S%.0f %sset bed temp", h.bedTemp, h.d.CommentPrefix),
		h.d.WithComment("G92 E0", "Reset extrusion"),
	}
}

func (h *hot) FooterLines() []string {
	return []string{
		h.d.WithComment("M104 S0", "turn off hotend"),
		h.d.WithComment("M140 S0", "turn off bed"),
	}
}
