package emitter

import (
	"github.com/lborunda/rhinoFOAM/pkg/geometry"
	"github.com/lborunda/rhinoFOAM/pkg/profile"
)

// pen is the motion-only strategy: it never emits extrusion or pressure
// commands. The tool state is a binary up/down toggle realized as Z
// offsets relative to the nominal path height, with a settling pause
// after every down transition. Travel always happens with the tool up.
type pen struct {
	d Dialect

	upHeight   float64 // lifted Z offset above nominal path Z
	downOffset float64 // lowered Z offset above nominal path Z
	downDelay  float64 // pause after pen-down, milliseconds
	feed       float64
	travelFeed float64
}

func newPen(p *profile.Profile, d Dialect) *pen {
	return &pen{
		d:          d,
		upHeight:   p.Param(profile.ParamPenUpHeight),
		downOffset: p.Param(profile.ParamPenDownOffset),
		downDelay:  p.Param(profile.ParamPenDownDelay),
		feed:       p.Param(profile.ParamFeedRate),
		travelFeed: p.Param(profile.ParamTravelFeedRate),
	}
}

func (pe *pen) Mode() profile.Mode { return profile.ModePen }

// down returns the point at drawing height.
func (pe *pen) down(p geometry.Point) geometry.Point {
	p.Z += pe.downOffset
	return p
}

// up returns the point at travel height.
func (pe *pen) up(p geometry.Point) geometry.Point {
	p.Z += pe.upHeight
	return p
}

func (pe *pen) PathStart(start geometry.Point, st State) ([]string, State) {
	lines := []string{
		pe.d.Comment("Start path"),
		pe.d.WithComment(pe.d.Move(pe.up(start), pe.travelFeed), "move above start"),
		pe.d.WithComment(pe.d.Move(pe.down(start), pe.feed), "pen down"),
		pe.d.WithComment(pe.d.Dwell(pe.downDelay), "pen settle"),
	}
	st.PenDown = true
	return lines, st
}

func (pe *pen) Move(from, to geometry.Point, st State) ([]string, State) {
	return []string{pe.d.Move(pe.down(to), pe.feed)}, st
}

func (pe *pen) PathEnd(last geometry.Point, st State) ([]string, State) {
	lines := []string{pe.d.Comment("End path")}
	if st.PenDown {
		lines = append(lines, pe.d.WithComment(pe.d.Move(pe.up(last), pe.travelFeed), "pen up"))
		st.PenDown = false
	}
	return lines, st
}

func (pe *pen) HeaderLines() []string { return nil }

func (pe *pen) FooterLines() []string { return nil }
