package bounds

import "github.com/lborunda/rhinoFOAM/pkg/geometry"

// BadPoint records a toolpath point outside the envelope.
type BadPoint struct {
	Point  geometry.Point `json:"point"`
	Reason string         `json:"reason"`
}

// BadSegment records a segment that is fully or partially outside the
// envelope.
type BadSegment struct {
	Start  geometry.Point `json:"start"`
	End    geometry.Point `json:"end"`
	Reason string         `json:"reason"`
}

// WarnDot marks a position of interest for preview rendering, such as
// the interpolated point where a segment crosses the envelope boundary.
type WarnDot struct {
	Position geometry.Point `json:"position"`
	Category string         `json:"category"`
}

// WarnDot categories.
const (
	CategoryBoundaryCrossing = "boundary-crossing"
	CategoryOutOfBounds      = "out-of-bounds"
)
