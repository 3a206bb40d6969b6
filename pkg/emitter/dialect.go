package emitter

import (
	"fmt"
	"math"

	"github.com/lborunda/rhinoFOAM/pkg/geometry"
)

// Dialect fixes the G-code text conventions: command verbs, numeric
// precision and comment syntax. It is declared configuration so that
// output is byte-stable rather than an accident of formatting defaults.
type Dialect struct {
	// CoordDecimals is the precision of X/Y/Z words.
	CoordDecimals int
	// ExtrusionDecimals is the precision of E words.
	ExtrusionDecimals int
	// CommentPrefix introduces a trailing comment.
	CommentPrefix string
}

// DefaultDialect returns the Marlin-flavored conventions used by the
// generator: G1 moves, G4 dwells, 3-decimal coordinates, 4-decimal
// extrusion values, "; " comments.
func DefaultDialect() Dialect {
	return Dialect{
		CoordDecimals:     3,
		ExtrusionDecimals: 4,
		CommentPrefix:     "; ",
	}
}

// WithDefaults fills unset fields from the default dialect, so a
// caller overriding one convention keeps the rest.
func (d Dialect) WithDefaults() Dialect {
	def := DefaultDialect()
	if d.CoordDecimals == 0 {
		d.CoordDecimals = def.CoordDecimals
	}
	if d.ExtrusionDecimals == 0 {
		d.ExtrusionDecimals = def.ExtrusionDecimals
	}
	if d.CommentPrefix == "" {
		d.CommentPrefix = def.CommentPrefix
	}
	return d
}

// Comment formats a standalone comment line.
func (d Dialect) Comment(text string) string {
	return d.CommentPrefix + text
}

// Move formats a linear move without extrusion.
func (d Dialect) Move(p geometry.Point, feed float64) string {
	return fmt.Sprintf("G1 X%.*f Y%.*f Z%.*f F%.0f",
		d.CoordDecimals, p.X, d.CoordDecimals, p.Y, d.CoordDecimals, p.Z, feed)
}

// MoveE formats a linear move carrying a cumulative extrusion value.
func (d Dialect) MoveE(p geometry.Point, e, feed float64) string {
	return fmt.Sprintf("G1 X%.*f Y%.*f Z%.*f E%.*f F%.0f",
		d.CoordDecimals, p.X, d.CoordDecimals, p.Y, d.CoordDecimals, p.Z,
		d.ExtrusionDecimals, e, feed)
}

// LiftTo formats a vertical move to the given Z.
func (d Dialect) LiftTo(z, feed float64) string {
	return fmt.Sprintf("G1 Z%.*f F%.0f", d.CoordDecimals, z, feed)
}

// Dwell formats a millisecond pause.
func (d Dialect) Dwell(ms float64) string {
	return fmt.Sprintf("G4 P%d", int(math.Round(ms)))
}

// PressureOn formats a pressure-on command with the given drive value.
func (d Dialect) PressureOn(value float64) string {
	return fmt.Sprintf("M3 S%d", int(math.Round(value)))
}

// PressureOff formats a pressure-off command.
func (d Dialect) PressureOff() string {
	return "M5"
}

// WithComment appends a trailing comment to an instruction.
func (d Dialect) WithComment(instruction, text string) string {
	return instruction + " " + d.CommentPrefix + text
}
