package rotation

import (
	"math"

	"github.com/rook-computer/rotationdemo/internal/render"
)

const (
	// Step is how far the angle moves per frame, in degrees.
	Step = 3.5
	// FullTurn is where the angle wraps.
	FullTurn = 360.0
)

// Angle is the per-frame rotation accumulator, in degrees within [0, 360).
// The zero value starts at 0.
type Angle struct {
	degrees float64
	frame   uint64
	wraps   uint64
}

// NewAngleAtFrame returns the accumulator as it stands after n frames.
func NewAngleAtFrame(n uint64) Angle {
	return Angle{degrees: math.Mod(float64(n)*Step, FullTurn), frame: n, wraps: uint64(float64(n) * Step / FullTurn)}
}

// Advance moves the angle one step, wrapping modulo 360, and returns the new value.
func (a *Angle) Advance() float64 {
	a.degrees += Step
	if a.degrees >= FullTurn {
		a.degrees = math.Mod(a.degrees, FullTurn)
		a.wraps++
	}
	a.frame++
	return a.degrees
}

func (a Angle) Degrees() float64 { return a.degrees }

func (a Angle) Radians() float64 { return render.Radians(a.degrees) }

// Frame is the number of Advance calls so far.
func (a Angle) Frame() uint64 { return a.frame }

// Wraps is the number of times the angle passed 360.
func (a Angle) Wraps() uint64 { return a.wraps }
