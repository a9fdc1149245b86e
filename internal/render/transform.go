package render

import (
	"math"

	"github.com/gogpu/gg"
)

func Radians(degrees float64) float64 { return math.Pi * degrees / 180 }

// AboutPivot composes translate(-pivot), rotate, translate(+pivot).
// gg multiplies right to left, so the first step sits rightmost.
func AboutPivot(pivot gg.Point, degrees float64) gg.Matrix {
	toOrigin := gg.Translate(-pivot.X, -pivot.Y)
	rotate := gg.Rotate(Radians(degrees))
	back := gg.Translate(pivot.X, pivot.Y)
	return back.Multiply(rotate).Multiply(toOrigin)
}

// rotateAbout appends a rotation around pivot to m, as gg.Context.RotateAbout does.
func rotateAbout(m gg.Matrix, degrees float64, pivot gg.Point) gg.Matrix {
	return m.Multiply(AboutPivot(pivot, degrees))
}
