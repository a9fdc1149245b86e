// Package rotation rotates square outlines around a pivot in three
// equivalent ways and keeps the per-frame angle.
package rotation

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/rook-computer/rotationdemo/internal/render"
)

// Rotator rotates an outline by degrees around pivot.
type Rotator interface {
	Rotate(o Outline, pivot gg.Point, degrees float64) Outline
}

// Technique is a Rotator that can also draw its result.
type Technique interface {
	Rotator
	Name() string
	// Draw strokes o rotated around pivot. Errors from the drawer are returned as is.
	Draw(d render.Drawer, o Outline, pivot gg.Point, degrees float64, style render.Style) error
}

// Techniques returns the three techniques in page order.
func Techniques() [3]Technique {
	return [3]Technique{Canvas{}, Manual{}, Matrix{}}
}

// Canvas rotates the drawer's coordinate system instead of the points.
type Canvas struct{}

func (Canvas) Name() string { return "canvas" }

func (Canvas) Draw(d render.Drawer, o Outline, pivot gg.Point, degrees float64, style render.Style) error {
	d.Save()
	defer d.Restore()
	d.RotateAbout(degrees, pivot)
	return d.StrokePolygon(o.Points(), style)
}

// Rotate runs Draw against a recorder and returns the device-space outline.
func (c Canvas) Rotate(o Outline, pivot gg.Point, degrees float64) Outline {
	rec := render.NewRecorder(0, 0)
	if err := c.Draw(rec, o, pivot, degrees, render.Style{}); err != nil {
		return Outline{}
	}
	var out Outline
	copy(out[:], rec.LastPolygon())
	return out
}

// Manual rotates each point with the 2D rotation formula.
type Manual struct{}

func (Manual) Name() string { return "manual" }

func (Manual) Rotate(o Outline, pivot gg.Point, degrees float64) Outline {
	sin, cos := math.Sincos(render.Radians(degrees))
	var out Outline
	for i, p := range o {
		out[i] = RotatePoint(p, pivot, sin, cos)
	}
	return out
}

func (m Manual) Draw(d render.Drawer, o Outline, pivot gg.Point, degrees float64, style render.Style) error {
	rotated := m.Rotate(o, pivot, degrees)
	return d.StrokePolygon(rotated.Points(), style)
}

// RotatePoint moves p to the pivot's frame, rotates it and moves it back.
func RotatePoint(p, pivot gg.Point, sin, cos float64) gg.Point {
	x := p.X - pivot.X
	y := p.Y - pivot.Y
	return gg.Pt(x*cos-y*sin+pivot.X, x*sin+y*cos+pivot.Y)
}

// Matrix builds one affine transform and applies it to all points.
type Matrix struct{}

func (Matrix) Name() string { return "matrix" }

func (Matrix) Rotate(o Outline, pivot gg.Point, degrees float64) Outline {
	return o.Transform(render.AboutPivot(pivot, degrees))
}

func (m Matrix) Draw(d render.Drawer, o Outline, pivot gg.Point, degrees float64, style render.Style) error {
	rotated := m.Rotate(o, pivot, degrees)
	return d.StrokePolygon(rotated.Points(), style)
}
