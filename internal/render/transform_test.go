package render

import (
	"math"
	"testing"

	"github.com/gogpu/gg"
)

func TestRadians(t *testing.T) {
	if got := Radians(180); math.Abs(got-math.Pi) > 1e-12 {
		t.Errorf("Radians(180) = %v, want pi", got)
	}
}

func TestAboutPivotKeepsPivotFixed(t *testing.T) {
	pivot := gg.Pt(37, -12)
	m := AboutPivot(pivot, 123)
	if got := m.TransformPoint(pivot); math.Abs(got.X-pivot.X) > 1e-9 || math.Abs(got.Y-pivot.Y) > 1e-9 {
		t.Errorf("pivot moved to %v", got)
	}
}

func TestCanvasAndRecorderShareRotation(t *testing.T) {
	c := NewCanvas(10, 10)
	defer c.Close()
	r := NewRecorder(10, 10)
	for _, d := range []Drawer{c, r} {
		d.Transform(gg.Translate(3, 4))
		d.RotateAbout(33, gg.Pt(5, 6))
	}
	want := gg.Translate(3, 4).Multiply(AboutPivot(gg.Pt(5, 6), 33))
	p := gg.Pt(17, -2)
	wp := want.TransformPoint(p)
	for name, got := range map[string]gg.Point{"canvas": c.TransformPoint(p), "recorder": r.TransformPoint(p)} {
		if math.Abs(got.X-wp.X) > 1e-9 || math.Abs(got.Y-wp.Y) > 1e-9 {
			t.Errorf("%s: got %v, want %v", name, got, wp)
		}
	}
}
