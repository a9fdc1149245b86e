package render

import (
	"context"
	"image/color"
	"testing"

	"github.com/gogpu/gg"

	"github.com/rook-computer/rotationdemo/internal/state"
)

// crossScreen strokes one solid horizontal and one vertical line through the center.
type crossScreen struct {
	err error
}

func (crossScreen) Start(context.Context) error { return nil }
func (crossScreen) Stop() error                 { return nil }

func (s crossScreen) Draw(d Drawer, _ state.State) error {
	if s.err != nil {
		return s.err
	}
	w, h := d.Size()
	d.Clear()
	if err := d.StrokeLine(0, float64(h)/2, float64(w), float64(h)/2, SquareStyle); err != nil {
		return err
	}
	return d.StrokeLine(float64(w)/2, 0, float64(w)/2, float64(h), SquareStyle)
}

func isWhite(c color.RGBA) bool { return c.R == 0xFF && c.G == 0xFF && c.B == 0xFF }

func TestCanvasDrawsPixels(t *testing.T) {
	c := NewCanvas(60, 40)
	defer c.Close()
	if err := (crossScreen{}).Draw(c, state.State{}); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	img := c.Image()
	if img.Bounds().Dx() != 60 || img.Bounds().Dy() != 40 {
		t.Fatalf("bounds: got %v", img.Bounds())
	}
	if !isWhite(img.RGBAAt(5, 5)) {
		t.Errorf("background pixel: got %v, want white", img.RGBAAt(5, 5))
	}
	if isWhite(img.RGBAAt(30, 20)) {
		t.Error("center pixel is still background")
	}
}

func TestCanvasZeroSize(t *testing.T) {
	for _, size := range [][2]int{{0, 0}, {-3, 10}, {10, 0}} {
		c := NewCanvas(size[0], size[1])
		if w, h := c.Size(); w != 0 || h != 0 {
			t.Errorf("%v: Size() = %d, %d", size, w, h)
		}
		c.Clear()
		c.Save()
		c.RotateAbout(90, gg.Pt(1, 0))
		if err := c.StrokePolygon([]gg.Point{gg.Pt(0, 0), gg.Pt(1, 1)}, SquareStyle); err != nil {
			t.Errorf("%v: StrokePolygon: %v", size, err)
		}
		c.DrawText("x", 0, 0, TextStyle{})
		got := c.TransformPoint(gg.Pt(2, 0))
		if got.X < 0.999 || got.X > 1.001 || got.Y < 0.999 || got.Y > 1.001 {
			t.Errorf("%v: transform not applied on empty canvas: %v", size, got)
		}
		c.Restore()
		if !c.Image().Bounds().Empty() {
			t.Errorf("%v: Image() is not empty", size)
		}
		if err := c.Close(); err != nil {
			t.Errorf("%v: Close: %v", size, err)
		}
	}
}

func TestCanvasResize(t *testing.T) {
	c := NewCanvas(0, 0)
	defer c.Close()
	if err := c.Resize(20, 10); err != nil {
		t.Fatal(err)
	}
	c.Clear()
	if b := c.Image().Bounds(); b.Dx() != 20 || b.Dy() != 10 {
		t.Errorf("bounds after resize: %v", b)
	}
	if err := c.Resize(0, 5); err != nil {
		t.Fatal(err)
	}
	if !c.Image().Bounds().Empty() {
		t.Error("image not empty after shrinking to zero")
	}
}

func TestCanvasCaptions(t *testing.T) {
	c := NewCanvas(80, 30)
	defer c.Close()
	c.Clear()
	c.DrawText("canvas", 40, 20, TextStyle{Color: Foreground, Align: TextAlignCenter})

	img := c.Image()
	dark := 0
	for y := 0; y < 30; y++ {
		for x := 0; x < 80; x++ {
			if !isWhite(img.RGBAAt(x, y)) {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("caption left no ink")
	}
	c.Clear()
	if img := c.Image(); !isWhite(img.RGBAAt(40, 15)) {
		t.Error("Clear did not drop queued captions")
	}
}
