package render

import (
	"image"
	"image/color"
	"sync"

	"github.com/gogpu/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Canvas is a Drawer backed by a gg software context.
//
// The transform stack is kept on the Canvas rather than on the gg context so
// that a zero-sized canvas (which has no gg context) still answers
// TransformPoint and balances Save/Restore. Text is queued and rasterised with
// freetype when the frame is composited by Image.
type Canvas struct {
	Background color.Color

	dc     *gg.Context
	width  int
	height int

	matrix gg.Matrix
	stack  []gg.Matrix

	labels []label
	faces  map[float64]font.Face
}

type label struct {
	text  string
	at    gg.Point
	style TextStyle
}

// NewCanvas returns a canvas of the given size. Non-positive sizes produce a
// degenerate canvas whose pixel operations do nothing.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{Background: Background, matrix: gg.Identity(), faces: map[float64]font.Face{}}
	_ = c.Resize(width, height)
	return c
}

// Resize changes the pixel size, keeping the transform stack.
func (c *Canvas) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		if c.dc != nil {
			_ = c.dc.Close()
		}
		c.dc, c.width, c.height = nil, 0, 0
		return nil
	}
	c.width, c.height = width, height
	if c.dc == nil {
		c.dc = gg.NewContext(width, height)
		return nil
	}
	return c.dc.Resize(width, height)
}

func (c *Canvas) Size() (int, int) { return c.width, c.height }

func (c *Canvas) Clear() {
	c.labels = c.labels[:0]
	if c.dc == nil {
		return
	}
	c.dc.ClearWithColor(gg.FromColor(c.Background))
}

func (c *Canvas) StrokeLine(x1, y1, x2, y2 float64, style Style) error {
	return c.StrokePolygon([]gg.Point{gg.Pt(x1, y1), gg.Pt(x2, y2)}, style)
}

func (c *Canvas) StrokePolygon(points []gg.Point, style Style) error {
	if c.dc == nil || len(points) < 2 {
		return nil
	}
	c.applyStyle(style)
	c.dc.SetTransform(c.matrix)
	c.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	err := c.dc.Stroke()
	c.dc.Identity()
	return err
}

func (c *Canvas) applyStyle(style Style) {
	col := style.Color
	if col == nil {
		col = Foreground
	}
	c.dc.SetColor(col)

	width := style.Width
	if width <= 0 {
		width = 1
	}
	stroke := gg.DefaultStroke().WithWidth(width)
	if len(style.Dash) > 0 {
		stroke = stroke.WithDashPattern(style.Dash...).WithDashOffset(style.DashOffset)
	}
	c.dc.SetStroke(stroke)
}

func (c *Canvas) Save() { c.stack = append(c.stack, c.matrix) }

func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.matrix = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Canvas) RotateAbout(degrees float64, pivot gg.Point) {
	c.matrix = rotateAbout(c.matrix, degrees, pivot)
}

func (c *Canvas) Transform(m gg.Matrix) { c.matrix = c.matrix.Multiply(m) }

func (c *Canvas) TransformPoint(p gg.Point) gg.Point { return c.matrix.TransformPoint(p) }

func (c *Canvas) DrawText(text string, x, y float64, style TextStyle) {
	if c.dc == nil || text == "" {
		return
	}
	c.labels = append(c.labels, label{text: text, at: c.TransformPoint(gg.Pt(x, y)), style: style})
}

// Image composites the current frame, including queued text, into a new RGBA image.
func (c *Canvas) Image() *image.RGBA {
	if c.dc == nil {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	_ = c.dc.FlushGPU()
	img := c.dc.ResizeTarget().ToImage()
	for _, l := range c.labels {
		c.drawLabel(img, l)
	}
	return img
}

func (c *Canvas) drawLabel(dst *image.RGBA, l label) {
	face := c.face(l.style.Size)
	if face == nil {
		return
	}
	col := l.style.Color
	if col == nil {
		col = Foreground
	}
	drawer := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face}
	x := l.at.X
	switch l.style.Align {
	case TextAlignCenter:
		x -= float64(drawer.MeasureString(l.text).Ceil()) / 2
	case TextAlignRight:
		x -= float64(drawer.MeasureString(l.text).Ceil())
	}
	drawer.Dot = fixed.P(int(x), int(l.at.Y))
	drawer.DrawString(l.text)
}

func (c *Canvas) face(size float64) font.Face {
	if size <= 0 {
		size = DefaultTextSize
	}
	if f, ok := c.faces[size]; ok {
		return f
	}
	ttf, err := captionFont()
	if err != nil {
		return nil
	}
	f := truetype.NewFace(ttf, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	c.faces[size] = f
	return f
}

// Close releases the gg context.
func (c *Canvas) Close() error {
	if c.dc == nil {
		return nil
	}
	err := c.dc.Close()
	c.dc = nil
	return err
}

var (
	fontOnce sync.Once
	fontTTF  *truetype.Font
	fontErr  error
)

func captionFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		fontTTF, fontErr = truetype.Parse(goregular.TTF)
	})
	return fontTTF, fontErr
}
