package render

import "github.com/gogpu/gg"

// Path is a recorded stroke in device space.
type Path struct {
	Points []gg.Point
	Style  Style
}

// Recorder is a Drawer that keeps geometry instead of pixels.
// Clear drops everything recorded so far, so after a Draw the recorder
// holds exactly one frame.
type Recorder struct {
	Width, Height int

	Clears   int
	Lines    []Path
	Polygons []Path
	Texts    []string

	// Err, when set, is returned by every stroke call.
	Err error

	matrix gg.Matrix
	stack  []gg.Matrix
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height, matrix: gg.Identity()}
}

func (r *Recorder) Size() (int, int) { return r.Width, r.Height }

func (r *Recorder) Clear() {
	r.Clears++
	r.Lines = r.Lines[:0]
	r.Polygons = r.Polygons[:0]
	r.Texts = r.Texts[:0]
}

func (r *Recorder) StrokeLine(x1, y1, x2, y2 float64, style Style) error {
	if r.Err != nil {
		return r.Err
	}
	r.Lines = append(r.Lines, Path{
		Points: []gg.Point{r.TransformPoint(gg.Pt(x1, y1)), r.TransformPoint(gg.Pt(x2, y2))},
		Style:  style,
	})
	return nil
}

func (r *Recorder) StrokePolygon(points []gg.Point, style Style) error {
	if r.Err != nil {
		return r.Err
	}
	out := make([]gg.Point, len(points))
	for i, p := range points {
		out[i] = r.TransformPoint(p)
	}
	r.Polygons = append(r.Polygons, Path{Points: out, Style: style})
	return nil
}

func (r *Recorder) Save() { r.stack = append(r.stack, r.matrix) }

func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.matrix = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

// RotateAbout composes the same way gg.Context.RotateAbout does.
func (r *Recorder) RotateAbout(degrees float64, pivot gg.Point) {
	r.matrix = rotateAbout(r.matrix, degrees, pivot)
}

func (r *Recorder) Transform(m gg.Matrix) { r.matrix = r.matrix.Multiply(m) }

func (r *Recorder) TransformPoint(p gg.Point) gg.Point { return r.matrix.TransformPoint(p) }

func (r *Recorder) DrawText(text string, x, y float64, style TextStyle) {
	r.Texts = append(r.Texts, text)
}

// Depth returns the number of saved transforms.
func (r *Recorder) Depth() int { return len(r.stack) }

// LastPolygon returns the most recent polygon, or nil.
func (r *Recorder) LastPolygon() []gg.Point {
	if len(r.Polygons) == 0 {
		return nil
	}
	return r.Polygons[len(r.Polygons)-1].Points
}
