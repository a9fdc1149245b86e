package layout

import "github.com/gogpu/gg"

// Columns holds the three anchor columns and the center row of the page.
// All values use integer pixel arithmetic.
type Columns struct {
	X1, X2, X3 int
	Y          int
	Width      int
	Height     int
}

// NewColumns places anchors at w/6, w/3+w/6 and (w/3)*2+w/6, with the row at h/2.
// Negative sizes are treated as zero.
func NewColumns(width, height int) Columns {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	x1 := width / 6
	return Columns{
		X1:     x1,
		X2:     width/3 + x1,
		X3:     width/3*2 + x1,
		Y:      height / 2,
		Width:  width,
		Height: height,
	}
}

// Side returns the square side: a tenth of the smaller dimension.
func (c Columns) Side() int {
	return min(c.Width, c.Height) / 10
}

// Placement is where one square starts and what it rotates around.
type Placement struct {
	Origin gg.Point
	Pivot  gg.Point
}

// Placements returns the canvas, manual and matrix squares, in that order.
//
// The first square pivots on its own first corner. The other two keep the
// offsets of the original layout, so they coincide only approximately.
func (c Columns) Placements() [3]Placement {
	s := c.Side()
	half := s / 2
	return [3]Placement{
		{
			Origin: pt(c.X1, c.Y),
			Pivot:  pt(c.X1, c.Y),
		},
		{
			Origin: pt(c.X2+s*2-half, c.Y-s*2+half),
			Pivot:  pt(c.X2, c.Y),
		},
		{
			Origin: pt(c.X3-half, c.Y+half),
			Pivot:  pt(c.X3, c.Y),
		},
	}
}

// Segment is a straight guide line.
type Segment struct {
	From, To gg.Point
}

// Grid returns the horizontal center line and the three column lines.
func (c Columns) Grid() [4]Segment {
	return [4]Segment{
		{From: pt(0, c.Y), To: pt(c.Width, c.Y)},
		{From: pt(c.X1, 0), To: pt(c.X1, c.Height)},
		{From: pt(c.X2, 0), To: pt(c.X2, c.Height)},
		{From: pt(c.X3, 0), To: pt(c.X3, c.Height)},
	}
}

func pt(x, y int) gg.Point { return gg.Pt(float64(x), float64(y)) }
