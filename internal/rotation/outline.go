package rotation

import "github.com/gogpu/gg"

// Outline is a closed square path: four corners and a closing point equal to the first.
type Outline [5]gg.Point

// NewSquare builds an axis-aligned square whose first corner is (x, y),
// extending right and up (towards smaller y).
func NewSquare(x, y, side float64) Outline {
	return Outline{
		gg.Pt(x, y),
		gg.Pt(x+side, y),
		gg.Pt(x+side, y-side),
		gg.Pt(x, y-side),
		gg.Pt(x, y),
	}
}

// Points returns the outline as a slice for drawing.
func (o Outline) Points() []gg.Point {
	return o[:]
}

// Transform applies m to every point.
func (o Outline) Transform(m gg.Matrix) Outline {
	var out Outline
	for i, p := range o {
		out[i] = m.TransformPoint(p)
	}
	return out
}

// Closed reports whether the last point repeats the first.
func (o Outline) Closed() bool {
	return o[0] == o[len(o)-1]
}
