package layout

import (
	"testing"

	"github.com/gogpu/gg"
)

func TestNewColumns(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          Columns
		side          int
	}{
		{"reference", 300, 200, Columns{X1: 50, X2: 150, X3: 250, Y: 100, Width: 300, Height: 200}, 20},
		{"portrait", 360, 640, Columns{X1: 60, X2: 180, X3: 300, Y: 320, Width: 360, Height: 640}, 36},
		{"integer division", 7, 5, Columns{X1: 1, X2: 3, X3: 5, Y: 2, Width: 7, Height: 5}, 0},
		{"zero", 0, 0, Columns{}, 0},
		{"negative", -10, -20, Columns{}, 0},
		{"zero height", 300, 0, Columns{X1: 50, X2: 150, X3: 250, Width: 300}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewColumns(tt.width, tt.height)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if got.Side() != tt.side {
				t.Errorf("Side() = %d, want %d", got.Side(), tt.side)
			}
		})
	}
}

func TestPlacementsReference(t *testing.T) {
	p := NewColumns(300, 200).Placements()
	want := [3]Placement{
		{Origin: gg.Pt(50, 100), Pivot: gg.Pt(50, 100)},
		{Origin: gg.Pt(180, 70), Pivot: gg.Pt(150, 100)},
		{Origin: gg.Pt(240, 110), Pivot: gg.Pt(250, 100)},
	}
	if p != want {
		t.Errorf("got %+v, want %+v", p, want)
	}
}

func TestCanvasSquarePivotsOnFirstCorner(t *testing.T) {
	for _, size := range [][2]int{{300, 200}, {1024, 768}, {33, 999}} {
		p := NewColumns(size[0], size[1]).Placements()[0]
		if p.Origin != p.Pivot {
			t.Errorf("%v: origin %v, pivot %v", size, p.Origin, p.Pivot)
		}
	}
}

func TestPlacementsDegenerate(t *testing.T) {
	for _, p := range NewColumns(0, 0).Placements() {
		if p.Origin != (gg.Point{}) || p.Pivot != (gg.Point{}) {
			t.Errorf("got %+v, want all zero", p)
		}
	}
}

func TestGrid(t *testing.T) {
	g := NewColumns(300, 200).Grid()
	want := [4]Segment{
		{From: gg.Pt(0, 100), To: gg.Pt(300, 100)},
		{From: gg.Pt(50, 0), To: gg.Pt(50, 200)},
		{From: gg.Pt(150, 0), To: gg.Pt(150, 200)},
		{From: gg.Pt(250, 0), To: gg.Pt(250, 200)},
	}
	if g != want {
		t.Errorf("got %+v, want %+v", g, want)
	}
}
