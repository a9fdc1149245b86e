package screens

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rook-computer/rotationdemo/internal/render"
	"github.com/rook-computer/rotationdemo/internal/render/layout"
	"github.com/rook-computer/rotationdemo/internal/rotation"
	"github.com/rook-computer/rotationdemo/internal/state"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// RotationScreen draws three squares rotated by the same angle, one per technique.
// Every Draw call is one frame: the angle advances before anything is drawn.
type RotationScreen struct {
	Store  *state.Store
	Logger Logger
	// Captions labels each column with its technique and shows the angle.
	Captions bool

	angle      rotation.Angle
	techniques [3]rotation.Technique
	visible    atomic.Bool
}

func NewRotationScreen(store *state.Store, logger Logger) *RotationScreen {
	return &RotationScreen{
		Store:      store,
		Logger:     logger,
		Captions:   true,
		techniques: rotation.Techniques(),
	}
}

func (s *RotationScreen) Start(ctx context.Context) error {
	if s.visible.CompareAndSwap(false, true) && s.Logger != nil {
		s.Logger.Infof("rotation", "visible")
	}
	return nil
}

func (s *RotationScreen) Stop() error {
	if s.visible.CompareAndSwap(true, false) && s.Logger != nil {
		s.Logger.Infof("rotation", "hidden")
	}
	return nil
}

// Visible reports whether the page is between Start and Stop.
func (s *RotationScreen) Visible() bool { return s.visible.Load() }

// Angle returns the accumulator as of the last frame. It must not be called
// while a Draw is in progress; status readers use the store instead.
func (s *RotationScreen) Angle() rotation.Angle { return s.angle }

func (s *RotationScreen) Draw(d render.Drawer, st state.State) error {
	degrees := s.angle.Advance()

	cols := layout.NewColumns(d.Size())

	d.Clear()
	for _, seg := range cols.Grid() {
		if err := d.StrokeLine(seg.From.X, seg.From.Y, seg.To.X, seg.To.Y, render.GridStyle); err != nil {
			return err
		}
	}

	side := float64(cols.Side())
	placements := cols.Placements()
	techniques := s.techniques
	if techniques[0] == nil {
		techniques = rotation.Techniques()
	}
	for i, technique := range techniques {
		p := placements[i]
		square := rotation.NewSquare(p.Origin.X, p.Origin.Y, side)
		if err := technique.Draw(d, square, p.Pivot, degrees, render.SquareStyle); err != nil {
			return err
		}
	}

	if s.Captions {
		drawCaptions(d, cols, techniques, degrees)
	}

	if s.Store != nil {
		s.Store.UpdateFrame(state.FrameInfo{
			Number:  s.angle.Frame(),
			Degrees: degrees,
			Width:   cols.Width,
			Height:  cols.Height,
		})
	}
	return nil
}

func drawCaptions(d render.Drawer, cols layout.Columns, techniques [3]rotation.Technique, degrees float64) {
	if cols.Height == 0 {
		return
	}
	style := render.TextStyle{Color: render.Foreground, Align: render.TextAlignCenter}
	baseline := float64(cols.Height) - render.DefaultTextSize
	xs := [3]int{cols.X1, cols.X2, cols.X3}
	for i, technique := range techniques {
		d.DrawText(technique.Name(), float64(xs[i]), baseline, style)
	}
	d.DrawText(fmt.Sprintf("%.1f°", degrees), 8, render.DefaultTextSize+4, render.TextStyle{Color: render.Foreground})
}
