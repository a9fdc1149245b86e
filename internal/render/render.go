package render

import (
	"context"
	"image/color"

	"github.com/gogpu/gg"

	"github.com/rook-computer/rotationdemo/internal/state"
)

type Renderer interface {
	Start(ctx context.Context) error
	Stop() error
	SetScreen(screen Screen)
	// Invalidate requests an asynchronous redraw. Pending requests coalesce.
	Invalidate()
	RunLoop(ctx context.Context, store *state.Store)
	RedrawWithState(snap state.State) error
}

// Screen is a page shown by a renderer. Start and Stop are the
// "became visible" and "became hidden" notifications.
type Screen interface {
	Start(ctx context.Context) error
	Stop() error
	Draw(d Drawer, s state.State) error
}

// Stub implementations
type NoopRenderer struct{}

func (n *NoopRenderer) Start(ctx context.Context) error                 { return nil }
func (n *NoopRenderer) Stop() error                                     { return nil }
func (n *NoopRenderer) SetScreen(screen Screen)                         {}
func (n *NoopRenderer) Invalidate()                                     {}
func (n *NoopRenderer) RunLoop(ctx context.Context, store *state.Store) {}
func (n *NoopRenderer) RedrawWithState(snap state.State) error          { return nil }

// Drawer is the drawing surface handed to screens.
// Coordinates are in user space; the current transform maps them to device pixels.
type Drawer interface {
	// Size returns the surface size in pixels.
	Size() (width int, height int)

	Clear()

	StrokeLine(x1, y1, x2, y2 float64, style Style) error
	// StrokePolygon strokes the ordered point list as one path. It does not
	// close the path; callers repeat the first point to close it.
	StrokePolygon(points []gg.Point, style Style) error

	// Transform stack.
	Save()
	Restore()
	RotateAbout(degrees float64, pivot gg.Point)
	Transform(m gg.Matrix)
	TransformPoint(p gg.Point) gg.Point

	DrawText(text string, x, y float64, style TextStyle)
}

// Style describes a stroke.
type Style struct {
	Color      color.Color
	Width      float64
	Dash       []float64 // alternating dash/gap lengths; nil means solid
	DashOffset float64
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// TextStyle describes how to render text.
// Coordinates for DrawText use a baseline anchor for Y.
// For X, Align controls how x is interpreted.
type TextStyle struct {
	Color color.Color
	Size  float64 // font size in points; 0 means renderer default
	Align TextAlign
}
