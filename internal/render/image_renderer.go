package render

import (
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"sync"
	"sync/atomic"

	"github.com/rook-computer/rotationdemo/internal/state"
)

// ErrNoFrame is returned when no frame has been drawn yet.
var ErrNoFrame = errors.New("no frame rendered yet")

// LatestFrame holds the most recent composited frame for readers on other goroutines.
type LatestFrame struct {
	mu  sync.Mutex
	img *image.RGBA
}

// Store replaces the held frame. The image must not be modified afterwards.
func (f *LatestFrame) Store(img *image.RGBA) {
	f.mu.Lock()
	f.img = img
	f.mu.Unlock()
}

// Load returns the held frame, or nil.
func (f *LatestFrame) Load() *image.RGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.img
}

// WritePNG encodes the held frame. An empty surface counts as no frame.
func (f *LatestFrame) WritePNG(w io.Writer) error {
	img := f.Load()
	if img == nil || img.Bounds().Empty() {
		return ErrNoFrame
	}
	return png.Encode(w, img)
}

// ImageRenderer renders off-screen and keeps the latest frame in memory.
// The simulator, desktop and terminal shells present frames from it.
type ImageRenderer struct {
	Logger logger
	// OnFrame, when set, receives every composited frame on the render goroutine.
	OnFrame func(img *image.RGBA)

	redrawQueue

	mu      sync.Mutex
	canvas  *Canvas
	current Screen
	latest  LatestFrame
	width   int
	height  int
	running atomic.Bool
}

func NewImageRenderer(width, height int) *ImageRenderer {
	return &ImageRenderer{width: width, height: height}
}

func (r *ImageRenderer) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.canvas == nil {
		r.canvas = NewCanvas(r.width, r.height)
	}
	r.running.Store(true)
	if r.Logger != nil {
		r.Logger.Infof("image", "renderer started, size=%dx%d", r.width, r.height)
	}
	return nil
}

func (r *ImageRenderer) Stop() error {
	r.running.Store(false)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.canvas == nil {
		return nil
	}
	err := r.canvas.Close()
	r.canvas = nil
	return err
}

func (r *ImageRenderer) SetScreen(screen Screen) {
	r.mu.Lock()
	r.current = screen
	r.mu.Unlock()
}

// Resize changes the surface size used by subsequent frames.
func (r *ImageRenderer) Resize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width == r.width && height == r.height {
		return nil
	}
	r.width, r.height = width, height
	if r.canvas == nil {
		return nil
	}
	if r.Logger != nil {
		r.Logger.Infof("image", "resize to %dx%d", width, height)
	}
	return r.canvas.Resize(width, height)
}

// Size returns the configured surface size.
func (r *ImageRenderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *ImageRenderer) RedrawWithState(snap state.State) error {
	if !r.running.Load() {
		return nil
	}
	r.mu.Lock()
	if r.current == nil || r.canvas == nil {
		r.mu.Unlock()
		return nil
	}
	if err := r.current.Draw(r.canvas, snap); err != nil {
		r.mu.Unlock()
		return err
	}
	img := r.canvas.Image()
	r.latest.Store(img)
	onFrame := r.OnFrame
	r.mu.Unlock()

	if onFrame != nil {
		onFrame(img)
	}
	return nil
}

func (r *ImageRenderer) RunLoop(ctx context.Context, store *state.Store) {
	r.run(ctx, store, r.RedrawWithState, "image", r.Logger)
}

// Frame returns the latest composited frame, or nil before the first redraw.
// The image must not be modified.
func (r *ImageRenderer) Frame() *image.RGBA { return r.latest.Load() }

// WritePNG encodes the latest frame.
func (r *ImageRenderer) WritePNG(w io.Writer) error { return r.latest.WritePNG(w) }
