package render

import (
	"context"
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	fb "github.com/gonutz/framebuffer"
	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/rotationdemo/internal/state"
)

// FBRenderer renders to the Linux framebuffer using an offscreen canvas.
type FBRenderer struct {
	// Device is the framebuffer device path; empty means /dev/fb0.
	Device string
	// CanvasWidth and CanvasHeight set a logical canvas size that is scaled to
	// the framebuffer. Zero means the framebuffer's own size.
	CanvasWidth  int
	CanvasHeight int
	Logger       logger
	// OnFrame, when set, receives every composited frame after the blit.
	OnFrame func(img *image.RGBA)

	redrawQueue

	mu      sync.Mutex
	fbDev   *fb.Device
	canvas  *Canvas
	current Screen
	running atomic.Bool
}

func NewFBRenderer() *FBRenderer { return &FBRenderer{} }

func (r *FBRenderer) Start(ctx context.Context) error {
	path := r.Device
	if path == "" {
		path = "/dev/fb0"
	}
	dev, err := fb.Open(path)
	if err != nil {
		return fmt.Errorf("open framebuffer %s: %w", path, err)
	}

	bounds := dev.Bounds()
	width, height := r.CanvasWidth, r.CanvasHeight
	if width <= 0 || height <= 0 {
		width, height = bounds.Dx(), bounds.Dy()
	}

	r.mu.Lock()
	r.fbDev = dev
	r.canvas = NewCanvas(width, height)
	r.mu.Unlock()
	if r.Logger != nil {
		r.Logger.Infof("fb", "framebuffer open, bounds=%dx%d canvas=%dx%d", bounds.Dx(), bounds.Dy(), width, height)
	}

	r.running.Store(true)
	return nil
}

func (r *FBRenderer) Stop() error {
	r.running.Store(false)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.canvas != nil {
		_ = r.canvas.Close()
		r.canvas = nil
	}
	if r.fbDev != nil {
		r.fbDev.Close()
		r.fbDev = nil
	}
	return nil
}

// SetScreen sets the current logical screen to be drawn.
func (r *FBRenderer) SetScreen(screen Screen) {
	r.mu.Lock()
	r.current = screen
	r.mu.Unlock()
}

func (r *FBRenderer) RedrawWithState(snap state.State) error {
	if !r.running.Load() {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil || r.fbDev == nil || r.canvas == nil {
		return nil
	}
	if err := r.current.Draw(r.canvas, snap); err != nil {
		return err
	}
	img := r.canvas.Image()
	blitToFB(r.fbDev, img)
	if r.OnFrame != nil {
		r.OnFrame(img)
	}
	return nil
}

// RunLoop redraws on every Invalidate until the context is done.
func (r *FBRenderer) RunLoop(ctx context.Context, store *state.Store) {
	r.run(ctx, store, r.RedrawWithState, "fb", r.Logger)
}

// blitToFB copies the frame onto the device, scaling when the sizes differ.
func blitToFB(dev *fb.Device, frame *image.RGBA) {
	if dev == nil || frame.Bounds().Empty() {
		return
	}
	bounds := dev.Bounds()
	if bounds.Size() == frame.Bounds().Size() {
		xdraw.Draw(dev, bounds, frame, frame.Bounds().Min, xdraw.Src)
		return
	}
	xdraw.NearestNeighbor.Scale(dev, bounds, frame, frame.Bounds(), xdraw.Src, nil)
}
