package web

import (
	"io"

	"github.com/rook-computer/rotationdemo/internal/render"
	"github.com/rook-computer/rotationdemo/internal/state"
)

// StatusSource is read by GET /status. *state.Store satisfies it.
type StatusSource interface {
	Snapshot() state.State
}

// FrameSource encodes the latest frame. *render.ImageRenderer satisfies it.
type FrameSource interface {
	WritePNG(w io.Writer) error
}

// Lifecycle receives the page visibility hooks. *app.App satisfies it.
type Lifecycle interface {
	Show() error
	Hide() error
}

type APIV1Deps struct {
	Status    StatusSource
	Frames    FrameSource
	Lifecycle Lifecycle
	// PublicURL returns the address encoded by /qr.png. When nil the
	// request's Host header is used.
	PublicURL func() string
}

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.Status == nil {
		out.Status = state.NewStore()
	}
	if out.Frames == nil {
		out.Frames = NoFrames{}
	}
	return out
}

// NoFrames is a FrameSource for hosts that cannot capture their output.
type NoFrames struct{}

func (NoFrames) WritePNG(io.Writer) error { return render.ErrNoFrame }
