// Command desktop shows the rotation page in a window. The page is visible
// while the window has focus.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/sync/errgroup"

	"github.com/rook-computer/rotationdemo/internal/app"
	"github.com/rook-computer/rotationdemo/internal/render"
	"github.com/rook-computer/rotationdemo/internal/state"
	"github.com/rook-computer/rotationdemo/internal/system"
	"github.com/rook-computer/rotationdemo/internal/web"
)

const (
	windowWidth  = 900
	windowHeight = 600
)

type game struct {
	app      *app.App
	renderer *render.ImageRenderer
	logger   app.Logger

	focused bool
	texture *ebiten.Image
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	focused := ebiten.IsFocused()
	if focused == g.focused {
		return nil
	}
	var err error
	if focused {
		err = g.app.Show()
	} else {
		err = g.app.Hide()
	}
	if errors.Is(err, app.ErrNotStarted) {
		// Retry on the next tick.
		return nil
	}
	if err != nil {
		g.logger.Errorf("desktop", "focus change: %v", err)
	}
	g.focused = focused
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	frame := g.renderer.Frame()
	if frame == nil || frame.Bounds().Empty() {
		return
	}
	w, h := frame.Bounds().Dx(), frame.Bounds().Dy()
	if g.texture == nil || g.texture.Bounds().Dx() != w || g.texture.Bounds().Dy() != h {
		if g.texture != nil {
			g.texture.Deallocate()
		}
		g.texture = ebiten.NewImage(w, h)
	}
	g.texture.WritePixels(packedPixels(frame))
	screen.DrawImage(g.texture, nil)
}

// Layout follows the window size; the canvas is resized to match.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if err := g.renderer.Resize(outsideWidth, outsideHeight); err != nil {
		g.logger.Errorf("desktop", "resize: %v", err)
	}
	return outsideWidth, outsideHeight
}

// packedPixels returns img's pixels without row padding.
func packedPixels(img *image.RGBA) []byte {
	b := img.Bounds()
	rowLen := b.Dx() * 4
	if img.Stride == rowLen && img.Rect.Min == (image.Point{}) {
		return img.Pix[:rowLen*b.Dy()]
	}
	out := make([]byte, 0, rowLen*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		out = append(out, img.Pix[off:off+rowLen]...)
	}
	return out
}

func main() {
	defaults, err := web.DefaultServerConfigFromEnv(":8080")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}
	listenAddr := flag.String("listen", defaults.ListenAddr, "preview server listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	noServer := flag.Bool("no-server", false, "do not start the preview server")
	debug := flag.Bool("debug", false, "log to stdout")
	flag.Parse()

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		logger = app.NewFileLogger(os.Stdout)
	}

	store := state.NewStore()
	renderer := render.NewImageRenderer(windowWidth, windowHeight)
	renderer.Logger = logger

	var server web.Server = &web.NoopServer{}
	if !*noServer {
		cfg := web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode, PublicHost: defaults.PublicHost}
		httpServer := web.NewHTTPServer(cfg)
		httpServer.Logger = logger
		server = httpServer
		fmt.Println("Preview:", system.PreviewURL(cfg.PreviewHost("127.0.0.1"), cfg.ListenAddr))
	}

	a := app.New(store, renderer, server)
	a.Logger = logger
	// Window focus decides visibility.
	a.StartHidden = true
	if httpServer, ok := server.(*web.HTTPServer); ok {
		httpServer.API = web.APIV1Config{Deps: web.APIV1Deps{Status: store, Frames: renderer, Lifecycle: a}}
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := a.Start(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Rotation demo - Esc/Q: Quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)

	runErr := ebiten.RunGame(&game{app: a, renderer: renderer, logger: logger})
	cancel()
	if err := g.Wait(); err != nil {
		fmt.Println("app error:", err)
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		fmt.Println("window error:", runErr)
		os.Exit(1)
	}
}
