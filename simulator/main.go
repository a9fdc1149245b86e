package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rook-computer/rotationdemo/internal/app"
	"github.com/rook-computer/rotationdemo/internal/app/screens"
	"github.com/rook-computer/rotationdemo/internal/render"
	"github.com/rook-computer/rotationdemo/internal/state"
	"github.com/rook-computer/rotationdemo/internal/system"
	"github.com/rook-computer/rotationdemo/internal/web"
)

func main() {
	defaults, err := web.DefaultServerConfigFromEnv(":8080")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	listenAddr := flag.String("listen", defaults.ListenAddr, "http listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	staticDir := flag.String("static-dir", "", "serve the preview page from this directory (optional); when empty, the embedded page is served")
	scenario := flag.String("scenario", "reference", "surface scenario: "+strings.Join(scenarioNames(), " | "))
	frames := flag.Int("frames", 0, "render this many frames headless, write them to -out and exit")
	outDir := flag.String("out", "frames", "output directory for -frames")
	hidden := flag.Bool("hidden", false, "start with the page hidden")
	debug := flag.Bool("debug", false, "log to stdout")
	flag.Parse()

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		logger = app.NewFileLogger(os.Stdout)
	}

	store := state.NewStore()
	renderer := render.NewImageRenderer(0, 0)
	renderer.Logger = logger

	control := NewSimControl(renderer, *scenario)
	if err := control.ApplyScenario(*scenario); err != nil {
		fmt.Println("scenario init error:", err)
		os.Exit(2)
	}
	screen := faultScreen{Screen: screens.NewRotationScreen(store, logger), control: control}

	if *frames > 0 {
		if err := dumpFrames(renderer, screen, store, *frames, *outDir); err != nil {
			fmt.Println("render error:", err)
			os.Exit(1)
		}
		return
	}

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode, PublicHost: defaults.PublicHost}
	server := web.NewHTTPServer(cfg)
	server.Logger = logger
	server.StaticDir = *staticDir

	a := app.New(store, renderer, server)
	a.Logger = logger
	a.Screen = screen
	a.StartHidden = *hidden

	mux := web.NewDefaultMux(server.StaticDir, web.APIV1Config{Deps: web.APIV1Deps{
		Status:    store,
		Frames:    renderer,
		Lifecycle: a,
		PublicURL: func() string { return system.PreviewURL(cfg.PreviewHost("127.0.0.1"), cfg.ListenAddr) },
	}})
	registerSimEndpoints(mux, control)
	server.Handler = mux

	fmt.Println("Rotation demo simulator on", system.PreviewURL(cfg.PreviewHost("127.0.0.1"), cfg.ListenAddr))
	fmt.Println("Scenario:", control.Scenario())

	if err := a.Start(processCtx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}

// dumpFrames draws n frames back to back and writes each one as a PNG.
// Empty frames (degenerate surfaces) are counted but not written.
func dumpFrames(renderer *render.ImageRenderer, screen render.Screen, store *state.Store, n int, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	ctx := context.Background()
	if err := renderer.Start(ctx); err != nil {
		return err
	}
	defer renderer.Stop()
	renderer.SetScreen(screen)
	store.SetPhase(state.ACTIVE)

	written := 0
	for i := 1; i <= n; i++ {
		if err := renderer.RedrawWithState(store.Snapshot()); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		img := renderer.Frame()
		if img == nil || img.Bounds().Empty() {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("frame-%04d.png", i))
		if err := writePNG(path, img); err != nil {
			return err
		}
		written++
	}
	snap := store.Snapshot()
	fmt.Printf("rendered %d frames (%d written), last angle %.1f°\n", n, written, snap.Frame.Degrees)
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
