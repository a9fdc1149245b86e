package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/gg"

	"github.com/rook-computer/rotationdemo/internal/app"
	"github.com/rook-computer/rotationdemo/internal/app/screens"
	"github.com/rook-computer/rotationdemo/internal/render"
	"github.com/rook-computer/rotationdemo/internal/state"
	"github.com/rook-computer/rotationdemo/internal/system"
	"github.com/rook-computer/rotationdemo/internal/web"
)

const envStdioLog = "ROTATIONDEMO_STDIO_LOG"

func main() {
	fmt.Println("Rotation demo starting")

	defaults, err := web.DefaultServerConfigFromEnv(":80")
	if err != nil {
		fmt.Println("server config error:", err)
		os.Exit(2)
	}

	// Flags
	debug := flag.Bool("debug", false, "enable debug logging to ./rotationdemo-debug.log")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via "+envStdioLog)
	listenAddr := flag.String("listen", defaults.ListenAddr, "preview server listen address; also configurable via "+web.EnvListenAddr)
	devMode := flag.Bool("dev", defaults.DevMode, "enable dev mode; also configurable via "+web.EnvDevMode)
	fbDevice := flag.String("fb", "/dev/fb0", "framebuffer device")
	noServer := flag.Bool("no-server", false, "do not start the preview server")
	hidden := flag.Bool("hidden", false, "start with the page hidden until shown via the preview API")
	noCaptions := flag.Bool("no-captions", false, "do not draw technique names and the angle")
	flag.Parse()

	// Best-effort: redirect all stdout/stderr output (including panic stack traces)
	// to a file so crashes are diagnosable even when the console is left in graphics mode.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv(envStdioLog)
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./rotationdemo-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			gg.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore()

	renderer := render.NewFBRenderer()
	renderer.Device = *fbDevice
	renderer.Logger = logger

	// Every composited frame is kept for the preview page.
	latest := &render.LatestFrame{}
	renderer.OnFrame = latest.Store

	var server web.Server = &web.NoopServer{}
	cfg := web.ServerConfig{ListenAddr: *listenAddr, DevMode: *devMode, PublicHost: defaults.PublicHost}
	httpServer := web.NewHTTPServer(cfg)
	httpServer.Logger = logger
	if !*noServer {
		server = httpServer
	}

	a := app.New(store, renderer, server)
	a.Logger = logger
	a.Console = true
	a.StartHidden = *hidden
	screen := screens.NewRotationScreen(store, logger)
	screen.Captions = !*noCaptions
	a.Screen = screen

	httpServer.API = web.APIV1Config{Deps: web.APIV1Deps{
		Status:    store,
		Frames:    latest,
		Lifecycle: a,
		PublicURL: func() string {
			if cfg.PublicHost != "" {
				return system.PreviewURL(cfg.PublicHost, cfg.ListenAddr)
			}
			ip, err := system.LocalIPv4()
			if err != nil {
				logger.Errorf("web", "preview url: %v", err)
			}
			return system.PreviewURL(ip, cfg.ListenAddr)
		},
	}}

	system.StartExitOnF4(ctx, logger, func() { a.Exit(nil) })

	if err := a.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
	fmt.Println("Rotation demo stopped")
}
