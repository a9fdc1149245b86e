package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rook-computer/rotationdemo/internal/app/screens"
	"github.com/rook-computer/rotationdemo/internal/render"
	"github.com/rook-computer/rotationdemo/internal/state"
	"github.com/rook-computer/rotationdemo/internal/system"
	"github.com/rook-computer/rotationdemo/internal/web"
)

// ErrNotStarted is returned by lifecycle calls made outside Start.
var ErrNotStarted = errors.New("app not started")

type App struct {
	Store  *state.Store
	Render render.Renderer
	Web    web.Server
	Logger Logger
	// Screen is the page; nil means a RotationScreen on Store.
	Screen render.Screen
	Driver *render.FrameDriver

	// Console switches the active VT to graphics mode while running.
	Console bool
	// StartHidden leaves the page inactive until Show is called.
	StartHidden bool

	// mu guards loopCtx and serializes Show and Hide.
	mu       sync.Mutex
	loopCtx  context.Context
	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, renderer render.Renderer, webServer web.Server) *App {
	return &App{Store: store, Render: renderer, Web: webServer, Logger: NoopLogger{}, exitCh: make(chan error, 1)}
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Start runs the app until ctx is done or Exit is called.
func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	select {
	case <-app.exitCh:
	default:
	}
	app.exitOnce.Store(false)
	if app.Store == nil {
		app.Store = state.NewStore()
	}
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	if app.Render == nil {
		app.Render = render.NewFBRenderer()
	}
	if fb, ok := app.Render.(*render.FBRenderer); ok && fb.Logger == nil {
		fb.Logger = app.Logger
	}
	if img, ok := app.Render.(*render.ImageRenderer); ok && img.Logger == nil {
		img.Logger = app.Logger
	}

	if err := app.Render.Start(ctx); err != nil {
		app.Logger.Errorf("app", "renderer start error: %v", err)
		return fmt.Errorf("start renderer: %w", err)
	}
	defer app.Render.Stop()

	if app.Console {
		_ = system.SetGraphicsModeWithLog(app.Logger)
		_ = system.HideCursorWithLog(app.Logger)
		defer func() { _ = system.ShowCursorWithLog(app.Logger); _ = system.RestoreTextModeWithLog(app.Logger) }()
	}

	if app.Screen == nil {
		app.Screen = screens.NewRotationScreen(app.Store, app.Logger)
	}
	app.Render.SetScreen(app.Screen)
	if app.Driver == nil {
		app.Driver = render.NewFrameDriver(app.Render.Invalidate)
	}
	if app.Driver.Logger == nil {
		app.Driver.Logger = app.Logger
	}

	loopCtx, cancel := context.WithCancel(ctx)
	app.mu.Lock()
	app.loopCtx = loopCtx
	app.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.Render.RunLoop(loopCtx, app.Store)
	}()

	if app.Web != nil {
		if err := app.Web.Start(loopCtx); err != nil {
			app.Logger.Errorf("web", "server start error: %v", err)
		}
	}

	if !app.StartHidden {
		if err := app.Show(); err != nil {
			app.Logger.Errorf("app", "show failed: %v", err)
		}
	}

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	}

	app.mu.Lock()
	_ = app.hideLocked()
	app.loopCtx = nil
	app.mu.Unlock()
	if app.Web != nil {
		_ = app.Web.Stop()
	}
	cancel()
	wg.Wait()
	return err
}

// Show is the "became visible" hook: the page starts and frames are requested.
func (app *App) Show() error {
	app.mu.Lock()
	defer app.mu.Unlock()
	ctx := app.loopCtx
	if ctx == nil {
		return ErrNotStarted
	}
	if err := app.Screen.Start(ctx); err != nil {
		return err
	}
	app.Store.SetPhase(state.ACTIVE)
	app.Driver.Show(ctx)
	return nil
}

// Hide is the "became hidden" hook. It returns after the frame driver stopped;
// a redraw already in flight is allowed to finish.
func (app *App) Hide() error {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.loopCtx == nil {
		return ErrNotStarted
	}
	return app.hideLocked()
}

func (app *App) hideLocked() error {
	app.Driver.Hide()
	app.Store.SetPhase(state.INACTIVE)
	return app.Screen.Stop()
}

// Visible reports whether the page is active.
func (app *App) Visible() bool {
	return app.Store != nil && app.Store.Snapshot().Phase == state.ACTIVE
}

func (app *App) Stop() error {
	app.Exit(nil)
	return nil
}

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

type FileLogger struct {
	mu *sync.Mutex
	w  io.Writer
}

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{mu: &sync.Mutex{}, w: w} }
func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	l.write("INFO", component, format, args...)
}
func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	l.write("ERROR", component, format, args...)
}

func (l FileLogger) write(level, component, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	writeLog(l.w, level, component, format, args...)
}

func writeLog(w io.Writer, level, component, format string, args ...interface{}) {
	timestamp := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(w, timestamp+" ["+level+"] "+component+": "+msg+"\n")
}
