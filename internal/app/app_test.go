package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rook-computer/rotationdemo/internal/app/screens"
	"github.com/rook-computer/rotationdemo/internal/render"
	"github.com/rook-computer/rotationdemo/internal/state"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func newTestApp(hidden bool) (*App, *render.ImageRenderer) {
	renderer := render.NewImageRenderer(60, 40)
	a := New(state.NewStore(), renderer, nil)
	a.StartHidden = hidden
	a.Driver = &render.FrameDriver{Interval: 2 * time.Millisecond, Invalidate: renderer.Invalidate}
	return a, renderer
}

func TestLifecycleHooksBeforeStart(t *testing.T) {
	a, _ := newTestApp(true)
	if err := a.Show(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Show: got %v, want ErrNotStarted", err)
	}
	if err := a.Hide(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Hide: got %v, want ErrNotStarted", err)
	}
}

func TestAppRunsFramesWhileVisible(t *testing.T) {
	a, renderer := newTestApp(true)
	errCh := make(chan error, 1)
	go func() { errCh <- a.Start(context.Background()) }()

	waitFor(t, "app start", func() bool { return !errors.Is(a.Show(), ErrNotStarted) })
	if !a.Visible() {
		t.Fatal("not visible after Show")
	}
	waitFor(t, "frames", func() bool { return a.Store.Snapshot().Frame.Number >= 3 })
	if renderer.Frame() == nil {
		t.Error("renderer holds no frame")
	}

	if err := a.Hide(); err != nil {
		t.Fatalf("Hide: %v", err)
	}
	if a.Visible() {
		t.Error("visible after Hide")
	}
	// One redraw may still be queued when Hide returns.
	time.Sleep(20 * time.Millisecond)
	before := a.Store.Snapshot().Frame.Number
	time.Sleep(50 * time.Millisecond)
	if after := a.Store.Snapshot().Frame.Number; after != before {
		t.Errorf("frames advanced while hidden: %d -> %d", before, after)
	}

	// Showing again continues from the same angle.
	if err := a.Show(); err != nil {
		t.Fatalf("Show: %v", err)
	}
	waitFor(t, "frames after show", func() bool { return a.Store.Snapshot().Frame.Number > before })

	a.Exit(nil)
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Start returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Start did not return after Exit")
	}
	if a.Visible() {
		t.Error("still visible after exit")
	}
}

func TestAppStartsVisible(t *testing.T) {
	a, _ := newTestApp(false)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- a.Start(ctx) }()

	waitFor(t, "first frame", func() bool { return a.Store.Snapshot().Frame.Number >= 1 })
	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("got %v, want context.Canceled", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

func TestConcurrentShowHideStayConsistent(t *testing.T) {
	a, _ := newTestApp(true)
	screen := screens.NewRotationScreen(a.Store, NoopLogger{})
	a.Screen = screen
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- a.Start(ctx) }()
	waitFor(t, "app start", func() bool { return !errors.Is(a.Hide(), ErrNotStarted) })

	for i := 0; i < 2000; i++ {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() { defer wg.Done(); _ = a.Show() }()
		go func() { defer wg.Done(); _ = a.Hide() }()
		wg.Wait()

		driver, phase, page := a.Driver.Active(), a.Visible(), screen.Visible()
		if driver != phase || phase != page {
			t.Fatalf("round %d: driver=%v phase=%v screen=%v", i, driver, phase, page)
		}
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(3 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
	if a.Driver.Active() || a.Visible() || screen.Visible() {
		t.Error("page still active after shutdown")
	}
}

func TestExitAfterRunDoesNotEndNextRun(t *testing.T) {
	a, _ := newTestApp(true)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- a.Start(ctx) }()
	waitFor(t, "first start", func() bool { return !errors.Is(a.Hide(), ErrNotStarted) })
	cancel()
	<-errCh

	// A late exit request arrives between runs.
	a.Exit(errors.New("late"))

	go func() { errCh <- a.Start(context.Background()) }()
	waitFor(t, "second start", func() bool { return !errors.Is(a.Hide(), ErrNotStarted) })
	select {
	case err := <-errCh:
		t.Fatalf("second run ended early: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	a.Exit(nil)
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Start returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Start did not return after Exit")
	}
}

func TestFileLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewFileLogger(&buf)
	l.Infof("driver", "active, interval=%s", "33ms")
	l.Errorf("fb", "redraw failed: %v", errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	if !strings.HasSuffix(lines[0], " [INFO] driver: active, interval=33ms") {
		t.Errorf("info line: %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], " [ERROR] fb: redraw failed: boom") {
		t.Errorf("error line: %q", lines[1])
	}
	if _, err := time.Parse(time.RFC3339, strings.Fields(lines[0])[0]); err != nil {
		t.Errorf("timestamp: %v", err)
	}
}
