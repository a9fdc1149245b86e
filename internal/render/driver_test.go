package render

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestFrameDriverRequestsWhileActive(t *testing.T) {
	var calls atomic.Int64
	d := NewFrameDriver(func() { calls.Add(1) })
	d.Interval = 2 * time.Millisecond

	d.Show(context.Background())
	if !d.Active() {
		t.Fatal("not active after Show")
	}
	waitFor(t, "redraw requests", func() bool { return calls.Load() >= 5 })

	d.Hide()
	if d.Active() {
		t.Fatal("active after Hide")
	}
	stopped := calls.Load()
	time.Sleep(20 * time.Millisecond)
	if got := calls.Load(); got != stopped {
		t.Errorf("requests after Hide: got %d, want %d", got, stopped)
	}
	if d.Requests() != uint64(stopped) {
		t.Errorf("Requests() = %d, want %d", d.Requests(), stopped)
	}
}

func TestFrameDriverIdempotent(t *testing.T) {
	var calls atomic.Int64
	d := NewFrameDriver(func() { calls.Add(1) })
	d.Interval = time.Hour

	d.Hide() // inactive: no-op
	d.Show(context.Background())
	d.Show(context.Background())
	waitFor(t, "first request", func() bool { return calls.Load() >= 1 })
	time.Sleep(10 * time.Millisecond)
	// A second loop would have issued its own immediate request.
	if got := calls.Load(); got != 1 {
		t.Errorf("requests: got %d, want 1", got)
	}
	d.Hide()
	d.Hide()
	if d.Active() {
		t.Error("active after Hide")
	}
}

func TestFrameDriverHideWakesWait(t *testing.T) {
	d := NewFrameDriver(func() {})
	d.Interval = time.Hour
	d.Show(context.Background())

	done := make(chan struct{})
	go func() {
		d.Hide()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Hide did not interrupt the interval wait")
	}
}

func TestFrameDriverStopsOnContextCancel(t *testing.T) {
	d := NewFrameDriver(func() {})
	d.Interval = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	d.Show(ctx)
	cancel()
	waitFor(t, "inactive after cancel", func() bool { return !d.Active() })

	// It can be shown again with a fresh context.
	d.Show(context.Background())
	if !d.Active() {
		t.Error("not active after second Show")
	}
	d.Hide()
}

func TestFrameDriverDefaultInterval(t *testing.T) {
	d := &FrameDriver{}
	if got := d.interval(); got != FrameInterval {
		t.Errorf("got %v, want %v", got, FrameInterval)
	}
}
