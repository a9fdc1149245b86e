package render

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// FrameDriver requests redraws at a fixed rate while its page is visible.
//
// It has two states. Show moves Inactive to Active and starts the loop; Hide
// moves Active to Inactive and returns once the loop has exited. Both are
// edge-triggered and safe to repeat.
type FrameDriver struct {
	Interval   time.Duration
	Invalidate func()
	Logger     interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}

	mu     sync.Mutex
	active atomic.Bool
	stop   chan struct{}
	done   chan struct{}
	frames atomic.Uint64
}

func NewFrameDriver(invalidate func()) *FrameDriver {
	return &FrameDriver{Interval: FrameInterval, Invalidate: invalidate}
}

// Active reports whether the loop is running.
func (d *FrameDriver) Active() bool { return d.active.Load() }

// Requests returns how many redraws the driver has requested so far.
func (d *FrameDriver) Requests() uint64 { return d.frames.Load() }

func (d *FrameDriver) Show(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active.Load() {
		return
	}
	d.active.Store(true)
	d.stop = make(chan struct{})
	d.done = make(chan struct{})
	if d.Logger != nil {
		d.Logger.Infof("driver", "active, interval=%s", d.interval())
	}
	go d.loop(ctx, d.stop, d.done)
}

func (d *FrameDriver) Hide() {
	d.mu.Lock()
	if !d.active.Load() {
		d.mu.Unlock()
		return
	}
	d.active.Store(false)
	close(d.stop)
	done := d.done
	d.mu.Unlock()

	<-done
	if d.Logger != nil {
		d.Logger.Infof("driver", "inactive after %d requests", d.frames.Load())
	}
}

func (d *FrameDriver) loop(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	timer := time.NewTimer(d.interval())
	defer timer.Stop()

	for d.active.Load() {
		if d.Invalidate != nil {
			d.Invalidate()
		}
		d.frames.Add(1)

		select {
		case <-stop:
			return
		case <-ctx.Done():
			d.active.Store(false)
			return
		case <-timer.C:
		}
		timer.Reset(d.interval())
	}
}

func (d *FrameDriver) interval() time.Duration {
	if d.Interval <= 0 {
		return FrameInterval
	}
	return d.Interval
}
