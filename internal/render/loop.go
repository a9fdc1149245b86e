package render

import (
	"context"
	"sync"
	"time"

	"github.com/rook-computer/rotationdemo/internal/state"
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// redrawQueue turns Invalidate calls into redraws on the RunLoop goroutine.
// At most one request is pending; extra requests merge into it.
type redrawQueue struct {
	once  sync.Once
	dirty chan struct{}
}

func (q *redrawQueue) ch() chan struct{} {
	q.once.Do(func() { q.dirty = make(chan struct{}, 1) })
	return q.dirty
}

func (q *redrawQueue) Invalidate() {
	select {
	case q.ch() <- struct{}{}:
	default:
	}
}

// run redraws once per pending request until ctx is done.
func (q *redrawQueue) run(ctx context.Context, store *state.Store, redraw func(state.State) error, component string, log logger) {
	lastLog := time.Now()
	frames := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-q.ch():
		}

		var snap state.State
		if store != nil {
			snap = store.Snapshot()
		}
		if err := redraw(snap); err != nil && log != nil {
			log.Errorf(component, "redraw failed: %v", err)
		}
		frames++
		if log != nil && time.Since(lastLog) > time.Second {
			log.Infof(component, "heartbeat, %d frames, phase=%s", frames, snap.Phase)
			lastLog = time.Now()
			frames = 0
		}
	}
}
