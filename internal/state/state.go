package state

import "sync"

type Phase int

const (
	INACTIVE Phase = iota
	ACTIVE
)

func (p Phase) String() string {
	if p == ACTIVE {
		return "active"
	}
	return "inactive"
}

// FrameInfo describes the last frame the rotation page drew.
type FrameInfo struct {
	Number  uint64
	Degrees float64
	Width   int
	Height  int
}

type State struct {
	Phase Phase
	Frame FrameInfo
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Phase: INACTIVE}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	store.state.Phase = phase
	store.mu.Unlock()
}

func (store *Store) UpdateFrame(frame FrameInfo) {
	store.mu.Lock()
	store.state.Frame = frame
	store.mu.Unlock()
}
