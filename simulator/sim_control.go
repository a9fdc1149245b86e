package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gg"

	"github.com/rook-computer/rotationdemo/internal/render"
	"github.com/rook-computer/rotationdemo/internal/state"
)

// ErrSimulatedStroke is returned by strokes while the drawFail fault is set.
var ErrSimulatedStroke = errors.New("simulated stroke failure")

type surfaceSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// scenarios are the surface sizes the simulator can switch between.
var scenarios = map[string]surfaceSize{
	"phone":      {Width: 640, Height: 360},
	"tablet":     {Width: 1024, Height: 768},
	"reference":  {Width: 300, Height: 200},
	"degenerate": {Width: 0, Height: 0},
}

func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type SimFaults struct {
	DrawFail bool `json:"drawFail"`
}

// SimControl resizes the headless surface and injects drawing faults.
type SimControl struct {
	renderer        *render.ImageRenderer
	startupScenario string
	currentScenario atomic.Value // string

	faults struct {
		mu sync.RWMutex
		v  SimFaults
	}
}

func NewSimControl(renderer *render.ImageRenderer, startupScenario string) *SimControl {
	c := &SimControl{renderer: renderer, startupScenario: strings.TrimSpace(startupScenario)}
	if c.startupScenario == "" {
		c.startupScenario = "reference"
	}
	c.currentScenario.Store(c.startupScenario)
	return c
}

func (c *SimControl) ApplyScenario(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = c.startupScenario
	}
	size, ok := scenarios[name]
	if !ok {
		return fmt.Errorf("unknown scenario %q (want one of %s)", name, strings.Join(scenarioNames(), ", "))
	}
	if err := c.renderer.Resize(size.Width, size.Height); err != nil {
		return err
	}
	c.currentScenario.Store(name)
	return nil
}

// Resize sets an arbitrary surface size; the scenario becomes "custom".
func (c *SimControl) Resize(width, height int) error {
	if err := c.renderer.Resize(width, height); err != nil {
		return err
	}
	c.currentScenario.Store("custom")
	return nil
}

func (c *SimControl) Scenario() string { return c.currentScenario.Load().(string) }

func (c *SimControl) Reset() error {
	c.SetFaults(SimFaults{})
	return c.ApplyScenario(c.startupScenario)
}

func (c *SimControl) Faults() SimFaults {
	c.faults.mu.RLock()
	defer c.faults.mu.RUnlock()
	return c.faults.v
}

func (c *SimControl) SetFaults(v SimFaults) {
	c.faults.mu.Lock()
	c.faults.v = v
	c.faults.mu.Unlock()
}

// faultScreen hands the page a failing drawer while drawFail is set.
type faultScreen struct {
	render.Screen
	control *SimControl
}

func (s faultScreen) Draw(d render.Drawer, snap state.State) error {
	if s.control.Faults().DrawFail {
		d = failingDrawer{Drawer: d, err: ErrSimulatedStroke}
	}
	return s.Screen.Draw(d, snap)
}

type failingDrawer struct {
	render.Drawer
	err error
}

func (f failingDrawer) StrokeLine(x1, y1, x2, y2 float64, style render.Style) error { return f.err }
func (f failingDrawer) StrokePolygon(points []gg.Point, style render.Style) error  { return f.err }

func (c *SimControl) status() map[string]any {
	width, height := c.renderer.Size()
	return map[string]any{
		"ok":       true,
		"scenario": c.Scenario(),
		"width":    width,
		"height":   height,
	}
}

func registerSimEndpoints(mux *http.ServeMux, control *SimControl) {
	mux.HandleFunc("/sim/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		if err := control.Reset(); err != nil {
			writeSimError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, control.status())
	})

	mux.HandleFunc("/sim/scenario/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		name := strings.TrimPrefix(r.URL.Path, "/sim/scenario/")
		name = strings.Trim(name, "/")
		if err := control.ApplyScenario(name); err != nil {
			writeSimError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeSimJSON(w, http.StatusOK, control.status())
	})

	mux.HandleFunc("/sim/size", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeSimJSON(w, http.StatusOK, control.status())
		case http.MethodPost:
			var size surfaceSize
			if err := json.NewDecoder(r.Body).Decode(&size); err != nil {
				writeSimError(w, http.StatusBadRequest, "invalid json")
				return
			}
			if err := control.Resize(size.Width, size.Height); err != nil {
				writeSimError(w, http.StatusInternalServerError, err.Error())
				return
			}
			writeSimJSON(w, http.StatusOK, control.status())
		default:
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})

	mux.HandleFunc("/sim/faults", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeSimJSON(w, http.StatusOK, control.Faults())
		case http.MethodPost:
			var patch struct {
				DrawFail *bool `json:"drawFail"`
			}
			if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
				writeSimError(w, http.StatusBadRequest, "invalid json")
				return
			}
			current := control.Faults()
			if patch.DrawFail != nil {
				current.DrawFail = *patch.DrawFail
			}
			control.SetFaults(current)
			writeSimJSON(w, http.StatusOK, current)
		default:
			writeSimError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	})
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": message})
}
