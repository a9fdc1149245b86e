package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rook-computer/rotationdemo/internal/state"
)

func TestDefaultServerConfigFromEnv(t *testing.T) {
	t.Setenv(EnvListenAddr, "")
	t.Setenv(EnvDevMode, "")
	t.Setenv(EnvPublicHost, "")
	cfg, err := DefaultServerConfigFromEnv(":8080")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != (ServerConfig{ListenAddr: ":8080"}) {
		t.Errorf("defaults: got %+v", cfg)
	}

	t.Setenv(EnvListenAddr, "127.0.0.1:9999")
	t.Setenv(EnvDevMode, "true")
	t.Setenv(EnvPublicHost, "demo.local")
	cfg, err = DefaultServerConfigFromEnv(":8080")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != (ServerConfig{ListenAddr: "127.0.0.1:9999", DevMode: true, PublicHost: "demo.local"}) {
		t.Errorf("from env: got %+v", cfg)
	}
	if got := cfg.PreviewHost("127.0.0.1"); got != "demo.local" {
		t.Errorf("PreviewHost: got %q", got)
	}
	if got := (ServerConfig{}).PreviewHost("127.0.0.1"); got != "127.0.0.1" {
		t.Errorf("PreviewHost fallback: got %q", got)
	}
	t.Setenv(EnvDevMode, "")

	for _, addr := range []string{"8080", ":0", "[::1]:80"} {
		t.Setenv(EnvListenAddr, addr)
		if _, err := DefaultServerConfigFromEnv(":8080"); err != nil {
			t.Errorf("listen %q: %v", addr, err)
		}
	}
	for _, addr := range []string{"localhost:http", ":99999", "nowhere"} {
		t.Setenv(EnvListenAddr, addr)
		if _, err := DefaultServerConfigFromEnv(":8080"); err == nil {
			t.Errorf("listen %q: expected an error", addr)
		}
	}
	t.Setenv(EnvListenAddr, "")

	t.Setenv(EnvDevMode, "sometimes")
	if _, err := DefaultServerConfigFromEnv(":8080"); err == nil {
		t.Error("expected an error for a non-boolean dev mode")
	}
}

func TestWithDevCORS(t *testing.T) {
	h := WithDevCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/status", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight: got %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("allow origin: got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTeapot {
		t.Errorf("passthrough: got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("CORS headers set without an Origin")
	}
}

func TestHTTPServerLifecycle(t *testing.T) {
	store := state.NewStore()
	store.UpdateFrame(state.FrameInfo{Number: 7})
	s := NewHTTPServer(ServerConfig{ListenAddr: "127.0.0.1:0"})
	s.API = APIV1Config{Deps: APIV1Deps{Status: store}}

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Start(context.Background()); err != nil {
		t.Errorf("second Start: %v", err)
	}
	addr := s.Addr()
	if addr == nil {
		t.Fatal("no bound address")
	}

	resp, err := http.Get("http://" + addr.String() + "/api/v1/status")
	if err != nil {
		t.Fatal(err)
	}
	var got statusResponse
	err = json.NewDecoder(resp.Body).Decode(&got)
	resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	if got.Frame != 7 {
		t.Errorf("frame: got %d, want 7", got.Frame)
	}

	if err := s.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
	if s.Addr() != nil {
		t.Error("address still set after Stop")
	}
	if err := s.Start(context.Background()); err == nil {
		t.Error("Start after Stop should fail")
	}
}
