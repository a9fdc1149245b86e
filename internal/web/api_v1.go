package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rook-computer/rotationdemo/internal/render"
	"github.com/rook-computer/rotationdemo/internal/state"
)

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type statusResponse struct {
	Active  bool    `json:"active"`
	Frame   uint64  `json:"frame"`
	Degrees float64 `json:"degrees"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
}

type visibilityRequest struct {
	Visible *bool `json:"visible"`
}

func apiV1Router(deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) { handleStatus(w, r, deps) })
	mux.HandleFunc("/frame.png", func(w http.ResponseWriter, r *http.Request) { handleFrame(w, r, deps) })
	mux.HandleFunc("/visibility", func(w http.ResponseWriter, r *http.Request) { handleVisibility(w, r, deps) })
	mux.HandleFunc("/qr.png", func(w http.ResponseWriter, r *http.Request) { handleQRCode(w, r, deps) })
	return mux
}

func handleStatus(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, newStatusResponse(deps.Status.Snapshot()))
}

func newStatusResponse(snap state.State) statusResponse {
	return statusResponse{
		Active:  snap.Phase == state.ACTIVE,
		Frame:   snap.Frame.Number,
		Degrees: snap.Frame.Degrees,
		Width:   snap.Frame.Width,
		Height:  snap.Frame.Height,
	}
}

func handleFrame(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	// Encode fully before writing headers so failures still get a JSON error.
	var buf bytes.Buffer
	if err := deps.Frames.WritePNG(&buf); err != nil {
		if errors.Is(err, render.ErrNoFrame) {
			writeAPIError(w, http.StatusServiceUnavailable, "no_frame", err.Error())
			return
		}
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func handleVisibility(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.Lifecycle == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "visibility not configured")
		return
	}

	var req visibilityRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10)).Decode(&req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if req.Visible == nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_body", "missing field \"visible\"")
		return
	}

	var err error
	if *req.Visible {
		err = deps.Lifecycle.Show()
	} else {
		err = deps.Lifecycle.Hide()
	}
	if err != nil {
		writeAPIError(w, http.StatusConflict, "visibility_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newStatusResponse(deps.Status.Snapshot()))
}

func handleQRCode(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	size := 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeAPIError(w, http.StatusBadRequest, "invalid_size", "size must be a positive integer")
			return
		}
		size = parsed
	}

	payload := ""
	if deps.PublicURL != nil {
		payload = deps.PublicURL()
	}
	if payload == "" {
		payload = "http://" + r.Host + "/"
	}

	png, err := render.QRCodePNG(payload, size)
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, "qr_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
