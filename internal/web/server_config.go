package web

import (
	"fmt"
	"net"
	"os"
	"strconv"
)

// Environment overrides for the preview server. Command-line flags win over these.
const (
	EnvListenAddr = "ROTATIONDEMO_LISTEN"
	EnvDevMode    = "ROTATIONDEMO_DEV"
	EnvPublicHost = "ROTATIONDEMO_PUBLIC_HOST"
)

type ServerConfig struct {
	// ListenAddr is host:port or a bare port. The device binary defaults to :80,
	// the other hosts to :8080.
	ListenAddr string
	// DevMode allows cross-origin calls from a page served elsewhere.
	DevMode bool
	// PublicHost is the host put into the preview link and its QR code.
	// Empty means the binary picks one.
	PublicHost string
}

// PreviewHost returns PublicHost, or fallback when it is unset.
func (c ServerConfig) PreviewHost(fallback string) string {
	if c.PublicHost != "" {
		return c.PublicHost
	}
	return fallback
}

func DefaultServerConfigFromEnv(defaultListenAddr string) (ServerConfig, error) {
	cfg := ServerConfig{
		ListenAddr: defaultListenAddr,
		PublicHost: os.Getenv(EnvPublicHost),
	}
	if v := os.Getenv(EnvListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if err := checkListenAddr(cfg.ListenAddr); err != nil {
		return ServerConfig{}, fmt.Errorf("%s: %w", EnvListenAddr, err)
	}

	if raw := os.Getenv(EnvDevMode); raw != "" {
		dev, err := strconv.ParseBool(raw)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		cfg.DevMode = dev
	}
	return cfg, nil
}

func checkListenAddr(addr string) error {
	port := addr
	if _, p, err := net.SplitHostPort(addr); err == nil {
		port = p
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("bad listen address %q", addr)
	}
	return nil
}
