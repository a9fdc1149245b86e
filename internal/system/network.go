package system

import (
	"errors"
	"net"
	"strings"
)

// ErrNoAddress is returned when no usable IPv4 interface address exists.
var ErrNoAddress = errors.New("no non-loopback ipv4 address")

// LocalIPv4 returns the first IPv4 address of an interface that is up and not loopback.
func LocalIPv4() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip4 := ipNet.IP.To4(); ip4 != nil {
				return ip4.String(), nil
			}
		}
	}
	return "", ErrNoAddress
}

// PreviewURL builds the address other devices use to reach the preview server.
// An empty or unspecified host in listenAddr is replaced by host.
func PreviewURL(host, listenAddr string) string {
	listenHost, port, err := net.SplitHostPort(listenAddr)
	if err != nil {
		listenHost, port = "", strings.TrimPrefix(listenAddr, ":")
	}
	if listenHost != "" && listenHost != "0.0.0.0" && listenHost != "::" {
		host = listenHost
	}
	if host == "" {
		host = "localhost"
	}
	if port == "" || port == "80" {
		return "http://" + host + "/"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}
