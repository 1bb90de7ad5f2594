// Package public tracks the address the bridge's api is reachable at
package public

import (
	"fmt"
	"net"
	"os"
)

var (
	// Listener is the listen address
	Listener string
	// Addr is the host:port other machines reach the listener at
	Addr string
)

func genericInterface(host string) bool {
	ip := net.ParseIP(host)
	return ip != nil && (ip.IsLoopback() || ip.IsUnspecified())
}

// SetListener sets the listen address and derives the public address unless already set
func SetListener(addr string) (string, error) {
	Listener = addr

	if Addr != "" {
		return Listener, nil
	}

	_, err := SetAddr(Listener)
	return Listener, err
}

// SetAddr sets the public address. Unspecified or loopback hosts are replaced by the hostname.
func SetAddr(addr string) (string, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", err
	}

	if host == "" || genericInterface(host) {
		if host, err = os.Hostname(); err != nil {
			return "", err
		}
	}

	Addr = net.JoinHostPort(host, port)

	return Addr, nil
}

// URL returns the public url for scheme and path
func URL(scheme, path string) string {
	return fmt.Sprintf("%s://%s%s", scheme, Addr, path)
}
