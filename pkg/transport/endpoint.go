package transport

import (
	"fmt"
	"net"
	"strconv"

	"github.com/aretw0/maboss/pkg/domain"
)

// DefaultHost is used when a TCP endpoint is given without a host.
const DefaultHost = "localhost"

// Endpoint identifies a server: either a TCP host:port or a local unix socket path.
// It is resolved once by ParseEndpoint and never re-parsed.
type Endpoint struct {
	network string // "tcp" or "unix"
	address string
}

// TCPEndpoint builds a TCP endpoint.
func TCPEndpoint(host string, port int) Endpoint {
	if host == "" {
		host = DefaultHost
	}
	return Endpoint{network: "tcp", address: net.JoinHostPort(host, strconv.Itoa(port))}
}

// UnixEndpoint builds a local socket endpoint.
func UnixEndpoint(path string) Endpoint {
	return Endpoint{network: "unix", address: path}
}

// ParseEndpoint resolves the command-line pair (host, port).
// A port made only of digits is a TCP port; anything else names a unix socket
// and host is ignored.
func ParseEndpoint(host, port string) (Endpoint, error) {
	if port == "" {
		return Endpoint{}, &domain.ConfigurationError{Key: "port", Reason: "port is missing"}
	}
	if !isDigits(port) {
		return UnixEndpoint(port), nil
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return Endpoint{}, &domain.ConfigurationError{Key: "port", Reason: fmt.Sprintf("invalid TCP port %q", port)}
	}
	return TCPEndpoint(host, n), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Network returns "tcp" or "unix", as accepted by net.Dial.
func (e Endpoint) Network() string { return e.network }

// Address returns host:port or the socket path.
func (e Endpoint) Address() string { return e.address }

// IsZero reports whether e was never resolved.
func (e Endpoint) IsZero() bool { return e.network == "" }

func (e Endpoint) String() string {
	if e.IsZero() {
		return "<unset>"
	}
	return e.network + "://" + e.address
}
