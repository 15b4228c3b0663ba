package testutils

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/aretw0/maboss/pkg/domain"
	"github.com/aretw0/maboss/pkg/server"
	"github.com/stretchr/testify/require"
)

// StartServer serves h on a new listener until the test ends.
// It fails the test immediately if the listener cannot be opened.
func StartServer(t *testing.T, network, address string, h server.Handler) net.Listener {
	t.Helper()

	ln, err := net.Listen(network, address)
	require.NoError(t, err, "Failed to listen on %s %s", network, address)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = server.New(h).Serve(ctx, ln)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return ln
}

// StartTCPServer is StartServer on a free loopback port. It returns the port.
func StartTCPServer(t *testing.T, h server.Handler) int {
	t.Helper()
	ln := StartServer(t, "tcp", "127.0.0.1:0", h)
	return ln.Addr().(*net.TCPAddr).Port
}

// ClosedPort returns a loopback port nothing listens on.
func ClosedPort(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return strconv.Itoa(port)
}

// ReplyWith builds a handler answering every request with a successful reply
// carrying arts.
func ReplyWith(arts domain.Artifacts) server.HandlerFunc {
	return func(ctx context.Context, req *domain.Request) *domain.Reply {
		reply, err := domain.NewReply(arts, 0, "")
		if err != nil {
			return domain.NewErrorReply(1, err.Error())
		}
		return reply
	}
}

// WriteFile creates dir/name with content and returns its path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
