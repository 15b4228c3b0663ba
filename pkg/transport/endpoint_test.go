package transport_test

import (
	"testing"

	"github.com/aretw0/maboss/pkg/domain"
	"github.com/aretw0/maboss/pkg/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		host    string
		port    string
		network string
		address string
	}{
		{"numeric port defaults host", "", "7777", "tcp", "localhost:7777"},
		{"numeric port with host", "sim.example.org", "80", "tcp", "sim.example.org:80"},
		{"ipv6 host", "::1", "7777", "tcp", "[::1]:7777"},
		{"socket path", "", "/tmp/maboss.sock", "unix", "/tmp/maboss.sock"},
		{"named endpoint ignores host", "remote", "maboss_server", "unix", "maboss_server"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep, err := transport.ParseEndpoint(tt.host, tt.port)
			require.NoError(t, err)
			assert.Equal(t, tt.network, ep.Network())
			assert.Equal(t, tt.address, ep.Address())
			assert.Equal(t, tt.network+"://"+tt.address, ep.String())
		})
	}
}

func TestParseEndpoint_Invalid(t *testing.T) {
	for _, port := range []string{"", "0", "65536", "99999999999999999999"} {
		_, err := transport.ParseEndpoint("", port)
		assert.ErrorIs(t, err, domain.ErrConfiguration, "port %q", port)
	}
}

func TestEndpoint_Zero(t *testing.T) {
	var ep transport.Endpoint
	assert.True(t, ep.IsZero())
	assert.Equal(t, "<unset>", ep.String())
}
