package cli_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/maboss/internal/cli"
	"github.com/aretw0/maboss/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, cli.ExitOK},
		{"application", &domain.ApplicationError{Status: 3, Message: "bad"}, cli.ExitApplication},
		{"configuration", &domain.ConfigurationError{Key: "port", Reason: "missing"}, cli.ExitConfiguration},
		{"connection", &domain.ConnectionError{Op: "dial", Err: errors.New("refused")}, cli.ExitConnection},
		{"protocol", &domain.ProtocolError{Reason: "bad header"}, cli.ExitProtocol},
		{"wrapped protocol", fmt.Errorf("exchange: %w", &domain.ProtocolError{Reason: "x"}), cli.ExitProtocol},
		{"unclassified", errors.New("disk full"), cli.ExitApplication},
		{"interrupted", &domain.ConnectionError{Op: "read", Err: context.Canceled}, cli.ExitInterrupted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cli.ExitCode(tc.err))
		})
	}
}
