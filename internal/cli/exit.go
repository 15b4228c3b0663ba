package cli

import (
	"context"
	"errors"

	"github.com/aretw0/maboss/pkg/domain"
)

// Process exit codes.
const (
	ExitOK            = 0
	ExitApplication   = 1 // Server reported a non-zero status, or an unclassified failure
	ExitConfiguration = 2
	ExitConnection    = 3
	ExitProtocol      = 4
	ExitInterrupted   = 130
)

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	if err != nil && errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	switch domain.KindOf(err) {
	case domain.KindNone:
		return ExitOK
	case domain.KindConfiguration:
		return ExitConfiguration
	case domain.KindConnection:
		return ExitConnection
	case domain.KindProtocol:
		return ExitProtocol
	default:
		return ExitApplication
	}
}
