package cli_test

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/aretw0/maboss/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalContext_CapturesSignal(t *testing.T) {
	sc := cli.NewSignalContext(context.Background())
	defer sc.Stop()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))

	select {
	case <-sc.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context not cancelled by SIGTERM")
	}
	assert.Equal(t, syscall.SIGTERM, sc.Signal())
}

func TestSignalContext_StopWithoutSignal(t *testing.T) {
	sc := cli.NewSignalContext(context.Background())
	sc.Stop()

	<-sc.Done()
	assert.Nil(t, sc.Signal())
}
