package tui_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/aretw0/maboss/internal/presentation/tui"
	"github.com/aretw0/maboss/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter_ApplicationError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	p := tui.NewPrinter(&stdout, &stderr)

	reply := domain.NewErrorReply(1, "unknown node C")
	p.Error(reply.Err())

	assert.Equal(t, "maboss-client error: [unknown node C] [status=1]\n", stderr.String())
	assert.Empty(t, stdout.String())
}

func TestPrinter_OtherErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	p := tui.NewPrinter(&stdout, &stderr)

	p.Error(errors.New("boom"))
	p.Error(nil)
	p.Warn("metrics file %s not written", "x.prom")

	assert.Equal(t, "maboss-client: boom\nmaboss-client: metrics file x.prom not written\n", stderr.String())
}

func TestPrinter_ReportPlainWhenNotTerminal(t *testing.T) {
	var stdout, stderr bytes.Buffer
	p := tui.NewPrinter(&stdout, &stderr)

	err := p.Report(domain.CommandRun, "tcp://localhost:7777", []tui.ArtifactEntry{
		{Kind: domain.ArtifactProbTraj, Name: "out/run_probtraj.csv", Size: 13},
	})
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "RUN OK (tcp://localhost:7777)\n")
	assert.Contains(t, out, "| probtraj | `out/run_probtraj.csv` | 13 |\n")
	assert.NotContains(t, out, "\x1b[", "no escape sequences on a pipe")
}

func TestPrinter_ReportWithoutArtifacts(t *testing.T) {
	var stdout bytes.Buffer
	p := tui.NewPrinter(&stdout, &bytes.Buffer{})

	require.NoError(t, p.Report(domain.CommandCheck, "unix:///tmp/maboss.sock", nil))
	assert.Equal(t, "CHECK OK (unix:///tmp/maboss.sock)\n", stdout.String())
}

func TestIsTerminal_Buffer(t *testing.T) {
	_, ok := tui.IsTerminal(&bytes.Buffer{})
	assert.False(t, ok)
}

func TestArtifactTable(t *testing.T) {
	md := tui.ArtifactTable([]tui.ArtifactEntry{
		{Kind: domain.ArtifactTraj, Name: "a_traj.txt", Size: 1},
		{Kind: domain.ArtifactFixedPoints, Name: "a_fp.csv", Size: 2},
	})
	assert.Equal(t,
		"| Artifact | Location | Bytes |\n|---|---|---:|\n| traj | `a_traj.txt` | 1 |\n| fixed_points | `a_fp.csv` | 2 |\n",
		md)
}
