package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/aretw0/maboss/internal/cli"
	"github.com/aretw0/maboss/internal/testutils"
	"github.com/aretw0/maboss/pkg/domain"
	"github.com/aretw0/maboss/pkg/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingServer starts a loopback server that records every request.
func recordingServer(t *testing.T, reply *domain.Reply) (string, <-chan *domain.Request) {
	t.Helper()
	reqs := make(chan *domain.Request, 4)
	port := testutils.StartTCPServer(t, server.HandlerFunc(func(ctx context.Context, req *domain.Request) *domain.Reply {
		reqs <- req
		return reply
	}))
	return strconv.Itoa(port), reqs
}

func setup(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	testutils.WriteFile(t, dir, "model.bnd", "A -> B;")
	testutils.WriteFile(t, dir, "a.cfg", "$a=1;")
	testutils.WriteFile(t, dir, "b.cfg", "$b=1;")
	return dir
}

func TestExecute_InterleavedConfigs(t *testing.T) {
	dir := setup(t)
	var arts domain.Artifacts
	arts[domain.ArtifactFixedPoints] = "FP\n"
	ok, err := domain.NewReply(arts, 0, "")
	require.NoError(t, err)
	port, reqs := recordingServer(t, ok)

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), []string{
		"--host", "127.0.0.1", "--port", port,
		"-c", filepath.Join(dir, "a.cfg"),
		"-e", "$x=2;",
		"--config", filepath.Join(dir, "b.cfg"),
		"-v", "$ka=1", "--config-vars", "$kb=2",
		"--hexfloat", "--augment",
		"-o", filepath.Join(dir, "out", "run"),
		filepath.Join(dir, "model.bnd"),
	}, &stdout, &stderr)
	require.Equal(t, cli.ExitOK, code, stderr.String())

	req := <-reqs
	assert.Equal(t, "A -> B;", req.Network())
	assert.Equal(t, []domain.ConfigFragment{
		domain.NewFileFragment("$a=1;"),
		domain.NewExprFragment("$x=2;"),
		domain.NewFileFragment("$b=1;"),
	}, req.Fragments())
	assert.Equal(t, "$ka=1,$kb=2", req.ConfigVars())
	assert.Equal(t, "HEXFLOAT|AUGMENT", req.Flags().String())

	data, err := os.ReadFile(filepath.Join(dir, "out", "run_fp.csv"))
	require.NoError(t, err)
	assert.Equal(t, "FP\n", string(data))
}

func TestExecute_ApplicationError(t *testing.T) {
	dir := setup(t)
	port, _ := recordingServer(t, domain.NewErrorReply(1, "unknown node C"))

	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), []string{
		"--host", "127.0.0.1", "--port", port,
		"-o", filepath.Join(dir, "run"),
		filepath.Join(dir, "model.bnd"),
	}, &stdout, &stderr)

	assert.Equal(t, cli.ExitApplication, code)
	assert.Equal(t, "maboss-client error: [unknown node C] [status=1]\n", stderr.String())
	_, err := os.Stat(filepath.Join(dir, "run_probtraj.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestExecute_OverrideAndAugmentAreExclusive(t *testing.T) {
	dir := setup(t)
	var stderr bytes.Buffer
	code := execute(context.Background(), []string{
		"--port", "7777", "--override", "--augment", "-o", "x", filepath.Join(dir, "model.bnd"),
	}, &bytes.Buffer{}, &stderr)

	assert.Equal(t, cli.ExitConfiguration, code)
	assert.Contains(t, stderr.String(), "override")
}

func TestExecute_UsageErrors(t *testing.T) {
	setup(t)
	cases := map[string][]string{
		"unknown flag":      {"--bogus"},
		"two network files": {"--port", "1", "a.bnd", "b.bnd"},
		"missing network":   {"--port", "7777", "-o", "x"},
		"missing port":      {"-o", "x", "model.bnd"},
		"missing output":    {"--port", "7777", "model.bnd"},
		"bad timeout":       {"--timeout", "soon", "model.bnd"},
		"missing profile":   {"--profile", "/nonexistent/profile.yaml", "--port", "1", "-o", "x", "m.bnd"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			code := execute(context.Background(), args, &bytes.Buffer{}, &bytes.Buffer{})
			assert.Equal(t, cli.ExitConfiguration, code)
		})
	}
}

func TestExecute_ProfileSuppliesEndpoint(t *testing.T) {
	dir := setup(t)
	var arts domain.Artifacts
	arts[domain.ArtifactStatDist] = "S\n"
	ok, err := domain.NewReply(arts, 0, "")
	require.NoError(t, err)
	port, reqs := recordingServer(t, ok)

	profile := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(profile, []byte(
		"host: 127.0.0.1\nport: "+port+"\noutput: "+filepath.Join(dir, "prof")+"\nconfig_vars: [\"$p=1\"]\n"), 0o644))

	var stderr bytes.Buffer
	code := execute(context.Background(), []string{
		"--profile", profile,
		"-o", filepath.Join(dir, "flag"),
		filepath.Join(dir, "model.bnd"),
	}, &bytes.Buffer{}, &stderr)
	require.Equal(t, cli.ExitOK, code, stderr.String())

	req := <-reqs
	assert.Equal(t, "$p=1", req.ConfigVars())
	assert.FileExists(t, filepath.Join(dir, "flag_statdist.csv"), "the -o flag beats the profile")
	assert.NoFileExists(t, filepath.Join(dir, "prof_statdist.csv"))
}

func TestExecute_Version(t *testing.T) {
	for _, args := range [][]string{{"--version"}, {"version"}} {
		var stdout bytes.Buffer
		code := execute(context.Background(), args, &stdout, &bytes.Buffer{})
		assert.Equal(t, cli.ExitOK, code)
		assert.Contains(t, stdout.String(), "maboss-client version ")
		assert.Contains(t, stdout.String(), "(protocol MaBoSS-2.0)")
	}
}
