package cli_test

import (
	"testing"
	"time"

	"github.com/aretw0/maboss/internal/cli"
	"github.com/aretw0/maboss/internal/config"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFlags_PreserveInterleavedOrder(t *testing.T) {
	var configs []cli.ConfigSource
	files, exprs := cli.ConfigFlags(&configs)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.VarP(files, "config", "c", "")
	fs.VarP(exprs, "config-expr", "e", "")

	require.NoError(t, fs.Parse([]string{"-c", "a.cfg", "--config-expr=$x=1;", "-cb.cfg", "-e", "$y=2;"}))
	assert.Equal(t, []cli.ConfigSource{
		{Value: "a.cfg"},
		{Value: "$x=1;", Expr: true},
		{Value: "b.cfg"},
		{Value: "$y=2;", Expr: true},
	}, configs)
	assert.Equal(t, "[a.cfg,b.cfg]", files.String())
	assert.Equal(t, "expr", exprs.Type())
}

func TestApplyProfile_FlagsWin(t *testing.T) {
	profile := config.Profile{
		Host:       "sim.example.org",
		Port:       "7777",
		Output:     "profile/run",
		Verbose:    true,
		Timeout:    time.Minute,
		ConfigVars: []string{"$a=1"},
		Redis:      config.RedisProfile{Prefix: "lab:", TTL: time.Hour},
	}
	opts := cli.RunOptions{Port: "8888", ConfigVars: []string{"$b=2"}}
	changed := map[string]bool{"port": true, "config-vars": true}

	opts.ApplyProfile(profile, func(flag string) bool { return changed[flag] })

	assert.Equal(t, "sim.example.org", opts.Host)
	assert.Equal(t, "8888", opts.Port)
	assert.Equal(t, "profile/run", opts.Output)
	assert.True(t, opts.Verbose)
	assert.Equal(t, time.Minute, opts.Timeout)
	assert.Equal(t, []string{"$b=2"}, opts.ConfigVars)
	assert.Equal(t, "lab:", opts.RedisPrefix)
	assert.Equal(t, time.Hour, opts.RedisTTL)
}

func TestApplyProfile_EmptyProfileKeepsDefaults(t *testing.T) {
	opts := cli.RunOptions{Host: "localhost"}
	opts.ApplyProfile(config.Profile{}, func(string) bool { return false })
	assert.Equal(t, cli.RunOptions{Host: "localhost"}, opts)
}
