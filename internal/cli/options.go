package cli

import (
	"strings"
	"time"

	"github.com/aretw0/maboss/internal/config"
	"github.com/spf13/pflag"
)

// ConfigSource is one -c or -e occurrence.
type ConfigSource struct {
	Value string // File path, or the expression itself when Expr is set
	Expr  bool
}

// RunOptions contains all the configuration for one client invocation.
type RunOptions struct {
	Host        string
	Port        string
	NetworkFile string
	Configs     []ConfigSource // Command-line order is significant
	ConfigVars  []string
	Output      string

	Check    bool
	Override bool
	Augment  bool
	HexFloat bool

	Verbose bool
	Debug   bool
	Timeout time.Duration

	RedisURL    string
	RedisPrefix string
	RedisTTL    time.Duration
	MetricsFile string
}

// ApplyProfile fills every option the user did not set explicitly from p.
// changed reports whether a flag was given on the command line.
func (o *RunOptions) ApplyProfile(p config.Profile, changed func(flag string) bool) {
	str := func(flag string, dst *string, v string) {
		if !changed(flag) && v != "" {
			*dst = v
		}
	}
	str("host", &o.Host, p.Host)
	str("port", &o.Port, p.Port)
	str("output", &o.Output, p.Output)
	str("redis", &o.RedisURL, p.Redis.URL)
	str("metrics-file", &o.MetricsFile, p.MetricsFile)

	if !changed("verbose") && p.Verbose {
		o.Verbose = true
	}
	if !changed("hexfloat") && p.HexFloat {
		o.HexFloat = true
	}
	if !changed("timeout") && p.Timeout > 0 {
		o.Timeout = p.Timeout
	}
	if !changed("config-vars") && len(p.ConfigVars) > 0 {
		o.ConfigVars = append([]string(nil), p.ConfigVars...)
	}

	// Profile only.
	if o.RedisPrefix == "" {
		o.RedisPrefix = p.Redis.Prefix
	}
	if o.RedisTTL == 0 {
		o.RedisTTL = p.Redis.TTL
	}
}

// configFlag is a pflag.Value appending to a slice shared by -c and -e, so
// the relative order of the two flags survives parsing.
type configFlag struct {
	dst  *[]ConfigSource
	expr bool
}

// ConfigFlags returns the values to register for --config and --config-expr.
func ConfigFlags(dst *[]ConfigSource) (files, exprs pflag.Value) {
	return &configFlag{dst: dst}, &configFlag{dst: dst, expr: true}
}

func (f *configFlag) Set(v string) error {
	*f.dst = append(*f.dst, ConfigSource{Value: v, Expr: f.expr})
	return nil
}

func (f *configFlag) String() string {
	var vals []string
	for _, c := range *f.dst {
		if c.Expr == f.expr {
			vals = append(vals, c.Value)
		}
	}
	return "[" + strings.Join(vals, ",") + "]"
}

func (f *configFlag) Type() string {
	if f.expr {
		return "expr"
	}
	return "file"
}
