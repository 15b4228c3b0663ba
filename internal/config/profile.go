package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/maboss/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the home directory when no profile is given.
const DefaultFileName = ".maboss-client.yaml"

// Profile holds defaults for command-line options. Flags always win.
type Profile struct {
	Host        string        `yaml:"host" mapstructure:"host"`
	Port        string        `yaml:"port" mapstructure:"port"`
	Output      string        `yaml:"output" mapstructure:"output"`
	Verbose     bool          `yaml:"verbose" mapstructure:"verbose"`
	HexFloat    bool          `yaml:"hexfloat" mapstructure:"hexfloat"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
	ConfigVars  []string      `yaml:"config_vars" mapstructure:"config_vars"`
	MetricsFile string        `yaml:"metrics_file" mapstructure:"metrics_file"`
	Redis       RedisProfile  `yaml:"redis" mapstructure:"redis"`
}

// RedisProfile configures the optional Redis artifact sink.
type RedisProfile struct {
	URL    string        `yaml:"url" mapstructure:"url"`
	Prefix string        `yaml:"prefix" mapstructure:"prefix"`
	TTL    time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// DefaultPath returns $HOME/.maboss-client.yaml, or "" when HOME is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultFileName)
}

// Load reads a YAML profile.
// A missing file yields an empty profile unless required is set, since the
// default location is optional but an explicit --profile is not.
func Load(path string, required bool) (Profile, error) {
	var p Profile
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return p, nil
		}
		return p, &domain.ConfigurationError{Key: "profile", Reason: err.Error()}
	}

	// YAML first into a generic map so mapstructure can apply the
	// duration and list hooks uniformly.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return p, &domain.ConfigurationError{Key: "profile", Reason: fmt.Sprintf("failed to parse %s: %v", path, err)}
	}
	if err := Decode(raw, &p); err != nil {
		return p, &domain.ConfigurationError{Key: "profile", Reason: fmt.Sprintf("invalid %s: %v", path, err)}
	}
	return p, nil
}

// Decode maps a generic document onto out. Unknown keys are rejected.
func Decode(raw map[string]any, out *Profile) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}
