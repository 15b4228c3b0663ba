package cli

import (
	"github.com/aretw0/maboss/pkg/domain"
	"github.com/aretw0/maboss/pkg/ports"
)

// BuildRequest assembles the request described by opts.
// Option conflicts are reported before any file is read.
func BuildRequest(opts RunOptions, reader ports.SourceReader) (*domain.Request, error) {
	var flags domain.Flags
	var err error
	if opts.HexFloat {
		flags, _ = flags.With(domain.FlagHexFloat)
	}
	if opts.Override {
		flags, _ = flags.With(domain.FlagOverride)
	}
	if opts.Augment {
		if flags, err = flags.With(domain.FlagAugment); err != nil {
			return nil, &domain.ConfigurationError{Key: "augment", Reason: "--override and --augment are exclusive options"}
		}
	}

	if opts.NetworkFile == "" {
		return nil, &domain.ConfigurationError{Key: "network", Reason: "boolean network file is missing"}
	}
	if !opts.Check && opts.Output == "" {
		return nil, &domain.ConfigurationError{Key: "output", Reason: "output prefix is required to run a simulation"}
	}

	req := domain.NewRequest()
	if opts.Check {
		req.SetCommand(domain.CommandCheck)
	}
	if err := req.SetFlags(flags); err != nil {
		return nil, err
	}

	network, err := reader.ReadFile(opts.NetworkFile)
	if err != nil {
		return nil, &domain.ConfigurationError{Key: "network", Reason: err.Error()}
	}
	req.SetNetwork(network)

	for _, c := range opts.Configs {
		if c.Expr {
			req.AddConfigExpr(c.Value)
			continue
		}
		text, err := reader.ReadFile(c.Value)
		if err != nil {
			return nil, &domain.ConfigurationError{Key: "config", Reason: err.Error()}
		}
		req.AddConfig(text)
	}

	for _, vars := range opts.ConfigVars {
		req.AppendConfigVars(vars)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}
