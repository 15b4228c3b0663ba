package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/maboss"
	"github.com/aretw0/maboss/internal/cli"
	"github.com/aretw0/maboss/internal/config"
	"github.com/aretw0/maboss/internal/presentation/tui"
	"github.com/aretw0/maboss/pkg/protocol"
	"github.com/spf13/cobra"
)

// reportedError marks an error cli.Run already printed.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// newRootCmd builds the command tree. Output goes to stdout/stderr.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts cli.RunOptions
	var profilePath string

	rootCmd := &cobra.Command{
		Use:   "maboss-client [flags] BOOLEAN_NETWORK_FILE",
		Short: "Submit a Boolean network simulation to a MaBoSS server",
		Long: `maboss-client sends a Boolean network and its configuration to a MaBoSS
server and writes the simulation results next to the output prefix.

--config and --config-expr may be repeated; they are applied in the order
given on the command line. --config-vars always overrides any assignment
made by a configuration file or expression.`,
		Version:       maboss.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.NetworkFile = args[0]
			}

			path, required := profilePath, cmd.Flags().Changed("profile")
			if !required {
				path = config.DefaultPath()
			}
			profile, err := config.Load(path, required)
			if err != nil {
				tui.NewPrinter(stdout, stderr).Error(err)
				return reportedError{err}
			}
			opts.ApplyProfile(profile, cmd.Flags().Changed)

			if err := cli.Run(cmd.Context(), opts, stdout, stderr); err != nil {
				return reportedError{err}
			}
			return nil
		},
	}

	files, exprs := cli.ConfigFlags(&opts.Configs)
	flags := rootCmd.Flags()
	flags.StringVar(&opts.Host, "host", "localhost", "reach the server on `HOST`")
	flags.StringVar(&opts.Port, "port", "", "server TCP `PORT`, or the path of a unix socket")
	flags.VarP(files, "config", "c", "use a configuration file (repeatable)")
	flags.VarP(exprs, "config-expr", "e", "evaluate a configuration expression (repeatable)")
	flags.StringArrayVarP(&opts.ConfigVars, "config-vars", "v", nil, "set variables, `VAR=NUMERIC[,VAR2=...]` (repeatable)")
	flags.StringVarP(&opts.Output, "output", "o", "", "`PREFIX` for output files; required to run a simulation")
	flags.BoolVar(&opts.Check, "check", false, "check network and configuration files only")
	flags.BoolVar(&opts.Override, "override", false, "a new node definition overrides a previous one")
	flags.BoolVar(&opts.Augment, "augment", false, "a new node definition completes a previous one")
	flags.BoolVar(&opts.HexFloat, "hexfloat", false, "print doubles in hexadecimal format")
	flags.BoolVar(&opts.Verbose, "verbose", false, "log the exchange")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.DurationVar(&opts.Timeout, "timeout", 0, "abort the exchange after this long (0 waits forever)")
	flags.StringVar(&profilePath, "profile", "", "YAML profile with default options (default $HOME/"+config.DefaultFileName+")")
	flags.StringVar(&opts.RedisURL, "redis", "", "store artifacts in Redis at this `URL` instead of files")
	flags.StringVar(&opts.MetricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	rootCmd.MarkFlagsMutuallyExclusive("override", "augment")

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetVersionTemplate(fmt.Sprintf("maboss-client version {{.Version}} (protocol %s)\n", protocol.Version))
	rootCmd.AddCommand(newVersionCmd(stdout))
	return rootCmd
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	return execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	sc := cli.NewSignalContext(ctx)
	defer sc.Stop()

	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(sc)
	if err == nil {
		return cli.ExitOK
	}

	var reported reportedError
	if errors.As(err, &reported) {
		return cli.ExitCode(reported.err)
	}
	// Cobra usage errors: unknown flag, too many arguments...
	tui.NewPrinter(stdout, stderr).Error(err)
	fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", rootCmd.CommandPath())
	return cli.ExitConfiguration
}
