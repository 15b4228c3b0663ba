package main

import (
	"fmt"
	"io"

	"github.com/aretw0/maboss"
	"github.com/aretw0/maboss/pkg/protocol"
	"github.com/spf13/cobra"
)

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of maboss-client",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "maboss-client version %s (protocol %s)\n", maboss.Version, protocol.Version)
		},
	}
}
