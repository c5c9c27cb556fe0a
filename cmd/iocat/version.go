package main

import (
	"fmt"

	"github.com/spf13/cobra"

	streamio "github.com/usherasnick/Useful-Go-Gadgets/stream-io"
)

// version is replaced at link time with -ldflags "-X main.version=...".
var version = "dev"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the iocat version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "iocat %s (host io: %v)\n", version, streamio.HostIO)
		},
	}
}
