package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	streamio "github.com/usherasnick/Useful-Go-Gadgets/stream-io"
)

func (a *app) takeCmd() *cobra.Command {
	var limit uint64
	cmd := &cobra.Command{
		Use:   "take [file]",
		Short: "Copy at most --limit bytes of the input",
		Example: `  iocat take --limit 512 /dev/urandom > seed.bin
  head -c 1M big.log | iocat take --limit 100`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeIn, err := a.openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closeIn()

			out, err := a.openOutput(cmd)
			if err != nil {
				return err
			}
			n, err := streamio.Copy(out, streamio.NewTake(in, limit))
			log.Debug().Uint64("bytes", n).Uint64("limit", limit).Msg("take done")
			return out.finish(err)
		},
	}
	cmd.Flags().Uint64Var(&limit, "limit", 0, "number of bytes to copy")
	cmd.MarkFlagRequired("limit") // nolint
	return cmd
}
