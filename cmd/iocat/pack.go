package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/usherasnick/Useful-Go-Gadgets/compress"
	streamio "github.com/usherasnick/Useful-Go-Gadgets/stream-io"
)

func (a *app) packCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pack [file]",
		Short: "Compress the input into snappy frames",
		Args:  cobra.MaximumNArgs(1),
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
			zw := compress.NewWriter(out)
			n, err := streamio.Copy(zw, in)
			if err == nil {
				err = zw.Flush()
			}
			log.Debug().Uint64("bytes", n).Msg("pack done")
			return out.finish(err)
		},
	}
}

func (a *app) unpackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unpack [file]",
		Short: "Decompress snappy frames written by pack",
		Args:  cobra.MaximumNArgs(1),
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
			n, err := streamio.Copy(out, compress.NewReader(in))
			log.Debug().Uint64("bytes", n).Msg("unpack done")
			return out.finish(err)
		},
	}
}
