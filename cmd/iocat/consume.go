package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	streamio "github.com/usherasnick/Useful-Go-Gadgets/stream-io"
)

func (a *app) consumeCmd() *cobra.Command {
	var (
		topic     string
		partition int32
		offset    int64
		limit     uint64
	)
	cmd := &cobra.Command{
		Use:   "consume --topic T",
		Short: "Write the values of kafka messages to the output",
		Long: `consume concatenates the values of the messages of one partition, or of
the partitions assigned to --group, until --limit bytes were written or the
command is interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if topic == "" {
				return errNoTopic
			}
			src, err := a.dialSource(a.kafkaConfig(topic), partition, offset)
			if err != nil {
				return fmt.Errorf("connect kafka: %w", err)
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			done := make(chan struct{})
			defer close(done)
			go func() {
				select {
				case <-sigCh:
					log.Info().Msg("interrupted, stop consuming")
					src.Close() // nolint
				case <-done:
				}
			}()

			out, err := a.openOutput(cmd)
			if err != nil {
				src.Close() // nolint
				return err
			}
			var in streamio.Reader = src
			if limit > 0 {
				in = streamio.NewTake(src, limit)
			}
			n, err := streamio.Copy(out, in)
			if cerr := src.Close(); err == nil && cerr != nil {
				err = cerr
			}
			log.Debug().Uint64("bytes", n).Msg("consume done")
			return out.finish(err)
		},
	}
	cmd.Flags().StringVar(&topic, "topic", "", "kafka topic")
	cmd.Flags().Int32Var(&partition, "partition", 0, "partition to read")
	cmd.Flags().Int64Var(&offset, "offset", -1, "first offset, negative for the oldest or newest per --from-oldest")
	cmd.Flags().String("group", "", "consume as this consumer group instead of a single partition")
	cmd.Flags().Uint64Var(&limit, "limit", 0, "stop after this many bytes, 0 means until interrupted")
	a.v.BindPFlag(cfgKeyGroup, cmd.Flags().Lookup("group")) // nolint
	return cmd
}
