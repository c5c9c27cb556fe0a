package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/usherasnick/Useful-Go-Gadgets/kafka"
	streamio "github.com/usherasnick/Useful-Go-Gadgets/stream-io"
)

var errNoTopic = errors.New("no topic given, use --topic")

func (a *app) publishCmd() *cobra.Command {
	var (
		topic       string
		createTopic bool
	)
	cmd := &cobra.Command{
		Use:   "publish --topic T [file]",
		Short: "Send the whole input to kafka as one message",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if topic == "" {
				return errNoTopic
			}
			cfg := a.kafkaConfig(topic)

			if createTopic {
				admin, err := kafka.NewAdmin(cfg)
				if err != nil {
					return fmt.Errorf("connect kafka admin: %w", err)
				}
				err = admin.CreateTopic(topic)
				admin.Close()
				if err != nil {
					return fmt.Errorf("create topic %s: %w", topic, err)
				}
			}

			in, closeIn, err := a.openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closeIn()

			sink, err := a.dialSink(cfg)
			if err != nil {
				return fmt.Errorf("connect kafka: %w", err)
			}
			defer sink.Close() // nolint

			n, err := streamio.Copy(sink, in)
			if err != nil {
				return err
			}
			if err = sink.Flush(); err != nil {
				return fmt.Errorf("publish to %s: %w", topic, err)
			}
			log.Info().Str("topic", topic).Uint64("bytes", n).Msg("published")
			return nil
		},
	}
	cmd.Flags().StringVar(&topic, "topic", "", "kafka topic")
	cmd.Flags().String("key", "", "message key, a new UUID when empty")
	cmd.Flags().BoolVar(&createTopic, "create-topic", false, "create the topic first when it does not exist")
	a.v.BindPFlag(cfgKeyKey, cmd.Flags().Lookup("key")) // nolint
	return cmd
}
