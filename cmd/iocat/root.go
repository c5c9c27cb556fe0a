package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/usherasnick/Useful-Go-Gadgets/fwriter"
	"github.com/usherasnick/Useful-Go-Gadgets/kafka"
	streamio "github.com/usherasnick/Useful-Go-Gadgets/stream-io"
	throttleio "github.com/usherasnick/Useful-Go-Gadgets/throttle-io"
)

// app holds the state shared by all subcommands of one invocation.
type app struct {
	v          *viper.Viper
	configFile string

	dialSink   func(cfg *kafka.Config) (*kafka.Sink, error)
	dialSource func(cfg *kafka.Config, partition int32, offset int64) (*kafka.Source, error)
}

func newApp() *app {
	return &app{
		v:        viper.New(),
		dialSink: kafka.NewSink,
		dialSource: func(cfg *kafka.Config, partition int32, offset int64) (*kafka.Source, error) {
			if cfg.ConsumerGroup != "" {
				return kafka.NewGroupSource(cfg, 0)
			}
			return kafka.NewPartitionSource(cfg, partition, offset)
		},
	}
}

func newRootCmd() *cobra.Command {
	return newApp().rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "iocat",
		Short: "iocat copies byte streams between files, stdio and kafka",
		Long: `iocat moves bytes from an input (a file, or stdin when no file or "-"
is given) to an output (stdout, or a file committed atomically with --output).

Settings come from flags, IOCAT_ environment variables (IOCAT_RATE,
IOCAT_KAFKA_BROKERS, ...) and an optional --config file, in that order.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.bindFlags(cmd.Root()); err != nil {
				return err
			}
			return a.loadConfig()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (yaml, json or toml)")
	pf.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	pf.Float64("rate", 0, "throttle output to this many bytes per second, 0 means unlimited")
	pf.Int64("burst", 64*1024, "largest single write while throttled")
	pf.StringP("output", "o", "", "write into this file, replaced atomically on success")
	pf.StringSlice("brokers", []string{"127.0.0.1:9092"}, "kafka brokers")
	pf.String("client-id", "iocat", "kafka client id")
	pf.String("kafka-version", "", "kafka protocol version, e.g. 2.8.0")
	pf.Bool("from-oldest", false, "consume from the oldest offset when none is given")

	root.AddCommand(
		a.takeCmd(),
		a.packCmd(),
		a.unpackCmd(),
		a.publishCmd(),
		a.consumeCmd(),
		versionCmd(),
	)
	return root
}

// openInput returns the file named by args, or stdin.
func (a *app) openInput(cmd *cobra.Command, args []string) (streamio.Reader, func(), error) {
	var in streamio.Reader
	closer := func() {}
	if len(args) == 0 || args[0] == "-" {
		in = streamio.FromReader(cmd.InOrStdin())
	} else {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, nil, fmt.Errorf("open input: %w", streamio.FromHostError(err))
		}
		in = streamio.FromReader(f)
		closer = func() { f.Close() } // nolint
	}
	if zerolog.GlobalLevel() <= zerolog.TraceLevel {
		in = streamio.TraceReader(in, log.Logger)
	}
	return in, closer, nil
}

// output is the destination of a copy command.
type output struct {
	streamio.Writer
	safe *fwriter.SafeWriter
}

// openOutput returns stdout, or a SafeWriter when --output is set, throttled
// when --rate is set.
func (a *app) openOutput(cmd *cobra.Command) (*output, error) {
	out := &output{}
	if fn := a.v.GetString(cfgKeyOutput); fn != "" {
		safe, err := fwriter.NewSafeWriter(fn)
		if err != nil {
			return nil, fmt.Errorf("open output: %w", err)
		}
		out.safe, out.Writer = safe, safe
	} else {
		out.Writer = streamio.FromWriter(cmd.OutOrStdout())
	}

	if rate := a.v.GetFloat64(cfgKeyRate); rate > 0 {
		w, err := throttleio.NewWriter(out.Writer, rate, a.v.GetInt64(cfgKeyBurst))
		if err != nil {
			out.finish(err) // nolint
			return nil, err
		}
		out.Writer = w
	}
	if zerolog.GlobalLevel() <= zerolog.TraceLevel {
		out.Writer = streamio.TraceWriter(out.Writer, log.Logger)
	}
	return out, nil
}

// finish flushes the output and commits it when err is nil, discarding it
// otherwise. It returns the first error.
func (o *output) finish(err error) error {
	if err == nil {
		err = o.Flush()
	}
	if o.safe == nil {
		return err
	}
	if err != nil {
		o.safe.Abort()
		return err
	}
	return o.safe.Commit()
}
