package streamio

import (
	"github.com/rs/zerolog"
)

// tracedReader logs every Read of the wrapped reader.
type tracedReader struct {
	r   Reader
	log zerolog.Logger
}

// TraceReader wraps r so that each Read is logged at debug level. If r is a
// BufReader the result is one too.
func TraceReader(r Reader, logger zerolog.Logger) Reader {
	t := tracedReader{r: r, log: logger}
	if br, ok := r.(BufReader); ok {
		return &tracedBufReader{tracedReader: t, br: br}
	}
	return &t
}

func (t *tracedReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	t.log.Debug().Str("op", "read").Int("want", len(p)).Int("n", n).Err(err).Msg("streamio")
	return n, err
}

type tracedBufReader struct {
	tracedReader
	br BufReader
}

func (t *tracedBufReader) FillBuf() ([]byte, error) {
	buf, err := t.br.FillBuf()
	t.log.Debug().Str("op", "fill_buf").Int("n", len(buf)).Err(err).Msg("streamio")
	return buf, err
}

func (t *tracedBufReader) Consume(n int) {
	t.log.Debug().Str("op", "consume").Int("n", n).Msg("streamio")
	t.br.Consume(n)
}

// tracedWriter logs every Write and Flush of the wrapped writer.
type tracedWriter struct {
	w   Writer
	log zerolog.Logger
}

// TraceWriter wraps w so that each Write and Flush is logged at debug level.
func TraceWriter(w Writer, logger zerolog.Logger) Writer {
	return &tracedWriter{w: w, log: logger}
}

func (t *tracedWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	t.log.Debug().Str("op", "write").Int("want", len(p)).Int("n", n).Err(err).Msg("streamio")
	return n, err
}

func (t *tracedWriter) Flush() error {
	err := t.w.Flush()
	t.log.Debug().Str("op", "flush").Err(err).Msg("streamio")
	return err
}
