package streamio

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceReader(t *testing.T) {
	var out bytes.Buffer
	logger := zerolog.New(&out).Level(zerolog.DebugLevel)

	r := TraceReader(NewCursor([]byte("abcd")), logger)
	br, ok := r.(BufReader)
	require.True(t, ok)

	view, err := br.FillBuf()
	require.NoError(t, err)
	br.Consume(len(view) - 1)
	buf := make([]byte, 4)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	logs := out.String()
	assert.Contains(t, logs, `"op":"fill_buf"`)
	assert.Contains(t, logs, `"op":"consume"`)
	assert.Contains(t, logs, `"op":"read"`)
	assert.Contains(t, logs, `"want":4`)
}

func TestTraceReaderPlain(t *testing.T) {
	var out bytes.Buffer
	r := TraceReader(&chunkedReader{data: []byte("x"), chunk: 1}, zerolog.New(&out))
	_, ok := r.(BufReader)
	assert.False(t, ok)

	var got Buffer
	_, err := ReadToEnd(r, &got)
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))
	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte(`"op":"read"`)))
}

func TestTraceWriter(t *testing.T) {
	var out bytes.Buffer
	var sink Buffer
	w := TraceWriter(&sink, zerolog.New(&out).Level(zerolog.InfoLevel))
	require.NoError(t, WriteAll(w, []byte("quiet")))
	require.NoError(t, w.Flush())
	assert.Equal(t, "quiet", string(sink))
	assert.Empty(t, out.String())

	out.Reset()
	boom := NewError(Other, "broken pipe")
	w = TraceWriter(WriteFunc(func(p []byte) (int, error) { return 0, boom }), zerolog.New(&out))
	assert.Equal(t, boom, WriteAll(w, []byte("x")))
	assert.Contains(t, out.String(), `"error":"broken pipe"`)
	assert.Contains(t, out.String(), `"op":"write"`)
}
