//go:build !bareio
// +build !bareio

package streamio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHostError(t *testing.T) {
	tests := []struct {
		in   error
		kind ErrorKind
	}{
		{syscall.EINTR, Interrupted},
		{&os.PathError{Op: "read", Path: "/dev/x", Err: syscall.EINTR}, Interrupted},
		{io.ErrUnexpectedEOF, UnexpectedEOF},
		{fmt.Errorf("header: %w", io.ErrUnexpectedEOF), UnexpectedEOF},
		{io.ErrShortWrite, WriteZero},
		{os.ErrInvalid, InvalidInput},
		{syscall.EINVAL, InvalidInput},
		{errors.New("something odd"), Other},
	}
	for _, tt := range tests {
		err := FromHostError(tt.in)
		assert.Equal(t, tt.kind, KindOf(err), "%v", tt.in)
		assert.True(t, errors.Is(err, tt.in), "%v", tt.in)
	}

	assert.NoError(t, FromHostError(nil))
	custom := NewError(InvalidData, "bad")
	assert.Equal(t, error(custom), FromHostError(custom))
}

func TestFromReaderMapsEOF(t *testing.T) {
	r := FromReader(iotest.DataErrReader(strings.NewReader("abc")))
	var got Buffer
	n, err := ReadToEnd(r, &got)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "abc", string(got))

	err = ReadExact(FromReader(strings.NewReader("ab")), make([]byte, 3))
	assert.Equal(t, ErrUnexpectedEOF, err)
}

func TestFromReaderClassifiesErrors(t *testing.T) {
	r := FromReader(iotest.ErrReader(syscall.EINVAL))
	_, err := r.Read(make([]byte, 1))
	assert.Equal(t, InvalidInput, KindOf(err))
}

type emptyReader struct{ calls int }

func (e *emptyReader) Read(p []byte) (int, error) {
	e.calls++
	return 0, nil
}

func TestFromReaderGivesUpOnNoProgress(t *testing.T) {
	inner := &emptyReader{}
	_, err := FromReader(inner).Read(make([]byte, 1))
	assert.Equal(t, Other, KindOf(err))
	assert.True(t, errors.Is(err, io.ErrNoProgress))
	assert.Equal(t, maxConsecutiveEmptyReads, inner.calls)
}

func TestFromWriterFlushes(t *testing.T) {
	var out bytes.Buffer
	bw := bufio.NewWriter(&out)
	w := FromWriter(bw)
	require.NoError(t, WriteAll(w, []byte("buffered")))
	assert.Equal(t, 0, out.Len())
	require.NoError(t, w.Flush())
	assert.Equal(t, "buffered", out.String())

	assert.NoError(t, FromWriter(&out).Flush())
}

func TestFromWriterSyncs(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "streamio")
	require.NoError(t, err)
	defer f.Close()

	w := FromWriter(f)
	require.NoError(t, WriteAll(w, []byte("synced")))
	require.NoError(t, w.Flush())

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Equal(t, "synced", string(data))
}

func TestAsReader(t *testing.T) {
	data, err := io.ReadAll(AsReader(NewCursor([]byte("hello"))))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	r := AsReader(ReadFunc(func(p []byte) (int, error) { return 0, ErrUnexpectedEOF }))
	_, err = r.Read(make([]byte, 1))
	assert.Equal(t, io.ErrUnexpectedEOF, err)

	require.NoError(t, iotest.TestReader(AsReader(NewCursor([]byte("iotest payload"))), []byte("iotest payload")))
}

func TestAsWriter(t *testing.T) {
	lw := &limitedWriter{max: 3}
	n, err := io.WriteString(AsWriter(lw), "partial writes")
	require.NoError(t, err)
	assert.Equal(t, 14, n)
	assert.Equal(t, "partial writes", string(lw.Bytes()))

	n, err = AsWriter(&limitedWriter{max: 0}).Write([]byte("x"))
	assert.Equal(t, 0, n)
	assert.Equal(t, io.ErrShortWrite, err)

	_, err = AsWriter(&limitedWriter{errs: []error{ErrWriteZero}}).Write([]byte("x"))
	assert.Equal(t, io.ErrShortWrite, err)
}

func TestBridgeDoesNotStack(t *testing.T) {
	sr := strings.NewReader("x")
	assert.Equal(t, io.Reader(sr), AsReader(FromReader(sr)))

	c := NewCursor(nil)
	assert.Equal(t, Reader(c), FromReader(AsReader(c)))

	var out bytes.Buffer
	assert.Equal(t, io.Writer(&out), AsWriter(FromWriter(&out)))

	b := &Buffer{}
	assert.Equal(t, Writer(b), FromWriter(AsWriter(b)))
}
