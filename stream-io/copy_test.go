package streamio

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopy(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789"), 2000)
	src := &chunkedReader{data: data, chunk: 777, errs: []error{ErrInterrupted}}
	dst := &limitedWriter{max: 500}

	n, err := Copy(dst, src)
	require.NoError(t, err)
	assert.Equal(t, uint64(len(data)), n)
	assert.Equal(t, data, dst.Bytes())
}

func TestCopyStopsOnError(t *testing.T) {
	boom := NewError(Other, "read failed")
	src := &chunkedReader{data: []byte("abc"), chunk: 3}
	calls := 0
	failing := ReadFunc(func(p []byte) (int, error) {
		calls++
		if calls > 1 {
			return 0, boom
		}
		return src.Read(p)
	})

	var dst Buffer
	n, err := Copy(&dst, failing)
	assert.Equal(t, boom, err)
	assert.Equal(t, uint64(3), n)
	assert.Equal(t, "abc", string(dst))
}

func TestCopyWriteZero(t *testing.T) {
	dst := &limitedWriter{max: 0}
	_, err := Copy(dst, NewCursor([]byte("abc")))
	assert.Equal(t, ErrWriteZero, err)
}

func TestReadToEnd(t *testing.T) {
	var dst Buffer
	dst = append(dst, 'x')
	n, err := ReadToEnd(&chunkedReader{data: []byte("yz"), chunk: 1, errs: []error{ErrInterrupted}}, &dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "xyz", string(dst))
}

func TestByteReaderUvarint(t *testing.T) {
	var raw [binary.MaxVarintLen64]byte
	size := binary.PutUvarint(raw[:], 300)

	c := NewCursor(raw[:size])
	v, err := binary.ReadUvarint(NewByteReader(c))
	require.NoError(t, err)
	assert.Equal(t, uint64(300), v)

	_, err = binary.ReadUvarint(NewByteReader(c))
	assert.Equal(t, io.EOF, err)

	_, err = binary.ReadUvarint(NewByteReader(NewCursor(raw[:1])))
	assert.Equal(t, io.ErrUnexpectedEOF, err)
}
