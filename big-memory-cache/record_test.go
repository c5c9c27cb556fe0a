package bigmemcache

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	streamio "github.com/usherasnick/Useful-Go-Gadgets/stream-io"
)

func encode(t *testing.T, rec *Record) []byte {
	var buf streamio.Buffer
	require.NoError(t, EncodeRecord(&buf, rec))
	return buf.Bytes()
}

func TestRecordLayout(t *testing.T) {
	raw := encode(t, &Record{Key: "ab", Version: 7, Payload: []byte{1, 2, 3}, CreatedTime: 9})

	want := []byte{
		27, 0, 0, 0, // totalLen
		7, 0, 0, 0, // version
		2, 0, 'a', 'b',
		3, 0, 0, 0, 1, 2, 3,
		9, 0, 0, 0, 0, 0, 0, 0,
	}
	assert.Equal(t, want, raw)
}

func TestDecodeRecord(t *testing.T) {
	recs := []*Record{
		{Key: "", Payload: []byte{}},
		{Key: "k", Version: -5, Payload: []byte("payload"), CreatedTime: -1},
		{Key: strings.Repeat("x", 300), Payload: make([]byte, 70000), CreatedTime: 1 << 40},
	}

	var stream streamio.Buffer
	for _, rec := range recs {
		require.NoError(t, EncodeRecord(&stream, rec))
	}

	c := streamio.NewCursor(stream.Bytes())
	for _, rec := range recs {
		got, err := DecodeRecord(c)
		require.NoError(t, err)
		assert.Equal(t, rec, got)
	}
	assert.True(t, c.IsEmpty())
}

func TestDecodeRecordTruncated(t *testing.T) {
	raw := encode(t, &Record{Key: "key", Payload: []byte("payload"), CreatedTime: 1})
	for cut := 0; cut < len(raw); cut++ {
		_, err := DecodeRecord(streamio.NewCursor(raw[:cut]))
		assert.Equal(t, streamio.UnexpectedEOF, streamio.KindOf(err), "cut at %d", cut)
	}
}

func TestDecodeRecordInconsistentLength(t *testing.T) {
	raw := encode(t, &Record{Key: "key", Payload: []byte("payload")})
	binary.LittleEndian.PutUint32(raw, uint32(len(raw)+1))
	_, err := DecodeRecord(streamio.NewCursor(raw))
	assert.Equal(t, streamio.InvalidData, streamio.KindOf(err))

	binary.LittleEndian.PutUint32(raw, 3)
	_, err = DecodeRecord(streamio.NewCursor(raw))
	assert.Equal(t, streamio.InvalidData, streamio.KindOf(err))
}

func TestEncodeRecordRejectsLongKey(t *testing.T) {
	var buf streamio.Buffer
	err := EncodeRecord(&buf, &Record{Key: strings.Repeat("k", 1<<16)})
	assert.Equal(t, streamio.InvalidInput, streamio.KindOf(err))
	assert.Equal(t, 0, buf.Len())
}
