// Package compress frames a byte stream into snappy compressed blocks.
//
// Every frame is the uvarint length of the block followed by the block:
//
//	uvarint(len(block)) | snappy block
package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/golang/snappy"

	streamio "github.com/usherasnick/Useful-Go-Gadgets/stream-io"
)

const (
	// MaxFrameSize 是单个帧(压缩前或压缩后)允许的最大字节数.
	MaxFrameSize = 4 << 20
	// frameDataLimit 是Writer单帧缓冲的最大字节数, 压缩后也不会超过MaxFrameSize.
	frameDataLimit = 1 << 20
)

// Writer 缓冲写入的数据, Flush时压缩成一个帧写入底层Writer.
type Writer struct {
	w     streamio.Writer
	buf   streamio.Buffer
	block []byte
	hdr   [binary.MaxVarintLen64]byte
}

// NewWriter 返回Writer实例.
func NewWriter(w streamio.Writer) *Writer {
	return &Writer{w: w}
}

// Write 缓冲p. 缓冲区已满时先输出一个帧, 单次调用可能只接受p的一部分.
func (z *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if z.buf.Len() >= frameDataLimit {
		if err := z.emit(); err != nil {
			return 0, err
		}
	}
	if room := frameDataLimit - z.buf.Len(); len(p) > room {
		p = p[:room]
	}
	return z.buf.Write(p)
}

// Flush 将缓冲数据作为一个帧输出, 然后刷新底层Writer. 缓冲为空时不输出帧.
func (z *Writer) Flush() error {
	if err := z.emit(); err != nil {
		return err
	}
	return z.w.Flush()
}

// Buffered 返回尚未输出的字节数.
func (z *Writer) Buffered() int {
	return z.buf.Len()
}

func (z *Writer) emit() error {
	if z.buf.Len() == 0 {
		return nil
	}
	z.block = snappy.Encode(z.block[:cap(z.block)], z.buf.Bytes())
	n := binary.PutUvarint(z.hdr[:], uint64(len(z.block)))
	if err := streamio.WriteAll(z.w, z.hdr[:n]); err != nil {
		return err
	}
	if err := streamio.WriteAll(z.w, z.block); err != nil {
		return err
	}
	z.buf.Reset()
	return nil
}

// Reader 逐帧解压底层Reader中的数据.
type Reader struct {
	r     streamio.Reader
	br    io.ByteReader
	block []byte
	buf   []byte
	off   int
}

// NewReader 返回Reader实例.
func NewReader(r streamio.Reader) *Reader {
	return &Reader{r: r, br: streamio.NewByteReader(r)}
}

// Read 从当前帧拷贝解压后的数据, 数据耗尽时返回0.
func (z *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	view, err := z.FillBuf()
	if err != nil {
		return 0, err
	}
	n := copy(p, view)
	z.Consume(n)
	return n, nil
}

// FillBuf 返回当前帧中尚未消费的数据, 当前帧消费完时读取下一帧.
func (z *Reader) FillBuf() ([]byte, error) {
	for z.off >= len(z.buf) {
		more, err := z.next()
		if err != nil || !more {
			return nil, err
		}
	}
	return z.buf[z.off:], nil
}

// Consume 标记n字节已消费.
func (z *Reader) Consume(n int) {
	z.off += n
	if z.off > len(z.buf) {
		z.off = len(z.buf)
	}
}

func (z *Reader) next() (bool, error) {
	size, err := binary.ReadUvarint(z.br)
	switch {
	case err == io.EOF:
		return false, nil
	case err == io.ErrUnexpectedEOF:
		return false, streamio.NewError(streamio.UnexpectedEOF, "truncated frame header")
	case errors.As(err, new(*streamio.Error)):
		return false, err
	case err != nil:
		// overlong varint
		return false, streamio.NewError(streamio.InvalidData, err)
	}
	if size == 0 || size > MaxFrameSize {
		return false, streamio.NewError(streamio.InvalidData, fmt.Errorf("invalid frame size %v", size))
	}

	if uint64(cap(z.block)) < size {
		z.block = make([]byte, size)
	}
	z.block = z.block[:size]
	if err = streamio.ReadExact(z.r, z.block); err != nil {
		if err == streamio.ErrUnexpectedEOF {
			return false, streamio.NewError(streamio.UnexpectedEOF, fmt.Errorf("truncated frame of %v bytes", size))
		}
		return false, err
	}

	n, err := snappy.DecodedLen(z.block)
	if err != nil {
		return false, streamio.NewError(streamio.InvalidData, err)
	}
	if n > MaxFrameSize {
		return false, streamio.NewError(streamio.InvalidData, fmt.Errorf("frame decodes to %v bytes", n))
	}
	z.buf, err = snappy.Decode(z.buf[:cap(z.buf)], z.block)
	if err != nil {
		return false, streamio.NewError(streamio.InvalidData, err)
	}
	z.off = 0
	return true, nil
}
