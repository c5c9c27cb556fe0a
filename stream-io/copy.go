package streamio

import "io"

const copyBufSize = 8 * 1024

// Copy moves bytes from src to dst until src is exhausted and returns how many
// were moved. Interrupted reads are retried; writes go through WriteAll. dst
// is not flushed.
func Copy(dst Writer, src Reader) (uint64, error) {
	var (
		buf     [copyBufSize]byte
		written uint64
	)
	for {
		n, err := src.Read(buf[:])
		if err != nil {
			if IsInterrupted(err) {
				continue
			}
			return written, err
		}
		if n == 0 {
			return written, nil
		}
		if err = WriteAll(dst, buf[:n]); err != nil {
			return written, err
		}
		written += uint64(n)
	}
}

// ReadToEnd appends everything left in r to dst and returns the number of
// bytes appended. Interrupted reads are retried.
func ReadToEnd(r Reader, dst *Buffer) (int, error) {
	var buf [copyBufSize]byte
	total := 0
	for {
		n, err := r.Read(buf[:])
		if err != nil {
			if IsInterrupted(err) {
				continue
			}
			return total, err
		}
		if n == 0 {
			return total, nil
		}
		*dst = append(*dst, buf[:n]...)
		total += n
	}
}

// byteReader reads one byte at a time with ReadExact.
type byteReader struct {
	r   Reader
	one [1]byte
}

// NewByteReader adapts r to io.ByteReader so that helpers such as
// binary.ReadUvarint can decode from it. An exhausted r yields io.EOF.
func NewByteReader(r Reader) io.ByteReader {
	return &byteReader{r: r}
}

func (b *byteReader) ReadByte() (byte, error) {
	if err := ReadExact(b.r, b.one[:]); err != nil {
		if err == ErrUnexpectedEOF {
			return 0, io.EOF
		}
		return 0, err
	}
	return b.one[0], nil
}
