//go:build !bareio
// +build !bareio

package streamio

import (
	"errors"
	"io"
	"os"
	"syscall"

	"github.com/rs/zerolog/log"
)

// HostIO reports whether the bridge to the standard library is compiled in.
const HostIO = true

// maxConsecutiveEmptyReads bounds how often a host reader may return (0, nil)
// before the bridge gives up.
const maxConsecutiveEmptyReads = 100

// FromHostError classifies an error returned by the standard library. The
// result is a custom Error wrapping err, or nil when err is nil. Errors that
// already carry a kind are returned unchanged.
func FromHostError(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	switch {
	case errors.Is(err, syscall.EINTR):
		return NewError(Interrupted, err)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return NewError(UnexpectedEOF, err)
	case errors.Is(err, io.ErrShortWrite):
		return NewError(WriteZero, err)
	case errors.Is(err, os.ErrInvalid), errors.Is(err, syscall.EINVAL):
		return NewError(InvalidInput, err)
	}
	log.Debug().Err(err).Msg("unclassified host error")
	return NewError(Other, err)
}

// toHostError turns a simple Error back into its io counterpart.
func toHostError(err error) error {
	switch err {
	case ErrUnexpectedEOF:
		return io.ErrUnexpectedEOF
	case ErrWriteZero:
		return io.ErrShortWrite
	}
	return err
}

type hostReader struct {
	r io.Reader
}

// FromReader adapts an io.Reader. io.EOF becomes a zero count and other errors
// are classified with FromHostError.
func FromReader(r io.Reader) Reader {
	if s, ok := r.(stdReader); ok {
		return s.r
	}
	return hostReader{r: r}
}

func (h hostReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for i := 0; i < maxConsecutiveEmptyReads; i++ {
		n, err := h.r.Read(p)
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, FromHostError(err)
		}
		if n > 0 {
			return n, nil
		}
	}
	return 0, NewError(Other, io.ErrNoProgress)
}

type hostWriter struct {
	w io.Writer
}

// FromWriter adapts an io.Writer. Flush calls the writer's Flush or Sync
// method when it has one.
func FromWriter(w io.Writer) Writer {
	if s, ok := w.(stdWriter); ok {
		return s.w
	}
	return hostWriter{w: w}
}

func (h hostWriter) Write(p []byte) (int, error) {
	n, err := h.w.Write(p)
	return n, FromHostError(err)
}

func (h hostWriter) Flush() error {
	switch f := h.w.(type) {
	case interface{ Flush() error }:
		return FromHostError(f.Flush())
	case interface{ Sync() error }:
		return FromHostError(f.Sync())
	}
	return nil
}

type stdReader struct {
	r Reader
}

// AsReader adapts r to io.Reader. Exhaustion is reported as io.EOF.
func AsReader(r Reader) io.Reader {
	if h, ok := r.(hostReader); ok {
		return h.r
	}
	return stdReader{r: r}
}

func (s stdReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := s.r.Read(p)
	if err != nil {
		return n, toHostError(err)
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

type stdWriter struct {
	w Writer
}

// AsWriter adapts w to io.Writer. Partial writes are continued until p is
// written in full, as io.Writer requires.
func AsWriter(w Writer) io.Writer {
	if h, ok := w.(hostWriter); ok {
		return h.w
	}
	return stdWriter{w: w}
}

func (s stdWriter) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		n, err := s.w.Write(p[written:])
		if err != nil {
			if IsInterrupted(err) {
				continue
			}
			return written, toHostError(err)
		}
		if n == 0 {
			return written, io.ErrShortWrite
		}
		written += n
	}
	return written, nil
}

// Flush flushes the wrapped Writer.
func (s stdWriter) Flush() error {
	return s.w.Flush()
}
