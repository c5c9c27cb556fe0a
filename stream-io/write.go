package streamio

// Writer is a sink of bytes.
//
// Flush pushes buffered data to the destination. In-memory sinks treat it as
// a no-op that cannot fail.
type Writer interface {
	Write(p []byte) (n int, err error)
	Flush() error
}

// AllWriter is implemented by writers with their own WriteAll.
type AllWriter interface {
	WriteAll(p []byte) error
}

// WriteAll hands all of p to w or fails. A zero write while input remains
// yields ErrWriteZero, Interrupted errors are retried, and any other error is
// returned as is. An empty p succeeds without calling w.
func WriteAll(w Writer, p []byte) error {
	if aw, ok := w.(AllWriter); ok {
		return aw.WriteAll(p)
	}
	return writeAll(w, p)
}

func writeAll(w Writer, p []byte) error {
	for len(p) > 0 {
		n, err := w.Write(p)
		if err != nil {
			if IsInterrupted(err) {
				continue
			}
			return err
		}
		if n == 0 {
			return ErrWriteZero
		}
		p = p[n:]
	}
	return nil
}

// WriteFunc is a function that implements Writer. Flush is a no-op.
type WriteFunc func(p []byte) (n int, err error)

// Write calls f(p).
func (f WriteFunc) Write(p []byte) (int, error) {
	return f(p)
}

// Flush does nothing.
func (f WriteFunc) Flush() error {
	return nil
}
