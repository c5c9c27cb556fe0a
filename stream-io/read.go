package streamio

// Reader is a source of bytes. See the package rules for the meaning of a
// zero count.
type Reader interface {
	Read(p []byte) (n int, err error)
}

// ExactReader is implemented by readers with their own ReadExact.
type ExactReader interface {
	ReadExact(p []byte) error
}

// ReadExact fills p from r or fails. A zero read before p is full yields
// ErrUnexpectedEOF, Interrupted errors are retried, and any other error is
// returned as is. Bytes already copied into p are not reported on failure.
func ReadExact(r Reader, p []byte) error {
	if er, ok := r.(ExactReader); ok {
		return er.ReadExact(p)
	}
	return readExact(r, p)
}

func readExact(r Reader, p []byte) error {
	for len(p) > 0 {
		n, err := r.Read(p)
		if err != nil {
			if IsInterrupted(err) {
				continue
			}
			return err
		}
		if n == 0 {
			return ErrUnexpectedEOF
		}
		p = p[n:]
	}
	return nil
}

// ReadFunc is a function that implements Reader.
type ReadFunc func(p []byte) (n int, err error)

// Read calls f(p).
func (f ReadFunc) Read(p []byte) (int, error) {
	return f(p)
}
