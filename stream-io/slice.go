package streamio

// Slice reads from a byte slice by shrinking it from the front.
type Slice []byte

// Len returns the number of unread bytes.
func (s *Slice) Len() int {
	return len(*s)
}

// Read copies up to len(p) bytes into p. It never fails.
func (s *Slice) Read(p []byte) (int, error) {
	n := len(p)
	if len(*s) < n {
		n = len(*s)
	}
	copyBytes(p, *s, n)
	*s = (*s)[n:]
	return n, nil
}

// ReadExact fills p, or fails with ErrUnexpectedEOF and leaves s untouched.
func (s *Slice) ReadExact(p []byte) error {
	if len(p) > len(*s) {
		return ErrUnexpectedEOF
	}
	copyBytes(p, *s, len(p))
	*s = (*s)[len(p):]
	return nil
}

// FillBuf returns the unread bytes.
func (s *Slice) FillBuf() ([]byte, error) {
	return *s, nil
}

// Consume drops n bytes from the front, at most Len().
func (s *Slice) Consume(n int) {
	if n > len(*s) {
		n = len(*s)
	}
	*s = (*s)[n:]
}
