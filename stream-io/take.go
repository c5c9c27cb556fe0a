package streamio

// Take caps the number of bytes that can be read from an inner Reader.
type Take struct {
	inner Reader
	limit uint64
}

// NewTake returns a Take that reads at most limit bytes from r.
func NewTake(r Reader, limit uint64) *Take {
	return &Take{inner: r, limit: limit}
}

// Limit returns how many bytes may still be read.
func (t *Take) Limit() uint64 {
	return t.limit
}

// Inner returns the wrapped reader.
func (t *Take) Inner() Reader {
	return t.inner
}

// Read reads at most min(len(p), Limit()) bytes from the inner reader. Once
// the limit is reached it returns 0 without calling the inner reader again.
func (t *Take) Read(p []byte) (int, error) {
	if t.limit == 0 {
		return 0, nil
	}
	// limit only narrows to int when it is below len(p).
	max := len(p)
	if uint64(max) > t.limit {
		max = int(t.limit)
	}
	n, err := t.inner.Read(p[:max])
	t.limit -= uint64(n)
	return n, err
}
