package streamio

// Buffer is a growable in-memory sink. Writes always succeed in full.
type Buffer []byte

// Bytes returns the written bytes.
func (b *Buffer) Bytes() []byte {
	return *b
}

// Len returns the number of written bytes.
func (b *Buffer) Len() int {
	return len(*b)
}

// Reset empties the buffer, keeping its storage.
func (b *Buffer) Reset() {
	*b = (*b)[:0]
}

// Write appends p and reports len(p).
func (b *Buffer) Write(p []byte) (int, error) {
	*b = append(*b, p...)
	return len(p), nil
}

// WriteAll appends p.
func (b *Buffer) WriteAll(p []byte) error {
	*b = append(*b, p...)
	return nil
}

// Flush does nothing.
func (b *Buffer) Flush() error {
	return nil
}
