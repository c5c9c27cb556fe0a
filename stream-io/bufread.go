package streamio

// BufReader is a Reader with an internal buffer that can be inspected without
// copying.
//
// FillBuf returns the buffered, unconsumed bytes, fetching more from the
// underlying source if the buffer is empty. An empty view means the source is
// exhausted. The view stays valid until the next call on the reader.
//
// Consume marks n bytes of the last view as read. n must not exceed the
// length of that view.
type BufReader interface {
	Reader
	FillBuf() ([]byte, error)
	Consume(n int)
}
