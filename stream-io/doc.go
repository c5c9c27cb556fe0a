// Package streamio is a small byte-stream layer: Reader, Writer and BufReader
// contracts, the Cursor and Take adapters, and a classified Error.
//
// # Reading Rules
//
//	type Reader interface {
//		Read(p []byte) (n int, err error)
//	}
//
//  1. A Read() call reads up to len(p) bytes into p and returns how many it read.
//  2. n may be less than len(p); a short read is not an error.
//  3. n == 0 with len(p) > 0 means the source is exhausted. There is no EOF error.
//  4. An error of kind Interrupted is transient. ReadExact and WriteAll retry it,
//     direct callers of Read/Write choose their own policy.
//  5. Any other error is terminal for the call. ReadExact and WriteAll drop
//     partial progress and return it unchanged.
//
// Writing follows the same rules: a Write() call that accepts 0 bytes while
// input remains makes WriteAll fail with WriteZero.
//
// The layer keeps no shared state and takes no locks; a resource belongs to one
// caller at a time. Only custom errors (NewError) allocate.
//
// Builds with the bareio tag leave out the bridge to the standard library's io
// package (FromReader, AsWriter, ...); the contract is the same either way.
package streamio
