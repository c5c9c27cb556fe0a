//go:build bareio
// +build bareio

package streamio

// HostIO reports whether the bridge to the standard library is compiled in.
const HostIO = false
