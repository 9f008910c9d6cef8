// Package clock abstracts the monotonic, high-resolution tick source the
// rest of the precision loop is built on.
//
// The default source is the Go runtime's own monotonic clock, reached via
// a go:linkname into runtime.nanotime, which is cheaper than time.Now()
// because it avoids constructing a time.Time. When
// github.com/templexxx/tsc reports the CPU's
// time-stamp counter is usable, New can be told to prefer it instead — the
// TSC read is a handful of cycles versus a VDSO call, which matters when the
// precision delay's spin tail (internal/delay) polls it in a busy loop.
package clock
