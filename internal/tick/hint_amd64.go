//go:build amd64

package tick

// hint issues the PAUSE instruction.
// Implemented in hint_amd64.s
func hint()
