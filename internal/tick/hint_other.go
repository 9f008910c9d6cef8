//go:build !amd64

package tick

func hint() {}
