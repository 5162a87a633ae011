//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd && !windows

package pagesim

func isTerminal(fd uintptr) bool {
	return false
}
