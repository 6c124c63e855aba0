//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !windows

package diagnostics

// WriterIsTerminal always reports false on platforms without a terminal
// probe; diagnostics render without color there.
func WriterIsTerminal(fd uintptr) bool {
	return false
}
