//go:build linux

package diagnostics

import "golang.org/x/sys/unix"

// WriterIsTerminal reports whether fd is attached to a terminal, used to
// decide whether rendered diagnostics get ANSI color.
func WriterIsTerminal(fd uintptr) bool {
	_, err := unix.IoctlGetTermios(int(fd), unix.TCGETS)
	return err == nil
}
