//go:build windows

package diagnostics

import "golang.org/x/sys/windows"

// WriterIsTerminal reports whether fd is attached to a console, used to
// decide whether rendered diagnostics get ANSI color.
func WriterIsTerminal(fd uintptr) bool {
	var mode uint32
	return windows.GetConsoleMode(windows.Handle(fd), &mode) == nil
}
