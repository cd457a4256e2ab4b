//go:build darwin

package backend

import "golang.org/x/sys/unix"

// Termios ioctl requests for macOS.
const (
	termiosGet = unix.TIOCGETA
	termiosSet = unix.TIOCSETA
)
