//go:build linux

package backend

import "golang.org/x/sys/unix"

// Termios ioctl requests for Linux.
const (
	termiosGet = unix.TCGETS
	termiosSet = unix.TCSETS
)
