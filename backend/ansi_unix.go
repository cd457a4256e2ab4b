//go:build unix

package backend

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// terminalSize reads the window size for fd, falling back to 80x24.
func terminalSize(fd int) (int, int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// watchResize forwards SIGWINCH into the resize channel until Shutdown.
func (b *ANSIBackend) watchResize() {
	b.stopCh = make(chan struct{})
	b.doneCh = make(chan struct{})

	go func() {
		defer close(b.doneCh)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGWINCH)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-b.stopCh:
				return
			case <-sigCh:
				w, h := b.Size()
				postLatest(b.resizeCh, Size{Width: w, Height: h})
			}
		}
	}()
}

// restoreCookedMode re-enables echo and canonical input on the controlling
// terminal. Goes through /dev/tty so it works even when stdin was redirected.
// Best-effort for crash recovery; errors ignored.
func restoreCookedMode() {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer tty.Close()

	fd := int(tty.Fd())
	termios, err := unix.IoctlGetTermios(fd, termiosGet)
	if err != nil {
		return
	}
	termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	termios.Iflag |= unix.ICRNL
	unix.IoctlSetTermios(fd, termiosSet, termios)
}
