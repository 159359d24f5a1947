// Package termctl is the ambient host-surface helper named in §6: raw-mode
// enter/exit and terminal size queries. It is deliberately outside the
// core's required surface ("these toggles are part of the host surface,
// not the core") but is shipped because the teacher ships the same ioctls
// inline in screen.go — this package just gives them a standalone home so a
// caller doesn't need to hand-roll termios handling to use the core.
package termctl

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// RawMode holds the terminal state needed to restore a file descriptor
// after EnterRaw, mirroring screen.go's origTermios/inRawMode fields.
type RawMode struct {
	fd   int
	orig *unix.Termios
}

// EnterRaw puts fd into raw mode (no echo, no canonical line buffering, no
// signal generation, 8-bit clean), grounded on screen.go's EnterRawMode.
func EnterRaw(fd int) (*RawMode, error) {
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, fmt.Errorf("termctl: get termios: %w", err)
	}
	orig := *termios

	raw := *termios
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &raw); err != nil {
		return nil, fmt.Errorf("termctl: set raw mode: %w", err)
	}
	return &RawMode{fd: fd, orig: &orig}, nil
}

// Restore returns fd to the termios state captured by EnterRaw.
func (r *RawMode) Restore() error {
	if r == nil || r.orig == nil {
		return nil
	}
	if err := unix.IoctlSetTermios(r.fd, ioctlSetTermios, r.orig); err != nil {
		return fmt.Errorf("termctl: restore termios: %w", err)
	}
	return nil
}

// Size returns the current terminal dimensions for fd, falling back to
// golang.org/x/term's portable query if the ioctl fails (e.g. under a
// pty emulator that doesn't support TIOCGWINSZ verbatim), and finally to
// 80x24 if both fail.
func Size(fd int) (width, height int) {
	if ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ); err == nil {
		return int(ws.Col), int(ws.Row)
	}
	if w, h, err := term.GetSize(fd); err == nil {
		return w, h
	}
	return 80, 24
}

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

// Capability toggle sequences for the host surface named in §6. These are
// plain byte strings, not emitted by the core itself: a host writes them
// once at startup/shutdown around whatever render.Renderer.Present calls it
// makes in between.
const (
	EnterAltScreen = "\x1b[?1049h"
	ExitAltScreen  = "\x1b[?1049l"
	HideCursor     = "\x1b[?25l"
	ShowCursor     = "\x1b[?25h"
	EnableMouse    = "\x1b[?1000h\x1b[?1006h"
	DisableMouse   = "\x1b[?1006l\x1b[?1000l"
	EnablePaste    = "\x1b[?2004h"
	DisablePaste   = "\x1b[?2004l"
	EnableFocus    = "\x1b[?1004h"
	DisableFocus   = "\x1b[?1004l"
)

// Stdout returns os.Stdout's file descriptor, a convenience for the common
// case of driving the controlling terminal directly.
func Stdout() int {
	return int(os.Stdout.Fd())
}

// ResizeWatcher reports terminal size changes on a channel, grounded on
// screen.go's handleSignals goroutine (SIGWINCH -> re-query TIOCGWINSZ ->
// non-blocking send). The host is responsible for feeding resulting sizes
// into an input.Event via input.NewResizeEvent — this package only detects
// the change.
type ResizeWatcher struct {
	fd      int
	sigChan chan os.Signal
	sizes   chan [2]int
	done    chan struct{}
}

// WatchResize starts watching fd for SIGWINCH-driven size changes. Call
// Stop when finished to release the signal registration.
func WatchResize(fd int) *ResizeWatcher {
	w := &ResizeWatcher{
		fd:      fd,
		sigChan: make(chan os.Signal, 1),
		sizes:   make(chan [2]int, 1),
		done:    make(chan struct{}),
	}
	signal.Notify(w.sigChan, syscall.SIGWINCH)
	lastW, lastH := Size(fd)
	go func() {
		for {
			select {
			case <-w.done:
				return
			case <-w.sigChan:
				width, height := Size(fd)
				if width == lastW && height == lastH {
					continue
				}
				lastW, lastH = width, height
				// Drop any undelivered size so the channel holds the newest.
				select {
				case <-w.sizes:
				default:
				}
				w.sizes <- [2]int{width, height}
			}
		}
	}()
	return w
}

// Sizes returns the channel on which new (width, height) pairs are
// delivered. Sends are non-blocking: a consumer that falls behind sees only
// the most recent size, matching the teacher's "non-blocking send (outside
// lock) to avoid potential deadlock" comment in handleSignals.
func (w *ResizeWatcher) Sizes() <-chan [2]int {
	return w.sizes
}

// Stop unregisters the signal handler and stops the watcher goroutine.
func (w *ResizeWatcher) Stop() {
	signal.Stop(w.sigChan)
	close(w.done)
}
