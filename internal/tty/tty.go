//go:build unix

// Package tty owns the controlling terminal: raw mode, window size and
// byte-level reads. It implements keys.Source on top of the tty.
package tty

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/xonecas/glance/internal/constants"
	"github.com/xonecas/glance/internal/keys"
)

// Terminal is a tty opened for interactive use.
type Terminal struct {
	in    *os.File
	out   io.Writer
	inFd  int
	outFd int

	escapeTimeout time.Duration

	mu      sync.Mutex
	oldTerm *term.State // Non-nil while raw mode is on
}

// New wraps in and out. escapeTimeout bounds PollByte.
func New(in, out *os.File, escapeTimeout time.Duration) *Terminal {
	return &Terminal{
		in:            in,
		out:           out,
		inFd:          int(in.Fd()),
		outFd:         int(out.Fd()),
		escapeTimeout: escapeTimeout,
	}
}

// EnableRawMode switches the input tty to raw mode: no echo, no line
// buffering, no signal keys, no output post-processing. Calling it while
// already raw is a no-op.
func (t *Terminal) EnableRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldTerm != nil {
		return nil
	}
	if !term.IsTerminal(t.inFd) {
		return fmt.Errorf("stdin is not a terminal")
	}
	old, err := term.MakeRaw(t.inFd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	t.oldTerm = old
	log.Debug().Int("fd", t.inFd).Msg("raw mode on")
	return nil
}

// DisableRawMode restores the settings saved by EnableRawMode. Calling it
// when raw mode is off is a no-op.
func (t *Terminal) DisableRawMode() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldTerm == nil {
		return nil
	}
	err := term.Restore(t.inFd, t.oldTerm)
	t.oldTerm = nil
	if err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	log.Debug().Int("fd", t.inFd).Msg("raw mode off")
	return nil
}

// Raw reports whether raw mode is on.
func (t *Terminal) Raw() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.oldTerm != nil
}

// Size returns the window size in rows and columns, falling back to
// 24x80 when it cannot be queried.
func (t *Terminal) Size() (rows, cols int) {
	w, h, err := term.GetSize(t.outFd)
	if err != nil || w == 0 || h == 0 {
		return constants.DefaultRows, constants.DefaultCols
	}
	return h, w
}

// Write writes p to the output.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// ReadByte blocks until one byte arrives. It returns io.EOF when the input
// is closed.
func (t *Terminal) ReadByte() (byte, error) {
	var buf [1]byte
	for {
		n, err := unix.Read(t.inFd, buf[:])
		if err != nil {
			if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
				continue
			}
			return 0, fmt.Errorf("read input: %w", err)
		}
		if n == 0 {
			return 0, io.EOF
		}
		return buf[0], nil
	}
}

// PollByte waits at most the escape timeout for one byte. It returns
// keys.ErrNoData when none arrives in time.
func (t *Terminal) PollByte() (byte, error) {
	fds := []unix.PollFd{
		{Fd: int32(t.inFd), Events: unix.POLLIN},
	}
	timeout := int(t.escapeTimeout / time.Millisecond)
	for {
		n, err := unix.Poll(fds, timeout)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return 0, fmt.Errorf("poll input: %w", err)
		}
		if n == 0 {
			return 0, keys.ErrNoData
		}
		return t.ReadByte()
	}
}

var _ keys.Source = (*Terminal)(nil)
