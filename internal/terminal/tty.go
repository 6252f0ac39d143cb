package terminal

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"golang.org/x/term"
)

// ErrNotATerminal reports that no interactive terminal is available.
var ErrNotATerminal = errors.New("not a terminal")

// ttyPath is the controlling terminal device.
const ttyPath = "/dev/tty"

// defaultWidth is used when the terminal reports a zero width, as some
// pseudo-terminals do before their size is first set.
const defaultWidth = 80

// TTY is the controlling terminal, opened independently of stdin and stdout so
// the picker works while both are redirected.
type TTY struct {
	f    *os.File
	fd   int
	keys *KeyReader
}

// OpenTTY opens the controlling terminal for reading and writing.
func OpenTTY() (*TTY, error) {
	f, err := os.OpenFile(ttyPath, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrNotATerminal, ttyPath, err)
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotATerminal, ttyPath)
	}
	return &TTY{f: f, fd: fd, keys: NewKeyReader(f)}, nil
}

// Write writes raw bytes to the terminal.
func (t *TTY) Write(p []byte) (int, error) {
	return t.f.Write(p)
}

// Width returns the current width of the terminal in columns.
// It is queried on every call so resizes are picked up between frames.
func (t *TTY) Width() (int, error) {
	w, _, err := term.GetSize(t.fd)
	if err != nil {
		return 0, err
	}
	if w <= 0 {
		return defaultWidth, nil
	}
	return w, nil
}

// MakeRaw switches the terminal to raw mode and returns the function that
// restores the previous mode.
func (t *TTY) MakeRaw() (func() error, error) {
	oldState, err := term.MakeRaw(t.fd)
	if err != nil {
		return nil, err
	}
	return func() error {
		return term.Restore(t.fd, oldState)
	}, nil
}

// Keys yields decoded key events read from the terminal.
func (t *TTY) Keys() iter.Seq2[Key, error] {
	return t.keys.Keys()
}

// Close closes the terminal device.
func (t *TTY) Close() error {
	return t.f.Close()
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
