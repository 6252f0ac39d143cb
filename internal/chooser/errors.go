package chooser

import (
	"errors"
	"fmt"

	"github.com/moasq/mkchoice/internal/terminal"
)

var (
	// ErrNotATerminal is returned when no interactive terminal can be opened.
	ErrNotATerminal = terminal.ErrNotATerminal

	// ErrEmptyOptions is returned when there is nothing to choose from.
	ErrEmptyOptions = errors.New("no options to choose from")

	// ErrConsumed is returned when a Chooser is presented a second time.
	ErrConsumed = errors.New("chooser already presented")

	// ErrIO matches every *IOError via errors.Is.
	ErrIO = errors.New("terminal i/o failure")
)

// IOError is a read, write, or mode switch failure on the terminal.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("terminal %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

func ioErr(op string, err error) error {
	return &IOError{Op: op, Err: err}
}
