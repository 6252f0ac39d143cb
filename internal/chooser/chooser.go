// Package chooser implements the interactive single-selection list picker.
//
// A Chooser renders its prompt and options to a terminal, moves the highlight
// in response to key events, and returns the confirmed option. Redraws move the
// cursor up by exactly the rows the previous frame occupied and overwrite it,
// so nothing above the picker is disturbed.
package chooser

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/moasq/mkchoice/internal/terminal"
)

// DefaultPrompt is shown when no prompt is configured.
const DefaultPrompt = "Choose one:"

const (
	markerSelected = "> "
	markerIndent   = "  "
)

// ErrInvalidIndex is returned when Current does not address an option.
var ErrInvalidIndex = errors.New("current index out of range")

// Terminal is what the picker needs from the controlling terminal.
type Terminal interface {
	io.Writer
	// Width returns the current width in columns.
	Width() (int, error)
	// MakeRaw enters raw mode and returns the function restoring the old mode.
	MakeRaw() (restore func() error, err error)
	// Keys yields key events; a non-nil error ends the sequence.
	Keys() iter.Seq2[terminal.Key, error]
}

// Result is a confirmed choice.
type Result struct {
	Index int
	Text  string
}

// Chooser holds one presentation of a list of options.
type Chooser struct {
	Prompt  string
	Choices []string
	Current int
	// Vanish erases the prompt and list once the interaction ends.
	Vanish bool
	// Highlight is the escape sequence used for the selected option.
	Highlight string
	Logger    *log.Logger

	consumed bool
}

// New returns a Chooser for options with the default prompt and highlight.
func New(options []string) *Chooser {
	return &Chooser{
		Prompt:    DefaultPrompt,
		Choices:   append([]string(nil), options...),
		Highlight: terminal.Green,
	}
}

// SetChoice selects the first option equal to val.
// It reports whether such an option exists; the selection is unchanged if not.
func (c *Chooser) SetChoice(val string) bool {
	for i, choice := range c.Choices {
		if choice == val {
			c.Current = i
			return true
		}
	}
	return false
}

// SetIndex selects option n, clamped to the valid range.
func (c *Chooser) SetIndex(n int) {
	if n >= len(c.Choices) {
		n = len(c.Choices) - 1
	}
	if n < 0 {
		n = 0
	}
	c.Current = n
}

// PresentTTY presents the chooser on the controlling terminal.
func (c *Chooser) PresentTTY() (Result, bool, error) {
	tty, err := terminal.OpenTTY()
	if err != nil {
		return Result{}, false, err
	}
	defer tty.Close()
	return c.Present(tty)
}

// Present runs the interaction on t until the user confirms or cancels.
// ok is false on cancellation. Raw mode is restored on every return path.
// A Chooser can be presented only once.
func (c *Chooser) Present(t Terminal) (res Result, ok bool, err error) {
	if c.consumed {
		return Result{}, false, ErrConsumed
	}
	if len(c.Choices) == 0 {
		return Result{}, false, ErrEmptyOptions
	}
	if c.Current < 0 || c.Current >= len(c.Choices) {
		return Result{}, false, fmt.Errorf("%w: %d of %d options", ErrInvalidIndex, c.Current, len(c.Choices))
	}
	c.consumed = true
	logger := c.logger()

	// Written before raw mode, so the line discipline still handles '\n'.
	// A trailing newline is dropped, as Height does not count it.
	prompt := strings.TrimSuffix(c.Prompt, "\n")
	if _, err := io.WriteString(t, "\r"+prompt+"\n"); err != nil {
		return Result{}, false, ioErr("write", err)
	}

	restore, err := t.MakeRaw()
	if err != nil {
		return Result{}, false, ioErr("enter raw mode", err)
	}
	defer func() {
		if rerr := restore(); rerr != nil && err == nil {
			res, ok, err = Result{}, false, ioErr("restore mode", rerr)
		}
	}()

	st := state{current: c.Current, n: len(c.Choices)}
	if _, err := io.WriteString(t, c.frame(st.current)); err != nil {
		return Result{}, false, ioErr("write", err)
	}

	out, err := c.loop(t, &st, logger)
	if err != nil {
		return Result{}, false, err
	}
	c.Current = st.current

	if c.Vanish {
		width, err := t.Width()
		if err != nil {
			return Result{}, false, ioErr("query size", err)
		}
		rows := Height(prompt, width) + c.listHeight(width)
		if _, err := io.WriteString(t, "\r"+terminal.CursorUp(rows)+terminal.ClearToEnd); err != nil {
			return Result{}, false, ioErr("write", err)
		}
	}

	if out == outcomeCancel {
		logger.Debug("selection cancelled", "index", st.current)
		c.Choices = nil
		return Result{}, false, nil
	}
	res = Result{Index: st.current, Text: c.Choices[st.current]}
	c.Choices = nil
	logger.Debug("selection confirmed", "index", res.Index)
	return res, true, nil
}

// loop consumes key events until one ends the interaction.
func (c *Chooser) loop(t Terminal, st *state, logger *log.Logger) (outcome, error) {
	for k, kerr := range t.Keys() {
		if kerr != nil {
			return 0, ioErr("read", kerr)
		}
		next, out := step(*st, k)
		logger.Debug("key", "key", k, "from", st.current, "to", next.current)

		switch out {
		case outcomeMoved:
			// The cursor sits below the frame drawn for the previous state, so
			// that frame's rows are what we move up over. The width is queried
			// again in case the terminal was resized.
			width, err := t.Width()
			if err != nil {
				return 0, ioErr("query size", err)
			}
			rows := c.listHeight(width)
			*st = next
			frame := "\r" + terminal.CursorUp(rows) + c.frame(st.current)
			if _, err := io.WriteString(t, frame); err != nil {
				return 0, ioErr("write", err)
			}
		case outcomeConfirm, outcomeCancel:
			return out, nil
		}
	}
	return 0, ioErr("read", io.ErrUnexpectedEOF)
}

// frame renders the whole option list. Every line ends in "\r\n" since raw
// mode does not translate line feeds.
func (c *Chooser) frame(current int) string {
	var b strings.Builder
	for i, choice := range c.Choices {
		for j, line := range splitLines(choice) {
			switch {
			case i != current:
				b.WriteString(markerIndent + line)
			case j == 0:
				b.WriteString(markerSelected + c.Highlight + line + terminal.Reset)
			default:
				b.WriteString(markerIndent + c.Highlight + line + terminal.Reset)
			}
			b.WriteString("\r\n")
		}
	}
	return b.String()
}

// listHeight is the number of rows the option list occupies at width.
// The marker and the indent have the same width, so the height does not
// depend on which option is selected.
func (c *Chooser) listHeight(width int) int {
	rows := 0
	for _, choice := range c.Choices {
		rows += Height(indent(choice), width)
	}
	return rows
}

func indent(s string) string {
	lines := splitLines(s)
	for i, l := range lines {
		lines[i] = markerIndent + l
	}
	return strings.Join(lines, "\n")
}

var discard = log.New(io.Discard)

func (c *Chooser) logger() *log.Logger {
	if c.Logger == nil {
		return discard
	}
	return c.Logger
}
