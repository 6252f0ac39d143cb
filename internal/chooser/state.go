package chooser

import "github.com/moasq/mkchoice/internal/terminal"

type outcome int

const (
	outcomeIgnored outcome = iota
	outcomeMoved
	outcomeConfirm
	outcomeCancel
)

// state is the part of a presentation that changes between key events.
type state struct {
	current int
	n       int
}

// step applies one key event. Navigation past either end is a no-op and
// reports outcomeIgnored, so nothing is redrawn.
func step(s state, k terminal.Key) (state, outcome) {
	switch {
	case k.Kind == terminal.KeyUp, k == terminal.Char('k'):
		if s.current > 0 {
			s.current--
			return s, outcomeMoved
		}
	case k.Kind == terminal.KeyDown, k == terminal.Char('j'):
		if s.current < s.n-1 {
			s.current++
			return s, outcomeMoved
		}
	case k.Kind == terminal.KeyEnter, k == terminal.Char(' '):
		return s, outcomeConfirm
	case k.Kind == terminal.KeyEsc, k == terminal.Char('q'), k == terminal.Ctrl('c'):
		return s, outcomeCancel
	}
	return s, outcomeIgnored
}
