package terminal

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"unicode/utf8"
)

// KeyKind classifies a decoded key event.
type KeyKind int

const (
	KeyUnknown KeyKind = iota
	KeyRune            // printable character in Key.Rune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEsc
	KeyTab
	KeyBackspace
	KeyCtrl // Ctrl+letter, lowercase letter in Key.Rune
	KeyAlt  // Esc followed by a character, character in Key.Rune
)

// Key is a single decoded key event.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Char returns the key event for a printable character.
func Char(r rune) Key { return Key{Kind: KeyRune, Rune: r} }

// Ctrl returns the key event for Ctrl plus a letter.
func Ctrl(r rune) Key { return Key{Kind: KeyCtrl, Rune: r} }

func (k Key) String() string {
	switch k.Kind {
	case KeyRune:
		return fmt.Sprintf("%q", k.Rune)
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEnter:
		return "enter"
	case KeyEsc:
		return "esc"
	case KeyTab:
		return "tab"
	case KeyBackspace:
		return "backspace"
	case KeyCtrl:
		return "ctrl+" + string(k.Rune)
	case KeyAlt:
		return "alt+" + string(k.Rune)
	}
	return "unknown"
}

const (
	charEsc       = 0x1b
	charBackspace = 0x7f
	charCtrlH     = 0x08
)

// KeyReader decodes raw terminal input into key events.
//
// A lone Esc is told apart from the start of an escape sequence by whether more
// input is already buffered behind it: terminals write a whole sequence at once,
// while a user pressing Esc produces a single byte.
type KeyReader struct {
	r *bufio.Reader
}

// NewKeyReader wraps r, which is expected to deliver raw-mode terminal input.
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{r: bufio.NewReader(r)}
}

// ReadKey blocks until the next key event is available.
func (kr *KeyReader) ReadKey() (Key, error) {
	r, size, err := kr.r.ReadRune()
	if err != nil {
		return Key{}, err
	}
	if r == utf8.RuneError && size == 1 {
		return Key{Kind: KeyUnknown}, nil
	}

	switch {
	case r == charEsc:
		return kr.readEscape()
	case r == '\r' || r == '\n':
		return Key{Kind: KeyEnter}, nil
	case r == '\t':
		return Key{Kind: KeyTab}, nil
	case r == charBackspace || r == charCtrlH:
		return Key{Kind: KeyBackspace}, nil
	case r >= 0x01 && r <= 0x1a:
		return Ctrl('a' + r - 1), nil
	case r < 0x20:
		return Key{Kind: KeyUnknown}, nil
	}
	return Char(r), nil
}

// Keys yields key events until the reader fails. The failing error is yielded
// once with a zero Key, then iteration stops.
func (kr *KeyReader) Keys() iter.Seq2[Key, error] {
	return func(yield func(Key, error) bool) {
		for {
			k, err := kr.ReadKey()
			if !yield(k, err) || err != nil {
				return
			}
		}
	}
}

func (kr *KeyReader) readEscape() (Key, error) {
	if kr.r.Buffered() == 0 {
		return Key{Kind: KeyEsc}, nil
	}
	next, _, err := kr.r.ReadRune()
	if err != nil {
		return Key{}, err
	}
	switch next {
	case '[':
		return kr.readCSI()
	case 'O':
		// SS3 arrows, sent in application cursor mode.
		if kr.r.Buffered() == 0 {
			return Key{Kind: KeyAlt, Rune: 'O'}, nil
		}
		b, err := kr.r.ReadByte()
		if err != nil {
			return Key{}, err
		}
		return arrowKey(b), nil
	}
	return Key{Kind: KeyAlt, Rune: next}, nil
}

// readCSI consumes parameter and intermediate bytes up to the final byte.
func (kr *KeyReader) readCSI() (Key, error) {
	for {
		if kr.r.Buffered() == 0 {
			return Key{Kind: KeyUnknown}, nil
		}
		b, err := kr.r.ReadByte()
		if err != nil {
			return Key{}, err
		}
		if b >= 0x40 && b <= 0x7e {
			return arrowKey(b), nil
		}
	}
}

func arrowKey(final byte) Key {
	switch final {
	case 'A':
		return Key{Kind: KeyUp}
	case 'B':
		return Key{Kind: KeyDown}
	case 'C':
		return Key{Kind: KeyRight}
	case 'D':
		return Key{Kind: KeyLeft}
	}
	return Key{Kind: KeyUnknown}
}
