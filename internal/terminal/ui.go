package terminal

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Colors for terminal output.
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
)

// colorNames maps the names accepted in config files and flags to SGR sequences.
var colorNames = map[string]string{
	"red":     Red,
	"green":   Green,
	"yellow":  Yellow,
	"blue":    Blue,
	"magenta": Magenta,
	"cyan":    Cyan,
	"white":   White,
	"bold":    Bold,
}

// ColorByName returns the escape sequence for a named color.
// Lookup is case-insensitive.
func ColorByName(name string) (string, bool) {
	seq, ok := colorNames[strings.ToLower(strings.TrimSpace(name))]
	return seq, ok
}

// ColorNames lists the accepted color names in sorted order.
func ColorNames() []string {
	names := make([]string, 0, len(colorNames))
	for name := range colorNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Status output goes to stderr. Stdout is reserved for the chosen value so
// mkchoice can be used in pipelines and command substitutions.
var statusOut io.Writer = os.Stderr

// Error prints a red error message.
func Error(msg string) {
	fmt.Fprintf(statusOut, "%s%s✗%s %s\n", Bold, Red, Reset, msg)
}

// Warning prints a yellow warning message.
func Warning(msg string) {
	fmt.Fprintf(statusOut, "%s%s!%s %s\n", Bold, Yellow, Reset, msg)
}

// CursorUp returns the sequence moving the cursor up n rows.
// Zero or negative n yields an empty string, since ESC[0A still moves one row
// on most terminals.
func CursorUp(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("\033[%dA", n)
}

// ClearToEnd clears from the cursor to the end of the screen.
const ClearToEnd = "\033[J"
