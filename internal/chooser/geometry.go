package chooser

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// splitLines splits text the way it is rendered: on '\n', with a trailing '\r'
// dropped from each line. A single trailing newline does not open another line,
// and empty text is one empty line.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Height returns the number of terminal rows text occupies at the given width.
// Each line takes 1 + floor(display width / width) rows, so even an empty line
// takes one.
func Height(text string, width int) int {
	if width < 1 {
		width = 1
	}
	rows := 0
	for _, line := range splitLines(text) {
		rows += 1 + runewidth.StringWidth(line)/width
	}
	return rows
}
