package commands

import (
	"bufio"
	"fmt"
	"io"
)

// stdinMarker is the argument that splices stdin lines into the choices.
const stdinMarker = "-"

// maxLineSize bounds a single choice read from stdin.
const maxLineSize = 1 << 20

// buildChoices assembles the choice list from positional arguments.
//
// dashAt is the number of arguments that preceded "--" (cobra's
// ArgsLenAtDash), or -1 when there was none. Before the dash, the first "-"
// marks where stdin lines are inserted and further markers are dropped; after
// it every argument is literal. With no choices at all, stdin is read.
func buildChoices(args []string, dashAt int, stdin io.Reader) ([]string, error) {
	before, after := args, []string(nil)
	if dashAt >= 0 && dashAt <= len(args) {
		before, after = args[:dashAt], args[dashAt:]
	}

	choices := make([]string, 0, len(args))
	stdinAt := -1
	for _, arg := range before {
		if arg == stdinMarker {
			if stdinAt < 0 {
				stdinAt = len(choices)
			}
			continue
		}
		choices = append(choices, arg)
	}
	choices = append(choices, after...)

	if stdinAt < 0 && len(choices) == 0 {
		stdinAt = 0
	}
	if stdinAt < 0 {
		return choices, nil
	}

	lines, err := readLines(stdin)
	if err != nil {
		return nil, err
	}
	logger.Debug("read choices from stdin", "count", len(lines), "at", stdinAt)

	spliced := make([]string, 0, len(choices)+len(lines))
	spliced = append(spliced, choices[:stdinAt]...)
	spliced = append(spliced, lines...)
	spliced = append(spliced, choices[stdinAt:]...)
	return spliced, nil
}

// readLines reads newline-separated lines. bufio.ScanLines drops a trailing
// '\r' from each line and does not report an empty final line.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read choices from stdin: %w", err)
	}
	return lines, nil
}
