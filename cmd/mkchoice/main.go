package main

import (
	"errors"
	"os"

	"github.com/moasq/mkchoice/internal/commands"
	"github.com/moasq/mkchoice/internal/terminal"
)

func main() {
	if err := commands.Execute(); err != nil {
		// Cancelling the picker is an answer, not a failure to report.
		if !errors.Is(err, commands.ErrCancelled) {
			terminal.Error(err.Error())
		}
		os.Exit(1)
	}
}
