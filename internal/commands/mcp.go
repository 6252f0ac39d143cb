package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/moasq/mkchoice/internal/chooserserver"
)

// errMCPArgs is returned when choices are passed together with --mcp.
var errMCPArgs = errors.New("--mcp takes no choices")

// runMCP starts the choose MCP server over stdio. Agent hosts use it to let
// the user pick an option in their terminal.
func runMCP(cmd *cobra.Command, opts *rootOptions, args []string) error {
	if len(args) > 0 {
		return errMCPArgs
	}
	srv := chooserserver.New(chooserserver.Options{
		Version:     Version,
		Highlight:   opts.cfg.HighlightSeq(),
		Logger:      logger,
		QuietPicker: opts.logToTTY,
	})
	logger.Debug("starting mcp server")
	return srv.Run(cmd.Context())
}
