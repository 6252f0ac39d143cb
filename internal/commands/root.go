package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/moasq/mkchoice/internal/chooser"
	"github.com/moasq/mkchoice/internal/config"
	"github.com/moasq/mkchoice/internal/logging"
	"github.com/moasq/mkchoice/internal/terminal"
)

// Version is set at build time.
var Version = "0.2.0"

// ErrCancelled is returned when the user dismisses the picker without choosing.
var ErrCancelled = errors.New("selection cancelled")

const longHelp = `mkchoice prompts the user's terminal to choose one of the given choices,
and prints the chosen one on stdout.

Pass - as one of the choices to splice in line-separated options read from
stdin at that position. Arguments after -- are taken as literal choices, not
flags. With no choices at all, options are read from stdin.

The initial selection can be given by text with --selection (ignored if no
option matches) or by zero-based position with --index.

Move with up/down or j/k, confirm with space or enter, cancel with esc, q or
ctrl-c. With --vanish the prompt is erased from the terminal once done;
otherwise its final state stays on screen.

mkchoice exits 0 after a choice and 1 when cancelled.`

const example = `  $ seq 3 | mkchoice -s master a - b -p "Which one?" -- -p -h - -- master z >some-file
  Which one?
    a
    1
    2
    3
    b
    -p
    -h
    -
    --
  > master
    z
  $ cat some-file
  master`

// presentFunc runs the picker. Tests replace it to avoid needing a terminal.
var presentFunc = func(c *chooser.Chooser) (chooser.Result, bool, error) {
	return c.PresentTTY()
}

// rootOptions holds the flag values of the root command.
type rootOptions struct {
	vanish    bool
	prompt    string
	selection string
	index     uint
	highlight string
	config    string
	debug     bool
	logFile   string
	mcp       bool

	cfg *config.Config
	// logToTTY is set when logs go to a terminal stderr, where they would
	// land in the middle of the picker's frames.
	logToTTY bool
}

// logger is shared by the command tree once flags are parsed.
var logger = log.New(io.Discard)

// stderrIsTerminal reports whether log output would reach a terminal.
var stderrIsTerminal = terminal.IsTerminal

// closeLog releases the log file opened for --log-file, if any.
var closeLog = func() error { return nil }

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "mkchoice [flags] [choices...] [-- literal choices...]",
		Short:         "Interactively choose one line from a list",
		Long:          longHelp,
		Example:       example,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.mcp {
				return runMCP(cmd, opts, args)
			}
			return runChoose(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&opts.vanish, "vanish", "v", false, "erase the prompt from the terminal after choosing")
	f.StringVarP(&opts.prompt, "prompt", "p", "", `prompt shown above the choices (default "Choose one:")`)
	f.StringVarP(&opts.selection, "selection", "s", "", "text of the initially selected choice")
	f.UintVarP(&opts.index, "index", "n", 0, "zero-based index of the initially selected choice")
	f.StringVar(&opts.highlight, "highlight", "", "color of the selected choice")
	f.BoolVar(&opts.mcp, "mcp", false, "run the choose MCP server over stdio")
	_ = f.MarkHidden("mcp")

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.config, "config", "", "config file (default $MKCHOICE_CONFIG or <user config dir>/mkchoice/config.yaml)")
	pf.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	pf.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")

	// No subcommands: cobra would add help and completion commands, and
	// those names must stay valid choices.
	return cmd
}

// Execute runs the root command.
func Execute() error {
	err := newRootCmd().Execute()
	if cerr := closeLog(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func setupLogging(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.Load(opts.config)
	if err != nil {
		return err
	}
	opts.cfg = cfg
	level := cfg.LogLevel
	if opts.debug {
		level = "debug"
	}

	w := cmd.ErrOrStderr()
	if opts.logFile != "" {
		f, err := logging.OpenFile(opts.logFile)
		if err != nil {
			return err
		}
		w = f
		closeLog = f.Close
	} else {
		opts.logToTTY = stderrIsTerminal(w)
	}

	l, err := logging.New(w, level)
	if err != nil {
		return err
	}
	logger = l
	if cfg.Path != "" {
		logger.Debug("loaded config", "path", cfg.Path)
	}
	return nil
}

func runChoose(cmd *cobra.Command, opts *rootOptions, args []string) error {
	choices, err := buildChoices(args, cmd.ArgsLenAtDash(), cmd.InOrStdin())
	if err != nil {
		return err
	}
	if len(choices) == 0 {
		return chooser.ErrEmptyOptions
	}

	c, err := newChooser(cmd, opts, opts.cfg, choices)
	if err != nil {
		return err
	}

	res, ok, err := presentFunc(c)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelled
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Text)
	return err
}

// newChooser applies config defaults, then flags, to a chooser for choices.
// An --index past the end selects the last choice.
func newChooser(cmd *cobra.Command, opts *rootOptions, cfg *config.Config, choices []string) (*chooser.Chooser, error) {
	c := chooser.New(choices)
	if opts.logToTTY {
		if opts.debug {
			terminal.Warning("picker debug logs are dropped while stderr is a terminal, use --log-file")
		}
	} else {
		c.Logger = logger
	}
	c.Prompt = cfg.Prompt
	c.Vanish = cfg.Vanish
	c.Highlight = cfg.HighlightSeq()

	flags := cmd.Flags()
	if flags.Changed("prompt") {
		c.Prompt = opts.prompt
	}
	if flags.Changed("vanish") {
		c.Vanish = opts.vanish
	}
	if flags.Changed("highlight") {
		cfg := *cfg
		cfg.Highlight = opts.highlight
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		c.Highlight = cfg.HighlightSeq()
	}
	if flags.Changed("index") {
		c.SetIndex(int(min(opts.index, uint(len(choices)))))
	}
	if flags.Changed("selection") {
		if !c.SetChoice(opts.selection) {
			terminal.Warning(fmt.Sprintf("%q is not one of the choices", opts.selection))
		}
	}
	return c, nil
}
