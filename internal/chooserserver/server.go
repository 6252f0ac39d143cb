// Package chooserserver exposes the picker as an MCP tool, so an agent host
// can ask the person at the keyboard to pick one of several options.
//
// The picker always runs on the controlling terminal, never on stdio, which
// carries the MCP transport.
package chooserserver

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/moasq/mkchoice/internal/chooser"
)

// Presenter runs a chooser to completion.
type Presenter func(*chooser.Chooser) (chooser.Result, bool, error)

// Options configures a Server.
type Options struct {
	Version string
	// Highlight is the escape sequence for the selected option.
	Highlight string
	Logger    *log.Logger
	// QuietPicker keeps Logger away from the picker, for when it writes to
	// the terminal the picker draws on.
	QuietPicker bool
	// Present defaults to presenting on the controlling terminal.
	Present Presenter
}

// Server answers choose tool calls one at a time: the terminal can only host
// one picker.
type Server struct {
	opts Options
	mu   sync.Mutex
}

// New returns a Server with defaults filled in.
func New(opts Options) *Server {
	if opts.Present == nil {
		opts.Present = func(c *chooser.Chooser) (chooser.Result, bool, error) {
			return c.PresentTTY()
		}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}
	return &Server{opts: opts}
}

// Run serves MCP over stdio. It blocks until the client disconnects or ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer().Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) mcpServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "mkchoice",
			Version: s.opts.Version,
		},
		nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "choose",
		Description: "Ask the user to choose exactly one of the given options in their terminal. Returns the chosen option and its zero-based index, or cancelled=true if the user dismissed the picker. Use this when a decision needs a human and the options are known.",
	}, s.handleChoose)

	return server
}

// chooseInput is the input for the choose tool.
type chooseInput struct {
	Prompt    string   `json:"prompt,omitempty" jsonschema:"Question shown above the options. Defaults to 'Choose one:'"`
	Options   []string `json:"options" jsonschema:"The options to choose from, in display order. Must not be empty"`
	Selection string   `json:"selection,omitempty" jsonschema:"Option text to select initially. Ignored if no option matches"`
	Index     *int     `json:"index,omitempty" jsonschema:"Zero-based index to select initially. Clamped to the last option"`
	Vanish    bool     `json:"vanish,omitempty" jsonschema:"Erase the picker from the terminal once the user has answered"`
}

// chooseOutput is the output of the choose tool.
type chooseOutput struct {
	Index     int    `json:"index"`
	Choice    string `json:"choice"`
	Cancelled bool   `json:"cancelled"`
}

func (s *Server) handleChoose(ctx context.Context, req *mcp.CallToolRequest, input chooseInput) (*mcp.CallToolResult, chooseOutput, error) {
	if len(input.Options) == 0 {
		return nil, chooseOutput{}, chooser.ErrEmptyOptions
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// The call may have waited for an earlier picker; the client can give up
	// in the meantime.
	if err := ctx.Err(); err != nil {
		return nil, chooseOutput{}, err
	}

	c := chooser.New(input.Options)
	if !s.opts.QuietPicker {
		c.Logger = s.opts.Logger
	}
	c.Vanish = input.Vanish
	if input.Prompt != "" {
		c.Prompt = input.Prompt
	}
	if s.opts.Highlight != "" {
		c.Highlight = s.opts.Highlight
	}
	if input.Index != nil {
		c.SetIndex(*input.Index)
	}
	if input.Selection != "" {
		c.SetChoice(input.Selection)
	}

	s.opts.Logger.Debug("choose", "options", len(input.Options), "start", c.Current)
	res, ok, err := s.opts.Present(c)
	if err != nil {
		return nil, chooseOutput{}, fmt.Errorf("failed to present choices: %w", err)
	}
	if !ok {
		return nil, chooseOutput{Index: -1, Cancelled: true}, nil
	}
	return nil, chooseOutput{Index: res.Index, Choice: res.Text}, nil
}
