package chooserserver

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/moasq/mkchoice/internal/chooser"
	"github.com/moasq/mkchoice/internal/terminal"
)

// recordingPresenter confirms whatever option is selected when presented.
type recordingPresenter struct {
	got    *chooser.Chooser
	cancel bool
	err    error
}

func (p *recordingPresenter) present(c *chooser.Chooser) (chooser.Result, bool, error) {
	p.got = c
	if p.err != nil {
		return chooser.Result{}, false, p.err
	}
	if p.cancel {
		return chooser.Result{}, false, nil
	}
	return chooser.Result{Index: c.Current, Text: c.Choices[c.Current]}, true, nil
}

func TestHandleChooseConfirms(t *testing.T) {
	p := &recordingPresenter{}
	s := New(Options{Present: p.present, Highlight: terminal.Cyan})
	idx := 9
	_, out, err := s.handleChoose(context.Background(), nil, chooseInput{
		Prompt:  "Deploy where?",
		Options: []string{"staging", "production"},
		Index:   &idx,
		Vanish:  true,
	})
	if err != nil {
		t.Fatalf("handleChoose: %v", err)
	}
	if diff := cmp.Diff(chooseOutput{Index: 1, Choice: "production"}, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if p.got.Prompt != "Deploy where?" || !p.got.Vanish || p.got.Highlight != terminal.Cyan {
		t.Errorf("chooser not configured from input: %+v", p.got)
	}
}

func TestHandleChooseQuietPicker(t *testing.T) {
	logger := log.New(io.Discard)
	for _, quiet := range []bool{false, true} {
		p := &recordingPresenter{}
		s := New(Options{Present: p.present, Logger: logger, QuietPicker: quiet})
		if _, _, err := s.handleChoose(context.Background(), nil, chooseInput{Options: []string{"a"}}); err != nil {
			t.Fatal(err)
		}
		if got := p.got.Logger != nil; got == quiet {
			t.Errorf("QuietPicker=%v: picker logger set = %v", quiet, got)
		}
	}
}

func TestHandleChooseSelectionWinsOverIndex(t *testing.T) {
	p := &recordingPresenter{}
	s := New(Options{Present: p.present})
	idx := 0
	_, out, err := s.handleChoose(context.Background(), nil, chooseInput{
		Options:   []string{"a", "b", "c"},
		Index:     &idx,
		Selection: "c",
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.Index != 2 || out.Choice != "c" {
		t.Errorf("got %+v", out)
	}
	if p.got.Prompt != chooser.DefaultPrompt {
		t.Errorf("prompt = %q, want default", p.got.Prompt)
	}
}

func TestHandleChooseCancelled(t *testing.T) {
	p := &recordingPresenter{cancel: true}
	_, out, err := New(Options{Present: p.present}).handleChoose(context.Background(), nil, chooseInput{Options: []string{"a"}})
	if err != nil {
		t.Fatal(err)
	}
	if !out.Cancelled || out.Index != -1 || out.Choice != "" {
		t.Errorf("got %+v", out)
	}
}

func TestHandleChooseErrors(t *testing.T) {
	p := &recordingPresenter{err: chooser.ErrNotATerminal}
	s := New(Options{Present: p.present})

	if _, _, err := s.handleChoose(context.Background(), nil, chooseInput{}); !errors.Is(err, chooser.ErrEmptyOptions) {
		t.Errorf("expected ErrEmptyOptions, got %v", err)
	}
	if p.got != nil {
		t.Error("presenter called for empty options")
	}

	if _, _, err := s.handleChoose(context.Background(), nil, chooseInput{Options: []string{"a"}}); !errors.Is(err, chooser.ErrNotATerminal) {
		t.Errorf("expected ErrNotATerminal, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.got = nil
	if _, _, err := s.handleChoose(ctx, nil, chooseInput{Options: []string{"a"}}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if p.got != nil {
		t.Error("presenter called after cancellation")
	}
}

func TestMCPServerBuilds(t *testing.T) {
	if New(Options{}).mcpServer() == nil {
		t.Fatal("expected server")
	}
}
