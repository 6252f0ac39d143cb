package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/moasq/mkchoice/internal/terminal"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv(EnvPath, filepath.Join(t.TempDir(), "nope.yaml"))
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "prompt: Which one?\nvanish: true\nhighlight: Cyan\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &Config{Prompt: "Which one?", Vanish: true, Highlight: "Cyan", LogLevel: "warn", Path: path}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.HighlightSeq() != terminal.Cyan {
		t.Errorf("HighlightSeq = %q", cfg.HighlightSeq())
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "log_level: debug\n")
	t.Setenv(EnvPath, path)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.Path != path {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":  "prompt: [unterminated\n",
		"bad color": "highlight: mauve\n",
		"bad level": "log_level: loud\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatal("expected error")
			} else if !strings.Contains(err.Error(), "config") {
				t.Errorf("error does not mention config: %v", err)
			}
		})
	}
}
