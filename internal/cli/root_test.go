package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/tilegrid/pkg/errors"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"pack", "layout", "query", "render", "browse", "serve", "cache", "config", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"verbose", "config"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing persistent flag --%s", flag)
		}
	}
}

func TestInvalidConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfg, []byte("[layout]\npadding = -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"--config", cfg, "pack"})
	if err := root.Execute(); !errors.Is(err, errors.ErrCodeInvalidConfiguration) {
		t.Errorf("got %v, want INVALID_CONFIGURATION", err)
	}
}

func TestConfigOverridesAndFlags(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Layout.Width = 500
	c.Config.Render.Seed = 7

	opts := c.options(layoutFlags{})
	if opts.Width != 500 || opts.Seed != 7 {
		t.Errorf("config not applied: %+v", opts)
	}
	opts = c.options(layoutFlags{width: 348, seed: 9, strict: true})
	if opts.Width != 348 || opts.Seed != 9 || !opts.Strict {
		t.Errorf("flags not applied: %+v", opts)
	}
}
