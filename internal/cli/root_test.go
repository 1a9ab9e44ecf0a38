package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/cardboard/pkg/buildinfo"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"show", "add", "delete", "update", "move", "reorder", "resize", "drop",
		"export", "serve", "tui", "config", "boards", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	for _, path := range [][]string{{"resize", "width"}, {"resize", "height"}, {"boards", "list"}, {"config", "show"}} {
		if cmd, _, err := root.Find(path); err != nil || cmd.Name() != path[1] {
			t.Errorf("subcommand %v not registered", path)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	isolate(t)
	root := New(io.Discard, LogInfo).RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("--version: %v", err)
	}
	if !strings.Contains(out.String(), "cardboard version "+buildinfo.Version) {
		t.Errorf("version output = %q", out.String())
	}
}
