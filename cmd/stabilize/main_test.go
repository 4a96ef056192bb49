package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCommand_Flags(t *testing.T) {
	cmd := newRootCommand()
	if err := cmd.ParseFlags([]string{"-vv", "-f", "box_patterns", "-C", "/rust", "--keep-going", "--log-level", "debug"}); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	flags := cmd.Flags()
	if got, _ := flags.GetCount("verbose"); got != 2 {
		t.Errorf("verbose = %d, want 2", got)
	}
	if got, _ := flags.GetString("feature"); got != "box_patterns" {
		t.Errorf("feature = %q, want %q", got, "box_patterns")
	}
	if got, _ := flags.GetString("root"); got != "/rust" {
		t.Errorf("root = %q, want %q", got, "/rust")
	}
	if got, _ := flags.GetBool("keep-going"); !got {
		t.Error("keep-going = false, want true")
	}
	if got, _ := flags.GetString("log-level"); got != "debug" {
		t.Errorf("log-level = %q, want %q", got, "debug")
	}
	if got, _ := flags.GetString("config"); got != "stabilize.toml" {
		t.Errorf("config = %q, want %q", got, "stabilize.toml")
	}
}

func TestRootCommand_Version(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out.String(), version) {
		t.Errorf("version output = %q, want it to contain %q", out.String(), version)
	}
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"extra"})
	if err := cmd.Execute(); err == nil {
		t.Error("Execute() error = nil, want error for positional argument")
	}
}

func TestRootCommand_NoFeatureIgnoresBrokenSetup(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "stabilize.toml")
	if err := os.WriteFile(cfgPath, []byte("root = [unterminated\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STABILIZE_SWEEP", "not-a-bool")

	cmd := newRootCommand()
	cmd.SetArgs([]string{"-c", cfgPath, "-C", filepath.Join(dir, "missing")})
	if err := cmd.Execute(); err != nil {
		t.Errorf("Execute() without --feature error = %v, want nil", err)
	}
}
