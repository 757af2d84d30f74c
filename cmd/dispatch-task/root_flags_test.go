package main

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"dispatch-cli/internal/config"
)

func TestParseRootArgsStopsAtSubcommand(t *testing.T) {
	orig := []string{"send", "--id", "VOI-50"}
	root, rest, err := parseRootArgs(orig)
	if err != nil {
		t.Fatalf("parseRootArgs returned error: %v", err)
	}
	if len(root.overrides) != 0 {
		t.Fatalf("expected no overrides, got %v", root.overrides)
	}
	if root.logLevel != "info" {
		t.Fatalf("logLevel = %q, want info", root.logLevel)
	}
	if !reflect.DeepEqual(rest, orig) {
		t.Fatalf("expected rest to preserve args %v, got %v", orig, rest)
	}
}

func TestParseRootArgsExtractsOverrides(t *testing.T) {
	args := []string{
		"-c", "agent_profile=manus-1.5",
		"-c=language=en",
		"-log-level", "debug",
		"-log-file", "/tmp/x.log",
		"send", "--dry-run",
	}
	root, rest, err := parseRootArgs(args)
	if err != nil {
		t.Fatalf("parseRootArgs returned error: %v", err)
	}
	if want := []string{"agent_profile=manus-1.5", "language=en"}; !reflect.DeepEqual(root.overrides, want) {
		t.Fatalf("overrides = %v, want %v", root.overrides, want)
	}
	if root.logLevel != "debug" || root.logFile != "/tmp/x.log" {
		t.Fatalf("log flags = %q/%q", root.logLevel, root.logFile)
	}
	if want := []string{"send", "--dry-run"}; !reflect.DeepEqual(rest, want) {
		t.Fatalf("rest = %v, want %v", rest, want)
	}
}

func TestParseRootArgsRejectsUnknownFlag(t *testing.T) {
	if _, _, err := parseRootArgs([]string{"--bogus", "send"}); err == nil {
		t.Fatalf("parseRootArgs(--bogus) = nil error")
	}
}

func TestRunInit(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvBaseURL, "")
	path := filepath.Join(t.TempDir(), "config.toml")
	root := rootArgs{overrides: []string{"agent_profile=manus-1.5"}}

	if err := runInit(root, []string{"--config", path}, nil, io.Discard, io.Discard); err != nil {
		t.Fatalf("runInit: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AgentProfile != "manus-1.5" {
		t.Fatalf("AgentProfile = %q", cfg.AgentProfile)
	}

	err = runInit(root, []string{"--config", path}, nil, io.Discard, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("second runInit = %v, want already exists", err)
	}
	if err := runInit(rootArgs{}, []string{"--config", path, "--force"}, nil, io.Discard, io.Discard); err != nil {
		t.Fatalf("runInit --force: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), config.DefaultAgentProfile) {
		t.Fatalf("forced config should carry default profile:\n%s", data)
	}
}

func TestRunLogin_RejectsEmpty(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if err := runLogin(rootArgs{}, nil, strings.NewReader("\n"), io.Discard, io.Discard); err == nil {
		t.Fatalf("runLogin(empty) = nil error")
	}
	if err := runLogin(rootArgs{}, []string{"--api-key", "k-1"}, strings.NewReader(""), io.Discard, io.Discard); err != nil {
		t.Fatalf("runLogin(--api-key): %v", err)
	}
}
