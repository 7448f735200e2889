package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eshginfarzali/eshgin/internal/config"
	"github.com/eshginfarzali/eshgin/internal/model"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv(envLogLevel, "")
	t.Setenv(envAddr, "")
	return dir
}

func writeConfig(t *testing.T, body string) {
	t.Helper()
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSnippetsCommandPrintsCatalog(t *testing.T) {
	isolate(t)
	out, err := execute(t, "snippets")
	if err != nil {
		t.Fatalf("snippets: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 8 {
		t.Fatalf("expected 8 snippets, got %d: %q", len(lines), out)
	}
}

func TestSnippetsCommandMaxLengthFromConfig(t *testing.T) {
	isolate(t)
	writeConfig(t, "[typing]\nmax-length = 24\n")
	out, err := execute(t, "snippets")
	if err != nil {
		t.Fatalf("snippets: %v", err)
	}
	want := "let x = 42; x *= 2;\nexport default Component;\n"
	if out != want {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestSnippetsCommandFromFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "snippets.txt")
	if err := os.WriteFile(path, []byte("# go\nfmt.Println(x)\n\nx := 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := execute(t, "snippets", "--snippets", path)
	if err != nil {
		t.Fatalf("snippets: %v", err)
	}
	if out != "fmt.Println(x)\nx := 1\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestProfileCommandRendersDefault(t *testing.T) {
	isolate(t)
	out, err := execute(t, "profile")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if !strings.Contains(out, "Eshgin") {
		t.Fatalf("expected profile name in output:\n%s", out)
	}
}

func TestUnknownConfigKeyFails(t *testing.T) {
	isolate(t)
	writeConfig(t, "[bugs]\nspeed = 3\n")
	if _, err := execute(t, "snippets"); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	isolate(t)
	writeConfig(t, "[bugs]\nspawn-interval = \"1s\"\nmax-targets = 3\n[typing]\nround-seconds = 45\n")
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--max-targets", "7"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Bugs.SpawnInterval != time.Second {
		t.Fatalf("expected config interval, got %v", cfg.Bugs.SpawnInterval)
	}
	if cfg.Bugs.MaxTargets != 7 {
		t.Fatalf("expected flag to win, got %d", cfg.Bugs.MaxTargets)
	}
	if cfg.Typing.RoundSeconds != 45 {
		t.Fatalf("expected config round seconds, got %d", cfg.Typing.RoundSeconds)
	}
	if cfg.Log.File != config.DefaultLogPath() {
		t.Fatalf("expected default log path, got %q", cfg.Log.File)
	}
}

func TestEnvIsBeneathConfig(t *testing.T) {
	isolate(t)
	t.Setenv(envLogLevel, "debug")
	cmd := newRootCmd()
	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected env level, got %q", cfg.Log.Level)
	}

	writeConfig(t, "[log]\nlevel = \"warn\"\n")
	cmd = newRootCmd()
	cfg, err = resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("expected config level over env, got %q", cfg.Log.Level)
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	isolate(t)
	writeConfig(t, defaultConfigTemplate())
	if _, err := config.LoadConfig(config.DefaultConfigPath()); err != nil {
		t.Fatalf("template should decode: %v", err)
	}
}

func TestValidateConfig(t *testing.T) {
	valid := model.Config{
		Bugs:   model.BugsConfig{SpawnInterval: time.Second, MaxTargets: 5, Margin: 40},
		Typing: model.TypingConfig{RoundSeconds: 30},
		Log:    model.LogConfig{Level: "info"},
		Serve:  model.ServeConfig{Addr: ":8080", AreaWidth: 800, AreaHeight: 600},
	}
	if err := validateConfig(valid); err != nil {
		t.Fatalf("expected valid config: %v", err)
	}

	bad := valid
	bad.Bugs.MaxTargets = 0
	if err := validateConfig(bad); err == nil {
		t.Fatalf("expected max-targets error")
	}
	bad = valid
	bad.Typing.RoundSeconds = -1
	if err := validateConfig(bad); err == nil {
		t.Fatalf("expected round-seconds error")
	}
	bad = valid
	bad.Log.Level = "loud"
	if err := validateConfig(bad); err == nil {
		t.Fatalf("expected log level error")
	}
	bad = valid
	bad.Bugs.SpawnInterval = 0
	if err := validateConfig(bad); err == nil {
		t.Fatalf("expected spawn-interval error")
	}
}
