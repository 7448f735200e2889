package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	if err != nil || lvl != zerolog.InfoLevel {
		t.Fatalf("expected info default, got %v (%v)", lvl, err)
	}
	lvl, err = ParseLevel(" DEBUG ")
	if err != nil || lvl != zerolog.DebugLevel {
		t.Fatalf("expected debug, got %v (%v)", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestConsoleFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Console(&buf, "warn")
	if err != nil {
		t.Fatalf("Console failed: %v", err)
	}
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "eshgin.log")
	logger, closer, err := File(path, "info")
	if err != nil {
		t.Fatalf("File failed: %v", err)
	}
	logger.Info().Str("game", "bugs").Msg("session started")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"game":"bugs"`) {
		t.Fatalf("expected structured field in log, got %q", data)
	}
}
