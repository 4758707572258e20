package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "info")
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("hidden")
	logger.Info("deleted", "id", "test123")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %q", out)
	}
	for _, want := range []string{"INFO", "tada", "deleted", "id=test123"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "loud"); err == nil {
		t.Error("unknown level accepted")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tada.log")
	logger, closer, err := OpenFile(path, "debug")
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("refresh", "count", 2)
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "msg=refresh") || !strings.Contains(string(b), "count=2") {
		t.Errorf("log file: %q", b)
	}
}

func TestOpenFileEmptyPathDiscards(t *testing.T) {
	logger, closer, err := OpenFile("", "debug")
	if err != nil || logger == nil || closer == nil {
		t.Fatalf("OpenFile(\"\"): %v %v %v", logger, closer, err)
	}
	logger.Info("nowhere")
	if err := closer.Close(); err != nil {
		t.Error(err)
	}
}
