package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewPrefixAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, log.InfoLevel)

	logger.Debug("hidden")
	logger.Info("scene ready", "objects", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message written at info level: %q", out)
	}
	for _, want := range []string{"cubeview", "scene ready", "objects=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestLevel(t *testing.T) {
	if Level(true) != log.DebugLevel || Level(false) != log.InfoLevel {
		t.Error("Level mapping wrong")
	}
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cubeview.log")
	for _, msg := range []string{"first", "second"} {
		logger, f, err := OpenFile(path, log.InfoLevel)
		if err != nil {
			t.Fatal(err)
		}
		logger.Info(msg)
		f.Close()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "first") || !strings.Contains(string(data), "second") {
		t.Errorf("log file = %q", data)
	}
}
