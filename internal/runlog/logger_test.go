package runlog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerDisabledByDefault(t *testing.T) {
	l := &Logger{}
	l.Info("ignored", "k", "v")
	if l.Enabled() {
		t.Error("zero Logger should be disabled")
	}
}

func TestLoggerKeyValues(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{}
	l.SetOutput(&buf)

	l.Info("sheet generated", "colors", 3, "layer", "Pantone Swatches")
	l.Warn("odd", "dangling")

	out := buf.String()
	if !strings.Contains(out, "[INFO] sheet generated colors=3 layer=Pantone Swatches") {
		t.Errorf("unexpected info line: %q", out)
	}
	if !strings.Contains(out, "[WARN] odd\n") {
		t.Errorf("dangling key should be dropped: %q", out)
	}
}

func TestTimed(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{}
	l.SetOutput(&buf)

	l.Timed("parse")()

	out := buf.String()
	if !strings.Contains(out, "parse status=started") || !strings.Contains(out, "parse status=completed") {
		t.Errorf("Timed() output = %q", out)
	}
}

func TestInitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	Log.Error("boom", "code", 7)
	if err := Log.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "[ERROR] boom code=7") {
		t.Errorf("log file = %q", data)
	}

	if err := Init(""); err != nil {
		t.Fatalf("Init(\"\") error = %v", err)
	}
	if Log.Enabled() {
		t.Error("Init(\"\") should disable logging")
	}
}
