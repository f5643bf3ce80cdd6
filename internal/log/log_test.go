package log

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestNewWriterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "warn")

	l.Info("hidden")
	l.Debugf("hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("Expected no output below warn, got %q", buf.String())
	}

	l.Warnf("texture %s missing", "a.png")
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("Expected a JSON record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "texture a.png missing" {
		t.Errorf("Expected formatted message, got %v", rec["msg"])
	}
	if _, ok := rec["callstack"]; !ok {
		t.Errorf("Expected callstack attribute in %v", rec)
	}
}

func TestWithAddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "debug").With("component", "render")
	l.Debug("hello")
	if !strings.Contains(buf.String(), `"component":"render"`) {
		t.Errorf("Expected component attribute, got %q", buf.String())
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Debug("dropped")
	l.Infof("dropped %d", 2)
	if l.With("a", 1) != nil {
		t.Errorf("Expected nil from With on nil logger")
	}
}

func TestCallstackStartsAtCaller(t *testing.T) {
	fr := func() []StackFrame { return Callstack(nil) }()
	if len(fr) == 0 {
		t.Fatalf("Expected frames")
	}
	if fr[0].File != "log_test.go" {
		t.Errorf("Expected log_test.go, got %s", fr[0].String())
	}
}

func TestNewWritesRotatedFile(t *testing.T) {
	dir := t.TempDir()
	l := New("info", dir)
	l.Info("render device ready")
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !strings.HasPrefix(l.LogFile, dir) {
		t.Errorf("Expected log file below %s, got %s", dir, l.LogFile)
	}
	data, err := os.ReadFile(l.LogFile)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "render device ready") {
		t.Errorf("Expected message in log file, got %q", data)
	}
}

func TestRecordStackStartsOutsideLogger(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf, "info").Infof("loaded %d images", 3)

	var rec struct {
		Callstack []StackFrame `json:"callstack"`
	}
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("Expected a JSON record, got %q: %v", buf.String(), err)
	}
	if len(rec.Callstack) == 0 {
		t.Fatalf("Expected a call stack")
	}
	if top := rec.Callstack[0]; top.File != "log_test.go" || !strings.Contains(top.Function, "TestRecordStackStartsOutsideLogger") {
		t.Errorf("Expected the test as innermost frame, got %s", top)
	}
	if n := len(rec.Callstack); n > maxFrames {
		t.Errorf("Expected at most %d frames, got %d", maxFrames, n)
	}
}
