package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupWritesJSONToStateDir(t *testing.T) {
	root := t.TempDir()

	cleanup, err := Setup(Config{Root: root, Debug: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := IsReady(); err != nil {
		t.Fatalf("expected ready logger: %v", err)
	}

	want := filepath.Join(root, ".domscan", "logs", "domscan.log")
	if Path() != want {
		t.Fatalf("expected path %q, got %q", want, Path())
	}

	L().Debug("registry.load.ok", "count", 3)
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	b, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), `"msg":"registry.load.ok"`) || !strings.Contains(string(b), `"count":3`) {
		t.Fatalf("expected debug record in log, got %s", b)
	}
	if IsReady() == nil {
		t.Fatalf("expected logger to be reset after cleanup")
	}
}

func TestConsoleLevels(t *testing.T) {
	var buf bytes.Buffer
	l := Console(&buf, false)

	l.Debug("hidden")
	l.Info("sync.ok", "domain", "a.com")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug should be filtered at info level: %q", out)
	}
	if !strings.Contains(out, "sync.ok") || !strings.Contains(out, "a.com") {
		t.Fatalf("expected info record, got %q", out)
	}
}

func TestTeeFansOut(t *testing.T) {
	var a, b bytes.Buffer
	l := Tee(Console(&a, true), Console(&b, false), nil)

	l.Debug("only.a")
	l.Info("both")

	if !strings.Contains(a.String(), "only.a") || strings.Contains(b.String(), "only.a") {
		t.Fatalf("level filtering per handler failed: a=%q b=%q", a.String(), b.String())
	}
	if !strings.Contains(a.String(), "both") || !strings.Contains(b.String(), "both") {
		t.Fatalf("expected both handlers to receive info: a=%q b=%q", a.String(), b.String())
	}
}
