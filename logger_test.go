package sprig

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	if Logger() == nil {
		t.Fatal("Logger() = nil")
	}
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger enabled")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	e, _ := newTestEngine(t)
	_ = e.PlaySound("missing")
	if out := buf.String(); !strings.Contains(out, "play of unknown sound") || !strings.Contains(out, "name=missing") {
		t.Errorf("log output = %q", out)
	}

	SetLogger(nil)
	buf.Reset()
	_ = e.PlaySound("missing")
	if buf.Len() != 0 {
		t.Errorf("nil logger still writes: %q", buf.String())
	}
}
