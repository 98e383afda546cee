package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestPackage_LogFunctions_UseDefaultLogger(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	var buf bytes.Buffer

	SetDefault(Make(&buf, WithLevel(LevelTrace), WithFormat(FormatJSON)))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Trace", Trace, "TRACE"},
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("message", slog.String("key", "value"))

			output := buf.String()
			if !strings.Contains(output, `"level":"`+tt.level+`"`) {
				t.Errorf("expected level %q, got: %s", tt.level, output)
			}
			if !strings.Contains(output, `"key":"value"`) {
				t.Errorf("expected attribute, got: %s", output)
			}
		})
	}
}

func TestPackage_ContextFunctions_UseDefaultLogger(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	var buf bytes.Buffer

	SetDefault(Make(&buf, WithLevel(LevelTrace), WithPretty(false)))

	ctx := context.Background()
	for _, fn := range []func(context.Context, string, ...slog.Attr){
		TraceContext, DebugContext, InfoContext, WarnContext, ErrorContext,
	} {
		fn(ctx, "ctx message")
	}

	if n := strings.Count(buf.String(), "ctx message"); n != 5 {
		t.Errorf("expected 5 messages, got %d:\n%s", n, buf.String())
	}
}

func TestPackage_Config_WrapsDefault(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	var buf bytes.Buffer

	SetDefault(Make(&buf, WithCaller(true), WithFormat(FormatJSON)))
	Config(WithLevel(LevelDebug))
	Debug("configured")

	if !strings.Contains(buf.String(), "configured") {
		t.Fatalf("Config lost output writer: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "default_test.go") {
		t.Errorf("expected caller in default_test.go, got %q", buf.String())
	}

	With(slog.Int("n", 1)).Info("with attrs")

	if !strings.Contains(buf.String(), `"n":1`) {
		t.Errorf("With lost attributes: %q", buf.String())
	}
}
