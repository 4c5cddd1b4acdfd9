package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("parse JSON log %q: %v", buf.String(), err)
	}
	return entry
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "default config", cfg: DefaultConfig()},
		{name: "text format", cfg: Config{Level: "debug", Format: "text"}},
		{name: "console format", cfg: Config{Level: "warn", Format: "console"}},
		{name: "empty level and format", cfg: Config{}},
		{name: "bad level", cfg: Config{Level: "loud"}, wantErr: true},
		{name: "bad format", cfg: Config{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if l == nil {
				t.Fatal("New() returned nil logger")
			}
		})
	}
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = SetLevel("info") })

	tests := []struct {
		level   string
		logFunc func(string, ...any)
	}{
		{"DEBUG", l.Debug},
		{"INFO", l.Info},
		{"WARN", l.Warn},
		{"ERROR", l.Error},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.logFunc("test message", "component", "test-value")

			entry := decode(t, &buf)
			if entry["level"] != tt.level {
				t.Errorf("level = %v, want %s", entry["level"], tt.level)
			}
			if entry["msg"] != "test message" {
				t.Errorf("msg = %v, want 'test message'", entry["msg"])
			}
			if entry["component"] != "test-value" {
				t.Errorf("component = %v, want 'test-value'", entry["component"])
			}
		})
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l.With("service", "memkv").Info("test message")

	if entry := decode(t, &buf); entry["service"] != "memkv" {
		t.Errorf("service = %v, want memkv", entry["service"])
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = SetLevel("info") })

	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug logged at info level: %s", buf.String())
	}

	if err := SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	if GetLevel() != "debug" {
		t.Errorf("GetLevel() = %q, want debug", GetLevel())
	}
	l.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("debug message should be logged after SetLevel(debug)")
	}

	if err := SetLevel("nonsense"); err == nil {
		t.Error("SetLevel(nonsense) should fail")
	}
	if GetLevel() != "debug" {
		t.Errorf("invalid SetLevel changed level to %q", GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSetDefault(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	var buf bytes.Buffer
	l, err := New(Config{Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	SetDefault(l)

	if Default() != l {
		t.Error("Default() should return the logger passed to SetDefault")
	}

	Info("from package")
	slog.Info("from slog")
	out := buf.String()
	if !strings.Contains(out, "from package") || !strings.Contains(out, "from slog") {
		t.Errorf("default output missing messages: %s", out)
	}
}

func TestContext_ConnID(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := WithLogger(context.Background(), l)
	ctx = WithConnID(ctx, "01HZCONN")

	if got := ConnIDFromContext(ctx); got != "01HZCONN" {
		t.Errorf("ConnIDFromContext = %q, want 01HZCONN", got)
	}

	L(ctx).Info("accepted")
	if entry := decode(t, &buf); entry["conn_id"] != "01HZCONN" {
		t.Errorf("conn_id = %v, want 01HZCONN", entry["conn_id"])
	}
}

func TestContext_Defaults(t *testing.T) {
	ctx := context.Background()

	if ConnIDFromContext(ctx) != "" {
		t.Error("empty context should have no conn ID")
	}
	if FromContext(ctx) != Default() {
		t.Error("FromContext without logger should return Default()")
	}
	if L(ctx) == nil {
		t.Error("L should never return nil")
	}
}

func TestLogger_ConnIDSurvivesWith(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := WithConnID(context.Background(), "01HZCONN")
	l.WithContext(ctx).With("remote", "127.0.0.1:5000").Info("read")

	entry := decode(t, &buf)
	if entry["conn_id"] != "01HZCONN" {
		t.Errorf("conn_id = %v, want 01HZCONN", entry["conn_id"])
	}
	if entry["remote"] != "127.0.0.1:5000" {
		t.Errorf("remote = %v, want 127.0.0.1:5000", entry["remote"])
	}

	buf.Reset()
	l.Info("no conn")
	if _, ok := decode(t, &buf)["conn_id"]; ok {
		t.Error("conn_id logged without a connection context")
	}
}

func TestGetLevel_Canonical(t *testing.T) {
	t.Cleanup(func() { _ = SetLevel("info") })

	if err := SetLevel("WARNING"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	if got := GetLevel(); got != "warn" {
		t.Errorf("GetLevel() = %q, want warn", got)
	}

	if _, err := New(Config{Level: "debug", Format: "xml"}); err == nil {
		t.Fatal("New() with bad format should fail")
	}
	if got := GetLevel(); got != "warn" {
		t.Errorf("failed New() changed level to %q", got)
	}
}
