package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestConsoleHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, slog.LevelInfo))

	logger.Debug("hidden")
	logger.With("song", "abc").Info("saved song", "lines", 12)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record should be suppressed: %q", out)
	}
	if !strings.Contains(out, "saved song") {
		t.Fatalf("missing message: %q", out)
	}
	if !strings.Contains(out, "song=abc") || !strings.Contains(out, "lines=12") {
		t.Fatalf("missing attributes: %q", out)
	}
}

func TestConsoleHandlerQuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newConsoleHandler(&buf, slog.LevelInfo))

	logger.Info("imported", "title", "Bohemian Rhapsody")

	if !strings.Contains(buf.String(), `title="Bohemian Rhapsody"`) {
		t.Fatalf("spaced value should be quoted: %q", buf.String())
	}
}

func TestNewJSONFormat(t *testing.T) {
	logger, err := New(Options{Level: "info", Format: "json", OutputPaths: []string{"stderr"}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger")
	}

	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestJSONHandlerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logger.Info("exported bundle", "songs", 3)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if record["msg"] != "exported bundle" {
		t.Fatalf("unexpected msg: %v", record["msg"])
	}
}
