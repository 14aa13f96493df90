package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	path := filepath.Join(base, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`data_dir = "` + filepath.Join(base, "data") + `"`,
		`log_dir = "` + filepath.Join(base, "logs") + `"`,
		`watch_dir = "` + filepath.Join(base, "inbox") + `"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCommand(t *testing.T, configPath string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("lyrix %s: %v\noutput:\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestNewAndListCommands(t *testing.T) {
	configPath := writeTestConfig(t)

	out := runCommand(t, configPath, "new", "Test Song", "Test Artist")
	if !strings.Contains(out, "Created ") {
		t.Fatalf("unexpected new output: %q", out)
	}

	listOut := runCommand(t, configPath, "list", "--json")
	var entries []map[string]any
	if err := json.Unmarshal([]byte(listOut), &entries); err != nil {
		t.Fatalf("decode list output: %v\n%s", err, listOut)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0]["title"] != "Test Song" || entries[0]["artist"] != "Test Artist" {
		t.Fatalf("unexpected entry: %v", entries[0])
	}
}

func TestImportExportRoundTrip(t *testing.T) {
	configPath := writeTestConfig(t)

	lrcPath := filepath.Join(t.TempDir(), "song.lrc")
	content := "[ti:Round Trip]\n[ar:Tester]\n\n[00:01.00]first line\n[00:03.50]second line\n"
	if err := os.WriteFile(lrcPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write lrc: %v", err)
	}

	out := runCommand(t, configPath, "import", lrcPath)
	if !strings.Contains(out, "Imported ") {
		t.Fatalf("unexpected import output: %q", out)
	}

	listOut := runCommand(t, configPath, "list", "--json")
	var entries []map[string]any
	if err := json.Unmarshal([]byte(listOut), &entries); err != nil {
		t.Fatalf("decode list output: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	id, _ := entries[0]["timelineId"].(string)
	if id == "" {
		t.Fatalf("missing timeline id in %v", entries[0])
	}

	exported := runCommand(t, configPath, "export", id)
	if !strings.Contains(exported, "[ti:Round Trip]") || !strings.Contains(exported, "[00:03.50]second line") {
		t.Fatalf("unexpected export output:\n%s", exported)
	}
}

func TestDeleteRequiresTargetOrAll(t *testing.T) {
	configPath := writeTestConfig(t)

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--config", configPath, "delete"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("delete without id or --all must fail")
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "init", "--path", target})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config missing: %v", err)
	}
}
