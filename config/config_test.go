package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/rudolf/constant"
	"github.com/lixenwraith/rudolf/input"
	"github.com/lixenwraith/rudolf/navigation"
	"github.com/lixenwraith/rudolf/terminal"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeFile(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	// Point the default path at an empty directory
	env := envMap(map[string]string{"XDG_CONFIG_HOME": t.TempDir()})

	cfg, err := Load(nil, env, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Backend != terminal.BackendStdio {
		t.Errorf("Expected stdio backend, got %q", cfg.Backend)
	}
	if cfg.PollInterval != constant.PollInterval {
		t.Errorf("Expected %v, got %v", constant.PollInterval, cfg.PollInterval)
	}
	if cfg.Marker != "~" || cfg.Welcome != constant.WelcomeMessage {
		t.Errorf("Unexpected banner settings %q %q", cfg.Marker, cfg.Welcome)
	}
	if cfg.Path != "" {
		t.Errorf("Expected no config path, got %q", cfg.Path)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, `
backend = "tty"
poll_ms = 100
marker = "."
sound = true

[keys]
"j" = "move_down"
`)

	// File only
	cfg, err := Load([]string{"-config", path}, envMap(nil), io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Backend != terminal.BackendTTY || cfg.PollInterval != 100*time.Millisecond || cfg.Marker != "." || !cfg.Sound {
		t.Errorf("File values not applied: %+v", cfg)
	}
	if cfg.Keys["j"] != "move_down" {
		t.Errorf("Expected key override, got %v", cfg.Keys)
	}
	if cfg.Path != path {
		t.Errorf("Expected path %q, got %q", path, cfg.Path)
	}

	// Env over file
	env := envMap(map[string]string{EnvPollMS: "200", EnvBackend: "stdio", EnvSound: "false"})
	cfg, err = Load([]string{"-config", path}, env, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.PollInterval != 200*time.Millisecond || cfg.Backend != terminal.BackendStdio || cfg.Sound {
		t.Errorf("Env values not applied: %+v", cfg)
	}

	// Flags over env
	cfg, err = Load([]string{"-config", path, "-poll", "300", "-sound"}, env, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.PollInterval != 300*time.Millisecond || !cfg.Sound {
		t.Errorf("Flag values not applied: %+v", cfg)
	}
	// Unset flags keep env values
	if cfg.Backend != terminal.BackendStdio {
		t.Errorf("Expected env backend to survive, got %q", cfg.Backend)
	}
}

func TestLoadDefaultPathFile(t *testing.T) {
	xdg := t.TempDir()
	dir := filepath.Join(xdg, constant.AppName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, `debug = true`)

	cfg, err := Load(nil, envMap(map[string]string{"XDG_CONFIG_HOME": xdg}), io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !cfg.Debug {
		t.Error("Expected debug from default path file")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		env  map[string]string
		body string
	}{
		{"missing explicit file", []string{"-config", filepath.Join(dir, "absent.toml")}, nil, ""},
		{"unknown file key", nil, nil, `colour = "red"`},
		{"bad toml", nil, nil, `backend = `},
		{"bad backend", []string{"-backend", "x11"}, nil, ""},
		{"poll too small", []string{"-poll", "1"}, nil, ""},
		{"poll too large", nil, map[string]string{EnvPollMS: "60000"}, ""},
		{"bad env int", nil, map[string]string{EnvPollMS: "fast"}, ""},
		{"bad env bool", nil, map[string]string{EnvDebug: "maybe"}, ""},
		{"control marker", nil, nil, "marker = \"\\u001b\""},
		{"empty marker", nil, nil, `marker = ""`},
		{"wide marker", nil, nil, `marker = "~~~"`},
		{"unknown action", nil, nil, "[keys]\n\"x\" = \"fly\""},
		{"stray argument", []string{"file.txt"}, nil, ""},
		{"unknown flag", []string{"-color", "256"}, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.args
			if tt.body != "" {
				sub := t.TempDir()
				args = append([]string{"-config", writeFile(t, sub, tt.body)}, args...)
			}
			env := map[string]string{"XDG_CONFIG_HOME": dir}
			for k, v := range tt.env {
				env[k] = v
			}
			_, err := Load(args, envMap(env), io.Discard)
			if !errors.Is(err, ErrConfig) {
				t.Errorf("Expected ErrConfig, got %v", err)
			}
		})
	}
}

func TestLoadHelp(t *testing.T) {
	var sb strings.Builder
	_, err := Load([]string{"-h"}, envMap(nil), &sb)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("Expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(sb.String(), "-backend") {
		t.Errorf("Expected usage output, got %q", sb.String())
	}
}

func TestKeymapOverrides(t *testing.T) {
	cfg := Default()
	cfg.Keys = map[string]string{"ctrl+x": "quit", "shift+up": "none"}

	km, err := cfg.Keymap()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	quit := km.Classify(terminal.Event{Type: terminal.EventKey, Key: terminal.KeyCtrlX})
	if quit.Type != input.IntentQuit {
		t.Errorf("Expected quit on ctrl+x, got %+v", quit)
	}
	jump := km.Classify(terminal.Event{Type: terminal.EventKey, Key: terminal.KeyUp, Modifiers: terminal.ModShift})
	if jump.Type != input.IntentNone {
		t.Errorf("Expected shift+up unbound, got %+v", jump)
	}
	move := km.Classify(terminal.Event{Type: terminal.EventKey, Key: terminal.KeyUp})
	if move != input.Move(navigation.DirUp) {
		t.Errorf("Expected default up binding to survive, got %+v", move)
	}
}

func TestDefaultPath(t *testing.T) {
	if got := DefaultPath(envMap(map[string]string{"XDG_CONFIG_HOME": "/x"})); got != "/x/rudolf/config.toml" {
		t.Errorf("Expected XDG path, got %q", got)
	}
	if got := DefaultPath(envMap(map[string]string{"HOME": "/home/u"})); got != "/home/u/.config/rudolf/config.toml" {
		t.Errorf("Expected HOME path, got %q", got)
	}
	if got := DefaultPath(envMap(nil)); got != "" {
		t.Errorf("Expected empty path, got %q", got)
	}
}
