// @lixen: #focus{sys[config]}
// Package config resolves run settings from defaults, a TOML file,
// RUDOLF_* environment variables and command-line flags, in that order
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/rudolf/constant"
	"github.com/lixenwraith/rudolf/input"
	"github.com/lixenwraith/rudolf/terminal"
)

// ErrConfig marks an unusable configuration value or source
var ErrConfig = errors.New("configuration failure")

// Environment variables consulted by Load
const (
	EnvBackend = "RUDOLF_BACKEND"
	EnvPollMS  = "RUDOLF_POLL_MS"
	EnvSound   = "RUDOLF_SOUND"
	EnvDebug   = "RUDOLF_DEBUG"
)

// Config is the resolved run configuration
type Config struct {
	Path         string // File the settings were read from, empty if none
	Backend      string
	PollInterval time.Duration
	Marker       string
	Welcome      string
	Sound        bool
	Debug        bool
	LogDir       string
	Keys         map[string]string // Binding overrides, "<binding>" = "<action>"
}

// fileConfig mirrors the TOML layout; nil fields were absent from the file
type fileConfig struct {
	Backend *string           `toml:"backend"`
	PollMS  *int              `toml:"poll_ms"`
	Marker  *string           `toml:"marker"`
	Welcome *string           `toml:"welcome"`
	Sound   *bool             `toml:"sound"`
	Debug   *bool             `toml:"debug"`
	LogDir  *string           `toml:"log_dir"`
	Keys    map[string]string `toml:"keys"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Backend:      terminal.BackendStdio,
		PollInterval: constant.PollInterval,
		Marker:       constant.EmptyRowMarker,
		Welcome:      constant.WelcomeMessage,
		LogDir:       constant.LogDir,
		Keys:         map[string]string{},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/rudolf/config.toml, falling back to ~/.config
func DefaultPath(getenv func(string) string) string {
	base := getenv("XDG_CONFIG_HOME")
	if base == "" {
		home := getenv("HOME")
		if home == "" {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, constant.AppName, "config.toml")
}

// Load resolves configuration from all sources
// args excludes the program name; getenv is usually os.Getenv
// flag.ErrHelp is returned unwrapped when -h is given
func Load(args []string, getenv func(string) string, usage io.Writer) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet(constant.AppName, flag.ContinueOnError)
	fs.SetOutput(usage)
	path := fs.String("config", "", "Config file path (default $XDG_CONFIG_HOME/rudolf/config.toml)")
	backend := fs.String("backend", cfg.Backend, "Terminal backend: stdio, tty")
	pollMS := fs.Int("poll", int(cfg.PollInterval/time.Millisecond), "Input poll interval in milliseconds")
	sound := fs.Bool("sound", cfg.Sound, "Play a cue when the cursor hits an edge")
	debug := fs.Bool("debug", cfg.Debug, "Write a debug log")
	logDir := fs.String("log-dir", cfg.LogDir, "Debug log directory")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, err
		}
		return cfg, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("%w: unexpected arguments %q", ErrConfig, fs.Args())
	}

	// File: an explicit path must exist, the default path may not
	explicit := *path != ""
	file := *path
	if !explicit {
		file = DefaultPath(getenv)
	}
	if file != "" {
		if err := cfg.loadFile(file, explicit); err != nil {
			return cfg, err
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return cfg, err
	}

	// Flags override only when given on the command line
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = *backend
		case "poll":
			cfg.PollInterval = time.Duration(*pollMS) * time.Millisecond
		case "sound":
			cfg.Sound = *sound
		case "debug":
			cfg.Debug = *debug
		case "log-dir":
			cfg.LogDir = *logDir
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}

	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrConfig, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("%w: %s: unknown keys %s", ErrConfig, path, strings.Join(keys, ", "))
	}

	c.Path = path
	if fc.Backend != nil {
		c.Backend = *fc.Backend
	}
	if fc.PollMS != nil {
		c.PollInterval = time.Duration(*fc.PollMS) * time.Millisecond
	}
	if fc.Marker != nil {
		c.Marker = *fc.Marker
	}
	if fc.Welcome != nil {
		c.Welcome = *fc.Welcome
	}
	if fc.Sound != nil {
		c.Sound = *fc.Sound
	}
	if fc.Debug != nil {
		c.Debug = *fc.Debug
	}
	if fc.LogDir != nil {
		c.LogDir = *fc.LogDir
	}
	for k, v := range fc.Keys {
		c.Keys[k] = v
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvBackend); v != "" {
		c.Backend = v
	}
	if v := getenv(EnvPollMS); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrConfig, EnvPollMS, v, err)
		}
		c.PollInterval = time.Duration(ms) * time.Millisecond
	}
	if v := getenv(EnvSound); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrConfig, EnvSound, v, err)
		}
		c.Sound = b
	}
	if v := getenv(EnvDebug); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrConfig, EnvDebug, v, err)
		}
		c.Debug = b
	}
	return nil
}

// Validate checks value ranges and the keymap overrides
func (c *Config) Validate() error {
	switch c.Backend {
	case terminal.BackendStdio, terminal.BackendTTY:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrConfig, c.Backend)
	}

	if c.PollInterval < constant.MinPollInterval || c.PollInterval > constant.MaxPollInterval {
		return fmt.Errorf("%w: poll interval %v outside [%v, %v]",
			ErrConfig, c.PollInterval, constant.MinPollInterval, constant.MaxPollInterval)
	}

	if c.Marker == "" {
		return fmt.Errorf("%w: empty row marker", ErrConfig)
	}
	if utf8.RuneCountInString(c.Marker) != 1 {
		return fmt.Errorf("%w: row marker %q must be a single character", ErrConfig, c.Marker)
	}
	if hasControl(c.Marker) {
		return fmt.Errorf("%w: row marker contains control characters", ErrConfig)
	}
	if hasControl(c.Welcome) {
		return fmt.Errorf("%w: welcome message contains control characters", ErrConfig)
	}

	if _, err := c.Keymap(); err != nil {
		return err
	}
	return nil
}

// Keymap builds the default keymap with the configured overrides applied
func (c *Config) Keymap() (*input.Keymap, error) {
	km := input.DefaultKeymap()
	if err := km.Apply(c.Keys); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return km, nil
}

// hasControl reports control characters, which would corrupt the frame layout
func hasControl(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}
