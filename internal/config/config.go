// Package config handles the XDG configuration directory and config.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "chores"

	// ConfigFile is the optional settings filename inside Dir.
	ConfigFile = "config.toml"

	// EnvFile holds optional KEY=value overrides inside Dir. Variables set
	// in the process environment win over it.
	EnvFile = ".env"

	// EnvUndoWindow overrides the undo window from the environment.
	EnvUndoWindow = "CHORES_UNDO_WINDOW"

	// DefaultUndoWindow is used when nothing else sets the window.
	DefaultUndoWindow = 5 * time.Second
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// AssumeYes skips delete confirmations.
	AssumeYes bool

	// UndoWindow is how long a deleted task can be restored.
	UndoWindow time.Duration

	// SeedFile is an optional JSON seed file. Empty means the built-in chores.
	SeedFile string

	// LogFile receives debug logs with rotation when set.
	LogFile string
}

// fileConfig mirrors config.toml.
type fileConfig struct {
	UndoWindow string `toml:"undo_window"`
	SeedFile   string `toml:"seed_file"`
	AssumeYes  bool   `toml:"assume_yes"`
	LogFile    string `toml:"log_file"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/chores or $HOME/.config/chores.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir, UndoWindow: DefaultUndoWindow}, nil
}

// Load creates a Config and applies, in order, config.toml from the
// directory, Dir/.env and the environment. Flags are applied by the caller.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ConfigPath returns the path to config.toml.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// HasConfigFile checks if config.toml exists.
func (c *Config) HasConfigFile() bool {
	_, err := os.Stat(c.ConfigPath())
	return err == nil
}

func (c *Config) loadFile() error {
	path := c.ConfigPath()
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("loading config file %s: unknown key: %s", path, undecoded[0])
	}

	if fc.UndoWindow != "" {
		d, err := ParseUndoWindow(fc.UndoWindow)
		if err != nil {
			return fmt.Errorf("loading config file %s: undo_window: %w", path, err)
		}
		c.UndoWindow = d
	}
	if fc.SeedFile != "" {
		c.SeedFile = c.resolvePath(fc.SeedFile)
	}
	if fc.LogFile != "" {
		c.LogFile = c.resolvePath(fc.LogFile)
	}
	c.AssumeYes = fc.AssumeYes
	return nil
}

func (c *Config) loadEnv() error {
	v := strings.TrimSpace(os.Getenv(EnvUndoWindow))
	source := EnvUndoWindow
	if v == "" {
		dotenv, err := c.readEnvFile()
		if err != nil {
			return err
		}
		v = strings.TrimSpace(dotenv[EnvUndoWindow])
		source = EnvFile + ": " + EnvUndoWindow
	}
	if v == "" {
		return nil
	}
	d, err := ParseUndoWindow(v)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	c.UndoWindow = d
	return nil
}

// readEnvFile parses Dir/.env without touching the process environment.
func (c *Config) readEnvFile() (map[string]string, error) {
	path := filepath.Join(c.Dir, EnvFile)
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading env file %s: %w", path, err)
	}
	return vars, nil
}

// resolvePath makes p relative to the config directory unless it is absolute.
func (c *Config) resolvePath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// ParseUndoWindow parses a positive duration such as "5s" or "1500ms".
func ParseUndoWindow(s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %s", s)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive: %s", s)
	}
	return d, nil
}
