package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Config describes keeld runtime behavior.
type Config struct {
	// Detach runs keeld as a background daemon.
	Detach bool `toml:"detach"`

	// WorkingDir is the daemon working directory. Empty means the
	// executable's directory.
	WorkingDir string `toml:"working_dir"`

	// PIDFile and LogFile override the detach-time defaults derived from
	// the executable name.
	PIDFile string `toml:"pid_file"`
	LogFile string `toml:"log_file"`

	// LogMode is "truncate" or "append".
	LogMode  string `toml:"log_mode"`
	LogLevel string `toml:"log_level"`

	// HeartbeatSeconds is the interval between run-loop heartbeats.
	HeartbeatSeconds int `toml:"heartbeat_seconds"`

	// RunDB is the run-history database path. Empty disables run history.
	RunDB string `toml:"run_db"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogMode:          "truncate",
		LogLevel:         "info",
		HeartbeatSeconds: 30,
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "keel", "keel.toml"), nil
}

// Sample returns the annotated sample configuration.
func Sample() string { return sampleConfig }

// Load reads the configuration at path, falling back to DefaultPath when
// path is empty. It returns the configuration, the resolved path, and
// whether the file existed; a missing file yields defaults.
func Load(path string) (Config, string, bool, error) {
	resolved := strings.TrimSpace(path)
	if resolved == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return Config{}, "", false, err
		}
		resolved = defaultPath
	}

	cfg := Default()
	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, resolved, false, nil
		}
		return Config{}, resolved, false, fmt.Errorf("read config %q: %w", resolved, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, resolved, true, fmt.Errorf("parse config %q: %w", resolved, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, resolved, true, err
	}
	cfg.expandPaths()
	return cfg, resolved, true, nil
}

// Validate checks field values that Load cannot default away.
func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.LogMode)) {
	case "", "truncate", "append":
	default:
		return fmt.Errorf("config: log_mode must be \"truncate\" or \"append\", got %q", c.LogMode)
	}
	if c.HeartbeatSeconds < 1 {
		return fmt.Errorf("config: heartbeat_seconds must be positive, got %d", c.HeartbeatSeconds)
	}
	return nil
}

func (c *Config) expandPaths() {
	c.WorkingDir = expandHome(c.WorkingDir)
	c.PIDFile = expandHome(c.PIDFile)
	c.LogFile = expandHome(c.LogFile)
	c.RunDB = expandHome(c.RunDB)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}
