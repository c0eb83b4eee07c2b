package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

type StorageBackend string

const (
	StorageBackendMemory StorageBackend = "memory"
	StorageBackendSQLite StorageBackend = "sqlite"
)

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`
	UI      UIConfig      `toml:"ui"`
	Keys    KeyConfig     `toml:"keys"`
}

type StorageConfig struct {
	Backend StorageBackend `toml:"backend"`
}

type LoggingConfig struct {
	Level   string        `toml:"level"`
	DevFile DevFileConfig `toml:"dev_file"`
}

type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type UIConfig struct {
	Title       string `toml:"title"`
	Subtitle    string `toml:"subtitle"`
	Placeholder string `toml:"placeholder"`
	EmptyTitle  string `toml:"empty_title"`
	EmptyHint   string `toml:"empty_hint"`
}

type KeyConfig struct {
	Toggle string `toml:"toggle"`
	Delete string `toml:"delete"`
	Copy   string `toml:"copy"`
	Help   string `toml:"help"`
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

func Default() Config {
	return Config{
		Storage: StorageConfig{
			Backend: StorageBackendMemory,
		},
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileConfig{
				Enabled: true,
			},
		},
		UI: UIConfig{
			Title:       "Task List",
			Subtitle:    "Organize your day",
			Placeholder: "Type a new task...",
			EmptyTitle:  "No tasks yet",
			EmptyHint:   "Add your first task above!",
		},
		Keys: KeyConfig{
			Toggle: "space",
			Delete: "d",
			Copy:   "y",
			Help:   "?",
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(strings.TrimSpace(string(content))) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// normalize trims and lowercases enum-like fields in place.
func (c *Config) normalize() {
	c.Storage.Backend = StorageBackend(strings.ToLower(strings.TrimSpace(string(c.Storage.Backend))))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.DevFile.Dir = strings.TrimSpace(c.Logging.DevFile.Dir)
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case StorageBackendMemory, StorageBackendSQLite:
	default:
		return fmt.Errorf("invalid storage.backend: %q", c.Storage.Backend)
	}

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	valid := false
	for _, candidate := range validLogLevels {
		if level == candidate {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}

	keys := map[string]string{
		"keys.toggle": c.Keys.Toggle,
		"keys.delete": c.Keys.Delete,
		"keys.copy":   c.Keys.Copy,
		"keys.help":   c.Keys.Help,
	}
	seen := map[string]string{}
	for _, name := range []string{"keys.toggle", "keys.delete", "keys.copy", "keys.help"} {
		value := strings.TrimSpace(keys[name])
		if value == "" {
			continue
		}
		if other, ok := seen[value]; ok {
			return fmt.Errorf("%s duplicates %s: %q", name, other, value)
		}
		seen[value] = name
	}

	return nil
}
