package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "taskboard.db"
	DefaultLogName        = "taskboard.log"
	appDirName            = "taskboard"
)

type Keymap struct {
	Quit     string `toml:"quit"`
	Help     string `toml:"help"`
	Palette  string `toml:"palette"`
	NextPage string `toml:"next_page"`
	PrevPage string `toml:"prev_page"`
	Add      string `toml:"add"`
	Edit     string `toml:"edit"`
	Delete   string `toml:"delete"`
	Toggle   string `toml:"toggle"`
	Star     string `toml:"star"`
	Search   string `toml:"search"`
	Filter   string `toml:"filter"`
}

type Config struct {
	DBPath        string `toml:"db_path"`
	LogPath       string `toml:"log_path"`
	LogLevel      string `toml:"log_level"`
	Debug         bool   `toml:"debug"`
	StartPage     string `toml:"start_page"`
	DefaultFilter string `toml:"default_filter"`
	Alerts        bool   `toml:"alerts"`
	AlertBuffer   int    `toml:"alert_buffer"`
	GlamourStyle  string `toml:"glamour_style"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath honours TASKBOARD_CONFIG, then the user config dir.
func ResolveConfigPath() string {
	if p := strings.TrimSpace(os.Getenv("TASKBOARD_CONFIG")); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDirName, DefaultConfigFileName)
}

// LoadOrCreate reads the TOML file at path, writing the defaults first if it
// does not exist. Relative db and log paths resolve against the config dir.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg.resolve(filepath.Dir(path)), nil
}

func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	switch c.DefaultFilter {
	case "all", "completed", "pending":
	default:
		return fmt.Errorf("config: default_filter must be all, completed or pending, got %q", c.DefaultFilter)
	}
	if c.AlertBuffer <= 0 {
		return fmt.Errorf("config: alert_buffer must be positive, got %d", c.AlertBuffer)
	}
	return nil
}

func (c Config) resolve(dir string) Config {
	if c.DBPath == "" {
		c.DBPath = DefaultDBName
	}
	if c.LogPath == "" {
		c.LogPath = DefaultLogName
	}
	if c.DBPath != ":memory:" && !filepath.IsAbs(c.DBPath) {
		c.DBPath = filepath.Join(dir, c.DBPath)
	}
	if !filepath.IsAbs(c.LogPath) {
		c.LogPath = filepath.Join(dir, c.LogPath)
	}
	return c
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func Default() Config {
	return Config{
		DBPath:        DefaultDBName,
		LogPath:       DefaultLogName,
		LogLevel:      "info",
		StartPage:     "dashboard",
		DefaultFilter: "all",
		Alerts:        true,
		AlertBuffer:   64,
		GlamourStyle:  "dark",
		Keys: Keymap{
			Quit:     "q",
			Help:     "?",
			Palette:  ":",
			NextPage: "tab",
			PrevPage: "shift+tab",
			Add:      "a",
			Edit:     "e",
			Delete:   "d",
			Toggle:   " ",
			Star:     "s",
			Search:   "/",
			Filter:   "f",
		},
	}
}
