package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	AppName               = "todoapp"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "todo.db"
	DefaultLogName        = "todo.log"
	DefaultStorageKey     = "todoApp_todos"
)

type Keymap struct {
	Quit            string `toml:"quit"`
	Add             string `toml:"add"`
	Up              string `toml:"up"`
	Down            string `toml:"down"`
	Toggle          string `toml:"toggle"`
	Delete          string `toml:"delete"`
	Edit            string `toml:"edit"`
	Confirm         string `toml:"confirm"`
	Cancel          string `toml:"cancel"`
	Yes             string `toml:"yes"`
	No              string `toml:"no"`
	NextFilter      string `toml:"next_filter"`
	FilterAll       string `toml:"filter_all"`
	FilterActive    string `toml:"filter_active"`
	FilterCompleted string `toml:"filter_completed"`
}

type Config struct {
	DBPath     string `toml:"db_path"`
	StorageKey string `toml:"storage_key"`
	LogFile    string `toml:"log_file"`
	LogLevel   string `toml:"log_level"`
	Keys       Keymap `toml:"keys"`
}

// ResolveConfigPath returns the per-user config file, or one in the working
// directory when the user config dir is unknown.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// LoadOrCreate reads path, writing the defaults there first if it does not
// exist. Relative db and log paths resolve against the config directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, fmt.Errorf("write default config: %w", err)
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
	cfg.backfill()
	return cfg.resolve(filepath.Dir(path)), nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) backfill() {
	def := Default()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.StorageKey == "" {
		c.StorageKey = def.StorageKey
	}
	if c.LogFile == "" {
		c.LogFile = def.LogFile
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	keys := []struct {
		dst *string
		def string
	}{
		{&c.Keys.Quit, def.Keys.Quit},
		{&c.Keys.Add, def.Keys.Add},
		{&c.Keys.Up, def.Keys.Up},
		{&c.Keys.Down, def.Keys.Down},
		{&c.Keys.Toggle, def.Keys.Toggle},
		{&c.Keys.Delete, def.Keys.Delete},
		{&c.Keys.Edit, def.Keys.Edit},
		{&c.Keys.Confirm, def.Keys.Confirm},
		{&c.Keys.Cancel, def.Keys.Cancel},
		{&c.Keys.Yes, def.Keys.Yes},
		{&c.Keys.No, def.Keys.No},
		{&c.Keys.NextFilter, def.Keys.NextFilter},
		{&c.Keys.FilterAll, def.Keys.FilterAll},
		{&c.Keys.FilterActive, def.Keys.FilterActive},
		{&c.Keys.FilterCompleted, def.Keys.FilterCompleted},
	}
	for _, k := range keys {
		if *k.dst == "" {
			*k.dst = k.def
		}
	}
}

func (c Config) resolve(base string) Config {
	if c.DBPath != "" && !filepath.IsAbs(c.DBPath) {
		c.DBPath = filepath.Join(base, c.DBPath)
	}
	if c.LogFile != "" && !filepath.IsAbs(c.LogFile) {
		c.LogFile = filepath.Join(base, c.LogFile)
	}
	return c
}

func Default() Config {
	return Config{
		DBPath:     DefaultDBName,
		StorageKey: DefaultStorageKey,
		LogFile:    DefaultLogName,
		LogLevel:   "info",
		Keys: Keymap{
			Quit:            "q",
			Add:             "a",
			Up:              "k",
			Down:            "j",
			Toggle:          " ",
			Delete:          "d",
			Edit:            "e",
			Confirm:         "enter",
			Cancel:          "esc",
			Yes:             "y",
			No:              "n",
			NextFilter:      "tab",
			FilterAll:       "1",
			FilterActive:    "2",
			FilterCompleted: "3",
		},
	}
}
