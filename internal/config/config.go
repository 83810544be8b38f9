// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/zaalplan/internal/screening"
	"github.com/javiermolinar/zaalplan/internal/timegrid"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig    `toml:"schedule"`
	Storage  StorageConfig     `toml:"storage"`
	Server   ServerConfig      `toml:"server"`
	Log      LogConfig         `toml:"log"`
	UI       UIConfig          `toml:"ui"`
	Catalog  screening.Catalog `toml:"catalog"`
}

// ScheduleConfig holds the halls and the visible part of the day.
type ScheduleConfig struct {
	Halls     []string `toml:"halls"`      // e.g., ["Zaal 1", "Zaal 2"]
	StartHour int      `toml:"start_hour"` // first visible hour, 0..23
	EndHour   int      `toml:"end_hour"`   // exclusive, 1..24; 24 shows up to 23:45
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	Backend        string `toml:"backend"` // "sqlite" or "file"
	DBPath         string `toml:"db_path"`
	FilePath       string `toml:"file_path"`
	FallbackToFile bool   `toml:"fallback_to_file"` // use file_path when the database cannot be opened
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // logrus level name
	File  string `toml:"file"`  // optional; the TUI logs here instead of stderr
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "frappe", "latte"
}

// DefaultHalls are the five halls of the cinema.
func DefaultHalls() []string {
	return []string{"Zaal 1", "Zaal 2", "Zaal 3", "Zaal 4", "Zaal 5"}
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			Halls:     DefaultHalls(),
			StartHour: timegrid.DefaultStartHour,
			EndHour:   23,
		},
		Storage: StorageConfig{
			Backend:        BackendSQLite,
			DBPath:         defaultDataPath("zaalplan.db"),
			FilePath:       defaultDataPath("screenings.json"),
			FallbackToFile: true,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level: "info",
		},
		UI: UIConfig{
			Theme: "mocha",
		},
		Catalog: screening.DefaultCatalog(),
	}
}

// defaultDataPath returns name under the user's data directory.
func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".local", "share", "zaalplan", name)
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "zaalplan", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies
// env overrides. A .env file in the working directory is read first; it
// never replaces variables already set in the environment.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Storage.FilePath = expandPath(cfg.Storage.FilePath)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	// A file that lists its own catalog replaces the default one.
	var probe struct {
		Catalog screening.Catalog `toml:"catalog"`
	}
	if err := toml.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	if len(probe.Catalog) > 0 {
		cfg.Catalog = nil
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	// Schedule overrides
	if v := os.Getenv("ZAALPLAN_HALLS"); v != "" {
		cfg.Schedule.Halls = splitList(v)
	}
	if v := os.Getenv("ZAALPLAN_START_HOUR"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ZAALPLAN_START_HOUR: %w", err)
		}
		cfg.Schedule.StartHour = n
	}
	if v := os.Getenv("ZAALPLAN_END_HOUR"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ZAALPLAN_END_HOUR: %w", err)
		}
		cfg.Schedule.EndHour = n
	}

	// Storage overrides
	if v := os.Getenv("ZAALPLAN_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("ZAALPLAN_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("ZAALPLAN_FILE_PATH"); v != "" {
		cfg.Storage.FilePath = v
	}

	if v := os.Getenv("ZAALPLAN_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("ZAALPLAN_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("ZAALPLAN_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Schedule.Halls) == 0 {
		return errors.New("at least one hall must be configured")
	}
	seen := make(map[string]bool, len(c.Schedule.Halls))
	for _, hall := range c.Schedule.Halls {
		if strings.TrimSpace(hall) == "" {
			return errors.New("hall names must not be empty")
		}
		if seen[hall] {
			return fmt.Errorf("duplicate hall: %s", hall)
		}
		seen[hall] = true
	}

	if err := timegrid.ValidateWindow(c.Schedule.StartHour, c.Schedule.EndHour); err != nil {
		return err
	}

	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.DBPath == "" {
			return errors.New("db_path must be set")
		}
		if c.Storage.FallbackToFile && c.Storage.FilePath == "" {
			return errors.New("file_path must be set when fallback_to_file is enabled")
		}
	case BackendFile:
		if c.Storage.FilePath == "" {
			return errors.New("file_path must be set")
		}
	default:
		return fmt.Errorf("unknown storage backend: %q", c.Storage.Backend)
	}

	titles := make(map[string]bool, len(c.Catalog))
	for _, f := range c.Catalog {
		if strings.TrimSpace(f.Title) == "" {
			return errors.New("catalog films must have a title")
		}
		if f.Duration <= 0 {
			return fmt.Errorf("catalog film %q must have a positive duration", f.Title)
		}
		key := strings.ToLower(strings.TrimSpace(f.Title))
		if titles[key] {
			return fmt.Errorf("duplicate catalog film: %s", f.Title)
		}
		titles[key] = true
	}
	return nil
}

// HasHall reports whether hall is configured.
func (c *Config) HasHall(hall string) bool {
	return slices.Contains(c.Schedule.Halls, hall)
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
