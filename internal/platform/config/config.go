// Package config resolves the planner's runtime settings.
//
// Sources are layered: built-in defaults, then <data-dir>/config.yaml, then
// .env files, then STUDYPLANNER_* environment variables, then the
// --data-dir flag.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	FileName      = "config.yaml"
	dataDirEnv    = "STUDYPLANNER_DATA_DIR"
	defaultDirRel = ".studyplanner"
)

type Config struct {
	DataDir             string        `yaml:"-" env:"STUDYPLANNER_DATA_DIR"`
	DBPath              string        `yaml:"db_path,omitempty" env:"STUDYPLANNER_DB_PATH"`
	ActivityLogPath     string        `yaml:"activity_log_path,omitempty" env:"STUDYPLANNER_ACTIVITY_LOG"`
	StorageQuotaBytes   int64         `yaml:"storage_quota_bytes" env:"STUDYPLANNER_STORAGE_QUOTA_BYTES"`
	TimerDefaultMinutes int           `yaml:"timer_default_minutes" env:"STUDYPLANNER_TIMER_MINUTES"`
	Timezone            string        `yaml:"timezone" env:"STUDYPLANNER_TIMEZONE"`
	HTTPTimeout         time.Duration `yaml:"http_timeout" env:"STUDYPLANNER_HTTP_TIMEOUT"`
	GitHubToken         string        `yaml:"-" env:"STUDYPLANNER_GITHUB_TOKEN"`
	DevtoBaseURL        string        `yaml:"devto_base_url" env:"STUDYPLANNER_DEVTO_URL"`
	GitHubBaseURL       string        `yaml:"github_base_url" env:"STUDYPLANNER_GITHUB_URL"`
	FeedURLs            []string      `yaml:"feeds,omitempty" env:"STUDYPLANNER_FEEDS" envSeparator:","`
	Ephemeral           bool          `yaml:"-" env:"STUDYPLANNER_EPHEMERAL"`
}

// Options carry the values that come from the command line.
type Options struct {
	DataDir   string
	Ephemeral bool
	// EnvFiles are loaded in order; missing files are skipped. Defaults to
	// .env.local and .env in the working directory.
	EnvFiles []string
}

// Default returns the built-in settings rooted at dataDir.
func Default(dataDir string) Config {
	return Config{
		DataDir:             dataDir,
		StorageQuotaBytes:   5 * 1024 * 1024,
		TimerDefaultMinutes: 25,
		Timezone:            "Local",
		HTTPTimeout:         10 * time.Second,
		DevtoBaseURL:        "https://dev.to",
		GitHubBaseURL:       "https://api.github.com",
	}
}

// DefaultDataDir is ~/.studyplanner, or ./.studyplanner when there is no home.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return defaultDirRel
	}
	return filepath.Join(home, defaultDirRel)
}

// Load resolves the configuration for one process.
func Load(opts Options) (Config, error) {
	files := opts.EnvFiles
	if files == nil {
		files = []string{".env.local", ".env"}
	}
	if err := loadDotEnv(files); err != nil {
		return Config{}, err
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = os.Getenv(dataDirEnv)
	}
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}

	cfg := Default(dataDir)
	if err := readFile(filepath.Join(dataDir, FileName), &cfg); err != nil {
		return Config{}, err
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}
	if opts.Ephemeral {
		cfg.Ephemeral = true
	}
	cfg.resolvePaths()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) resolvePaths() {
	if c.DBPath == "" {
		c.DBPath = "studyplanner.db"
	}
	if c.ActivityLogPath == "" {
		c.ActivityLogPath = "activity.jsonl"
	}
	if !filepath.IsAbs(c.DBPath) {
		c.DBPath = filepath.Join(c.DataDir, c.DBPath)
	}
	if !filepath.IsAbs(c.ActivityLogPath) {
		c.ActivityLogPath = filepath.Join(c.DataDir, c.ActivityLogPath)
	}
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data dir is required")
	}
	if c.StorageQuotaBytes < 0 {
		return fmt.Errorf("storage quota must not be negative")
	}
	if c.TimerDefaultMinutes < 1 || c.TimerDefaultMinutes > 480 {
		return fmt.Errorf("timer default must be between 1 and 480 minutes")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location is the zone used to derive "today". Empty or "Local" means the
// host zone.
func (c Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Path returns the config file location for this data dir.
func (c Config) Path() string {
	return filepath.Join(c.DataDir, FileName)
}

// WriteFile writes the file-backed settings of cfg to <data-dir>/config.yaml.
// An existing file is left alone unless overwrite is set.
func WriteFile(cfg Config, overwrite bool) (string, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return "", fmt.Errorf("creating data dir: %w", err)
	}
	path := cfg.Path()
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("config already exists: %s", path)
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}
	return path, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	return nil
}

// loadDotEnv only sets variables that are not already present.
func loadDotEnv(paths []string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}
