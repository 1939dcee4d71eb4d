package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

const (
	DefaultBaseURL   = "https://flow.polar.com"
	DefaultUserAgent = "flowexport"
	DefaultFormat    = "tcx"
	DefaultStartDate = "01.01.1970"
	DefaultEndDate   = "31.12.2039"
	DefaultOutputDir = "."

	// DayFormat is the CLI date layout (DD.MM.YYYY, zero-padded).
	DayFormat = "02.01.2006"

	defaultTimeout = 5 * time.Minute
)

type Config struct {
	BaseURL   string        `yaml:"base_url"`
	UserAgent string        `yaml:"user_agent"`
	Email     string        `yaml:"email"`
	Password  string        `yaml:"password"`
	Format    string        `yaml:"format"`
	StartDate string        `yaml:"start_date"`
	EndDate   string        `yaml:"end_date"`
	Timeout   time.Duration `yaml:"timeout"`
	KeepGoing bool          `yaml:"keep_going"`
	Verbosity int           `yaml:"verbosity"`
	OutputDir string        `yaml:"output_dir"`
}

func (c *Config) SetDefaults() {
	c.BaseURL = DefaultBaseURL
	c.UserAgent = DefaultUserAgent
	c.Format = DefaultFormat
	c.StartDate = DefaultStartDate
	c.EndDate = DefaultEndDate
	c.Timeout = defaultTimeout
	c.OutputDir = DefaultOutputDir
}

// Load builds the configuration from, in increasing priority: defaults,
// an optional yaml file, an optional .env file and FLOW_* environment
// variables. CLI flags are applied on top by the caller.
func Load(path string) (*Config, error) {
	return LoadWithFS(afero.NewOsFs(), path)
}

func LoadWithFS(fs afero.Fs, path string) (*Config, error) {
	var cfg Config
	cfg.SetDefaults()

	if path != "" {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("cannot read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("cannot parse config file: %w", err)
		}
	}

	_ = godotenv.Load()

	cfg.BaseURL = getEnv("FLOW_BASE_URL", cfg.BaseURL)
	cfg.UserAgent = getEnv("FLOW_USER_AGENT", cfg.UserAgent)
	cfg.Email = getEnv("FLOW_EMAIL", cfg.Email)
	cfg.Password = getEnv("FLOW_PASSWORD", cfg.Password)
	cfg.Format = getEnv("FLOW_FORMAT", cfg.Format)
	cfg.Timeout = getEnvAsDuration("FLOW_TIMEOUT", cfg.Timeout)
	cfg.KeepGoing = getEnvAsBool("FLOW_KEEP_GOING", cfg.KeepGoing)

	return &cfg, nil
}

// ParseDay parses a DD.MM.YYYY date in the local timezone, the same way
// the service interprets the calendar range boundaries.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected DD.MM.YYYY: %w", s, err)
	}

	return t, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}

	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}

	return defaultValue
}
