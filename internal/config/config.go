package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const insecureJWTSecret = "supersecretkey"

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	Matching      Matching      `yaml:"matching"`
	Redis         Redis         `yaml:"redis"`
	Jobs          Jobs          `yaml:"jobs"`
}

// Matching configures the lifestyle matcher.
type Matching struct {
	// DefaultArchetype is returned when no location score is strictly
	// greatest. Empty means "urban".
	DefaultArchetype string `yaml:"default_archetype"`
}

// Redis configures the optional search-result cache. An empty Addr disables
// caching entirely.
type Redis struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	TTL      time.Duration `yaml:"ttl"`
}

// Jobs configures the background worker pool.
type Jobs struct {
	Workers int `yaml:"workers"`
	// ReportThreshold is the number of open reports at which a listing is
	// automatically unpublished pending review.
	ReportThreshold int64 `yaml:"report_threshold"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("SAKANY_ADDR", ":8080"),
		JWTSecret:     getEnv("SAKANY_JWT_SECRET", insecureJWTSecret),
		APITimeout:    15 * time.Second,
		DatabasePath:  getEnv("SAKANY_DATABASE_PATH", "sakany.db"),
		TokenDuration: 24 * time.Hour,
		Redis: Redis{
			Addr:     getEnv("SAKANY_REDIS_ADDR", ""),
			Password: getEnv("SAKANY_REDIS_PASSWORD", ""),
			TTL:      5 * time.Minute,
		},
		Jobs: Jobs{
			Workers:         getEnvInt("SAKANY_JOB_WORKERS", 4),
			ReportThreshold: int64(getEnvInt("SAKANY_REPORT_THRESHOLD", 3)),
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects configurations that must not reach a deployed server.
func (c *Config) Validate() error {
	env := getEnv("SAKANY_ENV", "development")

	if c.JWTSecret == insecureJWTSecret && env != "development" {
		return fmt.Errorf("refusing to run with default JWT secret in %q environment", env)
	}
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}
	if c.TokenDuration <= 0 {
		return fmt.Errorf("token_duration must be positive")
	}
	if c.Jobs.Workers < 0 {
		return fmt.Errorf("jobs.workers must not be negative")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}

	return def
}
