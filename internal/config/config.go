// internal/config/config.go
//
// Runtime configuration.
//
// Resolution order (later wins):
//   1. Built-in defaults.
//   2. YAML file named by WORDLE_CONFIG, if set.
//   3. Environment variables (a `.env` file is loaded into the environment first).
//   4. CLI flags, applied by the caller.
//
// Environment variables:
//   WORDS_FILE, WORD_LENGTH, PORT, LOG_LEVEL, DB_PATH, JWT_SECRET,
//   JWT_EXPIRES_DAYS, DAILY_SALT, BENCH_WORKERS, SOLVE_RPS

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the CLI and server.
type Config struct {
	WordsFile      string  `yaml:"words_file"`
	Length         int     `yaml:"length"`
	Port           string  `yaml:"port"`
	LogLevel       string  `yaml:"log_level"`
	DBPath         string  `yaml:"db_path"` // "memory" keeps bench runs in process
	JWTSecret      string  `yaml:"jwt_secret"`
	JWTExpiresDays int     `yaml:"jwt_expires_days"`
	DailySalt      string  `yaml:"daily_salt"`
	BenchWorkers   int     `yaml:"bench_workers"`
	SolveRPS       float64 `yaml:"solve_rps"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Length:         5,
		Port:           "5175",
		LogLevel:       "info",
		DBPath:         "./data/solver.db",
		JWTSecret:      "dev_secret_change_me",
		JWTExpiresDays: 14,
		DailySalt:      "local_dev_salt",
		BenchWorkers:   4,
		SolveRPS:       20,
	}
}

// Load resolves configuration from .env, the optional YAML file, and the environment.
func Load() (Config, error) {
	_ = godotenv.Load() // a missing .env is fine

	cfg := Defaults()
	if path := os.Getenv("WORDLE_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// JWTTTL is the configured token lifetime.
func (c Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTExpiresDays) * 24 * time.Hour
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	str := func(k string, dst *string) {
		if v := os.Getenv(k); v != "" {
			*dst = v
		}
	}
	str("WORDS_FILE", &c.WordsFile)
	str("PORT", &c.Port)
	str("LOG_LEVEL", &c.LogLevel)
	str("DB_PATH", &c.DBPath)
	str("JWT_SECRET", &c.JWTSecret)
	str("DAILY_SALT", &c.DailySalt)

	ints := []struct {
		key string
		dst *int
	}{
		{"WORD_LENGTH", &c.Length},
		{"JWT_EXPIRES_DAYS", &c.JWTExpiresDays},
		{"BENCH_WORKERS", &c.BenchWorkers},
	}
	for _, e := range ints {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", e.key, v, err)
		}
		*e.dst = n
	}

	if v := os.Getenv("SOLVE_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: SOLVE_RPS=%q: %w", v, err)
		}
		c.SolveRPS = f
	}
	return nil
}
