// Package config builds the explicit configuration the server and the note
// store are constructed from.
//
// Values are layered: built-in defaults, then an optional YAML file, then the
// process environment (a .env file is loaded into it first without overriding
// variables already set), then command line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StoreMemory = "memory"
	StoreSQL    = "sql"
)

const (
	DefaultAddr        = ":8080"
	DefaultDatabaseURL = "sqlite:///notes.db"
)

type Config struct {
	Addr        string   `yaml:"addr"`
	Store       string   `yaml:"store"`
	DatabaseURL string   `yaml:"database_url"`
	CORSOrigins []string `yaml:"cors_origins"`
	LogLevel    string   `yaml:"log_level"`
	LogFormat   string   `yaml:"log_format"`
	AccessLog   bool     `yaml:"access_log"`
	Debug       bool     `yaml:"debug"`
}

func Default() Config {
	return Config{
		Addr:        DefaultAddr,
		Store:       StoreMemory,
		DatabaseURL: DefaultDatabaseURL,
		CORSOrigins: []string{"*"},
		LogLevel:    "info",
		LogFormat:   "json",
		AccessLog:   true,
	}
}

// Load returns the defaults overlaid with the YAML file at path (skipped
// when empty) and the environment. envFiles are passed to godotenv; a
// missing default .env is not an error.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := loadDotEnv(envFiles...); err != nil {
		return Config{}, err
	}
	if err := cfg.loadEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return nil
}

func loadDotEnv(files ...string) error {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return fmt.Errorf("error loading env file: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error loading .env: %w", err)
	}
	return nil
}

func (c *Config) loadEnv(lookup func(string) (string, bool)) error {
	if port, ok := lookup("PORT"); ok && port != "" {
		c.Addr = ":" + port
	}
	if v, ok := lookup("NOTES_ADDR"); ok && v != "" {
		c.Addr = v
	}
	if v, ok := lookup("NOTES_STORE"); ok && v != "" {
		c.Store = strings.ToLower(v)
	}
	if v, ok := lookup("DATABASE_URL"); ok && v != "" {
		c.DatabaseURL = v
	}
	if v, ok := lookup("NOTES_CORS_ORIGINS"); ok && v != "" {
		c.CORSOrigins = splitList(v)
	}
	if v, ok := lookup("NOTES_LOG_LEVEL"); ok && v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup("NOTES_LOG_FORMAT"); ok && v != "" {
		c.LogFormat = strings.ToLower(v)
	}
	for name, dst := range map[string]*bool{
		"NOTES_ACCESS_LOG": &c.AccessLog,
		"NOTES_DEBUG":      &c.Debug,
	} {
		v, ok := lookup(name)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = b
	}
	return nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var problems []string
	if c.Addr == "" {
		problems = append(problems, "addr is required")
	}
	switch c.Store {
	case StoreMemory:
	case StoreSQL:
		if c.DatabaseURL == "" {
			problems = append(problems, "database_url is required for the sql store")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown store %q (want %q or %q)", c.Store, StoreMemory, StoreSQL))
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		problems = append(problems, fmt.Sprintf("unknown log level %q", c.LogLevel))
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("unknown log format %q", c.LogFormat))
	}
	if len(c.CORSOrigins) == 0 {
		problems = append(problems, "cors_origins must not be empty")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
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
