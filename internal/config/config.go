// Package config handles loading and parsing application configuration.
//
// Configuration is environment-first: the orchestration layer injects
// database host/credentials as environment variables (DB_HOST, DB_USER,
// …), so the service runs in a cluster with no config file at all. For
// local development a YAML file can be pointed at with either:
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"flag"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden by
// the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// HTTPServer is embedded (not a pointer) so its fields are
	// accessible directly on Config: cfg.HTTPServer.Addr
	HTTPServer `yaml:"http_server"`

	Database Database `yaml:"database"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:":8080"`
}

// Database selects and configures the record store backend.
//
// The env-default values match what the deployment manifests inject in
// a typical cluster setup, so a bare local Postgres works out of the
// box.
type Database struct {
	// Driver picks the storage backend: "postgres", "sqlite" or "memory".
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`

	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	Name     string `yaml:"name" env:"DB_NAME" env-default:"student_db"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD" env-default:"password"`
	SSLMode  string `yaml:"ssl_mode" env:"DB_SSLMODE" env-default:"disable"`

	// StoragePath is the filesystem path to the SQLite .db file.
	// Only used when Driver is "sqlite".
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"storage/students.db"`
}

// MustLoad reads, validates, and returns the application config.
//
// The name "MustLoad" follows a Go convention: functions prefixed with
// "Must" are allowed to panic/fatal on failure. Callers do not need to
// check a returned error — if this function returns, the config is valid.
func MustLoad() *Config {
	// ── Source 1: environment variable ───────────────────────────────
	configPath := os.Getenv("CONFIG_PATH")

	// ── Source 2: command-line flag ───────────────────────────────────
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	var cfg Config

	// No file given: run purely off the environment (the normal mode
	// inside a cluster, where env vars come from the deployment spec).
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read config from environment: %s", err.Error())
		}
		return &cfg
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	// ReadConfig reads the YAML file, then applies env:"..." overrides.
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}

	return &cfg
}
