// Package config reads service settings from flags, falling back to
// environment variables prefixed with BLOG_.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const envPrefix = "BLOG_"

// Storage backends.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Addr        string
	DiagAddr    string
	Routes      bool
	Storage     string
	DatabaseURL string
	DBMaxConns  int
	Migrate     bool
	JWTSecret   string
	LogLevel    string
	// IssueToken, when set to user[:role,role], prints a signed token and exits.
	IssueToken string
}

// Load parses args (without the program name) over the environment.
func Load(args []string) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet("blog", flag.ContinueOnError)
	fs.BoolVar(&cfg.Routes, "routes", getEnvBool("ROUTES", false), "Generate router documentation")
	fs.StringVar(&cfg.Addr, "addr", getEnv("ADDR", ":3333"), "application port")
	fs.StringVar(&cfg.DiagAddr, "diag_addr", getEnv("DIAG_ADDR", ":9999"), "diag port")
	fs.StringVar(&cfg.Storage, "storage", getEnv("STORAGE", StoragePostgres), "article storage: postgres or memory")
	fs.StringVar(&cfg.DatabaseURL, "database_url", getEnv("DATABASE_URL", ""), "PostgreSQL connection string")
	fs.IntVar(&cfg.DBMaxConns, "db_max_conns", getEnvInt("DB_MAX_CONNS", 10), "connection pool size")
	fs.BoolVar(&cfg.Migrate, "migrate", getEnvBool("MIGRATE", false), "apply database migrations on start")
	fs.StringVar(&cfg.JWTSecret, "jwt_secret", getEnv("JWT_SECRET", ""), "HS256 secret of the identity provider")
	fs.StringVar(&cfg.LogLevel, "log_level", getEnv("LOG_LEVEL", "info"), "log level")
	fs.StringVar(&cfg.IssueToken, "issue_token", "", "print a token for user[:role,role] and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Routes {
		return nil
	}

	if c.JWTSecret == "" {
		return errors.New("jwt_secret is required")
	}

	if c.IssueToken != "" {
		return nil
	}

	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("database_url is required for postgres storage")
		}
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}

	if c.DBMaxConns < 1 {
		return errors.New("db_max_conns must be at least 1")
	}

	return nil
}

// TokenSubject splits IssueToken into a user name and roles.
func (c *Config) TokenSubject() (string, []string) {
	name, roles, _ := strings.Cut(c.IssueToken, ":")
	if roles == "" {
		return name, nil
	}

	return name, strings.Split(roles, ",")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(envPrefix + key); value != "" {
		return value
	}

	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(envPrefix + key)); err == nil {
		return value
	}

	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(envPrefix + key)); err == nil {
		return value
	}

	return defaultValue
}
