// Package config loads server settings from the environment, an optional
// .env file and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Supported storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var (
	// ErrMissingSecret is returned when no token signing secret is configured.
	ErrMissingSecret = errors.New("config: JWT_SECRET is required")
	// ErrMissingDSN is returned when the postgres driver has no DATABASE_URL.
	ErrMissingDSN = errors.New("config: DATABASE_URL is required for postgres")
)

// Config holds server settings.
type Config struct {
	Addr      string        `env:"ADDR"`
	Port      int           `env:"PORT"         envDefault:"3001"`
	JWTSecret string        `env:"JWT_SECRET"`
	Origins   []string      `env:"FRONTEND_URL" envDefault:"http://localhost:5173" envSeparator:","`
	Driver    string        `env:"DB_DRIVER"    envDefault:"sqlite"`
	DSN       string        `env:"DATABASE_URL"`
	TokenTTL  time.Duration `env:"TOKEN_TTL"    envDefault:"24h"`
	Dev       bool          `env:"DEV"`
}

// Load reads dotenvPath (a missing file is ignored), then the environment,
// then args as flags. Validate is not called.
func Load(dotenvPath string, args []string) (Config, error) {
	var cfg Config
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	fset := flag.NewFlagSet("medtrack", flag.ContinueOnError)
	fset.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address, overrides -port")
	fset.IntVar(&cfg.Port, "port", cfg.Port, "listen port")
	fset.StringVar(&cfg.JWTSecret, "jwt-key", cfg.JWTSecret, "HS256 signing key (required)")
	origins := fset.String("cors-origins", strings.Join(cfg.Origins, ","), "comma-separated allowed origins")
	fset.StringVar(&cfg.Driver, "db-driver", cfg.Driver, "storage driver: postgres or sqlite")
	fset.StringVar(&cfg.DSN, "dsn", cfg.DSN, "PostgreSQL DSN or SQLite file path")
	fset.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "access token TTL")
	fset.BoolVar(&cfg.Dev, "dev", cfg.Dev, "development logging and gin debug mode")
	if err := fset.Parse(args); err != nil {
		return cfg, err
	}
	cfg.Origins = splitList(*origins)

	if cfg.Driver == DriverSQLite && cfg.DSN == "" {
		cfg.DSN = "medtrack.db"
	}
	return cfg, nil
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return ErrMissingSecret
	}
	switch c.Driver {
	case DriverPostgres:
		if c.DSN == "" {
			return ErrMissingDSN
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.Driver)
	}
	if c.Addr == "" && (c.Port <= 0 || c.Port > 65535) {
		return fmt.Errorf("config: invalid port %d", c.Port)
	}
	return nil
}

// ListenAddr returns Addr when set, otherwise ":<Port>".
func (c Config) ListenAddr() string {
	if c.Addr != "" {
		return c.Addr
	}
	return net.JoinHostPort("", strconv.Itoa(c.Port))
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.TrimRight(p, "/"))
		}
	}
	return out
}
