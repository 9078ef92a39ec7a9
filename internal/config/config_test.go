package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"ADDR", "PORT", "JWT_SECRET", "FRONTEND_URL", "DB_DRIVER", "DATABASE_URL", "TOKEN_TTL", "DEV"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := Load("", nil)
	require.NoError(t, err)
	require.Equal(t, 3001, cfg.Port)
	require.Equal(t, ":3001", cfg.ListenAddr())
	require.Equal(t, []string{"http://localhost:5173"}, cfg.Origins)
	require.Equal(t, DriverSQLite, cfg.Driver)
	require.Equal(t, "medtrack.db", cfg.DSN)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.False(t, cfg.Dev)
	require.ErrorIs(t, cfg.Validate(), ErrMissingSecret)
}

func TestLoad_EnvThenFlags(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("PORT", "4000")
	t.Setenv("FRONTEND_URL", "https://a.example/, https://b.example")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/med")
	t.Setenv("TOKEN_TTL", "2h")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, "from-env", cfg.JWTSecret)
	require.Equal(t, ":4000", cfg.ListenAddr())
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins)
	require.Equal(t, 2*time.Hour, cfg.TokenTTL)

	cfg, err = Load("", []string{"-jwt-key", "from-flag", "-addr", "127.0.0.1:9000", "-dev", "-cors-origins", "*"})
	require.NoError(t, err)
	require.Equal(t, "from-flag", cfg.JWTSecret)
	require.Equal(t, "127.0.0.1:9000", cfg.ListenAddr())
	require.Equal(t, []string{"*"}, cfg.Origins)
	require.True(t, cfg.Dev)
	require.Equal(t, DriverPostgres, cfg.Driver)
}

func TestLoad_DotenvFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))
	t.Setenv("DB_DRIVER", "")
	require.NoError(t, os.Unsetenv("DB_DRIVER"))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=dotenv-secret\nDB_DRIVER=sqlite\n"), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, "dotenv-secret", cfg.JWTSecret)
	require.NoError(t, os.Unsetenv("JWT_SECRET"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.env"), nil)
	require.NoError(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	ok := Config{JWTSecret: "k", Driver: DriverSQLite, DSN: "x.db", Port: 3001}
	require.NoError(t, ok.Validate())

	bad := ok
	bad.Driver = "mysql"
	require.Error(t, bad.Validate())

	bad = ok
	bad.Driver = DriverPostgres
	bad.DSN = ""
	require.ErrorIs(t, bad.Validate(), ErrMissingDSN)

	bad = ok
	bad.Port = 0
	require.Error(t, bad.Validate())
	bad.Addr = ":8080"
	require.NoError(t, bad.Validate())
}
