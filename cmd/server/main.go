// Command medtrack-server starts the medication tracker HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/and161185/medtrack/internal/config"
	"github.com/and161185/medtrack/internal/migrate"
	"github.com/and161185/medtrack/internal/repository"
	"github.com/and161185/medtrack/internal/repository/postgres"
	"github.com/and161185/medtrack/internal/repository/sqlite"
	httpserver "github.com/and161185/medtrack/internal/server/http"
	"github.com/and161185/medtrack/internal/service"
	"github.com/and161185/medtrack/internal/token"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// storage is the opened backend with its repositories.
type storage struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	meds     repository.MedicationRepository
	ping     func(ctx context.Context) error
	close    func()
}

func (s storage) Ping(ctx context.Context) error { return s.ping(ctx) }

func openStorage(ctx context.Context, cfg config.Config) (storage, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		if err := migrate.Up(ctx, cfg.DSN); err != nil {
			return storage{}, err
		}
		db, err := postgres.New(ctx, cfg.DSN)
		if err != nil {
			return storage{}, err
		}
		return storage{
			users:    postgres.NewUserRepo(db),
			profiles: postgres.NewProfileRepo(db),
			meds:     postgres.NewMedicationRepo(db),
			ping:     db.Ping,
			close:    db.Close,
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DSN)
		if err != nil {
			return storage{}, err
		}
		return storage{
			users:    sqlite.NewUserRepo(db),
			profiles: sqlite.NewProfileRepo(db),
			meds:     sqlite.NewMedicationRepo(db),
			ping:     db.Ping,
			close:    db.Close,
		}, nil
	default:
		return storage{}, errors.New("unsupported driver " + cfg.Driver)
	}
}

// main loads configuration, opens storage and serves HTTP until a signal arrives.
func main() {
	cfg, err := config.Load(".env", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	logger, _ := zap.NewProduction()
	if cfg.Dev {
		logger, _ = zap.NewDevelopment()
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.ListenAddr()),
		zap.String("driver", cfg.Driver),
	)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg)
	if err != nil {
		logger.Fatal("open storage", zap.Error(err))
	}
	defer store.close()

	tokens, err := token.New([]byte(cfg.JWTSecret), cfg.TokenTTL)
	if err != nil {
		logger.Fatal("token service", zap.Error(err))
	}

	// Services
	owners := service.NewOwnershipResolver(store.profiles, store.meds)
	authSvc := service.NewAuthService(store.users, tokens)
	profileSvc := service.NewProfileService(store.profiles, owners)
	medSvc := service.NewMedicationService(store.meds, owners, service.NewInventoryService(store.meds))

	app := httpserver.New(authSvc, profileSvc, medSvc, tokens, store, logger)
	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           app.Router(cfg.Origins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("forced shutdown", zap.Error(err))
			_ = srv.Close()
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			store.close()
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
