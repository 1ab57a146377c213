package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"authstore/internal/config"
	"authstore/internal/domain"
	"authstore/internal/logging"
	"authstore/internal/mysql"
	"authstore/internal/postgres"
	"authstore/internal/redis"
	"authstore/internal/server"
	"authstore/internal/sqlite"
	"authstore/internal/store"
)

const startupTimeout = 30 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	users, cleanup, err := buildUserStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize user store", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	users = store.NewInstrumented(users, clockwork.NewRealClock())
	if err := users.Init(ctx); err != nil {
		slog.Error("failed to initialize schema", "error", err)
		os.Exit(1)
	}
	logging.WithBackend(cfg.Backend).Info("user store ready")

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		slog.Error("failed to create redis client", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	if err := redisClient.Ping(ctx); err != nil {
		slog.Error("failed to ping redis", "error", err)
		os.Exit(1)
	}
	sessions := redis.NewSessionStore(redisClient)

	srv := server.NewServer(cfg, users, sessions)
	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	<-done
	slog.Info("shutdown complete")
}

// buildUserStore selects the backend adapter and wraps it in the decorator
// matching its native concurrency guarantee: pooled engines get shared
// ownership, the single-connection sqlite adapter gets the exclusive lock.
func buildUserStore(ctx context.Context, cfg *config.Config) (domain.UserStore, func(), error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		pool, err := postgres.Connect(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		return store.NewShared(postgres.NewUserStore(pool)), pool.Close, nil

	case config.BackendMySQL:
		db, err := mysql.Connect(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		return store.NewShared(mysql.NewUserStore(db)), func() { _ = db.Close() }, nil

	default:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store.NewSerialized(sqlite.NewUserStore(db)), func() { _ = db.Close() }, nil
	}
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
		close(done)
	}()

	return done
}
