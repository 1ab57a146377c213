// Package server exposes the authentication feature over HTTP: signup,
// login, logout, account introspection, and deletion. Handlers return
// taxonomy errors; the errors middleware turns them into msgpack payloads.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"authstore/internal/config"
	"authstore/internal/domain"
	apperrors "authstore/internal/errors"
)

type Server struct {
	echo     *echo.Echo
	config   *config.Config
	users    domain.UserStore
	sessions domain.SessionStore
}

func NewServer(cfg *config.Config, users domain.UserStore, sessions domain.SessionStore) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware(cfg.Debug))

	srv := &Server{
		echo:     e,
		config:   cfg,
		users:    users,
		sessions: sessions,
	}

	srv.registerRoutes()
	return srv
}

func (s *Server) Start() error {
	slog.Info("starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
