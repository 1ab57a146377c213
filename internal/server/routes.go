package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth routes
	s.echo.POST("/signup", s.handleSignup)
	s.echo.POST("/login", s.handleLogin)
	s.echo.POST("/logout", s.handleLogout, s.requireSession)

	// Account routes
	s.echo.GET("/me", s.handleMe, s.requireSession)
	s.echo.DELETE("/account", s.handleDeleteAccount, s.requireSession)
}
