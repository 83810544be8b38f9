// Package server exposes the planner over HTTP with echo.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/zaalplan/internal/logging"
	"github.com/javiermolinar/zaalplan/internal/planner"
)

const shutdownTimeout = 5 * time.Second

// Server serves the JSON API and the metrics endpoint.
type Server struct {
	echo    *echo.Echo
	planner *planner.Planner
	log     logrus.FieldLogger
}

// New builds the server. Metrics are gathered from gatherer; a nil gatherer
// uses the default registry.
func New(p *planner.Planner, gatherer prometheus.Gatherer, log logrus.FieldLogger) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{echo: e, planner: p, log: logging.OrDiscard(log)}

	e.Use(middleware.Recover())
	e.Use(requestLogger(s.log))

	s.registerRoutes(gatherer)
	return s
}

func (s *Server) registerRoutes(gatherer prometheus.Gatherer) {
	s.echo.GET("/healthz", s.health)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := s.echo.Group("/api")
	api.GET("/screenings", s.listScreenings)
	api.POST("/screenings", s.createScreening)
	api.GET("/screenings/:id", s.getScreening)
	api.PATCH("/screenings/:id", s.updateScreening)
	api.DELETE("/screenings/:id", s.deleteScreening)
	api.GET("/grid", s.grid)
	api.POST("/drop", s.drop)
	api.POST("/double-click", s.doubleClick)
	api.POST("/overlaps", s.overlaps)
	api.GET("/catalog", s.catalog)
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("http server listening")
		errc <- s.echo.Start(addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("http server stopped")
	return nil
}

func requestLogger(log logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}
			log.WithFields(logrus.Fields{
				"method":   c.Request().Method,
				"path":     c.Path(),
				"status":   c.Response().Status,
				"duration": time.Since(start).String(),
			}).Debug("request handled")
			return nil
		}
	}
}
