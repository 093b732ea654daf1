package httpserver

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pscheid92/pokedex/internal/adapter/metrics"
	"github.com/pscheid92/pokedex/internal/app"
	"github.com/pscheid92/pokedex/internal/domain"
	"github.com/pscheid92/pokedex/internal/platform/config"
	"github.com/pscheid92/pokedex/web"
)

type appService interface {
	ListRecords(ctx context.Context) ([]domain.Record, error)
	CreateRecord(ctx context.Context, req app.CreateRecordRequest) (*domain.Record, error)
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	app          appService
	sessionStore sessions.Store

	templates *template.Template

	metrics        *metrics.AppMetrics
	httpMetrics    *metrics.HTTPMetrics
	metricsHandler http.Handler

	healthChecks []HealthCheck
	clock        clockwork.Clock
	startTime    time.Time
}

func NewServer(cfg *config.Config, app appService, sessionStore sessions.Store, reg *prometheus.Registry, clock clockwork.Clock, healthChecks []HealthCheck) (*Server, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:           e,
		config:         cfg,
		app:            app,
		sessionStore:   sessionStore,
		templates:      templates,
		metrics:        metrics.NewAppMetrics(reg),
		httpMetrics:    metrics.NewHTTPMetrics(reg),
		metricsHandler: metrics.Handler(reg),
		healthChecks:   healthChecks,
		clock:          clock,
		startTime:      clock.Now(),
	}

	srv.registerRoutes()

	return srv, nil
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// SessionOptions are the cookie attributes for the session id cookie.
// MaxAge stays 0 so the cookie lives for the browser session.
func SessionOptions(cfg *config.Config) sessions.Options {
	return sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
}

func parseTemplates() (*template.Template, error) {
	templates, err := template.ParseFS(web.TemplateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return templates, nil
}

func (s *Server) renderTemplate(c echo.Context, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.ErrorContext(c.Request().Context(), "Template execution failed", "template", name, "path", c.Request().URL.Path, "error", err)
		if err := c.String(http.StatusInternalServerError, "Failed to render page"); err != nil {
			return fmt.Errorf("failed to send error response: %w", err)
		}
		return nil
	}
	if err := c.HTMLBlob(status, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to send HTML response: %w", err)
	}
	return nil
}

// seeOther answers a mutation with 303 so the browser re-fetches via GET.
func seeOther(c echo.Context, location string) error {
	if err := c.Redirect(http.StatusSeeOther, location); err != nil {
		return fmt.Errorf("failed to redirect: %w", err)
	}
	return nil
}
