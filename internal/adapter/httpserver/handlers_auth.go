package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"
)

func (s *Server) registerAuthRoutes() {
	s.echo.POST("/login", s.handleLogin, s.withSession)
	s.echo.POST("/logout", s.handleLogout, s.withSession)
}

func (s *Server) handleLogin(c echo.Context) error {
	ctx := c.Request().Context()
	session := sessionFrom(c)

	body, err := parseBody(c)
	if err != nil {
		return err
	}

	name := body.Get("name")
	signIn(session, name)
	s.metrics.LoginsTotal.Inc()

	slog.InfoContext(ctx, "Visitor logged in", "name", name, "body_format", body.Format)

	return seeOther(c, "/")
}

func (s *Server) handleLogout(c echo.Context) error {
	ctx := c.Request().Context()
	session := sessionFrom(c)

	name := visitorFrom(session).Name
	signOut(session)
	s.metrics.LogoutsTotal.Inc()

	slog.InfoContext(ctx, "Visitor logged out", "name", name)

	return seeOther(c, "/")
}
