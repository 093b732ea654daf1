package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) handleHome(c echo.Context) error {
	visitor := visitorFrom(sessionFrom(c))

	data := map[string]any{
		"Title":      visitor.Greeting(),
		"IsLoggedIn": visitor.LoggedIn,
	}
	return s.renderTemplate(c, http.StatusOK, "home.html", data)
}
