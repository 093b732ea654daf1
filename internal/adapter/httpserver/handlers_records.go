package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/pokedex/internal/app"
	apperrors "github.com/pscheid92/pokedex/internal/platform/errors"
)

func (s *Server) registerRecordRoutes() {
	s.echo.GET("/pokemon", s.handleListRecords, s.withSession)
	s.echo.POST("/pokemon", s.handleCreateRecord, s.withSession, s.requireAuth)
}

func (s *Server) handleListRecords(c echo.Context) error {
	records, err := s.app.ListRecords(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to list records", err)
	}

	data := map[string]any{
		"Title":      "All Pokemon",
		"Records":    records,
		"IsLoggedIn": visitorFrom(sessionFrom(c)).LoggedIn,
	}
	return s.renderTemplate(c, http.StatusOK, "list.html", data)
}

func (s *Server) handleCreateRecord(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := parseBody(c)
	if err != nil {
		return err
	}

	_, err = s.app.CreateRecord(ctx, app.CreateRecordRequest{
		Name:      body.Get("name"),
		Type:      body.Get("type"),
		CreatedBy: visitorFrom(sessionFrom(c)).Name,
	})
	if err != nil {
		return apperrors.InternalError("failed to create record", err).
			WithField("name", body.Get("name"))
	}
	s.metrics.RecordsCreatedTotal.Inc()

	return seeOther(c, "/pokemon")
}
