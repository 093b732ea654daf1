package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/pokedex/internal/platform/correlation"
	apperrors "github.com/pscheid92/pokedex/internal/platform/errors"
)

func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := correlation.FromHeader(c.Request().Header.Get(correlation.HeaderName))
		c.Response().Header().Set(correlation.HeaderName, id)
		ctx := correlation.WithID(c.Request().Context(), id)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// errorHandlingMiddleware turns handler errors into a 4xx/5xx response in
// the format the client asked for. Echo's own HTTP errors (404, 405) pass
// through to echo's error handler unless a structured error wraps them.
func (s *Server) errorHandlingMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var structuredErr *apperrors.Error
			if !errors.As(err, &structuredErr) {
				var httpErr *echo.HTTPError
				if errors.As(err, &httpErr) {
					return err
				}
				structuredErr = apperrors.AsStructuredError(err)
			}

			logError(c, structuredErr)

			if c.Response().Committed {
				return nil
			}
			return s.writeError(c, structuredErr)
		}
	}
}

func (s *Server) writeError(c echo.Context, appErr *apperrors.Error) error {
	status := appErr.HTTPStatus()

	if negotiateFormat(c.Request()) == formatJSON {
		if err := c.JSONPretty(status, appErr.ToResponse(), "  "); err != nil {
			return fmt.Errorf("failed to write error response: %w", err)
		}
		return nil
	}

	data := map[string]any{
		"Title":   http.StatusText(status),
		"Message": appErr.Message,
	}
	return s.renderTemplate(c, status, "error.html", data)
}

func logError(c echo.Context, err *apperrors.Error) {
	ctx := c.Request().Context()
	attrs := []any{
		"error_type", err.Type,
		"message", err.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"status", err.HTTPStatus(),
	}

	for k, v := range err.Context {
		attrs = append(attrs, k, v)
	}

	switch err.Type {
	case apperrors.TypeValidation:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.InfoContext(ctx, "Validation error", attrs...)
	case apperrors.TypeUnauthorized:
		slog.InfoContext(ctx, "Unauthorized", attrs...)
	case apperrors.TypeInternal:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.ErrorContext(ctx, "Internal error", attrs...)
	default:
		slog.ErrorContext(ctx, "Unknown error type", attrs...)
	}
}
