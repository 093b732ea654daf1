package httpserver

import (
	"log/slog"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/pscheid92/pokedex/internal/domain"
	apperrors "github.com/pscheid92/pokedex/internal/platform/errors"
)

// Session keys
const (
	sessionKeyLoggedIn = "is_logged_in"
	sessionKeyName     = "name"
)

const contextKeySession = "session"

const msgLoginRequired = "You must be logged in to view this page"

// withSession resolves the visitor's session and saves it just before the
// response headers go out, so every response carries the id cookie and
// reflects whatever the handler changed.
func (s *Server) withSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := s.sessionStore.Get(c.Request(), s.config.SessionCookieName)
		if err != nil {
			return apperrors.InternalError("failed to load session", err)
		}
		c.Set(contextKeySession, session)

		c.Response().Before(func() {
			if err := session.Save(c.Request(), c.Response()); err != nil {
				slog.ErrorContext(c.Request().Context(), "Failed to save session", "error", err)
			}
		})

		return next(c)
	}
}

// requireAuth rejects anonymous visitors with 401. Must run after withSession.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !visitorFrom(sessionFrom(c)).LoggedIn {
			s.metrics.AuthDeniedTotal.WithLabelValues(string(negotiateFormat(c.Request()))).Inc()
			return apperrors.UnauthorizedError(msgLoginRequired)
		}
		return next(c)
	}
}

func sessionFrom(c echo.Context) *sessions.Session {
	session, _ := c.Get(contextKeySession).(*sessions.Session)
	return session
}

func visitorFrom(session *sessions.Session) domain.Visitor {
	if session == nil {
		return domain.Visitor{}
	}
	loggedIn, _ := session.Values[sessionKeyLoggedIn].(bool)
	name, _ := session.Values[sessionKeyName].(string)
	return domain.Visitor{LoggedIn: loggedIn, Name: name}
}

func signIn(session *sessions.Session, name string) {
	session.Values[sessionKeyLoggedIn] = true
	session.Values[sessionKeyName] = name
}

// signOut drops all session values and marks the cookie for expiry.
func signOut(session *sessions.Session) {
	session.Values = make(map[any]any)
	session.Options.MaxAge = -1
}
