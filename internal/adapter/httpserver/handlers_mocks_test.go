package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pscheid92/pokedex/internal/adapter/memory"
	"github.com/pscheid92/pokedex/internal/adapter/metrics"
	"github.com/pscheid92/pokedex/internal/app"
	"github.com/pscheid92/pokedex/internal/domain"
	"github.com/pscheid92/pokedex/internal/platform/config"
	"github.com/stretchr/testify/require"
)

const testCookieName = "session_id"

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

// --- Mock implementations ---

type mockAppService struct {
	listRecordsFn  func(ctx context.Context) ([]domain.Record, error)
	createRecordFn func(ctx context.Context, req app.CreateRecordRequest) (*domain.Record, error)
}

func (m *mockAppService) ListRecords(ctx context.Context) ([]domain.Record, error) {
	if m.listRecordsFn != nil {
		return m.listRecordsFn(ctx)
	}
	return nil, nil
}

func (m *mockAppService) CreateRecord(ctx context.Context, req app.CreateRecordRequest) (*domain.Record, error) {
	if m.createRecordFn != nil {
		return m.createRecordFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

// --- Test helpers ---

type testServer struct {
	*Server
	clock    *clockwork.FakeClock
	registry *prometheus.Registry
	sessions *memory.SessionStore
}

func newTestServer(t *testing.T, svc appService, opts ...func(*Server)) *testServer {
	t.Helper()

	tmpl, err := parseTemplates()
	require.NoError(t, err)

	cfg := &config.Config{AppEnv: "test", Port: "8080", SessionCookieName: testCookieName}
	clock := clockwork.NewFakeClockAt(testNow)
	reg := prometheus.NewRegistry()
	store := memory.NewSessionStore(clock, SessionOptions(cfg))

	srv := &Server{
		echo:           echo.New(),
		config:         cfg,
		app:            svc,
		sessionStore:   store,
		templates:      tmpl,
		metrics:        metrics.NewAppMetrics(reg),
		httpMetrics:    metrics.NewHTTPMetrics(reg),
		metricsHandler: metrics.Handler(reg),
		clock:          clock,
		startTime:      clock.Now(),
	}

	for _, opt := range opts {
		opt(srv)
	}

	srv.registerRoutes()

	return &testServer{Server: srv, clock: clock, registry: reg, sessions: store}
}

// newCatalogueServer wires the real service over a seeded in-memory store.
func newCatalogueServer(t *testing.T) (*testServer, *memory.RecordStore) {
	t.Helper()
	records := memory.NewRecordStore(domain.SeedRecords()...)
	return newTestServer(t, app.NewService(records)), records
}

func withHealthChecks(checks ...HealthCheck) func(*Server) {
	return func(s *Server) {
		s.healthChecks = checks
	}
}

type requestOption func(*http.Request)

func withCookie(cookie *http.Cookie) requestOption {
	return func(r *http.Request) {
		if cookie != nil {
			r.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
		}
	}
}

func withHeader(key, value string) requestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

func withForm(form string) requestOption {
	return func(r *http.Request) {
		setBody(r, form)
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
}

func withJSON(body string) requestOption {
	return func(r *http.Request) {
		setBody(r, body)
		r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
}

func setBody(r *http.Request, body string) {
	r.Body = io.NopCloser(strings.NewReader(body))
	r.ContentLength = int64(len(body))
}

func (s *testServer) do(t *testing.T, method, target string, opts ...requestOption) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

// login performs POST /login and returns the session cookie to reuse.
func (s *testServer) login(t *testing.T, name string) *http.Cookie {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/login", withForm("name="+name))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	return cookie
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	return nil
}
