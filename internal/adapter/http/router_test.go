package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/iho/expenses-tracker/internal/adapter/http/handler"
	apimiddleware "github.com/iho/expenses-tracker/internal/adapter/http/middleware"
	"github.com/iho/expenses-tracker/internal/domain"
	"github.com/iho/expenses-tracker/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig(t))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	router := NewRouter(newRouterConfig(t, func(cfg *RouterConfig) {
		cfg.RateLimiter = apimiddleware.NewRateLimiter(1, 1)
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/api/v1/filter", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/api/v1/filter", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}

	// Health checks are not throttled.
	req3 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req3.RemoteAddr = "1.2.3.4:1234"
	rec3 := httptest.NewRecorder()
	router.ServeHTTP(rec3, req3)
	if rec3.Code != http.StatusOK {
		t.Fatalf("expected /health to bypass the limiter, got %d", rec3.Code)
	}
}

func TestNewRouter_EntryLifecycle(t *testing.T) {
	router := NewRouter(newRouterConfig(t))

	body := `{"amount":"100","entry_type":"income","description":"salary","date":"2024-05-01"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/entries/", strings.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"total":"100"`) {
		t.Fatalf("unexpected summary %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/entries/entry-1", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/entries/entry-1", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	router := NewRouter(newRouterConfig(t, func(cfg *RouterConfig) {
		cfg.Registry = reg
	}))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "tracker_http_requests_total") {
		t.Fatal("expected HTTP metrics to be exported")
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig(t))

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /api/v1/entries/",
		"POST /api/v1/entries/",
		"DELETE /api/v1/entries/{id}",
		"GET /api/v1/summary",
		"GET /api/v1/filter",
		"PUT /api/v1/filter",
		"POST /api/v1/state/save",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(t *testing.T, opts ...func(*RouterConfig)) RouterConfig {
	t.Helper()

	tracker := usecase.NewTrackerUseCase(usecase.TrackerConfig{
		Repo:   &memoryRepo{},
		IDGen:  &sequenceIDs{},
		Clock:  fixedClock{},
		Logger: zerolog.Nop(),
	})

	cfg := RouterConfig{
		TrackerHandler: handler.NewTrackerHandler(tracker, zerolog.Nop()),
		HealthHandler:  handler.NewHealthHandler(tracker, "memory"),
		Logger:         zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type memoryRepo struct {
	state *domain.AppState
}

func (r *memoryRepo) Load(ctx context.Context) (*domain.AppState, error) {
	if r.state == nil {
		return nil, usecase.ErrStateNotFound
	}
	return r.state, nil
}

func (r *memoryRepo) Save(ctx context.Context, state *domain.AppState) error {
	r.state = state
	return nil
}

func (r *memoryRepo) Ping(ctx context.Context) error { return nil }

type sequenceIDs struct{ n int }

func (s *sequenceIDs) Generate() string {
	s.n++
	return "entry-" + strconv.Itoa(s.n)
}

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }
