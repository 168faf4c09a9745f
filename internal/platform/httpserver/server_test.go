package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	slugregistry "beastypage/contexts/sharing/slug-registry"
	voteaggregator "beastypage/contexts/stream-voting/vote-aggregator"
	voteevents "beastypage/contexts/stream-voting/vote-aggregator/adapters/events"
	"beastypage/internal/platform/messaging"
	"beastypage/internal/platform/metrics"
)

func newTestServerWithOptions(opts Options) *Server {
	logger := slog.Default()
	collectors := metrics.New()
	bus := messaging.NewBus(16, logger)
	return New(
		slugregistry.NewInMemoryModule(collectors, logger),
		voteaggregator.NewInMemoryModule(voteevents.Publisher{Bus: bus, Source: "test", Logger: logger}, collectors, logger),
		bus,
		collectors,
		logger,
		":0",
		opts,
	)
}

func newTestServer() *Server {
	return newTestServerWithOptions(Options{RateLimitRequests: 1000, RateLimitWindow: time.Minute})
}

func TestHealthz(t *testing.T) {
	server := newTestServer()
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected generated request id header")
	}
}

func TestHealthzReportsUnreadyStore(t *testing.T) {
	server := newTestServerWithOptions(Options{
		Ready: func(context.Context) error { return errors.New("connection refused") },
	})
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d body=%s", rr.Code, rr.Body.String())
	}
	if strings.Contains(rr.Body.String(), "connection refused") {
		t.Fatalf("health body must not leak store errors: %s", rr.Body.String())
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "req-42")
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, req)
	if got := rr.Header().Get("X-Request-Id"); got != "req-42" {
		t.Fatalf("expected echoed request id, got %q", got)
	}
}

func TestMetricsEndpointRecordsRoutes(t *testing.T) {
	server := newTestServer()
	server.handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/shares/missing1", nil))

	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `route="GET /v1/shares/{slug}"`) {
		t.Fatalf("expected route label in metrics output:\n%s", rr.Body.String())
	}
}

func TestWriteRoutesAreRateLimited(t *testing.T) {
	server := newTestServerWithOptions(Options{RateLimitRequests: 2, RateLimitWindow: time.Minute})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/shares", strings.NewReader(`{"payload":{"n":1}}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		server.handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	if codes[0] != http.StatusCreated || codes[1] != http.StatusCreated || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}

	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/shares/whatever", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("reads must not be rate limited, got %d", rr.Code)
	}
}

func TestSwaggerDocIsServed(t *testing.T) {
	server := newTestServer()
	rr := httptest.NewRecorder()
	server.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "/v1/vote-sessions/{session_id}/votes") {
		t.Fatalf("expected vote routes in swagger doc")
	}
}
