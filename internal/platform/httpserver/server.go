package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	slugregistry "beastypage/contexts/sharing/slug-registry"
	voteaggregator "beastypage/contexts/stream-voting/vote-aggregator"
	_ "beastypage/internal/platform/httpserver/docs"
	"beastypage/internal/platform/messaging"
	"beastypage/internal/platform/metrics"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger"
)

const maxRequestBodyBytes = 1 << 20

type Options struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration
	// Ready is probed by /healthz when set.
	Ready             func(context.Context) error
}

type Server struct {
	mux      *http.ServeMux
	handler  http.Handler
	srv      *http.Server
	logger   *slog.Logger
	addr     string
	opts     Options
	shares   slugregistry.Module
	votes    voteaggregator.Module
	bus      *messaging.Bus
	metrics  *metrics.Collectors
	upgrader websocket.Upgrader

	// Hijacked stream connections are invisible to http.Server.Shutdown;
	// they end when streams is cancelled.
	streams     context.Context
	stopStreams context.CancelFunc
}

func New(
	shares slugregistry.Module,
	votes voteaggregator.Module,
	bus *messaging.Bus,
	collectors *metrics.Collectors,
	logger *slog.Logger,
	addr string,
	opts Options,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}
	if collectors == nil {
		collectors = metrics.New()
	}
	if bus == nil {
		bus = messaging.NewBus(0, logger)
	}
	if opts.RateLimitRequests <= 0 {
		opts.RateLimitRequests = 60
	}
	if opts.RateLimitWindow <= 0 {
		opts.RateLimitWindow = time.Minute
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		opts:    opts,
		shares:  shares,
		votes:   votes,
		bus:     bus,
		metrics: collectors,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	s.streams, s.stopStreams = context.WithCancel(context.Background())
	s.registerRoutes()
	s.handler = s.withRequestID(s.withMetrics(s.mux))
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       opts.RequestTimeout,
		IdleTimeout:       2 * time.Minute,
	}
	return s
}

// Start blocks until the server stops. A graceful Shutdown is not an error.
func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server stopping",
		"event", "http_server_stopping",
		"module", "internal/platform/httpserver",
		"layer", "platform",
	)
	s.stopStreams()
	return s.srv.Shutdown(ctx)
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.Handle("GET /metrics", s.metrics.Handler())
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.Handle("POST /v1/shares", s.limitWrites(s.withTimeout(http.HandlerFunc(s.handleCreateShare))))
	s.mux.Handle("GET /v1/shares/{slug}", s.withTimeout(http.HandlerFunc(s.handleGetShare)))

	s.mux.Handle("POST /v1/vote-sessions/{session_id}/votes", s.limitWrites(s.withTimeout(http.HandlerFunc(s.handleCreateVote))))
	s.mux.Handle("GET /v1/vote-sessions/{session_id}/votes", s.withTimeout(http.HandlerFunc(s.handleListVotes)))
	s.mux.Handle("GET /v1/vote-sessions/{session_id}/tally", s.withTimeout(http.HandlerFunc(s.handleVoteTally)))
	s.mux.HandleFunc("GET /v1/vote-sessions/{session_id}/stream", s.handleVoteStream)
}

type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.opts.Ready != nil {
		if err := s.opts.Ready(r.Context()); err != nil {
			s.logger.Warn("health check failed",
				"event", "http_health_degraded",
				"module", "internal/platform/httpserver",
				"layer", "platform",
				"error", err.Error(),
			)
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Error: "store unreachable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
