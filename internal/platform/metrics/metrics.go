package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "beastypage"

// Collectors records share, vote and HTTP metrics on its own registry. It
// satisfies the metrics ports of both context modules.
type Collectors struct {
	registry *prometheus.Registry

	slugAttempts  *prometheus.CounterVec
	sharesCreated *prometheus.CounterVec
	slugExhausted prometheus.Counter

	votesCreated *prometheus.CounterVec
	votesListed  prometheus.Histogram

	httpDuration  *prometheus.HistogramVec
	streamClients prometheus.Gauge
}

func New() *Collectors {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collectors{
		registry: reg,
		slugAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slug_attempts_total",
			Help:      "Slug generation attempts by outcome.",
		}, []string{"outcome"}),
		sharesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shares_created_total",
			Help:      "Shares created by slug mode.",
		}, []string{"mode"}),
		slugExhausted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slug_exhausted_total",
			Help:      "Share creations that ran out of slug attempts.",
		}),
		votesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_created_total",
			Help:      "Votes recorded by voter kind.",
		}, []string{"voter"}),
		votesListed: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "votes_listed_rows",
			Help:      "Rows returned per vote list call.",
			Buckets:   []float64{0, 1, 10, 50, 100, 250, 500, 1000},
		}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		streamClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "vote_stream_clients",
			Help:      "Open live vote stream connections.",
		}),
	}
}

func (c *Collectors) SlugAttempt(outcome string) {
	c.slugAttempts.WithLabelValues(outcome).Inc()
}

func (c *Collectors) ShareCreated(mode string) {
	c.sharesCreated.WithLabelValues(mode).Inc()
}

func (c *Collectors) SlugExhausted() {
	c.slugExhausted.Inc()
}

func (c *Collectors) VoteCreated(anonymous bool) {
	voter := "identified"
	if anonymous {
		voter = "anonymous"
	}
	c.votesCreated.WithLabelValues(voter).Inc()
}

func (c *Collectors) VotesListed(count int) {
	c.votesListed.Observe(float64(count))
}

func (c *Collectors) ObserveHTTP(method string, route string, status int, elapsed time.Duration) {
	c.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func (c *Collectors) StreamOpened() {
	c.streamClients.Inc()
}

func (c *Collectors) StreamClosed() {
	c.streamClients.Dec()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
