package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service collectors. It implements render.Observer.
type Metrics struct {
	reg *prometheus.Registry

	MessagesRendered prometheus.Counter
	Cards            *prometheus.CounterVec
	Requests         *prometheus.CounterVec
	Duration         *prometheus.HistogramVec
}

// New creates the collectors and registers them in a fresh registry.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		MessagesRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "finreply",
			Name:      "messages_rendered_total",
			Help:      "Total number of replies rendered",
		}),
		Cards: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "finreply",
			Name:      "cards_total",
			Help:      "Card payloads seen, by result (rendered|degraded)",
		}, []string{"result"}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "finreply",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests",
		}, []string{"path", "method", "code"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "finreply",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Request duration",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "method"}),
	}
	m.reg.MustRegister(m.MessagesRendered, m.Cards, m.Requests, m.Duration)
	return m
}

func (m *Metrics) MessageRendered() { m.MessagesRendered.Inc() }
func (m *Metrics) CardRendered()    { m.Cards.WithLabelValues("rendered").Inc() }
func (m *Metrics) CardDegraded()    { m.Cards.WithLabelValues("degraded").Inc() }

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// otherPath labels requests to paths outside the registered routes.
const otherPath = "other"

// Middleware records request counts and durations. Only the given routes get
// their own path label; anything else is counted under "other".
func (m *Metrics) Middleware(next http.Handler, routes ...string) http.Handler {
	known := make(map[string]struct{}, len(routes))
	for _, r := range routes {
		known[r] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		path := r.URL.Path
		if _, ok := known[path]; !ok {
			path = otherPath
		}
		m.Requests.WithLabelValues(path, r.Method, strconv.Itoa(rw.status)).Inc()
		m.Duration.WithLabelValues(path, r.Method).Observe(time.Since(start).Seconds())
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
