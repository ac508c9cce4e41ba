package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consult_chat_http_requests_total",
			Help: "Total number of HTTP requests processed by the chat service.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "consult_chat_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	sessionsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "consult_chat_sessions_created_total",
			Help: "Number of successfully created or resolved chat sessions.",
		},
	)
	sessionCreateFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "consult_chat_session_create_failures_total",
			Help: "Number of failed session creation attempts.",
		},
	)
	messageOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consult_chat_message_operations_total",
			Help: "Message operations by kind and outcome.",
		},
		[]string{"operation", "outcome"},
	)
	messageFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "consult_chat_message_fetch_duration_seconds",
			Help:    "Time taken to fetch a session's messages.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		sessionsCreatedTotal,
		sessionCreateFailuresTotal,
		messageOpsTotal,
		messageFetchDuration,
	)
}

// HTTPMetricsMiddleware records request counts and latency per route.
func HTTPMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func IncSessionCreated() {
	sessionsCreatedTotal.Inc()
}

func IncSessionCreateFailure() {
	sessionCreateFailuresTotal.Inc()
}

func IncMessageOp(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	messageOpsTotal.WithLabelValues(operation, outcome).Inc()
}

func ObserveFetchDuration(d time.Duration) {
	messageFetchDuration.Observe(d.Seconds())
}
