package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	QuizSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_submissions_total",
			Help: "Quiz attempts by module and outcome",
		},
		[]string{"module", "result"},
	)

	BadgesUnlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "badges_unlocked_total",
			Help: "Badges awarded by badge id",
		},
		[]string{"badge"},
	)

	ChallengeEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "challenge_events_total",
			Help: "Challenge lifecycle events (started, duplicate, completed)",
		},
		[]string{"event"},
	)

	// StoreFallbacks counts remote store failures answered by the local store.
	StoreFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progress_store_fallbacks_total",
			Help: "Remote progress store failures that fell back to local storage",
		},
		[]string{"op"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(QuizSubmissions)
	prometheus.MustRegister(BadgesUnlocked)
	prometheus.MustRegister(ChallengeEvents)
	prometheus.MustRegister(StoreFallbacks)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
