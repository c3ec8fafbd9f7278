// Package monitoring defines the Prometheus metrics exported at /metrics.
package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
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
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 15, 30},
		},
		[]string{"method", "endpoint"},
	)

	QuizzesGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quizforge_quizzes_generated_total",
			Help: "Quizzes created from uploaded documents",
		},
		[]string{"generator"},
	)

	GenerationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quizforge_generation_failures_total",
			Help: "Question generation failures by kind",
		},
		[]string{"kind"},
	)

	UploadRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quizforge_upload_rejections_total",
			Help: "Uploads rejected before question generation",
		},
		[]string{"code"},
	)

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quizforge_cache_lookups_total",
			Help: "Cache reads by backend and outcome (hit, miss, error)",
		},
		[]string{"backend", "result"},
	)

	SubmissionPercentage = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quizforge_submission_percentage",
			Help:    "Percentage scored by graded submissions",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
)

var registerOnce sync.Once

// Init registers all collectors with the default registry. Repeated calls are no-ops.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			QuizzesGenerated,
			GenerationFailures,
			UploadRejections,
			CacheLookups,
			SubmissionPercentage,
		)
	})
}

// MetricsMiddleware records request count and latency per route.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else if status < fiber.StatusBadRequest {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		RequestCounter.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		RequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// PrometheusHandler serves the default registry through fiber.
func PrometheusHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
