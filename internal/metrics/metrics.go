// Package metrics 提供 HTTP 層與訂餐、帳單相關的 Prometheus 指標。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry 只放本服務自己的 collector
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mess",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mess",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	bookingUpserts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mess",
			Subsystem: "bookings",
			Name:      "upserts_total",
			Help:      "Booking upserts by outcome (created or updated).",
		},
		[]string{"result"},
	)

	billsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mess",
			Subsystem: "bills",
			Name:      "generated_total",
			Help:      "Bill generation attempts by outcome.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(httpRequests, httpDuration, bookingUpserts, billsGenerated)
}

// Middleware 以路由樣式為 label 記錄請求數與延遲
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			status := strconv.Itoa(c.Response().Status)
			httpRequests.WithLabelValues(c.Request().Method, path, status).Inc()
			httpDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// Handler 以 Prometheus 格式輸出 Registry
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordBookingUpsert 記錄一次訂餐寫入
func RecordBookingUpsert(created bool) {
	if created {
		bookingUpserts.WithLabelValues("created").Inc()
		return
	}
	bookingUpserts.WithLabelValues("updated").Inc()
}

// RecordBill 記錄帳單產生結果 (generated、skipped 或 failed)
func RecordBill(result string) {
	billsGenerated.WithLabelValues(result).Inc()
}
