package metrics

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service owns a private Prometheus registry. All methods are safe on a nil
// receiver so callers can run without metrics.
type Service struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	bookingsCreated   prometheus.Counter
	bookingRevenue    prometheus.Counter
	statusChanges     *prometheus.CounterVec
	slotsCacheLookups *prometheus.CounterVec
}

func New() *Service {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	bookingsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Bookings accepted",
	})

	bookingRevenue := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookings_value_cents_total",
		Help: "Sum of totalCost over accepted bookings, in cents",
	})

	statusChanges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_status_changes_total",
		Help: "Booking status updates by target status",
	}, []string{"status"})

	slotsCacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "slots_cache_lookups_total",
		Help: "Resolved-slot cache lookups by result",
	}, []string{"result"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(
		requestDuration,
		requestTotal,
		bookingsCreated,
		bookingRevenue,
		statusChanges,
		slotsCacheLookups,
		goroutines,
	)

	return &Service{
		registry:          registry,
		handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:   requestDuration,
		requestTotal:      requestTotal,
		bookingsCreated:   bookingsCreated,
		bookingRevenue:    bookingRevenue,
		statusChanges:     statusChanges,
		slotsCacheLookups: slotsCacheLookups,
	}
}

func (m *Service) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

func (m *Service) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

func (m *Service) BookingCreated(totalCost int64) {
	if m == nil {
		return
	}
	m.bookingsCreated.Inc()
	m.bookingRevenue.Add(float64(totalCost))
}

func (m *Service) BookingStatusChanged(status string) {
	if m == nil {
		return
	}
	m.statusChanges.WithLabelValues(status).Inc()
}

func (m *Service) SlotsCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.slotsCacheLookups.WithLabelValues(result).Inc()
}
