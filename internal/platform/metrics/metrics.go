// Package metrics provides Prometheus metrics for the gallery service
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// GalleryMetrics contains Prometheus metrics for photo and HTTP operations
type GalleryMetrics struct {
	registry *prometheus.Registry

	likesTotal          prometheus.Counter
	likeErrorsTotal     *prometheus.CounterVec
	eventPublishErrors  *prometheus.CounterVec
	photosSeededTotal   prometheus.Counter
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewGalleryMetrics creates and registers gallery metrics on registry
func NewGalleryMetrics(registry *prometheus.Registry) (*GalleryMetrics, error) {
	m := &GalleryMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *GalleryMetrics) initMetrics() {
	m.likesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gallery_photo_likes_total",
		Help: "Total number of accepted photo likes",
	})

	m.likeErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_photo_like_errors_total",
			Help: "Total number of rejected or failed like operations",
		},
		[]string{"reason"}, // reason: not_found, store
	)

	m.eventPublishErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_event_publish_errors_total",
			Help: "Total number of domain events that could not be published",
		},
		[]string{"type"},
	)

	m.photosSeededTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gallery_photos_seeded_total",
		Help: "Total number of photos inserted by the seed routine",
	})

	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gallery_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
}

// Describe implements prometheus.Collector
func (m *GalleryMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.likesTotal.Describe(ch)
	m.likeErrorsTotal.Describe(ch)
	m.eventPublishErrors.Describe(ch)
	m.photosSeededTotal.Describe(ch)
	m.httpRequestsTotal.Describe(ch)
	m.httpRequestDuration.Describe(ch)
}

// Collect implements prometheus.Collector
func (m *GalleryMetrics) Collect(ch chan<- prometheus.Metric) {
	m.likesTotal.Collect(ch)
	m.likeErrorsTotal.Collect(ch)
	m.eventPublishErrors.Collect(ch)
	m.photosSeededTotal.Collect(ch)
	m.httpRequestsTotal.Collect(ch)
	m.httpRequestDuration.Collect(ch)
}

// Registry returns the registry the metrics were registered on
func (m *GalleryMetrics) Registry() *prometheus.Registry { return m.registry }

// RecordLike counts one accepted like
func (m *GalleryMetrics) RecordLike() { m.likesTotal.Inc() }

// RecordLikeError counts a failed like by reason
func (m *GalleryMetrics) RecordLikeError(reason string) {
	m.likeErrorsTotal.WithLabelValues(reason).Inc()
}

// RecordPublishError counts an event that failed to publish
func (m *GalleryMetrics) RecordPublishError(eventType string) {
	m.eventPublishErrors.WithLabelValues(eventType).Inc()
}

// RecordSeeded counts photos inserted by the seed routine
func (m *GalleryMetrics) RecordSeeded(n int) { m.photosSeededTotal.Add(float64(n)) }

// ObserveHTTPRequest records one served request
func (m *GalleryMetrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
