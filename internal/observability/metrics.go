package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the news service.
// Metrics are organized by subsystem: HTTP traffic, database queries, and
// domain entity lifecycle. All counters and histograms are registered via
// promauto for automatic registration with the default Prometheus registry.
type Metrics struct {
	// HTTPRequestsTotal counts HTTP requests, labeled by method, route pattern, and status code.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration observes HTTP request duration in seconds, labeled by method and route pattern.
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsRejected counts requests rejected by the rate limiter.
	HTTPRequestsRejected prometheus.Counter

	// DBQueryDuration observes database query duration in seconds, labeled by operation.
	DBQueryDuration *prometheus.HistogramVec

	// DBQueryErrors counts database query errors, labeled by operation.
	DBQueryErrors *prometheus.CounterVec

	// ArticlesCreated counts articles created.
	ArticlesCreated prometheus.Counter

	// CommentsCreated counts comments created.
	CommentsCreated prometheus.Counter

	// CommentsDeleted counts comments deleted.
	CommentsDeleted prometheus.Counter

	// VotesApplied counts vote adjustments applied, labeled by entity (article, comment).
	VotesApplied *prometheus.CounterVec

	// UsersCreated counts users registered.
	UsersCreated prometheus.Counter

	// TopicsCreated counts topics created.
	TopicsCreated prometheus.Counter

	// EventsPublished counts lifecycle events published, labeled by event type.
	EventsPublished *prometheus.CounterVec

	// EventsFailed counts lifecycle events that failed to publish, labeled by event type.
	EventsFailed *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		// HTTP
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),
		HTTPRequestsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_rejected_total",
			Help:      "Total number of HTTP requests rejected by the rate limiter",
		}),

		// Database
		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Duration of database queries in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"operation"}),

		// Entities
		ArticlesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_created_total",
			Help:      "Total number of articles created",
		}),
		CommentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_created_total",
			Help:      "Total number of comments created",
		}),
		CommentsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_deleted_total",
			Help:      "Total number of comments deleted",
		}),
		VotesApplied: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_applied_total",
			Help:      "Total number of vote adjustments applied by entity",
		}, []string{"entity"}),
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_created_total",
			Help:      "Total number of users registered",
		}),
		TopicsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "topics_created_total",
			Help:      "Total number of topics created",
		}),

		// Events
		EventsPublished: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Total number of lifecycle events published",
		}, []string{"event_type"}),
		EventsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_failed_total",
			Help:      "Total number of lifecycle events that failed to publish",
		}, []string{"event_type"}),
	}
}

// RecordHTTPRequest records a completed HTTP request.
func (m *Metrics) RecordHTTPRequest(method, route, status string, durationSeconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(durationSeconds)
}

// RecordHTTPRequestRejected records a request rejected by the rate limiter.
func (m *Metrics) RecordHTTPRequestRejected() {
	m.HTTPRequestsRejected.Inc()
}

// RecordDBQuery records a database query.
func (m *Metrics) RecordDBQuery(operation string, durationSeconds float64, err error) {
	m.DBQueryDuration.WithLabelValues(operation).Observe(durationSeconds)
	if err != nil {
		m.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordArticleCreated records that an article was created.
func (m *Metrics) RecordArticleCreated() {
	m.ArticlesCreated.Inc()
}

// RecordCommentCreated records that a comment was created.
func (m *Metrics) RecordCommentCreated() {
	m.CommentsCreated.Inc()
}

// RecordCommentDeleted records that a comment was deleted.
func (m *Metrics) RecordCommentDeleted() {
	m.CommentsDeleted.Inc()
}

// RecordVoteApplied records a vote adjustment on an entity.
func (m *Metrics) RecordVoteApplied(entity string) {
	m.VotesApplied.WithLabelValues(entity).Inc()
}

// RecordUserCreated records that a user was registered.
func (m *Metrics) RecordUserCreated() {
	m.UsersCreated.Inc()
}

// RecordTopicCreated records that a topic was created.
func (m *Metrics) RecordTopicCreated() {
	m.TopicsCreated.Inc()
}

// RecordEventPublished records a lifecycle event that was published.
func (m *Metrics) RecordEventPublished(eventType string) {
	m.EventsPublished.WithLabelValues(eventType).Inc()
}

// RecordEventFailed records a lifecycle event that failed to publish.
func (m *Metrics) RecordEventFailed(eventType string) {
	m.EventsFailed.WithLabelValues(eventType).Inc()
}
