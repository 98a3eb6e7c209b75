package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Database Метрики
// =============================================================================

var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Redis Метрики
// =============================================================================

var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka Метрики
// =============================================================================

var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Business Метрики (воркфлоу сбора отзывов)
// =============================================================================

// WorkflowSessionsStarted - открытые сессии воркфлоу
var WorkflowSessionsStarted = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "workflow_sessions_started_total",
		Help: "Total number of review workflow sessions started",
	},
)

// WorkflowStepCompleted - успешно пройденные шаги воркфлоу
var WorkflowStepCompleted = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "workflow_step_completed_total",
		Help: "Total number of completed workflow steps",
	},
	[]string{"step"},
)

// ReviewsSubmitted - записанные отзывы
var ReviewsSubmitted = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "reviews_submitted_total",
		Help: "Total number of reviews submitted",
	},
)

// OrderVerifications - вызовы внешней верификации заказов
var OrderVerifications = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "order_verifications_total",
		Help: "Total number of order verification calls",
	},
	[]string{"status"}, // success, failed
)

// DuplicateOrders - отклоненные повторные номера заказов
var DuplicateOrders = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "duplicate_orders_total",
		Help: "Total number of rejected duplicate order ids",
	},
)

// EvidenceUploads - загрузки скриншотов
var EvidenceUploads = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "evidence_uploads_total",
		Help: "Total number of review screenshot uploads",
	},
	[]string{"status"}, // success, failed
)

// SatisfactionRatings - распределение оценок удовлетворенности
var SatisfactionRatings = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "satisfaction_ratings_total",
		Help: "Distribution of submitted satisfaction ratings",
	},
	[]string{"rating"},
)
