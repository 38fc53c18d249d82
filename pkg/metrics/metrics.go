package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	BookingsCreated    *prometheus.CounterVec
	BookingTransitions *prometheus.CounterVec
	BookingsCompleted  prometheus.Counter
	SweepRuns          *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency by operation.",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections.",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use.",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections.",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for.",
			ConstLabels: constLabels,
		}, []string{"db"}),

		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Booking creation attempts by outcome.",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		BookingTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_transitions_total",
			Help:        "Booking state transitions by action and outcome.",
			ConstLabels: constLabels,
		}, []string{"action", "outcome"}),

		BookingsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_auto_completed_total",
			Help:        "Bookings moved to completed by the sweep.",
			ConstLabels: constLabels,
		}),

		SweepRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "completion_sweep_runs_total",
			Help:        "Completion sweep runs by result.",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.BookingsCreated,
		m.BookingTransitions,
		m.BookingsCompleted,
		m.SweepRuns,
	)

	return m
}

// ObserveBookingCreated учитывает попытку создания бронирования.
// Безопасно вызывать на nil.
func (m *Metrics) ObserveBookingCreated(outcome string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(outcome).Inc()
}

// ObserveTransition учитывает переход статуса бронирования
func (m *Metrics) ObserveTransition(action, outcome string) {
	if m == nil {
		return
	}
	m.BookingTransitions.WithLabelValues(action, outcome).Inc()
}

// ObserveCompleted учитывает автоматически завершенные бронирования
func (m *Metrics) ObserveCompleted(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.BookingsCompleted.Add(float64(count))
}

// ObserveSweep учитывает запуск фоновой задачи завершения
func (m *Metrics) ObserveSweep(result string) {
	if m == nil {
		return
	}
	m.SweepRuns.WithLabelValues(result).Inc()
}
