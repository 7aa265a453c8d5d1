package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the process-wide Prometheus collectors
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	OrdersDelivered     *prometheus.CounterVec
	StockMovements      *prometheus.CounterVec
	BulkDeletes         *prometheus.CounterVec
}

// NewMetrics registers the collectors on the given registry
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stocker",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stocker",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		OrdersDelivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stocker",
			Name:      "orders_delivered_total",
			Help:      "Orders transitioned to Delivered, by order kind.",
		}, []string{"kind"}),
		StockMovements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stocker",
			Name:      "stock_movements_total",
			Help:      "Inventory quantity movements by direction.",
		}, []string{"direction"}),
		BulkDeletes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stocker",
			Name:      "bulk_deletes_total",
			Help:      "Bulk delete outcomes by entity kind and outcome.",
		}, []string{"kind", "outcome"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.OrdersDelivered,
		m.StockMovements,
		m.BulkDeletes,
	)
	return m
}

// OrderDelivered counts one delivered order of the given kind
func (m *Metrics) OrderDelivered(kind string) {
	m.OrdersDelivered.WithLabelValues(kind).Inc()
}

// StockMovement counts units moved in or out of inventory
func (m *Metrics) StockMovement(direction string, units int64) {
	m.StockMovements.WithLabelValues(direction).Add(float64(units))
}

// BulkDelete counts one bulk delete batch by entity kind and outcome
func (m *Metrics) BulkDelete(kind, outcome string) {
	m.BulkDeletes.WithLabelValues(kind, outcome).Inc()
}
