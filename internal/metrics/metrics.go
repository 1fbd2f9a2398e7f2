// Package metrics exposes the prometheus counters and histograms emitted
// around calls into the order book.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// OrdersAdded counts orders submitted to the book by side.
var OrdersAdded = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bookctl_orders_added_total",
		Help: "Total number of orders submitted to the book",
	},
	[]string{"side", "kind"},
)

// OrdersRejected counts Add and Cancel calls that returned an error (e.g. a
// duplicate order id, or an unknown id on cancel), labelled by error code.
var OrdersRejected = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bookctl_orders_rejected_total",
		Help: "Total number of orders rejected by the book",
	},
	[]string{"reason"},
)

// TradesExecuted counts trades produced by matching, one per trade (not per
// leg).
var TradesExecuted = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "bookctl_trades_executed_total",
		Help: "Total number of trades produced by the matcher",
	},
)

// CancelsProcessed counts successful cancels.
var CancelsProcessed = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "bookctl_cancels_total",
		Help: "Total number of orders cancelled",
	},
)

// OperationLatency records latency distribution for Add/Cancel calls.
var OperationLatency = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "bookctl_operation_latency_seconds",
		Help:    "Latency in seconds for a book operation",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"op"},
)

func init() {
	prometheus.MustRegister(OrdersAdded, OrdersRejected, TradesExecuted, CancelsProcessed, OperationLatency)
}
