// Package instrumented wraps internal/book.Book with structured logging
// and prometheus metrics, keeping the core book package itself free of
// both concerns.
package instrumented

import (
	"time"

	"go.uber.org/zap"

	"github.com/conorll/orderbook/internal/book"
	"github.com/conorll/orderbook/internal/metrics"
)

// Book pairs a *book.Book with a logger and emits metrics/log lines around
// Add and Cancel; Snapshot and Size pass straight through. It forwards all
// return values unchanged.
type Book struct {
	inner *book.Book
	log   *zap.Logger
}

// New wraps b, logging through log.
func New(b *book.Book, log *zap.Logger) *Book {
	return &Book{inner: b, log: log}
}

// Add submits o to the underlying book, logging and counting the outcome.
func (ib *Book) Add(o *book.Order) ([]book.Trade, error) {
	start := time.Now()
	trades, err := ib.inner.Add(o)
	metrics.OperationLatency.WithLabelValues("add").Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.OrdersRejected.WithLabelValues(string(book.ErrorCodeOf(err))).Inc()
		ib.log.Warn("order rejected", zap.Uint64("order_id", uint64(o.ID)), zap.Error(err))
		return nil, err
	}

	metrics.OrdersAdded.WithLabelValues(string(o.Side), string(o.Kind)).Inc()
	for _, tr := range trades {
		metrics.TradesExecuted.Inc()
		ib.log.Info("trade",
			zap.Uint64("bid_id", uint64(tr.BidLeg.OrderID)),
			zap.Uint64("ask_id", uint64(tr.AskLeg.OrderID)),
			zap.String("price", tr.AskLeg.Price.String()),
			zap.String("quantity", tr.BidLeg.Quantity.String()))
	}
	return trades, nil
}

// Cancel removes id from the underlying book, logging and counting the
// outcome.
func (ib *Book) Cancel(id book.OrderID) error {
	start := time.Now()
	err := ib.inner.Cancel(id)
	metrics.OperationLatency.WithLabelValues("cancel").Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.OrdersRejected.WithLabelValues(string(book.ErrorCodeOf(err))).Inc()
		ib.log.Warn("cancel failed", zap.Uint64("order_id", uint64(id)), zap.Error(err))
		return err
	}
	metrics.CancelsProcessed.Inc()
	ib.log.Info("order cancelled", zap.Uint64("order_id", uint64(id)))
	return nil
}

// Snapshot returns the current book state, unchanged from the inner call.
func (ib *Book) Snapshot() (bids, asks []book.LevelView) {
	return ib.inner.Snapshot()
}

// Size reports the number of resting orders.
func (ib *Book) Size() int {
	return ib.inner.Size()
}
