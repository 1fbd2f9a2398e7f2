// Command bookctl is a thin demonstration host for internal/book: it loads
// configuration, wires up logging and metrics, seeds a book from stdin-free
// sample orders, and prints a snapshot. It owns no persistence or network
// transport of its own.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/conorll/orderbook/internal/book"
	"github.com/conorll/orderbook/internal/bklog"
	"github.com/conorll/orderbook/internal/config"
	"github.com/conorll/orderbook/internal/instrumented"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, using environment variables")
	}

	cfg := config.Load()

	zapLogger, level, err := bklog.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	traceID := uuid.New().String()
	runLog := zapLogger.With(zap.String("trace_id", traceID), zap.String("symbol", cfg.Symbol))
	runLog.Info("starting bookctl")

	b := instrumented.New(book.NewBook(), runLog)

	rejected := 0
	for _, o := range sampleOrders() {
		if _, err := b.Add(o); err != nil {
			rejected++
			runLog.Warn("sample order rejected", zap.Error(err))
		}
	}
	if rejected > 0 {
		// Rejections in a fixed sample batch are unexpected; turn up
		// verbosity for the rest of this run without restarting.
		level.SetDebug(true)
		runLog.Debug("rejections observed, verbosity raised", zap.Int("rejected", rejected))
	}

	bids, asks := b.Snapshot()
	printSnapshot(cfg.Symbol, cfg.SnapshotDepth, bids, asks)
}

func sampleOrders() []*book.Order {
	return []*book.Order{
		book.NewOrder(book.KindLimit, 1, book.Buy, decimal.NewFromInt(100), decimal.NewFromInt(10)),
		book.NewOrder(book.KindLimit, 2, book.Buy, decimal.NewFromInt(101), decimal.NewFromInt(50)),
		book.NewOrder(book.KindLimit, 3, book.Sell, decimal.NewFromInt(100), decimal.NewFromInt(20)),
	}
}

func printSnapshot(symbol string, depth int, bids, asks []book.LevelView) {
	fmt.Fprintf(os.Stdout, "symbol=%s\n", symbol)
	fmt.Fprintln(os.Stdout, "bids:")
	for i, lv := range bids {
		if i >= depth {
			break
		}
		fmt.Fprintf(os.Stdout, "  %s @ %s\n", lv.Quantity, lv.Price)
	}
	fmt.Fprintln(os.Stdout, "asks:")
	for i, lv := range asks {
		if i >= depth {
			break
		}
		fmt.Fprintf(os.Stdout, "  %s @ %s\n", lv.Quantity, lv.Price)
	}
}
