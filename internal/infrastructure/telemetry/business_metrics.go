// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the distribution backend.
// It tracks purchase order activity, allocation outcomes, ledger postings,
// and stock health.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	orderCreatedTotal  *Counter
	allocationTotal    *Counter
	allocationQtyTotal *Counter
	reversalTotal      *Counter
	postingAmountTotal *Counter

	// Gauge metrics (point-in-time values)
	stockReservedQuantity *Gauge
	stockDepletedCount    *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data provider for periodic collection
	stockProvider StockMetricsProvider
}

// StockMetricsProvider provides stock data for periodic metrics collection.
// This interface allows the telemetry layer to query stock state without
// depending on the inventory domain directly.
type StockMetricsProvider interface {
	// GetReservedQuantityByBook returns the net reserved quantity per book
	GetReservedQuantityByBook(ctx context.Context) (map[uuid.UUID]int64, error)

	// GetDepletedBookCount returns the count of books with no available stock
	GetDepletedBookCount(ctx context.Context) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	StockProvider   StockMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:         cfg.Meter,
		logger:        logger,
		stopChan:      make(chan struct{}),
		stockProvider: cfg.StockProvider,
	}

	// Initialize counter metrics
	var err error

	// Purchase order metrics
	bm.orderCreatedTotal, err = NewCounter(
		cfg.Meter,
		"bookdist_order_created_total",
		"Total number of purchase orders created",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	// Allocation metrics
	bm.allocationTotal, err = NewCounter(
		cfg.Meter,
		"bookdist_allocation_total",
		"Total number of stock allocations",
		"{allocations}",
	)
	if err != nil {
		return nil, err
	}

	bm.allocationQtyTotal, err = NewCounter(
		cfg.Meter,
		"bookdist_allocation_quantity_total",
		"Total quantity allocated across all books",
		"{units}",
	)
	if err != nil {
		return nil, err
	}

	bm.reversalTotal, err = NewCounter(
		cfg.Meter,
		"bookdist_reversal_total",
		"Total number of stock reversals",
		"{reversals}",
	)
	if err != nil {
		return nil, err
	}

	// Ledger metrics
	bm.postingAmountTotal, err = NewCounter(
		cfg.Meter,
		"bookdist_posting_amount_total",
		"Total posted ledger amount in cents",
		"{cents}",
	)
	if err != nil {
		return nil, err
	}

	// Stock gauge metrics
	bm.stockReservedQuantity, err = NewGauge(
		cfg.Meter,
		"bookdist_stock_reserved_quantity",
		"Current net reserved stock quantity",
		"{units}",
	)
	if err != nil {
		return nil, err
	}

	bm.stockDepletedCount, err = NewGauge(
		cfg.Meter,
		"bookdist_stock_depleted_count",
		"Number of books with no available stock",
		"{books}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Purchase Order Metrics
// =============================================================================

// RecordOrderCreated records a purchase order creation event.
// This should be called from the application layer when an order is created.
func (bm *BusinessMetrics) RecordOrderCreated(ctx context.Context, supplierID uuid.UUID) {
	bm.orderCreatedTotal.Inc(ctx,
		AttrSupplierID.String(supplierID.String()),
	)
}

// =============================================================================
// Allocation Metrics
// =============================================================================

// RecordAllocation records an executed stock allocation.
// partial indicates the allocation satisfied only part of the requested quantity.
func (bm *BusinessMetrics) RecordAllocation(ctx context.Context, bookID uuid.UUID, quantity decimal.Decimal, partial bool) {
	bm.allocationTotal.Inc(ctx,
		AttrBookID.String(bookID.String()),
		AttrPartial.Bool(partial),
	)
	bm.allocationQtyTotal.Add(ctx, quantity.IntPart(),
		AttrBookID.String(bookID.String()),
	)
}

// RecordReversal records a stock reversal by kind (allocation or receipt).
func (bm *BusinessMetrics) RecordReversal(ctx context.Context, refType string) {
	bm.reversalTotal.Inc(ctx,
		AttrRefType.String(refType),
	)
}

// =============================================================================
// Ledger Metrics
// =============================================================================

// RecordPosting records a financial ledger posting.
// Amount should be a monetary value; it is converted to cents for the counter.
func (bm *BusinessMetrics) RecordPosting(ctx context.Context, side string, amount decimal.Decimal) {
	amountCents := amount.Mul(decimal.NewFromInt(100)).IntPart()
	bm.postingAmountTotal.Add(ctx, amountCents,
		AttrPostingSide.String(side),
	)
}

// =============================================================================
// Stock Metrics
// =============================================================================

// RecordReservedQuantity records the current net reserved quantity for a book.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordReservedQuantity(ctx context.Context, bookID uuid.UUID, quantity int64) {
	bm.stockReservedQuantity.Record(ctx, quantity,
		AttrBookID.String(bookID.String()),
	)
}

// RecordDepletedBookCount records the number of books with no available stock.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordDepletedBookCount(ctx context.Context, count int64) {
	bm.stockDepletedCount.Record(ctx, count)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects stock metrics every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectStockMetrics(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectStockMetrics(ctx)
		}
	}
}

// collectStockMetrics collects stock gauge metrics.
func (bm *BusinessMetrics) collectStockMetrics(ctx context.Context) {
	if bm.stockProvider == nil {
		bm.logger.Debug("No stock provider configured, skipping stock metrics collection")
		return
	}

	// Collect net reserved quantity by book
	reservedByBook, err := bm.stockProvider.GetReservedQuantityByBook(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get reserved quantity", zap.Error(err))
	} else {
		for bookID, quantity := range reservedByBook {
			bm.RecordReservedQuantity(ctx, bookID, quantity)
		}
	}

	// Collect depleted book count
	depletedCount, err := bm.stockProvider.GetDepletedBookCount(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get depleted book count", zap.Error(err))
	} else {
		bm.RecordDepletedBookCount(ctx, depletedCount)
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
