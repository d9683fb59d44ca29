// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockMetricsProvider implements StockMetricsProvider using GORM.
// It queries the stock tables directly for aggregated metrics.
type GormStockMetricsProvider struct {
	db *gorm.DB
}

// NewGormStockMetricsProvider creates a new GormStockMetricsProvider.
func NewGormStockMetricsProvider(db *gorm.DB) *GormStockMetricsProvider {
	return &GormStockMetricsProvider{db: db}
}

// GetReservedQuantityByBook returns the net reserved quantity per book,
// derived from the RESERVE/UNRESERVE entries in the stock transaction log.
func (p *GormStockMetricsProvider) GetReservedQuantityByBook(ctx context.Context) (map[uuid.UUID]int64, error) {
	type result struct {
		BookID   uuid.UUID `gorm:"column:book_id"`
		Reserved int64     `gorm:"column:reserved"`
	}

	var results []result
	err := p.db.WithContext(ctx).
		Table("stock_transactions").
		Select("book_id, COALESCE(SUM(CASE WHEN type = 'RESERVE' THEN quantity ELSE -quantity END), 0) as reserved").
		Where("type IN ?", []string{"RESERVE", "UNRESERVE"}).
		Group("book_id").
		Having("SUM(CASE WHEN type = 'RESERVE' THEN quantity ELSE -quantity END) > 0").
		Find(&results).Error

	if err != nil {
		return nil, err
	}

	m := make(map[uuid.UUID]int64, len(results))
	for _, r := range results {
		m[r.BookID] = r.Reserved
	}

	return m, nil
}

// GetDepletedBookCount returns the count of books whose batches hold no
// available stock.
func (p *GormStockMetricsProvider) GetDepletedBookCount(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM (
			SELECT book_id FROM stock_batches
			GROUP BY book_id
			HAVING SUM(available_quantity) <= 0
		) depleted`).
		Scan(&count).Error

	return count, err
}
