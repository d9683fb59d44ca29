package inventory

import (
	"time"

	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Batch represents a discrete lot of stock created by one receiving event.
// It tracks its own remaining quantity; the invariant
// 0 <= AvailableQuantity <= ReceivedQuantity holds at all times.
type Batch struct {
	shared.BaseEntity
	BookID            uuid.UUID       `gorm:"type:uuid;not null;index:idx_batch_book"`
	SourceRef         string          `gorm:"type:varchar(100);not null;index:idx_batch_source"` // Receipt reference that created this batch
	ReceivedQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AvailableQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (Batch) TableName() string {
	return "stock_batches"
}

// NewBatch creates a new batch from a receiving event.
// The full received quantity is available initially.
func NewBatch(bookID uuid.UUID, quantity, unitCost decimal.Decimal, sourceRef string) (*Batch, error) {
	if bookID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BOOK", "Book ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Received quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if sourceRef == "" {
		return nil, shared.NewDomainError("INVALID_SOURCE_REF", "Source reference cannot be empty")
	}

	return &Batch{
		BaseEntity:        shared.NewBaseEntity(),
		BookID:            bookID,
		SourceRef:         sourceRef,
		ReceivedQuantity:  quantity,
		AvailableQuantity: quantity,
		UnitCost:          unitCost,
	}, nil
}

// Deduct removes quantity from the batch.
// The batch must hold at least the requested quantity; callers that accept
// partial fulfillment must size the request with PlanFIFO first.
func (b *Batch) Deduct(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Deduct quantity must be positive")
	}
	if quantity.GreaterThan(b.AvailableQuantity) {
		return shared.ErrInsufficientStock
	}

	b.AvailableQuantity = b.AvailableQuantity.Sub(quantity)
	b.UpdatedAt = time.Now()
	return nil
}

// Restore returns previously deducted quantity to the batch.
// Restoring beyond the received quantity breaks the ledger invariant and is
// reported as such; it cannot happen when callers only undo prior deductions.
func (b *Batch) Restore(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Restore quantity must be positive")
	}
	if b.AvailableQuantity.Add(quantity).GreaterThan(b.ReceivedQuantity) {
		return shared.ErrInvariantViolation
	}

	b.AvailableQuantity = b.AvailableQuantity.Add(quantity)
	b.UpdatedAt = time.Now()
	return nil
}

// ConsumedQuantity returns the quantity already drawn from this batch
func (b *Batch) ConsumedQuantity() decimal.Decimal {
	return b.ReceivedQuantity.Sub(b.AvailableQuantity)
}

// IsUntouched returns true if nothing has been drawn from the batch
func (b *Batch) IsUntouched() bool {
	return b.AvailableQuantity.Equal(b.ReceivedQuantity)
}

// IsExhausted returns true if the batch has no remaining quantity
func (b *Batch) IsExhausted() bool {
	return b.AvailableQuantity.LessThanOrEqual(decimal.Zero)
}

// HasStock returns true if the batch has remaining quantity
func (b *Batch) HasStock() bool {
	return b.AvailableQuantity.GreaterThan(decimal.Zero)
}

// TotalValue returns the value of the remaining quantity at batch cost
func (b *Batch) TotalValue() decimal.Decimal {
	return b.AvailableQuantity.Mul(b.UnitCost)
}
