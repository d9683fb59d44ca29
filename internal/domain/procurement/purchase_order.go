package procurement

import (
	"time"

	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/bookdist/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of a purchase order
type OrderStatus string

const (
	OrderStatusDraft           OrderStatus = "DRAFT"
	OrderStatusSent            OrderStatus = "SENT"
	OrderStatusPartialReceived OrderStatus = "PARTIAL_RECEIVED"
	OrderStatusCompleted       OrderStatus = "COMPLETED"
	OrderStatusCancelled       OrderStatus = "CANCELLED"
)

// IsValid checks if the status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusSent, OrderStatusPartialReceived, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// DeriveStatus computes an order's status from its quantities and flags.
// Status is never stored as independent state; it is recomputed from these
// inputs whenever quantities change. Cancelled wins over everything and is
// only ever set explicitly.
func DeriveStatus(ordered, received decimal.Decimal, wasSent, cancelled bool) OrderStatus {
	if cancelled {
		return OrderStatusCancelled
	}
	if !wasSent {
		return OrderStatusDraft
	}
	if received.IsZero() {
		return OrderStatusSent
	}
	if received.GreaterThanOrEqual(ordered) {
		return OrderStatusCompleted
	}
	return OrderStatusPartialReceived
}

// OrderLine is one book position on a purchase order
type OrderLine struct {
	shared.BaseEntity
	OrderID          uuid.UUID            `gorm:"type:uuid;not null;index:idx_po_line_order"`
	BookID           uuid.UUID            `gorm:"type:uuid;not null;index:idx_po_line_book"`
	OrderedQuantity  decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	ReceivedQuantity decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	UnitPrice        decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Discount         valueobject.Discount `gorm:"embedded;embeddedPrefix:discount_"`
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "purchase_order_lines"
}

// OutstandingQuantity returns the quantity still to be received on this line
func (l *OrderLine) OutstandingQuantity() decimal.Decimal {
	outstanding := l.OrderedQuantity.Sub(l.ReceivedQuantity)
	if outstanding.IsNegative() {
		return decimal.Zero
	}
	return outstanding
}

// NetAmount returns the line total after discount
func (l *OrderLine) NetAmount() decimal.Decimal {
	gross := l.OrderedQuantity.Mul(l.UnitPrice)
	return l.Discount.Apply(gross)
}

// PurchaseOrder is the aggregate root for ordering books from a supplier
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderNumber string               `gorm:"type:varchar(50);uniqueIndex;not null"`
	SupplierID  uuid.UUID            `gorm:"type:uuid;not null;index:idx_po_supplier"`
	Discount    valueobject.Discount `gorm:"embedded;embeddedPrefix:discount_"`
	Lines       []OrderLine          `gorm:"foreignKey:OrderID"`
	WasSent     bool                 `gorm:"not null;default:false"`
	Cancelled   bool                 `gorm:"not null;default:false"`
	SentAt      *time.Time
	CancelledAt *time.Time
	Note        string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a draft purchase order
func NewPurchaseOrder(orderNumber string, supplierID uuid.UUID, discount valueobject.Discount) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}

	order := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		SupplierID:        supplierID,
		Discount:          discount,
	}
	order.AddDomainEvent(NewOrderCreatedEvent(order))
	return order, nil
}

// AddLine adds a book position to a draft order
func (o *PurchaseOrder) AddLine(bookID uuid.UUID, quantity, unitPrice decimal.Decimal, discount valueobject.Discount) error {
	if o.Status() != OrderStatusDraft {
		return shared.ErrInvalidState
	}
	if bookID == uuid.Nil {
		return shared.NewDomainError("INVALID_BOOK", "Book ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Ordered quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	for _, line := range o.Lines {
		if line.BookID == bookID {
			return shared.NewDomainError("DUPLICATE_LINE", "Order already has a line for this book")
		}
	}

	o.Lines = append(o.Lines, OrderLine{
		BaseEntity:       shared.NewBaseEntity(),
		OrderID:          o.ID,
		BookID:           bookID,
		OrderedQuantity:  quantity,
		ReceivedQuantity: decimal.Zero,
		UnitPrice:        unitPrice,
		Discount:         discount,
	})
	o.UpdatedAt = time.Now()
	return nil
}

// MarkSent transitions the order out of draft. Sending is one way; the
// sent flag stays set for the rest of the order's life.
func (o *PurchaseOrder) MarkSent() error {
	if o.Cancelled {
		return shared.ErrInvalidState
	}
	if o.WasSent {
		return shared.ErrInvalidState
	}
	if len(o.Lines) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot send an order without lines")
	}

	now := time.Now()
	o.WasSent = true
	o.SentAt = &now
	o.UpdatedAt = now
	o.AddDomainEvent(NewOrderSentEvent(o))
	return nil
}

// RecordReceipt books a received quantity against one line.
// Over-receipts are accepted; the derived status treats them as complete.
func (o *PurchaseOrder) RecordReceipt(bookID uuid.UUID, quantity decimal.Decimal) error {
	if o.Cancelled {
		return shared.ErrInvalidState
	}
	if !o.WasSent {
		return shared.ErrInvalidState
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Received quantity must be positive")
	}

	for i := range o.Lines {
		if o.Lines[i].BookID == bookID {
			o.Lines[i].ReceivedQuantity = o.Lines[i].ReceivedQuantity.Add(quantity)
			o.Lines[i].UpdatedAt = time.Now()
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("LINE_NOT_FOUND", "Order has no line for this book")
}

// UndoReceipt removes a previously recorded receipt quantity from one line
func (o *PurchaseOrder) UndoReceipt(bookID uuid.UUID, quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	for i := range o.Lines {
		if o.Lines[i].BookID == bookID {
			if quantity.GreaterThan(o.Lines[i].ReceivedQuantity) {
				return shared.ErrInvariantViolation
			}
			o.Lines[i].ReceivedQuantity = o.Lines[i].ReceivedQuantity.Sub(quantity)
			o.Lines[i].UpdatedAt = time.Now()
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("LINE_NOT_FOUND", "Order has no line for this book")
}

// Cancel marks the order cancelled. Cancellation is explicit and sticky;
// no later receipt or recomputation clears it.
func (o *PurchaseOrder) Cancel() error {
	if o.Cancelled {
		return nil
	}
	if o.Status() == OrderStatusCompleted {
		return shared.ErrInvalidState
	}

	now := time.Now()
	o.Cancelled = true
	o.CancelledAt = &now
	o.UpdatedAt = now
	o.AddDomainEvent(NewOrderCancelledEvent(o))
	return nil
}

// TotalOrdered returns the ordered quantity summed over all lines
func (o *PurchaseOrder) TotalOrdered() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.OrderedQuantity)
	}
	return total
}

// TotalReceived returns the received quantity summed over all lines
func (o *PurchaseOrder) TotalReceived() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.ReceivedQuantity)
	}
	return total
}

// Status derives the order's current status from its quantities and flags
func (o *PurchaseOrder) Status() OrderStatus {
	return DeriveStatus(o.TotalOrdered(), o.TotalReceived(), o.WasSent, o.Cancelled)
}

// NetAmount returns the order total after line and order level discounts.
// The order discount applies on top of the discounted line totals.
func (o *PurchaseOrder) NetAmount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.NetAmount())
	}
	return o.Discount.Apply(total)
}

// LineForBook returns the order line for a book, if present
func (o *PurchaseOrder) LineForBook(bookID uuid.UUID) (*OrderLine, bool) {
	for i := range o.Lines {
		if o.Lines[i].BookID == bookID {
			return &o.Lines[i], true
		}
	}
	return nil, false
}
