package procurement

import (
	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types for the procurement domain
const (
	EventTypeOrderCreated   = "procurement.order_created"
	EventTypeOrderSent      = "procurement.order_sent"
	EventTypeOrderReceived  = "procurement.order_received"
	EventTypeOrderCancelled = "procurement.order_cancelled"
)

// OrderCreatedEvent is published when a draft order is created
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string    `json:"order_number"`
	SupplierID  uuid.UUID `json:"supplier_id"`
}

// NewOrderCreatedEvent creates an order created event
func NewOrderCreatedEvent(order *PurchaseOrder) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, "PurchaseOrder", order.ID),
		OrderNumber:     order.OrderNumber,
		SupplierID:      order.SupplierID,
	}
}

// OrderSentEvent is published when an order leaves draft
type OrderSentEvent struct {
	shared.BaseDomainEvent
	OrderNumber  string          `json:"order_number"`
	SupplierID   uuid.UUID       `json:"supplier_id"`
	TotalOrdered decimal.Decimal `json:"total_ordered"`
}

// NewOrderSentEvent creates an order sent event
func NewOrderSentEvent(order *PurchaseOrder) *OrderSentEvent {
	return &OrderSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderSent, "PurchaseOrder", order.ID),
		OrderNumber:     order.OrderNumber,
		SupplierID:      order.SupplierID,
		TotalOrdered:    order.TotalOrdered(),
	}
}

// OrderReceivedEvent is published after a goods receipt is booked on an order
type OrderReceivedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	SupplierID  uuid.UUID       `json:"supplier_id"`
	ReceiptRef  string          `json:"receipt_ref"`
	NetAmount   decimal.Decimal `json:"net_amount"`
	Status      OrderStatus     `json:"status"`
}

// NewOrderReceivedEvent creates an order received event
func NewOrderReceivedEvent(order *PurchaseOrder, receiptRef string, netAmount decimal.Decimal) *OrderReceivedEvent {
	return &OrderReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderReceived, "PurchaseOrder", order.ID),
		OrderNumber:     order.OrderNumber,
		SupplierID:      order.SupplierID,
		ReceiptRef:      receiptRef,
		NetAmount:       netAmount,
		Status:          order.Status(),
	}
}

// OrderCancelledEvent is published when an order is cancelled
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderNumber string    `json:"order_number"`
	SupplierID  uuid.UUID `json:"supplier_id"`
}

// NewOrderCancelledEvent creates an order cancelled event
func NewOrderCancelledEvent(order *PurchaseOrder) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, "PurchaseOrder", order.ID),
		OrderNumber:     order.OrderNumber,
		SupplierID:      order.SupplierID,
	}
}
