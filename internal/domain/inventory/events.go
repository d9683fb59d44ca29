package inventory

import (
	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types for the inventory domain
const (
	EventTypeStockReceived      = "inventory.stock_received"
	EventTypeStockAllocated     = "inventory.stock_allocated"
	EventTypeStockReserved      = "inventory.stock_reserved"
	EventTypeStockUnreserved    = "inventory.stock_unreserved"
	EventTypeAllocationReversed = "inventory.allocation_reversed"
	EventTypeReceiptReversed    = "inventory.receipt_reversed"
)

// StockReceivedEvent is published when a receiving event creates a batch
type StockReceivedEvent struct {
	shared.BaseDomainEvent
	BookID    uuid.UUID       `json:"book_id"`
	SourceRef string          `json:"source_ref"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// NewStockReceivedEvent creates a stock received event
func NewStockReceivedEvent(batch *Batch) *StockReceivedEvent {
	return &StockReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReceived, "Batch", batch.ID),
		BookID:          batch.BookID,
		SourceRef:       batch.SourceRef,
		Quantity:        batch.ReceivedQuantity,
		UnitCost:        batch.UnitCost,
	}
}

// StockAllocatedEvent is published when stock is issued against a request
type StockAllocatedEvent struct {
	shared.BaseDomainEvent
	BookID            uuid.UUID       `json:"book_id"`
	RequesterRef      string          `json:"requester_ref"`
	RequestedQuantity decimal.Decimal `json:"requested_quantity"`
	IssuedQuantity    decimal.Decimal `json:"issued_quantity"`
	ShortQuantity     decimal.Decimal `json:"short_quantity"`
}

// NewStockAllocatedEvent creates a stock allocated event
func NewStockAllocatedEvent(allocation *Allocation) *StockAllocatedEvent {
	return &StockAllocatedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeStockAllocated, "Allocation", allocation.ID),
		BookID:            allocation.BookID,
		RequesterRef:      allocation.RequesterRef,
		RequestedQuantity: allocation.RequestedQuantity,
		IssuedQuantity:    allocation.IssuedQuantity,
		ShortQuantity:     allocation.ShortQuantity,
	}
}

// StockReservedEvent is published when free stock is earmarked
type StockReservedEvent struct {
	shared.BaseDomainEvent
	BookID   uuid.UUID       `json:"book_id"`
	RefType  string          `json:"ref_type"`
	RefID    string          `json:"ref_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// NewStockReservedEvent creates a stock reserved event
func NewStockReservedEvent(txn *StockTransaction) *StockReservedEvent {
	return &StockReservedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReserved, "StockTransaction", txn.ID),
		BookID:          txn.BookID,
		RefType:         txn.RefType,
		RefID:           txn.RefID,
		Quantity:        txn.Quantity,
	}
}

// StockUnreservedEvent is published when an earmark is released
type StockUnreservedEvent struct {
	shared.BaseDomainEvent
	BookID   uuid.UUID       `json:"book_id"`
	RefType  string          `json:"ref_type"`
	RefID    string          `json:"ref_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// NewStockUnreservedEvent creates a stock unreserved event
func NewStockUnreservedEvent(txn *StockTransaction) *StockUnreservedEvent {
	return &StockUnreservedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockUnreserved, "StockTransaction", txn.ID),
		BookID:          txn.BookID,
		RefType:         txn.RefType,
		RefID:           txn.RefID,
		Quantity:        txn.Quantity,
	}
}

// AllocationReversedEvent is published when an allocation is undone
type AllocationReversedEvent struct {
	shared.BaseDomainEvent
	BookID           uuid.UUID       `json:"book_id"`
	RequesterRef     string          `json:"requester_ref"`
	RestoredQuantity decimal.Decimal `json:"restored_quantity"`
}

// NewAllocationReversedEvent creates an allocation reversed event
func NewAllocationReversedEvent(allocation *Allocation) *AllocationReversedEvent {
	return &AllocationReversedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeAllocationReversed, "Allocation", allocation.ID),
		BookID:           allocation.BookID,
		RequesterRef:     allocation.RequesterRef,
		RestoredQuantity: allocation.IssuedQuantity,
	}
}

// ReceiptReversedEvent is published when a receiving event is undone
type ReceiptReversedEvent struct {
	shared.BaseDomainEvent
	BookID    uuid.UUID       `json:"book_id"`
	SourceRef string          `json:"source_ref"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// NewReceiptReversedEvent creates a receipt reversed event
func NewReceiptReversedEvent(batch *Batch) *ReceiptReversedEvent {
	return &ReceiptReversedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceiptReversed, "Batch", batch.ID),
		BookID:          batch.BookID,
		SourceRef:       batch.SourceRef,
		Quantity:        batch.ReceivedQuantity,
	}
}
