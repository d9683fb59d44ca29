package inventory

import (
	"time"

	"github.com/bookdist/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiveStockRequest is the request to book stock into a new batch
type ReceiveStockRequest struct {
	BookID    uuid.UUID       `json:"book_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	SourceRef string          `json:"source_ref" binding:"required"`
}

// ReserveStockRequest is the request to earmark free stock
type ReserveStockRequest struct {
	BookID   uuid.UUID       `json:"book_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	RefType  string          `json:"ref_type" binding:"required"`
	RefID    string          `json:"ref_id" binding:"required"`
}

// AllocateStockRequest is the request to issue stock against a requester.
// When SourceRef is set the allocation only draws from batches of that
// receipt and fails rather than short-delivering.
type AllocateStockRequest struct {
	RequesterRef string          `json:"requester_ref" binding:"required"`
	BookID       uuid.UUID       `json:"book_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	SourceRef    *string         `json:"source_ref,omitempty"`
}

// BatchResponse is the API representation of a batch
type BatchResponse struct {
	ID                uuid.UUID       `json:"id"`
	BookID            uuid.UUID       `json:"book_id"`
	SourceRef         string          `json:"source_ref"`
	ReceivedQuantity  decimal.Decimal `json:"received_quantity"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ToBatchResponse converts a batch to its API representation
func ToBatchResponse(batch *inventory.Batch) BatchResponse {
	return BatchResponse{
		ID:                batch.ID,
		BookID:            batch.BookID,
		SourceRef:         batch.SourceRef,
		ReceivedQuantity:  batch.ReceivedQuantity,
		AvailableQuantity: batch.AvailableQuantity,
		UnitCost:          batch.UnitCost,
		CreatedAt:         batch.CreatedAt,
	}
}

// AllocationResponse is the API representation of an allocation outcome
type AllocationResponse struct {
	ID                uuid.UUID       `json:"id"`
	RequesterRef      string          `json:"requester_ref"`
	BookID            uuid.UUID       `json:"book_id"`
	RequestedQuantity decimal.Decimal `json:"requested_quantity"`
	IssuedQuantity    decimal.Decimal `json:"issued_quantity"`
	ShortQuantity     decimal.Decimal `json:"short_quantity"`
	Reversed          bool            `json:"reversed"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ToAllocationResponse converts an allocation to its API representation
func ToAllocationResponse(allocation *inventory.Allocation) AllocationResponse {
	return AllocationResponse{
		ID:                allocation.ID,
		RequesterRef:      allocation.RequesterRef,
		BookID:            allocation.BookID,
		RequestedQuantity: allocation.RequestedQuantity,
		IssuedQuantity:    allocation.IssuedQuantity,
		ShortQuantity:     allocation.ShortQuantity,
		Reversed:          allocation.Reversed,
		CreatedAt:         allocation.CreatedAt,
	}
}

// FreeStockResponse reports a book's stock position
type FreeStockResponse struct {
	BookID    uuid.UUID       `json:"book_id"`
	Available decimal.Decimal `json:"available"`
	Reserved  decimal.Decimal `json:"reserved"`
	Free      decimal.Decimal `json:"free"`
}

// StockTransactionResponse is the API representation of a movement log entry
type StockTransactionResponse struct {
	ID        uuid.UUID                 `json:"id"`
	BookID    uuid.UUID                 `json:"book_id"`
	BatchID   *uuid.UUID                `json:"batch_id,omitempty"`
	Type      inventory.TransactionType `json:"type"`
	Quantity  decimal.Decimal           `json:"quantity"`
	RefType   string                    `json:"ref_type"`
	RefID     string                    `json:"ref_id"`
	CreatedAt time.Time                 `json:"created_at"`
}

// ToStockTransactionResponse converts a log entry to its API representation
func ToStockTransactionResponse(txn *inventory.StockTransaction) StockTransactionResponse {
	return StockTransactionResponse{
		ID:        txn.ID,
		BookID:    txn.BookID,
		BatchID:   txn.BatchID,
		Type:      txn.Type,
		Quantity:  txn.Quantity,
		RefType:   txn.RefType,
		RefID:     txn.RefID,
		CreatedAt: txn.CreatedAt,
	}
}
