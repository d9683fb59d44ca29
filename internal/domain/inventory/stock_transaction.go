package inventory

import (
	"time"

	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies an entry in the stock movement log
type TransactionType string

const (
	TransactionTypeIn        TransactionType = "IN"        // Stock entered a batch
	TransactionTypeOut       TransactionType = "OUT"       // Stock left a batch
	TransactionTypeReserve   TransactionType = "RESERVE"   // Free stock was earmarked, no batch touched
	TransactionTypeUnreserve TransactionType = "UNRESERVE" // A prior earmark was released
)

// IsValid checks if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIn, TransactionTypeOut, TransactionTypeReserve, TransactionTypeUnreserve:
		return true
	}
	return false
}

// TouchesBatch reports whether entries of this type carry a batch reference
func (t TransactionType) TouchesBatch() bool {
	return t == TransactionTypeIn || t == TransactionTypeOut
}

// Reference types recorded on stock transactions. The pair (RefType, RefID)
// ties each entry to the business document that caused it.
const (
	RefTypeReceipt            = "RECEIPT"
	RefTypeSalesIssue         = "SALES_ISSUE"
	RefTypeBundleReservation  = "BUNDLE_RESERVATION"
	RefTypeAllocationReversal = "ALLOCATION_REVERSAL"
	RefTypeReceiptReversal    = "RECEIPT_REVERSAL"
)

// StockTransaction is one immutable entry in the append-only movement log.
// Entries are never updated or deleted; corrections append compensating
// entries instead.
type StockTransaction struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	BookID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_txn_book"`
	BatchID   *uuid.UUID      `gorm:"type:uuid;index:idx_stock_txn_batch"` // Null for RESERVE/UNRESERVE
	Type      TransactionType `gorm:"type:varchar(20);not null;index:idx_stock_txn_type"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Always positive; Type carries the direction
	RefType   string          `gorm:"type:varchar(50);not null;index:idx_stock_txn_ref"`
	RefID     string          `gorm:"type:varchar(100);not null;index:idx_stock_txn_ref"`
	Note      string          `gorm:"type:varchar(255)"`
	CreatedAt time.Time       `gorm:"not null;index:idx_stock_txn_created"`
}

// TableName returns the table name for GORM
func (StockTransaction) TableName() string {
	return "stock_transactions"
}

// NewStockTransaction creates a log entry for a movement that touched a batch
func NewStockTransaction(bookID, batchID uuid.UUID, txnType TransactionType, quantity decimal.Decimal, refType, refID string) (*StockTransaction, error) {
	if !txnType.TouchesBatch() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Transaction type does not reference a batch")
	}
	if batchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BATCH", "Batch ID cannot be empty")
	}
	txn, err := newTransaction(bookID, txnType, quantity, refType, refID)
	if err != nil {
		return nil, err
	}
	txn.BatchID = &batchID
	return txn, nil
}

// NewReservationTransaction creates a RESERVE or UNRESERVE entry.
// Reservation entries never reference a batch; the reserved quantity is a
// claim on the book's pooled free stock.
func NewReservationTransaction(bookID uuid.UUID, txnType TransactionType, quantity decimal.Decimal, refType, refID string) (*StockTransaction, error) {
	if txnType.TouchesBatch() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Transaction type must be RESERVE or UNRESERVE")
	}
	return newTransaction(bookID, txnType, quantity, refType, refID)
}

func newTransaction(bookID uuid.UUID, txnType TransactionType, quantity decimal.Decimal, refType, refID string) (*StockTransaction, error) {
	if bookID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BOOK", "Book ID cannot be empty")
	}
	if !txnType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Invalid transaction type")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Transaction quantity must be positive")
	}
	if refType == "" || refID == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Transaction reference cannot be empty")
	}

	return &StockTransaction{
		ID:        uuid.New(),
		BookID:    bookID,
		Type:      txnType,
		Quantity:  quantity,
		RefType:   refType,
		RefID:     refID,
		CreatedAt: time.Now(),
	}, nil
}
