package inventory

import (
	"context"

	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BatchRepository defines the interface for batch persistence.
// The ForUpdate variants lock the returned rows for the duration of the
// surrounding transaction.
type BatchRepository interface {
	// Save persists a new batch
	Save(ctx context.Context, batch *Batch) error

	// Update persists batch changes
	Update(ctx context.Context, batch *Batch) error

	// FindByID finds a batch by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Batch, error)

	// FindByBook finds all batches for a book, oldest first
	FindByBook(ctx context.Context, bookID uuid.UUID) ([]*Batch, error)

	// FindByBookForUpdate finds and locks all batches for a book, oldest first
	FindByBookForUpdate(ctx context.Context, bookID uuid.UUID) ([]*Batch, error)

	// FindBySourceRefForUpdate finds and locks all batches created by one receipt
	FindBySourceRefForUpdate(ctx context.Context, sourceRef string) ([]*Batch, error)

	// FindByBookAndSourceRefForUpdate finds and locks a book's batches from one receipt
	FindByBookAndSourceRefForUpdate(ctx context.Context, bookID uuid.UUID, sourceRef string) ([]*Batch, error)

	// ExistsBySourceRef checks whether any batch was created by the given receipt
	ExistsBySourceRef(ctx context.Context, sourceRef string) (bool, error)

	// SumAvailableByBook returns the total available quantity across a book's batches
	SumAvailableByBook(ctx context.Context, bookID uuid.UUID) (decimal.Decimal, error)

	// FindAll lists batches with pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]*Batch, error)

	// Count returns the number of batches matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// StockTransactionRepository defines the interface for the movement log.
// Entries are append-only; there are no update or delete operations.
type StockTransactionRepository interface {
	// Save appends a log entry
	Save(ctx context.Context, txn *StockTransaction) error

	// FindByBook lists a book's entries, newest first
	FindByBook(ctx context.Context, bookID uuid.UUID, filter shared.Filter) ([]*StockTransaction, error)

	// FindByRef lists entries tied to a business document
	FindByRef(ctx context.Context, refType, refID string) ([]*StockTransaction, error)

	// ExistsByRef checks whether any entry of the given type is tied to a document
	ExistsByRef(ctx context.Context, txnType TransactionType, refType, refID string) (bool, error)

	// ExistsByRefAndBook is ExistsByRef narrowed to one book. A document
	// reference may span several books, so per-book idempotency checks
	// must not match entries written for a sibling book.
	ExistsByRefAndBook(ctx context.Context, txnType TransactionType, refType, refID string, bookID uuid.UUID) (bool, error)

	// SumReservedByBook returns reserve minus unreserve totals for a book
	SumReservedByBook(ctx context.Context, bookID uuid.UUID) (decimal.Decimal, error)
}

// AllocationRepository defines the interface for allocation persistence
type AllocationRepository interface {
	// Save persists a new allocation
	Save(ctx context.Context, allocation *Allocation) error

	// Update persists allocation changes
	Update(ctx context.Context, allocation *Allocation) error

	// FindByID finds an allocation by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Allocation, error)

	// FindByRequesterRef finds allocations recorded for a requester
	FindByRequesterRef(ctx context.Context, requesterRef string) ([]*Allocation, error)

	// FindByRequesterAndBook finds a requester's allocations for one book
	FindByRequesterAndBook(ctx context.Context, requesterRef string, bookID uuid.UUID) ([]*Allocation, error)
}
