package inventory

import (
	"context"

	"github.com/bookdist/backend/internal/domain/finance"
	"github.com/bookdist/backend/internal/domain/inventory"
	"github.com/bookdist/backend/internal/domain/procurement"
)

// TransactionScope provides transactional access to the stock repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and are committed or
// rolled back atomically. Row locks taken inside the scope are held until
// the transaction ends.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories a stock
// mutation may touch within one transaction. Goods receipts span three
// aggregates (purchase order, batches, supplier ledger), so the scope
// exposes all of them; each mutation uses the subset it needs.
type TransactionalRepositories interface {
	// BatchRepo returns the batch repository scoped to the current transaction
	BatchRepo() inventory.BatchRepository
	// TransactionRepo returns the movement log repository scoped to the current transaction
	TransactionRepo() inventory.StockTransactionRepository
	// AllocationRepo returns the allocation repository scoped to the current transaction
	AllocationRepo() inventory.AllocationRepository
	// OrderRepo returns the purchase order repository scoped to the current transaction
	OrderRepo() procurement.PurchaseOrderRepository
	// RequirementRepo returns the requirement repository scoped to the current transaction
	RequirementRepo() procurement.RequirementRepository
	// PostingRepo returns the ledger posting repository scoped to the current transaction
	PostingRepo() finance.LedgerPostingRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing or when transaction support is
// not required.
type NoOpTransactionScope struct {
	batchRepo       inventory.BatchRepository
	transactionRepo inventory.StockTransactionRepository
	allocationRepo  inventory.AllocationRepository
	orderRepo       procurement.PurchaseOrderRepository
	requirementRepo procurement.RequirementRepository
	postingRepo     finance.LedgerPostingRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	batchRepo inventory.BatchRepository,
	transactionRepo inventory.StockTransactionRepository,
	allocationRepo inventory.AllocationRepository,
	orderRepo procurement.PurchaseOrderRepository,
	requirementRepo procurement.RequirementRepository,
	postingRepo finance.LedgerPostingRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		batchRepo:       batchRepo,
		transactionRepo: transactionRepo,
		allocationRepo:  allocationRepo,
		orderRepo:       orderRepo,
		requirementRepo: requirementRepo,
		postingRepo:     postingRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// BatchRepo returns the batch repository.
func (s *NoOpTransactionScope) BatchRepo() inventory.BatchRepository {
	return s.batchRepo
}

// TransactionRepo returns the movement log repository.
func (s *NoOpTransactionScope) TransactionRepo() inventory.StockTransactionRepository {
	return s.transactionRepo
}

// AllocationRepo returns the allocation repository.
func (s *NoOpTransactionScope) AllocationRepo() inventory.AllocationRepository {
	return s.allocationRepo
}

// OrderRepo returns the purchase order repository.
func (s *NoOpTransactionScope) OrderRepo() procurement.PurchaseOrderRepository {
	return s.orderRepo
}

// RequirementRepo returns the requirement repository.
func (s *NoOpTransactionScope) RequirementRepo() procurement.RequirementRepository {
	return s.requirementRepo
}

// PostingRepo returns the ledger posting repository.
func (s *NoOpTransactionScope) PostingRepo() finance.LedgerPostingRepository {
	return s.postingRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
