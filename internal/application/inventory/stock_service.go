package inventory

import (
	"context"

	"github.com/bookdist/backend/internal/domain/finance"
	"github.com/bookdist/backend/internal/domain/inventory"
	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockService handles stock mutations: receipts, reservations, FIFO
// allocations and their reversals. Every mutation runs inside a single
// transaction scope; the batches involved are locked before any derived
// sum is read, so two concurrent requests cannot both pass the same
// availability check.
type StockService struct {
	txScope        TransactionScope
	batchRepo      inventory.BatchRepository
	txnRepo        inventory.StockTransactionRepository
	eventPublisher shared.EventPublisher
}

// NewStockService creates a new StockService
func NewStockService(
	txScope TransactionScope,
	batchRepo inventory.BatchRepository,
	txnRepo inventory.StockTransactionRepository,
) *StockService {
	return &StockService{
		txScope:   txScope,
		batchRepo: batchRepo,
		txnRepo:   txnRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StockService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *StockService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	// Publish errors are logged by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
}

// Receive books received stock into a new batch and appends the IN entry.
// A second receipt with the same source reference for the same book is
// rejected as a conflict.
func (s *StockService) Receive(ctx context.Context, req ReceiveStockRequest) (*BatchResponse, error) {
	var batch *inventory.Batch
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		batch, err = ReceiveInScope(ctx, repos, req)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, inventory.NewStockReceivedEvent(batch))
	response := ToBatchResponse(batch)
	return &response, nil
}

// ReceiveInScope creates the batch and IN entry inside an open transaction.
// Goods receipt processing calls this from its own scope so the batch, the
// order update and the supplier posting commit together.
func ReceiveInScope(ctx context.Context, repos TransactionalRepositories, req ReceiveStockRequest) (*inventory.Batch, error) {
	existing, err := repos.BatchRepo().FindByBookAndSourceRefForUpdate(ctx, req.BookID, req.SourceRef)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, shared.ErrConflict
	}

	batch, err := inventory.NewBatch(req.BookID, req.Quantity, req.UnitCost, req.SourceRef)
	if err != nil {
		return nil, err
	}
	if err := repos.BatchRepo().Save(ctx, batch); err != nil {
		return nil, err
	}

	txn, err := inventory.NewStockTransaction(batch.BookID, batch.ID, inventory.TransactionTypeIn, batch.ReceivedQuantity, inventory.RefTypeReceipt, req.SourceRef)
	if err != nil {
		return nil, err
	}
	if err := repos.TransactionRepo().Save(ctx, txn); err != nil {
		return nil, err
	}
	return batch, nil
}

// Reserve earmarks free stock for a future need. The book's batches are
// locked before the reserved sum is computed, so the free stock check and
// the RESERVE entry are atomic against concurrent reservations.
func (s *StockService) Reserve(ctx context.Context, req ReserveStockRequest) error {
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Reserve quantity must be positive")
	}

	var txn *inventory.StockTransaction
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		batches, err := repos.BatchRepo().FindByBookForUpdate(ctx, req.BookID)
		if err != nil {
			return err
		}
		available := decimal.Zero
		for _, batch := range batches {
			available = available.Add(batch.AvailableQuantity)
		}
		reserved, err := repos.TransactionRepo().SumReservedByBook(ctx, req.BookID)
		if err != nil {
			return err
		}
		free := available.Sub(reserved)
		if req.Quantity.GreaterThan(free) {
			return shared.ErrInsufficientFree
		}

		txn, err = inventory.NewReservationTransaction(req.BookID, inventory.TransactionTypeReserve, req.Quantity, req.RefType, req.RefID)
		if err != nil {
			return err
		}
		return repos.TransactionRepo().Save(ctx, txn)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, inventory.NewStockReservedEvent(txn))
	return nil
}

// Unreserve releases a previously made reservation. Releasing more than is
// currently reserved would drive the derived total negative, so it is
// rejected up front.
func (s *StockService) Unreserve(ctx context.Context, req ReserveStockRequest) error {
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Unreserve quantity must be positive")
	}

	var txn *inventory.StockTransaction
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		// Lock the book's batches to serialize against concurrent
		// reservation traffic on the same book
		if _, err := repos.BatchRepo().FindByBookForUpdate(ctx, req.BookID); err != nil {
			return err
		}
		reserved, err := repos.TransactionRepo().SumReservedByBook(ctx, req.BookID)
		if err != nil {
			return err
		}
		if req.Quantity.GreaterThan(reserved) {
			return shared.NewDomainError("INVALID_QUANTITY", "Cannot release more than is reserved")
		}

		txn, err = inventory.NewReservationTransaction(req.BookID, inventory.TransactionTypeUnreserve, req.Quantity, req.RefType, req.RefID)
		if err != nil {
			return err
		}
		return repos.TransactionRepo().Save(ctx, txn)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, inventory.NewStockUnreservedEvent(txn))
	return nil
}

// Allocate issues stock to a requester, draining the oldest batches first.
// Unscoped allocations deliver what they can and record the shortfall.
// Allocations scoped to one receipt are all-or-nothing: a shortfall fails
// the whole request and nothing is issued.
func (s *StockService) Allocate(ctx context.Context, req AllocateStockRequest) (*AllocationResponse, error) {
	var allocation *inventory.Allocation
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var batches []*inventory.Batch
		var err error
		if req.SourceRef != nil {
			batches, err = repos.BatchRepo().FindByBookAndSourceRefForUpdate(ctx, req.BookID, *req.SourceRef)
		} else {
			batches, err = repos.BatchRepo().FindByBookForUpdate(ctx, req.BookID)
		}
		if err != nil {
			return err
		}

		allowPartial := req.SourceRef == nil
		plan, err := inventory.PlanFIFO(batches, req.Quantity, allowPartial)
		if err != nil {
			return err
		}

		for _, deduction := range plan.Deductions {
			if err := deduction.Batch.Deduct(deduction.Quantity); err != nil {
				return err
			}
			if err := repos.BatchRepo().Update(ctx, deduction.Batch); err != nil {
				return err
			}
			txn, err := inventory.NewStockTransaction(req.BookID, deduction.Batch.ID, inventory.TransactionTypeOut, deduction.Quantity, inventory.RefTypeSalesIssue, req.RequesterRef)
			if err != nil {
				return err
			}
			if err := repos.TransactionRepo().Save(ctx, txn); err != nil {
				return err
			}
		}

		allocation, err = inventory.NewAllocation(req.RequesterRef, req.BookID, req.Quantity, plan.IssuedTotal)
		if err != nil {
			return err
		}
		return repos.AllocationRepo().Save(ctx, allocation)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, inventory.NewStockAllocatedEvent(allocation))
	response := ToAllocationResponse(allocation)
	return &response, nil
}

// ReverseAllocation undoes everything issued to a requester for one book by
// appending compensating IN entries and restoring the batches. Replaying
// the reversal is a no-op; the original OUT entries stay in the log either
// way.
func (s *StockService) ReverseAllocation(ctx context.Context, requesterRef string, bookID uuid.UUID) error {
	if requesterRef == "" {
		return shared.NewDomainError("INVALID_REQUESTER", "Requester reference cannot be empty")
	}

	var reversed []*inventory.Allocation
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		// Lock the book's batches before inspecting the log
		if _, err := repos.BatchRepo().FindByBookForUpdate(ctx, bookID); err != nil {
			return err
		}

		// The same requester ref can carry allocations for several books,
		// so the replay check has to be scoped to this book or reversing
		// the second book would be skipped as a replay of the first.
		alreadyReversed, err := repos.TransactionRepo().ExistsByRefAndBook(ctx, inventory.TransactionTypeIn, inventory.RefTypeAllocationReversal, requesterRef, bookID)
		if err != nil {
			return err
		}
		if alreadyReversed {
			return nil
		}

		issues, err := repos.TransactionRepo().FindByRef(ctx, inventory.RefTypeSalesIssue, requesterRef)
		if err != nil {
			return err
		}
		for _, issue := range issues {
			if issue.Type != inventory.TransactionTypeOut || issue.BookID != bookID {
				continue
			}
			if issue.BatchID == nil {
				return shared.ErrInvariantViolation
			}
			batch, err := repos.BatchRepo().FindByID(ctx, *issue.BatchID)
			if err != nil {
				return err
			}
			if err := batch.Restore(issue.Quantity); err != nil {
				return err
			}
			if err := repos.BatchRepo().Update(ctx, batch); err != nil {
				return err
			}
			compensating, err := inventory.NewStockTransaction(issue.BookID, batch.ID, inventory.TransactionTypeIn, issue.Quantity, inventory.RefTypeAllocationReversal, requesterRef)
			if err != nil {
				return err
			}
			if err := repos.TransactionRepo().Save(ctx, compensating); err != nil {
				return err
			}
		}

		allocations, err := repos.AllocationRepo().FindByRequesterAndBook(ctx, requesterRef, bookID)
		if err != nil {
			return err
		}
		for _, allocation := range allocations {
			if allocation.Reversed {
				continue
			}
			allocation.MarkReversed()
			if err := repos.AllocationRepo().Update(ctx, allocation); err != nil {
				return err
			}
			reversed = append(reversed, allocation)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, allocation := range reversed {
		s.publish(ctx, inventory.NewAllocationReversedEvent(allocation))
	}
	return nil
}

// ReverseReceipt undoes a standalone receiving event. It only succeeds
// while every batch the receipt created is still untouched; once any
// quantity has been drawn the receipt can no longer be cleanly unwound.
// Receipts that were booked against a purchase order carry a supplier
// ledger posting and must be unwound through the order, which removes the
// posting and rolls the order lines back in the same transaction.
func (s *StockService) ReverseReceipt(ctx context.Context, sourceRef string) error {
	if sourceRef == "" {
		return shared.NewDomainError("INVALID_SOURCE_REF", "Source reference cannot be empty")
	}

	var reversedBatches []*inventory.Batch
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		posted, err := repos.PostingRepo().ExistsByRef(ctx, finance.RefTypeGoodsReceipt, sourceRef)
		if err != nil {
			return err
		}
		if posted {
			return shared.NewDomainError("RECEIPT_POSTED", "Receipt is booked against a purchase order; undo it through the order")
		}

		reversedBatches, err = ReverseReceiptInScope(ctx, repos, sourceRef)
		return err
	})
	if err != nil {
		return err
	}

	for _, batch := range reversedBatches {
		s.publish(ctx, inventory.NewReceiptReversedEvent(batch))
	}
	return nil
}

// ReverseReceiptInScope performs the receipt reversal inside an open
// transaction so callers can combine it with order and ledger updates.
func ReverseReceiptInScope(ctx context.Context, repos TransactionalRepositories, sourceRef string) ([]*inventory.Batch, error) {
	batches, err := repos.BatchRepo().FindBySourceRefForUpdate(ctx, sourceRef)
	if err != nil {
		return nil, err
	}
	if len(batches) == 0 {
		return nil, shared.ErrNotFound
	}

	alreadyReversed, err := repos.TransactionRepo().ExistsByRef(ctx, inventory.TransactionTypeOut, inventory.RefTypeReceiptReversal, sourceRef)
	if err != nil {
		return nil, err
	}
	if alreadyReversed {
		return nil, shared.ErrConflict
	}

	for _, batch := range batches {
		if !batch.IsUntouched() {
			return nil, shared.ErrStockConsumed
		}
	}

	for _, batch := range batches {
		quantity := batch.AvailableQuantity
		if err := batch.Deduct(quantity); err != nil {
			return nil, err
		}
		if err := repos.BatchRepo().Update(ctx, batch); err != nil {
			return nil, err
		}
		compensating, err := inventory.NewStockTransaction(batch.BookID, batch.ID, inventory.TransactionTypeOut, quantity, inventory.RefTypeReceiptReversal, sourceRef)
		if err != nil {
			return nil, err
		}
		if err := repos.TransactionRepo().Save(ctx, compensating); err != nil {
			return nil, err
		}
	}
	return batches, nil
}

// FreeStock reports a book's availability, reservations and free stock
func (s *StockService) FreeStock(ctx context.Context, bookID uuid.UUID) (*FreeStockResponse, error) {
	available, err := s.batchRepo.SumAvailableByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	reserved, err := s.txnRepo.SumReservedByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	return &FreeStockResponse{
		BookID:    bookID,
		Available: available,
		Reserved:  reserved,
		Free:      available.Sub(reserved),
	}, nil
}

// Batches lists a book's batches, oldest first
func (s *StockService) Batches(ctx context.Context, bookID uuid.UUID) ([]BatchResponse, error) {
	batches, err := s.batchRepo.FindByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	responses := make([]BatchResponse, 0, len(batches))
	for _, batch := range batches {
		responses = append(responses, ToBatchResponse(batch))
	}
	return responses, nil
}

// Movements lists a book's movement log entries
func (s *StockService) Movements(ctx context.Context, bookID uuid.UUID, filter shared.Filter) ([]StockTransactionResponse, error) {
	txns, err := s.txnRepo.FindByBook(ctx, bookID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]StockTransactionResponse, 0, len(txns))
	for _, txn := range txns {
		responses = append(responses, ToStockTransactionResponse(txn))
	}
	return responses, nil
}
