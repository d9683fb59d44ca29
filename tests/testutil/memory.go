// Package testutil provides common test utilities for the backend.
package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookdist/backend/internal/domain/finance"
	"github.com/bookdist/backend/internal/domain/inventory"
	"github.com/bookdist/backend/internal/domain/procurement"
	"github.com/bookdist/backend/internal/domain/shared"
)

// In-memory repositories for application service tests. They mirror the
// query semantics of the persistence layer closely enough that the
// stateful receive/reserve/allocate/reverse flows can run end to end
// without a database.

// MemoryBatchRepo is an in-memory inventory.BatchRepository
type MemoryBatchRepo struct {
	Batches map[uuid.UUID]*inventory.Batch
}

// NewMemoryBatchRepo creates an empty batch repository
func NewMemoryBatchRepo() *MemoryBatchRepo {
	return &MemoryBatchRepo{Batches: make(map[uuid.UUID]*inventory.Batch)}
}

// Backdate shifts a batch's creation time so FIFO ordering in tests does
// not depend on sub-millisecond timestamp differences.
func (r *MemoryBatchRepo) Backdate(id uuid.UUID, age time.Duration) {
	r.Batches[id].CreatedAt = time.Now().Add(-age)
}

func (r *MemoryBatchRepo) Save(_ context.Context, batch *inventory.Batch) error {
	copied := *batch
	r.Batches[batch.ID] = &copied
	return nil
}

func (r *MemoryBatchRepo) Update(_ context.Context, batch *inventory.Batch) error {
	if _, ok := r.Batches[batch.ID]; !ok {
		return shared.ErrNotFound
	}
	copied := *batch
	r.Batches[batch.ID] = &copied
	return nil
}

func (r *MemoryBatchRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Batch, error) {
	batch, ok := r.Batches[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *batch
	return &copied, nil
}

func (r *MemoryBatchRepo) findWhere(match func(*inventory.Batch) bool) []*inventory.Batch {
	var result []*inventory.Batch
	for _, batch := range r.Batches {
		if match(batch) {
			copied := *batch
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID.String() < result[j].ID.String()
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func (r *MemoryBatchRepo) FindByBook(_ context.Context, bookID uuid.UUID) ([]*inventory.Batch, error) {
	return r.findWhere(func(b *inventory.Batch) bool { return b.BookID == bookID }), nil
}

func (r *MemoryBatchRepo) FindByBookForUpdate(ctx context.Context, bookID uuid.UUID) ([]*inventory.Batch, error) {
	return r.FindByBook(ctx, bookID)
}

func (r *MemoryBatchRepo) FindBySourceRefForUpdate(_ context.Context, sourceRef string) ([]*inventory.Batch, error) {
	return r.findWhere(func(b *inventory.Batch) bool { return b.SourceRef == sourceRef }), nil
}

func (r *MemoryBatchRepo) FindByBookAndSourceRefForUpdate(_ context.Context, bookID uuid.UUID, sourceRef string) ([]*inventory.Batch, error) {
	return r.findWhere(func(b *inventory.Batch) bool {
		return b.BookID == bookID && b.SourceRef == sourceRef
	}), nil
}

func (r *MemoryBatchRepo) ExistsBySourceRef(_ context.Context, sourceRef string) (bool, error) {
	for _, batch := range r.Batches {
		if batch.SourceRef == sourceRef {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryBatchRepo) SumAvailableByBook(_ context.Context, bookID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, batch := range r.Batches {
		if batch.BookID == bookID {
			sum = sum.Add(batch.AvailableQuantity)
		}
	}
	return sum, nil
}

func (r *MemoryBatchRepo) FindAll(_ context.Context, _ shared.Filter) ([]*inventory.Batch, error) {
	return r.findWhere(func(*inventory.Batch) bool { return true }), nil
}

func (r *MemoryBatchRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.Batches)), nil
}

// MemoryTxnRepo is an in-memory inventory.StockTransactionRepository
type MemoryTxnRepo struct {
	Entries []*inventory.StockTransaction
}

// NewMemoryTxnRepo creates an empty movement log repository
func NewMemoryTxnRepo() *MemoryTxnRepo {
	return &MemoryTxnRepo{}
}

func (r *MemoryTxnRepo) Save(_ context.Context, txn *inventory.StockTransaction) error {
	copied := *txn
	r.Entries = append(r.Entries, &copied)
	return nil
}

func (r *MemoryTxnRepo) FindByBook(_ context.Context, bookID uuid.UUID, _ shared.Filter) ([]*inventory.StockTransaction, error) {
	var result []*inventory.StockTransaction
	for _, txn := range r.Entries {
		if txn.BookID == bookID {
			copied := *txn
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *MemoryTxnRepo) FindByRef(_ context.Context, refType, refID string) ([]*inventory.StockTransaction, error) {
	var result []*inventory.StockTransaction
	for _, txn := range r.Entries {
		if txn.RefType == refType && txn.RefID == refID {
			copied := *txn
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *MemoryTxnRepo) ExistsByRef(_ context.Context, txnType inventory.TransactionType, refType, refID string) (bool, error) {
	for _, txn := range r.Entries {
		if txn.Type == txnType && txn.RefType == refType && txn.RefID == refID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryTxnRepo) ExistsByRefAndBook(_ context.Context, txnType inventory.TransactionType, refType, refID string, bookID uuid.UUID) (bool, error) {
	for _, txn := range r.Entries {
		if txn.Type == txnType && txn.RefType == refType && txn.RefID == refID && txn.BookID == bookID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryTxnRepo) SumReservedByBook(_ context.Context, bookID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, txn := range r.Entries {
		if txn.BookID != bookID {
			continue
		}
		switch txn.Type {
		case inventory.TransactionTypeReserve:
			sum = sum.Add(txn.Quantity)
		case inventory.TransactionTypeUnreserve:
			sum = sum.Sub(txn.Quantity)
		}
	}
	return sum, nil
}

// MemoryAllocationRepo is an in-memory inventory.AllocationRepository
type MemoryAllocationRepo struct {
	Allocations map[uuid.UUID]*inventory.Allocation
}

// NewMemoryAllocationRepo creates an empty allocation repository
func NewMemoryAllocationRepo() *MemoryAllocationRepo {
	return &MemoryAllocationRepo{Allocations: make(map[uuid.UUID]*inventory.Allocation)}
}

func (r *MemoryAllocationRepo) Save(_ context.Context, allocation *inventory.Allocation) error {
	copied := *allocation
	r.Allocations[allocation.ID] = &copied
	return nil
}

func (r *MemoryAllocationRepo) Update(_ context.Context, allocation *inventory.Allocation) error {
	if _, ok := r.Allocations[allocation.ID]; !ok {
		return shared.ErrNotFound
	}
	copied := *allocation
	r.Allocations[allocation.ID] = &copied
	return nil
}

func (r *MemoryAllocationRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Allocation, error) {
	allocation, ok := r.Allocations[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *allocation
	return &copied, nil
}

func (r *MemoryAllocationRepo) FindByRequesterRef(_ context.Context, requesterRef string) ([]*inventory.Allocation, error) {
	var result []*inventory.Allocation
	for _, allocation := range r.Allocations {
		if allocation.RequesterRef == requesterRef {
			copied := *allocation
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *MemoryAllocationRepo) FindByRequesterAndBook(_ context.Context, requesterRef string, bookID uuid.UUID) ([]*inventory.Allocation, error) {
	var result []*inventory.Allocation
	for _, allocation := range r.Allocations {
		if allocation.RequesterRef == requesterRef && allocation.BookID == bookID {
			copied := *allocation
			result = append(result, &copied)
		}
	}
	return result, nil
}

// MemoryOrderRepo is an in-memory procurement.PurchaseOrderRepository
type MemoryOrderRepo struct {
	Orders map[uuid.UUID]*procurement.PurchaseOrder
}

// NewMemoryOrderRepo creates an empty order repository
func NewMemoryOrderRepo() *MemoryOrderRepo {
	return &MemoryOrderRepo{Orders: make(map[uuid.UUID]*procurement.PurchaseOrder)}
}

func (r *MemoryOrderRepo) Save(_ context.Context, order *procurement.PurchaseOrder) error {
	r.Orders[order.ID] = order
	return nil
}

func (r *MemoryOrderRepo) Update(_ context.Context, order *procurement.PurchaseOrder) error {
	if _, ok := r.Orders[order.ID]; !ok {
		return shared.ErrNotFound
	}
	r.Orders[order.ID] = order
	return nil
}

func (r *MemoryOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	order, ok := r.Orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

func (r *MemoryOrderRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	return r.FindByID(ctx, id)
}

func (r *MemoryOrderRepo) FindByOrderNumber(_ context.Context, orderNumber string) (*procurement.PurchaseOrder, error) {
	for _, order := range r.Orders {
		if order.OrderNumber == orderNumber {
			return order, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *MemoryOrderRepo) FindBySupplier(_ context.Context, supplierID uuid.UUID, _ shared.Filter) ([]*procurement.PurchaseOrder, error) {
	var result []*procurement.PurchaseOrder
	for _, order := range r.Orders {
		if order.SupplierID == supplierID {
			result = append(result, order)
		}
	}
	return result, nil
}

func (r *MemoryOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]*procurement.PurchaseOrder, error) {
	var result []*procurement.PurchaseOrder
	for _, order := range r.Orders {
		result = append(result, order)
	}
	return result, nil
}

func (r *MemoryOrderRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.Orders)), nil
}

// MemoryRequirementRepo is an in-memory procurement.RequirementRepository
type MemoryRequirementRepo struct {
	Requirements map[uuid.UUID]*procurement.Requirement
}

// NewMemoryRequirementRepo creates an empty requirement repository
func NewMemoryRequirementRepo() *MemoryRequirementRepo {
	return &MemoryRequirementRepo{Requirements: make(map[uuid.UUID]*procurement.Requirement)}
}

func (r *MemoryRequirementRepo) Save(_ context.Context, requirement *procurement.Requirement) error {
	r.Requirements[requirement.ID] = requirement
	return nil
}

func (r *MemoryRequirementRepo) Update(_ context.Context, requirement *procurement.Requirement) error {
	if _, ok := r.Requirements[requirement.ID]; !ok {
		return shared.ErrNotFound
	}
	r.Requirements[requirement.ID] = requirement
	return nil
}

func (r *MemoryRequirementRepo) FindByID(_ context.Context, id uuid.UUID) (*procurement.Requirement, error) {
	requirement, ok := r.Requirements[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return requirement, nil
}

func (r *MemoryRequirementRepo) FindBySchool(_ context.Context, schoolID uuid.UUID, _ shared.Filter) ([]*procurement.Requirement, error) {
	var result []*procurement.Requirement
	for _, requirement := range r.Requirements {
		if requirement.SchoolID == schoolID {
			result = append(result, requirement)
		}
	}
	return result, nil
}

func (r *MemoryRequirementRepo) FindOpenByBooks(_ context.Context, bookIDs []uuid.UUID) ([]*procurement.Requirement, error) {
	wanted := make(map[uuid.UUID]bool, len(bookIDs))
	for _, id := range bookIDs {
		wanted[id] = true
	}
	var result []*procurement.Requirement
	for _, requirement := range r.Requirements {
		if requirement.Status == procurement.RequirementStatusOpen && wanted[requirement.BookID] {
			result = append(result, requirement)
		}
	}
	return result, nil
}

func (r *MemoryRequirementRepo) FindByOrder(_ context.Context, orderID uuid.UUID) ([]*procurement.Requirement, error) {
	var result []*procurement.Requirement
	for _, requirement := range r.Requirements {
		if requirement.OrderID != nil && *requirement.OrderID == orderID {
			result = append(result, requirement)
		}
	}
	return result, nil
}

func (r *MemoryRequirementRepo) SummarizeOpen(_ context.Context) ([]procurement.RequirementSummary, error) {
	byBook := make(map[uuid.UUID]*procurement.RequirementSummary)
	for _, requirement := range r.Requirements {
		if requirement.Status != procurement.RequirementStatusOpen {
			continue
		}
		summary, ok := byBook[requirement.BookID]
		if !ok {
			summary = &procurement.RequirementSummary{BookID: requirement.BookID, TotalQuantity: decimal.Zero}
			byBook[requirement.BookID] = summary
		}
		summary.TotalQuantity = summary.TotalQuantity.Add(requirement.Quantity)
		summary.SchoolCount++
	}
	var result []procurement.RequirementSummary
	for _, summary := range byBook {
		result = append(result, *summary)
	}
	return result, nil
}

// MemoryPostingRepo is an in-memory finance.LedgerPostingRepository
type MemoryPostingRepo struct {
	Postings map[string]*finance.LedgerPosting
}

// NewMemoryPostingRepo creates an empty posting repository
func NewMemoryPostingRepo() *MemoryPostingRepo {
	return &MemoryPostingRepo{Postings: make(map[string]*finance.LedgerPosting)}
}

func postingKey(partyType finance.PartyType, partyID uuid.UUID, refType, refID string) string {
	return string(partyType) + "/" + partyID.String() + "/" + refType + "/" + refID
}

// Save keeps the first posting written for a key, matching the idempotent
// upsert behavior of the persistence layer.
func (r *MemoryPostingRepo) Save(_ context.Context, posting *finance.LedgerPosting) error {
	key := postingKey(posting.PartyType, posting.PartyID, posting.RefType, posting.RefID)
	if _, ok := r.Postings[key]; ok {
		return nil
	}
	copied := *posting
	r.Postings[key] = &copied
	return nil
}

func (r *MemoryPostingRepo) DeleteByKey(_ context.Context, partyType finance.PartyType, partyID uuid.UUID, refType, refID string) error {
	delete(r.Postings, postingKey(partyType, partyID, refType, refID))
	return nil
}

func (r *MemoryPostingRepo) FindByKey(_ context.Context, partyType finance.PartyType, partyID uuid.UUID, refType, refID string) (*finance.LedgerPosting, error) {
	posting, ok := r.Postings[postingKey(partyType, partyID, refType, refID)]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *posting
	return &copied, nil
}

func (r *MemoryPostingRepo) ExistsByRef(_ context.Context, refType, refID string) (bool, error) {
	for _, posting := range r.Postings {
		if posting.RefType == refType && posting.RefID == refID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryPostingRepo) FindByParty(_ context.Context, partyType finance.PartyType, partyID uuid.UUID, _ shared.Filter) ([]*finance.LedgerPosting, error) {
	var result []*finance.LedgerPosting
	for _, posting := range r.Postings {
		if posting.PartyType == partyType && posting.PartyID == partyID {
			copied := *posting
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *MemoryPostingRepo) BalanceByParty(_ context.Context, partyType finance.PartyType, partyID uuid.UUID) (decimal.Decimal, error) {
	balance := decimal.Zero
	for _, posting := range r.Postings {
		if posting.PartyType == partyType && posting.PartyID == partyID {
			balance = balance.Add(posting.SignedAmount())
		}
	}
	return balance, nil
}

// Interface checks
var (
	_ inventory.BatchRepository            = (*MemoryBatchRepo)(nil)
	_ inventory.StockTransactionRepository = (*MemoryTxnRepo)(nil)
	_ inventory.AllocationRepository       = (*MemoryAllocationRepo)(nil)
	_ procurement.PurchaseOrderRepository  = (*MemoryOrderRepo)(nil)
	_ procurement.RequirementRepository    = (*MemoryRequirementRepo)(nil)
	_ finance.LedgerPostingRepository      = (*MemoryPostingRepo)(nil)
)
