package inventory

import (
	"sort"

	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Allocation records the outcome of issuing stock against a request.
// Short quantity is the part of the request that could not be filled.
type Allocation struct {
	shared.BaseEntity
	RequesterRef      string          `gorm:"type:varchar(100);not null;index:idx_allocation_requester"`
	BookID            uuid.UUID       `gorm:"type:uuid;not null;index:idx_allocation_book"`
	RequestedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IssuedQuantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ShortQuantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reversed          bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Allocation) TableName() string {
	return "stock_allocations"
}

// NewAllocation records an allocation outcome
func NewAllocation(requesterRef string, bookID uuid.UUID, requested, issued decimal.Decimal) (*Allocation, error) {
	if requesterRef == "" {
		return nil, shared.NewDomainError("INVALID_REQUESTER", "Requester reference cannot be empty")
	}
	if bookID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BOOK", "Book ID cannot be empty")
	}
	if requested.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Requested quantity must be positive")
	}
	if issued.IsNegative() || issued.GreaterThan(requested) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Issued quantity must be between zero and the requested quantity")
	}

	return &Allocation{
		BaseEntity:        shared.NewBaseEntity(),
		RequesterRef:      requesterRef,
		BookID:            bookID,
		RequestedQuantity: requested,
		IssuedQuantity:    issued,
		ShortQuantity:     requested.Sub(issued),
	}, nil
}

// MarkReversed flags the allocation as undone
func (a *Allocation) MarkReversed() {
	a.Reversed = true
}

// IsFullyIssued returns true if the request was filled completely
func (a *Allocation) IsFullyIssued() bool {
	return a.ShortQuantity.IsZero()
}

// BatchDeduction is one batch's contribution to an allocation plan
type BatchDeduction struct {
	Batch    *Batch
	Quantity decimal.Decimal
}

// AllocationPlan describes which batches an allocation will draw from,
// computed before any batch is mutated.
type AllocationPlan struct {
	Deductions    []BatchDeduction
	IssuedTotal   decimal.Decimal
	ShortQuantity decimal.Decimal
}

// IsEmpty returns true if the plan issues nothing
func (p *AllocationPlan) IsEmpty() bool {
	return p.IssuedTotal.IsZero()
}

// PlanFIFO builds an allocation plan over the given batches, consuming the
// oldest batch first. Ordering ties on CreatedAt break by ID so the plan is
// deterministic. When allowPartial is false the batches must cover the full
// quantity or the plan fails with insufficient stock.
func PlanFIFO(batches []*Batch, quantity decimal.Decimal, allowPartial bool) (*AllocationPlan, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Allocation quantity must be positive")
	}

	ordered := make([]*Batch, len(batches))
	copy(ordered, batches)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].ID.String() < ordered[j].ID.String()
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	plan := &AllocationPlan{IssuedTotal: decimal.Zero}
	remaining := quantity
	for _, batch := range ordered {
		if remaining.IsZero() {
			break
		}
		if !batch.HasStock() {
			continue
		}
		take := decimal.Min(batch.AvailableQuantity, remaining)
		plan.Deductions = append(plan.Deductions, BatchDeduction{Batch: batch, Quantity: take})
		plan.IssuedTotal = plan.IssuedTotal.Add(take)
		remaining = remaining.Sub(take)
	}
	plan.ShortQuantity = remaining

	if !allowPartial && remaining.GreaterThan(decimal.Zero) {
		return nil, shared.ErrInsufficientStock
	}
	return plan, nil
}
