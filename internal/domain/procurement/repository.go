package procurement

import (
	"context"

	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	// Save persists a new order with its lines
	Save(ctx context.Context, order *PurchaseOrder) error

	// Update persists order changes
	Update(ctx context.Context, order *PurchaseOrder) error

	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByIDForUpdate finds an order and locks its row for the transaction
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByOrderNumber finds an order by its number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*PurchaseOrder, error)

	// FindBySupplier lists a supplier's orders
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]*PurchaseOrder, error)

	// FindAll lists orders with pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]*PurchaseOrder, error)

	// Count returns the number of orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// RequirementRepository defines the interface for requirement persistence
type RequirementRepository interface {
	// Save persists a new requirement
	Save(ctx context.Context, requirement *Requirement) error

	// Update persists requirement changes
	Update(ctx context.Context, requirement *Requirement) error

	// FindByID finds a requirement by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Requirement, error)

	// FindBySchool lists a school's requirements
	FindBySchool(ctx context.Context, schoolID uuid.UUID, filter shared.Filter) ([]*Requirement, error)

	// FindOpenByBooks finds open requirements for the given books
	FindOpenByBooks(ctx context.Context, bookIDs []uuid.UUID) ([]*Requirement, error)

	// FindByOrder lists requirements attached to an order
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*Requirement, error)

	// SummarizeOpen aggregates open demand per book
	SummarizeOpen(ctx context.Context) ([]RequirementSummary, error)
}
