package partner

import (
	"context"

	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	// Save persists a new supplier
	Save(ctx context.Context, supplier *Supplier) error

	// Update persists supplier changes
	Update(ctx context.Context, supplier *Supplier) error

	// FindByID finds a supplier by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)

	// FindByCode finds a supplier by its code
	FindByCode(ctx context.Context, code string) (*Supplier, error)

	// FindAll lists suppliers with pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]*Supplier, error)

	// Count returns the number of suppliers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// SchoolRepository defines the interface for school persistence
type SchoolRepository interface {
	// Save persists a new school
	Save(ctx context.Context, school *School) error

	// Update persists school changes
	Update(ctx context.Context, school *School) error

	// FindByID finds a school by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*School, error)

	// FindByCode finds a school by its code
	FindByCode(ctx context.Context, code string) (*School, error)

	// FindAll lists schools with pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]*School, error)

	// Count returns the number of schools matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
