package persistence

import (
	"context"
	"errors"

	"github.com/bookdist/backend/internal/domain/inventory"
	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAllocationRepository implements AllocationRepository using GORM
type GormAllocationRepository struct {
	db *gorm.DB
}

// NewGormAllocationRepository creates a new GormAllocationRepository
func NewGormAllocationRepository(db *gorm.DB) *GormAllocationRepository {
	return &GormAllocationRepository{db: db}
}

// Save persists a new allocation
func (r *GormAllocationRepository) Save(ctx context.Context, allocation *inventory.Allocation) error {
	return r.db.WithContext(ctx).Create(allocation).Error
}

// Update persists allocation changes
func (r *GormAllocationRepository) Update(ctx context.Context, allocation *inventory.Allocation) error {
	return r.db.WithContext(ctx).Save(allocation).Error
}

// FindByID finds an allocation by its ID
func (r *GormAllocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Allocation, error) {
	var allocation inventory.Allocation
	if err := r.db.WithContext(ctx).First(&allocation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &allocation, nil
}

// FindByRequesterRef finds allocations recorded for a requester
func (r *GormAllocationRepository) FindByRequesterRef(ctx context.Context, requesterRef string) ([]*inventory.Allocation, error) {
	var allocations []*inventory.Allocation
	if err := r.db.WithContext(ctx).
		Where("requester_ref = ?", requesterRef).
		Order("created_at ASC, id ASC").
		Find(&allocations).Error; err != nil {
		return nil, err
	}
	return allocations, nil
}

// FindByRequesterAndBook finds a requester's allocations for one book
func (r *GormAllocationRepository) FindByRequesterAndBook(ctx context.Context, requesterRef string, bookID uuid.UUID) ([]*inventory.Allocation, error) {
	var allocations []*inventory.Allocation
	if err := r.db.WithContext(ctx).
		Where("requester_ref = ? AND book_id = ?", requesterRef, bookID).
		Order("created_at ASC, id ASC").
		Find(&allocations).Error; err != nil {
		return nil, err
	}
	return allocations, nil
}

// Ensure GormAllocationRepository implements AllocationRepository
var _ inventory.AllocationRepository = (*GormAllocationRepository)(nil)
