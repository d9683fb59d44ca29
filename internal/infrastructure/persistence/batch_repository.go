package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/bookdist/backend/internal/domain/inventory"
	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBatchRepository implements BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// fifoOrder is the canonical batch ordering: oldest first, id as tie-breaker
// so concurrent receipts within the same instant drain deterministically.
const fifoOrder = "created_at ASC, id ASC"

// Save creates a new batch
func (r *GormBatchRepository) Save(ctx context.Context, batch *inventory.Batch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

// Update persists batch changes
func (r *GormBatchRepository) Update(ctx context.Context, batch *inventory.Batch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

// FindByID finds a batch by its ID
func (r *GormBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Batch, error) {
	var batch inventory.Batch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindByBook finds all batches for a book, oldest first
func (r *GormBatchRepository) FindByBook(ctx context.Context, bookID uuid.UUID) ([]*inventory.Batch, error) {
	var batches []*inventory.Batch
	if err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order(fifoOrder).
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindByBookForUpdate finds and locks all batches for a book, oldest first.
// The row locks are held until the surrounding transaction commits, which
// serializes concurrent allocations against the same book.
func (r *GormBatchRepository) FindByBookForUpdate(ctx context.Context, bookID uuid.UUID) ([]*inventory.Batch, error) {
	var batches []*inventory.Batch
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("book_id = ?", bookID).
		Order(fifoOrder).
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindBySourceRefForUpdate finds and locks all batches created by one receipt
func (r *GormBatchRepository) FindBySourceRefForUpdate(ctx context.Context, sourceRef string) ([]*inventory.Batch, error) {
	var batches []*inventory.Batch
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("source_ref = ?", sourceRef).
		Order(fifoOrder).
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindByBookAndSourceRefForUpdate finds and locks a book's batches from one receipt
func (r *GormBatchRepository) FindByBookAndSourceRefForUpdate(ctx context.Context, bookID uuid.UUID, sourceRef string) ([]*inventory.Batch, error) {
	var batches []*inventory.Batch
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("book_id = ? AND source_ref = ?", bookID, sourceRef).
		Order(fifoOrder).
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// ExistsBySourceRef checks whether any batch was created by the given receipt
func (r *GormBatchRepository) ExistsBySourceRef(ctx context.Context, sourceRef string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.Batch{}).
		Where("source_ref = ?", sourceRef).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SumAvailableByBook returns the total available quantity across a book's batches
func (r *GormBatchRepository) SumAvailableByBook(ctx context.Context, bookID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	if err := r.db.WithContext(ctx).
		Model(&inventory.Batch{}).
		Where("book_id = ?", bookID).
		Select("SUM(available_quantity)").
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// FindAll lists batches with pagination
func (r *GormBatchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*inventory.Batch, error) {
	var batches []*inventory.Batch
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.Batch{}), filter)
	if err := query.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// Count returns the number of batches matching the filter
func (r *GormBatchRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.Batch{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormBatchRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, BatchSortFields, "")
	if sortField != "" {
		query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order(fifoOrder)
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormBatchRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("source_ref ILIKE ?", "%"+strings.TrimSpace(filter.Search)+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "book_id":
			query = query.Where("book_id = ?", value)
		case "source_ref":
			query = query.Where("source_ref = ?", value)
		case "has_stock":
			if value == true {
				query = query.Where("available_quantity > 0")
			}
		}
	}

	return query
}

// Ensure GormBatchRepository implements BatchRepository
var _ inventory.BatchRepository = (*GormBatchRepository)(nil)
