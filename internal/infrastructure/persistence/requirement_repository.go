package persistence

import (
	"context"
	"errors"

	"github.com/bookdist/backend/internal/domain/procurement"
	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRequirementRepository implements RequirementRepository using GORM
type GormRequirementRepository struct {
	db *gorm.DB
}

// NewGormRequirementRepository creates a new GormRequirementRepository
func NewGormRequirementRepository(db *gorm.DB) *GormRequirementRepository {
	return &GormRequirementRepository{db: db}
}

// Save persists a new requirement
func (r *GormRequirementRepository) Save(ctx context.Context, requirement *procurement.Requirement) error {
	return r.db.WithContext(ctx).Create(requirement).Error
}

// Update persists requirement changes
func (r *GormRequirementRepository) Update(ctx context.Context, requirement *procurement.Requirement) error {
	return r.db.WithContext(ctx).Save(requirement).Error
}

// FindByID finds a requirement by its ID
func (r *GormRequirementRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.Requirement, error) {
	var requirement procurement.Requirement
	if err := r.db.WithContext(ctx).First(&requirement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &requirement, nil
}

// FindBySchool lists a school's requirements
func (r *GormRequirementRepository) FindBySchool(ctx context.Context, schoolID uuid.UUID, filter shared.Filter) ([]*procurement.Requirement, error) {
	var requirements []*procurement.Requirement
	query := r.db.WithContext(ctx).
		Model(&procurement.Requirement{}).
		Where("school_id = ?", schoolID)

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "book_id":
			query = query.Where("book_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, RequirementSortFields, "created_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&requirements).Error; err != nil {
		return nil, err
	}
	return requirements, nil
}

// FindOpenByBooks finds open requirements for the given books
func (r *GormRequirementRepository) FindOpenByBooks(ctx context.Context, bookIDs []uuid.UUID) ([]*procurement.Requirement, error) {
	if len(bookIDs) == 0 {
		return nil, nil
	}
	var requirements []*procurement.Requirement
	if err := r.db.WithContext(ctx).
		Where("book_id IN ? AND status = ?", bookIDs, procurement.RequirementStatusOpen).
		Order("created_at ASC, id ASC").
		Find(&requirements).Error; err != nil {
		return nil, err
	}
	return requirements, nil
}

// FindByOrder lists requirements attached to an order
func (r *GormRequirementRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*procurement.Requirement, error) {
	var requirements []*procurement.Requirement
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC, id ASC").
		Find(&requirements).Error; err != nil {
		return nil, err
	}
	return requirements, nil
}

// SummarizeOpen aggregates open demand per book
func (r *GormRequirementRepository) SummarizeOpen(ctx context.Context) ([]procurement.RequirementSummary, error) {
	var summaries []procurement.RequirementSummary
	if err := r.db.WithContext(ctx).
		Model(&procurement.Requirement{}).
		Select("book_id, SUM(quantity) AS total_quantity, COUNT(DISTINCT school_id) AS school_count").
		Where("status = ?", procurement.RequirementStatusOpen).
		Group("book_id").
		Order("book_id ASC").
		Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

// Ensure GormRequirementRepository implements RequirementRepository
var _ procurement.RequirementRepository = (*GormRequirementRepository)(nil)
