package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/bookdist/backend/internal/domain/partner"
	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSchoolRepository implements SchoolRepository using GORM
type GormSchoolRepository struct {
	db *gorm.DB
}

// NewGormSchoolRepository creates a new GormSchoolRepository
func NewGormSchoolRepository(db *gorm.DB) *GormSchoolRepository {
	return &GormSchoolRepository{db: db}
}

// Save persists a new school
func (r *GormSchoolRepository) Save(ctx context.Context, school *partner.School) error {
	return r.db.WithContext(ctx).Create(school).Error
}

// Update persists school changes
func (r *GormSchoolRepository) Update(ctx context.Context, school *partner.School) error {
	return r.db.WithContext(ctx).Save(school).Error
}

// FindByID finds a school by its ID
func (r *GormSchoolRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.School, error) {
	var school partner.School
	if err := r.db.WithContext(ctx).First(&school, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &school, nil
}

// FindByCode finds a school by its code
func (r *GormSchoolRepository) FindByCode(ctx context.Context, code string) (*partner.School, error) {
	var school partner.School
	if err := r.db.WithContext(ctx).
		First(&school, "code = ?", strings.ToUpper(strings.TrimSpace(code))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &school, nil
}

// FindAll lists schools with pagination
func (r *GormSchoolRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*partner.School, error) {
	var schools []*partner.School
	query := applyPartnerFilter(r.db.WithContext(ctx).Model(&partner.School{}), filter, SchoolSortFields)
	if err := query.Find(&schools).Error; err != nil {
		return nil, err
	}
	return schools, nil
}

// Count returns the number of schools matching the filter
func (r *GormSchoolRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyPartnerFilterWithoutPagination(r.db.WithContext(ctx).Model(&partner.School{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormSchoolRepository implements SchoolRepository
var _ partner.SchoolRepository = (*GormSchoolRepository)(nil)
