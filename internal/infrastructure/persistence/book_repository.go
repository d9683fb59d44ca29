package persistence

import (
	"context"
	"errors"

	"github.com/bookdist/backend/internal/domain/catalog"
	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBookRepository implements BookRepository using GORM
type GormBookRepository struct {
	db *gorm.DB
}

// NewGormBookRepository creates a new GormBookRepository
func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

// Save persists a new book
func (r *GormBookRepository) Save(ctx context.Context, book *catalog.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// Update persists book changes
func (r *GormBookRepository) Update(ctx context.Context, book *catalog.Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

// FindByID finds a book by its ID
func (r *GormBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Book, error) {
	var book catalog.Book
	if err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// FindByISBN finds a book by its ISBN
func (r *GormBookRepository) FindByISBN(ctx context.Context, isbn string) (*catalog.Book, error) {
	normalized, err := catalog.NormalizeISBN(isbn)
	if err != nil {
		return nil, err
	}
	var book catalog.Book
	if err := r.db.WithContext(ctx).First(&book, "isbn = ?", normalized).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// FindByIDs finds multiple books by their IDs
func (r *GormBookRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var books []*catalog.Book
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// FindAll lists books with pagination
func (r *GormBookRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*catalog.Book, error) {
	var books []*catalog.Book
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Book{}), filter)
	if err := query.Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// Count returns the number of books matching the filter
func (r *GormBookRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.Book{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormBookRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, BookSortFields, "title")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormBookRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR isbn ILIKE ? OR publisher ILIKE ?", pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "publisher":
			query = query.Where("publisher = ?", value)
		}
	}

	return query
}

// Ensure GormBookRepository implements BookRepository
var _ catalog.BookRepository = (*GormBookRepository)(nil)
