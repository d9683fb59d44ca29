package testutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/bookdist/backend/internal/domain/catalog"
	"github.com/bookdist/backend/internal/domain/partner"
	"github.com/bookdist/backend/internal/domain/shared"
)

// MemorySupplierRepo is an in-memory partner.SupplierRepository
type MemorySupplierRepo struct {
	Suppliers map[uuid.UUID]*partner.Supplier
}

// NewMemorySupplierRepo creates an empty supplier repository
func NewMemorySupplierRepo() *MemorySupplierRepo {
	return &MemorySupplierRepo{Suppliers: make(map[uuid.UUID]*partner.Supplier)}
}

func (r *MemorySupplierRepo) Save(_ context.Context, supplier *partner.Supplier) error {
	r.Suppliers[supplier.ID] = supplier
	return nil
}

func (r *MemorySupplierRepo) Update(_ context.Context, supplier *partner.Supplier) error {
	if _, ok := r.Suppliers[supplier.ID]; !ok {
		return shared.ErrNotFound
	}
	r.Suppliers[supplier.ID] = supplier
	return nil
}

func (r *MemorySupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Supplier, error) {
	supplier, ok := r.Suppliers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return supplier, nil
}

func (r *MemorySupplierRepo) FindByCode(_ context.Context, code string) (*partner.Supplier, error) {
	for _, supplier := range r.Suppliers {
		if supplier.Code == code {
			return supplier, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *MemorySupplierRepo) FindAll(_ context.Context, _ shared.Filter) ([]*partner.Supplier, error) {
	var result []*partner.Supplier
	for _, supplier := range r.Suppliers {
		result = append(result, supplier)
	}
	return result, nil
}

func (r *MemorySupplierRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.Suppliers)), nil
}

// MemorySchoolRepo is an in-memory partner.SchoolRepository
type MemorySchoolRepo struct {
	Schools map[uuid.UUID]*partner.School
}

// NewMemorySchoolRepo creates an empty school repository
func NewMemorySchoolRepo() *MemorySchoolRepo {
	return &MemorySchoolRepo{Schools: make(map[uuid.UUID]*partner.School)}
}

func (r *MemorySchoolRepo) Save(_ context.Context, school *partner.School) error {
	r.Schools[school.ID] = school
	return nil
}

func (r *MemorySchoolRepo) Update(_ context.Context, school *partner.School) error {
	if _, ok := r.Schools[school.ID]; !ok {
		return shared.ErrNotFound
	}
	r.Schools[school.ID] = school
	return nil
}

func (r *MemorySchoolRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.School, error) {
	school, ok := r.Schools[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return school, nil
}

func (r *MemorySchoolRepo) FindByCode(_ context.Context, code string) (*partner.School, error) {
	for _, school := range r.Schools {
		if school.Code == code {
			return school, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *MemorySchoolRepo) FindAll(_ context.Context, _ shared.Filter) ([]*partner.School, error) {
	var result []*partner.School
	for _, school := range r.Schools {
		result = append(result, school)
	}
	return result, nil
}

func (r *MemorySchoolRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.Schools)), nil
}

// MemoryBookRepo is an in-memory catalog.BookRepository
type MemoryBookRepo struct {
	Books map[uuid.UUID]*catalog.Book
}

// NewMemoryBookRepo creates an empty book repository
func NewMemoryBookRepo() *MemoryBookRepo {
	return &MemoryBookRepo{Books: make(map[uuid.UUID]*catalog.Book)}
}

func (r *MemoryBookRepo) Save(_ context.Context, book *catalog.Book) error {
	r.Books[book.ID] = book
	return nil
}

func (r *MemoryBookRepo) Update(_ context.Context, book *catalog.Book) error {
	if _, ok := r.Books[book.ID]; !ok {
		return shared.ErrNotFound
	}
	r.Books[book.ID] = book
	return nil
}

func (r *MemoryBookRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Book, error) {
	book, ok := r.Books[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return book, nil
}

func (r *MemoryBookRepo) FindByISBN(_ context.Context, isbn string) (*catalog.Book, error) {
	for _, book := range r.Books {
		if book.ISBN == isbn {
			return book, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *MemoryBookRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*catalog.Book, error) {
	var result []*catalog.Book
	for _, id := range ids {
		if book, ok := r.Books[id]; ok {
			result = append(result, book)
		}
	}
	return result, nil
}

func (r *MemoryBookRepo) FindAll(_ context.Context, _ shared.Filter) ([]*catalog.Book, error) {
	var result []*catalog.Book
	for _, book := range r.Books {
		result = append(result, book)
	}
	return result, nil
}

func (r *MemoryBookRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.Books)), nil
}

// Interface checks
var (
	_ partner.SupplierRepository = (*MemorySupplierRepo)(nil)
	_ partner.SchoolRepository   = (*MemorySchoolRepo)(nil)
	_ catalog.BookRepository     = (*MemoryBookRepo)(nil)
)
