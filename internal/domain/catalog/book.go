package catalog

import (
	"strings"
	"time"

	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BookStatus represents the status of a book in the catalog
type BookStatus string

const (
	BookStatusActive       BookStatus = "active"
	BookStatusDiscontinued BookStatus = "discontinued"
)

// Book represents a title in the catalog.
// It is the aggregate root for catalog operations.
type Book struct {
	shared.BaseAggregateRoot
	ISBN      string          `gorm:"type:varchar(17);not null;uniqueIndex:idx_book_isbn"`
	Title     string          `gorm:"type:varchar(300);not null"`
	Publisher string          `gorm:"type:varchar(200)"`
	Edition   string          `gorm:"type:varchar(50)"`
	ListPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Cover price before discounts
	Status    BookStatus      `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Book) TableName() string {
	return "books"
}

// NewBook creates an active catalog entry
func NewBook(isbn, title, publisher string, listPrice decimal.Decimal) (*Book, error) {
	isbn = normalizeISBN(isbn)
	if err := validateISBN(isbn); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 300 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 300 characters")
	}
	if listPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "List price cannot be negative")
	}

	book := &Book{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ISBN:              isbn,
		Title:             title,
		Publisher:         publisher,
		ListPrice:         listPrice,
		Status:            BookStatusActive,
	}
	book.AddDomainEvent(NewBookCreatedEvent(book))
	return book, nil
}

// Update updates the book's basic information
func (b *Book) Update(title, publisher, edition string) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 300 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 300 characters")
	}

	b.Title = title
	b.Publisher = publisher
	b.Edition = edition
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// SetListPrice updates the book's cover price
func (b *Book) SetListPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "List price cannot be negative")
	}

	b.ListPrice = price
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// Discontinue marks the book as no longer orderable.
// Existing stock can still be allocated.
func (b *Book) Discontinue() error {
	if b.Status == BookStatusDiscontinued {
		return shared.NewDomainError("ALREADY_DISCONTINUED", "Book is already discontinued")
	}

	b.Status = BookStatusDiscontinued
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// IsActive returns true if the book is orderable
func (b *Book) IsActive() bool {
	return b.Status == BookStatusActive
}

// NormalizeISBN maps an ISBN to its stored form and validates it, so lookups
// match regardless of spacing or case in the input.
func NormalizeISBN(isbn string) (string, error) {
	normalized := normalizeISBN(isbn)
	if err := validateISBN(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

func normalizeISBN(isbn string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(isbn), " ", ""))
}

func validateISBN(isbn string) error {
	if isbn == "" {
		return shared.NewDomainError("INVALID_ISBN", "ISBN cannot be empty")
	}
	digits := strings.ReplaceAll(isbn, "-", "")
	if len(digits) != 10 && len(digits) != 13 {
		return shared.NewDomainError("INVALID_ISBN", "ISBN must have 10 or 13 digits")
	}
	for i, r := range digits {
		if r >= '0' && r <= '9' {
			continue
		}
		// ISBN-10 allows X as the final check digit
		if r == 'X' && len(digits) == 10 && i == 9 {
			continue
		}
		return shared.NewDomainError("INVALID_ISBN", "ISBN contains invalid characters")
	}
	return nil
}
