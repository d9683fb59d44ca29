package catalog

import (
	"context"

	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BookRepository defines the interface for book persistence
type BookRepository interface {
	// Save persists a new book
	Save(ctx context.Context, book *Book) error

	// Update persists book changes
	Update(ctx context.Context, book *Book) error

	// FindByID finds a book by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Book, error)

	// FindByISBN finds a book by its ISBN
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// FindByIDs finds multiple books by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Book, error)

	// FindAll lists books with pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]*Book, error)

	// Count returns the number of books matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
