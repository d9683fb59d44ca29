package catalog

import (
	"time"

	"github.com/bookdist/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBookRequest carries the data for registering a new book
type CreateBookRequest struct {
	ISBN      string          `json:"isbn" binding:"required"`
	Title     string          `json:"title" binding:"required"`
	Publisher string          `json:"publisher" binding:"required"`
	Edition   string          `json:"edition"`
	ListPrice decimal.Decimal `json:"list_price" binding:"required"`
}

// UpdateBookRequest carries updatable book fields
type UpdateBookRequest struct {
	Title     string `json:"title" binding:"required"`
	Publisher string `json:"publisher" binding:"required"`
	Edition   string `json:"edition"`
}

// BookResponse is the API representation of a book
type BookResponse struct {
	ID        uuid.UUID       `json:"id"`
	ISBN      string          `json:"isbn"`
	Title     string          `json:"title"`
	Publisher string          `json:"publisher"`
	Edition   string          `json:"edition"`
	ListPrice decimal.Decimal `json:"list_price"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToBookResponse converts a book entity to its API representation
func ToBookResponse(book *catalog.Book) BookResponse {
	return BookResponse{
		ID:        book.ID,
		ISBN:      book.ISBN,
		Title:     book.Title,
		Publisher: book.Publisher,
		Edition:   book.Edition,
		ListPrice: book.ListPrice,
		Status:    string(book.Status),
		CreatedAt: book.CreatedAt,
		UpdatedAt: book.UpdatedAt,
	}
}
