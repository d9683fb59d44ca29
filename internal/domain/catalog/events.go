package catalog

import (
	"github.com/bookdist/backend/internal/domain/shared"
)

// Event types for the catalog domain
const (
	EventTypeBookCreated = "catalog.book_created"
)

// BookCreatedEvent is published when a book is added to the catalog
type BookCreatedEvent struct {
	shared.BaseDomainEvent
	ISBN  string `json:"isbn"`
	Title string `json:"title"`
}

// NewBookCreatedEvent creates a book created event
func NewBookCreatedEvent(book *Book) *BookCreatedEvent {
	return &BookCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBookCreated, "Book", book.ID),
		ISBN:            book.ISBN,
		Title:           book.Title,
	}
}
