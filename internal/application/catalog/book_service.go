package catalog

import (
	"context"
	"errors"

	"github.com/bookdist/backend/internal/domain/catalog"
	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookService manages the catalog of titles referenced by requirements,
// orders and stock batches.
type BookService struct {
	bookRepo       catalog.BookRepository
	eventPublisher shared.EventPublisher
}

// NewBookService creates a new BookService
func NewBookService(bookRepo catalog.BookRepository) *BookService {
	return &BookService{
		bookRepo: bookRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *BookService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *BookService) publishDomainEvents(ctx context.Context, book *catalog.Book) {
	if s.eventPublisher == nil {
		return
	}
	events := book.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	book.ClearDomainEvents()
}

// Create registers a new book. The ISBN must not already be in the catalog.
func (s *BookService) Create(ctx context.Context, req CreateBookRequest) (*BookResponse, error) {
	existing, err := s.bookRepo.FindByISBN(ctx, req.ISBN)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Book with this ISBN already exists")
	}

	book, err := catalog.NewBook(req.ISBN, req.Title, req.Publisher, req.ListPrice)
	if err != nil {
		return nil, err
	}
	if req.Edition != "" {
		if err := book.Update(req.Title, req.Publisher, req.Edition); err != nil {
			return nil, err
		}
	}

	if err := s.bookRepo.Save(ctx, book); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, book)
	response := ToBookResponse(book)
	return &response, nil
}

// Update updates a book's basic information
func (s *BookService) Update(ctx context.Context, bookID uuid.UUID, req UpdateBookRequest) (*BookResponse, error) {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if err := book.Update(req.Title, req.Publisher, req.Edition); err != nil {
		return nil, err
	}
	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	response := ToBookResponse(book)
	return &response, nil
}

// SetListPrice updates a book's cover price
func (s *BookService) SetListPrice(ctx context.Context, bookID uuid.UUID, price decimal.Decimal) (*BookResponse, error) {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if err := book.SetListPrice(price); err != nil {
		return nil, err
	}
	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	response := ToBookResponse(book)
	return &response, nil
}

// Discontinue marks a book as no longer orderable
func (s *BookService) Discontinue(ctx context.Context, bookID uuid.UUID) (*BookResponse, error) {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if err := book.Discontinue(); err != nil {
		return nil, err
	}
	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}

	response := ToBookResponse(book)
	return &response, nil
}

// Get retrieves a book by ID
func (s *BookService) Get(ctx context.Context, bookID uuid.UUID) (*BookResponse, error) {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	response := ToBookResponse(book)
	return &response, nil
}

// GetByISBN retrieves a book by ISBN
func (s *BookService) GetByISBN(ctx context.Context, isbn string) (*BookResponse, error) {
	book, err := s.bookRepo.FindByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	response := ToBookResponse(book)
	return &response, nil
}

// List lists books with pagination
func (s *BookService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[BookResponse], error) {
	if filter.Page <= 0 || filter.PageSize <= 0 {
		defaults := shared.DefaultFilter()
		if filter.Page <= 0 {
			filter.Page = defaults.Page
		}
		if filter.PageSize <= 0 {
			filter.PageSize = defaults.PageSize
		}
	}

	books, err := s.bookRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.bookRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]BookResponse, 0, len(books))
	for _, book := range books {
		responses = append(responses, ToBookResponse(book))
	}
	paginated := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &paginated, nil
}
