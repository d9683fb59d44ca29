package handler

import (
	catalogapp "github.com/bookdist/backend/internal/application/catalog"
	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookHandler handles book catalog API endpoints
type BookHandler struct {
	BaseHandler
	bookService *catalogapp.BookService
}

// NewBookHandler creates a new BookHandler
func NewBookHandler(bookService *catalogapp.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// Create registers a new book title
func (h *BookHandler) Create(c *gin.Context) {
	var req catalogapp.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	book, err := h.bookService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, book)
}

// Update changes a book's title, publisher or edition
func (h *BookHandler) Update(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid book ID format")
		return
	}

	var req catalogapp.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	book, err := h.bookService.Update(c.Request.Context(), bookID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, book)
}

// SetPriceRequest carries a new list price
type SetPriceRequest struct {
	ListPrice decimal.Decimal `json:"list_price" binding:"required"`
}

// SetListPrice changes a book's list price
func (h *BookHandler) SetListPrice(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid book ID format")
		return
	}

	var req SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	book, err := h.bookService.SetListPrice(c.Request.Context(), bookID, req.ListPrice)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, book)
}

// Discontinue takes a book out of the catalog
func (h *BookHandler) Discontinue(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid book ID format")
		return
	}

	book, err := h.bookService.Discontinue(c.Request.Context(), bookID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, book)
}

// Get retrieves a book by ID
func (h *BookHandler) Get(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid book ID format")
		return
	}

	book, err := h.bookService.Get(c.Request.Context(), bookID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, book)
}

// GetByISBN retrieves a book by its ISBN
func (h *BookHandler) GetByISBN(c *gin.Context) {
	isbn := c.Param("isbn")
	if isbn == "" {
		h.BadRequest(c, "ISBN is required")
		return
	}

	book, err := h.bookService.GetByISBN(c.Request.Context(), isbn)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, book)
}

// List lists books with pagination
func (h *BookHandler) List(c *gin.Context) {
	filter := bindListFilter(c)

	page, err := h.bookService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// bindListFilter reads common pagination query parameters into a filter
func bindListFilter(c *gin.Context) shared.Filter {
	filter := shared.DefaultFilter()

	var query struct {
		Page     int    `form:"page"`
		PageSize int    `form:"page_size"`
		OrderBy  string `form:"order_by"`
		OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
		Search   string `form:"search"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		return filter
	}

	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 && query.PageSize <= 100 {
		filter.PageSize = query.PageSize
	}
	if query.OrderBy != "" {
		filter.OrderBy = query.OrderBy
	}
	if query.OrderDir != "" {
		filter.OrderDir = query.OrderDir
	}
	filter.Search = query.Search

	return filter
}
