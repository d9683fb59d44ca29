package handler

import (
	inventoryapp "github.com/bookdist/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StockHandler handles stock ledger API endpoints
type StockHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *inventoryapp.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// Receive books new stock into a fresh batch
func (h *StockHandler) Receive(c *gin.Context) {
	var req inventoryapp.ReceiveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	batch, err := h.stockService.Receive(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, batch)
}

// Reserve earmarks free stock for a pending order
func (h *StockHandler) Reserve(c *gin.Context) {
	var req inventoryapp.ReserveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.stockService.Reserve(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Unreserve releases a previous reservation
func (h *StockHandler) Unreserve(c *gin.Context) {
	var req inventoryapp.ReserveStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.stockService.Unreserve(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Allocate issues stock to a requester, oldest batches first
func (h *StockHandler) Allocate(c *gin.Context) {
	var req inventoryapp.AllocateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	allocation, err := h.stockService.Allocate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, allocation)
}

// ReverseAllocationRequest identifies an allocation to roll back
type ReverseAllocationRequest struct {
	RequesterRef string    `json:"requester_ref" binding:"required"`
	BookID       uuid.UUID `json:"book_id" binding:"required"`
}

// ReverseAllocation returns previously issued stock to its batches
func (h *StockHandler) ReverseAllocation(c *gin.Context) {
	var req ReverseAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.stockService.ReverseAllocation(c.Request.Context(), req.RequesterRef, req.BookID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ReverseReceiptRequest identifies a receipt to roll back
type ReverseReceiptRequest struct {
	SourceRef string `json:"source_ref" binding:"required"`
}

// ReverseReceipt removes untouched batches created by a receipt
func (h *StockHandler) ReverseReceipt(c *gin.Context) {
	var req ReverseReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.stockService.ReverseReceipt(c.Request.Context(), req.SourceRef); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// FreeStock reports available, reserved and free quantities for a book
func (h *StockHandler) FreeStock(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("book_id"))
	if err != nil {
		h.BadRequest(c, "Invalid book ID format")
		return
	}

	snapshot, err := h.stockService.FreeStock(c.Request.Context(), bookID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, snapshot)
}

// Batches lists a book's batches, oldest first
func (h *StockHandler) Batches(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("book_id"))
	if err != nil {
		h.BadRequest(c, "Invalid book ID format")
		return
	}

	batches, err := h.stockService.Batches(c.Request.Context(), bookID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batches)
}

// Movements lists a book's stock transactions, newest first
func (h *StockHandler) Movements(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("book_id"))
	if err != nil {
		h.BadRequest(c, "Invalid book ID format")
		return
	}

	filter := bindListFilter(c)

	movements, err := h.stockService.Movements(c.Request.Context(), bookID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, movements)
}
