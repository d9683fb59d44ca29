package handler

import (
	procurementapp "github.com/bookdist/backend/internal/application/procurement"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler handles purchase order API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *procurementapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *procurementapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create creates a new purchase order in draft state
func (h *OrderHandler) Create(c *gin.Context) {
	var req procurementapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// MarkSent transitions a draft order to sent
func (h *OrderHandler) MarkSent(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.MarkSent(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// ReceiveGoodsBody carries a goods receipt; the order comes from the path
type ReceiveGoodsBody struct {
	ReceiptRef string                              `json:"receipt_ref" binding:"required"`
	Lines      []procurementapp.ReceiptLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ReceiveGoods records a goods receipt against an order
func (h *OrderHandler) ReceiveGoods(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var body ReceiveGoodsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.ReceiveGoods(c.Request.Context(), procurementapp.ReceiveGoodsRequest{
		OrderID:    orderID,
		ReceiptRef: body.ReceiptRef,
		Lines:      body.Lines,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// UndoReceiptRequest identifies a goods receipt to roll back
type UndoReceiptRequest struct {
	ReceiptRef string `json:"receipt_ref" binding:"required"`
}

// UndoReceipt rolls back a goods receipt whose stock is still untouched
func (h *OrderHandler) UndoReceipt(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req UndoReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.UndoReceipt(c.Request.Context(), orderID, req.ReceiptRef)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Cancel cancels an order that has not been fully received
func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Get retrieves an order with its lines and derived status
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// List returns a paginated list of orders
func (h *OrderHandler) List(c *gin.Context) {
	filter := bindListFilter(c)

	page, err := h.orderService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
