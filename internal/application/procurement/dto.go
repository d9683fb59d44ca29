package procurement

import (
	"time"

	"github.com/bookdist/backend/internal/domain/procurement"
	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/bookdist/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountRequest carries a discount over the API
type DiscountRequest struct {
	Kind  string          `json:"kind" binding:"omitempty,oneof=NONE PERCENT AMOUNT"`
	Value decimal.Decimal `json:"value"`
}

// ToDiscount converts the request to a discount value object
func (r *DiscountRequest) ToDiscount() (valueobject.Discount, error) {
	if r == nil || r.Kind == "" || r.Kind == string(valueobject.DiscountKindNone) {
		return valueobject.NoDiscount(), nil
	}
	switch valueobject.DiscountKind(r.Kind) {
	case valueobject.DiscountKindPercent:
		return valueobject.NewPercentDiscount(r.Value)
	case valueobject.DiscountKindAmount:
		return valueobject.NewAmountDiscount(r.Value)
	default:
		return valueobject.Discount{}, shared.NewDomainError("INVALID_DISCOUNT", "Invalid discount kind")
	}
}

// OrderLineRequest is one book position on a new order
type OrderLineRequest struct {
	BookID    uuid.UUID        `json:"book_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	Discount  *DiscountRequest `json:"discount,omitempty"`
}

// CreateOrderRequest is the request to create a draft purchase order
type CreateOrderRequest struct {
	SupplierID     uuid.UUID          `json:"supplier_id" binding:"required"`
	OrderNumber    string             `json:"order_number" binding:"required"`
	Discount       *DiscountRequest   `json:"discount,omitempty"`
	Lines          []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
	RequirementIDs []uuid.UUID        `json:"requirement_ids,omitempty"`
}

// ReceiptLineRequest is one book position on a goods receipt
type ReceiptLineRequest struct {
	BookID   uuid.UUID       `json:"book_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// ReceiveGoodsRequest books a delivery against a sent order
type ReceiveGoodsRequest struct {
	OrderID    uuid.UUID            `json:"order_id" binding:"required"`
	ReceiptRef string               `json:"receipt_ref" binding:"required"`
	Lines      []ReceiptLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// OrderLineResponse is the API representation of an order line
type OrderLineResponse struct {
	ID               uuid.UUID       `json:"id"`
	BookID           uuid.UUID       `json:"book_id"`
	OrderedQuantity  decimal.Decimal `json:"ordered_quantity"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	NetAmount        decimal.Decimal `json:"net_amount"`
}

// OrderResponse is the API representation of a purchase order.
// Status is derived from the quantities at response time, never stored.
type OrderResponse struct {
	ID            uuid.UUID               `json:"id"`
	OrderNumber   string                  `json:"order_number"`
	SupplierID    uuid.UUID               `json:"supplier_id"`
	Status        procurement.OrderStatus `json:"status"`
	TotalOrdered  decimal.Decimal         `json:"total_ordered"`
	TotalReceived decimal.Decimal         `json:"total_received"`
	NetAmount     decimal.Decimal         `json:"net_amount"`
	Lines         []OrderLineResponse     `json:"lines"`
	SentAt        *time.Time              `json:"sent_at,omitempty"`
	CancelledAt   *time.Time              `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
}

// ToOrderResponse converts an order to its API representation
func ToOrderResponse(order *procurement.PurchaseOrder) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(order.Lines))
	for i := range order.Lines {
		line := &order.Lines[i]
		lines = append(lines, OrderLineResponse{
			ID:               line.ID,
			BookID:           line.BookID,
			OrderedQuantity:  line.OrderedQuantity,
			ReceivedQuantity: line.ReceivedQuantity,
			UnitPrice:        line.UnitPrice,
			NetAmount:        line.NetAmount(),
		})
	}
	return OrderResponse{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		SupplierID:    order.SupplierID,
		Status:        order.Status(),
		TotalOrdered:  order.TotalOrdered(),
		TotalReceived: order.TotalReceived(),
		NetAmount:     order.NetAmount(),
		Lines:         lines,
		SentAt:        order.SentAt,
		CancelledAt:   order.CancelledAt,
		CreatedAt:     order.CreatedAt,
	}
}

// SubmitRequirementRequest is a school's request for one book
type SubmitRequirementRequest struct {
	SchoolID uuid.UUID       `json:"school_id" binding:"required"`
	BookID   uuid.UUID       `json:"book_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Note     string          `json:"note"`
}

// RequirementResponse is the API representation of a requirement
type RequirementResponse struct {
	ID        uuid.UUID                     `json:"id"`
	SchoolID  uuid.UUID                     `json:"school_id"`
	BookID    uuid.UUID                     `json:"book_id"`
	Quantity  decimal.Decimal               `json:"quantity"`
	Status    procurement.RequirementStatus `json:"status"`
	OrderID   *uuid.UUID                    `json:"order_id,omitempty"`
	Note      string                        `json:"note"`
	CreatedAt time.Time                     `json:"created_at"`
}

// ToRequirementResponse converts a requirement to its API representation
func ToRequirementResponse(req *procurement.Requirement) RequirementResponse {
	return RequirementResponse{
		ID:        req.ID,
		SchoolID:  req.SchoolID,
		BookID:    req.BookID,
		Quantity:  req.Quantity,
		Status:    req.Status,
		OrderID:   req.OrderID,
		Note:      req.Note,
		CreatedAt: req.CreatedAt,
	}
}
