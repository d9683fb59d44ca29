package procurement

import (
	"time"

	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequirementStatus tracks what happened to a school's book request
type RequirementStatus string

const (
	RequirementStatusOpen    RequirementStatus = "OPEN"
	RequirementStatusOrdered RequirementStatus = "ORDERED"
	RequirementStatusClosed  RequirementStatus = "CLOSED"
)

// Requirement is a school's request for a quantity of one book.
// Open requirements are aggregated per book when building purchase orders.
type Requirement struct {
	shared.BaseEntity
	SchoolID uuid.UUID         `gorm:"type:uuid;not null;index:idx_requirement_school"`
	BookID   uuid.UUID         `gorm:"type:uuid;not null;index:idx_requirement_book"`
	Quantity decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Status   RequirementStatus `gorm:"type:varchar(20);not null;index:idx_requirement_status"`
	OrderID  *uuid.UUID        `gorm:"type:uuid;index:idx_requirement_order"` // Set once the requirement is covered by an order
	Note     string            `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Requirement) TableName() string {
	return "book_requirements"
}

// NewRequirement creates an open requirement
func NewRequirement(schoolID, bookID uuid.UUID, quantity decimal.Decimal, note string) (*Requirement, error) {
	if schoolID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SCHOOL", "School ID cannot be empty")
	}
	if bookID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BOOK", "Book ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Requirement quantity must be positive")
	}

	return &Requirement{
		BaseEntity: shared.NewBaseEntity(),
		SchoolID:   schoolID,
		BookID:     bookID,
		Quantity:   quantity,
		Status:     RequirementStatusOpen,
		Note:       note,
	}, nil
}

// AttachToOrder marks the requirement as covered by a purchase order
func (r *Requirement) AttachToOrder(orderID uuid.UUID) error {
	if r.Status != RequirementStatusOpen {
		return shared.ErrInvalidState
	}
	if orderID == uuid.Nil {
		return shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}

	r.Status = RequirementStatusOrdered
	r.OrderID = &orderID
	r.UpdatedAt = time.Now()
	return nil
}

// Reopen detaches the requirement from a cancelled order
func (r *Requirement) Reopen() error {
	if r.Status != RequirementStatusOrdered {
		return shared.ErrInvalidState
	}

	r.Status = RequirementStatusOpen
	r.OrderID = nil
	r.UpdatedAt = time.Now()
	return nil
}

// Close marks the requirement as fulfilled
func (r *Requirement) Close() error {
	if r.Status == RequirementStatusClosed {
		return nil
	}

	r.Status = RequirementStatusClosed
	r.UpdatedAt = time.Now()
	return nil
}

// RequirementSummary is the aggregated open demand for one book
type RequirementSummary struct {
	BookID        uuid.UUID       `json:"book_id"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	SchoolCount   int             `json:"school_count"`
}
