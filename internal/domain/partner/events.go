package partner

import (
	"github.com/bookdist/backend/internal/domain/shared"
)

// Event types for the partner domain
const (
	EventTypeSupplierCreated = "partner.supplier_created"
	EventTypeSchoolCreated   = "partner.school_created"
)

// SupplierCreatedEvent is published when a supplier is created
type SupplierCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewSupplierCreatedEvent creates a supplier created event
func NewSupplierCreatedEvent(supplier *Supplier) *SupplierCreatedEvent {
	return &SupplierCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierCreated, "Supplier", supplier.ID),
		Code:            supplier.Code,
		Name:            supplier.Name,
	}
}

// SchoolCreatedEvent is published when a school is created
type SchoolCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewSchoolCreatedEvent creates a school created event
func NewSchoolCreatedEvent(school *School) *SchoolCreatedEvent {
	return &SchoolCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSchoolCreated, "School", school.ID),
		Code:            school.Code,
		Name:            school.Name,
	}
}
