package partner

import (
	"strings"
	"time"

	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/bookdist/backend/internal/domain/shared/valueobject"
)

// SupplierStatus represents the status of a supplier
type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "active"
	SupplierStatusInactive SupplierStatus = "inactive"
)

// Supplier represents a publisher or wholesaler we order books from.
// It is the aggregate root for supplier-related operations.
type Supplier struct {
	shared.BaseAggregateRoot
	Code            string               `gorm:"type:varchar(50);not null;uniqueIndex:idx_supplier_code"`
	Name            string               `gorm:"type:varchar(200);not null"`
	Status          SupplierStatus       `gorm:"type:varchar(20);not null;default:'active'"`
	ContactName     string               `gorm:"type:varchar(100)"`
	Phone           string               `gorm:"type:varchar(50)"`
	Email           string               `gorm:"type:varchar(200);index"`
	Address         string               `gorm:"type:text"`
	DefaultDiscount valueobject.Discount `gorm:"embedded;embeddedPrefix:discount_"` // Applied when an order carries no discount of its own
	Notes           string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new active supplier
func NewSupplier(code, name string) (*Supplier, error) {
	if err := validatePartnerCode(code); err != nil {
		return nil, err
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	supplier := &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            SupplierStatusActive,
		DefaultDiscount:   valueobject.NoDiscount(),
	}
	supplier.AddDomainEvent(NewSupplierCreatedEvent(supplier))
	return supplier, nil
}

// Update updates the supplier's basic information
func (s *Supplier) Update(name string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}

	s.Name = name
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// SetContact sets the supplier's contact information
func (s *Supplier) SetContact(contactName, phone, email, address string) error {
	if contactName != "" && len(contactName) > 100 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 100 characters")
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	s.ContactName = contactName
	s.Phone = phone
	s.Email = email
	s.Address = address
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// SetDefaultDiscount sets the discount applied to orders without their own
func (s *Supplier) SetDefaultDiscount(discount valueobject.Discount) {
	s.DefaultDiscount = discount
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Deactivate deactivates the supplier
func (s *Supplier) Deactivate() error {
	if s.Status == SupplierStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Supplier is already inactive")
	}

	s.Status = SupplierStatusInactive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Activate activates the supplier
func (s *Supplier) Activate() error {
	if s.Status == SupplierStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Supplier is already active")
	}

	s.Status = SupplierStatusActive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// IsActive returns true if the supplier is active
func (s *Supplier) IsActive() bool {
	return s.Status == SupplierStatusActive
}
