package partner

import (
	"strings"
	"time"

	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/bookdist/backend/internal/domain/shared/valueobject"
)

// SchoolStatus represents the status of a school
type SchoolStatus string

const (
	SchoolStatusActive   SchoolStatus = "active"
	SchoolStatusInactive SchoolStatus = "inactive"
)

// School represents a school we distribute books to.
// It is the aggregate root for school-related operations.
type School struct {
	shared.BaseAggregateRoot
	Code            string               `gorm:"type:varchar(50);not null;uniqueIndex:idx_school_code"`
	Name            string               `gorm:"type:varchar(200);not null"`
	Status          SchoolStatus         `gorm:"type:varchar(20);not null;default:'active'"`
	ContactName     string               `gorm:"type:varchar(100)"`
	Phone           string               `gorm:"type:varchar(50)"`
	Email           string               `gorm:"type:varchar(200);index"`
	Address         string               `gorm:"type:text"`
	DefaultDiscount valueobject.Discount `gorm:"embedded;embeddedPrefix:discount_"` // Applied to sales without their own discount
	Notes           string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (School) TableName() string {
	return "schools"
}

// NewSchool creates a new active school
func NewSchool(code, name string) (*School, error) {
	if err := validatePartnerCode(code); err != nil {
		return nil, err
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	school := &School{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            SchoolStatusActive,
		DefaultDiscount:   valueobject.NoDiscount(),
	}
	school.AddDomainEvent(NewSchoolCreatedEvent(school))
	return school, nil
}

// Update updates the school's basic information
func (s *School) Update(name string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}

	s.Name = name
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// SetContact sets the school's contact information
func (s *School) SetContact(contactName, phone, email, address string) error {
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

// SetDefaultDiscount sets the discount applied to sales without their own
func (s *School) SetDefaultDiscount(discount valueobject.Discount) {
	s.DefaultDiscount = discount
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Deactivate deactivates the school
func (s *School) Deactivate() error {
	if s.Status == SchoolStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "School is already inactive")
	}

	s.Status = SchoolStatusInactive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// IsActive returns true if the school is active
func (s *School) IsActive() bool {
	return s.Status == SchoolStatusActive
}
