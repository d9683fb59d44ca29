package partner

import (
	"time"

	"github.com/bookdist/backend/internal/domain/partner"
	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/bookdist/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountRequest carries a default discount over the API
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

// CreateSupplierRequest carries the data for registering a supplier
type CreateSupplierRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

// UpdateSupplierRequest carries updatable supplier fields
type UpdateSupplierRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

// SupplierResponse is the API representation of a supplier
type SupplierResponse struct {
	ID              uuid.UUID        `json:"id"`
	Code            string           `json:"code"`
	Name            string           `json:"name"`
	Status          string           `json:"status"`
	ContactName     string           `json:"contact_name,omitempty"`
	Phone           string           `json:"phone,omitempty"`
	Email           string           `json:"email,omitempty"`
	Address         string           `json:"address,omitempty"`
	DefaultDiscount DiscountResponse `json:"default_discount"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// DiscountResponse is the API representation of a discount
type DiscountResponse struct {
	Kind  string          `json:"kind"`
	Value decimal.Decimal `json:"value"`
}

// ToDiscountResponse converts a discount value object for the API
func ToDiscountResponse(d valueobject.Discount) DiscountResponse {
	return DiscountResponse{
		Kind:  string(d.Kind),
		Value: d.Value,
	}
}

// ToSupplierResponse converts a supplier entity to its API representation
func ToSupplierResponse(supplier *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:              supplier.ID,
		Code:            supplier.Code,
		Name:            supplier.Name,
		Status:          string(supplier.Status),
		ContactName:     supplier.ContactName,
		Phone:           supplier.Phone,
		Email:           supplier.Email,
		Address:         supplier.Address,
		DefaultDiscount: ToDiscountResponse(supplier.DefaultDiscount),
		CreatedAt:       supplier.CreatedAt,
		UpdatedAt:       supplier.UpdatedAt,
	}
}

// CreateSchoolRequest carries the data for registering a school
type CreateSchoolRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

// UpdateSchoolRequest carries updatable school fields
type UpdateSchoolRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

// SchoolResponse is the API representation of a school
type SchoolResponse struct {
	ID              uuid.UUID        `json:"id"`
	Code            string           `json:"code"`
	Name            string           `json:"name"`
	Status          string           `json:"status"`
	ContactName     string           `json:"contact_name,omitempty"`
	Phone           string           `json:"phone,omitempty"`
	Email           string           `json:"email,omitempty"`
	Address         string           `json:"address,omitempty"`
	DefaultDiscount DiscountResponse `json:"default_discount"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ToSchoolResponse converts a school entity to its API representation
func ToSchoolResponse(school *partner.School) SchoolResponse {
	return SchoolResponse{
		ID:              school.ID,
		Code:            school.Code,
		Name:            school.Name,
		Status:          string(school.Status),
		ContactName:     school.ContactName,
		Phone:           school.Phone,
		Email:           school.Email,
		Address:         school.Address,
		DefaultDiscount: ToDiscountResponse(school.DefaultDiscount),
		CreatedAt:       school.CreatedAt,
		UpdatedAt:       school.UpdatedAt,
	}
}
