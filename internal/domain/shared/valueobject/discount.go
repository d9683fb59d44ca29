package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DiscountKind identifies how a discount value is interpreted
type DiscountKind string

const (
	// DiscountKindNone means no discount applies
	DiscountKindNone DiscountKind = "NONE"
	// DiscountKindPercent is a percentage off the gross amount (0-100)
	DiscountKindPercent DiscountKind = "PERCENT"
	// DiscountKindAmount is a fixed amount off the gross amount
	DiscountKindAmount DiscountKind = "AMOUNT"
)

// IsValid checks if the discount kind is valid
func (k DiscountKind) IsValid() bool {
	switch k {
	case DiscountKindNone, DiscountKindPercent, DiscountKindAmount:
		return true
	}
	return false
}

// String returns the string representation
func (k DiscountKind) String() string {
	return string(k)
}

// Discount is a value object expressing a price reduction as an explicit
// tagged union rather than scattered nullable fields.
// It is immutable - all operations return new values.
type Discount struct {
	Kind  DiscountKind    `gorm:"type:varchar(10);not null;default:'NONE'" json:"kind"`
	Value decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"value"`
}

// NoDiscount returns the zero discount
func NoDiscount() Discount {
	return Discount{Kind: DiscountKindNone, Value: decimal.Zero}
}

// NewPercentDiscount creates a percentage discount (0-100)
func NewPercentDiscount(percent decimal.Decimal) (Discount, error) {
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return Discount{}, fmt.Errorf("percent discount must be between 0 and 100, got %s", percent)
	}
	return Discount{Kind: DiscountKindPercent, Value: percent}, nil
}

// NewAmountDiscount creates a fixed-amount discount
func NewAmountDiscount(amount decimal.Decimal) (Discount, error) {
	if amount.IsNegative() {
		return Discount{}, fmt.Errorf("amount discount cannot be negative, got %s", amount)
	}
	return Discount{Kind: DiscountKindAmount, Value: amount}, nil
}

// IsZero returns true if no discount applies
func (d Discount) IsZero() bool {
	return d.Kind == DiscountKindNone || d.Kind == ""
}

// Apply applies the discount to a gross amount and returns the net amount.
// The result never goes below zero.
func (d Discount) Apply(gross decimal.Decimal) decimal.Decimal {
	var net decimal.Decimal
	switch d.Kind {
	case DiscountKindPercent:
		factor := decimal.NewFromInt(1).Sub(d.Value.Div(decimal.NewFromInt(100)))
		net = gross.Mul(factor).Round(4)
	case DiscountKindAmount:
		net = gross.Sub(d.Value)
	default:
		net = gross
	}
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// Reduction returns the amount taken off the gross amount
func (d Discount) Reduction(gross decimal.Decimal) decimal.Decimal {
	return gross.Sub(d.Apply(gross))
}

// ResolveDiscount resolves the effective discount from a cascade of overrides:
// the line-level discount wins over the order-level discount, which wins over
// the party default. The first non-zero discount in that order applies.
func ResolveDiscount(line, order, partyDefault Discount) Discount {
	if !line.IsZero() {
		return line
	}
	if !order.IsZero() {
		return order
	}
	if !partyDefault.IsZero() {
		return partyDefault
	}
	return NoDiscount()
}
