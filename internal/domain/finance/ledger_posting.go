package finance

import (
	"time"

	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PostingDirection indicates which side of a party's balance a posting moves
type PostingDirection string

const (
	PostingDirectionDebit  PostingDirection = "DEBIT"  // The party owes us more
	PostingDirectionCredit PostingDirection = "CREDIT" // We owe the party more
)

// IsValid checks if the direction is valid
func (d PostingDirection) IsValid() bool {
	return d == PostingDirectionDebit || d == PostingDirectionCredit
}

// PartyType distinguishes whose balance a posting affects
type PartyType string

const (
	PartyTypeSupplier PartyType = "SUPPLIER"
	PartyTypeSchool   PartyType = "SCHOOL"
)

// Posting reference types
const (
	RefTypeGoodsReceipt = "GOODS_RECEIPT"
	RefTypeSalesInvoice = "SALES_INVOICE"
	RefTypePayment      = "PAYMENT"
	RefTypeReversal     = "REVERSAL"
)

// LedgerPosting is one entry on a party's financial ledger. The key
// (PartyType, PartyID, RefType, RefID) identifies the business event the
// posting settles; writing the same key twice must not create a second row.
type LedgerPosting struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key"`
	PartyType PartyType        `gorm:"type:varchar(20);not null;uniqueIndex:idx_posting_key"`
	PartyID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_posting_key"`
	RefType   string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_posting_key"`
	RefID     string           `gorm:"type:varchar(100);not null;uniqueIndex:idx_posting_key"`
	Direction PostingDirection `gorm:"type:varchar(10);not null"`
	Amount    decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Memo      string           `gorm:"type:varchar(255)"`
	CreatedAt time.Time        `gorm:"not null;index:idx_posting_created"`
}

// TableName returns the table name for GORM
func (LedgerPosting) TableName() string {
	return "ledger_postings"
}

// NewLedgerPosting creates a ledger posting
func NewLedgerPosting(partyType PartyType, partyID uuid.UUID, refType, refID string, direction PostingDirection, amount decimal.Decimal, memo string) (*LedgerPosting, error) {
	if partyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTY", "Party ID cannot be empty")
	}
	if partyType != PartyTypeSupplier && partyType != PartyTypeSchool {
		return nil, shared.NewDomainError("INVALID_PARTY", "Invalid party type")
	}
	if refType == "" || refID == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Posting reference cannot be empty")
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Invalid posting direction")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Posting amount must be positive")
	}

	return &LedgerPosting{
		ID:        uuid.New(),
		PartyType: partyType,
		PartyID:   partyID,
		RefType:   refType,
		RefID:     refID,
		Direction: direction,
		Amount:    amount,
		Memo:      memo,
		CreatedAt: time.Now(),
	}, nil
}

// SignedAmount returns the amount with credit postings negated
func (p *LedgerPosting) SignedAmount() decimal.Decimal {
	if p.Direction == PostingDirectionCredit {
		return p.Amount.Neg()
	}
	return p.Amount
}
