package finance

import (
	"time"

	"github.com/bookdist/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PostingResponse is the API representation of a ledger posting
type PostingResponse struct {
	ID        uuid.UUID       `json:"id"`
	PartyType string          `json:"party_type"`
	PartyID   uuid.UUID       `json:"party_id"`
	RefType   string          `json:"ref_type"`
	RefID     string          `json:"ref_id"`
	Direction string          `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
	Memo      string          `json:"memo,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToPostingResponse converts a ledger posting to its API representation
func ToPostingResponse(posting *finance.LedgerPosting) PostingResponse {
	return PostingResponse{
		ID:        posting.ID,
		PartyType: string(posting.PartyType),
		PartyID:   posting.PartyID,
		RefType:   posting.RefType,
		RefID:     posting.RefID,
		Direction: string(posting.Direction),
		Amount:    posting.Amount,
		Memo:      posting.Memo,
		CreatedAt: posting.CreatedAt,
	}
}

// BalanceResponse is a party's signed ledger balance. A positive balance
// means the party owes us, a negative one means we owe the party.
type BalanceResponse struct {
	PartyType string          `json:"party_type"`
	PartyID   uuid.UUID       `json:"party_id"`
	Balance   decimal.Decimal `json:"balance"`
}
