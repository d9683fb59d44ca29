package finance

import (
	"context"

	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerPostingRepository defines the interface for ledger posting persistence
type LedgerPostingRepository interface {
	// Save persists a posting. Saving a posting whose key already exists
	// must leave the existing row untouched and report no error.
	Save(ctx context.Context, posting *LedgerPosting) error

	// DeleteByKey removes the posting for a business event, if present
	DeleteByKey(ctx context.Context, partyType PartyType, partyID uuid.UUID, refType, refID string) error

	// FindByKey finds the posting for a business event
	FindByKey(ctx context.Context, partyType PartyType, partyID uuid.UUID, refType, refID string) (*LedgerPosting, error)

	// ExistsByRef checks whether any party holds a posting for a business
	// event, for callers that know the document but not the party
	ExistsByRef(ctx context.Context, refType, refID string) (bool, error)

	// FindByParty lists a party's postings, newest first
	FindByParty(ctx context.Context, partyType PartyType, partyID uuid.UUID, filter shared.Filter) ([]*LedgerPosting, error)

	// BalanceByParty returns the signed sum of a party's postings
	BalanceByParty(ctx context.Context, partyType PartyType, partyID uuid.UUID) (decimal.Decimal, error)
}
