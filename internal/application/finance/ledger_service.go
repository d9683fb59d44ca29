package finance

import (
	"context"

	"github.com/bookdist/backend/internal/domain/finance"
	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LedgerService answers read queries over the party ledger. Postings are
// written only by the procurement and distribution flows that own them.
type LedgerService struct {
	postingRepo finance.LedgerPostingRepository
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(postingRepo finance.LedgerPostingRepository) *LedgerService {
	return &LedgerService{postingRepo: postingRepo}
}

func parseParty(partyType string) (finance.PartyType, error) {
	switch finance.PartyType(partyType) {
	case finance.PartyTypeSupplier:
		return finance.PartyTypeSupplier, nil
	case finance.PartyTypeSchool:
		return finance.PartyTypeSchool, nil
	default:
		return "", shared.NewDomainError("INVALID_PARTY", "Party type must be SUPPLIER or SCHOOL")
	}
}

// Postings lists a party's postings, newest first
func (s *LedgerService) Postings(ctx context.Context, partyType string, partyID uuid.UUID, filter shared.Filter) ([]PostingResponse, error) {
	party, err := parseParty(partyType)
	if err != nil {
		return nil, err
	}
	if filter.Page <= 0 || filter.PageSize <= 0 {
		filter = shared.DefaultFilter()
	}

	postings, err := s.postingRepo.FindByParty(ctx, party, partyID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]PostingResponse, 0, len(postings))
	for _, posting := range postings {
		responses = append(responses, ToPostingResponse(posting))
	}
	return responses, nil
}

// Balance returns the signed sum of a party's postings
func (s *LedgerService) Balance(ctx context.Context, partyType string, partyID uuid.UUID) (*BalanceResponse, error) {
	party, err := parseParty(partyType)
	if err != nil {
		return nil, err
	}

	balance, err := s.postingRepo.BalanceByParty(ctx, party, partyID)
	if err != nil {
		return nil, err
	}
	return &BalanceResponse{
		PartyType: string(party),
		PartyID:   partyID,
		Balance:   balance,
	}, nil
}
