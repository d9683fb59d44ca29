package procurement

import (
	"context"

	"github.com/bookdist/backend/internal/domain/catalog"
	"github.com/bookdist/backend/internal/domain/partner"
	"github.com/bookdist/backend/internal/domain/procurement"
	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RequirementService manages the intake of school book requirements and
// the aggregated demand view used when building purchase orders.
type RequirementService struct {
	requirementRepo procurement.RequirementRepository
	schoolRepo      partner.SchoolRepository
	bookRepo        catalog.BookRepository
}

// NewRequirementService creates a new RequirementService
func NewRequirementService(
	requirementRepo procurement.RequirementRepository,
	schoolRepo partner.SchoolRepository,
	bookRepo catalog.BookRepository,
) *RequirementService {
	return &RequirementService{
		requirementRepo: requirementRepo,
		schoolRepo:      schoolRepo,
		bookRepo:        bookRepo,
	}
}

// Submit records a school's request for a book
func (s *RequirementService) Submit(ctx context.Context, req SubmitRequirementRequest) (*RequirementResponse, error) {
	school, err := s.schoolRepo.FindByID(ctx, req.SchoolID)
	if err != nil {
		return nil, err
	}
	if !school.IsActive() {
		return nil, shared.NewDomainError("SCHOOL_INACTIVE", "Cannot accept requirements from an inactive school")
	}
	book, err := s.bookRepo.FindByID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if !book.IsActive() {
		return nil, shared.NewDomainError("BOOK_DISCONTINUED", "Cannot accept requirements for a discontinued book")
	}

	requirement, err := procurement.NewRequirement(req.SchoolID, req.BookID, req.Quantity, req.Note)
	if err != nil {
		return nil, err
	}
	if err := s.requirementRepo.Save(ctx, requirement); err != nil {
		return nil, err
	}

	response := ToRequirementResponse(requirement)
	return &response, nil
}

// BySchool lists a school's requirements
func (s *RequirementService) BySchool(ctx context.Context, schoolID uuid.UUID, filter shared.Filter) ([]RequirementResponse, error) {
	requirements, err := s.requirementRepo.FindBySchool(ctx, schoolID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]RequirementResponse, 0, len(requirements))
	for _, requirement := range requirements {
		responses = append(responses, ToRequirementResponse(requirement))
	}
	return responses, nil
}

// OpenDemand aggregates open requirements per book, the input for deciding
// what to order next.
func (s *RequirementService) OpenDemand(ctx context.Context) ([]procurement.RequirementSummary, error) {
	return s.requirementRepo.SummarizeOpen(ctx)
}
