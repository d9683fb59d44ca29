package partner

import (
	"context"
	"errors"

	"github.com/bookdist/backend/internal/domain/partner"
	"github.com/bookdist/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SchoolService manages the schools books are distributed to
type SchoolService struct {
	schoolRepo partner.SchoolRepository
}

// NewSchoolService creates a new SchoolService
func NewSchoolService(schoolRepo partner.SchoolRepository) *SchoolService {
	return &SchoolService{schoolRepo: schoolRepo}
}

// Create registers a new school. The code must be unique.
func (s *SchoolService) Create(ctx context.Context, req CreateSchoolRequest) (*SchoolResponse, error) {
	existing, err := s.schoolRepo.FindByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "School with this code already exists")
	}

	school, err := partner.NewSchool(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if req.ContactName != "" || req.Phone != "" || req.Email != "" || req.Address != "" {
		if err := school.SetContact(req.ContactName, req.Phone, req.Email, req.Address); err != nil {
			return nil, err
		}
	}

	if err := s.schoolRepo.Save(ctx, school); err != nil {
		return nil, err
	}

	response := ToSchoolResponse(school)
	return &response, nil
}

// Update updates a school's basic and contact information
func (s *SchoolService) Update(ctx context.Context, schoolID uuid.UUID, req UpdateSchoolRequest) (*SchoolResponse, error) {
	school, err := s.schoolRepo.FindByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if err := school.Update(req.Name); err != nil {
		return nil, err
	}
	if err := school.SetContact(req.ContactName, req.Phone, req.Email, req.Address); err != nil {
		return nil, err
	}
	if err := s.schoolRepo.Update(ctx, school); err != nil {
		return nil, err
	}

	response := ToSchoolResponse(school)
	return &response, nil
}

// SetDefaultDiscount sets the discount applied to sales without their own
func (s *SchoolService) SetDefaultDiscount(ctx context.Context, schoolID uuid.UUID, req DiscountRequest) (*SchoolResponse, error) {
	discount, err := req.ToDiscount()
	if err != nil {
		return nil, err
	}

	school, err := s.schoolRepo.FindByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	school.SetDefaultDiscount(discount)
	if err := s.schoolRepo.Update(ctx, school); err != nil {
		return nil, err
	}

	response := ToSchoolResponse(school)
	return &response, nil
}

// Deactivate deactivates a school so no new requirements are accepted for it
func (s *SchoolService) Deactivate(ctx context.Context, schoolID uuid.UUID) (*SchoolResponse, error) {
	school, err := s.schoolRepo.FindByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if err := school.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.schoolRepo.Update(ctx, school); err != nil {
		return nil, err
	}

	response := ToSchoolResponse(school)
	return &response, nil
}

// Get retrieves a school by ID
func (s *SchoolService) Get(ctx context.Context, schoolID uuid.UUID) (*SchoolResponse, error) {
	school, err := s.schoolRepo.FindByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	response := ToSchoolResponse(school)
	return &response, nil
}

// List lists schools with pagination
func (s *SchoolService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[SchoolResponse], error) {
	if filter.Page <= 0 || filter.PageSize <= 0 {
		defaults := shared.DefaultFilter()
		if filter.Page <= 0 {
			filter.Page = defaults.Page
		}
		if filter.PageSize <= 0 {
			filter.PageSize = defaults.PageSize
		}
	}

	schools, err := s.schoolRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.schoolRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]SchoolResponse, 0, len(schools))
	for _, school := range schools {
		responses = append(responses, ToSchoolResponse(school))
	}
	paginated := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &paginated, nil
}
