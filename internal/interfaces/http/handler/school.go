package handler

import (
	partnerapp "github.com/bookdist/backend/internal/application/partner"
	procurementapp "github.com/bookdist/backend/internal/application/procurement"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SchoolHandler handles school API endpoints
type SchoolHandler struct {
	BaseHandler
	schoolService      *partnerapp.SchoolService
	requirementService *procurementapp.RequirementService
}

// NewSchoolHandler creates a new SchoolHandler
func NewSchoolHandler(schoolService *partnerapp.SchoolService, requirementService *procurementapp.RequirementService) *SchoolHandler {
	return &SchoolHandler{
		schoolService:      schoolService,
		requirementService: requirementService,
	}
}

// Create registers a new school
func (h *SchoolHandler) Create(c *gin.Context) {
	var req partnerapp.CreateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	school, err := h.schoolService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, school)
}

// Update changes a school's basic and contact information
func (h *SchoolHandler) Update(c *gin.Context) {
	schoolID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid school ID format")
		return
	}

	var req partnerapp.UpdateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	school, err := h.schoolService.Update(c.Request.Context(), schoolID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, school)
}

// SetDefaultDiscount sets the school's default discount
func (h *SchoolHandler) SetDefaultDiscount(c *gin.Context) {
	schoolID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid school ID format")
		return
	}

	var req partnerapp.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	school, err := h.schoolService.SetDefaultDiscount(c.Request.Context(), schoolID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, school)
}

// Deactivate deactivates a school
func (h *SchoolHandler) Deactivate(c *gin.Context) {
	schoolID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid school ID format")
		return
	}

	school, err := h.schoolService.Deactivate(c.Request.Context(), schoolID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, school)
}

// Get retrieves a school by ID
func (h *SchoolHandler) Get(c *gin.Context) {
	schoolID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid school ID format")
		return
	}

	school, err := h.schoolService.Get(c.Request.Context(), schoolID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, school)
}

// List lists schools with pagination
func (h *SchoolHandler) List(c *gin.Context) {
	filter := bindListFilter(c)

	page, err := h.schoolService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Requirements lists a school's book requirements
func (h *SchoolHandler) Requirements(c *gin.Context) {
	schoolID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid school ID format")
		return
	}

	filter := bindListFilter(c)

	requirements, err := h.requirementService.BySchool(c.Request.Context(), schoolID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, requirements)
}
