package handler

import (
	procurementapp "github.com/bookdist/backend/internal/application/procurement"
	"github.com/gin-gonic/gin"
)

// RequirementHandler handles school requirement API endpoints
type RequirementHandler struct {
	BaseHandler
	requirementService *procurementapp.RequirementService
}

// NewRequirementHandler creates a new RequirementHandler
func NewRequirementHandler(requirementService *procurementapp.RequirementService) *RequirementHandler {
	return &RequirementHandler{requirementService: requirementService}
}

// Submit records a school's demand for a book
func (h *RequirementHandler) Submit(c *gin.Context) {
	var req procurementapp.SubmitRequirementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	requirement, err := h.requirementService.Submit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, requirement)
}

// OpenDemand aggregates outstanding demand per book across all schools
func (h *RequirementHandler) OpenDemand(c *gin.Context) {
	summaries, err := h.requirementService.OpenDemand(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summaries)
}
