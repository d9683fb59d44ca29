package handler

import (
	financeapp "github.com/bookdist/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LedgerHandler handles party ledger API endpoints
type LedgerHandler struct {
	BaseHandler
	ledgerService *financeapp.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *financeapp.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// Postings lists a party's ledger postings, newest first
func (h *LedgerHandler) Postings(c *gin.Context) {
	partyID, err := uuid.Parse(c.Param("party_id"))
	if err != nil {
		h.BadRequest(c, "Invalid party ID format")
		return
	}

	filter := bindListFilter(c)

	postings, err := h.ledgerService.Postings(c.Request.Context(), c.Param("party_type"), partyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, postings)
}

// Balance reports a party's net balance
func (h *LedgerHandler) Balance(c *gin.Context) {
	partyID, err := uuid.Parse(c.Param("party_id"))
	if err != nil {
		h.BadRequest(c, "Invalid party ID format")
		return
	}

	balance, err := h.ledgerService.Balance(c.Request.Context(), c.Param("party_type"), partyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, balance)
}
