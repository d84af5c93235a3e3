package api

import (
	"github.com/gin-gonic/gin"

	"github.com/housetab/housetab/internal/service"
)

// SettlementHandler serves the settlement operations.
type SettlementHandler struct {
	settlements *service.SettlementService
	expenses    *service.ExpenseService
	houses      *service.HouseService
}

// NewSettlementHandler creates a SettlementHandler.
func NewSettlementHandler(settlements *service.SettlementService, expenses *service.ExpenseService, houses *service.HouseService) *SettlementHandler {
	return &SettlementHandler{settlements: settlements, expenses: expenses, houses: houses}
}

func (h *SettlementHandler) requireMembership(c *gin.Context, houseID string) (string, bool) {
	userID := CurrentUserID(c)
	ok, err := h.houses.IsMember(c.Request.Context(), houseID, userID)
	if err != nil {
		ServiceError(c, err)
		return "", false
	}
	if !ok {
		Forbidden(c, "you are not a member of this house")
		return "", false
	}
	return userID, true
}

// requireSplitAccess loads the split's parent expense and checks the
// caller belongs to its house. Returns the caller's user ID.
func (h *SettlementHandler) requireSplitAccess(c *gin.Context, splitID string) (string, bool) {
	split, err := h.settlements.GetSplit(c.Request.Context(), splitID)
	if err != nil {
		ServiceError(c, err)
		return "", false
	}
	expense, err := h.expenses.Get(c.Request.Context(), split.ExpenseID)
	if err != nil {
		ServiceError(c, err)
		return "", false
	}
	return h.requireMembership(c, expense.HouseID)
}

// SettleSplit marks one split as settled by the caller.
func (h *SettlementHandler) SettleSplit(c *gin.Context) {
	splitID := c.Param("id")
	userID, ok := h.requireSplitAccess(c, splitID)
	if !ok {
		return
	}

	if err := h.settlements.SettleSplit(c.Request.Context(), splitID, userID); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, nil)
}

// UnsettleSplit reopens a mistakenly settled split.
func (h *SettlementHandler) UnsettleSplit(c *gin.Context) {
	splitID := c.Param("id")
	if _, ok := h.requireSplitAccess(c, splitID); !ok {
		return
	}

	if err := h.settlements.UnsettleSplit(c.Request.Context(), splitID); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, nil)
}

type counterpartyRequest struct {
	CounterpartyID string `json:"counterparty_id" binding:"required"`
}

type settleResultResponse struct {
	SettledCount int     `json:"settled_count"`
	Amount       float64 `json:"amount"`
}

// SettleAll marks everything the counterparty owes the caller as paid.
// The reverse direction is untouched.
func (h *SettlementHandler) SettleAll(c *gin.Context) {
	houseID := c.Param("houseID")
	userID, ok := h.requireMembership(c, houseID)
	if !ok {
		return
	}

	var req counterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	result, err := h.settlements.SettleAllWithUser(c.Request.Context(), houseID, userID, req.CounterpartyID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, settleResultResponse{SettledCount: result.SettledCount, Amount: result.Amount})
}

// SettleUp closes out all mutual live debt between the caller and the
// counterparty in both directions.
func (h *SettlementHandler) SettleUp(c *gin.Context) {
	houseID := c.Param("houseID")
	userID, ok := h.requireMembership(c, houseID)
	if !ok {
		return
	}

	var req counterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	result, err := h.settlements.SettleUp(c.Request.Context(), houseID, userID, req.CounterpartyID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, settleResultResponse{SettledCount: result.SettledCount, Amount: result.Amount})
}
