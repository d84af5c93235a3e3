package api

import (
	"github.com/gin-gonic/gin"

	"github.com/housetab/housetab/internal/service"
)

// BalanceHandler serves the derived balance views.
type BalanceHandler struct {
	balances *service.BalanceService
	houses   *service.HouseService
}

// NewBalanceHandler creates a BalanceHandler.
func NewBalanceHandler(balances *service.BalanceService, houses *service.HouseService) *BalanceHandler {
	return &BalanceHandler{balances: balances, houses: houses}
}

func (h *BalanceHandler) requireMembership(c *gin.Context, houseID string) (string, bool) {
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

// Balances returns the caller's net position against every house member.
func (h *BalanceHandler) Balances(c *gin.Context) {
	houseID := c.Param("houseID")
	userID, ok := h.requireMembership(c, houseID)
	if !ok {
		return
	}

	sheet, err := h.balances.Balances(c.Request.Context(), houseID, userID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, toBalanceSheetResponse(sheet))
}

// Breakdown returns the itemized history between the caller and one
// counterparty, settled items included.
func (h *BalanceHandler) Breakdown(c *gin.Context) {
	houseID := c.Param("houseID")
	userID, ok := h.requireMembership(c, houseID)
	if !ok {
		return
	}

	breakdown, err := h.balances.Breakdown(c.Request.Context(), houseID, userID, c.Param("userID"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, toBreakdownResponse(breakdown))
}
