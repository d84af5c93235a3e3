package api

import (
	"github.com/gin-gonic/gin"

	"github.com/housetab/housetab/internal/service"
)

// HouseHandler serves house creation and roster management.
type HouseHandler struct {
	houses *service.HouseService
}

// NewHouseHandler creates a HouseHandler.
func NewHouseHandler(houses *service.HouseService) *HouseHandler {
	return &HouseHandler{houses: houses}
}

// requireMembership aborts with 403 unless the current user belongs to
// the house. Returns the user ID on success.
func (h *HouseHandler) requireMembership(c *gin.Context, houseID string) (string, bool) {
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

type createHouseRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create makes a new house with the caller as its first member.
func (h *HouseHandler) Create(c *gin.Context) {
	var req createHouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	house, err := h.houses.Create(c.Request.Context(), req.Name, CurrentUserID(c))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, house)
}

type addMemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// AddMember adds a registered user to the house roster.
func (h *HouseHandler) AddMember(c *gin.Context) {
	houseID := c.Param("houseID")
	if _, ok := h.requireMembership(c, houseID); !ok {
		return
	}

	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	if err := h.houses.AddMember(c.Request.Context(), houseID, req.UserID); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, nil)
}

// Members returns the house roster.
func (h *HouseHandler) Members(c *gin.Context) {
	houseID := c.Param("houseID")
	if _, ok := h.requireMembership(c, houseID); !ok {
		return
	}

	members, err := h.houses.Roster(c.Request.Context(), houseID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, toMemberResponses(members))
}
