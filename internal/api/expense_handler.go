package api

import (
	"github.com/gin-gonic/gin"

	"github.com/housetab/housetab/internal/models"
	"github.com/housetab/housetab/internal/service"
	"github.com/housetab/housetab/internal/storage"
)

// ExpenseHandler serves the ledger CRUD operations.
type ExpenseHandler struct {
	expenses *service.ExpenseService
	houses   *service.HouseService
}

// NewExpenseHandler creates an ExpenseHandler.
func NewExpenseHandler(expenses *service.ExpenseService, houses *service.HouseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, houses: houses}
}

type splitRequest struct {
	UserID string  `json:"user_id" binding:"required"`
	Amount float64 `json:"amount"`
}

type createExpenseRequest struct {
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description"`
	Amount      float64        `json:"amount" binding:"required,gt=0"`
	Category    string         `json:"category" binding:"required"`
	Date        string         `json:"date" binding:"required"`
	PaidBy      string         `json:"paid_by"`
	ReceiptURL  string         `json:"receipt_url"`
	Splits      []splitRequest `json:"splits" binding:"required"`
}

type updateExpenseRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount" binding:"required,gt=0"`
	Category    string          `json:"category" binding:"required"`
	Date        string          `json:"date" binding:"required"`
	ReceiptURL  string          `json:"receipt_url"`
	Splits      *[]splitRequest `json:"splits"` // nil leaves splits untouched
}

func toSplitInputs(reqs []splitRequest) []service.SplitInput {
	splits := make([]service.SplitInput, len(reqs))
	for i, r := range reqs {
		splits[i] = service.SplitInput{UserID: r.UserID, Amount: r.Amount}
	}
	return splits
}

func (h *ExpenseHandler) requireMembership(c *gin.Context, houseID string) (string, bool) {
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

// Create records a new expense with its splits.
func (h *ExpenseHandler) Create(c *gin.Context) {
	houseID := c.Param("houseID")
	userID, ok := h.requireMembership(c, houseID)
	if !ok {
		return
	}

	var req createExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	// Whoever records the expense is the creator; the payer defaults to
	// them but can be another member.
	payerID := req.PaidBy
	if payerID == "" {
		payerID = userID
	}

	in := service.ExpenseInput{
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    models.Category(req.Category),
		Date:        req.Date,
		ReceiptURL:  req.ReceiptURL,
	}

	expense, err := h.expenses.Create(c.Request.Context(), houseID, payerID, userID, in, toSplitInputs(req.Splits))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, toExpenseResponse(expense))
}

// List returns the house's expenses, optionally filtered by category
// and date range.
func (h *ExpenseHandler) List(c *gin.Context) {
	houseID := c.Param("houseID")
	if _, ok := h.requireMembership(c, houseID); !ok {
		return
	}

	filter := storage.ExpenseFilter{
		Category: models.Category(c.Query("category")),
		DateFrom: c.Query("from"),
		DateTo:   c.Query("to"),
	}

	expenses, err := h.expenses.List(c.Request.Context(), houseID, filter)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, toExpenseListResponse(expenses))
}

// Get returns one expense with its splits.
func (h *ExpenseHandler) Get(c *gin.Context) {
	expense, err := h.expenses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		ServiceError(c, err)
		return
	}
	if _, ok := h.requireMembership(c, expense.HouseID); !ok {
		return
	}
	Success(c, toExpenseResponse(expense))
}

// Update re-issues an expense's full field set, optionally replacing
// its splits.
func (h *ExpenseHandler) Update(c *gin.Context) {
	expenseID := c.Param("id")

	existing, err := h.expenses.Get(c.Request.Context(), expenseID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	if _, ok := h.requireMembership(c, existing.HouseID); !ok {
		return
	}

	var req updateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	in := service.ExpenseInput{
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    models.Category(req.Category),
		Date:        req.Date,
		ReceiptURL:  req.ReceiptURL,
	}

	var splits []service.SplitInput
	if req.Splits != nil {
		splits = toSplitInputs(*req.Splits)
	}

	expense, err := h.expenses.Update(c.Request.Context(), expenseID, in, splits)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, toExpenseResponse(expense))
}

// Delete removes an expense and its splits.
func (h *ExpenseHandler) Delete(c *gin.Context) {
	expenseID := c.Param("id")

	existing, err := h.expenses.Get(c.Request.Context(), expenseID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	if _, ok := h.requireMembership(c, existing.HouseID); !ok {
		return
	}

	if err := h.expenses.Delete(c.Request.Context(), expenseID); err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, nil)
}
