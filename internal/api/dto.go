package api

import (
	"time"

	"github.com/housetab/housetab/internal/balance"
	"github.com/housetab/housetab/internal/models"
)

// Wire representations. Timestamps that mark an instant are RFC3339;
// expense dates stay plain YYYY-MM-DD strings.

type splitResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	UserName  string  `json:"user_name,omitempty"`
	Amount    float64 `json:"amount"`
	Settled   bool    `json:"settled"`
	SettledAt *string `json:"settled_at,omitempty"`
	SettledBy string  `json:"settled_by,omitempty"`
}

type expenseResponse struct {
	ID            string          `json:"id"`
	HouseID       string          `json:"house_id"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Amount        float64         `json:"amount"`
	Category      string          `json:"category"`
	Date          string          `json:"date"`
	PaidBy        string          `json:"paid_by"`
	PaidByName    string          `json:"paid_by_name,omitempty"`
	CreatedBy     string          `json:"created_by"`
	CreatedByName string          `json:"created_by_name,omitempty"`
	ReceiptURL    string          `json:"receipt_url,omitempty"`
	PayerShare    float64         `json:"payer_share"`
	CreatedAt     int64           `json:"created_at"`
	Splits        []splitResponse `json:"splits"`
}

func rfc3339(unix *int64) *string {
	if unix == nil {
		return nil
	}
	s := time.Unix(*unix, 0).UTC().Format(time.RFC3339)
	return &s
}

func toSplitResponse(s models.ExpenseSplit) splitResponse {
	return splitResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		UserName:  s.UserName,
		Amount:    s.Amount,
		Settled:   s.Settled,
		SettledAt: rfc3339(s.SettledAt),
		SettledBy: s.SettledBy,
	}
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	splits := make([]splitResponse, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = toSplitResponse(s)
	}
	return expenseResponse{
		ID:            e.ID,
		HouseID:       e.HouseID,
		Title:         e.Title,
		Description:   e.Description,
		Amount:        e.Amount,
		Category:      string(e.Category),
		Date:          e.Date,
		PaidBy:        e.PaidBy,
		PaidByName:    e.PaidByName,
		CreatedBy:     e.CreatedBy,
		CreatedByName: e.CreatedByName,
		ReceiptURL:    e.ReceiptURL,
		PayerShare:    e.PayerShare(),
		CreatedAt:     e.CreatedAt,
		Splits:        splits,
	}
}

func toExpenseListResponse(expenses []*models.Expense) []expenseResponse {
	out := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = toExpenseResponse(e)
	}
	return out
}

type balanceEntryResponse struct {
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Owes        float64 `json:"owes"`
	Owed        float64 `json:"owed"`
	NetBalance  float64 `json:"net_balance"`
}

type balanceSheetResponse struct {
	Balances      []balanceEntryResponse `json:"balances"`
	TotalOwedToMe float64                `json:"total_owed_to_me"`
	TotalIOwe     float64                `json:"total_i_owe"`
	NetBalance    float64                `json:"net_balance"`
}

func toBalanceSheetResponse(sheet *balance.Sheet) balanceSheetResponse {
	entries := make([]balanceEntryResponse, len(sheet.Entries))
	for i, e := range sheet.Entries {
		entries[i] = balanceEntryResponse{
			UserID:      e.UserID,
			DisplayName: e.DisplayName,
			Owes:        e.Owes,
			Owed:        e.Owed,
			NetBalance:  e.NetBalance,
		}
	}
	return balanceSheetResponse{
		Balances:      entries,
		TotalOwedToMe: sheet.Summary.TotalOwedToMe,
		TotalIOwe:     sheet.Summary.TotalIOwe,
		NetBalance:    sheet.Summary.NetBalance,
	}
}

type breakdownItemResponse struct {
	SplitID     string  `json:"split_id"`
	ExpenseID   string  `json:"expense_id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Settled     bool    `json:"settled"`
	SettledAt   *string `json:"settled_at,omitempty"`
	SettledBy   string  `json:"settled_by,omitempty"`
}

type breakdownResponse struct {
	ItemsIOwe    []breakdownItemResponse `json:"items_i_owe"`
	ItemsTheyOwe []breakdownItemResponse `json:"items_they_owe"`
	TotalIOwe    float64                 `json:"total_i_owe"`
	TotalTheyOwe float64                 `json:"total_they_owe"`
	NetBalance   float64                 `json:"net_balance"`
}

func toBreakdownItems(items []balance.Item) []breakdownItemResponse {
	out := make([]breakdownItemResponse, len(items))
	for i, item := range items {
		out[i] = breakdownItemResponse{
			SplitID:     item.SplitID,
			ExpenseID:   item.ExpenseID,
			Title:       item.Title,
			Description: item.Description,
			Category:    string(item.Category),
			Date:        item.Date,
			Amount:      item.Amount,
			Settled:     item.Settled,
			SettledAt:   rfc3339(item.SettledAt),
			SettledBy:   item.SettledBy,
		}
	}
	return out
}

// toBreakdownResponse renders a breakdown from the viewer's side:
// userA of the core computation is the authenticated caller.
func toBreakdownResponse(b *balance.Breakdown) breakdownResponse {
	return breakdownResponse{
		ItemsIOwe:    toBreakdownItems(b.ItemsAOwesB),
		ItemsTheyOwe: toBreakdownItems(b.ItemsBOwesA),
		TotalIOwe:    b.TotalAOwesB,
		TotalTheyOwe: b.TotalBOwesA,
		NetBalance:   b.NetBalance,
	}
}

type memberResponse struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	JoinedAt    int64  `json:"joined_at"`
}

func toMemberResponses(members []models.Member) []memberResponse {
	out := make([]memberResponse, len(members))
	for i, m := range members {
		out[i] = memberResponse{UserID: m.UserID, DisplayName: m.DisplayName, JoinedAt: m.JoinedAt}
	}
	return out
}
