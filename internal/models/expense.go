package models

import "github.com/housetab/housetab/internal/money"

// Category classifies an expense for filtering and reporting.
type Category string

const (
	CategoryGroceries      Category = "groceries"
	CategoryUtilities      Category = "utilities"
	CategorySupplies       Category = "supplies"
	CategoryRent           Category = "rent"
	CategoryEntertainment  Category = "entertainment"
	CategoryTransportation Category = "transportation"
	CategoryGuestFees      Category = "guest_fees"
	CategoryOther          Category = "other"
)

// Categories lists every valid expense category.
var Categories = []Category{
	CategoryGroceries,
	CategoryUtilities,
	CategorySupplies,
	CategoryRent,
	CategoryEntertainment,
	CategoryTransportation,
	CategoryGuestFees,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Expense represents a purchase made by one house member on behalf of
// the house, together with the splits that say who owes what.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// HouseID is the house this expense belongs to. Balances never
	// cross house boundaries.
	HouseID string

	// Title is the short human-readable name of the expense.
	Title string

	// Description is free-text detail, may be empty.
	Description string

	// Amount is the full amount paid, always > 0, 2-decimal precision.
	Amount float64

	// Category classifies the expense (groceries, rent, ...).
	Category Category

	// Date is the calendar day of the expense in YYYY-MM-DD form.
	// There is deliberately no time component.
	Date string

	// PaidBy is the user ID of the member who paid.
	PaidBy string

	// PaidByName is the payer's display name, joined in on reads.
	PaidByName string

	// CreatedBy is the user ID of whoever recorded the expense.
	// May differ from PaidBy.
	CreatedBy string

	// CreatedByName is the creator's display name, joined in on reads.
	CreatedByName string

	// ReceiptURL is an optional reference to a stored receipt.
	ReceiptURL string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// Splits are the owed shares of the non-payer debtors. The payer's
	// own share is implicit; see PayerShare.
	Splits []ExpenseSplit
}

// PayerShare returns the payer's own portion of the expense: the
// remainder after subtracting every stored split. The payer's share is
// never stored as a split row, so it only exists as this computed value.
func (e *Expense) PayerShare() float64 {
	owed := 0.0
	for _, s := range e.Splits {
		owed += s.Amount
	}
	return money.Round2(e.Amount - owed)
}

// ExpenseSplit is one debtor's owed share of a single Expense. Splits
// are owned by their expense: they are created and replaced in batches
// alongside it and deleted with it.
type ExpenseSplit struct {
	// ID is the unique identifier for the split (UUID format).
	ID string

	// ExpenseID is the owning expense.
	ExpenseID string

	// UserID is the debtor who owes this share.
	UserID string

	// UserName is the debtor's display name, joined in on reads.
	UserName string

	// Amount is the owed share, non-negative, 2-decimal precision.
	Amount float64

	// Settled reports whether this debt has been paid off.
	Settled bool

	// SettledAt is the Unix timestamp of the most recent settlement,
	// nil while unsettled.
	SettledAt *int64

	// SettledBy is the user ID of whoever performed the settlement,
	// empty while unsettled. For a settle-up it is always the
	// initiator, on both legs.
	SettledBy string
}
