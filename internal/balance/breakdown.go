package balance

import (
	"sort"

	"github.com/housetab/housetab/internal/models"
	"github.com/housetab/housetab/internal/money"
)

// Item is one line of a pairwise breakdown: a single split together
// with its parent expense's descriptive fields. Settled items are
// included; the breakdown is a history view, not a live-debt view.
type Item struct {
	SplitID     string
	ExpenseID   string
	Title       string
	Description string
	Category    models.Category
	Date        string
	Amount      float64
	Settled     bool
	SettledAt   *int64
	SettledBy   string

	// createdAt orders items within the same calendar day.
	createdAt int64
}

// Breakdown itemizes the full history behind the balance between two
// users. Totals cover unsettled items only, so they line up with the
// live balance sheet.
type Breakdown struct {
	// ItemsAOwesB are splits where A owes on an expense B paid.
	ItemsAOwesB []Item

	// ItemsBOwesA are splits where B owes on an expense A paid.
	ItemsBOwesA []Item

	// TotalAOwesB sums the unsettled amounts of ItemsAOwesB.
	TotalAOwesB float64

	// TotalBOwesA sums the unsettled amounts of ItemsBOwesA.
	TotalBOwesA float64

	// NetBalance is TotalBOwesA - TotalAOwesB: positive means B
	// net-owes A.
	NetBalance float64
}

// ComputeBreakdown itemizes the debt history between userA and userB
// from the house's expenses.
func ComputeBreakdown(expenses []*models.Expense, userA, userB string) *Breakdown {
	b := &Breakdown{}

	for _, expense := range expenses {
		for _, split := range expense.Splits {
			item := Item{
				SplitID:     split.ID,
				ExpenseID:   expense.ID,
				Title:       expense.Title,
				Description: expense.Description,
				Category:    expense.Category,
				Date:        expense.Date,
				Amount:      split.Amount,
				Settled:     split.Settled,
				SettledAt:   split.SettledAt,
				SettledBy:   split.SettledBy,
				createdAt:   expense.CreatedAt,
			}

			switch {
			case expense.PaidBy == userB && split.UserID == userA:
				b.ItemsAOwesB = append(b.ItemsAOwesB, item)
				if !split.Settled {
					b.TotalAOwesB = money.Sum(b.TotalAOwesB, split.Amount)
				}
			case expense.PaidBy == userA && split.UserID == userB:
				b.ItemsBOwesA = append(b.ItemsBOwesA, item)
				if !split.Settled {
					b.TotalBOwesA = money.Sum(b.TotalBOwesA, split.Amount)
				}
			}
		}
	}

	sortItems(b.ItemsAOwesB)
	sortItems(b.ItemsBOwesA)

	b.TotalAOwesB = money.Round2(b.TotalAOwesB)
	b.TotalBOwesA = money.Round2(b.TotalBOwesA)
	b.NetBalance = money.Round2(b.TotalBOwesA - b.TotalAOwesB)

	return b
}

// sortItems puts unsettled items first, then settled; within each group
// newest expense date first, expense creation time breaking ties.
func sortItems(items []Item) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Settled != items[j].Settled {
			return !items[i].Settled
		}
		if items[i].Date != items[j].Date {
			return items[i].Date > items[j].Date
		}
		return items[i].createdAt > items[j].createdAt
	})
}
