// Package balance derives pairwise debt positions from the ledger.
//
// Nothing in this package touches storage or holds state: every
// function recomputes from the expense set it is handed, which is what
// guarantees a balance can never drift from the ledger underneath it.
package balance

import (
	"math"
	"sort"

	"github.com/housetab/housetab/internal/models"
	"github.com/housetab/housetab/internal/money"
)

// Entry is one counterparty line in a member's balance view.
type Entry struct {
	// UserID identifies the counterparty.
	UserID string

	// DisplayName is the counterparty's roster name, or the bare user
	// ID when the counterparty has left the roster.
	DisplayName string

	// Owes is what the counterparty owes me (sum of their unsettled
	// splits on expenses I paid), rounded to cents.
	Owes float64

	// Owed is what I owe the counterparty, rounded to cents.
	Owed float64

	// NetBalance is Owes - Owed. Positive means the counterparty
	// net-owes me.
	NetBalance float64
}

// Summary aggregates a member's position across the whole house.
type Summary struct {
	TotalOwedToMe float64
	TotalIOwe     float64
	NetBalance    float64
}

// Sheet is the full balance view for one member: one entry per
// counterparty (every roster member appears, debt or not) plus the
// house-wide summary.
type Sheet struct {
	Entries []Entry
	Summary Summary
}

// Compute derives userID's balance sheet from the house's expenses.
// Only unsettled splits count. The roster is an explicit parameter so
// members with no live debt still get a zero entry.
func Compute(expenses []*models.Expense, roster []models.Member, userID string) *Sheet {
	// Two running sums per counterparty.
	owesMe := make(map[string]float64)
	iOwe := make(map[string]float64)

	for _, expense := range expenses {
		for _, split := range expense.Splits {
			if split.Settled {
				continue
			}
			switch {
			case expense.PaidBy == userID && split.UserID != userID:
				owesMe[split.UserID] = money.Sum(owesMe[split.UserID], split.Amount)
			case split.UserID == userID && expense.PaidBy != userID:
				iOwe[expense.PaidBy] = money.Sum(iOwe[expense.PaidBy], split.Amount)
			}
			// Anything else is a debt between two other members.
		}
	}

	names := make(map[string]string, len(roster))
	for _, m := range roster {
		names[m.UserID] = m.DisplayName
	}

	// Every counterparty with live debt plus every roster member.
	counterparties := make(map[string]bool)
	for id := range owesMe {
		counterparties[id] = true
	}
	for id := range iOwe {
		counterparties[id] = true
	}
	for _, m := range roster {
		if m.UserID != userID {
			counterparties[m.UserID] = true
		}
	}

	entries := make([]Entry, 0, len(counterparties))
	for id := range counterparties {
		owes := money.Round2(owesMe[id])
		owed := money.Round2(iOwe[id])

		name := names[id]
		if name == "" {
			name = id
		}

		entries = append(entries, Entry{
			UserID:      id,
			DisplayName: name,
			Owes:        owes,
			Owed:        owed,
			NetBalance:  money.Round2(owes - owed),
		})
	}

	// Live debts first, largest magnitude on top; zero entries trail
	// alphabetically so the roster renders stably.
	sort.Slice(entries, func(i, j int) bool {
		iZero := entries[i].NetBalance == 0
		jZero := entries[j].NetBalance == 0
		if iZero != jZero {
			return jZero
		}
		if iZero {
			return entries[i].DisplayName < entries[j].DisplayName
		}
		iAbs := math.Abs(entries[i].NetBalance)
		jAbs := math.Abs(entries[j].NetBalance)
		if iAbs != jAbs {
			return iAbs > jAbs
		}
		return entries[i].DisplayName < entries[j].DisplayName
	})

	var summary Summary
	for _, e := range entries {
		summary.TotalOwedToMe = money.Sum(summary.TotalOwedToMe, e.Owes)
		summary.TotalIOwe = money.Sum(summary.TotalIOwe, e.Owed)
	}
	summary.TotalOwedToMe = money.Round2(summary.TotalOwedToMe)
	summary.TotalIOwe = money.Round2(summary.TotalIOwe)
	summary.NetBalance = money.Round2(summary.TotalOwedToMe - summary.TotalIOwe)

	return &Sheet{Entries: entries, Summary: summary}
}
